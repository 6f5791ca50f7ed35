package unit

// Status represents the lifecycle state of an execution unit as seen by
// the scheduler.
type Status int

const (
	StatusReady Status = iota
	StatusRunning
	StatusBlocked
	StatusFinished
)

// String returns a human readable status name.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "READY"
	case StatusRunning:
		return "RUNNING"
	case StatusBlocked:
		return "BLOCKED"
	case StatusFinished:
		return "FINISHED"
	}
	return "UNKNOWN"
}

// Priority bounds admissible to the scheduler. Anything outside this
// closed range is a configuration error, not a schedulable unit.
const (
	MinPriority = 0
	MaxPriority = 149
)

// AddressSpace is the optional user address space owned by a unit. It is
// saved before the unit relinquishes the processor and restored when the
// unit resumes.
type AddressSpace interface {
	SaveState()
	RestoreState()
}

// Unit is the execution-unit collaborator. Time values are logical ticks.
type Unit interface {
	// ID returns the unit identity.
	ID() int

	// Name returns the unit name, used only for diagnostics.
	Name() string

	Status() Status
	SetStatus(Status)

	Priority() int
	SetPriority(int)

	// ConsumedTime returns the ticks the unit has executed so far.
	ConsumedTime() int64

	// EstimatedTime returns the unit's estimated total execution ticks.
	EstimatedTime() int64

	// MarkStartTime records the tick at which the unit was last
	// dispatched onto the processor.
	MarkStartTime(tick uint64)

	// Age applies the unit's own priority-growth mutation. The policy
	// of how much to grow is owned by the unit, not the scheduler.
	Age()

	// CheckOverflow inspects the unit's stack for an undetected
	// overflow. Purely observational from the scheduler's side.
	CheckOverflow()

	// SaveUserState and RestoreUserState save/restore the unit-local
	// register state around a context transfer.
	SaveUserState()
	RestoreUserState()

	// Space returns the unit's address space, or nil for kernel-only
	// units.
	Space() AddressSpace

	// Release frees the unit's resources. Called exactly once, after
	// the unit has finished and its stack is no longer in use.
	Release()
}

// Remaining returns the unit's estimated remaining work: estimated total
// ticks minus ticks already consumed.
func Remaining(u Unit) int64 {
	return u.EstimatedTime() - u.ConsumedTime()
}
