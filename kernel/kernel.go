package kernel

import (
	"github.com/nanokern/sched/model/unit"
)

// IntLevel is the interrupt delivery level.
type IntLevel int

const (
	IntOff IntLevel = iota // interrupts masked
	IntOn                  // interrupts enabled
)

// Interrupts is the interrupt controller capability. Masked interrupt
// delivery is the scheduler's sole mutual-exclusion mechanism; every
// scheduler operation requires Level() == IntOff.
type Interrupts interface {
	// Level returns the current interrupt level.
	Level() IntLevel

	// SetLevel changes the interrupt level and returns the previous one.
	SetLevel(IntLevel) IntLevel
}

// Switcher is the two-argument context-transfer primitive. Switch parks
// the invoking call stack and hands the processor to next; the call
// returns only when some later, independent dispatch switches back to
// old. Interrupts are masked on resumption.
type Switcher interface {
	Switch(old, next unit.Unit)
}

// Stats holds the kernel's logical time counter. Diagnostic events and
// start-time markers are tagged with TotalTicks.
type Stats struct {
	TotalTicks uint64
}

// Advance moves logical time forward by n ticks.
func (s *Stats) Advance(n uint64) {
	s.TotalTicks += n
}

// Context is the kernel context object the scheduler operates in. The
// current-unit reference is mutated exclusively by the dispatcher; it is
// deliberately a field on an explicit object passed by reference rather
// than ambient global state.
type Context struct {
	interrupts Interrupts
	stats      *Stats
	current    unit.Unit
}

// NewContext returns a kernel context backed by the supplied interrupt
// controller. A nil stats gets a fresh zeroed counter.
func NewContext(interrupts Interrupts, stats *Stats) *Context {
	if stats == nil {
		stats = &Stats{}
	}
	return &Context{interrupts: interrupts, stats: stats}
}

// Interrupts returns the interrupt controller.
func (c *Context) Interrupts() Interrupts { return c.interrupts }

// Stats returns the kernel tick counter.
func (c *Context) Stats() *Stats { return c.stats }

// Current returns the currently executing unit, or nil before the first
// dispatch.
func (c *Context) Current() unit.Unit { return c.current }

// SetCurrent replaces the currently executing unit reference. Owned by
// the dispatcher; nothing else may call it.
func (c *Context) SetCurrent(u unit.Unit) { c.current = u }
