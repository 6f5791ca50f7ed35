package dispatch

import (
	"github.com/nanokern/sched/kernel"
	"github.com/nanokern/sched/model/unit"
	"github.com/nanokern/sched/runtime/ready"
)

// Observer receives dispatch transitions, fire-and-forget.
type Observer interface {
	// UnitDispatched is invoked after the current-unit reference moved
	// from prev to next, just before the context transfer.
	UnitDispatched(next, prev unit.Unit)
}

// Dispatcher selects the next unit to run and hands the processor over
// to it. It owns the currently-executing reference of the kernel context
// and the pending-destruction slot.
type Dispatcher struct {
	kctx     *kernel.Context
	set      *ready.Set
	switcher kernel.Switcher
	observer Observer

	// toBeDestroyed exclusively owns a finished unit between its final
	// dispatch and the next destruction check. Its stack is still in
	// use until the context transfer completes, so release must wait.
	toBeDestroyed unit.Unit
}

// Option customises a Dispatcher.
type Option func(d *Dispatcher)

// WithObserver attaches an observer notified on dispatch transitions.
func WithObserver(observer Observer) Option {
	return func(d *Dispatcher) { d.observer = observer }
}

// New returns a dispatcher operating on the supplied kernel context,
// ready set and context-transfer primitive.
func New(kctx *kernel.Context, set *ready.Set, switcher kernel.Switcher, opts ...Option) *Dispatcher {
	d := &Dispatcher{kctx: kctx, set: set, switcher: switcher}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FindNextToRun removes and returns the next unit to be scheduled onto
// the processor, exhausting tier 1 before tier 2 and tier 2 before
// tier 3. It returns nil when all tiers are empty: the system is idle,
// which callers must handle as a valid state. The returned unit has been
// removed from its tier; the caller owns its status transition.
func (d *Dispatcher) FindNextToRun() unit.Unit {
	d.assertMasked()
	for _, tier := range ready.Tiers {
		if u := d.set.RemoveFront(tier); u != nil {
			return u
		}
	}
	return nil
}

// Run dispatches the processor to next. When finishing is set the
// currently executing unit is staged for deferred destruction; staging
// while the slot is occupied panics with ErrDestroySlotOccupied.
//
// The context transfer does not return in the ordinary sense: control
// resumes here only when some later dispatch switches back to the old
// unit. Everything after the transfer runs in a fresh invocation
// context whose only guaranteed precondition is that interrupts remain
// masked.
func (d *Dispatcher) Run(next unit.Unit, finishing bool) {
	d.assertMasked()
	old := d.kctx.Current()

	if finishing {
		if d.toBeDestroyed != nil {
			panic(ErrDestroySlotOccupied)
		}
		d.toBeDestroyed = old
	}

	if space := old.Space(); space != nil {
		old.SaveUserState()
		space.SaveState()
	}

	old.CheckOverflow()

	d.kctx.SetCurrent(next)
	next.SetStatus(unit.StatusRunning)
	next.MarkStartTime(d.kctx.Stats().TotalTicks)

	if d.observer != nil {
		d.observer.UnitDispatched(next, old)
	}

	d.switcher.Switch(old, next)

	// Back on old's stack, resumed by an unrelated dispatch.
	d.assertMasked()

	d.checkToBeDestroyed()

	if space := old.Space(); space != nil {
		old.RestoreUserState()
		space.RestoreState()
	}
}

// ShouldPreempt reports whether the tier-1 head would out-schedule the
// currently executing unit: true iff tier 1 is non-empty and its head's
// remaining work is strictly less than the running unit's. The check is
// a pure peek; tier order and membership are left untouched. Tiers 2
// and 3 never influence the decision.
func (d *Dispatcher) ShouldPreempt() bool {
	d.assertMasked()
	head := d.set.PeekFront(ready.Tier1)
	if head == nil {
		return false
	}
	current := d.kctx.Current()
	return unit.Remaining(head) < unit.Remaining(current)
}

// PendingDestruction reports whether a finished unit is staged awaiting
// release. Diagnostic only; the staged unit itself is never exposed.
func (d *Dispatcher) PendingDestruction() bool {
	return d.toBeDestroyed != nil
}

// checkToBeDestroyed releases the staged unit, if any. It runs after
// every context transfer, before anything can reuse the stack the
// finished unit was still running on when it dispatched away.
func (d *Dispatcher) checkToBeDestroyed() {
	if d.toBeDestroyed == nil {
		return
	}
	d.toBeDestroyed.Release()
	d.toBeDestroyed = nil
}

func (d *Dispatcher) assertMasked() {
	if d.kctx.Interrupts().Level() != kernel.IntOff {
		panic(ErrInterruptsUnmasked)
	}
}
