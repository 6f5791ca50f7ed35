package sched

import (
	"github.com/nanokern/sched/runtime/dispatch"
	"github.com/nanokern/sched/runtime/ready"
)

// Fatal conditions raised (as panics) by scheduler operations. Every one
// of them indicates a broken invariant elsewhere in the kernel; there is
// no recoverable-error surface in this subsystem.
var (
	ErrInterruptsUnmasked   = dispatch.ErrInterruptsUnmasked
	ErrDestroySlotOccupied  = dispatch.ErrDestroySlotOccupied
	ErrInadmissiblePriority = ready.ErrInadmissiblePriority
)
