package dispatch

import "errors"

var (
	// ErrInterruptsUnmasked reports a scheduler operation invoked while
	// interrupt delivery was enabled. The masked-interrupt discipline is
	// the subsystem's only mutual exclusion, so this is unrecoverable.
	ErrInterruptsUnmasked = errors.New("scheduler operation requires interrupts masked")

	// ErrDestroySlotOccupied reports a finishing dispatch requested
	// while a previously finished unit is still staged for destruction.
	ErrDestroySlotOccupied = errors.New("pending-destruction slot already occupied")
)
