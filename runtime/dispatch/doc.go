// Package dispatch implements next-unit selection, the dispatch of the
// processor to a chosen unit, the single-slot deferred-destruction
// protocol and the preemption check.
//
// Every operation assumes interrupts are masked. Masked delivery is the
// only mutual-exclusion mechanism available here: a lock cannot be used
// because waiting for it would re-enter the selector and deadlock.
package dispatch
