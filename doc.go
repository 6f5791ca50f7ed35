// Package sched implements the scheduling subsystem of a small
// uniprocessor kernel: a three-tier feedback ready set, strict-precedence
// selection, dispatch orchestration with deferred destruction of
// finished units, a shortest-remaining-work preemption check and a
// periodic aging/promotion pass.
//
// The subsystem is designed to be embedded in a host kernel. The kernel
// supplies the collaborators – execution units, the interrupt
// controller, the tick counter and the context-transfer primitive – and
// interacts with the scheduler through the Service façade:
//
//	kctx := kernel.NewContext(interrupts, nil)
//	srv := sched.New(kctx, switcher)
//	srv.ReadyToRun(u)
//	if next := srv.FindNextToRun(); next != nil {
//		srv.Run(next, false)
//	}
//
// Every operation must be invoked with interrupts masked; masked
// delivery is the subsystem's only mutual-exclusion mechanism.
//
// For more details see the individual sub-packages.
package sched
