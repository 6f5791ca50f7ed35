// Package kernel exposes the kernel-side collaborators the scheduler
// consumes: the interrupt controller, the tick counter, the mutable
// current-unit reference and the low-level context-transfer primitive.
package kernel
