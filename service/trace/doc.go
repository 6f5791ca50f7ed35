// Package trace emits the scheduler's diagnostic events: tier
// insertions/removals and dispatch transitions, tagged with the kernel's
// logical tick counter. Delivery is fire-and-forget; publishing never
// blocks and never influences scheduling decisions. When the buffering
// queue is full the event is dropped.
package trace
