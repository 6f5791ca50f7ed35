// Package ready implements the three-tier ready set: band-routed
// admission, per-tier ordering with explicit admission-sequence
// tie-breaks, read-only traversal and the periodic aging rebuild with
// its one-directional promotion ladder.
//
// The set has no internal locking; callers serialise access by keeping
// interrupts masked around every operation.
package ready
