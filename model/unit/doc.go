// Package unit defines the contract between the scheduler and the
// execution units it manages. The scheduler never constructs a unit; it
// consumes the capabilities declared here and eventually releases the
// unit's resources through them.
package unit
