// Package idgen generates the opaque session identifiers attached to
// diagnostic events. Tests replace NewFunc to get stable identifiers.
package idgen

import "github.com/google/uuid"

// NewFunc is the active identifier generator.
var NewFunc = func() string { return uuid.New().String() }

// New returns a fresh identifier from the active generator.
func New() string { return NewFunc() }
