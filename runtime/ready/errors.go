package ready

import "errors"

var (
	// ErrInadmissiblePriority reports an admission request whose
	// priority falls outside [MinPriority, MaxPriority]. It indicates a
	// broken invariant elsewhere in the kernel and is raised as a panic
	// before any tier is mutated.
	ErrInadmissiblePriority = errors.New("priority outside admissible range [0,149]")
)
