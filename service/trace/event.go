package trace

import "time"

// Kind classifies a diagnostic event.
type Kind string

const (
	// KindInserted records a unit entering a tier.
	KindInserted Kind = "inserted"

	// KindRemoved records a unit leaving a tier.
	KindRemoved Kind = "removed"

	// KindDispatched records the processor being handed to a unit.
	KindDispatched Kind = "dispatched"
)

// Event is one diagnostic record. Tick is the kernel's logical time
// counter at emission; Tier is empty for dispatch transitions.
type Event struct {
	SessionID string    `json:"sessionID"`
	Tick      uint64    `json:"tick"`
	Kind      Kind      `json:"kind"`
	UnitID    int       `json:"unitID"`
	UnitName  string    `json:"unitName,omitempty"`
	Tier      string    `json:"tier,omitempty"`
	Remaining int64     `json:"remaining"`
	PrevID    int       `json:"prevID,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
