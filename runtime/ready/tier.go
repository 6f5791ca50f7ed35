package ready

import "fmt"

// Tier identifies one of the three ready-set partitions, in strict
// selection precedence order.
type Tier int

const (
	// Tier1 admits priorities [100,149], ordered by shortest remaining work.
	Tier1 Tier = iota + 1
	// Tier2 admits priorities [50,99], ordered ascending by raw priority.
	Tier2
	// Tier3 admits priorities [0,49], plain append/remove-front.
	Tier3
)

// Tiers lists all tiers in selection precedence order.
var Tiers = []Tier{Tier1, Tier2, Tier3}

// String returns the tier label used in diagnostic events.
func (t Tier) String() string {
	return fmt.Sprintf("L%d", int(t))
}

// bandFor maps an admissible priority to its tier. The second result is
// false when the priority is outside [MinPriority, MaxPriority].
func bandFor(priority int) (Tier, bool) {
	switch {
	case priority >= 100 && priority <= 149:
		return Tier1, true
	case priority >= 50 && priority <= 99:
		return Tier2, true
	case priority >= 0 && priority <= 49:
		return Tier3, true
	}
	return 0, false
}
