package policy

import "github.com/nanokern/sched/model/unit"

// ByRemaining compares two units by estimated remaining work
// (estimated total ticks minus ticks consumed). The unit with less
// remaining work sorts first. Returns -1, 0 or 1.
func ByRemaining(a, b unit.Unit) int {
	ra, rb := unit.Remaining(a), unit.Remaining(b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}
	return 0
}

// ByPriority compares two units by raw priority value, ascending: the
// lowest-numbered priority sorts first. Note this is the opposite of the
// band convention, where larger values map to higher-precedence tiers;
// the literal ordering is intentional.
func ByPriority(a, b unit.Unit) int {
	pa, pb := a.Priority(), b.Priority()
	switch {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	}
	return 0
}
