package ready

import (
	"fmt"

	"github.com/nanokern/sched/model/unit"
	"github.com/nanokern/sched/policy"
)

// Observer receives tier membership changes. Implementations must be
// fire-and-forget: they may not call back into the set.
type Observer interface {
	// UnitInserted is invoked after u was inserted into tier.
	UnitInserted(tier Tier, u unit.Unit)

	// UnitRemoved is invoked after u was removed from tier.
	UnitRemoved(tier Tier, u unit.Unit)
}

// entry pairs a unit with its admission sequence number. The sequence is
// the explicit tie-break key of the two ordered tiers, so that equal
// comparisons dequeue in admission order regardless of how the backing
// containers behave.
type entry struct {
	u   unit.Unit
	seq uint64
}

// Set is the three-tier ready set. The zero value is not usable; use New.
type Set struct {
	tiers    [3][]entry
	seq      uint64
	observer Observer
}

// Option customises a Set.
type Option func(s *Set)

// WithObserver attaches an observer notified on every insertion/removal.
func WithObserver(observer Observer) Option {
	return func(s *Set) { s.observer = observer }
}

// New returns an empty ready set.
func New(opts ...Option) *Set {
	s := &Set{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Admit routes u to the tier matching its priority band, marks it READY
// and inserts it in tier order. A priority outside the admissible range
// panics with ErrInadmissiblePriority before any tier is mutated.
func (s *Set) Admit(u unit.Unit) {
	tier, ok := bandFor(u.Priority())
	if !ok {
		panic(fmt.Errorf("%w: %d", ErrInadmissiblePriority, u.Priority()))
	}
	u.SetStatus(unit.StatusReady)
	s.insert(tier, entry{u: u, seq: s.nextSeq()})
	if s.observer != nil {
		s.observer.UnitInserted(tier, u)
	}
}

// RemoveFront removes and returns the front unit of tier, or nil when
// the tier is empty.
func (s *Set) RemoveFront(tier Tier) unit.Unit {
	q := s.tiers[tier-1]
	if len(q) == 0 {
		return nil
	}
	u := q[0].u
	copy(q, q[1:])
	s.tiers[tier-1] = q[:len(q)-1]
	if s.observer != nil {
		s.observer.UnitRemoved(tier, u)
	}
	return u
}

// PeekFront returns the front unit of tier without removing it, or nil
// when the tier is empty. Tier order and membership are untouched.
func (s *Set) PeekFront(tier Tier) unit.Unit {
	q := s.tiers[tier-1]
	if len(q) == 0 {
		return nil
	}
	return q[0].u
}

// IsEmpty reports whether tier holds no units.
func (s *Set) IsEmpty(tier Tier) bool {
	return len(s.tiers[tier-1]) == 0
}

// Len returns the number of units resident in tier.
func (s *Set) Len(tier Tier) int {
	return len(s.tiers[tier-1])
}

// Total returns the number of units across all three tiers.
func (s *Set) Total() int {
	return len(s.tiers[0]) + len(s.tiers[1]) + len(s.tiers[2])
}

// ForEach visits every unit of tier in dequeue order, without mutating
// the tier. The visitor must not call back into the set.
func (s *Set) ForEach(tier Tier, visit func(u unit.Unit)) {
	for _, e := range s.tiers[tier-1] {
		visit(e.u)
	}
}

// Age rebuilds all three tiers: every resident unit is drained, aged via
// its own Age mutation, and re-admitted with promotion-only routing.
// Units drained from tier 1 stay in tier 1 irrespective of their aged
// priority. Tier-2 units move to tier 1 once their priority reaches the
// tier-1 band. Tier-3 units move to tier 2 once their priority reaches
// the tier-2 band; the tier-1 threshold is never consulted for them, so
// promotion crosses at most one band per pass. The total unit count is
// preserved.
func (s *Set) Age() {
	drained := s.tiers
	s.tiers = [3][]entry{}

	for _, e := range drained[Tier1-1] {
		e.u.Age()
		s.insert(Tier1, entry{u: e.u, seq: s.nextSeq()})
	}

	for _, e := range drained[Tier2-1] {
		e.u.Age()
		target := Tier2
		if e.u.Priority() >= 100 {
			target = Tier1
			if s.observer != nil {
				s.observer.UnitRemoved(Tier2, e.u)
			}
		}
		s.insert(target, entry{u: e.u, seq: s.nextSeq()})
	}

	for _, e := range drained[Tier3-1] {
		e.u.Age()
		target := Tier3
		if e.u.Priority() >= 50 {
			target = Tier2
			if s.observer != nil {
				s.observer.UnitRemoved(Tier3, e.u)
			}
		}
		s.insert(target, entry{u: e.u, seq: s.nextSeq()})
	}
}

func (s *Set) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// insert places e into tier honouring the tier's ordering policy. The
// two ordered tiers insert before the first strictly-greater entry; on a
// comparison tie the lower admission sequence wins. Tier 3 appends.
func (s *Set) insert(tier Tier, e entry) {
	q := s.tiers[tier-1]
	if tier == Tier3 {
		s.tiers[tier-1] = append(q, e)
		return
	}
	compare := policy.ByRemaining
	if tier == Tier2 {
		compare = policy.ByPriority
	}
	at := len(q)
	for i, other := range q {
		c := compare(e.u, other.u)
		if c < 0 || (c == 0 && e.seq < other.seq) {
			at = i
			break
		}
	}
	q = append(q, entry{})
	copy(q[at+1:], q[at:])
	q[at] = e
	s.tiers[tier-1] = q
}
