package sched

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanokern/sched/kernel"
	"github.com/nanokern/sched/model/unit"
	"github.com/nanokern/sched/service/trace"
)

type fakeUnit struct {
	id        int
	name      string
	priority  int
	status    unit.Status
	consumed  int64
	estimated int64
	ageBy     int
	released  int
	startTick uint64
}

func (u *fakeUnit) ID() int                  { return u.id }
func (u *fakeUnit) Name() string             { return u.name }
func (u *fakeUnit) Status() unit.Status      { return u.status }
func (u *fakeUnit) SetStatus(s unit.Status)  { u.status = s }
func (u *fakeUnit) Priority() int            { return u.priority }
func (u *fakeUnit) SetPriority(p int)        { u.priority = p }
func (u *fakeUnit) ConsumedTime() int64      { return u.consumed }
func (u *fakeUnit) EstimatedTime() int64     { return u.estimated }
func (u *fakeUnit) MarkStartTime(t uint64)   { u.startTick = t }
func (u *fakeUnit) Age()                     { u.priority += u.ageBy }
func (u *fakeUnit) CheckOverflow()           {}
func (u *fakeUnit) SaveUserState()           {}
func (u *fakeUnit) RestoreUserState()        {}
func (u *fakeUnit) Space() unit.AddressSpace { return nil }
func (u *fakeUnit) Release()                 { u.released++ }

type fakeInterrupts struct {
	level kernel.IntLevel
}

func (i *fakeInterrupts) Level() kernel.IntLevel { return i.level }
func (i *fakeInterrupts) SetLevel(level kernel.IntLevel) kernel.IntLevel {
	old := i.level
	i.level = level
	return old
}

type fakeSwitcher struct {
	transfers int
	onSwitch  func()
}

func (s *fakeSwitcher) Switch(old, next unit.Unit) {
	s.transfers++
	if s.onSwitch != nil {
		s.onSwitch()
	}
}

func newTestService(opts ...Option) (*Service, *kernel.Context, *fakeSwitcher) {
	kctx := kernel.NewContext(&fakeInterrupts{level: kernel.IntOff}, nil)
	switcher := &fakeSwitcher{}
	return New(kctx, switcher, opts...), kctx, switcher
}

func TestShortestRemainingWorkWins(t *testing.T) {
	srv, _, _ := newTestService()
	srv.ReadyToRun(&fakeUnit{id: 1, priority: 120, estimated: 10, consumed: 2}) // remaining 8
	srv.ReadyToRun(&fakeUnit{id: 2, priority: 125, estimated: 5, consumed: 1})  // remaining 4

	next := srv.FindNextToRun()
	require.NotNil(t, next)
	assert.Equal(t, 2, next.ID())
	assert.Equal(t, 1, srv.FindNextToRun().ID())
}

func TestInadmissiblePriorityIsFatal(t *testing.T) {
	srv, _, _ := newTestService()
	srv.ReadyToRun(&fakeUnit{id: 1, priority: 120})

	assert.Panics(t, func() { srv.ReadyToRun(&fakeUnit{id: 2, priority: 200}) })
	// Nothing was admitted; the earlier unit is still the only one.
	assert.Equal(t, 1, srv.FindNextToRun().ID())
	assert.Nil(t, srv.FindNextToRun())
}

func TestPreemptionCheckIsReadOnly(t *testing.T) {
	srv, kctx, _ := newTestService()
	kctx.SetCurrent(&fakeUnit{id: 1, estimated: 10, consumed: 2}) // remaining 8
	srv.ReadyToRun(&fakeUnit{id: 2, priority: 120, estimated: 5, consumed: 2}) // remaining 3

	assert.True(t, srv.ShouldPreempt())

	// The tier still contains exactly that unit, in the same position.
	next := srv.FindNextToRun()
	require.NotNil(t, next)
	assert.Equal(t, 2, next.ID())
	assert.Nil(t, srv.FindNextToRun())
}

func TestAgingRelocatesOneBand(t *testing.T) {
	srv, _, _ := newTestService()
	u := &fakeUnit{id: 1, priority: 48, ageBy: 2}
	srv.ReadyToRun(u)

	srv.Age()

	// Aged to 50: tier 2, not tier 1.
	assert.Equal(t, 50, u.Priority())
	next := srv.FindNextToRun()
	require.NotNil(t, next)

	// Re-admit and verify it now routes to tier 2 ahead of tier 3 units.
	srv.ReadyToRun(next)
	srv.ReadyToRun(&fakeUnit{id: 2, priority: 10})
	assert.Equal(t, 1, srv.FindNextToRun().ID())
}

func TestConsecutiveFinishingDispatchesAreFatal(t *testing.T) {
	srv, kctx, switcher := newTestService()
	a := &fakeUnit{id: 1, name: "a"}
	b := &fakeUnit{id: 2, name: "b"}
	c := &fakeUnit{id: 3, name: "c"}
	kctx.SetCurrent(a)

	// While control is inside the first transfer, the next unit
	// immediately finishes and requests another finishing dispatch
	// before any destruction check could run.
	switcher.onSwitch = func() {
		switcher.onSwitch = nil
		srv.Run(c, true)
	}

	assert.PanicsWithError(t, ErrDestroySlotOccupied.Error(), func() {
		srv.Run(b, true)
	})
}

func TestRunReleasesFinishedUnit(t *testing.T) {
	srv, kctx, _ := newTestService()
	finished := &fakeUnit{id: 1, status: unit.StatusFinished}
	next := &fakeUnit{id: 2}
	kctx.SetCurrent(finished)
	kctx.Stats().Advance(5)

	srv.Run(next, true)

	assert.Equal(t, 1, finished.released)
	assert.False(t, srv.PendingDestruction())
	assert.Same(t, next, kctx.Current())
	assert.Equal(t, unit.StatusRunning, next.Status())
	assert.Equal(t, uint64(5), next.startTick)

	// A repeat destruction check is a no-op: dispatching again without
	// finishing releases nothing further.
	kctx.Stats().Advance(1)
	srv.Run(&fakeUnit{id: 3}, false)
	assert.Equal(t, 1, finished.released)
}

func TestTraceEvents(t *testing.T) {
	kctx := kernel.NewContext(&fakeInterrupts{level: kernel.IntOff}, nil)
	srv, store, err := NewFromConfig(kctx, &fakeSwitcher{}, nil)
	require.NoError(t, err)
	require.NotNil(t, store)

	kctx.SetCurrent(&fakeUnit{id: 9, name: "idle"})
	kctx.Stats().Advance(100)

	srv.ReadyToRun(&fakeUnit{id: 1, name: "worker", priority: 120, estimated: 4})
	next := srv.FindNextToRun()
	srv.Run(next, false)

	srv.Trace().Close()

	events := store.Items()
	require.Len(t, events, 3)

	assert.Equal(t, trace.KindInserted, events[0].Kind)
	assert.Equal(t, "L1", events[0].Tier)
	assert.Equal(t, 1, events[0].UnitID)
	assert.Equal(t, uint64(100), events[0].Tick)
	assert.Equal(t, int64(4), events[0].Remaining)

	assert.Equal(t, trace.KindRemoved, events[1].Kind)
	assert.Equal(t, "L1", events[1].Tier)

	assert.Equal(t, trace.KindDispatched, events[2].Kind)
	assert.Equal(t, 1, events[2].UnitID)
	assert.Equal(t, 9, events[2].PrevID)
	assert.Empty(t, events[2].Tier)

	for _, event := range events {
		assert.Equal(t, srv.Trace().SessionID(), event.SessionID)
	}
}

func TestDump(t *testing.T) {
	srv, _, _ := newTestService()
	srv.ReadyToRun(&fakeUnit{id: 1, name: "t1", priority: 110, estimated: 6, consumed: 2})
	srv.ReadyToRun(&fakeUnit{id: 2, name: "t2", priority: 75})
	srv.ReadyToRun(&fakeUnit{id: 3, name: "t3", priority: 30})

	var out bytes.Buffer
	srv.Dump(&out)

	text := out.String()
	assert.Contains(t, text, "L1: [1] t1 pri=110 remaining=4")
	assert.Contains(t, text, "L2: [2] t2 pri=75")
	assert.Contains(t, text, "L3: [3] t3 pri=30")

	// Dump is read-only.
	assert.Equal(t, 1, srv.FindNextToRun().ID())
	assert.Equal(t, 2, srv.FindNextToRun().ID())
	assert.Equal(t, 3, srv.FindNextToRun().ID())
}

func TestStartAging(t *testing.T) {
	interrupts := &fakeInterrupts{level: kernel.IntOff}
	kctx := kernel.NewContext(interrupts, nil)
	srv, store, err := NewFromConfig(kctx, &fakeSwitcher{}, nil)
	require.NoError(t, err)

	// One promotion candidate: tier-2 resident one aging pass away from
	// the tier-1 band.
	srv.ReadyToRun(&fakeUnit{id: 1, priority: 95, ageBy: 10})

	// The timer collaborator runs with interrupts enabled; each pass
	// masks them for its own duration.
	interrupts.SetLevel(kernel.IntOn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.StartAging(ctx, time.Millisecond) }()

	assert.Eventually(t, func() bool {
		for _, event := range store.Items() {
			if event.Kind == trace.KindRemoved && event.Tier == "L2" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	srv.Stop()

	// The pass restored the interrupt level it found.
	assert.Equal(t, kernel.IntOn, interrupts.Level())

	interrupts.SetLevel(kernel.IntOff)
	next := srv.FindNextToRun()
	require.NotNil(t, next)
	assert.GreaterOrEqual(t, next.Priority(), 100)
}
