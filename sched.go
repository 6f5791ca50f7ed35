package sched

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/nanokern/sched/kernel"
	"github.com/nanokern/sched/model/unit"
	"github.com/nanokern/sched/runtime/dispatch"
	"github.com/nanokern/sched/runtime/ready"
	"github.com/nanokern/sched/service/trace"
	"github.com/nanokern/sched/tracing"
)

// Service is the scheduler façade wiring the kernel context, the tiered
// ready set, the dispatcher and the diagnostic trace service.
type Service struct {
	kctx         *kernel.Context
	set          *ready.Set
	dispatcher   *dispatch.Dispatcher
	traceService *trace.Service

	agingInterval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates a scheduler operating in kctx, transferring control
// through switcher.
func New(kctx *kernel.Context, switcher kernel.Switcher, opts ...Option) *Service {
	s := &Service{
		kctx:   kctx,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	emitter := &eventEmitter{s: s}
	s.set = ready.New(ready.WithObserver(emitter))
	s.dispatcher = dispatch.New(kctx, s.set, switcher, dispatch.WithObserver(emitter))
	return s
}

// ReadyToRun marks u ready and admits it into the tier matching its
// priority band. Panics with ErrInadmissiblePriority when the priority
// is outside [0,149], before any tier is mutated.
func (s *Service) ReadyToRun(u unit.Unit) {
	s.assertMasked()
	s.set.Admit(u)
}

// FindNextToRun removes and returns the next unit to run, honouring
// strict tier precedence, or nil when the system is idle.
func (s *Service) FindNextToRun() unit.Unit {
	return s.dispatcher.FindNextToRun()
}

// Run dispatches the processor to next. See dispatch.Dispatcher.Run for
// the full contract, in particular the non-returning semantics of the
// context transfer.
func (s *Service) Run(next unit.Unit, finishing bool) {
	s.dispatcher.Run(next, finishing)
}

// ShouldPreempt reports whether the tier-1 head should preempt the
// currently executing unit. Read-only.
func (s *Service) ShouldPreempt() bool {
	return s.dispatcher.ShouldPreempt()
}

// Age runs one aging/promotion pass over all three tiers.
func (s *Service) Age() {
	s.assertMasked()
	s.set.Age()
}

// PendingDestruction reports whether a finished unit awaits release.
func (s *Service) PendingDestruction() bool {
	return s.dispatcher.PendingDestruction()
}

// Trace returns the diagnostic event service, or nil when tracing is
// disabled.
func (s *Service) Trace() *trace.Service {
	return s.traceService
}

// Dump writes the ready-set contents to w, tier by tier, via the
// read-only traversal. Diagnostic only.
func (s *Service) Dump(w io.Writer) {
	fmt.Fprintln(w, "Ready set contents:")
	for _, tier := range ready.Tiers {
		fmt.Fprintf(w, "%s:", tier)
		s.set.ForEach(tier, func(u unit.Unit) {
			fmt.Fprintf(w, " [%d] %s pri=%d remaining=%d", u.ID(), u.Name(), u.Priority(), unit.Remaining(u))
		})
		fmt.Fprintln(w)
	}
}

// StartAging runs aging passes every interval until ctx is cancelled or
// Stop is called. Each pass masks interrupts for its duration and
// restores the previous level afterwards; the waiting itself happens
// unmasked, outside the scheduler.
func (s *Service) StartAging(ctx context.Context, interval time.Duration) error {
	defer close(s.doneCh)

	if interval <= 0 {
		interval = s.agingInterval
	}
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.agePass(ctx)
		}
	}
}

// Stop terminates a running StartAging loop and waits for it to exit.
// Call only after StartAging has been started; the loop is one-shot.
func (s *Service) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *Service) agePass(ctx context.Context) {
	_, span := tracing.StartSpan(ctx, "scheduler.aging", "INTERNAL")
	defer tracing.EndSpan(span, nil)

	interrupts := s.kctx.Interrupts()
	old := interrupts.SetLevel(kernel.IntOff)
	s.set.Age()
	interrupts.SetLevel(old)

	span.WithAttributes(map[string]string{
		"units": fmt.Sprintf("%d", s.set.Total()),
	})
}

func (s *Service) assertMasked() {
	if s.kctx.Interrupts().Level() != kernel.IntOff {
		panic(ErrInterruptsUnmasked)
	}
}

// eventEmitter adapts ready/dispatch observer callbacks into trace
// events tagged with the kernel tick counter.
type eventEmitter struct {
	s *Service
}

func (e *eventEmitter) UnitInserted(tier ready.Tier, u unit.Unit) {
	e.publish(trace.KindInserted, u, tier.String(), 0)
}

func (e *eventEmitter) UnitRemoved(tier ready.Tier, u unit.Unit) {
	e.publish(trace.KindRemoved, u, tier.String(), 0)
}

func (e *eventEmitter) UnitDispatched(next, prev unit.Unit) {
	prevID := 0
	if prev != nil {
		prevID = prev.ID()
	}
	e.publish(trace.KindDispatched, next, "", prevID)
}

func (e *eventEmitter) publish(kind trace.Kind, u unit.Unit, tier string, prevID int) {
	if e.s.traceService == nil {
		return
	}
	e.s.traceService.Publish(&trace.Event{
		Tick:      e.s.kctx.Stats().TotalTicks,
		Kind:      kind,
		UnitID:    u.ID(),
		UnitName:  u.Name(),
		Tier:      tier,
		Remaining: unit.Remaining(u),
		PrevID:    prevID,
	})
}
