package trace

import (
	"github.com/nanokern/sched/internal/clock"
	"github.com/nanokern/sched/internal/idgen"
	"github.com/nanokern/sched/service/trace/memory"
)

// Service buffers scheduler diagnostic events in a queue and delivers
// them to handlers on a background listener. Every event is stamped with
// the service session identifier before it is queued.
type Service struct {
	session  string
	queue    Queue[Event]
	listener *Listener
	handlers []Handler
}

// New creates a trace service. Without options it buffers events in an
// in-memory queue with the default capacity and delivers them nowhere.
func New(opts ...Option) *Service {
	s := &Service{session: idgen.New()}
	for _, opt := range opts {
		opt(s)
	}
	if s.queue == nil {
		s.queue = memory.NewQueue[Event](memory.DefaultConfig())
	}
	s.listener = NewListener(s.queue, s.handlers)
	s.listener.Start()
	return s
}

// SessionID returns the identifier stamped on every published event.
func (s *Service) SessionID() string {
	return s.session
}

// Publish stamps and enqueues event without blocking. When the queue is
// full the event is silently dropped; publishing never affects the
// scheduling control flow.
func (s *Service) Publish(event *Event) {
	event.SessionID = s.session
	event.CreatedAt = clock.Now()
	s.queue.TryPublish(event)
}

// Flush synchronously delivers any still-buffered events to the
// handlers. Intended for shutdown and tests.
func (s *Service) Flush() {
	for {
		event := s.queue.TryConsume()
		if event == nil {
			return
		}
		for _, handler := range s.handlers {
			handler(event)
		}
	}
}

// Close stops the listener. Buffered events are flushed first.
func (s *Service) Close() {
	s.listener.Stop()
	s.Flush()
}
