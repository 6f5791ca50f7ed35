package trace

import "context"

// Listener drains the queue on a background goroutine and fans events
// out to the registered handlers.
type Listener struct {
	queue    Queue[Event]
	handlers []Handler
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewListener creates a listener over queue delivering to handlers.
func NewListener(queue Queue[Event], handlers []Handler) *Listener {
	return &Listener{queue: queue, handlers: handlers}
}

// Start begins draining the queue.
func (l *Listener) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})
	go func() {
		defer close(l.done)
		for {
			event, err := l.queue.Consume(ctx)
			if err != nil {
				return
			}
			for _, handler := range l.handlers {
				handler(event)
			}
		}
	}()
}

// Stop cancels the listener and waits for the goroutine to exit. Events
// still buffered in the queue at that point are dropped.
func (l *Listener) Stop() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
	l.cancel = nil
}
