package trace

import "context"

// Queue buffers events between the publisher and the listener.
type Queue[T any] interface {
	// TryPublish enqueues t without blocking. It reports false when the
	// queue is full and the item was dropped.
	TryPublish(t *T) bool

	// Consume retrieves a single item, blocking until one is available
	// or ctx is cancelled.
	Consume(ctx context.Context) (*T, error)

	// TryConsume retrieves a single item without blocking, or nil when
	// the queue is empty.
	TryConsume() *T

	// Size returns the number of buffered items.
	Size() int
}

// Handler consumes delivered events. Handlers run on the listener
// goroutine and must not call back into the scheduler.
type Handler func(event *Event)
