package memory

import (
	"context"
	"sync"
)

// Config for the in-memory queue.
type Config struct {
	QueueBuffer int
}

// DefaultConfig returns a standard configuration for the memory queue.
func DefaultConfig() Config {
	return Config{QueueBuffer: 256}
}

// Queue implements an in-memory trace.Queue backed by a buffered channel.
type Queue[T any] struct {
	items chan *T
}

// NewQueue creates a new in-memory queue.
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{items: make(chan *T, config.QueueBuffer)}
}

// TryPublish enqueues t without blocking; a full queue drops the item
// and reports false.
func (q *Queue[T]) TryPublish(t *T) bool {
	select {
	case q.items <- t:
		return true
	default:
		return false
	}
}

// Consume retrieves a single item from the queue.
func (q *Queue[T]) Consume(ctx context.Context) (*T, error) {
	select {
	case item := <-q.items:
		return item, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryConsume retrieves a single item without blocking, or nil when the
// queue is empty.
func (q *Queue[T]) TryConsume() *T {
	select {
	case item := <-q.items:
		return item
	default:
		return nil
	}
}

// Size returns the current number of buffered items.
func (q *Queue[T]) Size() int {
	return len(q.items)
}

// Store retains the most recent items delivered to it, bounded by
// capacity. Useful as a diagnostics handler and in tests.
type Store[T any] struct {
	capacity int
	mu       sync.Mutex
	items    []*T
}

// NewStore creates a store retaining up to capacity items.
func NewStore[T any](capacity int) *Store[T] {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Store[T]{capacity: capacity}
}

// Add appends t, evicting the oldest item when at capacity.
func (s *Store[T]) Add(t *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == s.capacity {
		copy(s.items, s.items[1:])
		s.items = s.items[:len(s.items)-1]
	}
	s.items = append(s.items, t)
}

// Items returns a snapshot of the retained items, oldest first.
func (s *Store[T]) Items() []*T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of retained items.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
