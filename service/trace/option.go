package trace

// Option customises a Service.
type Option func(s *Service)

// WithQueue replaces the default in-memory event queue.
func WithQueue(queue Queue[Event]) Option {
	return func(s *Service) { s.queue = queue }
}

// WithHandler registers a handler receiving every delivered event.
func WithHandler(handlers ...Handler) Option {
	return func(s *Service) { s.handlers = append(s.handlers, handlers...) }
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(s *Service) { s.session = id }
}
