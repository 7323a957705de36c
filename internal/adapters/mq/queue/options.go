package queue

// Option applies a configuration option to the InMemoryQueue.
type Option func(*InMemoryQueue)

// WithInitialCapacity preallocates room for n visitors.
func WithInitialCapacity(n int) Option {
	return func(q *InMemoryQueue) {
		if n > 0 {
			q.initialCapacity = n
		}
	}
}

// WithName sets the ride name used to label queue metrics.
func WithName(name string) Option {
	return func(q *InMemoryQueue) {
		if name != "" {
			q.name = name
		}
	}
}
