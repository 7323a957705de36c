package repository

// Option applies a configuration option to the SliceStore.
type Option func(*SliceStore)

// WithInitialCapacity preallocates room for n records.
func WithInitialCapacity(n int) Option {
	return func(s *SliceStore) {
		if n > 0 {
			s.initialCapacity = n
		}
	}
}

// WithName sets the ride name used to label history metrics.
func WithName(name string) Option {
	return func(s *SliceStore) {
		if name != "" {
			s.name = name
		}
	}
}
