package ride

import (
	"github.com/okian/ridequeue/internal/adapters/mq/queue"
	"github.com/okian/ridequeue/internal/adapters/repository"
	"github.com/okian/ridequeue/pkg/logger"
)

// Option applies a configuration option to a Ride.
type Option func(*Ride)

// WithLogger sets the logger used for operation reports.
func WithLogger(l logger.Logger) Option {
	return func(r *Ride) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithQueue replaces the default in-memory waiting queue.
func WithQueue(q queue.Queue) Option {
	return func(r *Ride) {
		if q != nil {
			r.queue = q
		}
	}
}

// WithHistoryStore replaces the default in-memory history store.
func WithHistoryStore(s repository.Store) Option {
	return func(r *Ride) {
		if s != nil {
			r.history = s
		}
	}
}
