package demo

import "github.com/okian/ridequeue/pkg/logger"

// Option applies a configuration option to a Runner.
type Option func(*Runner)

// WithLogger sets the logger handed to every ride the runner builds.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithExportPath sets the CSV file written by the export part and read by the import part.
func WithExportPath(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.exportPath = path
		}
	}
}

// WithCycleVisitors sets how many generated visitors join the cycle part's queue.
func WithCycleVisitors(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.cycleVisitors = n
		}
	}
}
