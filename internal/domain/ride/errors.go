package ride

import (
	"errors"

	"github.com/okian/ridequeue/internal/adapters/csvfile"
)

// Sentinel error kinds for ride operations. Every one of them leaves the ride
// usable; callers branch with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyQueue      = errors.New("queue is empty")
	ErrEmptyHistory    = errors.New("history is empty")
	ErrNoOperator      = errors.New("no operator assigned")

	// Import/export failures surface the codec's kinds unchanged.
	ErrNotFound        = csvfile.ErrNotFound
	ErrIO              = csvfile.ErrIO
	ErrMalformedRecord = csvfile.ErrMalformedRecord
)

// errorKind maps an error to the label used in failure metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrEmptyQueue), errors.Is(err, ErrEmptyHistory):
		return "empty_collection"
	case errors.Is(err, ErrNoOperator):
		return "precondition_failed"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformedRecord):
		return "malformed_record"
	case errors.Is(err, ErrIO):
		return "io_failure"
	default:
		return "unknown"
	}
}
