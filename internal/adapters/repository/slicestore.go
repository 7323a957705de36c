package repository

import (
	"context"
	"iter"
	"slices"

	"github.com/okian/ridequeue/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultInitialCapacity = 32
	defaultName            = "unnamed"
)

// SliceStore is an in-memory Store backed by a slice.
// It is owned by a single ride and is not safe for concurrent use.
type SliceStore struct {
	records         []Record
	initialCapacity int
	name            string
}

// NewSliceStore creates an empty store.
func NewSliceStore(opts ...Option) *SliceStore {
	s := &SliceStore{
		initialCapacity: defaultInitialCapacity,
		name:            defaultName,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.records = make([]Record, 0, s.initialCapacity)
	metrics.UpdateHistorySize(s.name, 0)
	return s
}

func (s *SliceStore) Append(_ context.Context, r Record) { //nolint:gocritic // hugeParam: store keeps values
	s.records = append(s.records, r)
	metrics.UpdateHistorySize(s.name, len(s.records))
}

func (s *SliceStore) Contains(ctx context.Context, visitorID string) bool {
	for r := range s.All(ctx) {
		if r.VisitorID == visitorID {
			return true
		}
	}
	return false
}

func (s *SliceStore) Count(_ context.Context) int {
	return len(s.records)
}

// All yields records front to back. Appends made while ranging are not seen.
func (s *SliceStore) All(_ context.Context) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		n := len(s.records)
		for i := 0; i < n; i++ {
			if !yield(s.records[i]) {
				return
			}
		}
	}
}

func (s *SliceStore) SortStable(_ context.Context, cmp func(a, b Record) int) error {
	if len(s.records) == 0 {
		return ErrEmpty
	}
	slices.SortStableFunc(s.records, cmp)
	metrics.RecordHistorySort(s.name)
	return nil
}

// SetName relabels the store's metrics. The old label's size gauge drops
// to zero.
func (s *SliceStore) SetName(name string) {
	if name == "" || name == s.name {
		return
	}
	metrics.UpdateHistorySize(s.name, 0)
	s.name = name
	metrics.UpdateHistorySize(s.name, len(s.records))
}
