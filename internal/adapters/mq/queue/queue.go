// Package queue defines the contract for a ride's waiting line.
//
// The in-memory implementation is a strict FIFO owned by a single ride and
// is not safe for concurrent use.
package queue

import (
	"context"
	"iter"
	"slices"

	"github.com/okian/ridequeue/internal/domain/model"
	"github.com/okian/ridequeue/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultInitialCapacity = 16
	defaultName            = "unnamed"
)

// Visitor is the payload type held by the queue.
type Visitor = model.VisitorRecord

// Queue provides FIFO enqueue and dequeue semantics.
type Queue interface {
	// Enqueue appends a visitor to the tail.
	Enqueue(ctx context.Context, v Visitor)

	// Dequeue removes and returns the head.
	// Returns ErrEmpty if there is nothing to remove.
	Dequeue(ctx context.Context) (Visitor, error)

	// DequeueN removes up to n visitors from the head, in FIFO order.
	DequeueN(ctx context.Context, n int) []Visitor

	// Len returns the current number of queued visitors.
	Len(ctx context.Context) int

	// All yields the queued visitors front to back without removing them.
	All(ctx context.Context) iter.Seq[Visitor]
}

// InMemoryQueue implements Queue on a slice with a moving head.
type InMemoryQueue struct {
	items           []Visitor
	head            int
	initialCapacity int
	name            string
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		initialCapacity: defaultInitialCapacity,
		name:            defaultName,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.items = make([]Visitor, 0, q.initialCapacity)
	metrics.UpdateQueueSize(q.name, 0)

	return q
}

// Enqueue appends a visitor to the tail.
func (q *InMemoryQueue) Enqueue(ctx context.Context, v Visitor) { //nolint:gocritic // hugeParam: queue stores values
	q.items = append(q.items, v)
	metrics.RecordEnqueue(q.name)
	metrics.UpdateQueueSize(q.name, q.Len(ctx))
}

// Dequeue removes and returns the head.
func (q *InMemoryQueue) Dequeue(ctx context.Context) (Visitor, error) {
	if q.Len(ctx) == 0 {
		return Visitor{}, ErrEmpty
	}
	out := q.DequeueN(ctx, 1)
	return out[0], nil
}

// DequeueN removes up to n visitors from the head, in FIFO order.
func (q *InMemoryQueue) DequeueN(ctx context.Context, n int) []Visitor {
	n = min(n, q.Len(ctx))
	if n <= 0 {
		return nil
	}

	out := make([]Visitor, n)
	copy(out, q.items[q.head:q.head+n])
	clear(q.items[q.head : q.head+n])
	q.head += n
	q.compact()

	metrics.RecordDequeue(q.name, n)
	metrics.UpdateQueueSize(q.name, q.Len(ctx))
	return out
}

// Len returns the current number of queued visitors.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.items) - q.head
}

// All yields the queued visitors front to back without removing them.
// The sequence reads a snapshot taken when iteration starts.
func (q *InMemoryQueue) All(_ context.Context) iter.Seq[Visitor] {
	return func(yield func(Visitor) bool) {
		snapshot := slices.Clone(q.items[q.head:])
		for _, v := range snapshot {
			if !yield(v) {
				return
			}
		}
	}
}

// SetName relabels the queue's metrics. The old label's size gauge drops
// to zero.
func (q *InMemoryQueue) SetName(name string) {
	if name == "" || name == q.name {
		return
	}
	metrics.UpdateQueueSize(q.name, 0)
	q.name = name
	metrics.UpdateQueueSize(q.name, len(q.items)-q.head)
}

// compact drops the consumed prefix once it dominates the backing array.
func (q *InMemoryQueue) compact() {
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
		return
	}
	if q.head > len(q.items)/2 {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
}
