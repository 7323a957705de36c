// Package repository defines the ride history store interface and errors.
package repository

import (
	"context"
	"iter"

	"github.com/okian/ridequeue/internal/domain/model"
)

// Record is a single history row.
type Record = model.VisitorRecord

// Store provides ordered, append-mostly access to a ride's history.
type Store interface {
	// Append adds a record to the tail.
	Append(ctx context.Context, r Record)

	// Contains reports whether any record carries visitorID.
	Contains(ctx context.Context, visitorID string) bool

	// Count returns the number of records.
	Count(ctx context.Context) int

	// All yields records in their current order, front to back.
	All(ctx context.Context) iter.Seq[Record]

	// SortStable reorders records by cmp, keeping the relative order of ties.
	// Returns ErrEmpty if there is nothing to sort.
	SortStable(ctx context.Context, cmp func(a, b Record) int) error
}
