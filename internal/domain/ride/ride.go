// Package ride implements a single amusement ride: its FIFO waiting queue,
// its ride history, capacity-bounded cycles, and CSV persistence of history.
//
// A Ride is single-threaded by contract. Every operation runs to completion,
// reports its outcome through the logger, and either succeeds or fails
// without changing queue, history, or cycle count (import is the one
// exception: lines before a failure stay committed).
package ride

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/okian/ridequeue/internal/adapters/csvfile"
	"github.com/okian/ridequeue/internal/adapters/mq/queue"
	"github.com/okian/ridequeue/internal/adapters/repository"
	"github.com/okian/ridequeue/internal/domain/model"
	"github.com/okian/ridequeue/pkg/logger"
	"github.com/okian/ridequeue/pkg/metrics"
)

// metricsComponent is the component label on failure metrics.
const metricsComponent = "ride"

// labeled is implemented by collaborators whose metrics carry the ride name.
type labeled interface {
	SetName(name string)
}

// Entry is one line of a queue or history listing. Position is 1-based.
type Entry struct {
	Position int
	Visitor  model.VisitorRecord
}

func (e Entry) String() string {
	return fmt.Sprintf("%d. %s", e.Position, e.Visitor)
}

// CycleReport describes a completed cycle.
type CycleReport struct {
	ID     string // correlates the cycle's log lines
	Ride   string
	Cycle  int                   // cycle count after this run
	Riders []model.VisitorRecord // moved to history, in boarding order
}

// Moved returns how many visitors the cycle carried.
func (c CycleReport) Moved() int { return len(c.Riders) }

// ImportReport describes an ImportHistory call.
type ImportReport struct {
	Path     string
	Imported int
	Skipped  []csvfile.LineError
}

// Ride owns a waiting queue and a history. The zero value is not usable; use New.
type Ride struct {
	operator  *model.Employee
	name      string
	rideType  string
	maxRiders int
	cycles    int

	queue   queue.Queue
	history repository.Store

	logger logger.Logger
}

// New creates a ride. operator may be nil; a ride without one cannot cycle.
// maxRiders must be positive.
func New(operator *model.Employee, name, rideType string, maxRiders int, opts ...Option) (*Ride, error) {
	if maxRiders <= 0 {
		return nil, fmt.Errorf("%w: max riders must be positive, got %d", ErrInvalidArgument, maxRiders)
	}

	r := &Ride{
		operator:  operator,
		name:      name,
		rideType:  rideType,
		maxRiders: maxRiders,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.queue == nil {
		r.queue = queue.NewInMemoryQueue(queue.WithName(name))
	}
	if r.history == nil {
		r.history = repository.NewSliceStore(repository.WithName(name))
	}
	r.logger = r.logger.Named("ride")

	return r, nil
}

// Operator returns the assigned operator, or nil.
func (r *Ride) Operator() *model.Employee { return r.operator }

// SetOperator assigns or clears (nil) the operator.
func (r *Ride) SetOperator(e *model.Employee) { r.operator = e }

func (r *Ride) Name() string     { return r.name }
func (r *Ride) Type() string     { return r.rideType }
func (r *Ride) SetType(t string) { r.rideType = t }
func (r *Ride) MaxRiders() int   { return r.maxRiders }

// SetName renames the ride. A queue or history store that labels its
// metrics by ride name is relabelled too.
func (r *Ride) SetName(name string) {
	r.name = name
	for _, c := range []any{r.queue, r.history} {
		if l, ok := c.(labeled); ok {
			l.SetName(name)
		}
	}
}

// SetMaxRiders changes the per-cycle capacity. n must be positive.
func (r *Ride) SetMaxRiders(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: max riders must be positive, got %d", ErrInvalidArgument, n)
	}
	r.maxRiders = n
	return nil
}

// Cycles returns the number of completed cycles.
func (r *Ride) Cycles() int { return r.cycles }

// QueueLen returns the number of waiting visitors.
func (r *Ride) QueueLen(ctx context.Context) int { return r.queue.Len(ctx) }

// Enqueue appends v to the tail of the waiting queue.
func (r *Ride) Enqueue(ctx context.Context, v *model.VisitorRecord) error {
	if v == nil {
		return r.fail(ctx, "cannot add absent visitor to queue", ErrInvalidArgument)
	}
	r.queue.Enqueue(ctx, *v)
	r.logger.Info(ctx, "visitor added to queue",
		logger.String("ride", r.name),
		logger.String("visitor", v.Name),
		logger.Int("queueLength", r.queue.Len(ctx)),
	)
	return nil
}

// DequeueFront removes and returns the visitor at the head of the queue.
func (r *Ride) DequeueFront(ctx context.Context) (model.VisitorRecord, error) {
	v, err := r.queue.Dequeue(ctx)
	if err != nil {
		return model.VisitorRecord{}, r.fail(ctx, "cannot remove visitor", ErrEmptyQueue)
	}
	r.logger.Info(ctx, "visitor removed from queue",
		logger.String("ride", r.name),
		logger.String("visitor", v.Name),
		logger.Int("queueLength", r.queue.Len(ctx)),
	)
	return v, nil
}

// ListQueue returns the waiting queue front to back without changing it.
// An empty queue yields an empty slice and an "empty" report.
func (r *Ride) ListQueue(ctx context.Context) []Entry {
	entries := r.list(r.queue.All(ctx))
	if len(entries) == 0 {
		r.logger.Info(ctx, "waiting queue is empty", logger.String("ride", r.name))
		return entries
	}
	r.report(ctx, "waiting queue", entries)
	return entries
}

// RecordVisit appends v to the tail of the history.
func (r *Ride) RecordVisit(ctx context.Context, v *model.VisitorRecord) error {
	if v == nil {
		return r.fail(ctx, "cannot add absent visitor to history", ErrInvalidArgument)
	}
	r.appendHistory(ctx, *v)
	return nil
}

// ContainsVisitor reports whether some history entry has v's VisitorID.
func (r *Ride) ContainsVisitor(ctx context.Context, v *model.VisitorRecord) bool {
	if v == nil || r.history.Count(ctx) == 0 {
		return false
	}
	return r.history.Contains(ctx, v.VisitorID)
}

// HistoryCount returns the number of history entries.
func (r *Ride) HistoryCount(ctx context.Context) int { return r.history.Count(ctx) }

// History yields the history front to back, in insertion or sorted order.
func (r *Ride) History(ctx context.Context) iter.Seq[model.VisitorRecord] {
	return r.history.All(ctx)
}

// ListHistory returns the history as a numbered listing.
// An empty history yields an empty slice and an "empty" report.
func (r *Ride) ListHistory(ctx context.Context) []Entry {
	entries := r.list(r.History(ctx))
	if len(entries) == 0 {
		r.logger.Info(ctx, "ride history is empty", logger.String("ride", r.name))
		return entries
	}
	r.report(ctx, "ride history", entries)
	return entries
}

// SortHistory stably sorts history by age, then name ignoring case.
func (r *Ride) SortHistory(ctx context.Context) error {
	if err := r.history.SortStable(ctx, model.CompareVisitors); err != nil {
		r.logger.Info(ctx, "ride history is empty, no sorting needed", logger.String("ride", r.name))
		metrics.RecordError(metricsComponent, r.name, errorKind(ErrEmptyHistory))
		return ErrEmptyHistory
	}
	r.logger.Info(ctx, "ride history sorted by age then name",
		logger.String("ride", r.name),
		logger.Int("records", r.history.Count(ctx)),
	)
	return nil
}

// RunOneCycle boards up to MaxRiders visitors from the head of the queue,
// appends them to history in boarding order, and increments the cycle count.
func (r *Ride) RunOneCycle(ctx context.Context) (CycleReport, error) {
	if r.operator == nil {
		return CycleReport{}, r.fail(ctx, "cannot run cycle", ErrNoOperator)
	}
	waiting := r.queue.Len(ctx)
	if waiting == 0 {
		return CycleReport{}, r.fail(ctx, "cannot run cycle", ErrEmptyQueue)
	}

	rep := CycleReport{
		ID:   uuid.NewString(),
		Ride: r.name,
	}
	planned := min(r.maxRiders, waiting)
	r.logger.Info(ctx, "starting cycle",
		logger.String("ride", r.name),
		logger.String("cycleID", rep.ID),
		logger.Int("cycle", r.cycles+1),
		logger.Int("plannedRiders", planned),
	)

	rep.Riders = r.queue.DequeueN(ctx, planned)
	for _, v := range rep.Riders {
		r.appendHistory(ctx, v)
	}
	r.cycles++
	rep.Cycle = r.cycles

	metrics.RecordCycle(r.name, rep.Moved())
	r.logger.Info(ctx, "cycle complete",
		logger.String("ride", r.name),
		logger.String("cycleID", rep.ID),
		logger.Int("riders", rep.Moved()),
		logger.Int("totalCycles", r.cycles),
	)
	return rep, nil
}

// ExportHistory writes the history to path as CSV, in current order.
// It returns the number of records written.
func (r *Ride) ExportHistory(ctx context.Context, path string) (int, error) {
	if r.history.Count(ctx) == 0 {
		return 0, r.fail(ctx, "cannot export", ErrEmptyHistory)
	}

	start := time.Now()
	n, err := csvfile.WriteFile(path, r.History(ctx))
	if err != nil {
		return n, r.fail(ctx, "failed to export history", err, logger.String("path", path))
	}

	metrics.RecordExport(r.name, n, float64(time.Since(start).Microseconds())/1000)
	r.logger.Info(ctx, "history exported",
		logger.String("ride", r.name),
		logger.String("path", path),
		logger.Int("records", n),
	)
	return n, nil
}

// ImportHistory appends every valid record found in the CSV file at path to
// the history, in file order. Invalid lines are skipped with a warning.
func (r *Ride) ImportHistory(ctx context.Context, path string) (ImportReport, error) {
	start := time.Now()
	res, err := csvfile.ReadFile(path, func(v model.VisitorRecord) {
		r.history.Append(ctx, v)
	})
	rep := ImportReport{Path: path, Imported: res.Imported, Skipped: res.Skipped}

	for _, skipped := range res.Skipped {
		metrics.RecordError(metricsComponent, r.name, errorKind(skipped))
		r.logger.Warn(ctx, "skipping invalid record",
			logger.String("ride", r.name),
			logger.Int("line", skipped.Line),
			logger.String("record", skipped.Text),
			logger.Error(skipped.Err),
		)
	}
	if !errors.Is(err, ErrNotFound) {
		metrics.RecordImport(r.name, res.Imported, len(res.Skipped), float64(time.Since(start).Microseconds())/1000)
	}

	if err != nil {
		return rep, r.fail(ctx, "failed to import history", err,
			logger.String("path", path),
			logger.Int("imported", res.Imported),
		)
	}

	r.logger.Info(ctx, "history imported",
		logger.String("ride", r.name),
		logger.String("path", path),
		logger.Int("imported", res.Imported),
		logger.Int("skipped", len(res.Skipped)),
	)
	return rep, nil
}

func (r *Ride) appendHistory(ctx context.Context, v model.VisitorRecord) { //nolint:gocritic // hugeParam: records are values
	r.history.Append(ctx, v)
	r.logger.Info(ctx, "visitor added to history",
		logger.String("ride", r.name),
		logger.String("visitor", v.Name),
	)
}

// list numbers a sequence. It ranges over the sequence once and never indexes
// the underlying container.
func (r *Ride) list(seq iter.Seq[model.VisitorRecord]) []Entry {
	entries := []Entry{}
	pos := 0
	for v := range seq {
		pos++
		entries = append(entries, Entry{Position: pos, Visitor: v})
	}
	return entries
}

func (r *Ride) report(ctx context.Context, what string, entries []Entry) {
	r.logger.Info(ctx, what,
		logger.String("ride", r.name),
		logger.Int("visitors", len(entries)),
	)
	for _, e := range entries {
		r.logger.Info(ctx, e.String(), logger.String("ride", r.name))
	}
}

// fail reports err and returns it unchanged.
func (r *Ride) fail(ctx context.Context, msg string, err error, fields ...logger.Field) error {
	metrics.RecordError(metricsComponent, r.name, errorKind(err))
	fields = append(fields, logger.String("ride", r.name), logger.Error(err))
	r.logger.Warn(ctx, msg, fields...)
	return err
}
