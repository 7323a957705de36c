// Package demo replays the park's walkthrough: one ride per feature, fixed
// sample visitors, every step reported through the logger.
package demo

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/ridequeue/internal/domain/model"
	"github.com/okian/ridequeue/internal/domain/ride"
	"github.com/okian/ridequeue/pkg/logger"
)

// Part names one section of the walkthrough.
type Part string

const (
	PartQueue   Part = "queue"
	PartHistory Part = "history"
	PartSort    Part = "sort"
	PartCycle   Part = "cycle"
	PartExport  Part = "export"
	PartImport  Part = "import"
	PartAll     Part = "all"
)

// Default runner configuration constants.
const (
	DefaultExportPath    = "carousel_ride_history.csv"
	DefaultCycleVisitors = 10

	cycleFirstID = 17
)

// Parts returns every runnable part in walkthrough order.
func Parts() []Part {
	return []Part{PartQueue, PartHistory, PartSort, PartCycle, PartExport, PartImport}
}

// ParsePart maps a name to a Part. The match ignores case and surrounding space.
func ParsePart(s string) (Part, error) {
	p := Part(strings.ToLower(strings.TrimSpace(s)))
	if p == PartAll {
		return p, nil
	}
	for _, known := range Parts() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPart, s)
}

// HistoryResult is the outcome of the history part.
type HistoryResult struct {
	Checked  model.VisitorRecord
	Contains bool
	Count    int
	Listing  []ride.Entry
}

// SortResult holds the sort part's listing before and after sorting.
type SortResult struct {
	Before []ride.Entry
	After  []ride.Entry
}

// CycleResult is the outcome of the cycle part.
type CycleResult struct {
	Report      ride.CycleReport
	QueueBefore []ride.Entry
	QueueAfter  []ride.Entry
	History     []ride.Entry
}

// ImportResult is the outcome of the import part.
type ImportResult struct {
	Report  ride.ImportReport
	Count   int
	Listing []ride.Entry
}

// Summary collects what each executed part produced. Parts that did not run
// leave their field at the zero value.
type Summary struct {
	Ran      []Part
	Queue    []ride.Entry
	History  HistoryResult
	Sort     SortResult
	Cycle    CycleResult
	Exported int
	Import   ImportResult
}

// Runner executes walkthrough parts.
type Runner struct {
	logger        logger.Logger
	exportPath    string
	cycleVisitors int
}

// NewRunner creates a Runner with default settings.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:        logger.Nop(),
		exportPath:    DefaultExportPath,
		cycleVisitors: DefaultCycleVisitors,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ExportPath returns the CSV path shared by the export and import parts.
func (r *Runner) ExportPath() string { return r.exportPath }

// Run executes the given parts in walkthrough order. PartAll, or no parts,
// runs everything. The first failing part stops the run.
func (r *Runner) Run(ctx context.Context, parts ...Part) (Summary, error) {
	var s Summary
	selected := r.selected(parts)

	for _, p := range Parts() {
		if !selected[p] {
			continue
		}
		r.logger.Info(ctx, "=== starting demo part ===", logger.String("part", string(p)))

		var err error
		switch p {
		case PartQueue:
			s.Queue, err = r.Queue(ctx)
		case PartHistory:
			s.History, err = r.History(ctx)
		case PartSort:
			s.Sort, err = r.Sort(ctx)
		case PartCycle:
			s.Cycle, err = r.Cycle(ctx)
		case PartExport:
			s.Exported, err = r.Export(ctx)
		case PartImport:
			s.Import, err = r.Import(ctx)
		}
		if err != nil {
			return s, fmt.Errorf("%w: %s: %w", ErrPartFailed, p, err)
		}
		s.Ran = append(s.Ran, p)
	}
	return s, nil
}

func (r *Runner) selected(parts []Part) map[Part]bool {
	set := make(map[Part]bool, len(parts))
	for _, p := range parts {
		if p == PartAll {
			return r.selected(nil)
		}
		set[p] = true
	}
	if len(set) == 0 {
		for _, p := range Parts() {
			set[p] = true
		}
	}
	return set
}

// Queue fills a two-seat roller coaster queue with five visitors, removes the
// front one, and returns the remaining queue listing.
func (r *Runner) Queue(ctx context.Context) ([]ride.Entry, error) {
	op := model.NewEmployee("P001", "John Doe", 35, "E001", "Roller Coaster Operator")
	coaster, err := ride.New(&op, "Roller Coaster", "Thrill Ride", 2, ride.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}

	for _, v := range []model.VisitorRecord{
		model.NewVisitor("V001", "Alice", 22, "VIS001", "Standard"),
		model.NewVisitor("V002", "Bob", 25, "VIS002", "VIP"),
		model.NewVisitor("V003", "Charlie", 18, "VIS003", "Standard"),
		model.NewVisitor("V004", "Diana", 30, "VIS004", "VIP"),
		model.NewVisitor("V005", "Eve", 28, "VIS005", "Standard"),
	} {
		if err := coaster.Enqueue(ctx, &v); err != nil {
			return nil, err
		}
	}
	coaster.ListQueue(ctx)

	if _, err := coaster.DequeueFront(ctx); err != nil {
		return nil, err
	}
	return coaster.ListQueue(ctx), nil
}

// History records five visits on an unstaffed ride, then checks containment,
// counts, and lists the history.
func (r *Runner) History(ctx context.Context) (HistoryResult, error) {
	storm, err := ride.New(nil, "Thunderstorm", "Water Ride", 4, ride.WithLogger(r.logger))
	if err != nil {
		return HistoryResult{}, err
	}

	for _, v := range []model.VisitorRecord{
		model.NewVisitor("V006", "Tom", 21, "VIS006", "Standard"),
		model.NewVisitor("V007", "Sherly", 24, "VIS007", "VIP"),
		model.NewVisitor("V008", "Ben", 19, "VIS008", "Standard"),
		model.NewVisitor("V009", "David", 27, "VIS009", "VIP"),
		model.NewVisitor("V010", "Lisa", 23, "VIS010", "Standard"),
	} {
		if err := storm.RecordVisit(ctx, &v); err != nil {
			return HistoryResult{}, err
		}
	}

	res := HistoryResult{Checked: model.NewVisitor("V007", "Sherly", 24, "VIS007", "VIP")}
	res.Contains = storm.ContainsVisitor(ctx, &res.Checked)
	res.Count = storm.HistoryCount(ctx)
	r.logger.Info(ctx, "history lookup",
		logger.String("visitor", res.Checked.Name),
		logger.Bool("inHistory", res.Contains),
		logger.Int("total", res.Count),
	)
	res.Listing = storm.ListHistory(ctx)
	return res, nil
}

// Sort records five unordered visits and sorts them by age then name.
func (r *Runner) Sort(ctx context.Context) (SortResult, error) {
	wheel, err := ride.New(nil, "Ferris Wheel", "Family Ride", 6, ride.WithLogger(r.logger))
	if err != nil {
		return SortResult{}, err
	}

	for _, v := range []model.VisitorRecord{
		model.NewVisitor("V011", "Mike", 32, "VIS011", "Standard"),
		model.NewVisitor("V012", "Anna", 22, "VIS012", "VIP"),
		model.NewVisitor("V013", "Jack", 22, "VIS013", "Standard"),
		model.NewVisitor("V014", "Zoe", 28, "VIS014", "VIP"),
		model.NewVisitor("V015", "Chris", 25, "VIS015", "Standard"),
	} {
		if err := wheel.RecordVisit(ctx, &v); err != nil {
			return SortResult{}, err
		}
	}

	var res SortResult
	res.Before = wheel.ListHistory(ctx)
	if err := wheel.SortHistory(ctx); err != nil {
		return res, err
	}
	res.After = wheel.ListHistory(ctx)
	return res, nil
}

// Cycle queues generated visitors on a three-seat log flume and runs one cycle.
func (r *Runner) Cycle(ctx context.Context) (CycleResult, error) {
	op := model.NewEmployee("P002", "Sarah", 30, "E002", "Water Ride Operator")
	flume, err := ride.New(&op, "Log Flume", "Water Ride", 3, ride.WithLogger(r.logger))
	if err != nil {
		return CycleResult{}, err
	}

	for i := 1; i <= r.cycleVisitors; i++ {
		v := generatedVisitor(i)
		if err := flume.Enqueue(ctx, &v); err != nil {
			return CycleResult{}, err
		}
	}

	var res CycleResult
	res.QueueBefore = flume.ListQueue(ctx)
	res.Report, err = flume.RunOneCycle(ctx)
	if err != nil {
		return res, err
	}
	res.QueueAfter = flume.ListQueue(ctx)
	res.History = flume.ListHistory(ctx)
	return res, nil
}

// Export records five children on the carousel and writes the history to
// the runner's export path.
func (r *Runner) Export(ctx context.Context) (int, error) {
	carousel, err := ride.New(nil, "Carousel", "Kids Ride", 5, ride.WithLogger(r.logger))
	if err != nil {
		return 0, err
	}

	for _, v := range []model.VisitorRecord{
		model.NewVisitor("V027", "Lily", 8, "VIS027", "Standard"),
		model.NewVisitor("V028", "Lucas", 7, "VIS028", "Standard"),
		model.NewVisitor("V029", "Emma", 9, "VIS029", "VIP"),
		model.NewVisitor("V030", "Noah", 6, "VIS030", "Standard"),
		model.NewVisitor("V031", "Olivia", 8, "VIS031", "VIP"),
	} {
		if err := carousel.RecordVisit(ctx, &v); err != nil {
			return 0, err
		}
	}
	return carousel.ExportHistory(ctx, r.exportPath)
}

// Import loads the export path into a fresh carousel and lists the result.
func (r *Runner) Import(ctx context.Context) (ImportResult, error) {
	carousel, err := ride.New(nil, "Carousel (Import)", "Kids Ride", 5, ride.WithLogger(r.logger))
	if err != nil {
		return ImportResult{}, err
	}

	var res ImportResult
	res.Report, err = carousel.ImportHistory(ctx, r.exportPath)
	if err != nil {
		return res, err
	}
	res.Count = carousel.HistoryCount(ctx)
	r.logger.Info(ctx, "total imported records", logger.Int("count", res.Count))
	res.Listing = carousel.ListHistory(ctx)
	return res, nil
}

// generatedVisitor builds the i-th (1-based) cycle visitor. Even-numbered
// visitors are VIP and ages wrap through 18..27.
func generatedVisitor(i int) model.VisitorRecord {
	id := cycleFirstID + i - 1
	membership := "Standard"
	if i%2 == 0 {
		membership = "VIP"
	}
	return model.NewVisitor(
		fmt.Sprintf("V%03d", id),
		fmt.Sprintf("Visitor%d", i),
		18+(i%10),
		fmt.Sprintf("VIS%03d", id),
		membership,
	)
}
