// Package cli wires configuration, logging, metrics, and the ride domain
// into the ridequeue command tree.
//
//	ridequeue
//	├── demo      replay the park walkthrough (--part, --export-path)
//	└── inspect   load a history CSV and print it (--sort, --json, --out)
//
// Persistent flags --log-level, --log-format and --metrics-addr override the
// loaded configuration.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/okian/ridequeue/internal/config"
	"github.com/okian/ridequeue/internal/demo"
	"github.com/okian/ridequeue/internal/domain/model"
	"github.com/okian/ridequeue/internal/domain/ride"
	"github.com/okian/ridequeue/pkg/logger"
	"github.com/okian/ridequeue/pkg/metrics"
)

const (
	version = "1.0.0"

	inspectRideType = "Inspect"
	inspectCapacity = 1
)

// globalFlags are the persistent flag values. Empty means "use config".
type globalFlags struct {
	logLevel    string
	logFormat   string
	metricsAddr string
}

// BuildCLI returns the root command.
func BuildCLI() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "ridequeue",
		Short: "Ride queue and history manager for an amusement park",
		Long: `ridequeue models a ride's waiting queue and ride history:
- FIFO waiting queue with capacity-bounded ride cycles
- ride history with stable age/name sorting
- CSV export and import of history`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "log format: text or json (overrides config)")
	rootCmd.PersistentFlags().StringVar(&g.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")

	rootCmd.AddCommand(buildDemoCommand(g))
	rootCmd.AddCommand(buildInspectCommand(g))

	return rootCmd
}

func buildDemoCommand(g *globalFlags) *cobra.Command {
	var parts []string
	var exportPath string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the ride walkthrough with sample visitors",
		Long: `Run the walkthrough parts in order: queue, history, sort, cycle, export, import.
The export part writes the carousel history to the export path and the import
part reads it back into a fresh ride.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(cmd, g, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer env.close()

			selected := make([]demo.Part, 0, len(parts))
			for _, name := range parts {
				p, err := demo.ParsePart(name)
				if err != nil {
					return err
				}
				selected = append(selected, p)
			}
			if exportPath == "" {
				exportPath = env.cfg.ExportPath
			}

			runner := demo.NewRunner(
				demo.WithLogger(logger.Get()),
				demo.WithExportPath(exportPath),
				demo.WithCycleVisitors(env.cfg.CycleDemoVisitors),
			)
			summary, err := runner.Run(cmd.Context(), selected...)
			if err != nil {
				env.log.Error(cmd.Context(), "demo failed", logger.Error(err))
				return err
			}

			ran := make([]string, 0, len(summary.Ran))
			for _, p := range summary.Ran {
				ran = append(ran, string(p))
			}
			env.log.Info(cmd.Context(), "demo complete",
				logger.String("parts", strings.Join(ran, ",")),
				logger.String("exportPath", runner.ExportPath()),
			)
			env.holdMetrics(cmd.Context())
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&parts, "part", "p", []string{string(demo.PartAll)}, "parts to run: queue, history, sort, cycle, export, import, all")
	cmd.Flags().StringVar(&exportPath, "export-path", "", "CSV file for the export and import parts (overrides config)")

	return cmd
}

func buildInspectCommand(g *globalFlags) *cobra.Command {
	var sortHistory bool
	var asJSON bool
	var out string

	cmd := &cobra.Command{
		Use:   "inspect <history.csv>",
		Short: "Load a ride history CSV and print it",
		Long: `Import a ride history CSV into an empty ride, optionally sort it by age then
name, and print the listing as text or JSON. Malformed lines are skipped and
reported. With --out the (possibly sorted) history is exported again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.close()

			ctx := cmd.Context()
			path := args[0]
			r, err := ride.New(nil, filepath.Base(path), inspectRideType, inspectCapacity, ride.WithLogger(logger.Get()))
			if err != nil {
				return err
			}

			rep, err := r.ImportHistory(ctx, path)
			if err != nil {
				return err
			}
			if sortHistory {
				if err := r.SortHistory(ctx); err != nil && !errors.Is(err, ride.ErrEmptyHistory) {
					return err
				}
			}

			var history []model.VisitorRecord
			for v := range r.History(ctx) {
				history = append(history, v)
			}
			if asJSON {
				err = writeJSON(cmd.OutOrStdout(), rep, history)
			} else {
				err = writeText(cmd.OutOrStdout(), rep, history)
			}
			if err != nil {
				return err
			}

			if out != "" {
				if _, err := r.ExportHistory(ctx, out); err != nil {
					return err
				}
			}
			env.holdMetrics(ctx)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&sortHistory, "sort", "s", false, "sort history by age then name before printing")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a numbered listing")
	cmd.Flags().StringVarP(&out, "out", "o", "", "export the history to this CSV path")

	return cmd
}

// runEnv is the per-command environment built by setup.
type runEnv struct {
	cfg        *config.Config
	log        logger.Logger
	metricsErr chan error
	stop       context.CancelFunc
}

// setup loads configuration, applies flag overrides, initializes the global
// logger on w, and starts the metrics server when an address is configured.
func setup(cmd *cobra.Command, g *globalFlags, w io.Writer) (*runEnv, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
		cmd.SetContext(ctx)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.logFormat != "" {
		cfg.LogFormat = g.logFormat
	}
	if g.metricsAddr != "" {
		cfg.MetricsAddr = g.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return nil, err
	}
	if err := logger.InitWithWriter(w, cfg.LogFormat); err != nil {
		return nil, err
	}

	env := &runEnv{cfg: cfg, log: logger.Named("cli"), stop: func() {}}
	if cfg.MetricsAddr != "" {
		mctx, cancel := context.WithCancel(ctx)
		env.stop = cancel
		errCh := make(chan error, 1)
		env.metricsErr = errCh
		go func() {
			errCh <- metrics.Serve(mctx, cfg.MetricsAddr)
		}()
		env.log.Info(ctx, "serving metrics", logger.String("addr", cfg.MetricsAddr), logger.String("path", "/metrics"))
	}
	return env, nil
}

// holdMetrics keeps the metrics endpoint up until ctx is done so the run's
// counters can be scraped. It returns at once when metrics are disabled or
// the server has failed.
func (e *runEnv) holdMetrics(ctx context.Context) {
	if e.metricsErr == nil {
		return
	}
	e.log.Info(ctx, "run finished, serving metrics until interrupted")
	select {
	case err := <-e.metricsErr:
		e.metricsErr = nil
		if err != nil {
			e.log.Error(ctx, "metrics server failed", logger.Error(err))
		}
	case <-ctx.Done():
	}
}

func (e *runEnv) close() {
	e.stop()
	if e.metricsErr != nil {
		<-e.metricsErr
	}
	_ = logger.Sync()
}

type skippedLine struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

type visitorJSON struct {
	PersonID       string `json:"personId"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	VisitorID      string `json:"visitorId"`
	MembershipType string `json:"membershipType"`
}

type inspectJSON struct {
	Path     string        `json:"path"`
	Imported int           `json:"imported"`
	Skipped  []skippedLine `json:"skipped"`
	Visitors []visitorJSON `json:"visitors"`
}

func writeJSON(w io.Writer, rep ride.ImportReport, history []model.VisitorRecord) error {
	doc := inspectJSON{
		Path:     rep.Path,
		Imported: rep.Imported,
		Skipped:  make([]skippedLine, 0, len(rep.Skipped)),
		Visitors: make([]visitorJSON, 0, len(history)),
	}
	for _, s := range rep.Skipped {
		doc.Skipped = append(doc.Skipped, skippedLine{Line: s.Line, Text: s.Text, Reason: s.Err.Error()})
	}
	for _, v := range history {
		doc.Visitors = append(doc.Visitors, visitorJSON{
			PersonID:       v.ID,
			Name:           v.Name,
			Age:            v.Age,
			VisitorID:      v.VisitorID,
			MembershipType: v.MembershipType,
		})
	}

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writeText(w io.Writer, rep ride.ImportReport, history []model.VisitorRecord) error {
	if _, err := fmt.Fprintf(w, "%s: %d imported, %d skipped\n", rep.Path, rep.Imported, len(rep.Skipped)); err != nil {
		return err
	}
	for _, s := range rep.Skipped {
		if _, err := fmt.Fprintf(w, "  skipped %v\n", s); err != nil {
			return err
		}
	}
	for i, v := range history {
		if _, err := fmt.Fprintf(w, "%s\n", ride.Entry{Position: i + 1, Visitor: v}); err != nil {
			return err
		}
	}
	return nil
}
