package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/nhdewitt/drivescope/internal/collector"
	"github.com/nhdewitt/drivescope/internal/diagnostics"
	"github.com/nhdewitt/drivescope/internal/platform"
	"github.com/nhdewitt/drivescope/internal/protocol"
	"github.com/nhdewitt/drivescope/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type app struct {
	cfg    Config
	stdout io.Writer
	stderr io.Writer

	detect     func() platform.Info
	isTerminal func() bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		cfg:        defaultConfig(),
		stdout:     stdout,
		stderr:     stderr,
		detect:     platform.Detect,
		isTerminal: stdoutIsTerminal(stdout),
	}
}

func stdoutIsTerminal(w io.Writer) func() bool {
	return func() bool {
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drivescope",
		Short: "Report the volumes mounted on this host",
		Long: "drivescope lists every mounted volume, resolves what the host knows " +
			"about it and prints an aligned table with totals.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.cfg.validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runReport(cmd.Context())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level: debug, info, warn or error")

	f := cmd.Flags()
	f.BoolVar(&a.cfg.JSON, "json", false, "also print one JSON document per volume")
	f.BoolVar(&a.cfg.NoTable, "no-table", false, "skip the table (requires --json)")
	f.BoolVar(&a.cfg.Count, "count", false, "count files and directories on every volume")
	f.StringVar(&a.cfg.Color, "color", a.cfg.Color, "colorize the table: auto, always or never")
	f.IntVar(&a.cfg.Widths.Kind, "kind-width", a.cfg.Widths.Kind, "width of the type column")
	f.IntVar(&a.cfg.Widths.Total, "total-width", a.cfg.Widths.Total, "width of the total size column")
	f.IntVar(&a.cfg.Widths.Available, "available-width", a.cfg.Widths.Available, "width of the available space column")
	f.IntVar(&a.cfg.Widths.Files, "files-width", a.cfg.Widths.Files, "width of the files column")
	f.IntVar(&a.cfg.Widths.Dirs, "dirs-width", a.cfg.Widths.Dirs, "width of the dirs column")
	f.IntVar(&a.cfg.Widths.Seconds, "seconds-width", a.cfg.Widths.Seconds, "width of the seconds column")
	f.IntVar(&a.cfg.Widths.Time, "time-width", a.cfg.Widths.Time, "width of the time column")

	cmd.AddCommand(a.wmiCmd(), a.versionCmd())

	return cmd
}

func (a *app) logger() *slog.Logger {
	level, _ := parseLogLevel(a.cfg.LogLevel)
	logger := newLogger(a.stderr, level)
	slog.SetDefault(logger)
	return logger
}

func (a *app) runReport(ctx context.Context) error {
	logger := a.logger()
	info := a.detect()

	if !info.Privileged {
		logger.Info("running without elevated privileges, some fields may be unavailable")
	}

	var count collector.CountFunc
	if a.cfg.Count {
		count = diagnostics.CountEntries
	}

	c := collector.New(
		collector.NewDiskLister(info, logger.With("component", "lister")),
		collector.NewEnricher(info, logger.With("component", "enricher")),
		count,
		logger.With("component", "collector"),
	)

	start := time.Now()
	records, err := c.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collecting drive information: %w", err)
	}
	elapsed := time.Since(start)

	if !a.cfg.NoTable {
		color, _ := colorEnabled(a.cfg.Color, a.isTerminal())
		table := report.Table{Widths: a.cfg.Widths, Color: color}
		if err := table.Render(a.stdout, records, elapsed); err != nil {
			return fmt.Errorf("writing table: %w", err)
		}
	}

	if a.cfg.JSON {
		docs := report.NewDocumentWriter(a.stdout, a.stderr, info.Hostname, logger.With("component", "report"))
		if err := docs.Write(report.SortByRoot(records)); err != nil {
			return err
		}
	}

	return nil
}

func (a *app) wmiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wmi [topic...]",
		Short: "Dump raw WMI query results as JSON (Windows only)",
		Long: "wmi runs the management-instrumentation queries behind drivescope and " +
			"prints each topic's rows. With no arguments every topic is queried.",
		ValidArgs: collector.Topics(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWMI(cmd.Context(), args)
		},
	}
}

func (a *app) runWMI(ctx context.Context, topics []string) error {
	logger := a.logger()

	for _, name := range topics {
		if _, ok := collector.TopicClass(name); !ok {
			return fmt.Errorf("%w: %q (known: %v)", collector.ErrUnknownTopic, name, collector.Topics())
		}
	}
	if len(topics) == 0 {
		topics = collector.Topics()
	}

	info := a.detect()
	docs := report.NewDocumentWriter(a.stdout, a.stderr, info.Hostname, logger.With("component", "report"))

	for _, name := range topics {
		rows, err := collector.QueryTopic(ctx, name)
		if err != nil {
			if errors.Is(err, collector.ErrUnsupported) {
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			logger.Warn("WMI query failed", slog.String("topic", name), slog.Any("error", err))
			continue
		}

		class, _ := collector.TopicClass(name)
		if err := docs.WriteMetric(protocol.WMIResult{Topic: name, Class: class, Rows: rows}); err != nil {
			return err
		}
	}

	return nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the drivescope version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(a.stdout, "drivescope %s\n", version)
		},
	}
}
