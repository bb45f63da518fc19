package collector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nhdewitt/drivescope/internal/drive"
	"github.com/nhdewitt/drivescope/internal/platform"
)

// Enricher fills in the host-specific fields of a record. It never fails:
// lookups that can't be resolved leave their fields absent.
type Enricher interface {
	Enrich(ctx context.Context, r *drive.Record)
}

// Step is one independent lookup in an enrichment sequence.
type Step struct {
	Name string
	// Requires gates the step on a field an earlier step resolves.
	// A nil Requires always runs.
	Requires func(*drive.Record) bool
	Run      func(context.Context, *drive.Record) error
	// Elevated marks a lookup that usually needs root or administrator
	// rights.
	Elevated bool
}

type stepEnricher struct {
	steps  []Step
	logger *slog.Logger
}

func (e *stepEnricher) Enrich(ctx context.Context, r *drive.Record) {
	runSteps(ctx, e.logger, r, e.steps)
}

// runSteps runs each step once, in order. A failing or panicking step is
// logged and the sequence continues; fields set by earlier steps are kept.
func runSteps(ctx context.Context, logger *slog.Logger, r *drive.Record, steps []Step) {
	for _, s := range steps {
		if ctx.Err() != nil {
			return
		}

		if s.Requires != nil && !s.Requires(r) {
			logger.Debug("step skipped: precondition not met",
				slog.String("step", s.Name),
				slog.String("root", r.RootPath),
			)
			continue
		}

		if err := runStep(ctx, s, r); err != nil {
			logger.Warn("enrichment step failed",
				slog.String("step", s.Name),
				slog.String("root", r.RootPath),
				slog.Any("error", err),
			)
		}
	}
}

func runStep(ctx context.Context, s Step, r *drive.Record) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return s.Run(ctx, r)
}

// withPrivilege returns steps unchanged when privileged. Otherwise errors
// from Elevated steps are wrapped with platform.ErrNotPrivileged.
func withPrivilege(privileged bool, steps []Step) []Step {
	if privileged {
		return steps
	}

	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = s
		if !s.Elevated {
			continue
		}
		run := s.Run
		out[i].Run = func(ctx context.Context, r *drive.Record) error {
			if err := run(ctx, r); err != nil {
				return fmt.Errorf("%w: %w", platform.ErrNotPrivileged, err)
			}
			return nil
		}
	}
	return out
}

func hasDriveLetter(r *drive.Record) bool { return r.DriveLetter != nil }

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
