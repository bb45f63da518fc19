//go:build !linux && !darwin && !windows

package collector

import (
	"log/slog"

	"github.com/nhdewitt/drivescope/internal/platform"
)

// NewEnricher returns an enricher with no steps; records keep their
// enumerated fields only.
func NewEnricher(_ platform.Info, logger *slog.Logger) Enricher {
	return &stepEnricher{logger: orDefault(logger)}
}
