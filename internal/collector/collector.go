package collector

import (
	"context"
	"log/slog"

	"github.com/nhdewitt/drivescope/internal/diagnostics"
	"github.com/nhdewitt/drivescope/internal/drive"
)

// CountFunc counts the entries below root without descending into skip.
type CountFunc func(ctx context.Context, root string, skip []string) (diagnostics.EntryCount, error)

type Collector struct {
	lister   DiskLister
	enricher Enricher
	count    CountFunc
	logger   *slog.Logger
}

// New returns a Collector. A nil count disables entry counting.
func New(lister DiskLister, enricher Enricher, count CountFunc, logger *slog.Logger) *Collector {
	return &Collector{
		lister:   lister,
		enricher: enricher,
		count:    count,
		logger:   orDefault(logger),
	}
}

// Collect enumerates the host's volumes, enriches each record in turn and,
// when enabled, counts its entries. A record the enricher left without a
// file system gets the one the lister reported. Only enumeration errors and
// cancellation are returned.
func (c *Collector) Collect(ctx context.Context) ([]drive.Record, error) {
	records, fsTypes, err := enumerate(ctx, c.lister)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.enricher.Enrich(ctx, &records[i])

		// Fall back to the listed type when no enrichment step resolved one.
		if records[i].FileSystem == nil {
			fs := drive.FileSystemFromName(fsTypes[i])
			records[i].FileSystem = &fs
		}
	}

	if c.count == nil {
		return records, nil
	}

	roots := make([]string, len(records))
	for i, r := range records {
		roots[i] = r.RootPath
	}

	for i := range records {
		r := &records[i]

		n, err := c.count(ctx, r.RootPath, otherRoots(roots, i))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.logger.Warn("counting entries failed",
				slog.String("root", r.RootPath),
				slog.Any("error", err),
			)
			continue
		}

		r.NumFiles = n.Files
		r.NumDirs = n.Dirs
		r.Elapsed = n.Elapsed
	}

	return records, nil
}

func otherRoots(roots []string, self int) []string {
	out := make([]string, 0, len(roots)-1)
	for i, root := range roots {
		if i != self {
			out = append(out, root)
		}
	}
	return out
}
