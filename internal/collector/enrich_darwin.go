//go:build darwin

package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"

	"github.com/nhdewitt/drivescope/internal/drive"
	"github.com/nhdewitt/drivescope/internal/platform"
)

var errNoDiskutil = errors.New("diskutil not found")

func commandDiskutil(path string) diskutilRunner {
	return func(ctx context.Context, mount string) (diskutilInfo, error) {
		if path == "" {
			return nil, errNoDiskutil
		}
		out, err := exec.CommandContext(ctx, path, "info", mount).Output()
		if err != nil {
			return nil, fmt.Errorf("diskutil info %s: %w", mount, err)
		}
		return parseDiskutilInfo(bytes.NewReader(out))
	}
}

var (
	diskutilMu     sync.Mutex
	diskutilCaches = make(map[string]*diskutilCache)
)

// sharedDiskutil returns the process-wide cached runner for the diskutil
// binary at path.
func sharedDiskutil(path string) diskutilRunner {
	diskutilMu.Lock()
	defer diskutilMu.Unlock()

	c, ok := diskutilCaches[path]
	if !ok {
		c = newDiskutilCache(commandDiskutil(path))
		diskutilCaches[path] = c
	}
	return c.info
}

type darwinEnricher struct {
	diskutil diskutilRunner
	logger   *slog.Logger
}

func NewEnricher(info platform.Info, logger *slog.Logger) Enricher {
	return &darwinEnricher{
		diskutil: sharedDiskutil(info.DiskutilPath),
		logger:   orDefault(logger),
	}
}

// Enrich runs diskutil at most once per record; every step reads the
// same output.
func (e *darwinEnricher) Enrich(ctx context.Context, r *drive.Record) {
	var (
		info   diskutilInfo
		err    error
		loaded bool
	)
	load := func(ctx context.Context) (diskutilInfo, error) {
		if !loaded {
			info, err = e.diskutil(ctx, r.RootPath)
			loaded = true
		}
		return info, err
	}

	runSteps(ctx, e.logger, r, darwinSteps(load))
}
