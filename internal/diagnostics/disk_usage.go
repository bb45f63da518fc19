package diagnostics

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
)

// EntryCount is the result of walking one volume.
type EntryCount struct {
	Files   uint64
	Dirs    uint64
	Errors  uint64 // unreadable entries, skipped
	Elapsed time.Duration
}

// CountEntries counts the files and directories below root. It doesn't
// follow symlinks, descend into any directory listed in skip, or cross
// onto another file system. Unreadable entries are counted in Errors and
// skipped.
func CountEntries(ctx context.Context, root string, skip []string) (EntryCount, error) {
	start := time.Now()

	root = filepath.Clean(root)
	rootDev, haveDev := deviceOf(root)

	skipSet := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		if s = filepath.Clean(s); s != root {
			skipSet[s] = struct{}{}
		}
	}

	var files, dirs, errs atomic.Uint64

	conf := &fastwalk.Config{
		Follow: false,
	}

	err := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			errs.Add(1)
			return nil
		}

		if filepath.Clean(path) == root {
			return nil
		}

		if d.IsDir() {
			if _, skipped := skipSet[filepath.Clean(path)]; skipped {
				return fs.SkipDir
			}
			if haveDev && crossesDevice(d, rootDev) {
				return fs.SkipDir
			}
			dirs.Add(1)
			return nil
		}

		// Symlinks are not followed and not counted.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		files.Add(1)
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return EntryCount{}, ctxErr
		}
		return EntryCount{}, err
	}

	return EntryCount{
		Files:   files.Load(),
		Dirs:    dirs.Load(),
		Errors:  errs.Load(),
		Elapsed: time.Since(start),
	}, nil
}
