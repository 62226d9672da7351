package driver

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"
)

// CheckOptions configures CheckFiles.
type CheckOptions struct {
	Jobs    int
	Globals []string
	Logger  *slog.Logger
}

// OptionsFromConfig derives check options from a loaded config.
func OptionsFromConfig(cfg *Config, logger *slog.Logger) CheckOptions {
	return CheckOptions{Jobs: cfg.Jobs, Globals: cfg.Globals, Logger: logger}
}

// CheckFiles compiles every path with a pool of opts.Jobs workers. Units are
// returned in input order. A file that cannot be read yields a unit holding a
// single io-failure error. When ctx is cancelled before every path was
// dispatched, the units never reached are nil and ctx.Err() is returned.
func CheckFiles(ctx context.Context, paths []string, opts CheckOptions) ([]*Unit, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(paths) {
		jobs = len(paths)
	}

	units := make([]*Unit, len(paths))
	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := range indexes {
				units[i] = checkFile(paths[i], opts.Globals, logger.With("worker", worker))
			}
		}(w)
	}

	var err error
feed:
	for i := range paths {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	return units, err
}

func checkFile(path string, globals []string, logger *slog.Logger) *Unit {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("read failed", "path", path, "err", err)
		return failedUnit(path, err)
	}
	unit := CompileWith(path, string(data), CompileOptions{Globals: globals})
	logger.Debug("checked",
		"path", path,
		"tokens", len(unit.Tokens),
		"errors", len(unit.Errors()),
		"elapsed", time.Since(start),
	)
	return unit
}

func ioReason(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
