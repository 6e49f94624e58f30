// Package processor applies the owner rewrite to every file of a directory.
//
// A Run is the whole state of one pass: the files that were scanned and the
// changes that were made. Nothing outlives it.
package processor

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/ownerswap/pkg/audit"
	"github.com/arthur-debert/ownerswap/pkg/errors"
	"github.com/arthur-debert/ownerswap/pkg/filesystem"
	"github.com/arthur-debert/ownerswap/pkg/logging"
	"github.com/arthur-debert/ownerswap/pkg/rewrite"
)

// DefaultWorkers is used when Options.Workers is not positive.
const DefaultWorkers = 4

// Recorder receives the before/after snapshot of each changed file.
// *audit.Log satisfies it.
type Recorder interface {
	Write(audit.Record) error
}

// Options describes one directory pass.
type Options struct {
	Dir         string
	Source      string
	Destination string
	DryRun      bool
	Workers     int
}

// Change is a file whose content differs after the rewrite.
type Change struct {
	Path   string
	Before string
	After  string
}

// Run is the result of Process.
type Run struct {
	ID      string
	Started time.Time
	Options Options
	Files   []string
	Changes []Change
}

// Process rewrites the regular files of opts.Dir in place. Files are handled
// in parallel; a file is only written when its content changed and DryRun is
// off. Every change is passed to rec (which may be nil) in path order, even
// when a later file fails.
func Process(ctx context.Context, fsys filesystem.FS, opts Options, rec Recorder) (*Run, error) {
	if strings.TrimSpace(opts.Source) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "source owner is required")
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}

	run := &Run{
		ID:      uuid.NewString(),
		Started: time.Now(),
		Options: opts,
	}
	logger := logging.GetLogger("processor").With().Str("run", run.ID).Logger()
	defer logging.LogOperationStart(logger, "process")()

	names, err := filesystem.RegularFiles(fsys, opts.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirRead, "failed to list %s", opts.Dir).
			WithDetail("dir", opts.Dir)
	}
	for _, name := range names {
		run.Files = append(run.Files, filepath.Join(opts.Dir, name))
	}

	logger.Info().
		Str("dir", opts.Dir).
		Str("source", opts.Source).
		Str("destination", opts.Destination).
		Bool("dryRun", opts.DryRun).
		Int("files", len(run.Files)).
		Msg("Rewriting owners")

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for _, path := range run.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Wrap(err, errors.ErrCanceled, "processing canceled")
			}
			change, err := processFile(fsys, path, opts)
			if err != nil || change == nil {
				return err
			}
			mu.Lock()
			run.Changes = append(run.Changes, *change)
			mu.Unlock()
			return nil
		})
	}
	procErr := g.Wait()

	sort.Slice(run.Changes, func(i, j int) bool {
		return run.Changes[i].Path < run.Changes[j].Path
	})
	if rec != nil {
		for _, c := range run.Changes {
			if err := rec.Write(audit.Record(c)); err != nil {
				return run, err
			}
		}
	}
	if procErr != nil {
		return run, procErr
	}

	logger.Info().
		Int("files", len(run.Files)).
		Int("changed", len(run.Changes)).
		Msg("Rewrite completed")
	return run, nil
}

func processFile(fsys filesystem.FS, path string, opts Options) (*Change, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", path)
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
	}

	before := string(data)
	after := rewrite.Content(before, opts.Source, opts.Destination)
	if after == before {
		return nil, nil
	}

	logger := logging.GetLogger("processor")
	if opts.DryRun {
		logger.Debug().Str("path", path).Msg("Would rewrite file")
	} else {
		if err := fsys.WriteFile(path, []byte(after), info.Mode().Perm()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
		}
		logger.Debug().Str("path", path).Msg("Rewrote file")
	}

	return &Change{Path: path, Before: before, After: after}, nil
}
