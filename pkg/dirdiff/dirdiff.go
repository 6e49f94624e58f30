// Package dirdiff compares a directory of ownership files before and after a
// rewrite, and collects the rewritten versions of the files that changed.
package dirdiff

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/arthur-debert/ownerswap/pkg/audit"
	"github.com/arthur-debert/ownerswap/pkg/errors"
	"github.com/arthur-debert/ownerswap/pkg/filesystem"
	"github.com/arthur-debert/ownerswap/pkg/logging"
)

// Entry is a file whose content differs between the two directories.
type Entry struct {
	Name    string
	Path    string
	Before  string
	After   string
	Unified string
}

// Options names the directories to compare and where to copy changed files.
type Options struct {
	Before string
	After  string
	// Out receives the after content of every changed file. Empty skips writing.
	Out string
}

// Run compares the directories and writes changed files to opts.Out.
func Run(fsys filesystem.FS, opts Options) ([]Entry, error) {
	entries, err := Compare(fsys, opts.Before, opts.After)
	if err != nil {
		return nil, err
	}
	if opts.Out != "" {
		if err := WriteAfter(fsys, entries, opts.Out); err != nil {
			return entries, err
		}
	}
	return entries, nil
}

// Compare returns an entry for every regular file of before whose namesake in
// after has different content. Files missing from after are skipped.
func Compare(fsys filesystem.FS, before, after string) ([]Entry, error) {
	logger := logging.GetLogger("dirdiff")

	names, err := filesystem.RegularFiles(fsys, before)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirRead, "failed to list %s", before)
	}

	var entries []Entry
	for _, name := range names {
		oldData, err := fsys.ReadFile(filepath.Join(before, name))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", filepath.Join(before, name))
		}

		afterPath := filepath.Join(after, name)
		newData, err := fsys.ReadFile(afterPath)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Debug().Str("file", name).Msg("No counterpart in after directory")
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", afterPath)
		}

		oldContent, newContent := string(oldData), string(newData)
		if oldContent == newContent {
			continue
		}

		unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(oldContent),
			B:        difflib.SplitLines(newContent),
			FromFile: filepath.Join(before, name),
			ToFile:   afterPath,
			Context:  3,
		})
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "failed to diff %s", name)
		}

		entries = append(entries, Entry{
			Name:    name,
			Path:    afterPath,
			Before:  oldContent,
			After:   newContent,
			Unified: unified,
		})
	}

	logger.Info().
		Str("before", before).
		Str("after", after).
		Int("files", len(names)).
		Int("changed", len(entries)).
		Msg("Compared directories")
	return entries, nil
}

// WriteAfter writes the after content of each entry to outDir under its name.
func WriteAfter(fsys filesystem.FS, entries []Entry, outDir string) error {
	if err := fsys.MkdirAll(outDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", outDir)
	}
	for _, e := range entries {
		path := filepath.Join(outDir, e.Name)
		if err := fsys.WriteFile(path, []byte(e.After), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
		}
	}
	return nil
}

// Render writes a before/after block, or the unified diff, for each entry.
func Render(w io.Writer, entries []Entry, unified bool) error {
	for _, e := range entries {
		text := e.Unified
		if !unified {
			text = audit.Format(audit.Record{Path: e.Path, Before: e.Before, After: e.After})
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}
