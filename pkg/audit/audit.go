// Package audit records every file whose owners were rewritten.
//
// Each run writes one operation-<unix seconds>.log file holding, per changed
// file, its path, full original content and full new content:
//
//	=====
//	<path>
//	<before>
//	-----
//	<after>
package audit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arthur-debert/ownerswap/pkg/errors"
	"github.com/arthur-debert/ownerswap/pkg/filesystem"
	"github.com/arthur-debert/ownerswap/pkg/logging"
)

// Record is a before/after snapshot of one changed file.
type Record struct {
	Path   string
	Before string
	After  string
}

// Format renders a record as a log block.
func Format(r Record) string {
	return fmt.Sprintf("=====\n%s\n%s\n-----\n%s\n", r.Path, r.Before, r.After)
}

// FileName returns the log file name for a run started at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("operation-%d.log", now.Unix())
}

// Options configures a Log.
type Options struct {
	// Dir receives the log file; it is created when missing.
	Dir string
	// Now stamps the file name; zero means time.Now().
	Now time.Time
	// Echo, when set, also receives every formatted record.
	Echo io.Writer
}

// Log is an append-only audit log. It is safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	file    filesystem.File
	path    string
	echo    io.Writer
	records []Record
}

// Open creates the log file for a new run.
func Open(fsys filesystem.FS, opts Options) (*Log, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	if err := fsys.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create audit directory %s", opts.Dir)
	}

	path := filepath.Join(opts.Dir, FileName(now))
	file, err := fsys.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrAuditOpen, "failed to open audit log %s", path)
	}

	logger := logging.GetLogger("audit")
	logger.Debug().Str("path", path).Msg("Opened audit log")
	return &Log{file: file, path: path, echo: opts.Echo}, nil
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Write appends a record to the log and echoes it.
func (l *Log) Write(r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return errors.New(errors.ErrAuditWrite, "audit log is closed")
	}

	block := Format(r)
	if _, err := io.WriteString(l.file, block); err != nil {
		return errors.Wrapf(err, errors.ErrAuditWrite, "failed to write audit record for %s", r.Path)
	}
	l.records = append(l.records, r)

	if l.echo != nil {
		if _, err := io.WriteString(l.echo, block); err != nil {
			return errors.Wrap(err, errors.ErrAuditWrite, "failed to echo audit record")
		}
	}
	return nil
}

// Records returns the records written so far.
func (l *Log) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Record(nil), l.records...)
}

// Close syncs and closes the log file. Closing twice is a no-op.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return errors.Wrap(err, errors.ErrAuditWrite, "failed to sync audit log")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.ErrAuditWrite, "failed to close audit log")
	}
	return nil
}
