// Package report counts owner tokens across a directory of ownership files.
//
// The report uses its own notion of a rule line: non-blank, containing '@',
// and with no '#' anywhere on the line. This is stricter than the rewriter,
// which only skips lines that start with '#'; a rule with a trailing comment
// is rewritten but not counted.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/ownerswap/pkg/errors"
	"github.com/arthur-debert/ownerswap/pkg/filesystem"
	"github.com/arthur-debert/ownerswap/pkg/logging"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown report format %q", s).
			WithDetail("valid", []string{"text", "table", "json", "yaml"})
	}
}

// Frequency is how many times an owner token appears.
type Frequency struct {
	Owner string `json:"owner" yaml:"owner"`
	Count int    `json:"count" yaml:"count"`
}

// IsReportLine reports whether a line is counted.
func IsReportLine(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if !strings.Contains(line, "@") {
		return false
	}
	return !strings.Contains(line, "#")
}

// Tokens returns the whitespace separated fields after the target pattern.
func Tokens(line string) []string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil
	}
	return fields[1:]
}

// Report accumulates owner token counts.
type Report struct {
	Files  int
	order  []string
	counts map[string]int
}

// New returns an empty report.
func New() *Report {
	return &Report{counts: make(map[string]int)}
}

// Add counts the owner tokens of every report line in content.
func (r *Report) Add(content string) {
	for _, line := range strings.Split(content, "\n") {
		if !IsReportLine(line) {
			continue
		}
		for _, tok := range Tokens(line) {
			if _, ok := r.counts[tok]; !ok {
				r.order = append(r.order, tok)
			}
			r.counts[tok]++
		}
	}
}

// Owners returns the distinct owner tokens in order of first appearance.
func (r *Report) Owners() []string {
	return append([]string(nil), r.order...)
}

// Frequencies returns every owner with its count, most frequent first.
// Ties are ordered by owner.
func (r *Report) Frequencies() []Frequency {
	out := make([]Frequency, 0, len(r.order))
	for _, owner := range r.order {
		out = append(out, Frequency{Owner: owner, Count: r.counts[owner]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Owner < out[j].Owner
	})
	return out
}

// Collect builds a report over the regular files of dir.
func Collect(fsys filesystem.FS, dir string) (*Report, error) {
	logger := logging.GetLogger("report")

	names, err := filesystem.RegularFiles(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirRead, "failed to list %s", dir)
	}

	r := New()
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := fsys.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
		}
		r.Add(string(data))
		r.Files++
	}

	logger.Debug().
		Str("dir", dir).
		Int("files", r.Files).
		Int("owners", len(r.order)).
		Msg("Collected owner report")
	return r, nil
}

// Render writes the report to w.
func (r *Report) Render(w io.Writer, format Format) error {
	switch format {
	case FormatText:
		for _, owner := range r.order {
			if _, err := fmt.Fprintln(w, owner); err != nil {
				return err
			}
		}
		return nil
	case FormatTable:
		data := pterm.TableData{{"Owner", "Count"}}
		for _, f := range r.Frequencies() {
			data = append(data, []string{f.Owner, strconv.Itoa(f.Count)})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.Frequencies())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.Frequencies()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown report format %q", format)
	}
}
