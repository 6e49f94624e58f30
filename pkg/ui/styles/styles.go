// Package styles renders ownerswap's terminal output.
//
// Colour is only used when the destination is a terminal; otherwise every
// helper returns plain text identical to the audit log format.
package styles

import (
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	rule    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#A0A0A0", Dark: "#626262"})
	path    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"})
	removed = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF6B6B"})
	added   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#69DB7C"})
	failure = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF6B6B"})
	notice  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#8A6D00", Dark: "#FFD43B"})
)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Renderer styles output for one destination.
type Renderer struct {
	Color bool
}

// NewRenderer returns a renderer for w. When w is not a terminal the global
// lipgloss profile is dropped to plain ASCII.
func NewRenderer(w io.Writer) *Renderer {
	color := IsTerminal(w)
	if !color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{Color: color}
}

func (r *Renderer) apply(s lipgloss.Style, text string) string {
	if !r.Color || text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = s.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

// Change renders a before/after block for one file.
func (r *Renderer) Change(filePath, before, after string) string {
	var b strings.Builder
	b.WriteString(r.apply(rule, "====="))
	b.WriteString("\n")
	b.WriteString(r.apply(path, filePath))
	b.WriteString("\n")
	b.WriteString(r.apply(removed, before))
	b.WriteString("\n")
	b.WriteString(r.apply(rule, "-----"))
	b.WriteString("\n")
	b.WriteString(r.apply(added, after))
	b.WriteString("\n")
	return b.String()
}

// Error renders an error message.
func (r *Renderer) Error(msg string) string {
	return r.apply(failure, msg)
}

// Notice renders an informational message such as the dry-run banner.
func (r *Renderer) Notice(msg string) string {
	return r.apply(notice, msg)
}

// Markdown renders a markdown document, e.g. a pull request body preview.
func (r *Renderer) Markdown(md string) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if r.Color {
		style = glamour.WithAutoStyle()
	}
	tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return "", err
	}
	return tr.Render(md)
}
