package rewrite

import (
	"strings"
	"unicode"
)

const (
	lineSep       = "\n"
	commentPrefix = "#"
	ownerSep      = "@"
)

// Content rewrites every line of a multi-line document independently.
// Line endings, including a trailing newline and CRLF pairs, are preserved.
func Content(content, source, destination string) string {
	lines := strings.Split(content, lineSep)
	for i, l := range lines {
		if body, ok := strings.CutSuffix(l, "\r"); ok {
			lines[i] = Line(body, source, destination) + "\r"
			continue
		}
		lines[i] = Line(l, source, destination)
	}
	return strings.Join(lines, lineSep)
}

// Line returns line with the owner source replaced by destination.
//
// The line is returned unchanged when it is not a rule line or when source
// does not occur in it. Otherwise owners are deduplicated by trimmed name in
// order of first appearance, and the last kept segment is right-trimmed.
// An owner renamed to the empty string is removed rather than left as a
// bare "@" segment, so an empty destination deletes the source owner.
func Line(line, source, destination string) string {
	if !IsRuleLine(line) {
		return line
	}
	source = strings.TrimSpace(source)
	if source == "" || !strings.Contains(line, source) {
		return line
	}

	segments := strings.Split(line, ownerSep)
	kept := make([]string, 1, len(segments))
	kept[0] = segments[0]
	seen := make(map[string]struct{}, len(segments)-1)

	for _, seg := range segments[1:] {
		name := strings.TrimSpace(seg)
		if name == source {
			// substring replacement keeps team qualifiers around the name
			seg = strings.ReplaceAll(seg, source, destination)
			name = strings.TrimSpace(seg)
			if name == "" {
				continue
			}
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		kept = append(kept, seg)
	}

	last := len(kept) - 1
	kept[last] = strings.TrimRightFunc(kept[last], unicode.IsSpace)
	return strings.Join(kept, ownerSep)
}

// IsRuleLine reports whether line carries owners: it contains '@' and its
// first non-blank character is not the comment marker.
func IsRuleLine(line string) bool {
	if !strings.Contains(line, ownerSep) {
		return false
	}
	return !strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), commentPrefix)
}

// Owners returns the trimmed owner names of a rule line in order of
// appearance. Empty owners are skipped; nil is returned for non-rule lines.
func Owners(line string) []string {
	if !IsRuleLine(line) {
		return nil
	}
	segments := strings.Split(line, ownerSep)[1:]
	names := make([]string, 0, len(segments))
	for _, seg := range segments {
		if name := strings.TrimSpace(seg); name != "" {
			names = append(names, name)
		}
	}
	return names
}
