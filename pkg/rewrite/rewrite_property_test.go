package rewrite

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const (
	propSource      = "a"
	propDestination = "b"
)

// genOwnerSegment generates "@name<whitespace>" segments. The name pool mixes
// the source, the destination, names containing the source and bystanders.
func genOwnerSegment() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("a", "b", "c", "a/a", "ab", "org/a", "dev-team"),
		gen.OneConstOf("", " ", "  ", "\t", " \t "),
	).Map(func(vals []interface{}) string {
		return "@" + vals[0].(string) + vals[1].(string)
	})
}

// genRuleLine generates a target pattern followed by owner segments.
func genRuleLine() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("*", "/docs/", "*.go", "/example\\ path/", "apps/web/**"),
		gen.OneConstOf(" ", "\t", "    "),
		gen.SliceOf(genOwnerSegment()),
	).Map(func(vals []interface{}) string {
		return vals[0].(string) + vals[1].(string) + strings.Join(vals[2].([]string), " ")
	})
}

func ownerNames(line string) []string {
	segments := strings.Split(line, ownerSep)
	names := make([]string, 0, len(segments))
	for _, seg := range segments[1:] {
		names = append(names, strings.TrimSpace(seg))
	}
	return names
}

// renamedFirstOccurrences mirrors the documented rename order: every owner
// equal to the source becomes the destination, then duplicates collapse onto
// their first position.
func renamedFirstOccurrences(line string) []string {
	seen := map[string]bool{}
	var names []string
	for _, name := range ownerNames(line) {
		if name == propSource {
			name = propDestination
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func isSubsequence(sub, seq []string) bool {
	i := 0
	for _, s := range seq {
		if i < len(sub) && sub[i] == s {
			i++
		}
	}
	return i == len(sub)
}

func TestLineProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("lines without separator are unchanged", prop.ForAll(
		func(line string) bool {
			return Line(line, propSource, propDestination) == line
		},
		gen.AlphaString(),
	))

	properties.Property("comment lines are unchanged", prop.ForAll(
		func(indent, line string) bool {
			comment := indent + commentPrefix + line
			return Line(comment, propSource, propDestination) == comment
		},
		gen.OneConstOf("", " ", "\t"),
		genRuleLine(),
	))

	properties.Property("lines without the source are unchanged", prop.ForAll(
		func(line string) bool {
			return Line(line, "zz", propDestination) == line
		},
		genRuleLine(),
	))

	properties.Property("rewriting converges after one pass", prop.ForAll(
		func(line string) bool {
			once := Line(line, propSource, propDestination)
			return Line(once, propSource, propDestination) == once
		},
		genRuleLine(),
	))

	properties.Property("no duplicate owners after rewrite", prop.ForAll(
		func(line string) bool {
			if !strings.Contains(line, propSource) {
				return true
			}
			seen := map[string]bool{}
			for _, name := range ownerNames(Line(line, propSource, propDestination)) {
				if seen[name] {
					t.Logf("duplicate %q in %q", name, line)
					return false
				}
				seen[name] = true
			}
			return true
		},
		genRuleLine(),
	))

	properties.Property("owner order follows first occurrence", prop.ForAll(
		func(line string) bool {
			if !strings.Contains(line, propSource) {
				return true
			}
			got := ownerNames(Line(line, propSource, propDestination))
			return isSubsequence(got, renamedFirstOccurrences(line))
		},
		genRuleLine(),
	))

	properties.Property("target pattern and line count preserved", prop.ForAll(
		func(lines []string) bool {
			if len(lines) == 0 {
				return true
			}
			content := strings.Join(lines, lineSep)
			out := Content(content, propSource, propDestination)
			outLines := strings.Split(out, lineSep)
			if len(outLines) != len(lines) {
				return false
			}
			for i, l := range lines {
				target := strings.SplitN(l, ownerSep, 2)[0]
				if !strings.HasPrefix(outLines[i], strings.TrimRight(target, " \t")) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genRuleLine()),
	))

	properties.TestingRun(t)
}
