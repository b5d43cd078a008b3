package resolver

import (
	"regexp"
	"strings"

	"github.com/riverfjs/textexpand/internal/types"
)

// cursorRe matches CURSOR(), CURSOR("text") and CURSOR('text'). Quotes and
// backslashes inside the argument are backslash-escaped.
var cursorRe = regexp.MustCompile(`CURSOR\(\s*(?:"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)')?\s*\)`)

var argUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\'`, `'`)

// stripCursors removes cursor markers from a trigger name before lookup.
func stripCursors(name string) string {
	if !strings.Contains(name, "CURSOR(") {
		return name
	}
	return cursorRe.ReplaceAllString(name, "")
}

// replaceCursors substitutes each marker with its default text, left to
// right, and records one range per marker. Without markers the only range is
// the bare caret.
func replaceCursors(text string, caret int) (string, []types.Range, int) {
	matches := cursorRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, []types.Range{{Start: caret, End: caret}}, caret
	}

	var b strings.Builder
	b.Grow(len(text))
	ranges := make([]types.Range, 0, len(matches))
	newCaret := caret
	placed := caret < 0
	last := 0

	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		def := markerArgument(text, m)
		at := b.Len()
		b.WriteString(def)
		ranges = append(ranges, types.Range{Start: at, End: at + len(def)})

		if !placed {
			switch {
			case caret <= m[0]:
				newCaret = caret + at - m[0]
				placed = true
			case caret < m[1]:
				newCaret = at + len(def)
				placed = true
			}
		}
		last = m[1]
	}
	b.WriteString(text[last:])

	out := b.String()
	if !placed {
		newCaret = caret + len(out) - len(text)
	}
	return out, ranges, newCaret
}

func markerArgument(text string, m []int) string {
	for _, g := range []int{2, 4} {
		if m[g] >= 0 {
			return argUnescaper.Replace(text[m[g]:m[g+1]])
		}
	}
	return ""
}
