package encoder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/textexpand/internal/caret"
	"github.com/riverfjs/textexpand/internal/segment"
	"github.com/riverfjs/textexpand/internal/types"
)

var delims = types.DefaultRawDelimiters()

func code(s string) segment.Segment  { return segment.NewCode(s, 0) }
func plain(s string) segment.Segment { return segment.NewPlain(s, 0, 0) }
func esc(c byte) segment.Segment     { return segment.NewEscaped(c, 0, 0) }

// literal splits s into Plain and Escaped segments.
func literal(s string) []segment.Segment {
	var segs []segment.Segment
	start := 0
	for i := 0; i < len(s); i++ {
		if segment.IsEscapable(s[i]) {
			if i > start {
				segs = append(segs, plain(s[start:i]))
			}
			segs = append(segs, esc(s[i]))
			start = i + 1
		}
	}
	if start < len(s) {
		segs = append(segs, plain(s[start:]))
	}
	return segs
}

func join(parts ...[]segment.Segment) []segment.Segment {
	var out []segment.Segment
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// allInside wraps the whole document in one span.
func allInside(segs []segment.Segment) string {
	var b strings.Builder
	b.WriteString(delims.Open)
	for _, s := range segs {
		b.WriteString(s.Inside())
	}
	b.WriteString(delims.Close)
	return b.String()
}

// penalty prices the encodings that wrap everything in one span
// (wrapAll) or give every Code segment its own span.
func penalty(segs []segment.Segment, wrapAll bool) int {
	pair := len(delims.Open) + len(delims.Close)
	if wrapAll {
		return pair
	}
	total := 0
	for _, s := range segs {
		if s.Kind == segment.Code {
			total += pair
		} else {
			total += s.Penalty()
		}
	}
	return total
}

func assertBalanced(t *testing.T, out string) {
	t.Helper()
	depth := 0
	for i := 0; i < len(out); {
		switch {
		case strings.HasPrefix(out[i:], delims.Open):
			depth++
			require.Equal(t, 1, depth, "nested open at %d in %q", i, out)
			i += len(delims.Open)
		case strings.HasPrefix(out[i:], delims.Close):
			depth--
			require.Equal(t, 0, depth, "unmatched close at %d in %q", i, out)
			i += len(delims.Close)
		default:
			i++
		}
	}
	assert.Equal(t, 0, depth, "unclosed span in %q", out)
}

func TestEncode_Empty(t *testing.T) {
	res := Encode(nil, delims)
	assert.Equal(t, "", res.Text)
	assert.Equal(t, 0, res.Cost)
	assert.Empty(t, res.Pieces)
}

func TestEncode_LiteralTextStaysOutsideEscaped(t *testing.T) {
	res := Encode(literal("a < b"), delims)
	assert.Equal(t, "a &lt; b", res.Text)
	assert.Equal(t, 0, res.Spans)
	assert.Equal(t, 3, res.Cost)
}

func TestEncode_CodeIsAlwaysInside(t *testing.T) {
	res := Encode([]segment.Segment{code("<hr>")}, delims)
	assert.Equal(t, "[code]<hr>[/code]", res.Text)
	assert.Equal(t, len(delims.Open)+len(delims.Close), res.Cost)
}

func TestEncode_KnownCaseIsOneSpan(t *testing.T) {
	segs := join(
		[]segment.Segment{code("<p>")},
		literal("<span>text&more</span>"),
		[]segment.Segment{code("</p>")},
	)
	res := Encode(segs, delims)

	assert.Equal(t, allInside(segs), res.Text)
	assert.Equal(t, "[code]<p>&lt;span&gt;text&amp;more&lt;/span&gt;</p>[/code]", res.Text)
	assert.Equal(t, 13, res.Cost)
	assert.Equal(t, 1, res.Spans)
	assert.LessOrEqual(t, res.Cost, penalty(segs, false))
	assertBalanced(t, res.Text)
}

func TestEncode_OpensEarlyWhenEscapesCostMore(t *testing.T) {
	// Leaving "< &" outside costs 3+4+3 = 10 plus the span for <hr>; opening
	// the span before the first '<' only costs the span.
	segs := join(literal("a < & > b"), []segment.Segment{code("<hr>")})
	res := Encode(segs, delims)
	assert.Equal(t, "a [code]&lt; &amp; &gt; b<hr>[/code]", res.Text)
	assert.Equal(t, 13, res.Cost)
}

func TestEncode_TieBreak(t *testing.T) {
	// Outside, a tie keeps the span closed; inside, a tie keeps it open.
	segs := []segment.Segment{plain("x"), code("<hr>"), plain("y")}
	res := Encode(segs, delims)
	assert.Equal(t, "x[code]<hr>y[/code]", res.Text)
	assert.Equal(t, 1, res.Spans)
}

func TestEncode_LineBreaks(t *testing.T) {
	inSpan := Encode([]segment.Segment{code("<b>"), plain("x"), esc('\n'), plain("y"), code("</b>")}, delims)
	assert.Equal(t, "[code]<b>x<br>y</b>[/code]", inSpan.Text)

	bare := Encode([]segment.Segment{plain("x"), esc('\n'), plain("y")}, delims)
	assert.Equal(t, "x\ny", bare.Text)
}

func TestEncode_NeverWorseThanNaive(t *testing.T) {
	docs := map[string][]segment.Segment{
		"paragraph": join(
			[]segment.Segment{code("<p>")},
			literal("<span>text&more</span>"),
			[]segment.Segment{code("</p>")},
		),
		"dense": join(
			[]segment.Segment{code("<ul>"), code("<li>")},
			literal("a&b"),
			[]segment.Segment{code("</li>"), code("<li>")},
			literal("c"),
			[]segment.Segment{code("</li>"), code("</ul>")},
		),
		"sparse": join(
			literal("if a < b && c > d then"),
			[]segment.Segment{code("<hr>")},
			literal("x < y"),
		),
		"plain": literal("nothing & nothing"),
	}
	for name, segs := range docs {
		t.Run(name, func(t *testing.T) {
			res := Encode(segs, delims)
			assertBalanced(t, res.Text)
			assert.LessOrEqual(t, res.Cost, penalty(segs, true))
			assert.LessOrEqual(t, res.Cost, penalty(segs, false))
			assert.LessOrEqual(t, len(res.Text), len(allInside(segs)))
		})
	}
}

func TestEncode_CustomDelimiters(t *testing.T) {
	d := types.Delimiters{Open: "<<", Close: ">>"}
	res := Encode([]segment.Segment{plain("a"), code("<i>"), plain("b"), code("</i>")}, d)
	assert.Equal(t, "a<<<i>b</i>>>", res.Text)

	res = Encode([]segment.Segment{code("<i>")}, types.Delimiters{})
	assert.Equal(t, "[code]<i>[/code]", res.Text)
}

func TestEncode_Pieces(t *testing.T) {
	segs := []segment.Segment{
		segment.NewPlain("ab", 0, 2),
		segment.NewEscaped('<', 2, 1),
		segment.NewCode("<hr>", 3),
	}
	res := Encode(segs, delims)
	require.Equal(t, "ab[code]&lt;<hr>[/code]", res.Text)
	assert.Equal(t, []caret.Piece{
		{Out: 0, OutLen: 2, Src: 0, SrcLen: 2, Linear: true},
		{Out: 8, OutLen: 4, Src: 2, SrcLen: 1, Linear: false},
		{Out: 12, OutLen: 4, Src: 3, SrcLen: 0, Linear: false},
	}, res.Pieces)
}
