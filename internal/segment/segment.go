// Package segment turns Markdown into a stream of typed segments. Code
// segments carry HTML produced by the renderer and must reach the transport
// verbatim; Escaped and Plain segments carry the author's literal text.
// Whether a segment ends up inside a raw span is decided later by the
// encoder.
package segment

// Kind 表示 segment 的类型
type Kind int

const (
	// Plain text costs the same inside and outside a raw span.
	Plain Kind = iota
	// Escaped is a single HTML-significant character. It is always written
	// as an entity, which is only free inside a raw span.
	Escaped
	// Code is rendered markup that only survives inside a raw span.
	Code
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Escaped:
		return "escaped"
	case Code:
		return "code"
	default:
		return "unknown"
	}
}

// entities maps each escapable character to its entity form. A line break
// is escapable too: inside a raw span it has to become a <br>, outside the
// transport keeps the newline.
var entities = map[byte]string{
	'<':  "&lt;",
	'>':  "&gt;",
	'&':  "&amp;",
	'\n': "<br>",
}

// IsEscapable reports whether c is emitted as an Escaped segment.
func IsEscapable(c byte) bool {
	_, ok := entities[c]
	return ok
}

// Segment 是一个带来源位置的文本单元
type Segment struct {
	Kind Kind
	Text string
	// Source is the byte offset in the Markdown source this segment was
	// produced from and SourceLen the number of source bytes it stands for.
	// Generated markup has SourceLen 0.
	Source    int
	SourceLen int
}

// NewCode creates a Code segment anchored at source offset src.
func NewCode(html string, src int) Segment {
	return Segment{Kind: Code, Text: html, Source: src}
}

// NewPlain creates a Plain segment covering source[src:src+srcLen].
func NewPlain(text string, src, srcLen int) Segment {
	return Segment{Kind: Plain, Text: text, Source: src, SourceLen: srcLen}
}

// NewEscaped creates an Escaped segment for the single character c.
func NewEscaped(c byte, src, srcLen int) Segment {
	return Segment{Kind: Escaped, Text: string(c), Source: src, SourceLen: srcLen}
}

// Inside returns the segment's form inside a raw span.
func (s Segment) Inside() string {
	if e, ok := s.entity(); ok {
		return e
	}
	return s.Text
}

// Outside returns the segment's form outside a raw span. Code segments have
// no valid outside form; callers must not place them there.
func (s Segment) Outside() string {
	if s.Text == "\n" {
		return s.Text
	}
	if e, ok := s.entity(); ok {
		return e
	}
	return s.Text
}

// Penalty is the escaping cost of an Escaped segment left outside a raw
// span: the bytes its entity adds over the bare character. Other kinds and
// Escaped segments inside a span cost nothing.
func (s Segment) Penalty() int {
	if e, ok := s.entity(); ok {
		return len(e) - len(s.Text)
	}
	return 0
}

func (s Segment) entity() (string, bool) {
	if s.Kind != Escaped || len(s.Text) != 1 {
		return "", false
	}
	e, ok := entities[s.Text[0]]
	return e, ok
}
