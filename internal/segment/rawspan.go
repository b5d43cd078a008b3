package segment

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/textexpand/internal/types"
)

// KindRawSpan is the NodeKind of RawSpan.
var KindRawSpan = ast.NewNodeKind("RawSpan")

// RawSpan is an author-written raw span: everything between the open and
// close delimiter is passed to the transport untouched.
type RawSpan struct {
	ast.BaseInline
	// Inner is the content between the delimiters.
	Inner text.Segment
	// Outer covers the delimiters too.
	Outer text.Segment
}

// Kind implements ast.Node.
func (n *RawSpan) Kind() ast.NodeKind { return KindRawSpan }

// Dump implements ast.Node.
func (n *RawSpan) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Inner": string(n.Inner.Value(source)),
	}, nil)
}

// KindStrayDelimiter is the NodeKind of StrayDelimiter.
var KindStrayDelimiter = ast.NewNodeKind("StrayDelimiter")

// StrayDelimiter is an open or close delimiter without a partner on the same
// line. It is rendered so the transport shows it as text.
type StrayDelimiter struct {
	ast.BaseInline
	Segment text.Segment
}

// Kind implements ast.Node.
func (n *StrayDelimiter) Kind() ast.NodeKind { return KindStrayDelimiter }

// Dump implements ast.Node.
func (n *StrayDelimiter) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Delimiter": string(n.Segment.Value(source)),
	}, nil)
}

type rawSpanParser struct {
	open, close []byte
	triggers    []byte
}

func newRawSpanParser(d types.Delimiters) *rawSpanParser {
	p := &rawSpanParser{open: []byte(d.Open), close: []byte(d.Close)}
	p.triggers = []byte{d.Open[0]}
	if d.Close[0] != d.Open[0] {
		p.triggers = append(p.triggers, d.Close[0])
	}
	return p
}

func (p *rawSpanParser) Trigger() []byte {
	return p.triggers
}

func (p *rawSpanParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, seg := block.PeekLine()
	switch {
	case bytes.HasPrefix(line, p.open):
		rest := line[len(p.open):]
		if i := bytes.Index(rest, p.close); i >= 0 {
			total := len(p.open) + i + len(p.close)
			n := &RawSpan{
				Inner: text.NewSegment(seg.Start+len(p.open), seg.Start+len(p.open)+i),
				Outer: text.NewSegment(seg.Start, seg.Start+total),
			}
			block.Advance(total)
			return n
		}
		block.Advance(len(p.open))
		return &StrayDelimiter{Segment: text.NewSegment(seg.Start, seg.Start+len(p.open))}
	case bytes.HasPrefix(line, p.close):
		block.Advance(len(p.close))
		return &StrayDelimiter{Segment: text.NewSegment(seg.Start, seg.Start+len(p.close))}
	}
	return nil
}

type rawSpanExtension struct {
	delims types.Delimiters
}

// Extend implements goldmark.Extender. The parser runs ahead of the link
// parser so "[code]" never starts a link label.
func (e *rawSpanExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(newRawSpanParser(e.delims), 150),
		),
	)
}
