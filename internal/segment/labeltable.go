package segment

import (
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// minLabelRows is the number of consecutive "Label: value" lines needed
// before they are rendered as a table.
const minLabelRows = 3

// labelLineRegexp matches "Label: value" and "Label:". A label starts with a
// letter, has no colon, and the colon must be followed by blank space so
// "http://..." and "10:30" never qualify.
var labelLineRegexp = regexp.MustCompile(`^(\pL[^:\n]{0,63}?)[ \t]*:(?:[ \t]+(.*?))?[ \t]*\r?\n?$`)

// KindLabelTable is the NodeKind of LabelTable.
var KindLabelTable = ast.NewNodeKind("LabelTable")

// LabelRow is one row of a LabelTable. Value has one segment per source
// line; continuation lines are appended to the row they follow.
type LabelRow struct {
	Label text.Segment
	Value []text.Segment
}

// LabelTable is a run of "Label: value" lines rendered as a two-column table.
type LabelTable struct {
	ast.BaseBlock
	Rows []LabelRow
}

// Kind implements ast.Node.
func (n *LabelTable) Kind() ast.NodeKind { return KindLabelTable }

// IsRaw implements ast.Node. Values are shown as written.
func (n *LabelTable) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *LabelTable) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type labelTableParser struct{}

func (p *labelTableParser) Trigger() []byte {
	triggers := make([]byte, 0, 52)
	for c := byte('a'); c <= 'z'; c++ {
		triggers = append(triggers, c, c-'a'+'A')
	}
	return triggers
}

func (p *labelTableParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	if parent.Kind() != ast.KindDocument {
		return nil, parser.NoChildren
	}
	line, seg := reader.PeekLine()
	if !labelLineRegexp.Match(line) || countLabelRows(reader.Source(), seg.Start) < minLabelRows {
		return nil, parser.NoChildren
	}
	node := &LabelTable{}
	node.Lines().Append(seg)
	reader.Advance(seg.Len() - 1)
	return node, parser.NoChildren
}

func (p *labelTableParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, seg := reader.PeekLine()
	if line == nil || util.IsBlank(line) {
		return parser.Close
	}
	if !labelLineRegexp.Match(line) && !isContinuation(line) {
		return parser.Close
	}
	node.Lines().Append(seg)
	reader.Advance(seg.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (p *labelTableParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	table := node.(*LabelTable)
	source := reader.Source()
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := seg.Value(source)
		if m := labelLineRegexp.FindSubmatchIndex(line); m != nil {
			row := LabelRow{Label: text.NewSegment(seg.Start+m[2], seg.Start+m[3])}
			if m[4] >= 0 && m[5] > m[4] {
				row.Value = append(row.Value, text.NewSegment(seg.Start+m[4], seg.Start+m[5]))
			}
			table.Rows = append(table.Rows, row)
			continue
		}
		if n := len(table.Rows); n > 0 {
			v := seg.TrimLeftSpace(source)
			v = v.TrimRightSpace(source)
			if v.Len() > 0 {
				table.Rows[n-1].Value = append(table.Rows[n-1].Value, v)
			}
		}
	}
}

func (p *labelTableParser) CanInterruptParagraph() bool {
	return false
}

func (p *labelTableParser) CanAcceptIndentedLine() bool {
	return false
}

// isContinuation reports whether line is an indented, non-blank line.
func isContinuation(line []byte) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && !util.IsBlank(line)
}

// countLabelRows counts label lines in the run starting at offset.
func countLabelRows(source []byte, offset int) int {
	rows := 0
	for offset < len(source) {
		end := offset
		for end < len(source) && source[end] != '\n' {
			end++
		}
		if end < len(source) {
			end++
		}
		line := source[offset:end]
		switch {
		case util.IsBlank(line):
			return rows
		case labelLineRegexp.Match(line):
			rows++
		case rows > 0 && isContinuation(line):
		default:
			return rows
		}
		offset = end
	}
	return rows
}

type labelTableExtension struct{}

// Extend implements goldmark.Extender.
func (e *labelTableExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&labelTableParser{}, 950),
	))
}
