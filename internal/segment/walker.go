package segment

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/textexpand/internal/types"
)

// EventWalker 遍历 goldmark AST 并生成 segments
type EventWalker struct {
	source []byte
	config *types.RenderConfig
	segs   []Segment

	// pos anchors generated markup in the source: the end of the last
	// literal text, or the start of the block being entered.
	pos int

	// Block-level state
	bare       bool // 单段落文档不包 <p>
	blockCount int

	// Inline state
	inCodeSpan bool

	// Table state
	tableRows int
}

// NewEventWalker 创建新的 EventWalker
func NewEventWalker(source []byte, config *types.RenderConfig) *EventWalker {
	return &EventWalker{
		source: source,
		config: config.Normalized(),
		segs:   make([]Segment, 0),
	}
}

// Walk 遍历 AST 节点
func (w *EventWalker) Walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	// --- Document ---
	case *ast.Document:
		if entering {
			w.bare = isBare(n)
		}

	// --- Inline elements ---
	case *ast.Text:
		if entering {
			w.onText(n)
		}

	case *ast.String:
		if entering {
			w.literal(string(n.Value), w.pos, false)
		}

	case *ast.CodeSpan:
		if entering {
			w.code("<code>")
			w.inCodeSpan = true
		} else {
			w.inCodeSpan = false
			w.code("</code>")
		}

	case *ast.Emphasis:
		tag := "em"
		if n.Level == 2 {
			tag = "strong"
		}
		w.tag(tag, entering)

	case *east.Strikethrough:
		w.tag("del", entering)

	case *ast.RawHTML:
		if entering {
			for i := 0; i < n.Segments.Len(); i++ {
				w.literalSegment(n.Segments.At(i))
			}
		}

	// --- Links & Images ---
	case *ast.Link:
		if entering {
			w.onStartLink(n)
		} else {
			w.code("</a>")
		}

	case *ast.Image:
		if entering {
			w.onImage(n)
			return ast.WalkSkipChildren, nil
		}

	case *ast.AutoLink:
		if entering {
			w.onAutoLink(n)
			return ast.WalkSkipChildren, nil
		}

	// --- Raw spans ---
	case *RawSpan:
		if entering {
			inner := string(n.Inner.Value(w.source))
			w.segs = append(w.segs, Segment{
				Kind:      Code,
				Text:      w.neutralizeCode(inner),
				Source:    n.Outer.Start,
				SourceLen: n.Outer.Len(),
			})
			w.pos = n.Outer.Stop
		}

	case *StrayDelimiter:
		if entering {
			delim := string(n.Segment.Value(w.source))
			w.segs = append(w.segs, Segment{
				Kind:      Code,
				Text:      w.neutralizeCode(delim),
				Source:    n.Segment.Start,
				SourceLen: n.Segment.Len(),
			})
			w.pos = n.Segment.Stop
		}

	// --- Block elements ---
	case *ast.Paragraph:
		if entering {
			w.startBlock(n)
			if !w.bare {
				w.code("<p>")
			}
		} else {
			if !w.bare {
				w.code("</p>")
			}
			w.endBlock(n)
		}

	case *ast.TextBlock:
		// Tight list items: content goes straight into <li>.

	case *ast.Heading:
		tag := fmt.Sprintf("h%d", n.Level)
		if entering {
			w.startBlock(n)
			w.code("<" + tag + ">")
		} else {
			w.code("</" + tag + ">")
			w.endBlock(n)
		}

	case *ast.Blockquote:
		if entering {
			w.startBlock(n)
			w.code("<blockquote>")
		} else {
			w.code("</blockquote>")
			w.endBlock(n)
		}

	case *ast.List:
		if entering {
			w.startBlock(n)
			w.code(listOpenTag(n))
		} else {
			if n.IsOrdered() {
				w.code("</ol>")
			} else {
				w.code("</ul>")
			}
			w.endBlock(n)
		}

	case *ast.ListItem:
		w.tag("li", entering)

	case *east.TaskCheckBox:
		if entering {
			if n.IsChecked {
				w.code(`<input type="checkbox" checked disabled> `)
			} else {
				w.code(`<input type="checkbox" disabled> `)
			}
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.onCodeBlock(n)
			return ast.WalkSkipChildren, nil
		}

	case *ast.ThematicBreak:
		if entering {
			w.startBlock(n)
			w.code("<hr>")
			w.endBlock(n)
		}

	case *ast.HTMLBlock:
		if entering {
			w.onHTMLBlock(n)
			return ast.WalkSkipChildren, nil
		}

	case *LabelTable:
		if entering {
			w.onLabelTable(n)
			return ast.WalkSkipChildren, nil
		}

	// --- Table ---
	case *east.Table:
		if entering {
			w.startBlock(n)
			w.tableRows = 0
			w.code("<table>")
		} else {
			if w.tableRows > 0 {
				w.code("</tbody>")
			}
			w.code("</table>")
			w.endBlock(n)
		}

	case *east.TableHeader:
		if entering {
			w.code("<thead><tr>")
		} else {
			w.code("</tr></thead>")
		}

	case *east.TableRow:
		if entering {
			if w.tableRows == 0 {
				w.code("<tbody>")
			}
			w.tableRows++
			w.code("<tr>")
		} else {
			w.code("</tr>")
		}

	case *east.TableCell:
		tag := "td"
		if _, ok := n.Parent().(*east.TableHeader); ok {
			tag = "th"
		}
		if entering {
			if n.Alignment != east.AlignNone {
				w.code(fmt.Sprintf(`<%s style="text-align:%s">`, tag, n.Alignment.String()))
			} else {
				w.code("<" + tag + ">")
			}
		} else {
			w.code("</" + tag + ">")
		}
	}

	return ast.WalkContinue, nil
}

// Result 返回 segments；连续 Plain 中出现的定界符会被中和
func (w *EventWalker) Result() []Segment {
	return neutralizeRuns(w.segs, w.config.Raw)
}

// --- Text handling ---

func (w *EventWalker) onText(n *ast.Text) {
	seg := n.Segment
	value := string(seg.Value(w.source))

	if w.inCodeSpan {
		// 行内代码里的换行渲染为空格
		if strings.HasSuffix(value, "\n") {
			w.literal(value[:len(value)-1], seg.Start, true)
			w.segs = append(w.segs, NewPlain(" ", seg.Stop-1, 1))
			return
		}
		w.literal(value, seg.Start, true)
		return
	}

	w.unescaped(value, seg.Start)

	switch {
	case n.HardLineBreak():
		w.lineBreak(seg.Stop)
	case n.SoftLineBreak():
		if w.config.Breaks {
			w.lineBreak(seg.Stop)
		} else {
			w.segs = append(w.segs, NewPlain(" ", seg.Stop, 0))
		}
	}
}

// literal emits author text. '<', '>' and '&' become Escaped segments, the
// rest is Plain. Linear text maps byte for byte onto source[src:]; other text
// is anchored at src.
func (w *EventWalker) literal(s string, src int, linear bool) {
	at := func(i, n int) (int, int) {
		if linear {
			return src + i, n
		}
		return src, 0
	}

	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' || !IsEscapable(c) {
			continue
		}
		if i > start {
			p, l := at(start, i-start)
			w.segs = append(w.segs, NewPlain(s[start:i], p, l))
		}
		p, l := at(i, 1)
		w.segs = append(w.segs, NewEscaped(c, p, l))
		start = i + 1
	}
	if start < len(s) {
		p, l := at(start, len(s)-start)
		w.segs = append(w.segs, NewPlain(s[start:], p, l))
	}

	if linear {
		w.pos = src + len(s)
	}
}

// unescaped emits paragraph text, dropping the backslash of each
// backslash-escaped punctuation character.
func (w *EventWalker) unescaped(value string, src int) {
	start := 0
	for i := 0; i+1 < len(value); i++ {
		if value[i] == '\\' && util.IsPunct(value[i+1]) {
			w.literal(value[start:i], src+start, true)
			start = i + 1
			i++
		}
	}
	w.literal(value[start:], src+start, true)
}

func (w *EventWalker) literalSegment(seg text.Segment) {
	w.literal(string(seg.Value(w.source)), seg.Start, true)
}

// lineBreak emits a rendered line break: a newline outside a raw span, a
// <br> inside one.
func (w *EventWalker) lineBreak(src int) {
	w.segs = append(w.segs, NewEscaped('\n', src, 0))
}

func (w *EventWalker) code(markup string) {
	w.segs = append(w.segs, NewCode(markup, w.pos))
}

func (w *EventWalker) tag(name string, entering bool) {
	if entering {
		w.code("<" + name + ">")
	} else {
		w.code("</" + name + ">")
	}
}

// attr escapes an attribute value taken from the source.
func (w *EventWalker) attr(value []byte) string {
	return w.neutralizeCode(string(util.EscapeHTML(value)))
}

// neutralizeCode rewrites raw-span delimiters inside generated markup so the
// transport never sees an unbalanced one.
func (w *EventWalker) neutralizeCode(s string) string {
	return neutralizeDelimiters(s, w.config.Raw)
}

// --- Links & Images ---

func (w *EventWalker) href(dest []byte) string {
	if html.IsDangerousURL(dest) {
		return ""
	}
	return w.attr(util.URLEscape(dest, true))
}

func (w *EventWalker) onStartLink(n *ast.Link) {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(w.href(n.Destination))
	b.WriteByte('"')
	if len(n.Title) > 0 {
		b.WriteString(` title="`)
		b.WriteString(w.attr(n.Title))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	w.code(b.String())
}

func (w *EventWalker) onImage(n *ast.Image) {
	var b strings.Builder
	b.WriteString(`<img src="`)
	b.WriteString(w.href(n.Destination))
	b.WriteString(`" alt="`)
	b.WriteString(w.attr([]byte(nodeText(n, w.source))))
	b.WriteByte('"')
	if len(n.Title) > 0 {
		b.WriteString(` title="`)
		b.WriteString(w.attr(n.Title))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	w.code(b.String())
}

func (w *EventWalker) onAutoLink(n *ast.AutoLink) {
	url := n.URL(w.source)
	if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(string(url)), "mailto:") {
		url = append([]byte("mailto:"), url...)
	}
	w.code(`<a href="` + w.href(url) + `">`)
	w.literal(string(n.Label(w.source)), w.pos, false)
	w.code("</a>")
}

// --- Blocks ---

// isBare reports whether the document is a single paragraph, which renders
// without a <p> wrapper.
func isBare(doc *ast.Document) bool {
	first := doc.FirstChild()
	if first == nil || first != doc.LastChild() {
		return false
	}
	switch first.(type) {
	case *ast.Paragraph, *ast.HTMLBlock:
		return true
	}
	return false
}

func (w *EventWalker) startBlock(n ast.Node) {
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		w.pos = lines.At(0).Start
	}
	if _, ok := n.Parent().(*ast.Document); !ok {
		return
	}
	if w.blockCount > 0 {
		w.segs = append(w.segs, NewPlain("\n", w.pos, 0))
	}
}

func (w *EventWalker) endBlock(n ast.Node) {
	if _, ok := n.Parent().(*ast.Document); ok {
		w.blockCount++
	}
}

func listOpenTag(n *ast.List) string {
	if !n.IsOrdered() {
		return "<ul>"
	}
	if n.Start != 1 {
		return fmt.Sprintf(`<ol start="%d">`, n.Start)
	}
	return "<ol>"
}

func (w *EventWalker) onCodeBlock(n ast.Node) {
	w.startBlock(n)

	lang := ""
	if fenced, ok := n.(*ast.FencedCodeBlock); ok {
		lang = strings.TrimSpace(strings.Split(string(fenced.Language(w.source)), ",")[0])
	}
	if lang != "" {
		w.code(`<pre><code class="language-` + w.attr([]byte(lang)) + `">`)
	} else {
		w.code("<pre><code>")
	}

	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		value := string(line.Value(w.source))
		if i == lines.Len()-1 {
			// Strip single trailing newline
			value = strings.TrimSuffix(value, "\n")
		}
		w.literal(value, line.Start, line.Padding == 0)
	}

	w.code("</code></pre>")
	w.endBlock(n)
}

// onHTMLBlock shows block-level HTML as text.
func (w *EventWalker) onHTMLBlock(n *ast.HTMLBlock) {
	w.startBlock(n)
	if !w.bare {
		w.code("<p>")
	}

	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		if i > 0 {
			w.lineBreak(w.pos)
		}
		line := lines.At(i)
		w.literal(strings.TrimRight(string(line.Value(w.source)), "\r\n"), line.Start, true)
	}
	if n.HasClosure() {
		if lines.Len() > 0 {
			w.lineBreak(w.pos)
		}
		w.literal(strings.TrimRight(string(n.ClosureLine.Value(w.source)), "\r\n"), n.ClosureLine.Start, true)
	}

	if !w.bare {
		w.code("</p>")
	}
	w.endBlock(n)
}

func (w *EventWalker) onLabelTable(n *LabelTable) {
	w.startBlock(n)
	w.code("<table>")
	for _, row := range n.Rows {
		w.pos = row.Label.Start
		w.code("<tr><td>")
		w.literalSegment(row.Label)
		w.code("</td><td>")
		for i, v := range row.Value {
			if i > 0 {
				w.lineBreak(w.pos)
			}
			w.literalSegment(v)
		}
		w.code("</td></tr>")
	}
	w.code("</table>")
	w.endBlock(n)
}

// --- Utilities ---

// nodeText collects the literal text below n.
func nodeText(n ast.Node, source []byte) string {
	var buf strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			_, _ = buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			_, _ = buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
