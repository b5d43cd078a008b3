package segment

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// domainLinkRegexp matches bare host names under root, with an optional path.
func domainLinkRegexp(root string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)*` +
		regexp.QuoteMeta(root) +
		`\b(?:/[^\s<>()\[\]]*[^\s<>()\[\].,;:!?'"])?`)
}

type domainLinkExtension struct {
	root string
}

// Extend implements goldmark.Extender.
func (e *domainLinkExtension) Extend(m goldmark.Markdown) {
	if e.root == "" {
		return
	}
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&domainLinkTransformer{re: domainLinkRegexp(e.root)}, 100),
	))
}

// domainLinkTransformer turns bare host names ending in the configured root
// domain into https links. Scheme and www. links are left to Linkify.
type domainLinkTransformer struct {
	re *regexp.Regexp
}

func (t *domainLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var targets []*ast.Text
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Link, *ast.AutoLink, *ast.Image, *ast.CodeSpan:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if t.re.Match(n.Segment.Value(source)) {
				targets = append(targets, n)
			}
		}
		return ast.WalkContinue, nil
	})

	// 遍历结束后再修改树
	for _, n := range targets {
		t.split(n, source)
	}
}

func (t *domainLinkTransformer) split(n *ast.Text, source []byte) {
	parent := n.Parent()
	if parent == nil {
		return
	}
	seg := n.Segment
	value := seg.Value(source)

	last := 0
	for _, m := range t.re.FindAllIndex(value, -1) {
		if m[0] > 0 && strings.IndexByte("@/.:-_", value[m[0]-1]) >= 0 {
			continue
		}
		if m[0] > last {
			parent.InsertBefore(parent, n, ast.NewTextSegment(text.NewSegment(seg.Start+last, seg.Start+m[0])))
		}
		link := ast.NewLink()
		link.Destination = append([]byte("https://"), value[m[0]:m[1]]...)
		link.AppendChild(link, ast.NewTextSegment(text.NewSegment(seg.Start+m[0], seg.Start+m[1])))
		parent.InsertBefore(parent, n, link)
		last = m[1]
	}
	if last == 0 {
		return
	}

	// The remainder keeps the original line-break flags.
	n.Segment = text.NewSegment(seg.Start+last, seg.Stop)
}
