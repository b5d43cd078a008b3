package segment

import (
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/textexpand/internal/types"
)

// StandardOptions goldmark 扩展配置：只启用需要的 Markdown 子集
func StandardOptions(config *types.RenderConfig) []goldmark.Option {
	return []goldmark.Option{
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
			extension.Linkify,
			&rawSpanExtension{delims: config.Raw},
			&domainLinkExtension{root: config.RootDomain},
			&labelTableExtension{},
		),
	}
}

// instanceKey holds the config fields that change how goldmark parses.
type instanceKey struct {
	raw        types.Delimiters
	rootDomain string
}

// instances caches one goldmark instance per instanceKey.
var instances sync.Map

// New returns the goldmark instance for config, building it on first use.
// Instances are shared; goldmark parsers keep no state between parses.
func New(config *types.RenderConfig) goldmark.Markdown {
	config = config.Normalized()
	key := instanceKey{raw: config.Raw, rootDomain: config.RootDomain}
	if md, ok := instances.Load(key); ok {
		return md.(goldmark.Markdown)
	}
	md, _ := instances.LoadOrStore(key, goldmark.New(StandardOptions(config)...))
	return md.(goldmark.Markdown)
}

// ParseAST 仅解析为 AST，不遍历
func ParseAST(markdown string, config *types.RenderConfig) (ast.Node, []byte) {
	source := []byte(markdown)
	reader := text.NewReader(source)
	return New(config).Parser().Parse(reader), source
}

// Parse 解析 Markdown 并遍历 AST 生成 segments
func Parse(markdown string, config *types.RenderConfig) []Segment {
	config = config.Normalized()
	if markdown == "" {
		return nil
	}

	node, source := ParseAST(markdown, config)

	walker := NewEventWalker(source, config)
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		return walker.Walk(n, entering)
	})

	return walker.Result()
}
