package textexpand

import (
	"github.com/riverfjs/textexpand/internal/encoder"
	"github.com/riverfjs/textexpand/internal/segment"
)

// Rendered is an encoded Markdown document.
type Rendered struct {
	// Text is the transport encoding.
	Text string
	// Spans counts raw spans in Text.
	Spans int
	// Cost is the number of bytes spent on delimiters and entities.
	Cost int
}

// RenderMarkdown 将 Markdown 渲染并编码为传输格式
//
// 参数:
//   - markdown: 原始 Markdown 文本
//   - opts: 渲染选项，如 WithRawDelimiters、WithRootDomain
//
// 返回:
//   - string: 编码后的文本，原样区段外的内容保持原文
func RenderMarkdown(markdown string, opts ...Option) string {
	return Render(markdown, opts...).Text
}

// Render is RenderMarkdown with encoding statistics.
func Render(markdown string, opts ...Option) Rendered {
	options := applyOptions(opts...)
	segs := segment.Parse(markdown, options.Config)
	enc := encoder.Encode(segs, options.Config.Raw)
	return Rendered{Text: enc.Text, Spans: enc.Spans, Cost: enc.Cost}
}
