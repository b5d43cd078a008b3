package textexpand

import (
	"github.com/riverfjs/textexpand/internal/caret"
	"github.com/riverfjs/textexpand/internal/encoder"
	"github.com/riverfjs/textexpand/internal/resolver"
	"github.com/riverfjs/textexpand/internal/segment"
	"github.com/riverfjs/textexpand/internal/trigger"
)

// Expand resolves every placeholder and cursor marker in text.
//
// 参数：
//   - registry: 触发器注册表，nil 表示空表
//   - text: 运营人员输入的文本
//   - caret: 光标位置（默认字节偏移，WithUTF16 时为 UTF-16 code units）
//
// Expansion never fails: unknown and declined placeholders stay in the text
// and are reported in Result.Lookups.
func Expand(registry *Registry, text string, caretPos int, opts ...Option) Result {
	options := applyOptions(opts...)
	res := resolve(registry, text, caretPos, options)

	out := Result{
		Text:    res.Text,
		Ranges:  res.Ranges,
		Caret:   res.Caret,
		Lookups: res.Lookups,
	}
	if options.UTF16 {
		toUTF16(&out)
	}
	return out
}

// ExpandMarkdown expands text like Expand, renders the result as Markdown
// and encodes it for the transport. Ranges and the caret are mapped onto the
// encoded text.
func ExpandMarkdown(registry *Registry, text string, caretPos int, opts ...Option) Result {
	options := applyOptions(opts...)
	res := resolve(registry, text, caretPos, options)

	segs := segment.Parse(res.Text, options.Config)
	enc := encoder.Encode(segs, options.Config.Raw)
	m := caret.NewMap(enc.Pieces, len(res.Text), len(enc.Text))

	out := Result{
		Text:    enc.Text,
		Ranges:  m.Ranges(res.Ranges),
		Caret:   m.Offset(res.Caret),
		Lookups: res.Lookups,
		Spans:   enc.Spans,
	}
	if options.UTF16 {
		toUTF16(&out)
	}
	return out
}

// resolve runs the resolver with byte offsets and logs placeholders that hit
// the depth bound.
func resolve(registry *Registry, text string, caretPos int, options *ExpandOptions) resolver.Result {
	if options.UTF16 {
		caretPos = caret.UTF16ToByte(text, caretPos)
	}

	var lookups resolver.Lookuper = emptyRegistry{}
	if registry != nil {
		lookups = registry
	}

	res := resolver.New(lookups, options.Config.Placeholder, options.Config.MaxDepth).Resolve(text, caretPos)
	for _, l := range res.Lookups {
		if l.Status == DepthExceeded {
			Logger.Printf("trigger %q nested deeper than %d, substituted %q", l.Name, options.Config.MaxDepth, Sentinel)
		}
	}
	return res
}

func toUTF16(res *Result) {
	res.Ranges = caret.RangesToUTF16(res.Text, res.Ranges)
	res.Caret = caret.ByteToUTF16(res.Text, res.Caret)
}

// emptyRegistry resolves nothing.
type emptyRegistry struct{}

func (emptyRegistry) Lookup(string) (string, trigger.Outcome) {
	return "", trigger.Unknown
}
