// Package textexpand 展开运营人员输入中的 {{trigger}} 占位符，并把 Markdown
// 编码为只认 [code]...[/code] 原样区段的传输格式
//
// 核心功能：
//   - 触发器注册表：静态值或按需计算的值，多别名
//   - 占位符递归展开，深度有上限，CURSOR() 标记决定光标位置
//   - Markdown 渲染为 HTML 片段，并以最少的转义代价放入原样区段
//   - 光标与选区从输入文本映射到最终输出
//
// 主要 API：
//   - Expand(): 仅展开占位符，返回文本与光标范围
//   - ExpandMarkdown(): 展开后渲染 Markdown，光标范围映射到编码结果
//   - RenderMarkdown(): 仅渲染 Markdown
//
// 示例：
//
//	registry := textexpand.DefaultRegistry()
//	_ = registry.Register([]string{"sig"}, textexpand.Static("Thanks,\nCURSOR()"), "signature")
//
//	res := textexpand.ExpandMarkdown(registry, "**Hi** {{sig}}", 0)
//	fmt.Println(res.Text)   // [code]<strong>Hi</strong> Thanks,[/code]
//	fmt.Println(res.Ranges) // where the caret goes
package textexpand

import (
	"github.com/riverfjs/textexpand/internal/resolver"
	"github.com/riverfjs/textexpand/internal/trigger"
)

// 导出类型别名
type Registry = trigger.Registry
type Replacement = trigger.Replacement
type Descriptor = trigger.Descriptor
type BuiltinOptions = trigger.BuiltinOptions
type Lookup = resolver.Lookup
type LookupStatus = resolver.Status

// Lookup statuses.
const (
	Expanded      = resolver.Expanded
	Declined      = resolver.Declined
	Unknown       = resolver.Unknown
	DepthExceeded = resolver.DepthExceeded
)

// Sentinel replaces a placeholder nested deeper than the configured bound.
const Sentinel = resolver.Sentinel

// Static returns a Replacement that always produces s.
func Static(s string) Replacement {
	return trigger.Static(s)
}

// Computed returns a Replacement that calls fn on every lookup. fn returns
// false to decline, which leaves the placeholder untouched.
func Computed(fn func() (string, bool)) Replacement {
	return trigger.Computed(fn)
}

// NewRegistry returns an empty trigger registry.
func NewRegistry() *Registry {
	return trigger.NewRegistry()
}

// DefaultRegistry returns a registry holding the built-in date, time and id
// triggers.
func DefaultRegistry() *Registry {
	r, err := RegistryWithBuiltins(trigger.DefaultBuiltinOptions())
	if err != nil {
		// Built-in names never collide in an empty registry.
		panic(err)
	}
	return r
}

// RegistryWithBuiltins returns a registry holding the built-in triggers
// configured by opts.
func RegistryWithBuiltins(opts BuiltinOptions) (*Registry, error) {
	r := trigger.NewRegistry()
	if err := trigger.RegisterBuiltins(r, opts); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadTriggers adds the triggers defined in a YAML or JSONC file to r.
func LoadTriggers(r *Registry, path string) error {
	n, err := r.LoadFile(path)
	if err != nil {
		return err
	}
	Logger.Printf("loaded %d triggers from %s", n, path)
	return nil
}

// Result is the outcome of an expansion.
type Result struct {
	// Text is the expanded (and, for ExpandMarkdown, encoded) text.
	Text string
	// Ranges are caret ranges into Text, one per cursor marker in marker
	// order, or the bare caret when there were none.
	Ranges []Range
	// Caret is the caller's caret remapped into Text.
	Caret int
	// Lookups lists every placeholder examined.
	Lookups []Lookup
	// Spans counts raw spans in Text. Always 0 for Expand.
	Spans int
}
