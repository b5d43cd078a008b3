package types

// Range 表示最终输出中的一个光标区间 [Start, End)，单位为字节
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range is a bare caret.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// ToDict 将 Range 转换为 map
func (r Range) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"start": r.Start,
		"end":   r.End,
	}
}

// Delimiters 定义一对开闭分隔符
type Delimiters struct {
	Open  string
	Close string
}

// Valid reports whether both sides are non-empty and distinct.
func (d Delimiters) Valid() bool {
	return d.Open != "" && d.Close != "" && d.Open != d.Close
}

// DefaultRawDelimiters 返回传输格式的原样区段分隔符
func DefaultRawDelimiters() Delimiters {
	return Delimiters{Open: "[code]", Close: "[/code]"}
}

// DefaultPlaceholderDelimiters 返回占位符分隔符
func DefaultPlaceholderDelimiters() Delimiters {
	return Delimiters{Open: "{{", Close: "}}"}
}

// DefaultMaxDepth is the recursion bound used when none is configured.
const DefaultMaxDepth = 10

// RenderConfig 渲染配置
type RenderConfig struct {
	// Raw marks spans the transport takes verbatim.
	Raw Delimiters
	// Placeholder surrounds trigger names in operator text.
	Placeholder Delimiters
	// MaxDepth bounds recursive trigger expansion.
	MaxDepth int
	// RootDomain is the suffix bare domains must end in to be auto-linked.
	RootDomain string
	// Breaks renders soft line breaks as line breaks instead of spaces.
	Breaks bool
}

// DefaultRenderConfig 返回默认渲染配置
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		Raw:         DefaultRawDelimiters(),
		Placeholder: DefaultPlaceholderDelimiters(),
		MaxDepth:    DefaultMaxDepth,
		RootDomain:  "service-now.com",
		Breaks:      true,
	}
}

// Normalized returns a copy with zero-valued fields replaced by defaults.
func (c *RenderConfig) Normalized() *RenderConfig {
	def := DefaultRenderConfig()
	if c == nil {
		return def
	}
	out := *c
	if !out.Raw.Valid() {
		out.Raw = def.Raw
	}
	if !out.Placeholder.Valid() {
		out.Placeholder = def.Placeholder
	}
	if out.MaxDepth < 0 {
		out.MaxDepth = def.MaxDepth
	}
	return &out
}
