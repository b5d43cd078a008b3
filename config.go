package textexpand

import (
	"sync"

	"github.com/riverfjs/textexpand/internal/types"
)

// 导出类型别名
type Range = types.Range
type Delimiters = types.Delimiters
type RenderConfig = types.RenderConfig

// DefaultMaxDepth is the placeholder nesting bound used when none is set.
const DefaultMaxDepth = types.DefaultMaxDepth

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
// Callers must not modify it; options work on a copy.
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}
