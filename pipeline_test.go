package textexpand

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/textexpand/internal/trigger"
)

func registryWith(t *testing.T, static map[string]string) *Registry {
	t.Helper()
	r := NewRegistry()
	for name, value := range static {
		require.NoError(t, r.Register([]string{name}, Static(value), ""))
	}
	return r
}

// captureLog 把 Logger 重定向到 buffer，测试结束后恢复
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := Logger
	SetLogger(log.New(&buf, "", 0))
	t.Cleanup(func() { SetLogger(old) })
	return &buf
}

func TestExpand_Basic(t *testing.T) {
	r := registryWith(t, map[string]string{"name": "Bob"})
	res := Expand(r, "Hi {{name}}", len("Hi {{name}}"))
	assert.Equal(t, "Hi Bob", res.Text)
	assert.Equal(t, []Range{{Start: 6, End: 6}}, res.Ranges)
	assert.Equal(t, 6, res.Caret)
	assert.Equal(t, 0, res.Spans)
	require.Len(t, res.Lookups, 1)
	assert.Equal(t, Expanded, res.Lookups[0].Status)
}

func TestExpand_NilRegistry(t *testing.T) {
	res := Expand(nil, "{{nope}} x", 0)
	assert.Equal(t, "{{nope}} x", res.Text)
	require.Len(t, res.Lookups, 1)
	assert.Equal(t, Unknown, res.Lookups[0].Status)
}

func TestExpand_Today(t *testing.T) {
	r, err := RegistryWithBuiltins(BuiltinOptions{
		Clock: trigger.FixedClock(time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	input := "Date: {{today}}"
	res := Expand(r, input, len(input))
	assert.Equal(t, "Date: 01/02/2024", res.Text)
	assert.Equal(t, []Range{{Start: 16, End: 16}}, res.Ranges)
}

func TestExpand_DepthExceededIsLogged(t *testing.T) {
	buf := captureLog(t)
	r := registryWith(t, map[string]string{"loop": "x{{loop}}"})

	res := Expand(r, "{{loop}}", 0, WithMaxDepth(2))
	assert.Equal(t, "xx"+Sentinel, res.Text)
	assert.Contains(t, buf.String(), `trigger "loop" nested deeper than 2`)
}

func TestExpand_UTF16(t *testing.T) {
	r := registryWith(t, map[string]string{"x": "ab"})
	// "😀 {{x}}" 是 8 个 UTF-16 code units
	res := Expand(r, "😀 {{x}}", 8, WithUTF16(true))
	assert.Equal(t, "😀 ab", res.Text)
	assert.Equal(t, 5, res.Caret)
	assert.Equal(t, []Range{{Start: 5, End: 5}}, res.Ranges)
}

func TestExpand_PlaceholderDelimiters(t *testing.T) {
	r := registryWith(t, map[string]string{"name": "Bob"})
	res := Expand(r, "Hi <%name%> {{name}}", 0, WithPlaceholderDelimiters("<%", "%>"))
	assert.Equal(t, "Hi Bob {{name}}", res.Text)
}

func TestExpandMarkdown_CursorInsideMarkup(t *testing.T) {
	r := registryWith(t, map[string]string{"sig": `Thanks **CURSOR("Ann")**`})

	res := ExpandMarkdown(r, "{{sig}}", 0)
	assert.Equal(t, "Thanks [code]<strong>Ann</strong>[/code]", res.Text)
	require.Len(t, res.Ranges, 1)
	rg := res.Ranges[0]
	assert.Equal(t, "Ann", res.Text[rg.Start:rg.End])
	assert.Equal(t, 0, res.Caret)
	assert.Equal(t, 1, res.Spans)
}

func TestExpandMarkdown_CaretAtEnd(t *testing.T) {
	r := registryWith(t, map[string]string{"kb": "**KB**"})
	input := "see {{kb}}"

	res := ExpandMarkdown(r, input, len(input))
	assert.Equal(t, "see [code]<strong>KB</strong>[/code]", res.Text)
	assert.Equal(t, len(res.Text), res.Caret)
	assert.Equal(t, []Range{{Start: len(res.Text), End: len(res.Text)}}, res.Ranges)
}

func TestExpandMarkdown_OffsetsAfterEntities(t *testing.T) {
	r := registryWith(t, map[string]string{"name": "Bob"})
	input := "a < {{name}} CURSOR() b"

	res := ExpandMarkdown(r, input, 0)
	assert.Equal(t, "a &lt; Bob  b", res.Text)
	require.Len(t, res.Ranges, 1)
	assert.Equal(t, Range{Start: 11, End: 11}, res.Ranges[0])
	assert.Equal(t, "a &lt; Bob ", res.Text[:res.Ranges[0].Start])
	assert.Equal(t, 0, res.Spans)
}

func TestExpandMarkdown_UnknownTriggerStaysText(t *testing.T) {
	res := ExpandMarkdown(NewRegistry(), "{{nope}}", 0)
	assert.Equal(t, "{{nope}}", res.Text)
	require.Len(t, res.Lookups, 1)
	assert.Equal(t, Unknown, res.Lookups[0].Status)
}

func TestExpandMarkdown_UTF16(t *testing.T) {
	r := registryWith(t, map[string]string{"x": "*é*"})
	res := ExpandMarkdown(r, "😀 {{x}}", 8, WithUTF16(true))
	assert.Equal(t, "😀 [code]<em>é</em>[/code]", res.Text)
	// 2 (😀) + 1 + len("[code]<em>é</em>[/code]")
	assert.Equal(t, 3+23, res.Caret)
}

func TestDefaultRegistry_HasBuiltins(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range []string{"today", "time", "uuid"} {
		_, ok := r.Descriptor(name)
		assert.True(t, ok, name)
	}
}
