package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextBuffer_Offsets(t *testing.T) {
	tb := New()
	tb.Grow(16)
	assert.Equal(t, 0, tb.Write("ab"))
	assert.Equal(t, 2, tb.Write("é"))
	assert.Equal(t, 4, tb.Write("😀"))
	assert.Equal(t, 8, tb.Write(""))

	assert.Equal(t, "abé😀", tb.String())
}
