package caret

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riverfjs/textexpand/internal/types"
)

// Source "**ab** <x" encoded as "[code]<strong>ab</strong>[/code] <x".
func sampleMap() *Map {
	pieces := []Piece{
		{Out: 6, OutLen: 8, Src: 0, SrcLen: 0},                // <strong>
		{Out: 14, OutLen: 2, Src: 2, SrcLen: 2, Linear: true}, // ab
		{Out: 16, OutLen: 9, Src: 4, SrcLen: 0},               // </strong>
		{Out: 32, OutLen: 1, Src: 6, SrcLen: 1, Linear: true}, // " "
		{Out: 33, OutLen: 1, Src: 7, SrcLen: 1, Linear: true}, // <
		{Out: 34, OutLen: 1, Src: 8, SrcLen: 1, Linear: true}, // x
	}
	return NewMap(pieces, 9, 35)
}

func TestMap_Offset(t *testing.T) {
	m := sampleMap()
	tests := []struct {
		name string
		src  int
		want int
	}{
		{"start", 0, 0},
		{"negative", -3, 0},
		{"inside opening markup", 1, 14},
		{"first text byte", 2, 14},
		{"middle of text", 3, 15},
		{"end of text", 4, 16},
		{"inside closing markup", 5, 25},
		{"after space", 7, 33},
		{"end of source", 9, 35},
		{"past end", 40, 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Offset(tt.src))
		})
	}
}

func TestMap_NonLinearPieceSnaps(t *testing.T) {
	// "&" encoded as "&amp;" inside a span.
	m := NewMap([]Piece{
		{Out: 6, OutLen: 3, Src: 0, SrcLen: 0},
		{Out: 9, OutLen: 5, Src: 1, SrcLen: 1},
		{Out: 14, OutLen: 4, Src: 2, SrcLen: 0},
	}, 3, 25)
	assert.Equal(t, 9, m.Offset(1))
	assert.Equal(t, 14, m.Offset(2))
}

func TestMap_Ranges(t *testing.T) {
	m := sampleMap()
	got := m.Ranges([]types.Range{{Start: 2, End: 4}, {Start: 8, End: 7}})
	assert.Equal(t, []types.Range{{Start: 14, End: 16}, {Start: 34, End: 34}}, got)
}

func TestUTF16(t *testing.T) {
	text := "a😀é"
	assert.Equal(t, 4, UTF16Len(text))

	assert.Equal(t, 0, ByteToUTF16(text, 0))
	assert.Equal(t, 1, ByteToUTF16(text, 1))
	assert.Equal(t, 1, ByteToUTF16(text, 3), "inside the emoji")
	assert.Equal(t, 3, ByteToUTF16(text, 5))
	assert.Equal(t, 4, ByteToUTF16(text, 99))

	assert.Equal(t, 0, UTF16ToByte(text, 0))
	assert.Equal(t, 1, UTF16ToByte(text, 1))
	assert.Equal(t, 1, UTF16ToByte(text, 2), "inside the surrogate pair")
	assert.Equal(t, 5, UTF16ToByte(text, 3))
	assert.Equal(t, 7, UTF16ToByte(text, 4))

	assert.Equal(t,
		[]types.Range{{Start: 1, End: 3}, {Start: 4, End: 4}},
		RangesToUTF16(text, []types.Range{{Start: 1, End: 5}, {Start: 7, End: 12}}),
	)
}
