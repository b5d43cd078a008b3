// Package caret maps offsets in a Markdown source onto the encoded output
// produced from it.
package caret

import "github.com/riverfjs/textexpand/internal/types"

// Piece records where one segment landed in the output.
type Piece struct {
	// Out and OutLen locate the emitted text in the output.
	Out, OutLen int
	// Src and SrcLen locate the text it was produced from in the source.
	Src, SrcLen int
	// Linear pieces map byte for byte; the others only map their edges.
	Linear bool
}

// Map translates source offsets into output offsets.
type Map struct {
	pieces []Piece
	srcLen int
	outLen int
}

// NewMap creates a Map from pieces in output order.
func NewMap(pieces []Piece, srcLen, outLen int) *Map {
	return &Map{pieces: pieces, srcLen: srcLen, outLen: outLen}
}

// Offset maps the source offset p into the output.
//
// A piece whose source span contains p decides: a linear piece maps 1:1, any
// other piece snaps to its start when p is its first byte and to its end
// otherwise. Linear pieces win over the rest. An offset no piece covers
// lands after the last piece that ends at or before it. Offsets at or past
// the end of the source map to the end of the output.
func (m *Map) Offset(p int) int {
	if p <= 0 {
		return 0
	}
	if p >= m.srcLen {
		return m.outLen
	}

	snap := -1
	for _, pc := range m.pieces {
		if p < pc.Src || p > pc.Src+pc.SrcLen {
			continue
		}
		if pc.Linear {
			return pc.Out + (p - pc.Src)
		}
		if snap < 0 {
			if p == pc.Src {
				snap = pc.Out
			} else {
				snap = pc.Out + pc.OutLen
			}
		}
	}
	if snap >= 0 {
		return snap
	}

	out := 0
	for _, pc := range m.pieces {
		if pc.Src+pc.SrcLen <= p && pc.Out+pc.OutLen > out {
			out = pc.Out + pc.OutLen
		}
	}
	return out
}

// Range maps both ends of r. The result never ends before it starts.
func (m *Map) Range(r types.Range) types.Range {
	start, end := m.Offset(r.Start), m.Offset(r.End)
	if end < start {
		end = start
	}
	return types.Range{Start: start, End: end}
}

// Ranges maps every range in rs.
func (m *Map) Ranges(rs []types.Range) []types.Range {
	out := make([]types.Range, len(rs))
	for i, r := range rs {
		out[i] = m.Range(r)
	}
	return out
}
