// Package encoder decides which segments travel inside raw spans.
//
// Rendered markup only survives the transport inside a raw span. Literal
// '<', '>' and '&' are written as entities everywhere, but an entity left in
// plain transport text carries an escaping penalty of its extra bytes, while
// inside a raw span it is free. Opening and closing a span costs the length
// of its delimiters. Encode picks the placement with the smallest penalty.
package encoder

import (
	"math"

	"github.com/riverfjs/textexpand/internal/buffer"
	"github.com/riverfjs/textexpand/internal/caret"
	"github.com/riverfjs/textexpand/internal/segment"
	"github.com/riverfjs/textexpand/internal/types"
)

// inf is large enough to never be a real cost and small enough that a few
// additions do not overflow.
const inf = math.MaxInt / 4

type state int

const (
	outside state = iota
	inside
)

// Result is an encoded document.
type Result struct {
	Text string
	// Pieces records where each segment landed, in output order.
	Pieces []caret.Piece
	// Cost is the total penalty: delimiter bytes plus the escaping
	// penalty of entities left outside raw spans.
	Cost int
	// Spans is the number of raw spans in Text.
	Spans int
}

// cost is the penalty for emitting seg in state s.
func cost(seg segment.Segment, s state) int {
	switch seg.Kind {
	case segment.Code:
		if s == outside {
			return inf
		}
		return 0
	case segment.Escaped:
		if s == outside {
			return seg.Penalty()
		}
		return 0
	default:
		return 0
	}
}

// transition is the penalty for moving from state a to state b.
func transition(d types.Delimiters, a, b state) int {
	switch {
	case a == outside && b == inside:
		return len(d.Open)
	case a == inside && b == outside:
		return len(d.Close)
	default:
		return 0
	}
}

func add(a, b int) int {
	if a >= inf || b >= inf {
		return inf
	}
	return a + b
}

// Encode places segs into raw spans at minimum cost.
//
// best[i][s] is the cheapest way to emit segs[i:] when the state before
// segment i is s. After the last segment the document must be outside, so
// the boundary at n costs a close when still inside. When both choices cost
// the same, the current state is kept: a tie never opens or closes a span.
func Encode(segs []segment.Segment, d types.Delimiters) Result {
	if !d.Valid() {
		d = types.DefaultRawDelimiters()
	}
	n := len(segs)
	if n == 0 {
		return Result{}
	}

	best := make([][2]int, n+1)
	next := make([][2]state, n)

	final := [2]int{outside: 0, inside: inf}
	for _, prev := range []state{outside, inside} {
		best[n][prev] = min(
			add(transition(d, prev, outside), final[outside]),
			add(transition(d, prev, inside), final[inside]),
		)
	}

	for i := n - 1; i >= 0; i-- {
		for _, prev := range []state{outside, inside} {
			viaOut := add(add(transition(d, prev, outside), cost(segs[i], outside)), best[i+1][outside])
			viaIn := add(add(transition(d, prev, inside), cost(segs[i], inside)), best[i+1][inside])

			choice := prev
			switch prev {
			case outside:
				if viaIn < viaOut {
					choice = inside
				}
			case inside:
				if viaOut < viaIn {
					choice = outside
				}
			}
			next[i][prev] = choice
			best[i][prev] = min(viaOut, viaIn)
		}
	}

	return emit(segs, next, best[0][outside], d)
}

// emit replays the decisions from the outside state.
func emit(segs []segment.Segment, next [][2]state, total int, d types.Delimiters) Result {
	buf := buffer.New()
	buf.Grow(outputSize(segs, d))
	pieces := make([]caret.Piece, 0, len(segs))
	spans := 0

	s := outside
	for i, seg := range segs {
		switch to := next[i][s]; {
		case s == outside && to == inside:
			buf.Write(d.Open)
			spans++
		case s == inside && to == outside:
			buf.Write(d.Close)
		}
		s = next[i][s]

		text := seg.Outside()
		if s == inside {
			text = seg.Inside()
		}
		at := buf.Write(text)
		pieces = append(pieces, caret.Piece{
			Out:    at,
			OutLen: len(text),
			Src:    seg.Source,
			SrcLen: seg.SourceLen,
			Linear: seg.Kind != segment.Code && len(text) == seg.SourceLen,
		})
	}
	if s == inside {
		buf.Write(d.Close)
	}

	return Result{
		Text:   buf.String(),
		Pieces: pieces,
		Cost:   total,
		Spans:  spans,
	}
}

// outputSize estimates the encoded length: every segment in its longer form
// plus one delimiter pair.
func outputSize(segs []segment.Segment, d types.Delimiters) int {
	n := len(d.Open) + len(d.Close)
	for _, seg := range segs {
		n += max(len(seg.Inside()), len(seg.Outside()))
	}
	return n
}
