package segment

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/riverfjs/textexpand/internal/types"
)

// charRef returns the numeric character reference for the first rune of s
// and the byte length of that rune.
func charRef(s string) (string, int) {
	r, size := utf8.DecodeRuneInString(s)
	return fmt.Sprintf("&#%d;", r), size
}

// neutralizeDelimiters replaces the first character of every raw-span
// delimiter in markup with a character reference. Inside a raw span the
// reference renders as the character, so the text reads the same.
func neutralizeDelimiters(markup string, d types.Delimiters) string {
	if !strings.Contains(markup, d.Open) && !strings.Contains(markup, d.Close) {
		return markup
	}
	openRef, openSize := charRef(d.Open)
	closeRef, closeSize := charRef(d.Close)
	return strings.NewReplacer(
		d.Open, openRef+d.Open[openSize:],
		d.Close, closeRef+d.Close[closeSize:],
	).Replace(markup)
}

// delimiterStarts returns the sorted start offsets of every open or close
// delimiter in s.
func delimiterStarts(s string, d types.Delimiters) []int {
	var starts []int
	for _, delim := range []string{d.Open, d.Close} {
		for i := 0; ; {
			j := strings.Index(s[i:], delim)
			if j < 0 {
				break
			}
			starts = append(starts, i+j)
			i += j + len(delim)
		}
	}
	sort.Ints(starts)
	return starts
}

// neutralizeRuns looks for delimiters spelled by consecutive Plain segments,
// possibly across segment boundaries, and turns the first character of each
// into a Code segment holding its character reference.
func neutralizeRuns(segs []Segment, d types.Delimiters) []Segment {
	out := make([]Segment, 0, len(segs))
	for i := 0; i < len(segs); {
		if segs[i].Kind != Plain {
			out = append(out, segs[i])
			i++
			continue
		}

		j := i
		var run strings.Builder
		for j < len(segs) && segs[j].Kind == Plain {
			run.WriteString(segs[j].Text)
			j++
		}
		starts := delimiterStarts(run.String(), d)
		if len(starts) == 0 {
			out = append(out, segs[i:j]...)
			i = j
			continue
		}

		off := 0
		for _, s := range segs[i:j] {
			out = splitAt(out, s, off, starts)
			off += len(s.Text)
		}
		i = j
	}
	return out
}

// splitAt appends s to out, replacing the character at each run offset in
// starts that falls inside s. off is the offset of s within the run.
func splitAt(out []Segment, s Segment, off int, starts []int) []Segment {
	last := 0
	for _, at := range starts {
		k := at - off
		if k < last || k >= len(s.Text) {
			continue
		}
		if k > last {
			out = append(out, s.slice(last, k))
		}
		ref, size := charRef(s.Text[k:])
		c := s.slice(k, k+size)
		out = append(out, Segment{Kind: Code, Text: ref, Source: c.Source, SourceLen: c.SourceLen})
		last = k + size
	}
	if last < len(s.Text) {
		out = append(out, s.slice(last, len(s.Text)))
	}
	return out
}

// slice returns the part of a Plain segment covering Text[a:b].
func (s Segment) slice(a, b int) Segment {
	sub := Segment{Kind: s.Kind, Text: s.Text[a:b], Source: s.Source}
	if s.SourceLen == len(s.Text) {
		sub.Source += a
		sub.SourceLen = b - a
	}
	return sub
}
