// Package resolver expands {{trigger}} placeholders and CURSOR() markers in
// operator-typed text while keeping track of where the caret should land.
package resolver

import (
	"strings"

	"github.com/riverfjs/textexpand/internal/trigger"
	"github.com/riverfjs/textexpand/internal/types"
)

// Sentinel replaces a placeholder whose expansion would exceed the depth bound.
const Sentinel = "[maximum recursion depth exceeded]"

// Lookuper resolves a trigger name. *trigger.Registry satisfies it.
type Lookuper interface {
	Lookup(name string) (string, trigger.Outcome)
}

// Status is the fate of one placeholder.
type Status int

const (
	// Expanded means the placeholder was replaced by its value.
	Expanded Status = iota
	// Declined means the trigger produced no value; the text was kept.
	Declined
	// Unknown means no trigger matched; the text was kept.
	Unknown
	// DepthExceeded means the sentinel was substituted.
	DepthExceeded
)

// String returns the string representation of Status.
func (s Status) String() string {
	switch s {
	case Expanded:
		return "expanded"
	case Declined:
		return "declined"
	case Unknown:
		return "unknown"
	case DepthExceeded:
		return "depth_exceeded"
	default:
		return "invalid"
	}
}

// Lookup records one placeholder encountered during resolution.
type Lookup struct {
	Name   string
	Depth  int
	Status Status
}

// Result is the output of a resolution.
type Result struct {
	// Text is the fully expanded text.
	Text string
	// Ranges are the caret ranges into Text, in marker order. There is
	// always at least one.
	Ranges []types.Range
	// Caret is the caller's caret remapped into Text.
	Caret int
	// Lookups lists placeholders in the order they were examined.
	Lookups []Lookup
}

// Resolver expands placeholders against a trigger table.
type Resolver struct {
	triggers Lookuper
	delims   types.Delimiters
	maxDepth int
}

// New creates a Resolver. Invalid delimiters fall back to {{ }} and a
// negative maxDepth falls back to types.DefaultMaxDepth.
func New(triggers Lookuper, delims types.Delimiters, maxDepth int) *Resolver {
	if !delims.Valid() {
		delims = types.DefaultPlaceholderDelimiters()
	}
	if maxDepth < 0 {
		maxDepth = types.DefaultMaxDepth
	}
	return &Resolver{triggers: triggers, delims: delims, maxDepth: maxDepth}
}

// Resolve expands text with the default delimiters.
func Resolve(triggers Lookuper, text string, caret int, maxDepth int) Result {
	return New(triggers, types.DefaultPlaceholderDelimiters(), maxDepth).Resolve(text, caret)
}

// Resolve expands every placeholder, then every cursor marker. caret is a
// byte offset into text and is clamped to it.
func (r *Resolver) Resolve(text string, caret int) Result {
	caret = clamp(caret, 0, len(text))

	var lookups []Lookup
	expanded, caret := r.expand(text, caret, 0, &lookups)
	out, ranges, caret := replaceCursors(expanded, caret)

	return Result{
		Text:    out,
		Ranges:  ranges,
		Caret:   caret,
		Lookups: lookups,
	}
}

// expand resolves placeholders from right to left. The last open delimiter
// is paired with the first close after it, so a pair found this way never
// contains an unresolved open delimiter of its own. Every replaced or
// rejected pair moves the search limit left of its open delimiter; inserted
// values are therefore never rescanned at the same depth. caret < 0 means
// no caret is tracked.
func (r *Resolver) expand(text string, caret int, depth int, lookups *[]Lookup) (string, int) {
	openDelim, closeDelim := r.delims.Open, r.delims.Close

	limit := len(text)
	for limit > 0 {
		start := strings.LastIndex(text[:limit], openDelim)
		if start < 0 {
			break
		}
		nameStart := start + len(openDelim)
		rel := strings.Index(text[nameStart:], closeDelim)
		if rel < 0 {
			// Unterminated: plain text.
			limit = start
			continue
		}
		nameEnd := nameStart + rel
		end := nameEnd + len(closeDelim)

		name := trigger.Normalize(stripCursors(text[nameStart:nameEnd]))
		value, outcome := r.triggers.Lookup(name)
		switch outcome {
		case trigger.Found:
		case trigger.Declined:
			*lookups = append(*lookups, Lookup{Name: name, Depth: depth, Status: Declined})
			limit = start
			continue
		default:
			*lookups = append(*lookups, Lookup{Name: name, Depth: depth, Status: Unknown})
			limit = start
			continue
		}

		status := Expanded
		if strings.Contains(value, openDelim) {
			if depth >= r.maxDepth {
				value = Sentinel
				status = DepthExceeded
			} else {
				value, _ = r.expand(value, -1, depth+1, lookups)
			}
		}
		*lookups = append(*lookups, Lookup{Name: name, Depth: depth, Status: status})

		text = text[:start] + value + text[end:]
		caret = shiftCaret(caret, start, end, len(value))
		limit = start
	}
	return text, caret
}

// shiftCaret moves caret across the replacement of text[start:end] by n
// bytes: a caret at or after end shifts by the length delta, a caret
// strictly inside the span snaps to just after the insertion.
func shiftCaret(caret, start, end, n int) int {
	switch {
	case caret < 0:
		return caret
	case caret >= end:
		return caret + n - (end - start)
	case caret > start:
		return start + n
	default:
		return caret
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
