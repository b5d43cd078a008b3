package caret

import "github.com/riverfjs/textexpand/internal/types"

// UTF16Len returns the length of text measured in UTF-16 code units.
//
// Browser text fields report caret positions in UTF-16 code units, not Go
// string bytes or runes. Characters outside the BMP (codepoint > 0xFFFF)
// take 2 UTF-16 code units (a surrogate pair); all others take 1.
func UTF16Len(text string) int {
	count := 0
	for _, r := range text {
		if r > 0xFFFF {
			count += 2
		} else {
			count++
		}
	}
	return count
}

// buildUTF16OffsetTable builds a cumulative UTF-16 offset table for each byte position.
// Returns a slice where result[i] is the UTF-16 offset at byte position i.
// Positions inside a multi-byte character share the offset of its first byte.
func buildUTF16OffsetTable(text string) []int {
	offsets := make([]int, len(text)+1)
	cum := 0
	prev := 0
	for bytePos, r := range text {
		for i := prev; i < bytePos; i++ {
			offsets[i] = offsets[prev]
		}
		offsets[bytePos] = cum
		prev = bytePos
		if r > 0xFFFF {
			cum += 2
		} else {
			cum++
		}
	}
	for i := prev + 1; i < len(text); i++ {
		offsets[i] = offsets[prev]
	}
	offsets[len(text)] = cum
	return offsets
}

// ByteToUTF16 converts a byte offset into text to UTF-16 code units. The
// offset is clamped to the text; an offset inside a multi-byte character
// counts from the start of that character.
func ByteToUTF16(text string, b int) int {
	if b <= 0 {
		return 0
	}
	if b >= len(text) {
		return UTF16Len(text)
	}
	return buildUTF16OffsetTable(text)[b]
}

// UTF16ToByte converts a UTF-16 offset into text to a byte offset. An
// offset inside a surrogate pair rounds down to the start of the character.
func UTF16ToByte(text string, u int) int {
	if u <= 0 {
		return 0
	}
	cum := 0
	for bytePos, r := range text {
		w := 1
		if r > 0xFFFF {
			w = 2
		}
		if cum+w > u {
			return bytePos
		}
		cum += w
	}
	return len(text)
}

// RangesToUTF16 converts byte ranges into text to UTF-16 ranges.
func RangesToUTF16(text string, rs []types.Range) []types.Range {
	table := buildUTF16OffsetTable(text)
	at := func(b int) int {
		if b < 0 {
			b = 0
		}
		if b > len(text) {
			b = len(text)
		}
		return table[b]
	}
	out := make([]types.Range, len(rs))
	for i, r := range rs {
		out[i] = types.Range{Start: at(r.Start), End: at(r.End)}
	}
	return out
}
