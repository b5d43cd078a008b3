package textexpand

import (
	"github.com/riverfjs/textexpand/internal/caret"
)

// UTF16Len returns the length of text measured in UTF-16 code units.
//
// Browser text fields report caret positions in UTF-16 code units, not Go
// string bytes or runes. Characters outside the BMP (codepoint > 0xFFFF)
// take 2 UTF-16 code units (a surrogate pair); all others take 1.
func UTF16Len(text string) int {
	return caret.UTF16Len(text)
}

// ByteToUTF16 converts a byte offset into text to UTF-16 code units.
func ByteToUTF16(text string, offset int) int {
	return caret.ByteToUTF16(text, offset)
}

// UTF16ToByte converts a UTF-16 offset into text to a byte offset.
func UTF16ToByte(text string, offset int) int {
	return caret.UTF16ToByte(text, offset)
}

// RangesToUTF16 converts byte ranges into text to UTF-16 ranges.
func RangesToUTF16(text string, ranges []Range) []Range {
	return caret.RangesToUTF16(text, ranges)
}
