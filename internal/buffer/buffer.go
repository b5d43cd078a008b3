// Package buffer accumulates encoder output and reports where each write
// landed.
package buffer

import "strings"

// TextBuffer accumulates text and hands out the byte offset of every write.
type TextBuffer struct {
	sb strings.Builder
}

// New creates a new TextBuffer.
func New() *TextBuffer {
	return &TextBuffer{}
}

// Grow reserves room for n more bytes.
func (tb *TextBuffer) Grow(n int) {
	tb.sb.Grow(n)
}

// Write appends text to the buffer and returns the byte offset it was
// written at.
func (tb *TextBuffer) Write(text string) int {
	at := tb.sb.Len()
	tb.sb.WriteString(text)
	return at
}

// String returns the accumulated text.
func (tb *TextBuffer) String() string {
	return tb.sb.String()
}
