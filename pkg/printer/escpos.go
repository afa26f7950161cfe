package printer

import (
	"bytes"
	"strings"
)

// ESC/POS control bytes
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Alignment values for Document.Align
const (
	AlignLeft   byte = 0
	AlignCenter byte = 1
	AlignRight  byte = 2
)

// Character sizes for Document.Size
const (
	SizeNormal byte = 0x00
	SizeDouble byte = 0x11
)

// Common paper widths in characters
const (
	Width58mm = 32
	Width80mm = 48
)

// Document accumulates an ESC/POS byte stream. Methods chain.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document for paper width characters wide
func NewDocument(width int) *Document {
	if width <= 0 {
		width = Width58mm
	}
	d := &Document{width: width}
	d.buf.Write([]byte{esc, '@'})
	return d
}

// Width returns the line width in characters
func (d *Document) Width() int {
	return d.width
}

func (d *Document) Align(a byte) *Document {
	d.buf.Write([]byte{esc, 'a', a})
	return d
}

func (d *Document) Bold(on bool) *Document {
	var b byte
	if on {
		b = 1
	}
	d.buf.Write([]byte{esc, 'E', b})
	return d
}

func (d *Document) Size(s byte) *Document {
	d.buf.Write([]byte{gs, '!', s})
	return d
}

// Line writes s and a line feed. Text longer than the paper is cut.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(clip(s, d.width))
	d.buf.WriteByte(lf)
	return d
}

// Rule writes a full width line of c
func (d *Document) Rule(c byte) *Document {
	d.buf.Write(bytes.Repeat([]byte{c}, d.width))
	d.buf.WriteByte(lf)
	return d
}

// Columns writes left and right on one line, padding the gap with spaces.
// The left text is shortened when both do not fit.
func (d *Document) Columns(left, right string) *Document {
	room := d.width - len(right) - 1
	if room < 1 {
		room = 1
	}
	left = clip(left, room)
	gap := d.width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	d.buf.WriteString(left)
	d.buf.WriteString(strings.Repeat(" ", gap))
	d.buf.WriteString(right)
	d.buf.WriteByte(lf)
	return d
}

func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lf)
	}
	return d
}

// Cut feeds the paper past the head and performs a partial cut
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{gs, 'V', 0x42, 0x00})
	return d
}

// Bytes returns the accumulated stream
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
