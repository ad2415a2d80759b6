package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
	FontWide   = 0x10 // Double width only
	FontTall   = 0x01 // Double height only
)

// Builder accumulates an ESC/POS byte stream for thermal printers. Text
// written through it must already be ASCII-safe (see format.Transliterate);
// the field devices carry only the base code page.
type Builder struct {
	buf   bytes.Buffer
	width int // print width in characters: 32 for 58mm paper, 48 for 80mm
}

// NewBuilder creates an ESC/POS builder with the given character width.
func NewBuilder(charWidth int) *Builder {
	if charWidth <= 0 {
		charWidth = 32
	}
	b := &Builder{width: charWidth}
	b.Init()
	return b
}

// Width returns the character width of a line.
func (b *Builder) Width() int {
	return b.width
}

// Init sends the ESC @ (initialize printer) command.
func (b *Builder) Init() *Builder {
	b.buf.Write([]byte{ESC, '@'})
	return b
}

// LineFeed sends a line feed.
func (b *Builder) LineFeed() *Builder {
	b.buf.WriteByte(LF)
	return b
}

// FeedLines sends n line feeds.
func (b *Builder) FeedLines(n int) *Builder {
	for i := 0; i < n; i++ {
		b.buf.WriteByte(LF)
	}
	return b
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (b *Builder) SetAlign(align int) *Builder {
	b.buf.Write([]byte{ESC, 'a', byte(align)})
	return b
}

// SetBold enables or disables bold text.
func (b *Builder) SetBold(on bool) *Builder {
	v := byte(0)
	if on {
		v = 1
	}
	b.buf.Write([]byte{ESC, 'E', v})
	return b
}

// SetFontSize sets the character size. Use FontNormal, FontDouble, FontWide, or FontTall.
func (b *Builder) SetFontSize(size byte) *Builder {
	b.buf.Write([]byte{GS, '!', size})
	return b
}

// Text writes a line of text followed by a line feed.
func (b *Builder) Text(s string) *Builder {
	b.buf.WriteString(s)
	b.buf.WriteByte(LF)
	return b
}

// TextF writes a formatted line of text followed by a line feed.
func (b *Builder) TextF(format string, args ...interface{}) *Builder {
	b.buf.WriteString(fmt.Sprintf(format, args...))
	b.buf.WriteByte(LF)
	return b
}

// Separator prints a full-width separator line of the given character.
func (b *Builder) Separator(char byte) *Builder {
	b.buf.WriteString(strings.Repeat(string(char), b.width))
	b.buf.WriteByte(LF)
	return b
}

// KeyValue prints a left-aligned key and right-aligned value on one line.
func (b *Builder) KeyValue(key, value string) *Builder {
	spaces := b.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	b.buf.WriteString(key)
	b.buf.WriteString(strings.Repeat(" ", spaces))
	b.buf.WriteString(value)
	b.buf.WriteByte(LF)
	return b
}

// Cut sends the paper cut command (full cut).
func (b *Builder) Cut() *Builder {
	b.buf.Write([]byte{GS, 'V', 0x00})
	return b
}

// PartialCut sends the partial cut command.
func (b *Builder) PartialCut() *Builder {
	b.buf.Write([]byte{GS, 'V', 0x01})
	return b
}

// Bytes returns the accumulated ESC/POS byte stream.
func (b *Builder) Bytes() []byte {
	return b.buf.Bytes()
}
