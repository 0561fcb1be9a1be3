package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"slang/internal/source"
)

// cursor walks the bytes of one file with uint32 offsets, the width of
// source.Span.
type cursor struct {
	file *source.File
	src  []byte
	off  uint32
}

type mark uint32

func newCursor(f *source.File) cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("%s: file too large for uint32 offsets: %w", f.Path, err))
	}
	return cursor{file: f, src: f.Content}
}

func (c *cursor) atEnd() bool { return int(c.off) >= len(c.src) }

// peek returns 0 at the end of input.
func (c *cursor) peek() byte {
	if c.atEnd() {
		return 0
	}
	return c.src[c.off]
}

func (c *cursor) peek2() (b0, b1 byte, ok bool) {
	if int(c.off)+1 >= len(c.src) {
		return 0, 0, false
	}
	return c.src[c.off], c.src[c.off+1], true
}

// next consumes one byte.
func (c *cursor) next() byte {
	b := c.peek()
	if !c.atEnd() {
		c.off++
	}
	return b
}

// skip2 consumes a and b when they are the next two bytes.
func (c *cursor) skip2(a, b byte) bool {
	b0, b1, ok := c.peek2()
	if ok && b0 == a && b1 == b {
		c.off += 2
		return true
	}
	return false
}

func (c *cursor) mark() mark        { return mark(c.off) }
func (c *cursor) rewind(m mark)     { c.off = uint32(m) }
func (c *cursor) here() source.Span { return c.spanFrom(c.mark()) }

func (c *cursor) spanFrom(m mark) source.Span {
	return source.Span{File: c.file.ID, Start: uint32(m), End: c.off}
}

// peekRune decodes the rune under the cursor; size is 0 at the end.
func (c *cursor) peekRune() (rune, int) {
	if c.atEnd() {
		return utf8.RuneError, 0
	}
	if b := c.src[c.off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.src[c.off:])
}

func (c *cursor) nextRune() {
	_, size := c.peekRune()
	c.off += uint32(size) //nolint:gosec // size <= utf8.UTFMax
}

// Идентификаторы: ASCII быстрым путём, остальное через unicode.
func isIdentStartByte(b byte) bool {
	return b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentContinueRune(r rune) bool { return isIdentStartRune(r) || unicode.IsDigit(r) }

func isDec(b byte) bool { return '0' <= b && b <= '9' }
