package syntax

import (
	"io"
	"unicode/utf8"
)

// source reads script text one character at a time and tracks the
// line and column of the current character.
type source struct {
	buf      []byte
	filename string
	line     uint32 // 1-based
	col      uint32 // 1-based, in bytes

	ch   rune // current character, -1 at EOF
	offs int  // byte offset just past ch

	errh func(line, col uint32, msg string)
}

// newSource reads all of src and positions the reader on its first
// character. Errors go to errh, which may be nil.
func newSource(filename string, src io.Reader, errh func(line, col uint32, msg string)) *source {
	s := &source{
		filename: filename,
		line:     1,
		ch:       -1, // before the first character; nextch moves col to 1
		errh:     errh,
	}

	var err error
	s.buf, err = io.ReadAll(src)
	if err != nil {
		s.error("error reading source: " + err.Error())
		return s
	}
	s.nextch()
	return s
}

// nextch advances to the next character. (line, col) always describes
// s.ch after the call.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	if r == utf8.RuneError && width == 1 {
		s.error("invalid UTF-8 encoding")
	}
	s.ch = r
	s.offs += width
}

func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

func (s *source) error(msg string) {
	if s.errh != nil {
		s.errh(s.line, s.col, msg)
	}
}

// isLetter reports whether r is a-z, A-Z or _.
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isLiteralChar reports whether r may continue an integer literal.
// Radix letters, digit separators and the _c suffix are all accepted
// here; the literal package validates the text.
func isLiteralChar(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '\''
}

// isWhitespace reports whether r is a space, tab or carriage return.
// Newlines are significant for semicolon insertion.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

func isOperatorStart(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '&', '|', '^', '~', '<', '>', '=', '!', ':',
		'(', ')', '[', ']', '{', '}', ',', ';', '.':
		return true
	}
	return false
}
