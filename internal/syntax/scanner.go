package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner splits a stag script into tokens.
type Scanner struct {
	source

	tok    Token
	lit    string // identifier or literal text; operator spelling otherwise
	tokPos Pos

	// nlsemi is set when a newline or EOF after the current token ends
	// a statement.
	nlsemi bool

	litBuf strings.Builder
}

// NewScanner returns a scanner over src. Lexical errors go to errh,
// which may be nil.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{source: *newSource(filename, src, errh)}
}

// Next advances to the next token.
func (s *Scanner) Next() {
	nlsemi := s.nlsemi
	s.nlsemi = false

redo:
	s.skipWhitespace()

	if nlsemi && (s.ch == '\n' || s.ch < 0) {
		s.tokPos = s.pos()
		s.tok = _Semi
		if s.ch == '\n' {
			s.lit = "newline"
			s.nextch()
		} else {
			s.lit = "EOF"
		}
		return
	}

	if s.ch == '\n' {
		s.nextch()
		goto redo
	}

	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case isOperatorStart(s.ch):
		if s.scanOperator() {
			goto redo
		}

	default:
		s.error(fmt.Sprintf("unexpected character %q", s.ch))
		s.nextch()
		goto redo
	}

	s.nlsemi = s.shouldInsertSemi()
}

// Token returns the current token.
func (s *Scanner) Token() Token { return s.tok }

// Literal returns the text of the current token.
func (s *Scanner) Literal() string { return s.lit }

// Pos returns the start position of the current token.
func (s *Scanner) Pos() Pos { return s.tokPos }

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

func (s *Scanner) shouldInsertSemi() bool {
	switch s.tok {
	case _Name, _Literal, _Rparen, _Rbrack, _Rbrace:
		return true
	}
	return false
}

func (s *Scanner) scanIdent() {
	s.litBuf.Reset()
	for isLetter(s.ch) || isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = LookupKeyword(s.lit)
}

// scanNumber collects an integer literal as written, including radix
// prefix, digit separators and suffix. Validation is left to the
// literal package so that lenient parsing sees the raw text.
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	for isLiteralChar(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	if s.ch == '.' {
		s.error("floating-point literals are not supported")
	}
	s.lit = s.litBuf.String()
	s.tok = _Literal
}

// scanOperator scans an operator or delimiter. It reports true when a
// comment was skipped instead.
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		s.set(_Add)
	case '-':
		s.set(_Sub)
	case '*':
		s.set(_Mul)
	case '/':
		if s.ch == '/' {
			s.skipLineComment()
			return true
		}
		s.set(_Div)
	case '%':
		s.set(_Rem)
	case '&':
		s.set2('&', _AndAnd, _And)
	case '|':
		s.set2('|', _OrOr, _Or)
	case '^':
		s.set(_Xor)
	case '~':
		s.set(_Tilde)
	case '<':
		switch s.ch {
		case '=':
			s.nextch()
			s.set(_Leq)
		case '<':
			s.nextch()
			s.set(_Shl)
		default:
			s.set(_Lss)
		}
	case '>':
		switch s.ch {
		case '=':
			s.nextch()
			s.set(_Geq)
		case '>':
			s.nextch()
			s.set(_Shr)
		default:
			s.set(_Gtr)
		}
	case '=':
		if s.ch != '=' {
			s.error("unexpected '='; use := to define a name")
			s.set(_Define)
			return false
		}
		s.nextch()
		s.set(_Eql)
	case '!':
		s.set2('=', _Neq, _Not)
	case ':':
		if s.ch != '=' {
			s.error("unexpected ':'")
		} else {
			s.nextch()
		}
		s.set(_Define)
	case '(':
		s.set(_Lparen)
	case ')':
		s.set(_Rparen)
	case '[':
		s.set(_Lbrack)
	case ']':
		s.set(_Rbrack)
	case '{':
		s.set(_Lbrace)
	case '}':
		s.set(_Rbrace)
	case ',':
		s.set(_Comma)
	case ';':
		s.set(_Semi)
	case '.':
		if s.ch == '.' {
			s.nextch()
			if s.ch == '.' {
				s.nextch()
				s.set(_Ellipsis)
				return false
			}
		}
		s.error("unexpected '.'")
		s.set(_Ellipsis)
	}
	return false
}

func (s *Scanner) set(tok Token) {
	s.tok = tok
	s.lit = tok.String()
}

// set2 scans a token that has a two-character form when followed by next.
func (s *Scanner) set2(next rune, long, short Token) {
	if s.ch == next {
		s.nextch()
		s.set(long)
		return
	}
	s.set(short)
}

// skipLineComment skips from the second '/' of a comment to the end
// of the line.
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}
