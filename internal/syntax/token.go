// Package syntax implements lexical and syntactic analysis for stag
// scripts: sequences of tag and constant expressions.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF   Token = iota // end of file
	_Error              // lexical error

	// Literals
	_Name    // identifier: size, int, class_tag
	_Literal // integer literal: 42_c, 0x1F, 1'000_C

	// Definition
	_Define // :=

	// Operators (ordered by precedence, low to high)
	// Logical operators
	_OrOr   // ||
	_AndAnd // &&

	// Comparison operators
	_Eql // ==
	_Neq // !=
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	// Arithmetic operators (additive)
	_Add // +
	_Sub // -
	_Or  // |
	_Xor // ^

	// Arithmetic operators (multiplicative)
	_Mul // *
	_Div // /
	_Rem // %
	_And // &
	_Shl // <<
	_Shr // >>

	// Unary operators
	_Not   // !
	_Tilde // ~

	// Delimiters
	_Lparen   // (
	_Rparen   // )
	_Lbrack   // [
	_Rbrack   // ]
	_Lbrace   // {
	_Rbrace   // }
	_Comma    // ,
	_Semi     // ;
	_Ellipsis // ...

	// Keywords
	_Const
	_Enum
	_Func
	_Struct
	_Tag
	_Union
	_Volatile

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF:   "EOF",
	_Error: "ERROR",

	_Name:    "NAME",
	_Literal: "LITERAL",

	_Define: ":=",

	_OrOr:   "||",
	_AndAnd: "&&",

	_Eql: "==",
	_Neq: "!=",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Add: "+",
	_Sub: "-",
	_Or:  "|",
	_Xor: "^",

	_Mul: "*",
	_Div: "/",
	_Rem: "%",
	_And: "&",
	_Shl: "<<",
	_Shr: ">>",

	_Not:   "!",
	_Tilde: "~",

	_Lparen:   "(",
	_Rparen:   ")",
	_Lbrack:   "[",
	_Rbrack:   "]",
	_Lbrace:   "{",
	_Rbrace:   "}",
	_Comma:    ",",
	_Semi:     ";",
	_Ellipsis: "...",

	_Const:    "const",
	_Enum:     "enum",
	_Func:     "func",
	_Struct:   "struct",
	_Tag:      "tag",
	_Union:    "union",
	_Volatile: "volatile",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: ||
//	2: &&
//	3: == != < <= > >=
//	4: + - | ^
//	5: * / % & << >>
func (t Token) Precedence() int {
	switch t {
	case _OrOr:
		return 1
	case _AndAnd:
		return 2
	case _Eql, _Neq, _Lss, _Leq, _Gtr, _Geq:
		return 3
	case _Add, _Sub, _Or, _Xor:
		return 4
	case _Mul, _Div, _Rem, _And, _Shl, _Shr:
		return 5
	}
	return 0
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Const && t <= _Volatile
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _OrOr && t <= _Tilde
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// Exported operator tokens for evaluator access
const (
	OrOr   Token = _OrOr   // ||
	AndAnd Token = _AndAnd // &&
	Eql    Token = _Eql    // ==
	Neq    Token = _Neq    // !=
	Lss    Token = _Lss    // <
	Leq    Token = _Leq    // <=
	Gtr    Token = _Gtr    // >
	Geq    Token = _Geq    // >=
	Add    Token = _Add    // +
	Sub    Token = _Sub    // -
	Or     Token = _Or     // |
	Xor    Token = _Xor    // ^
	Mul    Token = _Mul    // *
	Div    Token = _Div    // /
	Rem    Token = _Rem    // %
	And    Token = _And    // &
	Shl    Token = _Shl    // <<
	Shr    Token = _Shr    // >>
	Not    Token = _Not    // !
	Tilde  Token = _Tilde  // ~
)

// keywords maps keyword strings to their token type.
// Note: type names (int, char, size_t), builtins (size, list) and markers
// (class_tag, none) are NOT keywords; they are scanned as _Name.
var keywords = map[string]Token{
	"const":    _Const,
	"enum":     _Enum,
	"func":     _Func,
	"struct":   _Struct,
	"tag":      _Tag,
	"union":    _Union,
	"volatile": _Volatile,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}
