// Package literal converts integer literal text into typed constants.
//
// The radix is chosen by prefix (0x hexadecimal, 0b binary, a leading 0
// octal, otherwise decimal) and the result takes the smallest signed kind
// among int8, int16, int32 and int64 that holds the value.
package literal

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/you-not-fish/stag/internal/constant"
)

// ErrRange is returned when a literal does not fit in int64.
var ErrRange = errors.New("literal out of range")

// Error describes a malformed literal.
type Error struct {
	Lit    string // literal text as given
	Offset int    // byte offset of the offending character, -1 if none
	Msg    string
	Err    error // underlying sentinel, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("literal %q: %s at offset %d", e.Lit, e.Msg, e.Offset)
	}
	return fmt.Sprintf("literal %q: %s", e.Lit, e.Msg)
}

// Unwrap returns the underlying sentinel error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Radix is the base of an integer literal.
type Radix int

const (
	Binary      Radix = 2
	Octal       Radix = 8
	Decimal     Radix = 10
	Hexadecimal Radix = 16
)

// String returns the name of the radix.
func (r Radix) String() string {
	switch r {
	case Binary:
		return "binary"
	case Octal:
		return "octal"
	case Decimal:
		return "decimal"
	case Hexadecimal:
		return "hexadecimal"
	}
	return fmt.Sprintf("radix(%d)", int(r))
}

// DetectRadix returns the radix selected by the prefix of text and the
// length of that prefix.
func DetectRadix(text string) (Radix, int) {
	if len(text) >= 3 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			return Hexadecimal, 2
		case 'b', 'B':
			return Binary, 2
		}
	}
	if len(text) >= 2 && text[0] == '0' {
		return Octal, 1
	}
	return Decimal, 0
}

// digitValue returns the value of c in radix r, or -1 if c is not a digit
// of that radix.
func digitValue(c byte, r Radix) int {
	var d int
	switch {
	case '0' <= c && c <= '9':
		d = int(c - '0')
	case 'a' <= c && c <= 'f':
		d = int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		d = int(c-'A') + 10
	default:
		return -1
	}
	if d >= int(r) {
		return -1
	}
	return d
}

func isSeparator(c byte) bool {
	return c == '\'' || c == '_'
}

// Parse converts an integer literal into a constant of minimal signed kind.
// Digit separators (' and _) are skipped; any other character outside the
// radix alphabet is an error.
func Parse(text string) (constant.Value, error) {
	return parse(text, false)
}

// ParseLenient is like Parse but skips every character that is not a digit
// of the selected radix instead of rejecting the literal.
func ParseLenient(text string) (constant.Value, error) {
	return parse(text, true)
}

// ParseSuffixed parses a literal written with the constant suffix, _c or _C.
func ParseSuffixed(text string) (constant.Value, error) {
	body, ok := TrimSuffix(text)
	if !ok {
		return constant.None, &Error{Lit: text, Offset: -1, Msg: "missing _c suffix"}
	}
	return Parse(body)
}

// TrimSuffix removes the constant suffix from text and reports whether it
// was present.
func TrimSuffix(text string) (string, bool) {
	if strings.HasSuffix(text, "_c") || strings.HasSuffix(text, "_C") {
		return text[:len(text)-2], true
	}
	return text, false
}

func parse(text string, lenient bool) (constant.Value, error) {
	if text == "" {
		return constant.None, &Error{Lit: text, Offset: -1, Msg: "empty literal"}
	}
	radix, prefix := DetectRadix(text)

	var acc uint64
	ndigits := 0
	for i := prefix; i < len(text); i++ {
		c := text[i]
		d := digitValue(c, radix)
		if d < 0 {
			if lenient || isSeparator(c) {
				continue
			}
			return constant.None, &Error{
				Lit:    text,
				Offset: i,
				Msg:    fmt.Sprintf("invalid %s digit %q", radix, c),
			}
		}
		if acc > (math.MaxInt64-uint64(d))/uint64(radix) {
			return constant.None, &Error{Lit: text, Offset: -1, Msg: "value overflows int64", Err: ErrRange}
		}
		acc = acc*uint64(radix) + uint64(d)
		ndigits++
	}
	if ndigits == 0 && !lenient {
		return constant.None, &Error{Lit: text, Offset: -1, Msg: fmt.Sprintf("%s literal has no digits", radix)}
	}

	n := int64(acc)
	v, err := constant.MakeInt64(MinimalKind(n), n)
	if err != nil {
		// unreachable: MinimalKind always fits n
		return constant.None, &Error{Lit: text, Offset: -1, Msg: err.Error(), Err: err}
	}
	return v, nil
}

// MinimalKind returns the first of int8, int16, int32 and int64 whose range
// includes n.
func MinimalKind(n int64) constant.Kind {
	switch {
	case n >= math.MinInt8 && n <= math.MaxInt8:
		return constant.Int8
	case n >= math.MinInt16 && n <= math.MaxInt16:
		return constant.Int16
	case n >= math.MinInt32 && n <= math.MaxInt32:
		return constant.Int32
	}
	return constant.Int64
}
