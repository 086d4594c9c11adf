// Package constant implements typed integer constants.
//
// A Value pairs an exact integer with the fixed-width kind that represents
// it. Operators compute new Values whose kind follows C integer promotion
// and the usual arithmetic conversions on an LP64 target, so that the
// representation type of a result is derived rather than declared.
package constant

import (
	exact "go/constant"
	"go/token"

	"github.com/you-not-fish/stag/internal/abi"
)

// Kind describes the representation of a constant.
type Kind int

const (
	Invalid Kind = iota // no value; the kind of None

	Bool

	// Signed integers
	Int8
	Int16
	Int32
	Int64

	// Unsigned integers
	Uint8
	Uint16
	Uint32
	Uint64
)

// SizeKind is the kind of byte sizes and counts (size_t).
const SizeKind = Uint64

type kindInfo struct {
	name   string
	bits   uint // storage width
	signed bool
}

var kinds = [...]kindInfo{
	Invalid: {"none", 0, false},
	Bool:    {"bool", 8, false},
	Int8:    {"int8", 8, true},
	Int16:   {"int16", 16, true},
	Int32:   {"int32", 32, true},
	Int64:   {"int64", 64, true},
	Uint8:   {"uint8", 8, false},
	Uint16:  {"uint16", 16, false},
	Uint32:  {"uint32", 32, false},
	Uint64:  {"uint64", 64, false},
}

// Range bounds and masks, computed once.
var (
	minOf [len(kinds)]exact.Value
	maxOf [len(kinds)]exact.Value
)

var one = exact.MakeInt64(1)

func init() {
	for k := Bool; k <= Uint64; k++ {
		bits := kinds[k].bits
		switch {
		case k == Bool:
			minOf[k] = exact.MakeInt64(0)
			maxOf[k] = one
		case kinds[k].signed:
			half := exact.Shift(one, token.SHL, bits-1)
			minOf[k] = exact.UnaryOp(token.SUB, half, 0)
			maxOf[k] = exact.BinaryOp(half, token.SUB, one)
		default:
			minOf[k] = exact.MakeInt64(0)
			maxOf[k] = exact.BinaryOp(exact.Shift(one, token.SHL, bits), token.SUB, one)
		}
	}
}

// String returns the Go name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kinds) {
		return kinds[k].name
	}
	return "kind(?)"
}

// Bits returns the storage width of the kind in bits.
func (k Kind) Bits() uint {
	return kinds[k].bits
}

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool {
	return kinds[k].signed
}

// IsUnsigned reports whether k is an unsigned integer kind.
// Bool is neither signed nor unsigned.
func (k Kind) IsUnsigned() bool {
	return k >= Uint8 && k <= Uint64
}

// Min returns the smallest value representable by k.
func (k Kind) Min() exact.Value { return minOf[k] }

// Max returns the largest value representable by k.
func (k Kind) Max() exact.Value { return maxOf[k] }

// Representable reports whether the exact integer v fits k without change.
func (k Kind) Representable(v exact.Value) bool {
	if k == Invalid || v == nil || v.Kind() != exact.Int {
		return false
	}
	return exact.Compare(v, token.GEQ, minOf[k]) && exact.Compare(v, token.LEQ, maxOf[k])
}

// promote applies integer promotion: everything narrower than int
// (including bool) becomes int.
func promote(k Kind) Kind {
	if k.Bits() < abi.BitsInt {
		return Int32
	}
	return k
}

// arith returns the common kind of a binary operation after the usual
// arithmetic conversions.
func arith(x, y Kind) Kind {
	x, y = promote(x), promote(y)
	if x == y {
		return x
	}
	if x.IsSigned() == y.IsSigned() {
		if x.Bits() > y.Bits() {
			return x
		}
		return y
	}
	s, u := x, y
	if u.IsSigned() {
		s, u = y, x
	}
	// Promoted kinds are 32 or 64 bits wide, so rank equals width: an
	// unsigned kind of equal or greater rank wins, otherwise the wider
	// signed kind represents every value of the unsigned one.
	if u.Bits() >= s.Bits() {
		return u
	}
	return s
}

// wrap truncates the exact integer v to the width of k, as an explicit
// cast would (two's complement for signed kinds).
func wrap(k Kind, v exact.Value) exact.Value {
	if k == Bool {
		return boolExact(exact.Sign(v) != 0)
	}
	if k.Representable(v) {
		return v
	}
	bits := k.Bits()
	mod := exact.Shift(one, token.SHL, bits)
	v = exact.BinaryOp(v, token.AND, exact.BinaryOp(mod, token.SUB, one))
	if k.IsSigned() && exact.Compare(v, token.GTR, maxOf[k]) {
		v = exact.BinaryOp(v, token.SUB, mod)
	}
	return v
}

func boolExact(b bool) exact.Value {
	if b {
		return one
	}
	return exact.MakeInt64(0)
}
