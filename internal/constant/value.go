package constant

import (
	"errors"
	"fmt"
	exact "go/constant"
	"go/token"
	"reflect"

	"golang.org/x/exp/constraints"
)

// ErrNotRepresentable is returned when a value does not fit a kind.
var ErrNotRepresentable = errors.New("value not representable")

// Value is an immutable typed integer constant.
// The zero Value is None.
type Value struct {
	kind Kind
	val  exact.Value // exact integer; nil for None
}

// None is the sentinel meaning "this query has no answer".
// None equals only itself.
var None Value

// Canonical boolean constants.
var (
	True  = Value{kind: Bool, val: one}
	False = Value{kind: Bool, val: exact.MakeInt64(0)}
)

// MakeBool returns True or False.
func MakeBool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Make returns the constant v with the kind matching T.
func Make[T constraints.Integer](v T) Value {
	k := KindOf[T]()
	if k.IsSigned() {
		return Value{kind: k, val: exact.MakeInt64(int64(v))}
	}
	return Value{kind: k, val: exact.MakeUint64(uint64(v))}
}

// KindOf returns the constant kind that represents the Go integer type T.
func KindOf[T constraints.Integer]() Kind {
	rt := reflect.TypeFor[T]()
	signed := false
	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		signed = true
	}
	switch rt.Size() {
	case 1:
		if signed {
			return Int8
		}
		return Uint8
	case 2:
		if signed {
			return Int16
		}
		return Uint16
	case 4:
		if signed {
			return Int32
		}
		return Uint32
	}
	if signed {
		return Int64
	}
	return Uint64
}

// MakeInt64 returns the constant v of kind k.
// It fails if v is not representable by k.
func MakeInt64(k Kind, v int64) (Value, error) {
	return MakeExact(k, exact.MakeInt64(v))
}

// MakeUint64 returns the constant v of kind k.
// It fails if v is not representable by k.
func MakeUint64(k Kind, v uint64) (Value, error) {
	return MakeExact(k, exact.MakeUint64(v))
}

// MakeExact returns the exact integer v as a constant of kind k.
func MakeExact(k Kind, v exact.Value) (Value, error) {
	if !k.Representable(v) {
		return None, fmt.Errorf("%w: %s as %s", ErrNotRepresentable, v, k)
	}
	return Value{kind: k, val: v}, nil
}

// Kind returns the representation kind of x.
func (x Value) Kind() Kind {
	return x.kind
}

// IsNone reports whether x is the None sentinel.
func (x Value) IsNone() bool {
	return x.kind == Invalid
}

// Exact returns the exact integer value of x, or nil for None.
func (x Value) Exact() exact.Value {
	return x.val
}

// Int64 returns the value of x as an int64 and whether that is exact.
func (x Value) Int64() (int64, bool) {
	if x.IsNone() {
		return 0, false
	}
	return exact.Int64Val(x.val)
}

// Uint64 returns the value of x as a uint64 and whether that is exact.
func (x Value) Uint64() (uint64, bool) {
	if x.IsNone() {
		return 0, false
	}
	return exact.Uint64Val(x.val)
}

// Identical reports whether x and y have the same kind and value.
// Unlike Compare with token.EQL, no conversion takes place.
func (x Value) Identical(y Value) bool {
	if x.kind != y.kind {
		return false
	}
	if x.IsNone() {
		return true
	}
	return exact.Compare(x.val, token.EQL, y.val)
}

// ExactString returns the decimal value of x without its kind.
func (x Value) ExactString() string {
	if x.IsNone() {
		return "none"
	}
	if x.kind == Bool {
		if exact.Sign(x.val) != 0 {
			return "true"
		}
		return "false"
	}
	return x.val.ExactString()
}

// String returns x as kind(value), e.g. "int16(200)".
// Booleans print as true or false.
func (x Value) String() string {
	if x.IsNone() || x.kind == Bool {
		return x.ExactString()
	}
	return x.kind.String() + "(" + x.val.ExactString() + ")"
}

// Truth reports whether x is non-zero. None is false.
func Truth(x Value) bool {
	return !x.IsNone() && exact.Sign(x.val) != 0
}

// Convert returns x explicitly converted to kind k. Integer targets
// truncate to their width; a Bool target tests x against zero.
func Convert(x Value, k Kind) Value {
	if x.IsNone() || k == Invalid {
		return None
	}
	return Value{kind: k, val: wrap(k, x.val)}
}

// Reclassify changes the kind of x to k, provided the value is unchanged
// by the change of representation.
func Reclassify(x Value, k Kind) (Value, error) {
	if x.IsNone() {
		return None, ErrNone
	}
	return MakeExact(k, x.val)
}

// As converts x to the Go integer type T with the truncation of Convert.
func As[T constraints.Integer](x Value) T {
	k := KindOf[T]()
	c := Convert(x, k)
	if c.IsNone() {
		return 0
	}
	if k.IsSigned() {
		v, _ := exact.Int64Val(c.val)
		return T(v)
	}
	v, _ := exact.Uint64Val(c.val)
	return T(v)
}
