package types

import (
	"errors"
	"fmt"
	"math"

	"github.com/you-not-fish/stag/internal/abi"
)

// Sizes provides size and alignment calculations for types.
// It uses the abi constants of the LP64 data model.
type Sizes struct{}

// DefaultSizes is the default Sizes implementation.
var DefaultSizes = &Sizes{}

// ErrTooLarge reports a type whose size does not fit in int64.
var ErrTooLarge = errors.New("type too large")

var errNoSize = errors.New("type has no size")

// Sizeof returns the size of type T in bytes. The boolean result is false
// for types without a size: void, functions, arrays of unknown bound,
// opaque template instances and records containing such a member. It is
// also false for a type too large to be represented; see CheckSize.
// The size of a reference is the size of the referenced type.
func (s *Sizes) Sizeof(T Type) (int64, bool) {
	n, err := s.sizeof(T)
	return n, err == nil
}

// CheckSize returns ErrTooLarge if the size of T overflows int64.
// Types without a size are not an error.
func (s *Sizes) CheckSize(T Type) error {
	if _, err := s.sizeof(T); errors.Is(err, ErrTooLarge) {
		return fmt.Errorf("%s: %w", T, err)
	}
	return nil
}

func (s *Sizes) sizeof(T Type) (int64, error) {
	switch t := T.(type) {
	case *Basic:
		if n, ok := s.basicSize(t.kind); ok {
			return n, nil
		}
	case *Array:
		if t.len == Unbounded {
			break
		}
		n, err := s.sizeof(t.elem)
		if err != nil {
			return 0, err
		}
		if n != 0 && t.len > math.MaxInt64/n {
			return 0, ErrTooLarge
		}
		return t.len * n, nil
	case *Record:
		s.ComputeLayout(t)
		t.mu.Lock()
		defer t.mu.Unlock()
		switch {
		case t.tooLarge:
			return 0, ErrTooLarge
		case t.size < 0:
			return 0, errNoSize
		}
		return t.size, nil
	case *Enum:
		if n, ok := s.basicSize(t.base.kind); ok {
			return n, nil
		}
	case *Pointer:
		return abi.SizePtr, nil
	case *Reference:
		return s.sizeof(t.base)
	case *MemberPointer:
		if _, ok := Unqualified(t.elem).(*Func); ok {
			return abi.SizeMemberFunc, nil
		}
		return abi.SizePtr, nil
	case *Qualified:
		return s.sizeof(t.base)
	case *Instance:
		if u := t.Underlying(); u != Type(t) {
			return s.sizeof(u)
		}
	}
	return 0, errNoSize
}

// Alignof returns the alignment of type T in bytes, or 1 for types
// without a size.
func (s *Sizes) Alignof(T Type) int64 {
	switch t := T.(type) {
	case *Basic:
		return s.basicAlign(t.kind)
	case *Array:
		return s.Alignof(t.elem)
	case *Record:
		s.ComputeLayout(t)
		return t.Align()
	case *Enum:
		return s.basicAlign(t.base.kind)
	case *Pointer:
		return abi.AlignPtr
	case *Reference:
		return s.Alignof(t.base)
	case *MemberPointer:
		if _, ok := Unqualified(t.elem).(*Func); ok {
			return abi.AlignMemberFunc
		}
		return abi.AlignPtr
	case *Qualified:
		return s.Alignof(t.base)
	case *Instance:
		if u := t.Underlying(); u != Type(t) {
			return s.Alignof(u)
		}
	}
	return 1
}

// Offsetof returns the offset of field i in record type T.
func (s *Sizes) Offsetof(T *Record, i int) int64 {
	s.ComputeLayout(T)
	return T.Offset(i)
}

// ComputeLayout computes the size, alignment, and field offsets for a
// record. Fields of a union all start at offset zero. An empty record has
// size one. If any field has no size, the record size is -1; if the size
// overflows int64 the record is too large for Sizeof.
// It is idempotent and safe for concurrent use.
func (s *Sizes) ComputeLayout(r *Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.layout {
		return
	}

	var offset, size int64
	var maxAlign int64 = 1
	complete, fits := true, true
	offsets := make([]int64, len(r.fields))

	for i, f := range r.fields {
		fieldSize, err := s.sizeof(f.Type())
		switch {
		case errors.Is(err, ErrTooLarge):
			fits = false
		case err != nil:
			complete = false
		}
		fieldAlign := s.Alignof(f.Type())
		if fieldAlign > maxAlign {
			maxAlign = fieldAlign
		}

		if r.union {
			size = max(size, fieldSize)
			continue
		}
		var ok bool
		if offset, ok = alignChecked(offset, fieldAlign); !ok {
			fits = false
		}
		offsets[i] = offset
		if offset, ok = addChecked(offset, fieldSize); !ok {
			fits = false
		}
	}
	if !r.union {
		size = offset
	}

	switch {
	case !complete:
		size = -1
	case !fits:
		size = -1
		r.tooLarge = true
	case size == 0:
		size = 1
	default:
		// Add padding at end for record alignment
		var ok bool
		if size, ok = alignChecked(size, maxAlign); !ok {
			size = -1
			r.tooLarge = true
		}
	}

	r.size, r.align, r.offsets, r.layout = size, maxAlign, offsets, true
}

// basicSize returns the size of a basic type in bytes.
func (s *Sizes) basicSize(kind BasicKind) (int64, bool) {
	switch kind {
	case NullPtr:
		return abi.SizeNullPtr, true
	case Bool:
		return abi.SizeBool, true
	case Char, SChar, UChar:
		return abi.SizeChar, true
	case WChar:
		return abi.SizeWChar, true
	case Char16:
		return abi.SizeChar16, true
	case Char32:
		return abi.SizeChar32, true
	case Short, UShort:
		return abi.SizeShort, true
	case Int, UInt:
		return abi.SizeInt, true
	case Long, ULong:
		return abi.SizeLong, true
	case LongLong, ULongLong:
		return abi.SizeLongLong, true
	case Float:
		return abi.SizeFloat, true
	case Double:
		return abi.SizeDouble, true
	case LongDouble:
		return abi.SizeLongDouble, true
	default:
		// void has no size
		return 0, false
	}
}

// basicAlign returns the alignment of a basic type in bytes.
func (s *Sizes) basicAlign(kind BasicKind) int64 {
	switch kind {
	case NullPtr:
		return abi.AlignNullPtr
	case Bool:
		return abi.AlignBool
	case Char, SChar, UChar:
		return abi.AlignChar
	case WChar:
		return abi.AlignWChar
	case Char16:
		return abi.AlignChar16
	case Char32:
		return abi.AlignChar32
	case Short, UShort:
		return abi.AlignShort
	case Int, UInt:
		return abi.AlignInt
	case Long, ULong:
		return abi.AlignLong
	case LongLong, ULongLong:
		return abi.AlignLongLong
	case Float:
		return abi.AlignFloat
	case Double:
		return abi.AlignDouble
	case LongDouble:
		return abi.AlignLongDouble
	default:
		return 1
	}
}

// alignChecked returns x rounded up to a multiple of a, and false if the
// result overflows int64.
func alignChecked(x, a int64) (int64, bool) {
	if x > math.MaxInt64-(a-1) {
		return 0, false
	}
	return (x + a - 1) &^ (a - 1), true
}

// addChecked returns x + y for non-negative operands, and false if the
// sum overflows int64.
func addChecked(x, y int64) (int64, bool) {
	if x > math.MaxInt64-y {
		return 0, false
	}
	return x + y, true
}
