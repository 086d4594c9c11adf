package types

import (
	"fmt"
	"strings"
)

// Unbounded is the length of an array of unknown bound.
const Unbounded = -1

// Array represents an array type [N]T, or []T when the bound is unknown.
type Array struct {
	typ
	len  int64
	elem Type
}

// NewArray creates a new array type. A negative length yields an array of
// unknown bound.
func NewArray(elem Type, length int64) *Array {
	if length < 0 {
		length = Unbounded
	}
	return &Array{len: length, elem: elem}
}

// Len returns the array length, or Unbounded.
func (a *Array) Len() int64 {
	return a.len
}

// Elem returns the element type.
func (a *Array) Elem() Type {
	return a.elem
}

// Underlying implements Type.
func (a *Array) Underlying() Type {
	return a
}

// String implements Type.
func (a *Array) String() string {
	if a.len == Unbounded {
		return "[]" + a.elem.String()
	}
	return fmt.Sprintf("[%d]%s", a.len, a.elem)
}

// Pointer represents a pointer type *T.
type Pointer struct {
	typ
	base Type
}

// NewPointer creates a new pointer type.
func NewPointer(base Type) *Pointer {
	return &Pointer{base: base}
}

// Elem returns the pointee type.
func (p *Pointer) Elem() Type {
	return p.base
}

// Underlying implements Type.
func (p *Pointer) Underlying() Type {
	return p
}

// String implements Type.
func (p *Pointer) String() string {
	return "*" + p.base.String()
}

// Reference represents an lvalue reference &T or an rvalue reference &&T.
type Reference struct {
	typ
	kind RefKind
	base Type
}

// NewReference creates a reference of the given kind to base, applying the
// collapsing rule: any lvalue reference in the chain yields an lvalue
// reference, otherwise the result is an rvalue reference.
// kind must be LValueRef or RValueRef.
func NewReference(kind RefKind, base Type) *Reference {
	if kind != LValueRef && kind != RValueRef {
		panic(fmt.Sprintf("types: NewReference with %s", kind))
	}
	if r, ok := Resolve(base).(*Reference); ok {
		if r.kind == LValueRef || kind == LValueRef {
			kind = LValueRef
		}
		base = r.base
	}
	return &Reference{kind: kind, base: base}
}

// Kind returns LValueRef or RValueRef.
func (r *Reference) Kind() RefKind {
	return r.kind
}

// Elem returns the referenced type.
func (r *Reference) Elem() Type {
	return r.base
}

// Underlying implements Type.
func (r *Reference) Underlying() Type {
	return r
}

// String implements Type.
func (r *Reference) String() string {
	if r.kind == RValueRef {
		return "&&" + r.base.String()
	}
	return "&" + r.base.String()
}

// Func represents a function type.
type Func struct {
	typ
	params   []Type
	result   Type
	variadic bool
}

// NewFunc creates a new function type. A nil result means void.
func NewFunc(params []Type, result Type, variadic bool) *Func {
	if result == nil {
		result = Typ[Void]
	}
	return &Func{params: params, result: result, variadic: variadic}
}

// Params returns the parameter types.
func (f *Func) Params() []Type {
	return f.params
}

// NumParams returns the number of declared parameters.
func (f *Func) NumParams() int {
	return len(f.params)
}

// Param returns the i-th parameter type.
func (f *Func) Param(i int) Type {
	return f.params[i]
}

// Result returns the result type.
func (f *Func) Result() Type {
	return f.result
}

// Variadic reports whether the function accepts trailing arguments.
func (f *Func) Variadic() bool {
	return f.variadic
}

// Underlying implements Type.
func (f *Func) Underlying() Type {
	return f
}

// String implements Type.
func (f *Func) String() string {
	var sb strings.Builder
	sb.WriteString("func(")
	for i, p := range f.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	if f.variadic {
		if len(f.params) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("...")
	}
	sb.WriteString(")")
	if !IsVoidType(f.result) {
		sb.WriteString(" ")
		sb.WriteString(f.result.String())
	}
	return sb.String()
}

// MemberPointer represents a pointer to a member of a class, C::*T.
// When T is a function type it points to a member function.
type MemberPointer struct {
	typ
	class Type
	elem  Type
}

// NewMemberPointer creates a pointer to a member of class with type elem.
func NewMemberPointer(class, elem Type) *MemberPointer {
	return &MemberPointer{class: class, elem: elem}
}

// Class returns the class the member belongs to.
func (m *MemberPointer) Class() Type {
	return m.class
}

// Elem returns the member type.
func (m *MemberPointer) Elem() Type {
	return m.elem
}

// Underlying implements Type.
func (m *MemberPointer) Underlying() Type {
	return m
}

// String implements Type.
func (m *MemberPointer) String() string {
	return m.class.String() + "::*" + m.elem.String()
}

// Qualifiers is a set of cv-qualifiers.
type Qualifiers uint8

const (
	Const Qualifiers = 1 << iota
	Volatile
)

// String returns the qualifiers in source order.
func (q Qualifiers) String() string {
	switch q {
	case Const:
		return "const"
	case Volatile:
		return "volatile"
	case Const | Volatile:
		return "const volatile"
	}
	return ""
}

// Qualified represents a cv-qualified type. Qualified values are only
// created through Qualify, which keeps them normalized: the base is never
// itself qualified, an array, a reference or a function.
type Qualified struct {
	typ
	quals Qualifiers
	base  Type
}

// Quals returns the qualifiers.
func (q *Qualified) Quals() Qualifiers {
	return q.quals
}

// Elem returns the unqualified type.
func (q *Qualified) Elem() Type {
	return q.base
}

// Underlying implements Type.
func (q *Qualified) Underlying() Type {
	return q
}

// String implements Type.
func (q *Qualified) String() string {
	return q.quals.String() + " " + q.base.String()
}

// Qualify adds qualifiers q to t. Qualifiers on a reference or function
// type are ignored; qualifiers on an array apply to its element type.
func Qualify(t Type, q Qualifiers) Type {
	if q == 0 {
		return t
	}
	switch t := t.(type) {
	case *Qualified:
		return &Qualified{quals: t.quals | q, base: t.base}
	case *Array:
		return NewArray(Qualify(t.elem, q), t.len)
	case *Reference, *Func:
		return t
	}
	return &Qualified{quals: q, base: t}
}

// QualifiersOf returns the top-level qualifiers of t, looking through
// arrays to their element type.
func QualifiersOf(t Type) Qualifiers {
	switch t := t.(type) {
	case *Qualified:
		return t.quals
	case *Array:
		return QualifiersOf(t.elem)
	}
	return 0
}

// Unqualify removes qualifiers q from the top level of t, looking through
// arrays to their element type.
func Unqualify(t Type, q Qualifiers) Type {
	switch t := t.(type) {
	case *Qualified:
		if rest := t.quals &^ q; rest != 0 {
			return &Qualified{quals: rest, base: t.base}
		}
		return t.base
	case *Array:
		return NewArray(Unqualify(t.elem, q), t.len)
	}
	return t
}

// Unqualified returns t without top-level cv-qualifiers.
func Unqualified(t Type) Type {
	return Unqualify(t, Const|Volatile)
}

// Resolve returns t without top-level cv-qualifiers, replacing template
// instances by their expansion. An opaque instance resolves to itself.
func Resolve(t Type) Type {
	for {
		t = Unqualified(t)
		i, ok := t.(*Instance)
		if !ok {
			return t
		}
		u := i.Underlying()
		if u == nil || u == Type(i) {
			return t
		}
		t = u
	}
}
