package tag

import (
	"errors"
	"fmt"

	"github.com/you-not-fish/stag/internal/types"
)

// Type operator failures.
var (
	ErrVoidReference = errors.New("reference to void")
	ErrReferenceKind = errors.New("reference kind mismatch")
	ErrNotPointer    = errors.New("not a pointer type")
)

// WithLValueReference returns the tag of T&, collapsing references.
func (t Tag) WithLValueReference() (Tag, error) {
	return t.WithReference(types.LValueRef)
}

// WithRValueReference returns the tag of T&&, collapsing references.
func (t Tag) WithRValueReference() (Tag, error) {
	return t.WithReference(types.RValueRef)
}

// WithReference adds a reference of kind k, which must be LValueRef or
// RValueRef. An lvalue reference anywhere in the result wins.
func (t Tag) WithReference(k types.RefKind) (Tag, error) {
	typ := t.entry().typ
	if types.IsVoidType(typ) {
		return NonSuch, fmt.Errorf("%s + %s: %w", t, k, ErrVoidReference)
	}
	return FromType(types.NewReference(k, typ)), nil
}

// WithoutReference strips a reference selected by k. AnyRef strips any
// reference; LValueRef and RValueRef must match the reference being
// stripped. A non-reference type is returned unchanged.
func (t Tag) WithoutReference(k types.RefKind) (Tag, error) {
	r, ok := types.Resolve(t.entry().typ).(*types.Reference)
	if !ok {
		return t, nil
	}
	if !k.Matches(r.Kind()) {
		return NonSuch, fmt.Errorf("%s - %s: %w", t, k, ErrReferenceKind)
	}
	return FromType(r.Elem()), nil
}

// AddConst returns the tag of const T. For a reference the qualifier
// attaches to the referent.
func (t Tag) AddConst() Tag {
	return t.AddQualifiers(types.Const)
}

// RemoveConst removes const from T, or from the referent of a reference.
func (t Tag) RemoveConst() Tag {
	return t.RemoveQualifiers(types.Const)
}

// AddVolatile returns the tag of volatile T.
func (t Tag) AddVolatile() Tag {
	return t.AddQualifiers(types.Volatile)
}

// RemoveVolatile removes volatile from T, or from the referent of a
// reference.
func (t Tag) RemoveVolatile() Tag {
	return t.RemoveQualifiers(types.Volatile)
}

// AddQualifiers adds q to T, threading through references and arrays.
func (t Tag) AddQualifiers(q types.Qualifiers) Tag {
	return FromType(mapReferent(t.entry().typ, func(u types.Type) types.Type {
		return types.Qualify(u, q)
	}))
}

// RemoveQualifiers removes q from T, threading through references and
// arrays.
func (t Tag) RemoveQualifiers(q types.Qualifiers) Tag {
	return FromType(mapReferent(t.entry().typ, func(u types.Type) types.Type {
		return types.Unqualify(u, q)
	}))
}

// mapReferent applies f to typ, or to the referent if typ is a reference.
func mapReferent(typ types.Type, f func(types.Type) types.Type) types.Type {
	if r, ok := types.Resolve(typ).(*types.Reference); ok {
		return types.NewReference(r.Kind(), f(r.Elem()))
	}
	return f(typ)
}

// AddPointer returns the tag of *T. For a reference the pointer is to
// the referent.
func (t Tag) AddPointer() Tag {
	typ := t.entry().typ
	if r, ok := types.Resolve(typ).(*types.Reference); ok {
		typ = r.Elem()
	}
	return FromType(types.NewPointer(typ))
}

// RemovePointer returns the pointee of a (possibly cv-qualified) pointer.
func (t Tag) RemovePointer() (Tag, error) {
	p, ok := types.Resolve(t.entry().typ).(*types.Pointer)
	if !ok {
		return NonSuch, fmt.Errorf("%s - pointer: %w", t, ErrNotPointer)
	}
	return FromType(p.Elem()), nil
}
