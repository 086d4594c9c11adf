// Package goimport converts go/types types into tag descriptors.
package goimport

import (
	gotypes "go/types"

	"golang.org/x/tools/go/types/typeutil"

	"github.com/you-not-fish/stag/internal/tag"
	"github.com/you-not-fish/stag/internal/types"
)

// An Importer maps go/types types to tags. Results are memoized per
// importer, so a named Go type always maps to the same enum or record.
// An Importer is not safe for concurrent use.
type Importer struct {
	memo  typeutil.Map // go/types.Type -> types.Type
	sizes gotypes.Sizes
}

// New returns an Importer that lays out opaque types as the gc compiler
// does on amd64.
func New() *Importer {
	return &Importer{sizes: gotypes.SizesFor("gc", "amd64")}
}

// Import returns the tag of t.
func (imp *Importer) Import(t gotypes.Type) tag.Tag {
	return tag.FromType(imp.Type(t))
}

// Type returns the descriptor of t.
func (imp *Importer) Type(t gotypes.Type) types.Type {
	if d, ok := imp.memo.At(t).(types.Type); ok {
		return d
	}
	d := imp.convert(t)
	imp.memo.Set(t, d)
	return d
}

var basicKinds = map[gotypes.BasicKind]types.BasicKind{
	gotypes.Bool:    types.Bool,
	gotypes.Int8:    types.SChar,
	gotypes.Int16:   types.Short,
	gotypes.Int32:   types.Int,
	gotypes.Int64:   types.Long,
	gotypes.Int:     types.Long,
	gotypes.Uint8:   types.UChar,
	gotypes.Uint16:  types.UShort,
	gotypes.Uint32:  types.UInt,
	gotypes.Uint64:  types.ULong,
	gotypes.Uint:    types.ULong,
	gotypes.Uintptr: types.ULong,
	gotypes.Float32: types.Float,
	gotypes.Float64: types.Double,

	// untyped constants take their default type
	gotypes.UntypedBool:  types.Bool,
	gotypes.UntypedInt:   types.Long,
	gotypes.UntypedRune:  types.Int,
	gotypes.UntypedFloat: types.Double,
	gotypes.UntypedNil:   types.NullPtr,
}

func (imp *Importer) convert(t gotypes.Type) types.Type {
	switch t := t.(type) {
	case *gotypes.Alias:
		return imp.Type(gotypes.Unalias(t))
	case *gotypes.Basic:
		if k, ok := basicKinds[t.Kind()]; ok {
			return types.Typ[k]
		}
		if t.Kind() == gotypes.UnsafePointer {
			return types.NewPointer(types.Typ[types.Void])
		}
		return imp.opaque(t.String(), t)
	case *gotypes.Named:
		return imp.named(t)
	case *gotypes.Array:
		return types.NewArray(imp.Type(t.Elem()), t.Len())
	case *gotypes.Pointer:
		return types.NewPointer(imp.Type(t.Elem()))
	case *gotypes.Struct:
		return imp.record(nil, t, t)
	case *gotypes.Signature:
		return imp.signature(t)
	case *gotypes.TypeParam:
		// an incomplete class: no size until instantiated
		return types.NewOpaqueRecord(types.NewTypeName(types.NoPos, t.Obj().Name(), nil), false, -1, 1)
	}
	// slice, map, chan, interface, tuple
	return imp.opaque(t.String(), t)
}

func (imp *Importer) named(t *gotypes.Named) types.Type {
	name := t.Obj().Name()
	if pkg := t.Obj().Pkg(); pkg != nil {
		name = pkg.Name() + "." + name
	}
	obj := types.NewTypeName(types.NoPos, name, nil)

	switch u := t.Underlying().(type) {
	case *gotypes.Basic:
		if u.Info()&gotypes.IsInteger != 0 {
			return types.NewEnum(obj, types.Typ[basicKinds[u.Kind()]])
		}
	case *gotypes.Struct:
		return imp.record(obj, u, t)
	case *gotypes.Interface:
		return imp.opaque(name, t)
	}
	return imp.Type(t.Underlying())
}

// record converts a struct. The record is memoized under key before its
// fields are converted so that self-referential types terminate.
func (imp *Importer) record(obj *types.TypeName, st *gotypes.Struct, key gotypes.Type) types.Type {
	rec := types.NewRecord(obj, false, nil)
	imp.memo.Set(key, rec)

	fields := make([]*types.Var, st.NumFields())
	for i := range fields {
		f := st.Field(i)
		fields[i] = types.NewField(types.NoPos, f.Name(), imp.Type(f.Type()))
	}
	rec.SetFields(fields)
	return rec
}

func (imp *Importer) signature(sig *gotypes.Signature) types.Type {
	n := sig.Params().Len()
	if sig.Variadic() {
		n--
	}
	params := make([]types.Type, n)
	for i := range params {
		params[i] = imp.Type(sig.Params().At(i).Type())
	}

	var result types.Type
	switch res := sig.Results(); res.Len() {
	case 0:
		result = types.Typ[types.Void]
	case 1:
		result = imp.Type(res.At(0).Type())
	default:
		outs := make([]types.Type, res.Len())
		for i := range outs {
			outs[i] = imp.Type(res.At(i).Type())
		}
		result, _ = types.Instantiate(types.UniverseTuple(), outs)
	}
	return types.NewFunc(params, result, sig.Variadic())
}

func (imp *Importer) opaque(name string, t gotypes.Type) types.Type {
	obj := types.NewTypeName(types.NoPos, name, nil)
	return types.NewOpaqueRecord(obj, false, imp.sizes.Sizeof(t), imp.sizes.Alignof(t))
}
