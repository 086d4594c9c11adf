package tag

import (
	"reflect"
	"sync"

	"github.com/you-not-fish/stag/internal/types"
)

// Of returns the tag of the Go type T.
//
// Fixed-width integers map to the C integer types of the same width and
// signedness, int and uint to long and unsigned long. Defined integer
// types become enumerations, structs become classes, funcs become
// function types with multiple results gathered in a tuple instance, and
// strings, slices, maps, channels, interfaces and complex numbers become
// opaque classes with Go's size and alignment.
//
// Of panics if T is a tag, a list or a partial tag: tags do not nest.
func Of[T any]() Tag {
	return OfType(reflect.TypeFor[T]())
}

var (
	tagType     = reflect.TypeFor[Tag]()
	listType    = reflect.TypeFor[List]()
	partialType = reflect.TypeFor[PartialTag]()
)

// reflectMemo maps Go types to descriptors. Conversion holds mu so
// that recursive struct types see their own in-progress record.
var reflectMemo = struct {
	mu    sync.Mutex
	types map[reflect.Type]types.Type
}{types: make(map[reflect.Type]types.Type)}

// OfType returns the tag of rt.
func OfType(rt reflect.Type) Tag {
	if rt == nil {
		panic("tag: OfType(nil)")
	}
	return FromType(convertReflect(rt))
}

func convertReflect(rt reflect.Type) types.Type {
	reflectMemo.mu.Lock()
	defer reflectMemo.mu.Unlock()
	return fromReflect(rt)
}

var reflectBasic = map[reflect.Kind]types.BasicKind{
	reflect.Bool:    types.Bool,
	reflect.Int8:    types.SChar,
	reflect.Int16:   types.Short,
	reflect.Int32:   types.Int,
	reflect.Int64:   types.Long,
	reflect.Int:     types.Long,
	reflect.Uint8:   types.UChar,
	reflect.Uint16:  types.UShort,
	reflect.Uint32:  types.UInt,
	reflect.Uint64:  types.ULong,
	reflect.Uint:    types.ULong,
	reflect.Uintptr: types.ULong,
	reflect.Float32: types.Float,
	reflect.Float64: types.Double,
}

func fromReflect(rt reflect.Type) types.Type {
	if t, ok := reflectMemo.types[rt]; ok {
		return t
	}
	switch rt {
	case tagType, listType, partialType:
		panic("tag: tags do not nest: " + rt.String())
	}

	var t types.Type
	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		base := types.Typ[reflectBasic[rt.Kind()]]
		if rt.PkgPath() != "" {
			t = types.NewEnum(types.NewTypeName(types.NoPos, rt.String(), nil), base)
		} else {
			t = base
		}
	case reflect.Bool, reflect.Float32, reflect.Float64:
		t = types.Typ[reflectBasic[rt.Kind()]]
	case reflect.Array:
		t = types.NewArray(fromReflect(rt.Elem()), int64(rt.Len()))
	case reflect.Pointer:
		t = types.NewPointer(fromReflect(rt.Elem()))
	case reflect.UnsafePointer:
		t = types.NewPointer(types.Typ[types.Void])
	case reflect.Func:
		t = funcFromReflect(rt)
	case reflect.Struct:
		return structFromReflect(rt)
	default:
		// string, slice, map, chan, interface, complex
		t = opaqueFromReflect(rt)
	}
	reflectMemo.types[rt] = t
	return t
}

func structFromReflect(rt reflect.Type) types.Type {
	var obj *types.TypeName
	if rt.Name() != "" {
		obj = types.NewTypeName(types.NoPos, rt.String(), nil)
	}
	rec := types.NewRecord(obj, false, nil)
	reflectMemo.types[rt] = rec

	fields := make([]*types.Var, rt.NumField())
	for i := range fields {
		f := rt.Field(i)
		fields[i] = types.NewField(types.NoPos, f.Name, fromReflect(f.Type))
	}
	rec.SetFields(fields)
	return rec
}

func funcFromReflect(rt reflect.Type) types.Type {
	n := rt.NumIn()
	if rt.IsVariadic() {
		// the trailing ...T parameter becomes C-style trailing arguments
		n--
	}
	params := make([]types.Type, n)
	for i := range params {
		params[i] = fromReflect(rt.In(i))
	}

	var result types.Type
	switch rt.NumOut() {
	case 0:
		result = types.Typ[types.Void]
	case 1:
		result = fromReflect(rt.Out(0))
	default:
		outs := make([]types.Type, rt.NumOut())
		for i := range outs {
			outs[i] = fromReflect(rt.Out(i))
		}
		// tuple is variadic and cannot fail
		result, _ = types.Instantiate(types.UniverseTuple(), outs)
	}
	return types.NewFunc(params, result, rt.IsVariadic())
}

func opaqueFromReflect(rt reflect.Type) types.Type {
	obj := types.NewTypeName(types.NoPos, rt.String(), nil)
	return types.NewOpaqueRecord(obj, false, int64(rt.Size()), int64(rt.Align()))
}
