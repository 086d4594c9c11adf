package types

import "github.com/you-not-fish/stag/internal/syntax"

// NoPos is the zero position value, used for predeclared objects.
var NoPos syntax.Pos

// Universe is the root scope containing all predeclared objects.
var Universe *Scope

// Predeclared templates.
var (
	universeTuple *Template
	universePair  *Template
)

// basicNames maps the single-word spellings of the basic types.
var basicNames = []struct {
	name string
	kind BasicKind
}{
	{"void", Void},
	{"nullptr_t", NullPtr},
	{"bool", Bool},
	{"char", Char},
	{"schar", SChar},
	{"uchar", UChar},
	{"wchar_t", WChar},
	{"char16_t", Char16},
	{"char32_t", Char32},
	{"short", Short},
	{"ushort", UShort},
	{"int", Int},
	{"uint", UInt},
	{"long", Long},
	{"ulong", ULong},
	{"llong", LongLong},
	{"ullong", ULongLong},
	{"float", Float},
	{"double", Double},
	{"ldouble", LongDouble},
}

// aliases are the fixed-width names of the LP64 data model.
var aliases = []struct {
	name string
	kind BasicKind
}{
	{"int8_t", SChar},
	{"uint8_t", UChar},
	{"int16_t", Short},
	{"uint16_t", UShort},
	{"int32_t", Int},
	{"uint32_t", UInt},
	{"int64_t", Long},
	{"uint64_t", ULong},
	{"size_t", ULong},
	{"ptrdiff_t", Long},
	{"intptr_t", Long},
	{"uintptr_t", ULong},
}

func init() {
	Universe = NewScope(nil, "universe")

	defPredeclaredTypes()
	defPredeclaredTemplates()
}

// defPredeclaredTypes defines the basic types and their aliases in Universe.
func defPredeclaredTypes() {
	for _, b := range basicNames {
		Universe.Insert(NewTypeName(NoPos, b.name, Typ[b.kind]))
	}
	for _, a := range aliases {
		Universe.Insert(NewTypeName(NoPos, a.name, Typ[a.kind]))
	}
}

// defPredeclaredTemplates defines tuple and pair in Universe.
func defPredeclaredTemplates() {
	universeTuple = NewTemplate("tuple", Variadic, nil)
	Universe.Insert(NewTemplateName(NoPos, "tuple", universeTuple))

	universePair = NewTemplate("pair", 2, func(args []Type) Type {
		return NewRecord(nil, false, []*Var{
			NewField(NoPos, "first", args[0]),
			NewField(NoPos, "second", args[1]),
		})
	})
	Universe.Insert(NewTemplateName(NoPos, "pair", universePair))
}

// Predeclared template accessors
func UniverseTuple() *Template { return universeTuple }
func UniversePair() *Template  { return universePair }

// LookupType returns the predeclared type with the given name.
func LookupType(name string) (Type, bool) {
	if tn, ok := Universe.Lookup(name).(*TypeName); ok {
		return tn.Type(), true
	}
	return nil, false
}
