package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	Void
	NullPtr

	// Integral types
	Bool
	Char
	SChar
	UChar
	WChar
	Char16
	Char32
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LongLong
	ULongLong

	// Floating-point types
	Float
	Double
	LongDouble
)

// BasicInfo describes properties of a basic type.
type BasicInfo int

const (
	IsVoid BasicInfo = 1 << iota
	IsNullPtr
	IsBoolean
	IsCharacter
	IsInteger
	IsUnsigned
	IsFloat

	IsIntegral   = IsBoolean | IsCharacter | IsInteger
	IsArithmetic = IsIntegral | IsFloat
)

// Basic represents a fundamental type: void, nullptr_t, the integral
// types and the floating-point types.
type Basic struct {
	typ
	kind BasicKind
	info BasicInfo
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Info returns information about the basic type.
func (b *Basic) Info() BasicInfo {
	return b.info
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// Underlying implements Type.
func (b *Basic) Underlying() Type {
	return b
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
// Typ[Invalid] is nil, representing an invalid type.
var Typ = []*Basic{
	Invalid:    nil,
	Void:       {kind: Void, info: IsVoid, name: "void"},
	NullPtr:    {kind: NullPtr, info: IsNullPtr, name: "nullptr_t"},
	Bool:       {kind: Bool, info: IsBoolean, name: "bool"},
	Char:       {kind: Char, info: IsCharacter, name: "char"},
	SChar:      {kind: SChar, info: IsCharacter, name: "signed char"},
	UChar:      {kind: UChar, info: IsCharacter | IsUnsigned, name: "unsigned char"},
	WChar:      {kind: WChar, info: IsCharacter, name: "wchar_t"},
	Char16:     {kind: Char16, info: IsCharacter | IsUnsigned, name: "char16_t"},
	Char32:     {kind: Char32, info: IsCharacter | IsUnsigned, name: "char32_t"},
	Short:      {kind: Short, info: IsInteger, name: "short"},
	UShort:     {kind: UShort, info: IsInteger | IsUnsigned, name: "unsigned short"},
	Int:        {kind: Int, info: IsInteger, name: "int"},
	UInt:       {kind: UInt, info: IsInteger | IsUnsigned, name: "unsigned int"},
	Long:       {kind: Long, info: IsInteger, name: "long"},
	ULong:      {kind: ULong, info: IsInteger | IsUnsigned, name: "unsigned long"},
	LongLong:   {kind: LongLong, info: IsInteger, name: "long long"},
	ULongLong:  {kind: ULongLong, info: IsInteger | IsUnsigned, name: "unsigned long long"},
	Float:      {kind: Float, info: IsFloat, name: "float"},
	Double:     {kind: Double, info: IsFloat, name: "double"},
	LongDouble: {kind: LongDouble, info: IsFloat, name: "long double"},
}
