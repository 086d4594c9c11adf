package types

import "fmt"

// Category is one of the fourteen mutually exclusive type categories.
type Category int

const (
	NoCategory Category = iota
	CategoryVoid
	CategoryNullptr
	CategoryIntegral
	CategoryFloatingPoint
	CategoryArray
	CategoryEnum
	CategoryUnion
	CategoryClass
	CategoryFunction
	CategoryPointer
	CategoryMemberObjectPointer
	CategoryMemberFunctionPointer
	CategoryLValueReference
	CategoryRValueReference
)

var categoryNames = [...]string{
	NoCategory:                    "none",
	CategoryVoid:                  "void",
	CategoryNullptr:               "nullptr",
	CategoryIntegral:              "integral",
	CategoryFloatingPoint:         "floating_point",
	CategoryArray:                 "array",
	CategoryEnum:                  "enum",
	CategoryUnion:                 "union",
	CategoryClass:                 "class",
	CategoryFunction:              "function",
	CategoryPointer:               "pointer",
	CategoryMemberObjectPointer:   "member_object_pointer",
	CategoryMemberFunctionPointer: "member_function_pointer",
	CategoryLValueReference:       "lvalue_reference",
	CategoryRValueReference:       "rvalue_reference",
}

// String returns the category name.
func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// IsReference reports whether c is one of the reference categories.
func (c Category) IsReference() bool {
	return c == CategoryLValueReference || c == CategoryRValueReference
}

// Categories returns all categories in classification order.
func Categories() []Category {
	cs := make([]Category, 0, len(categoryNames)-1)
	for c := CategoryVoid; c <= CategoryRValueReference; c++ {
		cs = append(cs, c)
	}
	return cs
}

// CategoryByName returns the category with the given name.
func CategoryByName(name string) (Category, bool) {
	for c := CategoryVoid; c <= CategoryRValueReference; c++ {
		if categoryNames[c] == name {
			return c, true
		}
	}
	return NoCategory, false
}

// RefKind selects which references an operation applies to.
type RefKind int

const (
	AnyRef RefKind = iota
	LValueRef
	RValueRef
)

// String returns the reference kind name.
func (k RefKind) String() string {
	switch k {
	case AnyRef:
		return "reference"
	case LValueRef:
		return "lvalue_reference"
	case RValueRef:
		return "rvalue_reference"
	}
	return fmt.Sprintf("refkind(%d)", int(k))
}

// Matches reports whether a reference of kind r is selected by k.
func (k RefKind) Matches(r RefKind) bool {
	return k == AnyRef || k == r
}

// Classify returns the category of t. Top-level cv-qualifiers are ignored.
// The checks are made in a fixed order: void, nullptr, integral, floating
// point, array, enum, union, class, function, pointer, member object
// pointer, member function pointer, lvalue reference, rvalue reference.
// Exactly one applies to every valid type.
func Classify(t Type) Category {
	switch t := Unqualified(t).(type) {
	case *Basic:
		switch {
		case t.info&IsVoid != 0:
			return CategoryVoid
		case t.info&IsNullPtr != 0:
			return CategoryNullptr
		case t.info&IsIntegral != 0:
			return CategoryIntegral
		case t.info&IsFloat != 0:
			return CategoryFloatingPoint
		}
	case *Array:
		return CategoryArray
	case *Enum:
		return CategoryEnum
	case *Record:
		if t.union {
			return CategoryUnion
		}
		return CategoryClass
	case *Instance:
		u := t.Underlying()
		if u == Type(t) {
			return CategoryClass
		}
		return Classify(u)
	case *Func:
		return CategoryFunction
	case *Pointer:
		return CategoryPointer
	case *MemberPointer:
		if _, ok := Unqualified(t.elem).(*Func); ok {
			return CategoryMemberFunctionPointer
		}
		return CategoryMemberObjectPointer
	case *Reference:
		if t.kind == RValueRef {
			return CategoryRValueReference
		}
		return CategoryLValueReference
	}
	return NoCategory
}
