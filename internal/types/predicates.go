package types

// Identical reports whether x and y are identical types.
// Enums and records are identical only to themselves; template instances
// are identical when their templates and arguments are.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	return identical(x, y)
}

func identical(x, y Type) bool {
	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *Array:
		if y, ok := y.(*Array); ok {
			return x.len == y.len && Identical(x.elem, y.elem)
		}
	case *Pointer:
		if y, ok := y.(*Pointer); ok {
			return Identical(x.base, y.base)
		}
	case *Reference:
		if y, ok := y.(*Reference); ok {
			return x.kind == y.kind && Identical(x.base, y.base)
		}
	case *Func:
		if y, ok := y.(*Func); ok {
			return identicalFuncs(x, y)
		}
	case *MemberPointer:
		if y, ok := y.(*MemberPointer); ok {
			return Identical(x.class, y.class) && Identical(x.elem, y.elem)
		}
	case *Qualified:
		if y, ok := y.(*Qualified); ok {
			return x.quals == y.quals && Identical(x.base, y.base)
		}
	case *Instance:
		if y, ok := y.(*Instance); ok {
			return x.tmpl == y.tmpl && identicalLists(x.args, y.args)
		}
	}
	return false
}

func identicalFuncs(x, y *Func) bool {
	return x.variadic == y.variadic &&
		identicalLists(x.params, y.params) &&
		Identical(x.result, y.result)
}

func identicalLists(x, y []Type) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !Identical(x[i], y[i]) {
			return false
		}
	}
	return true
}

// IsVoidType reports whether t is void, ignoring qualifiers.
func IsVoidType(t Type) bool {
	return Classify(t) == CategoryVoid
}

// IsIntegralType reports whether t is an integral type.
func IsIntegralType(t Type) bool {
	return Classify(t) == CategoryIntegral
}

// IsArithmeticType reports whether t is an integral or floating-point type.
func IsArithmeticType(t Type) bool {
	c := Classify(t)
	return c == CategoryIntegral || c == CategoryFloatingPoint
}

// IsReference reports whether t is a reference type.
func IsReference(t Type) bool {
	_, ok := Resolve(t).(*Reference)
	return ok
}

// IsPointer reports whether t is a pointer type, ignoring qualifiers.
func IsPointer(t Type) bool {
	_, ok := Resolve(t).(*Pointer)
	return ok
}

// IsConst reports whether t is const-qualified. For arrays the element
// qualification counts; references and functions are never const.
func IsConst(t Type) bool {
	return QualifiersOf(t)&Const != 0
}

// IsVolatile reports whether t is volatile-qualified.
func IsVolatile(t Type) bool {
	return QualifiersOf(t)&Volatile != 0
}

// IsClass reports whether t is a class or opaque template instance.
func IsClass(t Type) bool {
	return Classify(t) == CategoryClass
}
