package eval

import (
	"fmt"

	"github.com/you-not-fish/stag/internal/constant"
	"github.com/you-not-fish/stag/internal/tag"
	"github.com/you-not-fish/stag/internal/types"
)

// Value is the result of evaluating an expression.
type Value interface {
	String() string
	aValue()
}

// Const is a typed constant, possibly None.
type Const struct{ Val constant.Value }

// Type is a type tag, possibly NonSuch.
type Type struct{ Tag tag.Tag }

// List is a type list.
type List struct{ List tag.List }

// Category is a category marker such as class_tag. The reference and
// pointer categories double as operator markers: tag + pointer_tag.
type Category struct{ Cat types.Category }

// Partial is a partial type awaiting its arguments.
type Partial struct{ P tag.PartialTag }

// Marker is an operator marker that is not a category.
type Marker int

const (
	ReferenceMarker Marker = iota // reference_tag: any reference
	ConstMarker                   // const_qualifier_tag
	VolatileMarker                // volatile_qualifier_tag
)

// Builtin is a predeclared function such as size.
type Builtin struct{ Name string }

func (Const) aValue()    {}
func (Type) aValue()     {}
func (List) aValue()     {}
func (Category) aValue() {}
func (Partial) aValue()  {}
func (Marker) aValue()   {}
func (Builtin) aValue()  {}

func (v Const) String() string {
	if v.Val.IsNone() {
		return "none"
	}
	return v.Val.String()
}

func (v Type) String() string     { return v.Tag.String() }
func (v List) String() string     { return v.List.String() }
func (v Category) String() string { return v.Cat.String() + "_tag" }
func (v Partial) String() string  { return v.P.String() }
func (v Builtin) String() string  { return "builtin " + v.Name }

func (m Marker) String() string {
	switch m {
	case ReferenceMarker:
		return "reference_tag"
	case ConstMarker:
		return "const_qualifier_tag"
	case VolatileMarker:
		return "volatile_qualifier_tag"
	}
	return fmt.Sprintf("marker(%d)", int(m))
}

// KindOf names the kind of v for diagnostics and structured output.
func KindOf(v Value) string {
	switch v.(type) {
	case Const:
		return "constant"
	case Type:
		return "tag"
	case List:
		return "list"
	case Category:
		return "category"
	case Partial:
		return "partial"
	case Marker:
		return "marker"
	case Builtin:
		return "builtin"
	}
	return "invalid"
}

// equal reports whether x and y are the same value. Both must have the
// same kind.
func equal(x, y Value) bool {
	switch x := x.(type) {
	case Const:
		return constant.Equal(x.Val, y.(Const).Val)
	case Type:
		return x.Tag == y.(Type).Tag
	case List:
		return x.List.Equal(y.(List).List)
	case Category:
		return x.Cat == y.(Category).Cat
	case Partial:
		return x.P.Template() == y.(Partial).P.Template()
	case Marker:
		return x == y.(Marker)
	case Builtin:
		return x.Name == y.(Builtin).Name
	}
	return false
}
