package eval

import (
	"github.com/you-not-fish/stag/internal/constant"
	"github.com/you-not-fish/stag/internal/syntax"
	"github.com/you-not-fish/stag/internal/tag"
	"github.com/you-not-fish/stag/internal/types"
)

var builtinNames = []string{
	"cast",
	"category",
	"combine",
	"contains",
	"count",
	"first",
	"is_const",
	"is_reference",
	"is_volatile",
	"len",
	"list",
	"param_types",
	"partial",
	"rest",
	"return_type",
	"reverse",
	"select",
	"size",
	"underlying_type",
}

// call evaluates a builtin call. Every argument is evaluated, so both
// arms of select are computed.
func (ev *Evaluator) call(e *syntax.CallExpr) Value {
	f := ev.expr(e.Fun)
	if f == nil {
		return nil
	}
	b, ok := f.(Builtin)
	if !ok {
		ev.errorf(e.Pos(), "cannot call non-function %s (%s)", f, KindOf(f))
		return nil
	}

	args := make([]Value, len(e.Args))
	valid := true
	for i, a := range e.Args {
		if args[i] = ev.expr(a); args[i] == nil {
			valid = false
		}
	}
	if !valid {
		return nil
	}

	c := &builtinCall{ev: ev, e: e, name: b.Name, args: args}
	return c.eval()
}

// builtinCall holds the state of one builtin call.
type builtinCall struct {
	ev   *Evaluator
	e    *syntax.CallExpr
	name string
	args []Value
}

func (c *builtinCall) eval() Value {
	switch c.name {
	case "size":
		if t, ok := c.query(); ok {
			return Const{t.Size()}
		}
	case "category":
		if t, ok := c.query(); ok {
			return Category{t.Category()}
		}
	case "underlying_type":
		if t, ok := c.query(); ok {
			return Type{t.UnderlyingType()}
		}
	case "return_type":
		if t, ok := c.query(); ok {
			return Type{t.ReturnType()}
		}
	case "param_types":
		if t, ok := c.query(); ok {
			l, isFunc := t.ParamTypes()
			if !isFunc {
				c.ev.errorf(c.e.Args[0].Pos(), "param_types of non-function %s", t)
				return nil
			}
			return List{l}
		}
	case "is_const":
		if t, ok := c.query(); ok {
			return Const{constant.MakeBool(t.IsConst())}
		}
	case "is_volatile":
		if t, ok := c.query(); ok {
			return Const{constant.MakeBool(t.IsVolatile())}
		}
	case "is_reference":
		if t, ok := c.query(); ok {
			return Const{constant.MakeBool(t.IsReference())}
		}

	case "list":
		if tags, ok := c.tags(0); ok {
			return List{tag.NewList(tags...)}
		}
	case "count":
		if tags, ok := c.tags(0); ok {
			return Const{tag.CountOf(tags...)}
		}
	case "len":
		if l, ok := c.list(); ok {
			return Const{l.Length()}
		}
	case "reverse":
		if l, ok := c.list(); ok {
			return List{l.Reverse()}
		}
	case "first":
		if l, ok := c.list(); ok {
			return Type{l.First()}
		}
	case "rest":
		if l, ok := c.list(); ok {
			return List{l.WithoutFirst()}
		}
	case "contains":
		if !c.nargs(2) {
			return nil
		}
		l, ok1 := c.listAt(0)
		t, ok2 := c.tagAt(1)
		if ok1 && ok2 {
			return Const{constant.MakeBool(l.Contains(t))}
		}

	case "select":
		if !c.nargs(3) {
			return nil
		}
		cond, ok := c.constAt(0)
		if !ok {
			return nil
		}
		if cond.Kind() != constant.Bool {
			c.ev.errorf(c.e.Args[0].Pos(), "select condition %s is not a boolean", cond)
			return nil
		}
		return constant.Select(cond, c.args[1], c.args[2])

	case "partial":
		return c.partial()
	case "combine":
		return c.combine()
	case "cast":
		return c.cast()
	}
	return nil
}

func (c *builtinCall) nargs(n int) bool {
	if len(c.args) != n {
		c.ev.errorf(c.e.Pos(), "%s expects %d argument%s, got %d", c.name, n, plural(n), len(c.args))
		return false
	}
	return true
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func (c *builtinCall) mismatch(i int, want string) {
	c.ev.errorf(c.e.Args[i].Pos(), "%s argument %d is %s (%s), want %s",
		c.name, i+1, c.args[i], KindOf(c.args[i]), want)
}

func (c *builtinCall) tagAt(i int) (tag.Tag, bool) {
	v, ok := c.args[i].(Type)
	if !ok {
		c.mismatch(i, "tag")
		return tag.NonSuch, false
	}
	return v.Tag, true
}

func (c *builtinCall) listAt(i int) (tag.List, bool) {
	v, ok := c.args[i].(List)
	if !ok {
		c.mismatch(i, "list")
		return tag.List{}, false
	}
	return v.List, true
}

func (c *builtinCall) constAt(i int) (constant.Value, bool) {
	v, ok := c.args[i].(Const)
	if !ok {
		c.mismatch(i, "constant")
		return constant.None, false
	}
	return v.Val, true
}

// query returns the single tag argument of a query builtin. Queries on
// NonSuch are errors.
func (c *builtinCall) query() (tag.Tag, bool) {
	if !c.nargs(1) {
		return tag.NonSuch, false
	}
	t, ok := c.tagAt(0)
	if ok && t.IsNonSuch() {
		c.ev.errorf(c.e.Args[0].Pos(), "%s of nonsuch", c.name)
		return tag.NonSuch, false
	}
	return t, ok
}

func (c *builtinCall) list() (tag.List, bool) {
	if !c.nargs(1) {
		return tag.List{}, false
	}
	return c.listAt(0)
}

// tags returns the arguments from position i on, which must all be tags.
func (c *builtinCall) tags(i int) ([]tag.Tag, bool) {
	tags := make([]tag.Tag, 0, len(c.args)-i)
	for ; i < len(c.args); i++ {
		t, ok := c.tagAt(i)
		if !ok {
			return nil, false
		}
		tags = append(tags, t)
	}
	return tags, true
}

// partial returns its argument when that is already partial, or the
// template of a template-instance tag.
func (c *builtinCall) partial() Value {
	if !c.nargs(1) {
		return nil
	}
	switch v := c.args[0].(type) {
	case Partial:
		return v
	case Type:
		if !v.Tag.IsNonSuch() {
			if inst, ok := v.Tag.Type().(*types.Instance); ok {
				return Partial{tag.Partial(inst.Template())}
			}
		}
		c.ev.errorf(c.e.Args[0].Pos(), "%s is not a template instance", v)
		return nil
	}
	c.mismatch(0, "partial or tag")
	return nil
}

// combine applies a partial type to a list, combine(p, list(A, B)), or
// to tags given directly, combine(p, A, B).
func (c *builtinCall) combine() Value {
	if len(c.args) == 0 {
		c.ev.errorf(c.e.Pos(), "combine expects a partial type")
		return nil
	}
	p, ok := c.args[0].(Partial)
	if !ok {
		c.mismatch(0, "partial")
		return nil
	}

	var (
		t   tag.Tag
		err error
	)
	if l, isList := c.args[len(c.args)-1].(List); isList && len(c.args) == 2 {
		t, err = tag.Combine(p.P, l.List)
	} else {
		tags, ok := c.tags(1)
		if !ok {
			return nil
		}
		t, err = tag.CombineTags(p.P, tags...)
	}
	if err != nil {
		c.ev.fail(c.e.Pos(), err)
		return nil
	}
	return Type{t}
}

// cast converts a constant to the representation of an integral tag,
// truncating like a C cast.
func (c *builtinCall) cast() Value {
	if !c.nargs(2) {
		return nil
	}
	x, ok1 := c.constAt(0)
	t, ok2 := c.tagAt(1)
	if !ok1 || !ok2 {
		return nil
	}
	k, ok := constKind(t)
	if !ok {
		c.ev.errorf(c.e.Args[1].Pos(), "cannot cast to %s", t)
		return nil
	}
	return Const{constant.Convert(x, k)}
}

// constKind returns the constant kind representing the integral or
// enumeration type of t.
func constKind(t tag.Tag) (constant.Kind, bool) {
	if t.IsNonSuch() {
		return constant.Invalid, false
	}
	typ := types.Resolve(t.Type())
	if e, ok := typ.(*types.Enum); ok {
		typ = e.Base()
	}
	b, ok := typ.(*types.Basic)
	if !ok {
		return constant.Invalid, false
	}
	k, ok := basicConstKinds[b.Kind()]
	return k, ok
}

var basicConstKinds = map[types.BasicKind]constant.Kind{
	types.Bool:      constant.Bool,
	types.Char:      constant.Int8,
	types.SChar:     constant.Int8,
	types.UChar:     constant.Uint8,
	types.WChar:     constant.Int32,
	types.Char16:    constant.Uint16,
	types.Char32:    constant.Uint32,
	types.Short:     constant.Int16,
	types.UShort:    constant.Uint16,
	types.Int:       constant.Int32,
	types.UInt:      constant.Uint32,
	types.Long:      constant.Int64,
	types.ULong:     constant.Uint64,
	types.LongLong:  constant.Int64,
	types.ULongLong: constant.Uint64,
}
