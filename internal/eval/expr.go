package eval

import (
	"go/token"

	"github.com/you-not-fish/stag/internal/constant"
	"github.com/you-not-fish/stag/internal/literal"
	"github.com/you-not-fish/stag/internal/syntax"
	"github.com/you-not-fish/stag/internal/tag"
	"github.com/you-not-fish/stag/internal/types"
)

// binaryOps maps script operators onto the constant operators.
var binaryOps = map[syntax.Token]token.Token{
	syntax.Add:    token.ADD,
	syntax.Sub:    token.SUB,
	syntax.Mul:    token.MUL,
	syntax.Div:    token.QUO,
	syntax.Rem:    token.REM,
	syntax.And:    token.AND,
	syntax.Or:     token.OR,
	syntax.Xor:    token.XOR,
	syntax.Shl:    token.SHL,
	syntax.Shr:    token.SHR,
	syntax.AndAnd: token.LAND,
	syntax.OrOr:   token.LOR,
	syntax.Eql:    token.EQL,
	syntax.Neq:    token.NEQ,
	syntax.Lss:    token.LSS,
	syntax.Leq:    token.LEQ,
	syntax.Gtr:    token.GTR,
	syntax.Geq:    token.GEQ,
}

var unaryOps = map[syntax.Token]token.Token{
	syntax.Add:   token.ADD,
	syntax.Sub:   token.SUB,
	syntax.Xor:   token.XOR,
	syntax.Tilde: token.XOR,
	syntax.Not:   token.NOT,
}

// expr evaluates e. It returns nil after reporting an error, and also,
// silently, when an operand is already invalid.
func (ev *Evaluator) expr(e syntax.Expr) Value {
	switch e := e.(type) {
	case *syntax.Name:
		return ev.ident(e)
	case *syntax.BasicLit:
		return ev.basicLit(e)
	case *syntax.ParenExpr:
		return ev.expr(e.X)
	case *syntax.Operation:
		if e.Y == nil {
			return ev.unary(e)
		}
		return ev.binary(e)
	case *syntax.CallExpr:
		return ev.call(e)
	case *syntax.IndexExpr:
		return ev.index(e)
	case *syntax.TagExpr:
		t := ev.typExpr(e.Type)
		if t == nil {
			return nil
		}
		return Type{tag.FromType(t)}
	}
	ev.errorf(e.Pos(), "%s is not an expression", syntax.String(e))
	return nil
}

// ident resolves a name: script bindings first, then predeclared values,
// then the universe's types and templates.
func (ev *Evaluator) ident(n *syntax.Name) Value {
	if v, ok := ev.env.values[n.Value]; ok {
		return v // nil for a poisoned binding
	}
	if v, ok := predeclared[n.Value]; ok {
		return v
	}
	switch obj := types.Universe.Lookup(n.Value).(type) {
	case *types.TypeName:
		return Type{tag.FromType(obj.Type())}
	case *types.TemplateName:
		return Partial{tag.Partial(obj.Template())}
	}
	ev.errorf(n.Pos(), "undefined: %s", n.Value)
	return nil
}

func (ev *Evaluator) basicLit(lit *syntax.BasicLit) Value {
	body, ok := literal.TrimSuffix(lit.Value)
	if !ok {
		ev.errorf(lit.Pos(), "integer literal %s must carry the _c suffix", lit.Value)
		return nil
	}
	c, err := ev.parseLiteral(body)
	if err != nil {
		ev.fail(lit.Pos(), err)
		return nil
	}
	return Const{c}
}

func (ev *Evaluator) parseLiteral(text string) (constant.Value, error) {
	if ev.conf.Lenient {
		return literal.ParseLenient(text)
	}
	return literal.Parse(text)
}

func (ev *Evaluator) unary(e *syntax.Operation) Value {
	x := ev.expr(e.X)
	if x == nil {
		return nil
	}
	c, ok := x.(Const)
	if !ok {
		ev.errorf(e.Pos(), "invalid operation: operator %s not defined on %s (%s)", e.Op, x, KindOf(x))
		return nil
	}
	z, err := constant.UnaryOp(unaryOps[e.Op], c.Val)
	if err != nil {
		ev.fail(e.Pos(), err)
		return nil
	}
	return Const{z}
}

func (ev *Evaluator) binary(e *syntax.Operation) Value {
	x := ev.expr(e.X)
	y := ev.expr(e.Y)
	if x == nil || y == nil {
		return nil
	}

	switch e.Op {
	case syntax.Eql, syntax.Neq:
		if _, ok := x.(Const); !ok {
			return ev.comparison(e, x, y)
		}
	}

	switch x := x.(type) {
	case Const:
		if y, ok := y.(Const); ok {
			z, err := constant.BinaryOp(x.Val, binaryOps[e.Op], y.Val)
			if err != nil {
				ev.fail(e.Pos(), err)
				return nil
			}
			return Const{z}
		}
	case Type:
		switch e.Op {
		case syntax.Add, syntax.Sub:
			if y, ok := y.(List); ok && e.Op == syntax.Add {
				return List{y.List.Prepend(x.Tag)}
			}
			return ev.tagOp(e, x.Tag, y)
		}
	case List:
		switch y := y.(type) {
		case Type:
			if e.Op == syntax.Add {
				return List{x.List.Append(y.Tag)}
			}
			if e.Op == syntax.Sub {
				return List{x.List.Remove(y.Tag)}
			}
		case List:
			if e.Op == syntax.Add {
				return List{x.List.Concat(y.List)}
			}
		}
	}
	ev.errorf(e.Pos(), "invalid operation: %s %s %s (%s %s %s)", x, e.Op, y, KindOf(x), e.Op, KindOf(y))
	return nil
}

// comparison evaluates == and != on non-constant operands.
func (ev *Evaluator) comparison(e *syntax.Operation, x, y Value) Value {
	if KindOf(x) != KindOf(y) {
		ev.errorf(e.Pos(), "invalid operation: %s %s %s (mismatched kinds %s and %s)", x, e.Op, y, KindOf(x), KindOf(y))
		return nil
	}
	eq := equal(x, y)
	if e.Op == syntax.Neq {
		eq = !eq
	}
	return Const{constant.MakeBool(eq)}
}

// tagOp applies a marker to t: + adds the reference, pointer or
// qualifier it names and - removes it.
func (ev *Evaluator) tagOp(e *syntax.Operation, t tag.Tag, m Value) Value {
	if t.IsNonSuch() {
		ev.errorf(e.Pos(), "invalid operation: %s on nonsuch", e.Op)
		return nil
	}
	add := e.Op == syntax.Add

	var (
		r   tag.Tag
		err error
	)
	switch m := m.(type) {
	case Category:
		switch m.Cat {
		case types.CategoryLValueReference:
			if add {
				r, err = t.WithLValueReference()
			} else {
				r, err = t.WithoutReference(types.LValueRef)
			}
		case types.CategoryRValueReference:
			if add {
				r, err = t.WithRValueReference()
			} else {
				r, err = t.WithoutReference(types.RValueRef)
			}
		case types.CategoryPointer:
			if add {
				r = t.AddPointer()
			} else {
				r, err = t.RemovePointer()
			}
		default:
			ev.errorf(e.Pos(), "invalid operation: %s is not an operator marker", m)
			return nil
		}
	case Marker:
		switch {
		case m == ReferenceMarker && add:
			ev.errorf(e.Pos(), "invalid operation: cannot add %s; use lvalue_reference_tag or rvalue_reference_tag", m)
			return nil
		case m == ReferenceMarker:
			r, err = t.WithoutReference(types.AnyRef)
		case m == ConstMarker && add:
			r = t.AddConst()
		case m == ConstMarker:
			r = t.RemoveConst()
		case m == VolatileMarker && add:
			r = t.AddVolatile()
		default:
			r = t.RemoveVolatile()
		}
	default:
		ev.errorf(e.Pos(), "invalid operation: %s %s %s (tag %s %s)", t, e.Op, m, e.Op, KindOf(m))
		return nil
	}
	if err != nil {
		ev.fail(e.Pos(), err)
		return nil
	}
	return Type{r}
}

func (ev *Evaluator) index(e *syntax.IndexExpr) Value {
	x := ev.expr(e.X)
	i := ev.expr(e.Index)
	if x == nil || i == nil {
		return nil
	}
	l, ok := x.(List)
	if !ok {
		ev.errorf(e.Pos(), "cannot index %s (%s)", x, KindOf(x))
		return nil
	}
	c, ok := i.(Const)
	if !ok {
		ev.errorf(e.Index.Pos(), "list index %s is not a constant", i)
		return nil
	}
	t, err := l.List.Index(c.Val)
	if err != nil {
		ev.fail(e.Pos(), err)
		return nil
	}
	return Type{t}
}
