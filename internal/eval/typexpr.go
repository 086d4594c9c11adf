package eval

import (
	"github.com/you-not-fish/stag/internal/literal"
	"github.com/you-not-fish/stag/internal/syntax"
	"github.com/you-not-fish/stag/internal/tag"
	"github.com/you-not-fish/stag/internal/types"
)

// typExpr resolves a type expression. It returns nil after an error.
func (ev *Evaluator) typExpr(e syntax.Expr) types.Type {
	switch e := e.(type) {
	case *syntax.Name:
		return ev.typeName(e)

	case *syntax.PointerType:
		base := ev.typExpr(e.Base)
		if base == nil {
			return nil
		}
		return tag.FromType(base).AddPointer().Type()

	case *syntax.RefType:
		return ev.refType(e)

	case *syntax.QualType:
		base := ev.typExpr(e.Base)
		if base == nil {
			return nil
		}
		var q types.Qualifiers
		if e.Const {
			q |= types.Const
		}
		if e.Volatile {
			q |= types.Volatile
		}
		return types.Qualify(base, q)

	case *syntax.ArrayType:
		return ev.arrayType(e)

	case *syntax.FuncType:
		return ev.funcType(e)

	case *syntax.InstanceType:
		return ev.instanceType(e)

	case *syntax.RecordType:
		return ev.recordType(e)

	case *syntax.EnumType:
		base := ev.typExpr(e.Base)
		if base == nil {
			return nil
		}
		b, ok := types.Resolve(base).(*types.Basic)
		if !ok || !types.IsIntegralType(b) || b.Kind() == types.Bool {
			ev.errorf(e.Base.Pos(), "invalid enum base %s: must be an integer type", base)
			return nil
		}
		return types.NewEnum(nil, b)
	}
	ev.errorf(e.Pos(), "%s is not a type", syntax.String(e))
	return nil
}

// typeName resolves a name used as a type: a bound or predeclared type.
func (ev *Evaluator) typeName(n *syntax.Name) types.Type {
	if v, ok := ev.env.values[n.Value]; ok {
		switch v := v.(type) {
		case nil:
			return nil
		case Type:
			if v.Tag.IsNonSuch() {
				ev.errorf(n.Pos(), "%s is nonsuch, not a type", n.Value)
				return nil
			}
		case Partial:
		default:
			ev.errorf(n.Pos(), "%s (%s) is not a type", n.Value, KindOf(v))
			return nil
		}
	}
	obj, _ := ev.env.scope.LookupParent(n.Value)
	switch obj := obj.(type) {
	case *types.TypeName:
		return obj.Type()
	case *types.TemplateName:
		ev.errorf(n.Pos(), "template %s used without arguments", n.Value)
		return nil
	}
	ev.errorf(n.Pos(), "undefined type: %s", n.Value)
	return nil
}

func (ev *Evaluator) refType(e *syntax.RefType) types.Type {
	base := ev.typExpr(e.Base)
	if base == nil {
		return nil
	}
	var (
		r   tag.Tag
		err error
	)
	if e.RValue {
		r, err = tag.FromType(base).WithRValueReference()
	} else {
		r, err = tag.FromType(base).WithLValueReference()
	}
	if err != nil {
		ev.fail(e.Pos(), err)
		return nil
	}
	return r.Type()
}

func (ev *Evaluator) arrayType(e *syntax.ArrayType) types.Type {
	n := int64(types.Unbounded)
	if e.Len != nil {
		var ok bool
		if n, ok = ev.arrayLen(e.Len); !ok {
			return nil
		}
	}
	elem := ev.typExpr(e.Elem)
	if elem == nil {
		return nil
	}
	switch types.Classify(elem) {
	case types.CategoryVoid, types.CategoryFunction, types.CategoryLValueReference, types.CategoryRValueReference:
		ev.errorf(e.Elem.Pos(), "invalid array element type %s", elem)
		return nil
	}
	if a, ok := types.Resolve(elem).(*types.Array); ok && a.Len() == types.Unbounded {
		ev.errorf(e.Elem.Pos(), "invalid array element type %s: unknown bound", elem)
		return nil
	}
	return ev.checkSize(e.Pos(), types.NewArray(elem, n), "array")
}

// checkSize reports an error and returns nil if the size of t overflows.
func (ev *Evaluator) checkSize(pos syntax.Pos, t types.Type, what string) types.Type {
	if err := types.DefaultSizes.CheckSize(t); err != nil {
		ev.errorf(pos, "%s too large", what)
		return nil
	}
	return t
}

// arrayLen evaluates an array bound. A bare literal is accepted here
// since no other value is meaningful.
func (ev *Evaluator) arrayLen(x syntax.Expr) (int64, bool) {
	var v Value
	if lit, ok := x.(*syntax.BasicLit); ok {
		body, _ := literal.TrimSuffix(lit.Value)
		c, err := ev.parseLiteral(body)
		if err != nil {
			ev.fail(lit.Pos(), err)
			return 0, false
		}
		v = Const{c}
	} else if v = ev.expr(x); v == nil {
		return 0, false
	}

	c, ok := v.(Const)
	if !ok {
		ev.errorf(x.Pos(), "array length %s (%s) is not a constant", v, KindOf(v))
		return 0, false
	}
	n, exact := c.Val.Int64()
	if !exact || n < 0 {
		ev.errorf(x.Pos(), "invalid array length %s", c)
		return 0, false
	}
	return n, true
}

func (ev *Evaluator) funcType(e *syntax.FuncType) types.Type {
	params := make([]types.Type, 0, len(e.Params))
	ok := true
	for _, p := range e.Params {
		t := ev.typExpr(p)
		if t == nil {
			ok = false
			continue
		}
		if types.IsVoidType(t) {
			ev.errorf(p.Pos(), "invalid parameter type %s", t)
			ok = false
			continue
		}
		params = append(params, t)
	}

	var result types.Type
	if e.Result != nil {
		if result = ev.typExpr(e.Result); result == nil {
			return nil
		}
		switch types.Classify(result) {
		case types.CategoryArray, types.CategoryFunction:
			ev.errorf(e.Result.Pos(), "invalid result type %s", result)
			return nil
		}
	}
	if !ok {
		return nil
	}
	return types.NewFunc(params, result, e.Variadic)
}

func (ev *Evaluator) instanceType(e *syntax.InstanceType) types.Type {
	if v, ok := ev.env.values[e.Name.Value]; ok {
		if v == nil {
			return nil
		}
		if _, ok := v.(Partial); !ok {
			ev.errorf(e.Name.Pos(), "%s (%s) is not a template", e.Name.Value, KindOf(v))
			return nil
		}
	}
	obj, _ := ev.env.scope.LookupParent(e.Name.Value)
	tn, ok := obj.(*types.TemplateName)
	if !ok {
		ev.errorf(e.Name.Pos(), "%s is not a template", e.Name.Value)
		return nil
	}
	args := make([]types.Type, len(e.Args))
	for i, a := range e.Args {
		if args[i] = ev.typExpr(a); args[i] == nil {
			return nil
		}
	}
	inst, err := types.Instantiate(tn.Template(), args)
	if err != nil {
		ev.fail(e.Pos(), err)
		return nil
	}
	return ev.checkSize(e.Pos(), inst, "type "+inst.String())
}

func (ev *Evaluator) recordType(e *syntax.RecordType) types.Type {
	seen := make(map[string]bool)
	fields := make([]*types.Var, 0, len(e.Fields))
	for _, f := range e.Fields {
		t := ev.typExpr(f.Type)
		if t == nil {
			return nil
		}
		if _, sized := types.DefaultSizes.Sizeof(t); !sized {
			ev.errorf(f.Type.Pos(), "field %s has incomplete type %s", f.Name.Value, t)
			return nil
		}
		if f.Name.Value != "_" {
			if seen[f.Name.Value] {
				ev.errorf(f.Name.Pos(), "duplicate field %s", f.Name.Value)
				return nil
			}
			seen[f.Name.Value] = true
		}
		fields = append(fields, types.NewField(f.Pos(), f.Name.Value, t))
	}
	what := "struct"
	if e.Union {
		what = "union"
	}
	return ev.checkSize(e.Pos(), types.NewRecord(nil, e.Union, fields), what)
}
