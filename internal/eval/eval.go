// Package eval evaluates stag scripts: statements over typed constants,
// type tags, type lists and partial types.
package eval

import (
	"strings"

	"github.com/you-not-fish/stag/internal/syntax"
	"github.com/you-not-fish/stag/internal/types"
)

// Config specifies the configuration for evaluation.
type Config struct {
	// Error is called for each evaluation error.
	// If nil, errors are silently ignored.
	Error ErrorHandler

	// Lenient makes literals skip characters outside their radix
	// instead of rejecting them.
	Lenient bool
}

// Result is the value of one statement.
type Result struct {
	Pos   syntax.Pos
	Name  string // bound name for name := expr, empty otherwise
	Expr  string // source form of the expression
	Value Value
}

// Evaluator evaluates the statements of a script in an environment.
type Evaluator struct {
	conf *Config
	env  *Env

	errors int
	first  *Error
}

// NewEvaluator returns an evaluator binding names in env. A nil conf is
// the zero Config; a nil env is a fresh one.
func NewEvaluator(conf *Config, env *Env) *Evaluator {
	if conf == nil {
		conf = &Config{}
	}
	if env == nil {
		env = NewEnv()
	}
	return &Evaluator{conf: conf, env: env}
}

// Env returns the evaluator's environment.
func (ev *Evaluator) Env() *Env {
	return ev.env
}

// Eval evaluates every statement of file and returns the results of
// those that succeeded together with the first error, if any.
func Eval(file *syntax.File, conf *Config, env *Env) ([]Result, error) {
	ev := NewEvaluator(conf, env)
	results := ev.Stmts(file.Stmts)
	if ev.errors > 0 {
		return results, ev.first
	}
	return results, nil
}

// EvalString parses and evaluates src in a fresh environment and returns
// the value of its last statement.
func EvalString(src string) (Value, error) {
	f, err := syntax.Parse("", strings.NewReader(src), nil)
	if err != nil {
		return nil, err
	}
	results, err := Eval(f, nil, nil)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[len(results)-1].Value, nil
}

// Errors returns the number of errors reported so far.
func (ev *Evaluator) Errors() int {
	return ev.errors
}

// Stmts evaluates list in order. Statements after a failing one are
// still evaluated; names bound by a failing definition are poisoned so
// that their uses do not report again.
func (ev *Evaluator) Stmts(list []syntax.Stmt) []Result {
	var results []Result
	for _, s := range list {
		if r, ok := ev.stmt(s); ok {
			results = append(results, r)
		}
	}
	return results
}

func (ev *Evaluator) stmt(s syntax.Stmt) (Result, bool) {
	switch s := s.(type) {
	case *syntax.EmptyStmt:
		return Result{}, false

	case *syntax.ExprStmt:
		v := ev.expr(s.X)
		if v == nil {
			return Result{}, false
		}
		if b, ok := v.(Builtin); ok {
			ev.errorf(s.Pos(), "%s must be called", b.Name)
			return Result{}, false
		}
		return Result{Pos: s.Pos(), Expr: syntax.String(s.X), Value: v}, true

	case *syntax.AssignStmt:
		v := ev.expr(s.Rhs)
		if _, ok := v.(Builtin); ok {
			ev.errorf(s.Rhs.Pos(), "cannot bind builtin %s", syntax.String(s.Rhs))
			v = nil
		}
		if !ev.define(s.Lhs, v) || v == nil {
			return Result{}, false
		}
		return Result{Pos: s.Pos(), Name: s.Lhs.Value, Expr: syntax.String(s.Rhs), Value: v}, true
	}

	ev.errorf(s.Pos(), "invalid statement %T", s)
	return Result{}, false
}

// define binds name to v, which may be nil after an error.
func (ev *Evaluator) define(name *syntax.Name, v Value) bool {
	if name.Value == "_" {
		return true
	}
	if _, dup := ev.env.values[name.Value]; dup {
		ev.errorf(name.Pos(), "%s redeclared", name.Value)
		return false
	}
	ev.env.values[name.Value] = v

	switch v := v.(type) {
	case Type:
		if !v.Tag.IsNonSuch() {
			ev.env.scope.Insert(types.NewTypeName(name.Pos(), name.Value, v.Tag.Type()))
		}
	case Partial:
		ev.env.scope.Insert(types.NewTemplateName(name.Pos(), name.Value, v.P.Template()))
	}
	return true
}
