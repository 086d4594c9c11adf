package eval

import (
	"slices"

	"github.com/you-not-fish/stag/internal/constant"
	"github.com/you-not-fish/stag/internal/tag"
	"github.com/you-not-fish/stag/internal/types"
)

// Env holds the names bound by a script. Tag and partial bindings are
// also declared in a scope below types.Universe, so that they can be used
// inside type expressions: T := tag(int); tag(*T).
type Env struct {
	scope  *types.Scope
	values map[string]Value
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{
		scope:  types.NewScope(types.Universe, "script"),
		values: make(map[string]Value),
	}
}

// Lookup returns the value bound to name by the script.
func (e *Env) Lookup(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok && v != nil
}

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Scope returns the scope holding the script's type and template names.
func (e *Env) Scope() *types.Scope {
	return e.scope
}

// predeclared holds the names that are neither types nor templates.
var predeclared = map[string]Value{
	"none":                   Const{constant.None},
	"nonsuch":                Type{tag.NonSuch},
	"true_c":                 Const{constant.True},
	"false_c":                Const{constant.False},
	"reference_tag":          ReferenceMarker,
	"const_qualifier_tag":    ConstMarker,
	"volatile_qualifier_tag": VolatileMarker,
}

func init() {
	for _, c := range types.Categories() {
		predeclared[c.String()+"_tag"] = Category{c}
	}
	for _, name := range builtinNames {
		predeclared[name] = Builtin{name}
	}
}
