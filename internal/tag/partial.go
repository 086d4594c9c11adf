package tag

import (
	"errors"
	"fmt"

	"github.com/you-not-fish/stag/internal/types"
)

// Combinator failures.
var (
	ErrArity   = types.ErrArity
	ErrNonSuch = errors.New("nonsuch template argument")
)

// PartialTag is a handle to a template awaiting type arguments. It has no
// derived queries; it is only a key for Combine.
type PartialTag struct {
	tmpl *types.Template
}

// Partial returns the partial tag of tmpl.
func Partial(tmpl *types.Template) PartialTag {
	if tmpl == nil {
		panic("tag: Partial(nil)")
	}
	return PartialTag{tmpl: tmpl}
}

// Template returns the template, or nil for the zero PartialTag.
func (p PartialTag) Template() *types.Template {
	return p.tmpl
}

// String returns the template name and arity.
func (p PartialTag) String() string {
	if p.tmpl == nil {
		return "partial<nil>"
	}
	return "partial<" + p.tmpl.String() + ">"
}

// MarshalText encodes p as its string form.
func (p PartialTag) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Combine applies the template of p to the tags of args and returns the
// tag of the instance.
func Combine(p PartialTag, args List) (Tag, error) {
	if p.tmpl == nil {
		panic("tag: Combine with zero PartialTag")
	}
	targs := make([]types.Type, args.Len())
	for i, a := range args.tags {
		if a.IsNonSuch() {
			return NonSuch, fmt.Errorf("%s: argument %d: %w", p.tmpl.Name(), i, ErrNonSuch)
		}
		targs[i] = a.Type()
	}
	inst, err := types.Instantiate(p.tmpl, targs)
	if err != nil {
		return NonSuch, err
	}
	return FromType(inst), nil
}

// CombineTags is Combine with the arguments given individually.
func CombineTags(p PartialTag, args ...Tag) (Tag, error) {
	return Combine(p, List{tags: args})
}
