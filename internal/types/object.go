package types

import "github.com/you-not-fish/stag/internal/syntax"

// Object represents a named entity in a scope: a type name, a template
// name or a record field.
type Object interface {
	Name() string    // object name
	Type() Type      // object type, nil for templates
	Pos() syntax.Pos // declaration position
	Parent() *Scope  // enclosing scope

	setParent(*Scope) // internal: set parent scope
	aObject()         // marker method to restrict implementations
}

// object is the base struct for all objects.
type object struct {
	name   string
	typ    Type
	pos    syntax.Pos
	parent *Scope
}

func (o *object) Name() string       { return o.name }
func (o *object) Type() Type         { return o.typ }
func (o *object) Pos() syntax.Pos    { return o.pos }
func (o *object) Parent() *Scope     { return o.parent }
func (o *object) setParent(s *Scope) { o.parent = s }
func (*object) aObject()             {}

// Var represents a record field.
type Var struct {
	object
}

// NewField creates a new record field object.
func NewField(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}}
}

// TypeName represents a declared type name or alias.
type TypeName struct {
	object
}

// NewTypeName creates a new type name object.
func NewTypeName(pos syntax.Pos, name string, typ Type) *TypeName {
	return &TypeName{object: object{name: name, typ: typ, pos: pos}}
}

// SetType sets the type associated with the type name.
func (t *TypeName) SetType(typ Type) {
	t.typ = typ
}

// TemplateName represents a declared template.
type TemplateName struct {
	object
	tmpl *Template
}

// NewTemplateName creates a new template name object. The name need not
// match the template's own name.
func NewTemplateName(pos syntax.Pos, name string, tmpl *Template) *TemplateName {
	return &TemplateName{object: object{name: name, pos: pos}, tmpl: tmpl}
}

// Template returns the named template.
func (t *TemplateName) Template() *Template {
	return t.tmpl
}
