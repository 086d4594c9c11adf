package types

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// serial numbers distinguish otherwise indistinguishable user types.
var serial atomic.Uint64

func nextSerial() uint64 {
	return serial.Add(1)
}

// Enum represents an enumeration type with an integral storage type.
type Enum struct {
	typ
	obj    *TypeName
	base   *Basic
	serial uint64
}

// NewEnum creates a new enumeration type stored as base.
// base must be an integral basic type.
func NewEnum(obj *TypeName, base *Basic) *Enum {
	if base == nil || base.info&IsIntegral == 0 {
		panic(fmt.Sprintf("types: enum with non-integral storage %v", base))
	}
	e := &Enum{obj: obj, base: base, serial: nextSerial()}
	if obj != nil {
		obj.typ = e
	}
	return e
}

// Obj returns the type name object.
func (e *Enum) Obj() *TypeName {
	return e.obj
}

// Base returns the storage type.
func (e *Enum) Base() *Basic {
	return e.base
}

// Underlying implements Type.
func (e *Enum) Underlying() Type {
	return e
}

// String implements Type.
func (e *Enum) String() string {
	if e.obj != nil {
		return e.obj.Name()
	}
	return "enum"
}

// Record represents a class or union type.
type Record struct {
	typ
	obj    *TypeName
	union  bool
	fields []*Var
	serial uint64

	// Layout information, computed lazily or set for opaque records.
	// Records are shared between tags, so mu guards the fields below.
	mu       sync.Mutex
	size     int64
	align    int64
	offsets  []int64
	layout   bool
	tooLarge bool
}

// NewRecord creates a class (union false) or union type with the given
// fields. Fields may be nil and set later using SetFields.
func NewRecord(obj *TypeName, union bool, fields []*Var) *Record {
	r := &Record{obj: obj, union: union, fields: fields, serial: nextSerial()}
	if obj != nil {
		obj.typ = r
	}
	return r
}

// NewOpaqueRecord creates a record whose layout is known but whose
// members are not.
func NewOpaqueRecord(obj *TypeName, union bool, size, align int64) *Record {
	r := NewRecord(obj, union, nil)
	r.SetLayout(size, align, nil)
	return r
}

// Obj returns the type name object, or nil for an anonymous record.
func (r *Record) Obj() *TypeName {
	return r.obj
}

// IsUnion reports whether the record is a union.
func (r *Record) IsUnion() bool {
	return r.union
}

// NumFields returns the number of fields.
func (r *Record) NumFields() int {
	return len(r.fields)
}

// Field returns the i-th field.
func (r *Record) Field(i int) *Var {
	return r.fields[i]
}

// Fields returns all fields.
func (r *Record) Fields() []*Var {
	return r.fields
}

// SetFields sets the fields and discards any computed layout.
func (r *Record) SetFields(fields []*Var) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields = fields
	r.layout = false
	r.tooLarge = false
}

// Size returns the record size in bytes, or -1 if it has no complete layout.
// Only valid after layout.
func (r *Record) Size() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Align returns the record alignment in bytes. Only valid after layout.
func (r *Record) Align() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.align
}

// Offset returns the offset of field i. Only valid after layout.
func (r *Record) Offset(i int) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.offsets[i]
}

// LayoutDone reports whether the layout has been computed.
func (r *Record) LayoutDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.layout
}

// SetLayout sets the computed layout.
func (r *Record) SetLayout(size, align int64, offsets []int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.size = size
	r.align = align
	r.offsets = offsets
	r.layout = true
}

// Underlying implements Type.
func (r *Record) Underlying() Type {
	return r
}

// String implements Type.
func (r *Record) String() string {
	if r.obj != nil {
		return r.obj.Name()
	}
	var sb strings.Builder
	if r.union {
		sb.WriteString("union{")
	} else {
		sb.WriteString("struct{")
	}
	for i, f := range r.fields {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(f.Name())
		sb.WriteString(" ")
		sb.WriteString(f.Type().String())
	}
	sb.WriteString("}")
	return sb.String()
}

// Variadic is the arity of a template that accepts any number of arguments.
const Variadic = -1

// ErrArity is returned when a template is instantiated with the wrong
// number of arguments.
var ErrArity = errors.New("wrong number of template arguments")

// Template is a type constructor. It is not itself a type; Instantiate
// applies it to arguments.
type Template struct {
	name   string
	arity  int
	expand func(args []Type) Type
	serial uint64
}

// NewTemplate creates a template with the given arity. If expand is
// non-nil, instances have the returned type as their underlying type;
// otherwise instances are opaque classes.
func NewTemplate(name string, arity int, expand func(args []Type) Type) *Template {
	return &Template{name: name, arity: arity, expand: expand, serial: nextSerial()}
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.name
}

// Arity returns the number of parameters, or Variadic.
func (t *Template) Arity() int {
	return t.arity
}

// String returns the template name followed by its arity.
func (t *Template) String() string {
	if t.arity == Variadic {
		return t.name + "<...>"
	}
	return fmt.Sprintf("%s<%d>", t.name, t.arity)
}

// Instance represents a template applied to type arguments.
type Instance struct {
	typ
	tmpl     *Template
	args     []Type
	once     sync.Once
	expanded Type
}

// Instantiate applies tmpl to args.
func Instantiate(tmpl *Template, args []Type) (*Instance, error) {
	if tmpl.arity != Variadic && len(args) != tmpl.arity {
		return nil, fmt.Errorf("%s: got %d, want %d: %w", tmpl.name, len(args), tmpl.arity, ErrArity)
	}
	return &Instance{tmpl: tmpl, args: args}, nil
}

// Template returns the instantiated template.
func (i *Instance) Template() *Template {
	return i.tmpl
}

// Args returns the type arguments.
func (i *Instance) Args() []Type {
	return i.args
}

// Underlying implements Type. An opaque instance is its own underlying type.
func (i *Instance) Underlying() Type {
	if i.tmpl.expand == nil {
		return i
	}
	i.once.Do(func() {
		i.expanded = i.tmpl.expand(i.args)
	})
	return i.expanded
}

// String implements Type.
func (i *Instance) String() string {
	var sb strings.Builder
	sb.WriteString(i.tmpl.name)
	sb.WriteString("<")
	for n, a := range i.args {
		if n > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteString(">")
	return sb.String()
}
