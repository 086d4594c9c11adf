// Package tag provides type tags: small comparable handles that stand for
// a type descriptor. Structurally identical descriptors share one tag, so
// tag equality is ==. Tags carry derived queries (size, category,
// underlying type, return type) and the type operators.
package tag

import (
	"sync"

	"github.com/you-not-fish/stag/internal/constant"
	"github.com/you-not-fish/stag/internal/types"
)

// Tag is an interned type handle. The zero value is NonSuch.
type Tag struct {
	id uint32
}

// NonSuch is the tag that stands for no type. It is equal only to itself;
// querying it is a programming error and panics.
var NonSuch Tag

// entry holds the descriptor and cached metadata of one tag.
type entry struct {
	typ types.Type
	key string
	cat types.Category

	sizeOnce sync.Once
	size     constant.Value
}

// registry interns descriptors by key.
type registry struct {
	mu      sync.RWMutex
	byKey   map[string]uint32
	entries []*entry // entries[0] is NonSuch
}

var reg = &registry{
	byKey:   make(map[string]uint32),
	entries: []*entry{nil},
}

func (r *registry) intern(t types.Type) Tag {
	key := types.Key(t)

	r.mu.RLock()
	id, ok := r.byKey[key]
	r.mu.RUnlock()
	if ok {
		return Tag{id}
	}

	// Classify may expand template instances, which may intern tags.
	e := &entry{typ: t, key: key, cat: types.Classify(t)}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byKey[key]; ok {
		return Tag{id}
	}
	id = uint32(len(r.entries))
	r.entries = append(r.entries, e)
	r.byKey[key] = id
	return Tag{id}
}

func (r *registry) get(id uint32) *entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[id]
}

// Len returns the number of interned tags, not counting NonSuch.
func (r *registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries) - 1
}

// FromType returns the tag of t. t must not be nil.
func FromType(t types.Type) Tag {
	if t == nil {
		panic("tag: FromType(nil)")
	}
	return reg.intern(t)
}

// Interned returns the number of distinct tags created so far.
func Interned() int {
	return reg.Len()
}

func (t Tag) entry() *entry {
	if t.id == 0 {
		panic("tag: query on NonSuch")
	}
	return reg.get(t.id)
}

// IsNonSuch reports whether t is NonSuch.
func (t Tag) IsNonSuch() bool {
	return t.id == 0
}

// Type returns the descriptor of t, or nil for NonSuch.
func (t Tag) Type() types.Type {
	if t.id == 0 {
		return nil
	}
	return reg.get(t.id).typ
}

// Key returns the interning key of t.
func (t Tag) Key() string {
	return t.entry().key
}

// Size returns the size of the type in bytes as a size_t constant, or
// None for types without a size.
func (t Tag) Size() constant.Value {
	e := t.entry()
	e.sizeOnce.Do(func() {
		e.size = constant.None
		if n, ok := types.DefaultSizes.Sizeof(e.typ); ok {
			e.size, _ = constant.MakeInt64(constant.SizeKind, n)
		}
	})
	return e.size
}

// Category returns the category of the type.
func (t Tag) Category() types.Category {
	return t.entry().cat
}

// UnderlyingType returns the storage type of an enumeration, or NonSuch
// for every other type.
func (t Tag) UnderlyingType() Tag {
	if e, ok := types.Resolve(t.entry().typ).(*types.Enum); ok {
		return FromType(e.Base())
	}
	return NonSuch
}

// ReturnType returns the result type of a function type, or NonSuch for
// every other type.
func (t Tag) ReturnType() Tag {
	if f, ok := types.Resolve(t.entry().typ).(*types.Func); ok {
		return FromType(f.Result())
	}
	return NonSuch
}

// ParamTypes returns the parameter types of a function type. The boolean
// result is false for every other type.
func (t Tag) ParamTypes() (List, bool) {
	f, ok := types.Resolve(t.entry().typ).(*types.Func)
	if !ok {
		return List{}, false
	}
	tags := make([]Tag, f.NumParams())
	for i, p := range f.Params() {
		tags[i] = FromType(p)
	}
	return List{tags: tags}, true
}

// IsVariadic reports whether t is a function type accepting trailing
// arguments.
func (t Tag) IsVariadic() bool {
	f, ok := types.Resolve(t.entry().typ).(*types.Func)
	return ok && f.Variadic()
}

// IsConst reports whether the type is const-qualified.
func (t Tag) IsConst() bool {
	return types.IsConst(t.entry().typ)
}

// IsVolatile reports whether the type is volatile-qualified.
func (t Tag) IsVolatile() bool {
	return types.IsVolatile(t.entry().typ)
}

// IsReference reports whether the type is a reference type.
func (t Tag) IsReference() bool {
	return t.Category().IsReference()
}

// Eq returns the Bool constant t == u.
func (t Tag) Eq(u Tag) constant.Value {
	return constant.MakeBool(t == u)
}

// String returns the type spelling, or "nonsuch".
func (t Tag) String() string {
	if t.id == 0 {
		return "nonsuch"
	}
	return reg.get(t.id).typ.String()
}

// GoString formats t as tag(T) for %#v.
func (t Tag) GoString() string {
	return "tag(" + t.String() + ")"
}

// MarshalText encodes t as its type spelling.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
