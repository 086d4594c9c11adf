package types

import (
	"fmt"
	"sort"
	"strings"
)

// Scope maps names to type and template objects.
// Scopes form a chain ending at the Universe scope.
type Scope struct {
	parent  *Scope
	elems   map[string]Object
	comment string // debugging comment (e.g., "universe", "script")
}

// NewScope creates a new scope with the given parent.
func NewScope(parent *Scope, comment string) *Scope {
	return &Scope{
		parent:  parent,
		elems:   make(map[string]Object),
		comment: comment,
	}
}

// Parent returns the parent scope, or nil for the Universe scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Comment returns the scope's comment (for debugging).
func (s *Scope) Comment() string {
	return s.comment
}

// Lookup returns the object with the given name in the current scope.
// Returns nil if not found in this scope (does not search parent scopes).
func (s *Scope) Lookup(name string) Object {
	return s.elems[name]
}

// LookupParent returns the object with the given name by searching
// from the current scope up through all parent scopes.
// Returns the object and the scope in which it was found.
// Returns (nil, nil) if not found.
func (s *Scope) LookupParent(name string) (Object, *Scope) {
	for scope := s; scope != nil; scope = scope.parent {
		if obj := scope.elems[name]; obj != nil {
			return obj, scope
		}
	}
	return nil, nil
}

// Insert inserts an object into the scope.
// If an object with the same name already exists, returns the existing object.
// Otherwise, returns nil.
func (s *Scope) Insert(obj Object) Object {
	name := obj.Name()
	if existing := s.elems[name]; existing != nil {
		return existing
	}
	s.elems[name] = obj
	obj.setParent(s)
	return nil
}

// Names returns the names of all objects in the scope, sorted alphabetically.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.elems))
	for name := range s.elems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NumObjects returns the number of objects in the scope.
func (s *Scope) NumObjects() int {
	return len(s.elems)
}

// String returns a string representation of the scope for debugging.
func (s *Scope) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "scope %s {\n", s.comment)
	for _, name := range s.Names() {
		switch obj := s.elems[name].(type) {
		case *TemplateName:
			fmt.Fprintf(&buf, "  %s: template %s\n", name, obj.Template())
		default:
			fmt.Fprintf(&buf, "  %s: %s\n", name, obj.Type())
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}
