package tag

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/kr/pretty"

	"github.com/you-not-fish/stag/internal/constant"
)

// ErrIndex is returned when a constant index is outside a list.
var ErrIndex = errors.New("list index out of range")

// List is an immutable ordered sequence of tags. The zero value is the
// empty list. Operations return new lists and never modify their receiver.
type List struct {
	tags []Tag
}

// NewList returns a list holding tags in order.
func NewList(tags ...Tag) List {
	return List{tags: slices.Clone(tags)}
}

// Len returns the number of tags.
func (l List) Len() int {
	return len(l.tags)
}

// Length returns the number of tags as a size_t constant.
func (l List) Length() constant.Value {
	v, _ := constant.MakeInt64(constant.SizeKind, int64(len(l.tags)))
	return v
}

// At returns the i-th tag. It panics if i is out of range.
func (l List) At(i int) Tag {
	if i < 0 || i >= len(l.tags) {
		panic(fmt.Sprintf("tag: index %d out of range for %s", i, pretty.Sprint(l.tags)))
	}
	return l.tags[i]
}

// Index returns the tag at the position given by constant c.
func (l List) Index(c constant.Value) (Tag, error) {
	i, ok := c.Int64()
	if c.IsNone() || !ok || i < 0 || i >= int64(len(l.tags)) {
		return NonSuch, fmt.Errorf("%w: %s[%s] (len=%d)", ErrIndex, l, c, len(l.tags))
	}
	return l.tags[i], nil
}

// Append returns a list with t added at the tail.
func (l List) Append(t Tag) List {
	return List{tags: append(slices.Clip(l.tags), t)}
}

// Prepend returns a list with t added at the head.
func (l List) Prepend(t Tag) List {
	return List{tags: append([]Tag{t}, l.tags...)}
}

// Concat returns the elements of l followed by the elements of m.
func (l List) Concat(m List) List {
	return List{tags: slices.Concat(l.tags, m.tags)}
}

// Remove returns l without the first occurrence of t, scanning from the
// head. If t does not occur the result equals l.
func (l List) Remove(t Tag) List {
	i := slices.Index(l.tags, t)
	if i < 0 {
		return l
	}
	return List{tags: slices.Concat(l.tags[:i], l.tags[i+1:])}
}

// Reverse returns the elements of l in reverse order.
func (l List) Reverse() List {
	if len(l.tags) == 0 {
		return l
	}
	// reverse(tail) followed by head
	return l.WithoutFirst().Reverse().Append(l.tags[0])
}

// Equal reports whether l and m have the same tags in the same order.
func (l List) Equal(m List) bool {
	return slices.Equal(l.tags, m.tags)
}

// Eq returns the Bool constant l == m.
func (l List) Eq(m List) constant.Value {
	return constant.MakeBool(l.Equal(m))
}

// First returns the head of l, or NonSuch if l is empty.
func (l List) First() Tag {
	if len(l.tags) == 0 {
		return NonSuch
	}
	return l.tags[0]
}

// WithoutFirst returns l without its head. The empty list is returned
// unchanged.
func (l List) WithoutFirst() List {
	if len(l.tags) == 0 {
		return l
	}
	return List{tags: l.tags[1:]}
}

// Contains reports whether t occurs in l.
func (l List) Contains(t Tag) bool {
	return slices.Contains(l.tags, t)
}

// Tags returns a copy of the elements.
func (l List) Tags() []Tag {
	return slices.Clone(l.tags)
}

// String returns the list in the form list<T1, T2>.
func (l List) String() string {
	var sb strings.Builder
	sb.WriteString("list<")
	for i, t := range l.tags {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	sb.WriteString(">")
	return sb.String()
}

// MarshalText encodes l as its string form.
func (l List) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// CountOf returns the number of tags as a size_t constant.
func CountOf(tags ...Tag) constant.Value {
	return NewList(tags...).Length()
}
