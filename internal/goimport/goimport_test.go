package goimport

import (
	"go/ast"
	"go/parser"
	"go/token"
	gotypes "go/types"
	"testing"

	"github.com/you-not-fish/stag/internal/tag"
	"github.com/you-not-fish/stag/internal/types"
)

const src = `package p

type Color uint8

type Node struct {
	Value int32
	Next  *Node
}

type Name string

type Reader interface{ Read([]byte) (int, error) }

type Alias = Node

var (
	Fn     func(int8, ...int32) (int16, error)
	Buf    [4]uint16
	Slice  []int
	Any    any
	Anon   struct{ A, B int8 }
	Ptr    *Color
	Proc   func()
	Reader2 Reader
)
`

func check(t *testing.T) *gotypes.Package {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var conf gotypes.Config
	pkg, err := conf.Check("p", fset, []*ast.File{f}, nil)
	if err != nil {
		t.Fatalf("type check failed: %v", err)
	}
	return pkg
}

func lookup(t *testing.T, pkg *gotypes.Package, name string) gotypes.Type {
	t.Helper()
	obj := pkg.Scope().Lookup(name)
	if obj == nil {
		t.Fatalf("%s not found", name)
	}
	return obj.Type()
}

func TestImport(t *testing.T) {
	pkg := check(t)
	imp := New()

	tests := []struct {
		name string
		cat  types.Category
		size int64  // -1 for none
		str  string // empty to skip
	}{
		{"Color", types.CategoryEnum, 1, "p.Color"},
		{"Node", types.CategoryClass, 16, "p.Node"},
		{"Name", types.CategoryClass, 16, "string"},
		{"Reader", types.CategoryClass, 16, "p.Reader"},
		{"Alias", types.CategoryClass, 16, "p.Node"},
		{"Fn", types.CategoryFunction, -1, "func(signed char, ...) tuple<short, error>"},
		{"Buf", types.CategoryArray, 8, "[4]unsigned short"},
		{"Slice", types.CategoryClass, 24, "[]int"},
		{"Any", types.CategoryClass, 16, ""},
		{"Anon", types.CategoryClass, 2, "struct{A signed char; B signed char}"},
		{"Ptr", types.CategoryPointer, 8, "*p.Color"},
		{"Proc", types.CategoryFunction, -1, "func()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := imp.Import(lookup(t, pkg, tt.name))
			if got.Category() != tt.cat {
				t.Errorf("category = %v, want %v", got.Category(), tt.cat)
			}
			if tt.size < 0 {
				if !got.Size().IsNone() {
					t.Errorf("size = %s, want none", got.Size())
				}
			} else if n, _ := got.Size().Int64(); n != tt.size {
				t.Errorf("size = %s, want %d", got.Size(), tt.size)
			}
			if tt.str != "" && got.String() != tt.str {
				t.Errorf("String() = %q, want %q", got.String(), tt.str)
			}
		})
	}
}

func TestImportMemoized(t *testing.T) {
	pkg := check(t)
	imp := New()

	node := imp.Import(lookup(t, pkg, "Node"))
	if imp.Import(lookup(t, pkg, "Node")) != node {
		t.Error("Node imported twice yields different tags")
	}
	if imp.Import(lookup(t, pkg, "Alias")) != node {
		t.Error("alias does not share the tag of its target")
	}

	rec := node.Type().(*types.Record)
	next, ok := rec.Field(1).Type().(*types.Pointer)
	if !ok || next.Elem() != types.Type(rec) {
		t.Errorf("Node.Next = %s, want pointer to Node", rec.Field(1).Type())
	}

	color := imp.Import(lookup(t, pkg, "Color"))
	if got := color.UnderlyingType(); got != tag.Of[uint8]() {
		t.Errorf("Color underlying = %s, want unsigned char", got)
	}

	// A second importer makes distinct named types.
	if New().Import(lookup(t, pkg, "Node")) == node {
		t.Error("separate importers share a named type")
	}
}

func TestImportBasic(t *testing.T) {
	imp := New()
	tests := []struct {
		typ  gotypes.Type
		want tag.Tag
	}{
		{gotypes.Typ[gotypes.Int32], tag.Of[int32]()},
		{gotypes.Typ[gotypes.Uint], tag.Of[uint]()},
		{gotypes.Typ[gotypes.Float64], tag.Of[float64]()},
		{gotypes.Typ[gotypes.UntypedNil], tag.FromType(types.Typ[types.NullPtr])},
		{gotypes.Typ[gotypes.UntypedInt], tag.Of[int]()},
		{gotypes.Typ[gotypes.UnsafePointer], tag.FromType(types.NewPointer(types.Typ[types.Void]))},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := imp.Import(tt.typ); got != tt.want {
				t.Errorf("Import(%s) = %s, want %s", tt.typ, got, tt.want)
			}
		})
	}
}
