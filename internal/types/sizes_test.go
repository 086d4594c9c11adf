package types

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/you-not-fish/stag/internal/abi"
	"github.com/you-not-fish/stag/internal/syntax"
)

func TestSizeof(t *testing.T) {
	sizes := DefaultSizes
	class := NewRecord(NewTypeName(syntax.Pos{}, "C", nil), false, nil)
	fn := NewFunc(nil, nil, false)

	tests := []struct {
		typ  Type
		want int64
	}{
		{Typ[Bool], abi.SizeBool},
		{Typ[Char], abi.SizeChar},
		{Typ[WChar], abi.SizeWChar},
		{Typ[Short], abi.SizeShort},
		{Typ[Int], abi.SizeInt},
		{Typ[Long], abi.SizeLong},
		{Typ[LongDouble], abi.SizeLongDouble},
		{Typ[NullPtr], abi.SizeNullPtr},
		{NewPointer(Typ[Char]), abi.SizePtr},
		{NewReference(LValueRef, Typ[Short]), abi.SizeShort},
		{NewReference(RValueRef, NewArray(Typ[Int], 4)), 4 * abi.SizeInt},
		{Qualify(Typ[Double], Const), abi.SizeDouble},
		{NewEnum(nil, Typ[UShort]), abi.SizeShort},
		{NewMemberPointer(class, Typ[Int]), abi.SizePtr},
		{NewMemberPointer(class, fn), abi.SizeMemberFunc},
		{NewArray(NewArray(Typ[Int], 3), 2), 6 * abi.SizeInt},
		{NewArray(Typ[Int], 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got, ok := sizes.Sizeof(tt.typ)
			if !ok || got != tt.want {
				t.Errorf("Sizeof(%s) = %d, %v, want %d", tt.typ, got, ok, tt.want)
			}
		})
	}
}

func TestSizeofUnsized(t *testing.T) {
	sizes := DefaultSizes
	tuple, _ := Instantiate(UniverseTuple(), nil)

	for _, typ := range []Type{
		Typ[Void],
		Qualify(Typ[Void], Const),
		NewFunc(nil, nil, false),
		NewArray(Typ[Int], Unbounded),
		tuple,
		NewRecord(nil, false, []*Var{NewField(syntax.Pos{}, "v", NewArray(Typ[Int], Unbounded))}),
	} {
		if n, ok := sizes.Sizeof(typ); ok {
			t.Errorf("Sizeof(%s) = %d, want no size", typ, n)
		}
	}
}

func TestRecordLayout(t *testing.T) {
	sizes := DefaultSizes
	pos := syntax.Pos{}

	// struct { char a; int b; char c; }
	rec := NewRecord(nil, false, []*Var{
		NewField(pos, "a", Typ[Char]),
		NewField(pos, "b", Typ[Int]),
		NewField(pos, "c", Typ[Char]),
	})
	if size, _ := sizes.Sizeof(rec); size != 12 {
		t.Errorf("Sizeof = %d, want 12", size)
	}
	if align := sizes.Alignof(rec); align != 4 {
		t.Errorf("Alignof = %d, want 4", align)
	}
	wantOffsets := []int64{0, 4, 8}
	for i, want := range wantOffsets {
		if got := sizes.Offsetof(rec, i); got != want {
			t.Errorf("Offsetof(%d) = %d, want %d", i, got, want)
		}
	}

	// union { char a; double b; int c; }
	u := NewRecord(nil, true, []*Var{
		NewField(pos, "a", Typ[Char]),
		NewField(pos, "b", Typ[Double]),
		NewField(pos, "c", Typ[Int]),
	})
	if size, _ := sizes.Sizeof(u); size != 8 {
		t.Errorf("union Sizeof = %d, want 8", size)
	}
	for i := range 3 {
		if got := sizes.Offsetof(u, i); got != 0 {
			t.Errorf("union Offsetof(%d) = %d, want 0", i, got)
		}
	}
}

func TestRecordLayoutEmpty(t *testing.T) {
	rec := NewRecord(nil, false, nil)
	if size, ok := DefaultSizes.Sizeof(rec); !ok || size != 1 {
		t.Errorf("empty record Sizeof = %d, %v, want 1", size, ok)
	}
}

func TestOpaqueRecord(t *testing.T) {
	rec := NewOpaqueRecord(NewTypeName(syntax.Pos{}, "string", nil), false, 16, 8)
	if size, ok := DefaultSizes.Sizeof(rec); !ok || size != 16 {
		t.Errorf("Sizeof = %d, %v, want 16", size, ok)
	}
	if align := DefaultSizes.Alignof(rec); align != 8 {
		t.Errorf("Alignof = %d, want 8", align)
	}
}

func TestPairSize(t *testing.T) {
	pair, _ := Instantiate(UniversePair(), []Type{Typ[Char], Typ[Long]})
	if size, ok := DefaultSizes.Sizeof(pair); !ok || size != 16 {
		t.Errorf("Sizeof(%s) = %d, %v, want 16", pair, size, ok)
	}
}

func TestSizeofTooLarge(t *testing.T) {
	pos := syntax.Pos{}
	quarter := NewArray(Typ[Char], 1<<62)

	tests := []struct {
		name string
		typ  Type
	}{
		{"array", NewArray(Typ[Long], 1<<61)},
		{"nested array", NewArray(NewArray(Typ[Int], 1<<40), 1<<30)},
		{"struct", NewRecord(nil, false, []*Var{
			NewField(pos, "a", quarter),
			NewField(pos, "b", quarter),
			NewField(pos, "c", quarter),
			NewField(pos, "d", quarter),
		})},
		{"struct padding", NewRecord(nil, false, []*Var{
			NewField(pos, "a", NewArray(Typ[Char], math.MaxInt64-2)),
			NewField(pos, "b", Typ[Int]),
		})},
		{"union member", NewRecord(nil, true, []*Var{
			NewField(pos, "a", NewArray(quarter, 4)),
		})},
		{"array of struct", NewArray(NewRecord(nil, false, []*Var{
			NewField(pos, "a", quarter),
		}), 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n, ok := DefaultSizes.Sizeof(tt.typ); ok {
				t.Errorf("Sizeof(%s) = %d, want no size", tt.typ, n)
			}
			if err := DefaultSizes.CheckSize(tt.typ); !errors.Is(err, ErrTooLarge) {
				t.Errorf("CheckSize(%s) = %v, want ErrTooLarge", tt.typ, err)
			}
		})
	}
}

func TestCheckSizeFits(t *testing.T) {
	for _, typ := range []Type{
		NewArray(Typ[Char], math.MaxInt64),
		NewArray(Typ[Long], 1<<59),
		NewArray(Typ[Int], Unbounded),
		Typ[Void],
		NewRecord(nil, false, []*Var{NewField(syntax.Pos{}, "a", NewArray(Typ[Char], 1<<62))}),
	} {
		if err := DefaultSizes.CheckSize(typ); err != nil {
			t.Errorf("CheckSize(%s) = %v", typ, err)
		}
	}
}

func TestComputeLayoutConcurrent(t *testing.T) {
	pos := syntax.Pos{}
	rec := NewRecord(nil, false, []*Var{
		NewField(pos, "a", Typ[Char]),
		NewField(pos, "b", Typ[Double]),
	})
	outer := NewArray(rec, 3)

	var wg sync.WaitGroup
	sizes := make([]int64, 16)
	for i := range sizes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				sizes[i], _ = DefaultSizes.Sizeof(rec)
			} else {
				n, _ := DefaultSizes.Sizeof(outer)
				sizes[i] = n / 3
			}
		}()
	}
	wg.Wait()

	for i, n := range sizes {
		if n != 16 {
			t.Errorf("goroutine %d: size = %d, want 16", i, n)
		}
	}
	if off := DefaultSizes.Offsetof(rec, 1); off != 8 {
		t.Errorf("Offsetof(1) = %d, want 8", off)
	}
}
