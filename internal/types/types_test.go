package types

import (
	"errors"
	"testing"

	"github.com/you-not-fish/stag/internal/syntax"
)

func TestBasicTypes(t *testing.T) {
	tests := []struct {
		kind BasicKind
		name string
		info BasicInfo
	}{
		{Void, "void", IsVoid},
		{NullPtr, "nullptr_t", IsNullPtr},
		{Bool, "bool", IsBoolean},
		{Char, "char", IsCharacter},
		{UChar, "unsigned char", IsCharacter | IsUnsigned},
		{Char16, "char16_t", IsCharacter | IsUnsigned},
		{Int, "int", IsInteger},
		{ULong, "unsigned long", IsInteger | IsUnsigned},
		{LongLong, "long long", IsInteger},
		{Double, "double", IsFloat},
		{LongDouble, "long double", IsFloat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := Typ[tt.kind]
			if typ == nil {
				t.Fatalf("Typ[%d] is nil", tt.kind)
			}
			if typ.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", typ.Kind(), tt.kind)
			}
			if typ.Info() != tt.info {
				t.Errorf("Info() = %v, want %v", typ.Info(), tt.info)
			}
			if typ.String() != tt.name {
				t.Errorf("String() = %q, want %q", typ.String(), tt.name)
			}
			// Basic type's underlying is itself
			if typ.Underlying() != typ {
				t.Errorf("Underlying() != self")
			}
		})
	}
}

func TestTypeStrings(t *testing.T) {
	class := NewRecord(NewTypeName(syntax.Pos{}, "C", nil), false, nil)
	tests := []struct {
		typ  Type
		want string
	}{
		{NewArray(Typ[Int], 10), "[10]int"},
		{NewArray(Typ[Int], -5), "[]int"},
		{NewPointer(Typ[Char]), "*char"},
		{NewReference(LValueRef, Typ[Int]), "&int"},
		{NewReference(RValueRef, Typ[Int]), "&&int"},
		{NewFunc([]Type{Typ[Int], Typ[Char]}, Typ[Long], true), "func(int, char, ...) long"},
		{NewFunc(nil, nil, false), "func()"},
		{NewFunc(nil, nil, true), "func(...)"},
		{NewMemberPointer(class, Typ[Int]), "C::*int"},
		{Qualify(Typ[Int], Const), "const int"},
		{Qualify(Typ[Int], Const|Volatile), "const volatile int"},
		{Qualify(NewArray(Typ[Int], 3), Const), "[3]const int"},
		{NewRecord(nil, true, []*Var{NewField(syntax.Pos{}, "a", Typ[Int])}), "union{a int}"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReferenceCollapsing(t *testing.T) {
	i := Typ[Int]
	tests := []struct {
		name  string
		inner RefKind
		outer RefKind
		want  RefKind
	}{
		{"& &", LValueRef, LValueRef, LValueRef},
		{"& &&", LValueRef, RValueRef, LValueRef},
		{"&& &", RValueRef, LValueRef, LValueRef},
		{"&& &&", RValueRef, RValueRef, RValueRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReference(tt.outer, NewReference(tt.inner, i))
			if r.Kind() != tt.want {
				t.Errorf("Kind() = %v, want %v", r.Kind(), tt.want)
			}
			if r.Elem() != Type(i) {
				t.Errorf("Elem() = %s, want int", r.Elem())
			}
		})
	}
}

func TestQualifyNormalization(t *testing.T) {
	i := Typ[Int]

	cv := Qualify(Qualify(i, Const), Volatile)
	if q, ok := cv.(*Qualified); !ok || q.Quals() != Const|Volatile || q.Elem() != Type(i) {
		t.Errorf("Qualify(Qualify(int, const), volatile) = %s", cv)
	}

	ref := NewReference(LValueRef, i)
	if got := Qualify(ref, Const); got != Type(ref) {
		t.Errorf("Qualify(&int, const) = %s, want &int unchanged", got)
	}

	fn := NewFunc(nil, nil, false)
	if got := Qualify(fn, Const); got != Type(fn) {
		t.Errorf("Qualify(func(), const) = %s, want unchanged", got)
	}

	arr := Qualify(NewArray(i, 2), Const)
	if !IsConst(arr) {
		t.Errorf("IsConst(%s) = false, want true", arr)
	}
	if got := Unqualified(arr); !Identical(got, NewArray(i, 2)) {
		t.Errorf("Unqualified(%s) = %s, want [2]int", arr, got)
	}

	if got := Unqualify(cv, Const); !Identical(got, Qualify(i, Volatile)) {
		t.Errorf("Unqualify(%s, const) = %s, want volatile int", cv, got)
	}
}

func TestEnumType(t *testing.T) {
	obj := NewTypeName(syntax.Pos{}, "Color", nil)
	e := NewEnum(obj, Typ[UChar])

	if obj.Type() != Type(e) {
		t.Errorf("obj.Type() != enum")
	}
	if e.Base() != Typ[UChar] {
		t.Errorf("Base() = %s, want unsigned char", e.Base())
	}
	if e.String() != "Color" {
		t.Errorf("String() = %q, want Color", e.String())
	}

	defer func() {
		if recover() == nil {
			t.Error("NewEnum with float storage should panic")
		}
	}()
	NewEnum(nil, Typ[Float])
}

func TestInstantiate(t *testing.T) {
	pair := UniversePair()

	inst, err := Instantiate(pair, []Type{Typ[Int], Typ[Char]})
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}
	if inst.String() != "pair<int, char>" {
		t.Errorf("String() = %q, want pair<int, char>", inst.String())
	}
	rec, ok := inst.Underlying().(*Record)
	if !ok {
		t.Fatalf("Underlying() = %T, want *Record", inst.Underlying())
	}
	if rec.NumFields() != 2 || rec.Field(0).Name() != "first" || rec.Field(1).Name() != "second" {
		t.Errorf("pair expansion = %s", rec)
	}
	if inst.Underlying() != Type(rec) {
		t.Errorf("expansion is not cached")
	}

	if _, err := Instantiate(pair, []Type{Typ[Int]}); !errors.Is(err, ErrArity) {
		t.Errorf("Instantiate(pair, int) error = %v, want ErrArity", err)
	}

	tuple := UniverseTuple()
	for _, args := range [][]Type{nil, {Typ[Int]}, {Typ[Int], Typ[Bool], Typ[Char]}} {
		inst, err := Instantiate(tuple, args)
		if err != nil {
			t.Fatalf("Instantiate(tuple, %d args) failed: %v", len(args), err)
		}
		if inst.Underlying() != Type(inst) {
			t.Errorf("opaque instance should be its own underlying type")
		}
	}
}
