package types

import (
	"testing"

	"github.com/you-not-fish/stag/internal/syntax"
)

func TestIdentical(t *testing.T) {
	class := NewRecord(NewTypeName(syntax.Pos{}, "C", nil), false, nil)
	other := NewRecord(NewTypeName(syntax.Pos{}, "C", nil), false, nil)
	p1, _ := Instantiate(UniversePair(), []Type{Typ[Int], Typ[Char]})
	p2, _ := Instantiate(UniversePair(), []Type{Typ[Int], Typ[Char]})
	p3, _ := Instantiate(UniversePair(), []Type{Typ[Char], Typ[Int]})

	tests := []struct {
		name string
		x, y Type
		want bool
	}{
		{"same basic", Typ[Int], Typ[Int], true},
		{"different basic", Typ[Int], Typ[UInt], false},
		{"arrays", NewArray(Typ[Int], 3), NewArray(Typ[Int], 3), true},
		{"array lengths", NewArray(Typ[Int], 3), NewArray(Typ[Int], 4), false},
		{"bounded vs unbounded", NewArray(Typ[Int], 3), NewArray(Typ[Int], Unbounded), false},
		{"pointers", NewPointer(Typ[Int]), NewPointer(Typ[Int]), true},
		{"reference kinds", NewReference(LValueRef, Typ[Int]), NewReference(RValueRef, Typ[Int]), false},
		{"qualifiers", Qualify(Typ[Int], Const), Qualify(Typ[Int], Const), true},
		{"qualified vs plain", Qualify(Typ[Int], Const), Typ[Int], false},
		{"funcs", NewFunc([]Type{Typ[Int]}, nil, false), NewFunc([]Type{Typ[Int]}, Typ[Void], false), true},
		{"variadic", NewFunc(nil, nil, false), NewFunc(nil, nil, true), false},
		{"same record", class, class, true},
		{"same-named records", class, other, false},
		{"instances", p1, p2, true},
		{"instance argument order", p1, p3, false},
		{"member pointers", NewMemberPointer(class, Typ[Int]), NewMemberPointer(class, Typ[Int]), true},
		{"member pointer classes", NewMemberPointer(class, Typ[Int]), NewMemberPointer(other, Typ[Int]), false},
		{"nil", Typ[Int], nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identical(tt.x, tt.y); got != tt.want {
				t.Errorf("Identical(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
			if tt.y == nil {
				return
			}
			// Key agrees with Identical.
			if got := Key(tt.x) == Key(tt.y); got != tt.want {
				t.Errorf("Key(%v) == Key(%v) is %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestQualifierPredicates(t *testing.T) {
	tests := []struct {
		typ           Type
		isConst, isVo bool
	}{
		{Typ[Int], false, false},
		{Qualify(Typ[Int], Const), true, false},
		{Qualify(Typ[Int], Volatile), false, true},
		{Qualify(Typ[Int], Const|Volatile), true, true},
		{Qualify(NewArray(Typ[Int], 2), Const), true, false},
		{NewPointer(Qualify(Typ[Int], Const)), false, false},
		{NewReference(LValueRef, Qualify(Typ[Int], Const)), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := IsConst(tt.typ); got != tt.isConst {
				t.Errorf("IsConst(%s) = %v, want %v", tt.typ, got, tt.isConst)
			}
			if got := IsVolatile(tt.typ); got != tt.isVo {
				t.Errorf("IsVolatile(%s) = %v, want %v", tt.typ, got, tt.isVo)
			}
		})
	}
}

func TestIsPointer(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{NewPointer(Typ[Int]), true},
		{Qualify(NewPointer(Typ[Int]), Const), true},
		{Typ[Int], false},
		{NewReference(LValueRef, NewPointer(Typ[Int])), false},
		{NewArray(Typ[Int], 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := IsPointer(tt.typ); got != tt.want {
				t.Errorf("IsPointer(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestIsArithmeticType(t *testing.T) {
	if !IsArithmeticType(Typ[Bool]) || !IsArithmeticType(Qualify(Typ[Double], Const)) {
		t.Error("bool and const double are arithmetic")
	}
	if IsArithmeticType(Typ[NullPtr]) || IsArithmeticType(NewEnum(nil, Typ[Int])) {
		t.Error("nullptr_t and enums are not arithmetic")
	}
}

func TestIsVoidAndIntegralType(t *testing.T) {
	if !IsVoidType(Typ[Void]) || !IsVoidType(Qualify(Typ[Void], Const|Volatile)) {
		t.Error("void and cv void are void")
	}
	if IsVoidType(NewPointer(Typ[Void])) {
		t.Error("*void is not void")
	}
	if !IsIntegralType(Typ[Bool]) || !IsIntegralType(Qualify(Typ[UChar], Const)) {
		t.Error("bool and const unsigned char are integral")
	}
	if IsIntegralType(Typ[Float]) || IsIntegralType(NewEnum(nil, Typ[Int])) {
		t.Error("float and enums are not integral")
	}
	// the BasicInfo bits agree with the predicates
	if Typ[Void].Info()&IsVoid == 0 || Typ[Int].Info()&IsIntegral == 0 || Typ[Double].Info()&IsArithmetic == 0 {
		t.Error("basic info bits disagree with the predicates")
	}
}
