package eval

import (
	"errors"
	"strings"
	"testing"

	"github.com/you-not-fish/stag/internal/constant"
	"github.com/you-not-fish/stag/internal/literal"
	"github.com/you-not-fish/stag/internal/syntax"
	"github.com/you-not-fish/stag/internal/tag"
	"github.com/you-not-fish/stag/internal/types"
)

func evalScript(t *testing.T, conf *Config, src string) ([]Result, error) {
	t.Helper()
	f, err := syntax.Parse("test.stag", strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return Eval(f, conf, nil)
}

func TestEvalValues(t *testing.T) {
	tests := []struct {
		src  string
		want string
		kind string
	}{
		// constants
		{"200_c", "int16(200)", "constant"},
		{"0x1F_c", "int8(31)", "constant"},
		{"0b101_C", "int8(5)", "constant"},
		{"017_c", "int8(15)", "constant"},
		{"1_c + 2_c", "int32(3)", "constant"},
		{"-(1_c)", "int32(-1)", "constant"},
		{"~0_c", "int32(-1)", "constant"},
		{"!false_c", "true", "constant"},
		{"1_c < 2_c && 3_c != 4_c", "true", "constant"},
		{"none", "none", "constant"},
		{"none == none", "true", "constant"},
		{"none == 0_c", "false", "constant"},
		{"cast(300_c, uchar)", "uint8(44)", "constant"},
		{"cast(-1_c, tag(enum ushort))", "uint16(65535)", "constant"},

		// queries
		{"size(tag(int))", "uint64(4)", "constant"},
		{"size(long)", "uint64(8)", "constant"},
		{"size(tag(void))", "none", "constant"},
		{"size(tag([4]int))", "uint64(16)", "constant"},
		{"size(tag([]int))", "none", "constant"},
		{"size(tag(&long))", "uint64(8)", "constant"},
		{"size(tag(func(int)))", "none", "constant"},
		{"size(tag(pair<char, long>))", "uint64(16)", "constant"},
		{"size(tag(struct{a char; b int}))", "uint64(8)", "constant"},
		{"size(tag(union{a char; b long}))", "uint64(8)", "constant"},
		{"category(tag(int))", "integral_tag", "category"},
		{"category(tag(const double))", "floating_point_tag", "category"},
		{"category(tag(&int))", "lvalue_reference_tag", "category"},
		{"category(tag(&&int))", "rvalue_reference_tag", "category"},
		{"category(tag(struct{a int}))", "class_tag", "category"},
		{"category(tag(union{a int}))", "union_tag", "category"},
		{"category(tag(enum uchar))", "enum_tag", "category"},
		{"category(tag(tuple<int>))", "class_tag", "category"},
		{"category(nullptr_t)", "nullptr_tag", "category"},
		{"category(tag(func()))", "function_tag", "category"},
		{"category(tag(*void))", "pointer_tag", "category"},
		{"category(tag(int)) == integral_tag", "true", "constant"},
		{"underlying_type(tag(enum ushort))", "unsigned short", "tag"},
		{"underlying_type(int)", "nonsuch", "tag"},
		{"return_type(tag(func(int) *char))", "*char", "tag"},
		{"return_type(int)", "nonsuch", "tag"},
		{"param_types(tag(func(int, char)))", "list<int, char>", "list"},
		{"is_const(tag(const int))", "true", "constant"},
		{"is_const(tag(*const int))", "false", "constant"},
		{"is_volatile(tag(volatile int))", "true", "constant"},
		{"is_reference(tag(&&int))", "true", "constant"},

		// operators
		{"tag(int) + lvalue_reference_tag", "&int", "tag"},
		{"tag(&int) + rvalue_reference_tag", "&int", "tag"},
		{"tag(&&int) + rvalue_reference_tag", "&&int", "tag"},
		{"tag(&&int) - reference_tag", "int", "tag"},
		{"tag(&int) - lvalue_reference_tag", "int", "tag"},
		{"int - reference_tag", "int", "tag"},
		{"int + const_qualifier_tag", "const int", "tag"},
		{"tag(const int) - const_qualifier_tag", "int", "tag"},
		{"int + volatile_qualifier_tag", "volatile int", "tag"},
		{"int + pointer_tag", "*int", "tag"},
		{"tag(*int) - pointer_tag", "int", "tag"},
		{"tag(&int) + pointer_tag", "*int", "tag"},
		{"int + pointer_tag == tag(*int)", "true", "constant"},
		{"int != char", "true", "constant"},
		{"nonsuch == nonsuch", "true", "constant"},

		// lists
		{"list(int, char)", "list<int, char>", "list"},
		{"list()", "list<>", "list"},
		{"len(list(int, char))", "uint64(2)", "constant"},
		{"reverse(list(int, char, long))", "list<long, char, int>", "list"},
		{"list(int) + char", "list<int, char>", "list"},
		{"int + list(char)", "list<int, char>", "list"},
		{"list(int) + list(char, long)", "list<int, char, long>", "list"},
		{"list(int, char, int) - int", "list<char, int>", "list"},
		{"list(int, char) - long", "list<int, char>", "list"},
		{"list(int, char)[1_c]", "char", "tag"},
		{"first(list(long, int))", "long", "tag"},
		{"first(list())", "nonsuch", "tag"},
		{"rest(list(long, int))", "list<int>", "list"},
		{"contains(list(long, int), int)", "true", "constant"},
		{"list(int, char) == list(int, char)", "true", "constant"},
		{"list(int, char) == list(char, int)", "false", "constant"},
		{"count(int, char, long)", "uint64(3)", "constant"},
		{"count()", "uint64(0)", "constant"},

		// select and partial types
		{"select(true_c, int, char)", "int", "tag"},
		{"select(1_c < 2_c, 10_c, 20_c)", "int8(10)", "constant"},
		{"select(false_c, list(int), list())", "list<>", "list"},
		{"pair", "partial<pair<2>>", "partial"},
		{"tuple", "partial<tuple<...>>", "partial"},
		{"combine(pair, int, char)", "pair<int, char>", "tag"},
		{"combine(pair, list(int, char)) == tag(pair<int, char>)", "true", "constant"},
		{"combine(tuple, list())", "tuple<>", "tag"},
		{"partial(tag(pair<int, char>)) == pair", "true", "constant"},
		{"partial(pair) == tuple", "false", "constant"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v, err := EvalString(tt.src)
			if err != nil {
				t.Fatalf("EvalString(%q): %v", tt.src, err)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("EvalString(%q) = %s, want %s", tt.src, got, tt.want)
			}
			if got := KindOf(v); got != tt.kind {
				t.Errorf("KindOf = %s, want %s", got, tt.kind)
			}
		})
	}
}

func TestEvalTagIdentity(t *testing.T) {
	v, err := EvalString("tag(const *int)")
	if err != nil {
		t.Fatal(err)
	}
	want := tag.FromType(types.Qualify(types.NewPointer(types.Typ[types.Int]), types.Const))
	if got := v.(Type).Tag; got != want {
		t.Errorf("tag(const *int) = %s, want %s", got, want)
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		src    string
		pos    string
		msg    string // substring of the message
		target error  // wrapped error, if any
	}{
		{"1_c / 0_c", "1:1", "division by zero", constant.ErrDivisionByZero},
		{"0x7FFFFFFF_c + 1_c", "1:1", "overflow", constant.ErrOverflow},
		{"1_c << 40_c", "1:1", "shift count", constant.ErrShiftCount},
		{"none + 1_c", "1:1", "no value", constant.ErrNone},
		{"9223372036854775808_c", "1:1", "overflows int64", literal.ErrRange},
		{"tag(void) + lvalue_reference_tag", "1:1", "reference to void", tag.ErrVoidReference},
		{"tag(&void)", "1:5", "reference to void", tag.ErrVoidReference},
		{"tag(&int) - rvalue_reference_tag", "1:1", "reference kind mismatch", tag.ErrReferenceKind},
		{"int - pointer_tag", "1:1", "not a pointer", tag.ErrNotPointer},
		{"list(int)[1_c]", "1:1", "out of range", tag.ErrIndex},
		{"combine(pair, int)", "1:1", "wrong number of template arguments", types.ErrArity},
		{"tag(pair<int>)", "1:5", "wrong number of template arguments", types.ErrArity},
		{"combine(pair, nonsuch, int)", "1:1", "nonsuch template argument", tag.ErrNonSuch},

		{"08_c", "1:1", "invalid octal digit", nil},
		{"42", "1:1", "integer literal 42 must carry the _c suffix", nil},
		{"foo", "1:1", "undefined: foo", nil},
		{"size", "1:1", "size must be called", nil},
		{"int(1_c)", "1:1", "cannot call non-function int (tag)", nil},
		{"size(nonsuch)", "1:6", "size of nonsuch", nil},
		{"size(int, char)", "1:1", "size expects 1 argument, got 2", nil},
		{"size(1_c)", "1:6", "size argument 1 is int8(1) (constant), want tag", nil},
		{"len(int)", "1:5", "len argument 1 is int (tag), want list", nil},
		{"param_types(int)", "1:13", "param_types of non-function int", nil},
		{"int == 1_c", "1:1", "mismatched kinds tag and constant", nil},
		{"list(int) == int", "1:1", "mismatched kinds list and tag", nil},
		{"int + class_tag", "1:1", "class_tag is not an operator marker", nil},
		{"int + reference_tag", "1:1", "cannot add reference_tag", nil},
		{"nonsuch + pointer_tag", "1:1", "+ on nonsuch", nil},
		{"-int", "1:1", "operator - not defined on int (tag)", nil},
		{"int * char", "1:1", "invalid operation: int * char", nil},
		{"int[0_c]", "1:1", "cannot index int (tag)", nil},
		{"list(int)[int]", "1:11", "list index int is not a constant", nil},
		{"select(1_c, int, char)", "1:8", "select condition int8(1) is not a boolean", nil},
		{"partial(int)", "1:9", "int is not a template instance", nil},
		{"cast(1_c, tag(*int))", "1:11", "cannot cast to *int", nil},
		{"x := size", "1:6", "cannot bind builtin size", nil},
		{"x := int; x := char", "1:11", "x redeclared", nil},

		{"tag([]void)", "1:7", "invalid array element type void", nil},
		{"tag([2][]int)", "1:8", "unknown bound", nil},
		{"tag([int]char)", "1:6", "array length int (tag) is not a constant", nil},
		{"tag(enum float)", "1:10", "invalid enum base float", nil},
		{"tag(enum bool)", "1:10", "invalid enum base bool", nil},
		{"tag(struct{a void})", "1:14", "field a has incomplete type void", nil},
		{"tag(struct{a int; a char})", "1:19", "duplicate field a", nil},
		{"tag([0x2000000000000001]long)", "1:5", "array too large", nil},
		{"tag([0x100000000][0x100000000]int)", "1:5", "array too large", nil},
		{"tag(struct{a [0x4000000000000000]char; b [0x4000000000000000]char})", "1:5", "struct too large", nil},
		{"tag(union{a [2][0x4000000000000000]char})", "1:13", "array too large", nil},
		{"tag(pair<[0x4000000000000000]char, [0x4000000000000000]char>)", "1:5", "type pair<[4611686018427387904]char, [4611686018427387904]char> too large", nil},
		{"tag(func(void))", "1:10", "invalid parameter type void", nil},
		{"tag(func() [2]int)", "1:12", "invalid result type [2]int", nil},
		{"tag(pair)", "1:5", "template pair used without arguments", nil},
		{"tag(int<char>)", "1:5", "int is not a template", nil},
		{"tag(foo)", "1:5", "undefined type: foo", nil},
		{"x := 1_c; tag(*x)", "1:16", "x (constant) is not a type", nil},
		{"x := nonsuch; tag(x)", "1:19", "x is nonsuch, not a type", nil},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := evalScript(t, nil, tt.src)
			var ee *Error
			if !errors.As(err, &ee) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if got := ee.Pos.String(); got != "test.stag:"+tt.pos {
				t.Errorf("pos = %s, want test.stag:%s", got, tt.pos)
			}
			if !strings.Contains(ee.Msg, tt.msg) {
				t.Errorf("msg = %q, want it to contain %q", ee.Msg, tt.msg)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.target)
			}
		})
	}
}

func TestEvalBindings(t *testing.T) {
	src := `
T := tag(int)
P := pair
L := list(T, char)
size(tag(*T))
tag(P<T, char>) == combine(pair, L)
tag([size(T)]char)
`
	results, err := evalScript(t, nil, src)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		name, expr, value string
	}{
		{"T", "tag(int)", "int"},
		{"P", "pair", "partial<pair<2>>"},
		{"L", "list(T, char)", "list<int, char>"},
		{"", "size(tag(*T))", "uint64(8)"},
		{"", "tag(P<T, char>) == combine(pair, L)", "true"},
		{"", "tag([size(T)]char)", "[4]char"},
	}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, w := range want {
		r := results[i]
		if r.Name != w.name || r.Expr != w.expr || r.Value.String() != w.value {
			t.Errorf("result %d = {%q %q %s}, want {%q %q %s}", i, r.Name, r.Expr, r.Value, w.name, w.expr, w.value)
		}
	}
}

func TestEvalEnv(t *testing.T) {
	env := NewEnv()
	f, err := syntax.Parse("", strings.NewReader("b := int\na := list(b)"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Eval(f, nil, env); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(env.Names(), ","); got != "a,b" {
		t.Errorf("Names() = %s, want a,b", got)
	}
	if v, ok := env.Lookup("b"); !ok || v.String() != "int" {
		t.Errorf("Lookup(b) = %v, %v", v, ok)
	}
	if _, ok := env.Scope().Lookup("b").(*types.TypeName); !ok {
		t.Error("b is not declared as a type name")
	}
	if env.Scope().Lookup("a") != nil {
		t.Error("list binding a declared as a type name")
	}

	// a second script sees the earlier bindings
	f, _ = syntax.Parse("", strings.NewReader("size(tag(*b))"), nil)
	results, err := Eval(f, nil, env)
	if err != nil || len(results) != 1 || results[0].Value.String() != "uint64(8)" {
		t.Errorf("second script = %v, %v", results, err)
	}
}

func TestEvalErrorRecovery(t *testing.T) {
	src := `
x := foo
size(x)
1_c / 0_c
y := int
size(y)
`
	var msgs []string
	conf := &Config{Error: func(pos syntax.Pos, msg string) {
		msgs = append(msgs, pos.String()+": "+msg)
	}}
	results, err := evalScript(t, conf, src)
	if err == nil || !strings.Contains(err.Error(), "undefined: foo") {
		t.Fatalf("error = %v, want undefined: foo", err)
	}
	// the poisoned x does not report again
	if len(msgs) != 2 {
		t.Fatalf("handler saw %q, want 2 errors", msgs)
	}
	if len(results) != 2 || results[1].Value.String() != "uint64(4)" {
		t.Errorf("results = %v, want y and size(y)", results)
	}
}

func TestEvalLenient(t *testing.T) {
	if _, err := evalScript(t, nil, "1z2_c"); err == nil {
		t.Fatal("strict evaluation accepted 1z2_c")
	}
	results, err := evalScript(t, &Config{Lenient: true}, "1z2_c")
	if err != nil {
		t.Fatal(err)
	}
	if got := results[0].Value.String(); got != "int8(12)" {
		t.Errorf("lenient 1z2_c = %s, want int8(12)", got)
	}
}

func TestEvalCategoryPartition(t *testing.T) {
	srcs := []string{
		"void", "nullptr_t", "int", "double", "tag([3]int)", "tag(enum int)",
		"tag(union{a int})", "tag(struct{a int})", "tag(func())", "tag(*int)",
		"tag(&int)", "tag(&&int)",
	}
	for _, src := range srcs {
		v, err := EvalString("category(" + src + ")")
		if err != nil {
			t.Fatalf("category(%s): %v", src, err)
		}
		matches := 0
		for _, c := range types.Categories() {
			eq, err := EvalString("category(" + src + ") == " + c.String() + "_tag")
			if err != nil {
				t.Fatal(err)
			}
			if constant.Truth(eq.(Const).Val) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("%s (%s) matches %d categories, want 1", src, v, matches)
		}
	}
}
