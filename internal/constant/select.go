package constant

import "github.com/kr/pretty"

// Select returns a if cond is true and b if it is false.
// Both arms are evaluated by the caller; only the result differs.
// cond must be a Bool constant.
func Select[T any](cond Value, a, b T) T {
	if cond.kind != Bool {
		panic("constant: select on non-boolean condition " + pretty.Sprint(cond))
	}
	if Truth(cond) {
		return a
	}
	return b
}
