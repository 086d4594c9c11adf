package constant

import (
	"errors"
	"fmt"
	exact "go/constant"
	"go/token"
)

// Operator failures. Every error returned by the operators is an *OpError
// wrapping one of these.
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("constant overflow")
	ErrShiftCount     = errors.New("invalid shift count")
	ErrNone           = errors.New("operand has no value")
	ErrOperator       = errors.New("invalid operator")
)

// OpError describes a failed constant operation.
type OpError struct {
	Op    token.Token
	X, Y  Value
	Unary bool
	Err   error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Unary {
		return fmt.Sprintf("%s%s: %v", e.Op, e.X, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.X, e.Op, e.Y, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *OpError) Unwrap() error {
	return e.Err
}

var minusOne = exact.MakeInt64(-1)

func binaryErr(x Value, op token.Token, y Value, err error) error {
	return &OpError{Op: op, X: x, Y: y, Err: err}
}

func unaryErr(op token.Token, x Value, err error) error {
	return &OpError{Op: op, X: x, Unary: true, Err: err}
}

// UnaryOp returns the result of the unary operation op x.
// op is one of token.ADD, token.SUB, token.XOR (bitwise complement)
// or token.NOT (logical negation).
func UnaryOp(op token.Token, x Value) (Value, error) {
	if x.IsNone() {
		return None, unaryErr(op, x, ErrNone)
	}
	if op == token.NOT {
		return MakeBool(!Truth(x)), nil
	}

	k := promote(x.kind)
	v := wrap(k, x.val)
	switch op {
	case token.ADD:
		return Value{kind: k, val: v}, nil
	case token.SUB:
		z, ok := fit(k, exact.UnaryOp(token.SUB, v, 0))
		if !ok {
			return None, unaryErr(op, x, ErrOverflow)
		}
		return Value{kind: k, val: z}, nil
	case token.XOR:
		return Value{kind: k, val: wrap(k, exact.UnaryOp(token.XOR, v, 0))}, nil
	}
	return None, unaryErr(op, x, ErrOperator)
}

// BinaryOp returns the result of x op y.
// Arithmetic and bitwise operators convert both operands to their common
// kind first; shifts take the promoted kind of x; logical operators and
// comparisons yield Bool.
func BinaryOp(x Value, op token.Token, y Value) (Value, error) {
	switch op {
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		return Compare(x, op, y)
	}
	if x.IsNone() || y.IsNone() {
		return None, binaryErr(x, op, y, ErrNone)
	}

	switch op {
	case token.LAND:
		return MakeBool(Truth(x) && Truth(y)), nil
	case token.LOR:
		return MakeBool(Truth(x) || Truth(y)), nil
	case token.SHL, token.SHR:
		return shift(x, op, y)
	}

	k := arith(x.kind, y.kind)
	a, b := wrap(k, x.val), wrap(k, y.val)

	var z exact.Value
	switch op {
	case token.ADD, token.SUB, token.MUL, token.AND, token.OR, token.XOR:
		z = exact.BinaryOp(a, op, b)
	case token.QUO, token.REM:
		if exact.Sign(b) == 0 {
			return None, binaryErr(x, op, y, ErrDivisionByZero)
		}
		switch {
		case op == token.REM:
			z = exact.BinaryOp(a, token.REM, b)
		case exact.Compare(b, token.EQL, minusOne):
			// the int64 fast path of QUO_ASSIGN wraps min / -1
			z = exact.UnaryOp(token.SUB, a, 0)
		default:
			z = exact.BinaryOp(a, token.QUO_ASSIGN, b) // truncated integer division
		}
	default:
		return None, binaryErr(x, op, y, ErrOperator)
	}

	z, ok := fit(k, z)
	if !ok {
		return None, binaryErr(x, op, y, ErrOverflow)
	}
	return Value{kind: k, val: z}, nil
}

// Compare returns the Bool result of x op y, after converting both
// operands to their common kind. None compares equal only to None;
// ordering None is an error.
func Compare(x Value, op token.Token, y Value) (Value, error) {
	switch op {
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
	default:
		return None, binaryErr(x, op, y, ErrOperator)
	}
	if x.IsNone() || y.IsNone() {
		switch op {
		case token.EQL:
			return MakeBool(x.IsNone() && y.IsNone()), nil
		case token.NEQ:
			return MakeBool(!(x.IsNone() && y.IsNone())), nil
		}
		return None, binaryErr(x, op, y, ErrNone)
	}
	k := arith(x.kind, y.kind)
	return MakeBool(exact.Compare(wrap(k, x.val), op, wrap(k, y.val))), nil
}

// Equal reports whether x == y holds, with None equal only to None.
func Equal(x, y Value) bool {
	v, _ := Compare(x, token.EQL, y)
	return Truth(v)
}

func shift(x Value, op token.Token, y Value) (Value, error) {
	k := promote(x.kind)
	a := wrap(k, x.val)
	n, ok := exact.Int64Val(y.val)
	if !ok || n < 0 || n >= int64(k.Bits()) {
		return None, binaryErr(x, op, y, ErrShiftCount)
	}
	var z exact.Value
	if op == token.SHL {
		// bits shifted out of the width are discarded
		z = wrap(k, exact.Shift(a, token.SHL, uint(n)))
	} else {
		z = exact.Shift(a, token.SHR, uint(n))
	}
	return Value{kind: k, val: z}, nil
}

// fit maps an exact result into kind k: unsigned kinds wrap modulo 2^n,
// signed kinds must hold the result unchanged.
func fit(k Kind, v exact.Value) (exact.Value, bool) {
	if k.IsUnsigned() {
		return wrap(k, v), true
	}
	return v, k.Representable(v)
}

// Named forms of the operators.

func Add(x, y Value) (Value, error) { return BinaryOp(x, token.ADD, y) }
func Sub(x, y Value) (Value, error) { return BinaryOp(x, token.SUB, y) }
func Mul(x, y Value) (Value, error) { return BinaryOp(x, token.MUL, y) }
func Quo(x, y Value) (Value, error) { return BinaryOp(x, token.QUO, y) }
func Rem(x, y Value) (Value, error) { return BinaryOp(x, token.REM, y) }
func And(x, y Value) (Value, error) { return BinaryOp(x, token.AND, y) }
func Or(x, y Value) (Value, error)  { return BinaryOp(x, token.OR, y) }
func Xor(x, y Value) (Value, error) { return BinaryOp(x, token.XOR, y) }
func Shl(x, y Value) (Value, error) { return BinaryOp(x, token.SHL, y) }
func Shr(x, y Value) (Value, error) { return BinaryOp(x, token.SHR, y) }

func LogicalAnd(x, y Value) (Value, error) { return BinaryOp(x, token.LAND, y) }
func LogicalOr(x, y Value) (Value, error)  { return BinaryOp(x, token.LOR, y) }

func Plus(x Value) (Value, error)       { return UnaryOp(token.ADD, x) }
func Neg(x Value) (Value, error)        { return UnaryOp(token.SUB, x) }
func Complement(x Value) (Value, error) { return UnaryOp(token.XOR, x) }
func Not(x Value) (Value, error)        { return UnaryOp(token.NOT, x) }

func Eql(x, y Value) (Value, error) { return Compare(x, token.EQL, y) }
func Neq(x, y Value) (Value, error) { return Compare(x, token.NEQ, y) }
func Lss(x, y Value) (Value, error) { return Compare(x, token.LSS, y) }
func Leq(x, y Value) (Value, error) { return Compare(x, token.LEQ, y) }
func Gtr(x, y Value) (Value, error) { return Compare(x, token.GTR, y) }
func Geq(x, y Value) (Value, error) { return Compare(x, token.GEQ, y) }
