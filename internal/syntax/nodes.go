package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// A script is a list of statements. Statements hold expressions, and the
// tag(...) expression holds a type expression. Type expressions are Expr
// nodes too, so that names and parenthesized forms share one shape.

// Node is the interface implemented by all syntax tree nodes.
type Node interface {
	Pos() Pos // position of the first character of the node
	aNode()
}

// Expr is implemented by expression and type expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	aStmt()
}

type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

type expr struct{ node }

func (*expr) aExpr() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Files

// File is a parsed script.
type File struct {
	node
	Stmts []Stmt
}

// ----------------------------------------------------------------------------
// Expressions

// Name is an identifier.
type Name struct {
	expr
	Value string
}

// BasicLit is an integer literal, kept as written: 42_c, 0x1F, 1'000.
type BasicLit struct {
	expr
	Value string
}

// Operation is a unary or binary operation. Y is nil for unary operations.
type Operation struct {
	expr
	Op Token
	X  Expr
	Y  Expr
}

// ParenExpr is a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr
}

// CallExpr is a builtin call: Fun(Args...)
type CallExpr struct {
	expr
	Fun  Expr
	Args []Expr
}

// IndexExpr is X[Index].
type IndexExpr struct {
	expr
	X     Expr
	Index Expr
}

// TagExpr lifts a type expression into a tag value: tag(Type)
type TagExpr struct {
	expr
	Type Expr
}

// ----------------------------------------------------------------------------
// Type expressions

// PointerType is *Base.
type PointerType struct {
	expr
	Base Expr
}

// RefType is &Base, or &&Base when RValue is set.
type RefType struct {
	expr
	RValue bool
	Base   Expr
}

// QualType is a cv-qualified type: const T, volatile T, const volatile T.
type QualType struct {
	expr
	Const    bool
	Volatile bool
	Base     Expr
}

// ArrayType is [Len]Elem, or []Elem when Len is nil.
type ArrayType struct {
	expr
	Len  Expr
	Elem Expr
}

// FuncType is func(Params...) Result. Result is nil for void.
type FuncType struct {
	expr
	Params   []Expr
	Variadic bool
	Result   Expr
}

// InstanceType names a template instance: Name<Args...>
type InstanceType struct {
	expr
	Name *Name
	Args []Expr
}

// RecordType is struct { Fields } or union { Fields }.
type RecordType struct {
	expr
	Union  bool
	Fields []*Field
}

// Field is a record member: Name Type
type Field struct {
	node
	Name *Name
	Type Expr
}

// EnumType is an anonymous enumeration over an integral base: enum Base
type EnumType struct {
	expr
	Base Expr
}

// ----------------------------------------------------------------------------
// Statements

// EmptyStmt is a lone semicolon.
type EmptyStmt struct {
	stmt
}

// ExprStmt is an expression whose value is reported.
type ExprStmt struct {
	stmt
	X Expr
}

// AssignStmt binds a name: Lhs := Rhs
type AssignStmt struct {
	stmt
	Lhs *Name
	Rhs Expr
}
