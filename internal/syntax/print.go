package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented dump of the tree rooted at node to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// child prints node one level deeper, under an optional label.
func (p *printer) child(label string, node Node) {
	p.indent++
	if label != "" {
		p.printf("%s:\n", label)
		p.indent++
		p.print(node)
		p.indent--
	} else {
		p.print(node)
	}
	p.indent--
}

func (p *printer) print(node Node) {
	switch n := node.(type) {
	case nil:
		return

	case *File:
		p.printf("File %s\n", n.pos)
		for _, s := range n.Stmts {
			p.child("", s)
		}

	case *EmptyStmt:
		p.printf("EmptyStmt %s\n", n.pos)

	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.child("", n.X)

	case *AssignStmt:
		p.printf("AssignStmt %s %q\n", n.pos, n.Lhs.Value)
		p.child("", n.Rhs)

	case *Name:
		p.printf("Name %s %q\n", n.pos, n.Value)

	case *BasicLit:
		p.printf("BasicLit %s %q\n", n.pos, n.Value)

	case *Operation:
		if n.Y == nil {
			p.printf("UnaryOp %s %s\n", n.pos, n.Op)
			p.child("", n.X)
			return
		}
		p.printf("BinaryOp %s %s\n", n.pos, n.Op)
		p.child("X", n.X)
		p.child("Y", n.Y)

	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.pos)
		p.child("", n.X)

	case *CallExpr:
		p.printf("CallExpr %s\n", n.pos)
		p.child("Fun", n.Fun)
		for _, a := range n.Args {
			p.child("Arg", a)
		}

	case *IndexExpr:
		p.printf("IndexExpr %s\n", n.pos)
		p.child("X", n.X)
		p.child("Index", n.Index)

	case *TagExpr:
		p.printf("TagExpr %s %s\n", n.pos, String(n.Type))

	default:
		// type expressions print on one line
		p.printf("Type %s %s\n", n.Pos(), String(n))
	}
}

// String formats an expression or type expression in source form.
func String(x Node) string {
	var b strings.Builder
	writeNode(&b, x)
	return b.String()
}

func writeNode(b *strings.Builder, x Node) {
	switch n := x.(type) {
	case nil:
		b.WriteString("<nil>")

	case *Name:
		b.WriteString(n.Value)

	case *BasicLit:
		b.WriteString(n.Value)

	case *Operation:
		if n.Y == nil {
			b.WriteString(n.Op.String())
			writeNode(b, n.X)
			return
		}
		writeNode(b, n.X)
		b.WriteString(" " + n.Op.String() + " ")
		writeNode(b, n.Y)

	case *ParenExpr:
		b.WriteByte('(')
		writeNode(b, n.X)
		b.WriteByte(')')

	case *CallExpr:
		writeNode(b, n.Fun)
		b.WriteByte('(')
		writeList(b, n.Args)
		b.WriteByte(')')

	case *IndexExpr:
		writeNode(b, n.X)
		b.WriteByte('[')
		writeNode(b, n.Index)
		b.WriteByte(']')

	case *TagExpr:
		b.WriteString("tag(")
		writeNode(b, n.Type)
		b.WriteByte(')')

	case *PointerType:
		b.WriteByte('*')
		writeNode(b, n.Base)

	case *RefType:
		if n.RValue {
			b.WriteString("&&")
		} else {
			b.WriteByte('&')
		}
		writeNode(b, n.Base)

	case *QualType:
		if n.Const {
			b.WriteString("const ")
		}
		if n.Volatile {
			b.WriteString("volatile ")
		}
		writeNode(b, n.Base)

	case *ArrayType:
		b.WriteByte('[')
		if n.Len != nil {
			writeNode(b, n.Len)
		}
		b.WriteByte(']')
		writeNode(b, n.Elem)

	case *FuncType:
		b.WriteString("func(")
		writeList(b, n.Params)
		if n.Variadic {
			if len(n.Params) > 0 {
				b.WriteString(", ")
			}
			b.WriteString("...")
		}
		b.WriteByte(')')
		if n.Result != nil {
			b.WriteByte(' ')
			writeNode(b, n.Result)
		}

	case *InstanceType:
		writeNode(b, n.Name)
		b.WriteByte('<')
		writeList(b, n.Args)
		b.WriteByte('>')

	case *RecordType:
		if n.Union {
			b.WriteString("union{")
		} else {
			b.WriteString("struct{")
		}
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteString("; ")
			}
			writeNode(b, f.Name)
			b.WriteByte(' ')
			writeNode(b, f.Type)
		}
		b.WriteByte('}')

	case *EnumType:
		b.WriteString("enum ")
		writeNode(b, n.Base)

	default:
		fmt.Fprintf(b, "%T", x)
	}
}

func writeList(b *strings.Builder, list []Expr) {
	for i, x := range list {
		if i > 0 {
			b.WriteString(", ")
		}
		writeNode(b, x)
	}
}
