package syntax

import "io"

// Maximum number of errors before aborting parse.
const maxErrors = 10

// SyntaxError is a lexical or syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser builds a syntax tree from a stag script.
type Parser struct {
	scanner *Scanner

	tok Token
	lit string
	pos Pos

	errh   func(pos Pos, msg string)
	errcnt int
	first  error
	abort  bool
}

// NewParser returns a parser over src. Every lexical and syntax error is
// passed to errh, which may be nil.
func NewParser(filename string, src io.Reader, errh func(pos Pos, msg string)) *Parser {
	p := &Parser{errh: errh}
	scanErrh := func(line, col uint32, msg string) {
		p.syntaxErrorAt(NewPos(filename, line, col), msg)
	}
	p.scanner = NewScanner(filename, src, scanErrh)
	p.next()
	return p
}

// Parse parses src and returns the file with the first error, if any.
func Parse(filename string, src io.Reader, errh func(pos Pos, msg string)) (*File, error) {
	p := NewParser(filename, src, errh)
	f := p.Parse()
	return f, p.FirstError()
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) next() {
	p.scanner.Next()
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.pos = p.scanner.Pos()
}

// got consumes the current token if it is tok.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes tok or reports an error and skips to a sync point.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError("expected " + tok.String() + ", found " + p.describe())
		p.advance()
	}
}

// describe names the current token for error messages.
func (p *Parser) describe() string {
	switch p.tok {
	case _Name:
		return "name " + p.lit
	case _Literal:
		return "literal " + p.lit
	case _Semi:
		if p.lit == "newline" || p.lit == "EOF" {
			return p.lit
		}
	}
	return p.tok.String()
}

// ----------------------------------------------------------------------------
// Error handling

func (p *Parser) syntaxError(msg string) {
	p.syntaxErrorAt(p.pos, msg)
}

func (p *Parser) syntaxErrorAt(pos Pos, msg string) {
	if p.abort {
		return
	}
	if p.errcnt == 0 {
		p.first = &SyntaxError{Pos: pos, Msg: msg}
	}
	p.errcnt++

	if p.errh != nil {
		p.errh(pos, msg)
	}

	if p.errcnt >= maxErrors {
		p.abort = true
		if p.errh != nil {
			p.errh(pos, "too many errors; aborting parse")
		}
		p.tok = _EOF
	}
}

// advance skips to the next statement boundary or closing delimiter.
func (p *Parser) advance() {
	for p.tok != _EOF {
		switch p.tok {
		case _Semi, _Rparen, _Rbrack, _Rbrace:
			p.next()
			return
		}
		p.next()
	}
}

// Errors returns the number of errors reported.
func (p *Parser) Errors() int {
	return p.errcnt
}

// FirstError returns the first error reported, or nil.
func (p *Parser) FirstError() error {
	return p.first
}

// ----------------------------------------------------------------------------
// Statements

// Parse parses the whole script.
func (p *Parser) Parse() *File {
	f := &File{}
	f.pos = p.pos
	for !p.abort && p.tok != _EOF {
		f.Stmts = append(f.Stmts, p.stmt())
	}
	return f
}

func (p *Parser) stmt() Stmt {
	if p.tok == _Semi {
		s := &EmptyStmt{}
		s.pos = p.pos
		p.next()
		return s
	}

	pos := p.pos
	x := p.expr()

	var s Stmt
	if p.tok == _Define {
		p.next()
		a := &AssignStmt{Rhs: p.expr()}
		a.pos = pos
		if n, ok := x.(*Name); ok {
			a.Lhs = n
		} else {
			p.syntaxErrorAt(pos, "cannot define non-name "+String(x))
			a.Lhs = &Name{Value: "_"}
			a.Lhs.pos = pos
		}
		s = a
	} else {
		e := &ExprStmt{X: x}
		e.pos = pos
		s = e
	}

	if p.tok != _EOF {
		p.want(_Semi)
	}
	return s
}

// ----------------------------------------------------------------------------
// Expressions

func (p *Parser) expr() Expr {
	return p.binaryExpr(0)
}

// binaryExpr parses operators binding tighter than prec by precedence
// climbing; operators at one level associate to the left.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()
	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}
		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()
		p.next()
		op.Y = p.binaryExpr(oprec)
		x = op
	}
}

func (p *Parser) unaryExpr() Expr {
	switch p.tok {
	case _Not, _Sub, _Add, _Xor, _Tilde:
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.unaryExpr()
		return op
	}
	return p.primaryExpr()
}

func (p *Parser) primaryExpr() Expr {
	x := p.operand()
	for {
		switch p.tok {
		case _Lparen:
			x = p.callExpr(x)
		case _Lbrack:
			x = p.indexExpr(x)
		default:
			return x
		}
	}
}

func (p *Parser) operand() Expr {
	switch p.tok {
	case _Name:
		return p.name()

	case _Literal:
		lit := &BasicLit{Value: p.lit}
		lit.pos = p.pos
		p.next()
		return lit

	case _Lparen:
		pos := p.pos
		p.next()
		x := p.expr()
		p.want(_Rparen)
		paren := &ParenExpr{X: x}
		paren.pos = pos
		return paren

	case _Tag:
		t := &TagExpr{}
		t.pos = p.pos
		p.next()
		p.want(_Lparen)
		t.Type = p.type_()
		p.want(_Rparen)
		return t
	}

	p.syntaxError("expected operand, found " + p.describe())
	n := &Name{Value: "_"}
	n.pos = p.pos
	p.advance()
	return n
}

func (p *Parser) callExpr(fun Expr) Expr {
	call := &CallExpr{Fun: fun}
	call.pos = fun.Pos()
	p.want(_Lparen)
	if p.tok != _Rparen {
		call.Args = p.exprList()
	}
	p.want(_Rparen)
	return call
}

func (p *Parser) indexExpr(x Expr) Expr {
	idx := &IndexExpr{X: x}
	idx.pos = x.Pos()
	p.want(_Lbrack)
	idx.Index = p.expr()
	p.want(_Rbrack)
	return idx
}

func (p *Parser) exprList() []Expr {
	list := []Expr{p.expr()}
	for p.got(_Comma) {
		list = append(list, p.expr())
	}
	return list
}

func (p *Parser) name() *Name {
	n := &Name{Value: p.lit}
	n.pos = p.pos
	if p.tok != _Name {
		p.syntaxError("expected name, found " + p.describe())
		n.Value = "_"
		return n
	}
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Type expressions

// startsType reports whether tok can begin a type expression.
func startsType(tok Token) bool {
	switch tok {
	case _Name, _Mul, _And, _AndAnd, _Const, _Volatile, _Lbrack,
		_Func, _Struct, _Union, _Enum, _Lparen:
		return true
	}
	return false
}

func (p *Parser) type_() Expr {
	pos := p.pos
	switch p.tok {
	case _Name:
		n := p.name()
		if p.tok == _Lss {
			return p.instanceType(n)
		}
		return n

	case _Mul:
		p.next()
		t := &PointerType{Base: p.type_()}
		t.pos = pos
		return t

	case _And, _AndAnd:
		t := &RefType{RValue: p.tok == _AndAnd}
		t.pos = pos
		p.next()
		t.Base = p.type_()
		return t

	case _Const, _Volatile:
		t := &QualType{}
		t.pos = pos
		for {
			if p.got(_Const) {
				t.Const = true
			} else if p.got(_Volatile) {
				t.Volatile = true
			} else {
				break
			}
		}
		t.Base = p.type_()
		return t

	case _Lbrack:
		t := &ArrayType{}
		t.pos = pos
		p.next()
		if p.tok != _Rbrack {
			t.Len = p.expr()
		}
		p.want(_Rbrack)
		t.Elem = p.type_()
		return t

	case _Func:
		return p.funcType()

	case _Struct, _Union:
		return p.recordType()

	case _Enum:
		t := &EnumType{}
		t.pos = pos
		p.next()
		t.Base = p.type_()
		return t

	case _Lparen:
		p.next()
		t := p.type_()
		p.want(_Rparen)
		return t
	}

	p.syntaxError("expected type, found " + p.describe())
	n := &Name{Value: "_"}
	n.pos = pos
	p.advance()
	return n
}

// instanceType parses the argument list of Name<Args...>.
func (p *Parser) instanceType(n *Name) Expr {
	t := &InstanceType{Name: n}
	t.pos = n.Pos()
	p.want(_Lss)
	if p.tok != _Gtr && p.tok != _Shr {
		t.Args = append(t.Args, p.type_())
		for p.got(_Comma) {
			t.Args = append(t.Args, p.type_())
		}
	}
	p.closeAngle()
	return t
}

// closeAngle consumes one '>'. A '>>' closing two nested argument lists
// is split, leaving the second '>' as the current token.
func (p *Parser) closeAngle() {
	switch p.tok {
	case _Gtr:
		p.next()
	case _Shr:
		p.tok = _Gtr
		p.lit = ">"
		p.pos = NewPos(p.pos.filename, p.pos.line, p.pos.col+1)
	default:
		p.syntaxError("expected >, found " + p.describe())
		p.advance()
	}
}

func (p *Parser) funcType() Expr {
	t := &FuncType{}
	t.pos = p.pos
	p.want(_Func)
	p.want(_Lparen)
	for p.tok != _Rparen && p.tok != _EOF {
		if p.got(_Ellipsis) {
			t.Variadic = true
			break
		}
		t.Params = append(t.Params, p.type_())
		if !p.got(_Comma) {
			break
		}
	}
	p.want(_Rparen)
	if startsType(p.tok) {
		t.Result = p.type_()
	}
	return t
}

func (p *Parser) recordType() Expr {
	t := &RecordType{Union: p.tok == _Union}
	t.pos = p.pos
	p.next()
	p.want(_Lbrace)
	for p.tok != _Rbrace && p.tok != _EOF {
		if p.got(_Semi) {
			continue
		}
		f := &Field{}
		f.pos = p.pos
		f.Name = p.name()
		f.Type = p.type_()
		t.Fields = append(t.Fields, f)
		if p.tok != _Rbrace {
			p.want(_Semi)
		}
	}
	p.want(_Rbrace)
	return t
}
