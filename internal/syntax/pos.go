package syntax

import "fmt"

// Pos is a position in a script. The zero value is not a valid position.
type Pos struct {
	filename string
	line     uint32
	col      uint32
}

// NewPos returns the position at line and col of filename, both 1-based.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String formats p as "file:line:col", or "line:col" without a filename.
func (p Pos) String() string {
	if p.filename == "" {
		return fmt.Sprintf("%d:%d", p.line, p.col)
	}
	return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
}

// IsValid reports whether p refers to a line.
func (p Pos) IsValid() bool { return p.line > 0 }

func (p Pos) Line() uint32     { return p.line }
func (p Pos) Col() uint32      { return p.col }
func (p Pos) Filename() string { return p.filename }

// Before reports whether p comes strictly before q in the same file.
func (p Pos) Before(q Pos) bool {
	return p.line < q.line || p.line == q.line && p.col < q.col
}
