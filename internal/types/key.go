package types

import (
	"strconv"
	"strings"
)

// Key returns a string that is equal for two types exactly when they are
// Identical. It is used to intern types.
func Key(t Type) string {
	var sb strings.Builder
	writeKey(&sb, t)
	return sb.String()
}

func writeKey(sb *strings.Builder, t Type) {
	switch t := t.(type) {
	case nil:
		sb.WriteString("?")
	case *Basic:
		sb.WriteString("B")
		sb.WriteString(strconv.Itoa(int(t.kind)))
	case *Array:
		sb.WriteString("[")
		if t.len != Unbounded {
			sb.WriteString(strconv.FormatInt(t.len, 10))
		}
		sb.WriteString("]")
		writeKey(sb, t.elem)
	case *Pointer:
		sb.WriteString("*")
		writeKey(sb, t.base)
	case *Reference:
		if t.kind == RValueRef {
			sb.WriteString("&&")
		} else {
			sb.WriteString("&")
		}
		writeKey(sb, t.base)
	case *Func:
		sb.WriteString("F(")
		writeKeys(sb, t.params)
		if t.variadic {
			sb.WriteString("...")
		}
		sb.WriteString(")")
		writeKey(sb, t.result)
	case *MemberPointer:
		sb.WriteString("M(")
		writeKey(sb, t.class)
		sb.WriteString(")")
		writeKey(sb, t.elem)
	case *Qualified:
		sb.WriteString("Q")
		sb.WriteString(strconv.Itoa(int(t.quals)))
		sb.WriteString("(")
		writeKey(sb, t.base)
		sb.WriteString(")")
	case *Enum:
		sb.WriteString("E#")
		sb.WriteString(strconv.FormatUint(t.serial, 10))
	case *Record:
		sb.WriteString("R#")
		sb.WriteString(strconv.FormatUint(t.serial, 10))
	case *Instance:
		sb.WriteString("I#")
		sb.WriteString(strconv.FormatUint(t.tmpl.serial, 10))
		sb.WriteString("<")
		writeKeys(sb, t.args)
		sb.WriteString(">")
	}
}

func writeKeys(sb *strings.Builder, ts []Type) {
	for i, t := range ts {
		if i > 0 {
			sb.WriteString(",")
		}
		writeKey(sb, t)
	}
}
