package lux

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the runtime variant of a Value.
type Kind int

const (
	KindNil Kind = iota
	KindNumber
	KindBoolean
	KindString
	KindCallable
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "Nil"
	case KindNumber:
		return "Number"
	case KindBoolean:
		return "Boolean"
	case KindString:
		return "String"
	case KindCallable:
		return "Callable"
	}
	return "Unknown"
}

// Value is the only runtime representation. Literal nodes hold one and every
// expression evaluates to one.
type Value interface {
	Kind() Kind
}

type (
	Number   float64
	Boolean  bool
	String   string
	NilValue struct{}
)

// Nil is the single Nil value.
var Nil Value = NilValue{}

func (Number) Kind() Kind   { return KindNumber }
func (Boolean) Kind() Kind  { return KindBoolean }
func (String) Kind() Kind   { return KindString }
func (NilValue) Kind() Kind { return KindNil }

var (
	_ Value = Number(0)
	_ Value = Boolean(false)
	_ Value = String("")
	_ Value = NilValue{}
)

// kindOf tolerates a nil interface, which only appears when a host binding misbehaves.
func kindOf(v Value) Kind {
	if v == nil {
		return KindNil
	}
	return v.Kind()
}

func formatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Display renders the user-visible form used by print and string concatenation.
func Display(v Value) string {
	switch t := v.(type) {
	case nil, NilValue:
		return "NIL"
	case Number:
		return formatNumber(float64(t))
	case Boolean:
		if t {
			return "true"
		}
		return "false"
	case String:
		return string(t)
	case Callable:
		return t.String()
	}
	return "<unknown>"
}

// quoteString produces a string literal the scanner reads back to the same text.
func quoteString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// valuesEqual compares same-variant values structurally. ok is false when the
// variants differ, which callers report as a type mismatch.
func valuesEqual(a, b Value) (equal bool, ok bool) {
	if kindOf(a) != kindOf(b) {
		return false, false
	}
	switch l := a.(type) {
	case nil, NilValue:
		return true, true
	case Number:
		return l == b.(Number), true
	case Boolean:
		return l == b.(Boolean), true
	case String:
		return l == b.(String), true
	case Callable:
		return sameCallable(l, b.(Callable)), true
	}
	return false, false
}

func sameCallable(a, b Callable) bool {
	switch l := a.(type) {
	case *Function:
		r, ok := b.(*Function)
		return ok && l.Declaration == r.Declaration
	case *Native:
		r, ok := b.(*Native)
		return ok && l.Name == r.Name
	}
	return a == b
}
