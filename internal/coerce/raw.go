package coerce

import (
	"strings"
	"time"
)

// Kind discriminates the shapes a raw source scalar can take.
type Kind int

const (
	KindNil Kind = iota
	KindString
	KindNumber
	KindTime
)

// Raw is a loosely-typed source scalar as it appears in spreadsheet cells or
// JSON-decoded extraction output. It is consumed exactly once by coercion and
// never mutated.
type Raw struct {
	kind Kind
	str  string
	num  float64
	t    time.Time
}

func Nil() Raw             { return Raw{kind: KindNil} }
func String(s string) Raw  { return Raw{kind: KindString, str: s} }
func Number(f float64) Raw { return Raw{kind: KindNumber, num: f} }
func Time(t time.Time) Raw { return Raw{kind: KindTime, t: t} }

// FromAny adapts a value produced by encoding/json or another dynamic source.
// Unrepresentable shapes (objects, arrays) collapse to nil.
func FromAny(v any) Raw {
	switch t := v.(type) {
	case nil:
		return Nil()
	case string:
		return String(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case bool:
		if t {
			return String("true")
		}
		return String("false")
	case time.Time:
		return Time(t)
	default:
		return Nil()
	}
}

func (r Raw) Kind() Kind { return r.kind }

// IsNil reports whether the value is missing: an explicit nil or a string
// that is empty after trimming.
func (r Raw) IsNil() bool {
	if r.kind == KindNil {
		return true
	}
	return r.kind == KindString && strings.TrimSpace(r.str) == ""
}
