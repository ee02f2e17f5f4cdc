// Package value defines the dynamically typed values that template
// bindings carry. A Value is a tagged variant over the handful of
// shapes form data can take: text, numbers, booleans, timestamps,
// lists, and nested records. The zero Value is Undefined, which is
// distinct from an explicit Null binding.
package value

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the shape a Value holds.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindText
	KindDate
	KindList
	KindRecord
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindDate:
		return "date"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Value is a single binding value. Values are immutable once built;
// the accessors return zero values when asked for a shape the Value
// does not hold.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	t    time.Time
	list []Value
	rec  map[string]Value
}

// Undefined is the absent value. It is what lookups return for names
// that were never bound.
var Undefined = Value{}

// Null returns an explicit null binding. A Null value is present but
// carries nothing, which matters for bare presence checks.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Text returns a string Value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Date returns a timestamp Value.
func Date(t time.Time) Value { return Value{kind: KindDate, t: t} }

// List returns a list Value over the given items.
func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// Record returns a record Value over the given fields. The map is
// used as-is; callers must not mutate it afterwards.
func Record(fields map[string]Value) Value {
	return Value{kind: KindRecord, rec: fields}
}

// Kind reports the shape of v.
func (v Value) Kind() Kind { return v.kind }

// IsUndefined reports whether v is the absent value.
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

// IsNull reports whether v is an explicit null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload, or false for non-bool Values.
func (v Value) Bool() bool { return v.b }

// Number returns the numeric payload, or 0 for non-number Values.
func (v Value) Number() float64 { return v.n }

// Text returns the string payload, or "" for non-text Values.
func (v Value) Text() string { return v.s }

// Date returns the timestamp payload, or the zero time for non-date
// Values.
func (v Value) Date() time.Time { return v.t }

// Items returns the list payload, or nil for non-list Values. The
// returned slice must not be mutated.
func (v Value) Items() []Value { return v.list }

// Len returns the number of list items, or 0 for non-list Values.
func (v Value) Len() int { return len(v.list) }

// Field looks up a record field by exact key. The second result is
// false when v is not a record or the key is absent.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindRecord {
		return Undefined, false
	}
	f, ok := v.rec[name]
	return f, ok
}

// Keys returns the record field names in unspecified order, or nil
// for non-record Values.
func (v Value) Keys() []string {
	if v.kind != KindRecord {
		return nil
	}
	keys := make([]string, 0, len(v.rec))
	for k := range v.rec {
		keys = append(keys, k)
	}
	return keys
}

// Truthy reports whether v counts as true in a condition. Lists and
// text are truthy when non-empty, numbers when nonzero, booleans as
// themselves. Dates and records are always truthy. Null and Undefined
// are always falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindUndefined, KindNull:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0
	case KindText:
		return v.s != ""
	case KindList:
		return len(v.list) > 0
	default:
		return true
	}
}

// AsNumber coerces v to a number for ordering comparisons. Booleans
// become 0 or 1, dates their epoch milliseconds, and text is parsed
// as a decimal number (empty text coerces to 0). The second result is
// false when no numeric reading exists, in which case any ordering
// comparison involving v is false.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.n, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindDate:
		return float64(v.t.UnixMilli()), true
	case KindText:
		s := strings.TrimSpace(v.s)
		if s == "" {
			return 0, true
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case KindNull:
		return 0, true
	default:
		return 0, false
	}
}

// LooseEqual compares two Values the way the == template operator
// does: same-kind scalars compare directly, text and numbers compare
// numerically when the text parses, and booleans are lowered to 0 or
// 1 first. Null and Undefined equal each other and nothing else.
// Lists and records never compare equal to literals.
func LooseEqual(a, b Value) bool {
	aAbsent := a.kind == KindUndefined || a.kind == KindNull
	bAbsent := b.kind == KindUndefined || b.kind == KindNull
	if aAbsent || bAbsent {
		return aAbsent && bAbsent
	}
	if a.kind == KindBool {
		return LooseEqual(Number(boolNum(a.b)), b)
	}
	if b.kind == KindBool {
		return LooseEqual(a, Number(boolNum(b.b)))
	}
	switch {
	case a.kind == KindText && b.kind == KindText:
		return a.s == b.s
	case a.kind == KindNumber && b.kind == KindNumber:
		return a.n == b.n
	case a.kind == KindDate && b.kind == KindDate:
		return a.t.Equal(b.t)
	case a.kind == KindNumber && b.kind == KindText,
		a.kind == KindText && b.kind == KindNumber,
		a.kind == KindDate && b.kind == KindNumber,
		a.kind == KindNumber && b.kind == KindDate:
		an, aok := a.AsNumber()
		bn, bok := b.AsNumber()
		return aok && bok && an == bn
	default:
		return false
	}
}

func boolNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
