// Package models holds the in-memory representation shared by every codec:
// a closed set of Value variants and the Record that groups them by field name.
package models

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindLong
	KindDouble
	KindString
	KindList
	KindMap
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindInt:    "int",
	KindLong:   "long",
	KindDouble: "double",
	KindString: "string",
	KindList:   "list",
	KindMap:    "map",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is any data a field can hold. The set of implementations is closed:
// Null, Bool, Int, Long, Double, String, List and *Map.
type Value interface {
	Kind() Kind
	// Equal reports deep equality. Variants never compare equal across kinds,
	// so Int(1) and Long(1) differ.
	Equal(other Value) bool
	// String returns the natural text form: digits for integers, a decimal
	// form for doubles, true/false, the raw text for strings and "" for null.
	String() string
	isValue()
}

var (
	_ Value = Null{}
	_ Value = Bool(false)
	_ Value = Int(0)
	_ Value = Long(0)
	_ Value = Double(0)
	_ Value = String("")
	_ Value = List(nil)
	_ Value = (*Map)(nil)
)

// Null is the absence of data. It is distinct from String("").
type Null struct{}

// NullValue is the canonical Null.
var NullValue = Null{}

func (Null) Kind() Kind { return KindNull }
func (Null) isValue()   {}
func (Null) String() string {
	return ""
}
func (Null) Equal(other Value) bool {
	_, ok := other.(Null)
	return ok
}

type Bool bool

func (Bool) Kind() Kind       { return KindBool }
func (Bool) isValue()         {}
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && o == b
}

// Int is an integer inside the signed 32-bit range.
type Int int32

func (Int) Kind() Kind       { return KindInt }
func (Int) isValue()         {}
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (i Int) Equal(other Value) bool {
	o, ok := other.(Int)
	return ok && o == i
}

// Long is an integer outside the 32-bit range.
type Long int64

func (Long) Kind() Kind       { return KindLong }
func (Long) isValue()         {}
func (l Long) String() string { return strconv.FormatInt(int64(l), 10) }
func (l Long) Equal(other Value) bool {
	o, ok := other.(Long)
	return ok && o == l
}

type Double float64

func (Double) Kind() Kind       { return KindDouble }
func (Double) isValue()         {}
func (d Double) String() string { return FormatDouble(float64(d)) }
func (d Double) Equal(other Value) bool {
	o, ok := other.(Double)
	return ok && o == d
}

// IsFinite reports whether d is neither NaN nor an infinity.
func (d Double) IsFinite() bool {
	f := float64(d)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

type String string

func (String) Kind() Kind       { return KindString }
func (String) isValue()         {}
func (s String) String() string { return string(s) }
func (s String) Equal(other Value) bool {
	o, ok := other.(String)
	return ok && o == s
}

// List is an ordered, fully materialized sequence of values.
type List []Value

func (List) Kind() Kind { return KindList }
func (List) isValue()   {}

func (l List) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range l {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteString("]")
	return sb.String()
}

func (l List) Equal(other Value) bool {
	o, ok := other.(List)
	if !ok || len(o) != len(l) {
		return false
	}
	for i, v := range l {
		if !v.Equal(o[i]) {
			return false
		}
	}
	return true
}

// Integer returns Int when n fits in 32 bits and Long otherwise.
func Integer(n int64) Value {
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		return Int(n)
	}
	return Long(n)
}

// OrNull maps a nil interface to NullValue.
func OrNull(v Value) Value {
	if v == nil {
		return NullValue
	}
	return v
}

// FormatDouble renders f so that it always reads back as a double: the
// result carries a decimal point (or is NaN/Inf), e.g. 30 -> "30.0" and
// 1e21 -> "1.0e+21".
func FormatDouble(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		if !strings.Contains(mantissa, ".") {
			mantissa += ".0"
		}
		return mantissa + "e" + exp
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
