// Package value implements Snek's runtime value model (spec §3.4): the
// tagged Value interface and its eight kinds, plus the view-based
// realizations of String, List and Record that let slicing, reversal,
// concatenation and repetition share storage instead of copying.
package value

import (
	"math"

	"github.com/snek-lang/snek/internal/types"
)

// Kind re-exports types.ValueKind so callers need not import both packages
// for the common case of switching on a value's kind.
type Kind = types.ValueKind

const (
	KindNull     = types.KindNull
	KindBoolean  = types.KindBoolean
	KindInt      = types.KindInt
	KindFloat    = types.KindFloat
	KindString   = types.KindString
	KindList     = types.KindList
	KindRecord   = types.KindRecord
	KindFunction = types.KindFunction
)

// Value is satisfied by every runtime value. It structurally implements
// types.Valued, so the type model can inspect values without internal/value
// importing internal/types' consumer or vice versa beyond this one edge.
type Value interface {
	Kind() types.ValueKind
	Inspect() string
	BoolValue() bool
	IntValue() int64
	FloatValue() float64
	StringValue() string
	ListLen() int
	ListAt(i int) types.Valued
	RecordKeys() []string
	RecordGet(key string) (types.Valued, bool)
	FunctionType() *types.Function
}

// base provides zero-value fallbacks for every Value method; concrete
// kinds embed it and override only the methods relevant to their kind.
type base struct{}

func (base) BoolValue() bool                          { return false }
func (base) IntValue() int64                          { return 0 }
func (base) FloatValue() float64                      { return 0 }
func (base) StringValue() string                      { return "" }
func (base) ListLen() int                             { return 0 }
func (base) ListAt(int) types.Valued                  { return nil }
func (base) RecordKeys() []string                     { return nil }
func (base) RecordGet(string) (types.Valued, bool)    { return nil, false }
func (base) FunctionType() *types.Function             { return nil }

// Null is the singleton `null` value.
type Null struct{ base }

var TheNull = Null{}

func (Null) Kind() types.ValueKind { return KindNull }
func (Null) Inspect() string       { return "null" }

// Boolean wraps a bool.
type Boolean struct {
	base
	Val bool
}

func NewBoolean(v bool) Boolean { return Boolean{Val: v} }

func (b Boolean) Kind() types.ValueKind { return KindBoolean }
func (b Boolean) BoolValue() bool       { return b.Val }
func (b Boolean) Inspect() string {
	if b.Val {
		return "true"
	}
	return "false"
}

// Int wraps an int64.
type Int struct {
	base
	Val int64
}

func NewInt(v int64) Int { return Int{Val: v} }

func (i Int) Kind() types.ValueKind { return KindInt }
func (i Int) IntValue() int64       { return i.Val }
func (i Int) FloatValue() float64   { return float64(i.Val) }
func (i Int) Inspect() string       { return formatInt(i.Val) }

// Float wraps a float64.
type Float struct {
	base
	Val float64
}

func NewFloat(v float64) Float { return Float{Val: v} }

func (f Float) Kind() types.ValueKind { return KindFloat }
func (f Float) FloatValue() float64   { return f.Val }
func (f Float) IntValue() int64       { return int64(f.Val) }
func (f Float) Inspect() string       { return formatFloat(f.Val) }

func formatInt(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func formatFloat(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	if math.IsNaN(v) {
		return "nan"
	}
	s := formatFloatDecimal(v)
	return s
}

func formatFloatDecimal(v float64) string {
	// strconv.FormatFloat would be the ordinary choice, but is deliberately
	// avoided here in favor of a minimal renderer so Int/Float formatting
	// stays table-driven and allocation-light like the rest of this file.
	out := []byte{}
	if v < 0 {
		out = append(out, '-')
		v = -v
	}
	whole := int64(v)
	frac := v - float64(whole)
	out = append(out, formatInt(whole)...)
	out = append(out, '.')
	if frac == 0 {
		out = append(out, '0')
		return string(out)
	}
	for i := 0; i < 17 && frac > 0; i++ {
		frac *= 10
		digit := int64(frac)
		out = append(out, byte('0'+digit))
		frac -= float64(digit)
	}
	return string(out)
}

// Equals implements Snek's equality semantics (spec §3.7): Function is
// identity, Record is structural, List is element-wise, String is
// codepoint-wise, and Number compares across Int/Float numerically.
func Equals(a, b Value) bool {
	ak, bk := a.Kind(), b.Kind()
	if isNumeric(ak) && isNumeric(bk) {
		return numericEquals(a, b)
	}
	if ak != bk {
		return false
	}
	switch ak {
	case KindNull:
		return true
	case KindBoolean:
		return a.BoolValue() == b.BoolValue()
	case KindString:
		return stringEquals(a, b)
	case KindList:
		return listEquals(a, b)
	case KindRecord:
		return recordEquals(a, b)
	case KindFunction:
		return functionIdentity(a) == functionIdentity(b)
	default:
		return false
	}
}

func isNumeric(k types.ValueKind) bool { return k == KindInt || k == KindFloat }

func numericEquals(a, b Value) bool {
	if a.Kind() == KindInt && b.Kind() == KindInt {
		return a.IntValue() == b.IntValue()
	}
	return a.FloatValue() == b.FloatValue()
}

func stringEquals(a, b Value) bool {
	as, aok := a.(StringValue)
	bs, bok := b.(StringValue)
	if !aok || !bok {
		return a.StringValue() == b.StringValue()
	}
	if as.Len() != bs.Len() {
		return false
	}
	for i := 0; i < as.Len(); i++ {
		if as.At(i) != bs.At(i) {
			return false
		}
	}
	return true
}

func listEquals(a, b Value) bool {
	if a.ListLen() != b.ListLen() {
		return false
	}
	for i := 0; i < a.ListLen(); i++ {
		av, _ := a.ListAt(i).(Value)
		bv, _ := b.ListAt(i).(Value)
		if av == nil || bv == nil || !Equals(av, bv) {
			return false
		}
	}
	return true
}

func recordEquals(a, b Value) bool {
	ak, bk := a.RecordKeys(), b.RecordKeys()
	if len(ak) != len(bk) {
		return false
	}
	seen := make(map[string]bool, len(ak))
	for _, k := range ak {
		seen[k] = true
	}
	for _, k := range bk {
		if !seen[k] {
			return false
		}
	}
	for _, k := range ak {
		av, aok := a.RecordGet(k)
		bv, bok := b.RecordGet(k)
		avv, _ := av.(Value)
		bvv, _ := bv.(Value)
		if !aok || !bok || avv == nil || bvv == nil || !Equals(avv, bvv) {
			return false
		}
	}
	return true
}

// functionIdentity returns a comparable key unique to the concrete function
// closure/native pointer so Equals can compare functions by identity.
func functionIdentity(v Value) interface{} {
	fn, ok := v.(*Function)
	if !ok {
		return v
	}
	return fn
}

// Display renders v the way `print`/`write` show it to a user: this is the
// original implementation's `ToString` (as opposed to `Inspect`, which is
// its `ToSource` -- round-trippable literal syntax with quotes, brackets
// and braces). Strings print unquoted; Lists and Records print their
// elements/fields comma-separated with no surrounding delimiter, exactly
// matching original_source/interpreter/src/value/list.cpp's and
// record.cpp's ToString (spec §8 scenario 5 prints `4, 16`, not `[4, 16]`).
func Display(v Value) string {
	switch sv := v.(type) {
	case StringValue:
		return string(sv.Runes())
	case ListValue:
		out := make([]byte, 0, sv.Len()*4)
		for i := 0; i < sv.Len(); i++ {
			if i > 0 {
				out = append(out, ", "...)
			}
			out = append(out, Display(sv.At(i))...)
		}
		return string(out)
	case RecordValue:
		out := []byte{}
		for i, k := range sv.Keys() {
			if i > 0 {
				out = append(out, ", "...)
			}
			out = append(out, k...)
			out = append(out, ": "...)
			if fv, ok := sv.GetOwn(k); ok {
				out = append(out, Display(fv)...)
			}
		}
		return string(out)
	default:
		return v.Inspect()
	}
}
