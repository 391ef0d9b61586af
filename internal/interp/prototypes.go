package interp

import (
	"math"

	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/value"
)

// Prototypes holds the builtin [[Prototype]] chain roots (spec §3.4,
// §4.4.5): Object sits at the root, Number sits between Object and each of
// Int/Float so shared numeric methods live in one place, and every other
// builtin prototype hangs directly off Object.
type Prototypes struct {
	Object   *value.Record
	Number   *value.Record
	Boolean  *value.Record
	Int      *value.Record
	Float    *value.Record
	String   *value.Record
	List     *value.Record
	Record   *value.Record
	Function *value.Record
}

func newRecord(proto value.Value, methods map[string]value.NativeFunc) *value.Record {
	order := make([]string, 0, len(methods))
	data := make(map[string]value.Value, len(methods))
	for name, fn := range methods {
		order = append(order, name)
		data[name] = value.NewNativeFunction(name, fn, nil)
	}
	return value.NewRecord(order, data, proto)
}

func newPrototypes(it *Interp) *Prototypes {
	p := &Prototypes{}
	p.Object = newRecord(nil, map[string]value.NativeFunc{
		"toString": func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
			return value.NewString(value.Display(this)), nil
		},
		"==": func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
			return value.NewBoolean(value.Equals(this, arg(args, 0))), nil
		},
		// "!=" is "==" negated through dispatch, not a second structural
		// comparison, so overriding "==" on a Record overrides both (spec
		// §4.4.6).
		"!=": func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
			eq, err := it.callMethod(this, "==", args, snekerr.EvalPosition)
			if err != nil {
				return nil, err
			}
			return value.NewBoolean(!truthy(eq)), nil
		},
	})

	p.Number = newRecord(p.Object, map[string]value.NativeFunc{
		"<":  nativeCompareOp(numberCompare, func(c int) bool { return c < 0 }),
		">":  nativeCompareOp(numberCompare, func(c int) bool { return c > 0 }),
		"<=": nativeCompareOp(numberCompare, func(c int) bool { return c <= 0 }),
		">=": nativeCompareOp(numberCompare, func(c int) bool { return c >= 0 }),
	})

	p.Boolean = newRecord(p.Object, map[string]value.NativeFunc{
		"!@": func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
			return value.NewBoolean(!this.BoolValue()), nil
		},
	})

	p.Int = newRecord(p.Number, map[string]value.NativeFunc{
		"+":  nativeArith(opAdd),
		"-":  nativeArith(opSub),
		"*":  nativeArith(opMul),
		"/":  nativeArith(opDiv),
		"%":  nativeArith(opMod),
		"+@": nativeUnary(func(v value.Value) value.Value { return value.NewInt(v.IntValue()) }),
		"-@": nativeUnary(func(v value.Value) value.Value { return value.NewInt(-v.IntValue()) }),
		"~@": nativeUnary(func(v value.Value) value.Value { return value.NewInt(^v.IntValue()) }),
		"&":  nativeIntBit(func(a, b int64) int64 { return a & b }),
		"|":  nativeIntBit(func(a, b int64) int64 { return a | b }),
		"^":  nativeIntBit(func(a, b int64) int64 { return a ^ b }),
		"<<": nativeIntBit(func(a, b int64) int64 { return a << uint(b) }),
		">>": nativeIntBit(func(a, b int64) int64 { return a >> uint(b) }),
	})

	p.Float = newRecord(p.Number, map[string]value.NativeFunc{
		"+":  nativeArith(opAdd),
		"-":  nativeArith(opSub),
		"*":  nativeArith(opMul),
		"/":  nativeArith(opDiv),
		"%":  nativeArith(opMod),
		"+@": nativeUnary(func(v value.Value) value.Value { return value.NewFloat(v.FloatValue()) }),
		"-@": nativeUnary(func(v value.Value) value.Value { return value.NewFloat(-v.FloatValue()) }),
	})

	p.String = newRecord(p.Object, map[string]value.NativeFunc{
		"+":           nativeStringConcat,
		"*":           nativeStringRepeat,
		"<":           nativeCompareOp(stringCompare, func(c int) bool { return c < 0 }),
		">":           nativeCompareOp(stringCompare, func(c int) bool { return c > 0 }),
		"<=":          nativeCompareOp(stringCompare, func(c int) bool { return c <= 0 }),
		">=":          nativeCompareOp(stringCompare, func(c int) bool { return c >= 0 }),
		"[]":          nativeStringIndex,
		"length":      nativeMethod(func(this value.Value, args []value.Value) (value.Value, error) { return value.NewInt(int64(this.(value.StringValue).Len())), nil }),
		"toUpper":     nativeStringTransform(func(r rune) rune { return toUpperRune(r) }),
		"toLower":     nativeStringTransform(func(r rune) rune { return toLowerRune(r) }),
		"reverse":     nativeMethod(func(this value.Value, args []value.Value) (value.Value, error) { return &value.ReversedStringView{Inner: this.(value.StringValue)}, nil }),
		"codePointAt": nativeStringCodePointAt,
		"split":       nativeStringSplit,
		"includes":    nativeStringContains,
		"indexOf":     nativeStringIndexOf,
		"lastIndexOf": nativeStringLastIndexOf,
		"trim":        nativeStringTrim,
	})

	p.List = newRecord(p.Object, map[string]value.NativeFunc{
		"+":           nativeListConcat,
		"*":           nativeListRepeat,
		"[]":          nativeListIndex,
		"[]=":         nativeListIndexSet,
		"size":        nativeMethod(func(this value.Value, args []value.Value) (value.Value, error) { return value.NewInt(int64(this.(value.ListValue).Len())), nil }),
		"push":        nativeListPush,
		"pop":         nativeListPop,
		"reverse":     nativeMethod(func(this value.Value, args []value.Value) (value.Value, error) { return &value.ReversedListView{Inner: this.(value.ListValue)}, nil }),
		"map":         nativeListMap,
		"filter":      nativeListFilter,
		"reduce":      nativeListReduce,
		"forEach":     nativeListForEach,
		"includes":    nativeListContains,
		"indexOf":     nativeListIndexOf,
		"lastIndexOf": nativeListLastIndexOf,
		"join":        nativeListJoin,
		"slice":       nativeListSlice,
	})

	p.Record = newRecord(p.Object, map[string]value.NativeFunc{
		"[]":      nativeRecordIndex,
		"[]=":     nativeRecordIndexSet,
		"+":       nativeRecordMerge,
		"-":       nativeRecordRemoveOp,
		"keys":    nativeRecordKeys,
		"values":  nativeRecordValues,
		"entries": nativeRecordEntries,
		"has":     nativeRecordHas,
		"remove":  nativeRecordRemove,
	})

	p.Function = newRecord(p.Object, map[string]value.NativeFunc{
		"call": func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
			fn, ok := this.(*value.Function)
			if !ok {
				return nil, snekerr.Runtimef(snekerr.EvalPosition, "`call' requires a function receiver.")
			}
			var callThis value.Value
			rest := args
			if len(args) > 0 {
				callThis = args[0]
				rest = args[1:]
			}
			return it.CallFunction(fn, callThis, rest, snekerr.EvalPosition)
		},
	})

	return p
}

func arg(args []value.Value, i int) value.Value {
	if i < len(args) {
		return args[i]
	}
	return value.TheNull
}

func nativeMethod(fn func(this value.Value, args []value.Value) (value.Value, error)) value.NativeFunc {
	return func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
		return fn(this, args)
	}
}

func nativeUnary(fn func(v value.Value) value.Value) value.NativeFunc {
	return func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
		return fn(this), nil
	}
}

// --- Numeric --------------------------------------------------------------

type arithOp int

const (
	opAdd arithOp = iota
	opSub
	opMul
	opDiv
	opMod
)

// nativeArith implements Int/Float's arithmetic operator methods. Mixed
// Int/Float operands promote to Float; Int division by zero yields +/-Inf
// rather than faulting, matching Float's IEEE-754 behavior (spec §4.2.2).
func nativeArith(op arithOp) value.NativeFunc {
	return func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
		other := arg(args, 0)
		if this.Kind() == value.KindInt && other.Kind() == value.KindInt {
			a, b := this.IntValue(), other.IntValue()
			switch op {
			case opAdd:
				return value.NewInt(a + b), nil
			case opSub:
				return value.NewInt(a - b), nil
			case opMul:
				return value.NewInt(a * b), nil
			case opDiv:
				if b == 0 {
					return value.NewFloat(math.Inf(sign(a))), nil
				}
				return value.NewInt(a / b), nil
			case opMod:
				if b == 0 {
					return nil, snekerr.Runtimef(snekerr.EvalPosition, "Division by zero.")
				}
				return value.NewInt(((a % b) + b) % b), nil
			}
		}
		a, b := this.FloatValue(), other.FloatValue()
		switch op {
		case opAdd:
			return value.NewFloat(a + b), nil
		case opSub:
			return value.NewFloat(a - b), nil
		case opMul:
			return value.NewFloat(a * b), nil
		case opDiv:
			return value.NewFloat(a / b), nil
		case opMod:
			return value.NewFloat(floatMod(a, b)), nil
		}
		return nil, snekerr.Runtimef(snekerr.EvalPosition, "Unsupported arithmetic operation.")
	}
}

func sign(v int64) int {
	if v < 0 {
		return -1
	}
	return 1
}

func nativeIntBit(op func(a, b int64) int64) value.NativeFunc {
	return func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
		return value.NewInt(op(this.IntValue(), arg(args, 0).IntValue())), nil
	}
}

// numberCompare returns -1/0/1 for this vs. other, comparing as Int when
// both operands are Int and promoting to Float otherwise.
func numberCompare(this, other value.Value) int {
	if this.Kind() == value.KindInt && other.Kind() == value.KindInt {
		ai, bi := this.IntValue(), other.IntValue()
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	a, b := this.FloatValue(), other.FloatValue()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// nativeCompareOp builds one of `<`/`>`/`<=`/`>=`'s NativeFunc from a
// three-way comparator and the predicate over its sign that the operator
// requires (spec §4.4.1: each comparison operator dispatches to a method
// named by its own textual form, not a single combined comparator).
func nativeCompareOp(cmp func(this, other value.Value) int, accept func(c int) bool) value.NativeFunc {
	return func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
		return value.NewBoolean(accept(cmp(this, arg(args, 0)))), nil
	}
}

// --- String ----------------------------------------------------------------

func nativeStringConcat(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	return &value.ConcatStringView{Left: this.(value.StringValue), Right: arg(args, 0).(value.StringValue)}, nil
}

// stringCompare returns -1/0/1 for this vs. other in codepoint order.
func stringCompare(this, other value.Value) int {
	a := this.(value.StringValue).Runes()
	b := other.(value.StringValue).Runes()
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func nativeStringIndex(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	sv := this.(value.StringValue)
	idx := arg(args, 0).IntValue()
	if idx < 0 {
		idx += int64(sv.Len())
	}
	if idx < 0 || idx >= int64(sv.Len()) {
		return nil, snekerr.New(snekerr.Runtime, snekerr.EvalPosition, "String index out of bounds.")
	}
	return value.NewString(string(sv.Runes()[idx])), nil
}

func nativeStringTransform(fn func(rune) rune) value.NativeFunc {
	return func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
		runes := this.(value.StringValue).Runes()
		out := make([]rune, len(runes))
		for i, r := range runes {
			out[i] = fn(r)
		}
		return value.NewString(string(out)), nil
	}
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func nativeStringSplit(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	s := string(this.(value.StringValue).Runes())
	sep := string(arg(args, 0).(value.StringValue).Runes())
	var parts []string
	if sep == "" {
		for _, r := range s {
			parts = append(parts, string(r))
		}
	} else {
		start := 0
		for {
			idx := indexString(s[start:], sep)
			if idx < 0 {
				parts = append(parts, s[start:])
				break
			}
			parts = append(parts, s[start:start+idx])
			start += idx + len(sep)
		}
	}
	elems := make([]value.Value, len(parts))
	for i, p := range parts {
		elems[i] = value.NewString(p)
	}
	return value.NewList(elems), nil
}

func indexString(s, sub string) int {
	n, m := len(s), len(sub)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return i
		}
	}
	return -1
}

func nativeStringContains(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	s := string(this.(value.StringValue).Runes())
	sub := string(arg(args, 0).(value.StringValue).Runes())
	return value.NewBoolean(indexString(s, sub) >= 0), nil
}

// nativeStringIndexOf returns a codepoint index, not a byte offset — String
// indexing throughout (subscript, codePointAt) is by rune (spec
// §3.4), so the search has to walk []rune rather than the byte-oriented
// indexString helper used internally by split/contains.
func nativeStringIndexOf(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	s := this.(value.StringValue).Runes()
	sub := arg(args, 0).(value.StringValue).Runes()
	return value.NewInt(int64(indexRunes(s, sub))), nil
}

func indexRunes(s, sub []rune) int {
	n, m := len(s), len(sub)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if runesEqual(s[i:i+m], sub) {
			return i
		}
	}
	return -1
}

func lastIndexRunes(s, sub []rune) int {
	n, m := len(s), len(sub)
	if m == 0 {
		return n
	}
	for i := n - m; i >= 0; i-- {
		if runesEqual(s[i:i+m], sub) {
			return i
		}
	}
	return -1
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// nativeStringRepeat implements String's `*` operator (spec §4.4.6: "+
// (concat-view), * (repeat-view)"), building a RepeatStringView rather
// than copying runes count times over.
func nativeStringRepeat(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	count := arg(args, 0).IntValue()
	if count < 0 {
		count = 0
	}
	return &value.RepeatStringView{Inner: this.(value.StringValue), Count: int(count)}, nil
}

func nativeStringCodePointAt(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	sv := this.(value.StringValue)
	idx := arg(args, 0).IntValue()
	if idx < 0 || idx >= int64(sv.Len()) {
		return nil, snekerr.New(snekerr.Runtime, snekerr.EvalPosition, "String index out of bounds.")
	}
	return value.NewInt(int64(sv.At(int(idx)))), nil
}

// nativeStringLastIndexOf resolves spec §9's open question the plain way:
// scan from the last possible start position down to 0 with a signed
// index, rather than mirroring the original's size_t decrement-past-zero
// wraparound (DESIGN.md records this as a deliberate deviation).
func nativeStringLastIndexOf(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	s := this.(value.StringValue).Runes()
	sub := arg(args, 0).(value.StringValue).Runes()
	return value.NewInt(int64(lastIndexRunes(s, sub))), nil
}

func nativeStringTrim(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	runes := this.(value.StringValue).Runes()
	start, end := 0, len(runes)
	for start < end && isSpace(runes[start]) {
		start++
	}
	for end > start && isSpace(runes[end-1]) {
		end--
	}
	return value.NewString(string(runes[start:end])), nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// --- List --------------------------------------------------------------

func nativeListConcat(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	return &value.ConcatListView{Left: this.(value.ListValue), Right: arg(args, 0).(value.ListValue)}, nil
}

// nativeListRepeat implements List's `*` operator (spec §4.4.6).
func nativeListRepeat(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	count := arg(args, 0).IntValue()
	if count < 0 {
		count = 0
	}
	return &value.RepeatListView{Inner: this.(value.ListValue), Count: int(count)}, nil
}

func resolveListIndex(lv value.ListValue, idx int64) (int, error) {
	if idx < 0 {
		idx += int64(lv.Len())
	}
	if idx < 0 || idx >= int64(lv.Len()) {
		return 0, snekerr.New(snekerr.Runtime, snekerr.EvalPosition, "List index out of bounds.")
	}
	return int(idx), nil
}

func nativeListIndex(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	lv := this.(value.ListValue)
	i, err := resolveListIndex(lv, arg(args, 0).IntValue())
	if err != nil {
		return nil, err
	}
	return lv.At(i), nil
}

func nativeListIndexSet(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	ol, ok := this.(*value.OwnedList)
	if !ok {
		return nil, snekerr.Runtimef(snekerr.EvalPosition, "Cannot assign into a read-only list view.")
	}
	i, err := resolveListIndex(ol, arg(args, 0).IntValue())
	if err != nil {
		return nil, err
	}
	ol.Elems[i] = arg(args, 1)
	return ol.Elems[i], nil
}

func nativeListPush(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	ol, ok := this.(*value.OwnedList)
	if !ok {
		return nil, snekerr.Runtimef(snekerr.EvalPosition, "`push' requires an owned list.")
	}
	ol.Elems = append(ol.Elems, args...)
	return ol, nil
}

func nativeListPop(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	ol, ok := this.(*value.OwnedList)
	if !ok || len(ol.Elems) == 0 {
		return nil, snekerr.Runtimef(snekerr.EvalPosition, "Cannot pop from an empty or read-only list.")
	}
	last := ol.Elems[len(ol.Elems)-1]
	ol.Elems = ol.Elems[:len(ol.Elems)-1]
	return last, nil
}

func nativeListMap(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	lv := this.(value.ListValue)
	fn := arg(args, 0)
	out := make([]value.Value, lv.Len())
	for i := 0; i < lv.Len(); i++ {
		v, err := ctx.Call(fn, nil, []value.Value{lv.At(i), value.NewInt(int64(i))})
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return value.NewList(out), nil
}

func nativeListFilter(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	lv := this.(value.ListValue)
	fn := arg(args, 0)
	var out []value.Value
	for i := 0; i < lv.Len(); i++ {
		v, err := ctx.Call(fn, nil, []value.Value{lv.At(i), value.NewInt(int64(i))})
		if err != nil {
			return nil, err
		}
		if truthy(v) {
			out = append(out, lv.At(i))
		}
	}
	return value.NewList(out), nil
}

func nativeListReduce(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	lv := this.(value.ListValue)
	fn := arg(args, 0)
	acc := arg(args, 1)
	for i := 0; i < lv.Len(); i++ {
		v, err := ctx.Call(fn, nil, []value.Value{acc, lv.At(i), value.NewInt(int64(i))})
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}

func nativeListForEach(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	lv := this.(value.ListValue)
	fn := arg(args, 0)
	for i := 0; i < lv.Len(); i++ {
		if _, err := ctx.Call(fn, nil, []value.Value{lv.At(i), value.NewInt(int64(i))}); err != nil {
			return nil, err
		}
	}
	return value.TheNull, nil
}

func nativeListContains(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	lv := this.(value.ListValue)
	target := arg(args, 0)
	for i := 0; i < lv.Len(); i++ {
		if value.Equals(lv.At(i), target) {
			return value.NewBoolean(true), nil
		}
	}
	return value.NewBoolean(false), nil
}

func nativeListIndexOf(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	lv := this.(value.ListValue)
	target := arg(args, 0)
	for i := 0; i < lv.Len(); i++ {
		if value.Equals(lv.At(i), target) {
			return value.NewInt(int64(i)), nil
		}
	}
	return value.NewInt(-1), nil
}

// nativeListLastIndexOf resolves spec §9's open question about the
// original's size_t decrement past zero wrapping around: this
// implementation simply scans backward with a signed index and stops at
// -1 on no match, never wrapping (documented deviation, DESIGN.md).
func nativeListLastIndexOf(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	lv := this.(value.ListValue)
	target := arg(args, 0)
	for i := lv.Len() - 1; i >= 0; i-- {
		if value.Equals(lv.At(i), target) {
			return value.NewInt(int64(i)), nil
		}
	}
	return value.NewInt(-1), nil
}

func nativeListJoin(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	lv := this.(value.ListValue)
	sep := ""
	if len(args) > 0 {
		sep = string(args[0].(value.StringValue).Runes())
	}
	var out []rune
	for i := 0; i < lv.Len(); i++ {
		if i > 0 {
			out = append(out, []rune(sep)...)
		}
		if sv, ok := lv.At(i).(value.StringValue); ok {
			out = append(out, sv.Runes()...)
		} else {
			out = append(out, []rune(lv.At(i).Inspect())...)
		}
	}
	return value.NewString(string(out)), nil
}

func nativeListSlice(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	lv := this.(value.ListValue)
	n := lv.Len()
	start, end := int64(0), int64(n)
	if len(args) > 0 {
		start = args[0].IntValue()
	}
	if len(args) > 1 {
		end = args[1].IntValue()
	}
	if start < 0 {
		start += int64(n)
	}
	if end < 0 {
		end += int64(n)
	}
	if start < 0 {
		start = 0
	}
	if end > int64(n) {
		end = int64(n)
	}
	if start > end {
		start = end
	}
	out := make([]value.Value, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, lv.At(i))
	}
	return value.NewList(out), nil
}

// --- Record ------------------------------------------------------------

func nativeRecordIndex(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	rv := this.(value.RecordValue)
	key := string(arg(args, 0).(value.StringValue).Runes())
	if v, ok := rv.GetOwn(key); ok {
		return v, nil
	}
	return nil, snekerr.New(snekerr.MissingProperty, snekerr.EvalPosition, "Record has no field named `"+key+"'.")
}

// nativeRecordMerge implements Record's `+` operator (spec §4.4.6: "+
// (merge; right wins)"), via a ConcatRecordView over both operands.
// `{...a, ...b}` record literals do not use it: evalRecord copies the
// fields into a fresh Record.
func nativeRecordMerge(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	right, ok := arg(args, 0).(value.RecordValue)
	if !ok {
		return nil, snekerr.Runtimef(snekerr.EvalPosition, "Cannot merge a record with a non-record value.")
	}
	return &value.ConcatRecordView{Left: this.(value.RecordValue), Right: right}, nil
}

func nativeRecordIndexSet(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	r, ok := this.(*value.Record)
	if !ok {
		return nil, snekerr.Runtimef(snekerr.EvalPosition, "Cannot assign into a read-only record view.")
	}
	key := string(arg(args, 0).(value.StringValue).Runes())
	if _, existed := r.Data[key]; !existed {
		r.Order = append(r.Order, key)
	}
	r.Data[key] = arg(args, 1)
	return r.Data[key], nil
}

func nativeRecordKeys(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	rv := this.(value.RecordValue)
	keys := rv.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		out[i] = value.NewString(k)
	}
	return value.NewList(out), nil
}

func nativeRecordValues(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	rv := this.(value.RecordValue)
	keys := rv.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		v, _ := rv.GetOwn(k)
		out[i] = v
	}
	return value.NewList(out), nil
}

func nativeRecordHas(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	rv := this.(value.RecordValue)
	key := string(arg(args, 0).(value.StringValue).Runes())
	_, ok := rv.GetOwn(key)
	return value.NewBoolean(ok), nil
}

func nativeRecordRemove(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	rv := this.(value.RecordValue)
	key := string(arg(args, 0).(value.StringValue).Runes())
	return &value.RemoveRecordView{Inner: rv, Removed: key}, nil
}

// nativeRecordRemoveOp implements Record's `-` operator (spec §4.4.6:
// "Record provides ... - (remove by key)"), an alias of the `remove`
// method reached through binary-operator dispatch.
func nativeRecordRemoveOp(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	return nativeRecordRemove(ctx, this, args)
}

// nativeRecordEntries returns a List of [key, value] two-element Lists,
// in field order (spec §4.4.6: "methods entries keys values").
func nativeRecordEntries(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
	rv := this.(value.RecordValue)
	keys := rv.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		v, _ := rv.GetOwn(k)
		out[i] = value.NewList([]value.Value{value.NewString(k), v})
	}
	return value.NewList(out), nil
}
