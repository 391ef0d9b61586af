package value

import "github.com/snek-lang/snek/internal/types"

// ListValue is satisfied by every list realization: an owned slice, or a
// view (reversed, concatenation, repeat) layered over other ListValues
// without copying their storage (spec §3.4).
type ListValue interface {
	Value
	Len() int
	At(i int) Value
	Items() []Value
}

// OwnedList is a list that owns its backing slice.
type OwnedList struct {
	base
	Elems []Value
}

func NewList(elems []Value) *OwnedList { return &OwnedList{Elems: elems} }

func (l *OwnedList) Kind() types.ValueKind   { return KindList }
func (l *OwnedList) Len() int                { return len(l.Elems) }
func (l *OwnedList) At(i int) Value          { return l.Elems[i] }
func (l *OwnedList) Items() []Value          { return l.Elems }
func (l *OwnedList) ListLen() int            { return l.Len() }
func (l *OwnedList) ListAt(i int) types.Valued { return l.At(i) }
func (l *OwnedList) Inspect() string         { return inspectList(l) }

// ReversedListView presents Inner back to front without copying elements.
type ReversedListView struct {
	base
	Inner ListValue
}

func (v *ReversedListView) Kind() types.ValueKind { return KindList }
func (v *ReversedListView) Len() int               { return v.Inner.Len() }
func (v *ReversedListView) At(i int) Value         { return v.Inner.At(v.Inner.Len() - 1 - i) }
func (v *ReversedListView) Items() []Value {
	n := v.Len()
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = v.At(i)
	}
	return out
}
func (v *ReversedListView) ListLen() int            { return v.Len() }
func (v *ReversedListView) ListAt(i int) types.Valued { return v.At(i) }
func (v *ReversedListView) Inspect() string         { return inspectList(v) }

// ConcatListView presents Left followed by Right without copying either.
type ConcatListView struct {
	base
	Left, Right ListValue
}

func (v *ConcatListView) Kind() types.ValueKind { return KindList }
func (v *ConcatListView) Len() int               { return v.Left.Len() + v.Right.Len() }
func (v *ConcatListView) At(i int) Value {
	if i < v.Left.Len() {
		return v.Left.At(i)
	}
	return v.Right.At(i - v.Left.Len())
}
func (v *ConcatListView) Items() []Value {
	out := make([]Value, 0, v.Len())
	out = append(out, v.Left.Items()...)
	out = append(out, v.Right.Items()...)
	return out
}
func (v *ConcatListView) ListLen() int            { return v.Len() }
func (v *ConcatListView) ListAt(i int) types.Valued { return v.At(i) }
func (v *ConcatListView) Inspect() string         { return inspectList(v) }

// RepeatListView presents Inner repeated Count times.
type RepeatListView struct {
	base
	Inner ListValue
	Count int
}

func (v *RepeatListView) Kind() types.ValueKind { return KindList }
func (v *RepeatListView) Len() int {
	if v.Count <= 0 {
		return 0
	}
	return v.Inner.Len() * v.Count
}
func (v *RepeatListView) At(i int) Value {
	n := v.Inner.Len()
	return v.Inner.At(i % n)
}
func (v *RepeatListView) Items() []Value {
	n := v.Len()
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = v.At(i)
	}
	return out
}
func (v *RepeatListView) ListLen() int            { return v.Len() }
func (v *RepeatListView) ListAt(i int) types.Valued { return v.At(i) }
func (v *RepeatListView) Inspect() string         { return inspectList(v) }

func inspectList(l ListValue) string {
	out := []byte{'['}
	for i := 0; i < l.Len(); i++ {
		if i > 0 {
			out = append(out, ", "...)
		}
		out = append(out, l.At(i).Inspect()...)
	}
	out = append(out, ']')
	return string(out)
}
