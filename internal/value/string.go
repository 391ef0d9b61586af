package value

import "github.com/snek-lang/snek/internal/types"

// StringValue is satisfied by every string realization: an owned rune
// slice, or a view (reversed, concatenation, repeat) layered over other
// StringValues without copying their storage (spec §3.4).
type StringValue interface {
	Value
	Len() int
	At(i int) rune
	Runes() []rune
}

// OwnedString is a string that owns its rune storage.
type OwnedString struct {
	base
	Runes_ []rune
}

// NewString builds an OwnedString from a Go string.
func NewString(s string) *OwnedString {
	return &OwnedString{Runes_: []rune(s)}
}

func (s *OwnedString) Kind() types.ValueKind { return KindString }
func (s *OwnedString) Len() int              { return len(s.Runes_) }
func (s *OwnedString) At(i int) rune         { return s.Runes_[i] }
func (s *OwnedString) Runes() []rune         { return s.Runes_ }
func (s *OwnedString) StringValue() string   { return string(s.Runes_) }
func (s *OwnedString) Inspect() string       { return quote(s.StringValue()) }

// ReversedStringView presents Inner back to front without copying runes.
type ReversedStringView struct {
	base
	Inner StringValue
}

func (v *ReversedStringView) Kind() types.ValueKind { return KindString }
func (v *ReversedStringView) Len() int               { return v.Inner.Len() }
func (v *ReversedStringView) At(i int) rune {
	return v.Inner.At(v.Inner.Len() - 1 - i)
}
func (v *ReversedStringView) Runes() []rune {
	n := v.Len()
	out := make([]rune, n)
	for i := 0; i < n; i++ {
		out[i] = v.At(i)
	}
	return out
}
func (v *ReversedStringView) StringValue() string { return string(v.Runes()) }
func (v *ReversedStringView) Inspect() string      { return quote(v.StringValue()) }

// ConcatStringView presents Left followed by Right without copying either.
type ConcatStringView struct {
	base
	Left, Right StringValue
}

func (v *ConcatStringView) Kind() types.ValueKind { return KindString }
func (v *ConcatStringView) Len() int               { return v.Left.Len() + v.Right.Len() }
func (v *ConcatStringView) At(i int) rune {
	if i < v.Left.Len() {
		return v.Left.At(i)
	}
	return v.Right.At(i - v.Left.Len())
}
func (v *ConcatStringView) Runes() []rune {
	out := make([]rune, 0, v.Len())
	out = append(out, v.Left.Runes()...)
	out = append(out, v.Right.Runes()...)
	return out
}
func (v *ConcatStringView) StringValue() string { return string(v.Runes()) }
func (v *ConcatStringView) Inspect() string      { return quote(v.StringValue()) }

// RepeatStringView presents Inner repeated Count times.
type RepeatStringView struct {
	base
	Inner StringValue
	Count int
}

func (v *RepeatStringView) Kind() types.ValueKind { return KindString }
func (v *RepeatStringView) Len() int {
	if v.Count <= 0 {
		return 0
	}
	return v.Inner.Len() * v.Count
}
func (v *RepeatStringView) At(i int) rune {
	n := v.Inner.Len()
	return v.Inner.At(i % n)
}
func (v *RepeatStringView) Runes() []rune {
	n := v.Len()
	out := make([]rune, n)
	for i := 0; i < n; i++ {
		out[i] = v.At(i)
	}
	return out
}
func (v *RepeatStringView) StringValue() string { return string(v.Runes()) }
func (v *RepeatStringView) Inspect() string      { return quote(v.StringValue()) }

func quote(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for _, r := range s {
		switch r {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		case '\t':
			out = append(out, '\\', 't')
		case '\r':
			out = append(out, '\\', 'r')
		default:
			out = append(out, string(r)...)
		}
	}
	out = append(out, '"')
	return string(out)
}
