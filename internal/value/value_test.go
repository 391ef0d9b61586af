package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snek-lang/snek/internal/value"
)

// TestNumberEqualityAcrossIntAndFloat exercises spec §3.7: "Number
// equality compares numerically across Int/Float."
func TestNumberEqualityAcrossIntAndFloat(t *testing.T) {
	require.True(t, value.Equals(value.NewInt(2), value.NewFloat(2.0)))
	require.False(t, value.Equals(value.NewInt(2), value.NewFloat(2.5)))
}

// TestListEqualityIsElementwise exercises spec §3.7.
func TestListEqualityIsElementwise(t *testing.T) {
	a := value.NewList([]value.Value{value.NewInt(1), value.NewInt(2)})
	b := value.NewList([]value.Value{value.NewInt(1), value.NewInt(2)})
	c := value.NewList([]value.Value{value.NewInt(1), value.NewInt(3)})
	require.True(t, value.Equals(a, b))
	require.False(t, value.Equals(a, c))
}

// TestStringEqualityIsCodepointwise exercises spec §3.7, including
// across two different realizations (owned vs reversed view).
func TestStringEqualityIsCodepointwise(t *testing.T) {
	owned := value.NewString("ab")
	reversedOfBA := &value.ReversedStringView{Inner: value.NewString("ba")}
	require.True(t, value.Equals(owned, reversedOfBA))

	other := value.NewString("ac")
	require.False(t, value.Equals(owned, other))
}

// TestRecordEqualityIsStructural exercises spec §3.7: field order must
// not matter, only the field set and values.
func TestRecordEqualityIsStructural(t *testing.T) {
	a := value.NewRecord([]string{"a", "b"}, map[string]value.Value{
		"a": value.NewInt(1), "b": value.NewInt(2),
	}, nil)
	b := value.NewRecord([]string{"b", "a"}, map[string]value.Value{
		"b": value.NewInt(2), "a": value.NewInt(1),
	}, nil)
	require.True(t, value.Equals(a, b))

	c := value.NewRecord([]string{"a", "b"}, map[string]value.Value{
		"a": value.NewInt(1), "b": value.NewInt(3),
	}, nil)
	require.False(t, value.Equals(a, c))
}

// TestFunctionEqualityIsReferenceIdentity exercises spec §3.7: two
// distinct Function values are never equal even with identical bodies.
func TestFunctionEqualityIsReferenceIdentity(t *testing.T) {
	f1 := value.NewNativeFunction("f", func(value.CallContext, value.Value, []value.Value) (value.Value, error) {
		return value.TheNull, nil
	}, nil)
	f2 := value.NewNativeFunction("f", func(value.CallContext, value.Value, []value.Value) (value.Value, error) {
		return value.TheNull, nil
	}, nil)
	require.False(t, value.Equals(f1, f2))
	require.True(t, value.Equals(f1, f1))
}

// TestReversedListViewReflectsInnerMutation: mutating the backing owned list after
// wrapping it in a view is visible through the view (no eager copy).
func TestReversedListViewReflectsInnerMutation(t *testing.T) {
	inner := value.NewList([]value.Value{value.NewInt(1), value.NewInt(2), value.NewInt(3)})
	view := &value.ReversedListView{Inner: inner}
	require.Equal(t, 3, view.Len())
	require.Equal(t, int64(3), view.At(0).(value.Int).Val)
	require.Equal(t, int64(1), view.At(2).(value.Int).Val)

	inner.Elems[0] = value.NewInt(99)
	require.Equal(t, int64(99), view.At(2).(value.Int).Val)
}

// TestConcatListViewOrdersLeftThenRight.
func TestConcatListViewOrdersLeftThenRight(t *testing.T) {
	left := value.NewList([]value.Value{value.NewInt(1), value.NewInt(2)})
	right := value.NewList([]value.Value{value.NewInt(3)})
	view := &value.ConcatListView{Left: left, Right: right}
	require.Equal(t, 3, view.Len())
	require.Equal(t, int64(1), view.At(0).(value.Int).Val)
	require.Equal(t, int64(3), view.At(2).(value.Int).Val)
}

// TestRepeatListViewWrapsIndices.
func TestRepeatListViewWrapsIndices(t *testing.T) {
	inner := value.NewList([]value.Value{value.NewInt(1), value.NewInt(2)})
	view := &value.RepeatListView{Inner: inner, Count: 3}
	require.Equal(t, 6, view.Len())
	require.Equal(t, int64(1), view.At(4).(value.Int).Val)
	require.Equal(t, int64(2), view.At(5).(value.Int).Val)
}

// TestRecordGetOwnDoesNotInherit checks GetOwn only sees fields declared
// directly on the record, not inherited ones (spec §3.4 "own property").
func TestRecordGetOwnDoesNotInherit(t *testing.T) {
	proto := value.NewRecord([]string{"greet"}, map[string]value.Value{
		"greet": value.NewString("hi"),
	}, nil)
	child := value.NewRecord([]string{"name"}, map[string]value.Value{
		"name": value.NewString("a"),
	}, proto)

	_, ok := child.GetOwn("greet")
	require.False(t, ok)
	require.Equal(t, value.Value(proto), child.Prototype())
}
