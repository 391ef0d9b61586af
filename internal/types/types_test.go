package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snek-lang/snek/internal/types"
	"github.com/snek-lang/snek/internal/value"
)

// TestNumberAcceptsIntAndFloat exercises spec §4.3: "Builtin Number
// accepts Int and Float."
func TestNumberAcceptsIntAndFloat(t *testing.T) {
	number := types.Builtin(types.TNumber)
	require.True(t, number.Accepts(value.NewInt(1)))
	require.True(t, number.Accepts(value.NewFloat(1.5)))
	require.False(t, number.Accepts(value.NewBoolean(true)))
}

// TestListAcceptsBothListAndTuple exercises spec §4.3: "Builtin List
// accepts both List and Tuple."
func TestListAcceptsBothListAndTuple(t *testing.T) {
	list := types.Builtin(types.TList)
	require.True(t, list.AcceptsType(types.List{Element: types.Builtin(types.TInt)}))
	require.True(t, list.AcceptsType(types.Tuple{Elements: []types.Type{types.Builtin(types.TInt), types.Builtin(types.TString)}}))
}

// TestTupleAcceptsListElementwiseSameSize exercises "Tuple accepts List
// element-wise iff sizes match."
func TestTupleAcceptsListElementwiseSameSize(t *testing.T) {
	tup := types.Tuple{Elements: []types.Type{types.Builtin(types.TInt), types.Builtin(types.TString)}}
	ok := value.NewList([]value.Value{value.NewInt(1), value.NewString("x")})
	require.True(t, tup.Accepts(ok))

	tooShort := value.NewList([]value.Value{value.NewInt(1)})
	require.False(t, tup.Accepts(tooShort))

	wrongType := value.NewList([]value.Value{value.NewString("x"), value.NewInt(1)})
	require.False(t, tup.Accepts(wrongType))
}

// TestRecordAcceptsRequiresAllFieldsPresentAndCompatible exercises
// "Record accepts another Record iff every required field is present
// and type-compatible."
func TestRecordAcceptsRequiresAllFieldsPresentAndCompatible(t *testing.T) {
	rt := types.Record{Fields: map[string]types.Type{
		"a": types.Builtin(types.TInt),
		"b": types.Builtin(types.TString),
	}}

	full := value.NewRecord([]string{"a", "b"}, map[string]value.Value{
		"a": value.NewInt(1),
		"b": value.NewString("x"),
	}, nil)
	require.True(t, rt.Accepts(full))

	missing := value.NewRecord([]string{"a"}, map[string]value.Value{
		"a": value.NewInt(1),
	}, nil)
	require.False(t, rt.Accepts(missing))

	wrongType := value.NewRecord([]string{"a", "b"}, map[string]value.Value{
		"a": value.NewInt(1),
		"b": value.NewInt(2),
	}, nil)
	require.False(t, rt.Accepts(wrongType))

	// Extra own fields beyond the required set are fine.
	extra := value.NewRecord([]string{"a", "b", "c"}, map[string]value.Value{
		"a": value.NewInt(1),
		"b": value.NewString("x"),
		"c": value.NewBoolean(true),
	}, nil)
	require.True(t, rt.Accepts(extra))
}

// TestIntersectionRequiresAllMembersAccept exercises "Intersection
// requires all members accept."
func TestIntersectionRequiresAllMembersAccept(t *testing.T) {
	inter := types.Intersection{Members: []types.Type{
		types.Builtin(types.TNumber),
		types.Builtin(types.TInt),
	}}
	require.True(t, inter.Accepts(value.NewInt(1)))
	require.False(t, inter.Accepts(value.NewFloat(1.0)))
}

// TestUnionRequiresAtLeastOneMemberAccept exercises "Union requires at
// least one member to accept."
func TestUnionRequiresAtLeastOneMemberAccept(t *testing.T) {
	union := types.Union{Members: []types.Type{
		types.Builtin(types.TString),
		types.Builtin(types.TInt),
	}}
	require.True(t, union.Accepts(value.NewInt(1)))
	require.True(t, union.Accepts(value.NewString("x")))
	require.False(t, union.Accepts(value.NewBoolean(false)))
}

// TestAnyAcceptsEverything exercises "Any accepts everything."
func TestAnyAcceptsEverything(t *testing.T) {
	any := types.Any{}
	require.True(t, any.Accepts(value.NewBoolean(true)))
	require.True(t, any.Accepts(value.TheNull))
	require.True(t, any.AcceptsType(types.Builtin(types.TInt)))
}

// TestBooleanLiteralIsASingleton checks the literal type accepts only
// its own value, not the general Boolean.
func TestBooleanLiteralIsASingleton(t *testing.T) {
	lit := types.BooleanLiteral{Value: true}
	require.True(t, lit.Accepts(value.NewBoolean(true)))
	require.False(t, lit.Accepts(value.NewBoolean(false)))
}

// TestReifyDedupesAndUnions exercises spec §4.3's function return-type
// inference reduction: zero candidates -> Void, one -> itself, many
// (deduped) -> Union.
func TestReifyDedupesAndUnions(t *testing.T) {
	require.Equal(t, types.Builtin(types.TVoid), types.Reify(nil))

	single := types.Reify([]types.Type{types.Builtin(types.TInt)})
	require.Equal(t, types.Builtin(types.TInt), single)

	union := types.Reify([]types.Type{
		types.Builtin(types.TInt),
		types.Builtin(types.TString),
		types.Builtin(types.TInt),
	})
	u, ok := union.(types.Union)
	require.True(t, ok)
	require.Len(t, u.Members, 2)
}
