package interp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snek-lang/snek/internal/interp"
	"github.com/snek-lang/snek/internal/parser"
)

// run parses and executes src in a fresh Runtime, returning everything
// written through print/write.
func run(t *testing.T, src string) string {
	t.Helper()
	mod, err := parser.Parse([]byte(src), "<test>")
	require.NoError(t, err)

	rt := interp.NewRuntime()
	var out bytes.Buffer
	rt.Interp.Stdout = &out

	for _, stmt := range mod.Statements {
		err := rt.Interp.ExecuteStatement(rt.Interp.Global, stmt)
		require.NoError(t, err)
	}
	return out.String()
}

// TestEndToEndScenarios exercises the first five of spec §8's six literal
// end-to-end inputs; the sixth (star import with alias) is
// module_test.go's TestStarImportWithAliasPacksRecord.
func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "arithmetic precedence",
			src:  "print(1 + 2 * 3)",
			want: "7\n",
		},
		{
			name: "list reverse and join",
			src:  `let xs = [1,2,3]; print(xs.reverse().join(","))`,
			want: "3,2,1\n",
		},
		{
			name: "recursive fibonacci with typed parameter",
			src:  "const f = (n: Int): Int => n < 2 ? n : f(n-1) + f(n-2); print(f(10))",
			want: "55\n",
		},
		{
			name: "record destructuring",
			src:  "let r = { a: 1, b: 2 }; let { a, b } = r; print(a + b)",
			want: "3\n",
		},
		{
			name: "filter then map",
			src:  "let xs = [1,2,3,4]; print(xs.filter(e => e % 2 == 0).map(e => e * e))",
			want: "4, 16\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, run(t, tt.src))
		})
	}
}

// TestTailCallConstantStackDepth exercises spec §8's tail-call property:
// a self-recursive tail call 100000 levels deep completes with the right
// result and leaves the call stack unwound afterwards. The depth during
// the recursion is not sampled.
func TestTailCallConstantStackDepth(t *testing.T) {
	mod, err := parser.Parse([]byte(`
const maxDepth = (n: Int): Int => n > 0 ? maxDepth(n - 1) : 0
print(maxDepth(100000))
`), "<test>")
	require.NoError(t, err)

	rt := interp.NewRuntime()
	var out bytes.Buffer
	rt.Interp.Stdout = &out

	for _, stmt := range mod.Statements {
		require.NoError(t, rt.Interp.ExecuteStatement(rt.Interp.Global, stmt))
	}
	require.Equal(t, "0\n", out.String())
	require.LessOrEqual(t, len(rt.Interp.CallStack), 2)
}

// TestReadOnlyViolation checks that `const` bindings reject reassignment
// (spec §3.6, §3.7).
func TestReadOnlyViolation(t *testing.T) {
	mod, err := parser.Parse([]byte("const x = 1\nx = 2\n"), "<test>")
	require.NoError(t, err)

	rt := interp.NewRuntime()
	var execErr error
	for _, stmt := range mod.Statements {
		if err := rt.Interp.ExecuteStatement(rt.Interp.Global, stmt); err != nil {
			execErr = err
			break
		}
	}
	require.Error(t, execErr)
}

// TestNameClashOnRedeclare checks that declaring the same name twice at
// one scope level is rejected rather than silently shadowing (spec §3.7).
func TestNameClashOnRedeclare(t *testing.T) {
	mod, err := parser.Parse([]byte("let x = 1\nlet x = 2\n"), "<test>")
	require.NoError(t, err)

	rt := interp.NewRuntime()
	var execErr error
	for _, stmt := range mod.Statements {
		if err := rt.Interp.ExecuteStatement(rt.Interp.Global, stmt); err != nil {
			execErr = err
			break
		}
	}
	require.Error(t, execErr)
}

// TestBreakContinue exercises while-loop jump handling (spec §4.4.5).
func TestBreakContinue(t *testing.T) {
	out := run(t, `
let total = 0
let i = 0
while i < 10:
    i = i + 1
    if i % 2 == 0:
        continue
    if i > 7:
        break
    total = total + i
print(total)
`)
	require.Equal(t, "16\n", out)
}

// TestIntDivisionByZeroIsInfinity checks spec §4.4.6's Int-by-zero rule:
// `/` on Int by zero produces +infinity as a Float.
func TestIntDivisionByZeroIsInfinity(t *testing.T) {
	out := run(t, "print(1 / 0)")
	require.Equal(t, "inf\n", out)
}

// TestFloatModuloSignAdjustment checks spec §9's Python-like float modulo
// semantics: sign of the result follows the divisor.
func TestFloatModuloSignAdjustment(t *testing.T) {
	out := run(t, "print(-5.0 % 3.0)")
	require.Equal(t, "1.0\n", out)
}

// TestRecordPrototypeMethods checks that a plain `{...}` record literal
// resolves methods from the builtin Record prototype (spec §4.4.6: `keys`,
// `entries`, `+`), not just the Object root.
func TestRecordPrototypeMethods(t *testing.T) {
	out := run(t, `
let r = { a: 1, b: 2 }
print(r.keys().join(","))
let merged = r + { b: 3, c: 4 }
print(merged.keys().join(","))
print(merged["b"])
`)
	require.Equal(t, "a,b\na,b,c\n3\n", out)
}

// TestRecordSpreadDestructuring checks spec §4.4.2's record-pattern Spread
// case: unconsumed own properties collect into a fresh Record bound to the
// spread target, and that Record still answers to Record prototype methods.
func TestRecordSpreadDestructuring(t *testing.T) {
	out := run(t, `
let r = { a: 1, b: 2, c: 3 }
let { a, ...rest } = r
print(a)
print(rest.keys().join(","))
`)
	require.Equal(t, "1\nb,c\n", out)
}

// TestIntModuloByZeroIsError checks spec §4.4.6: Int `%` by zero is an
// explicit error, unlike Float `%` by zero which produces NaN.
func TestIntModuloByZeroIsError(t *testing.T) {
	mod, err := parser.Parse([]byte("print(1 % 0)"), "<test>")
	require.NoError(t, err)

	rt := interp.NewRuntime()
	var execErr error
	for _, stmt := range mod.Statements {
		if err := rt.Interp.ExecuteStatement(rt.Interp.Global, stmt); err != nil {
			execErr = err
			break
		}
	}
	require.Error(t, execErr)
}

// TestStringIndexOfIsCodepointIndexed checks indexOf/lastIndexOf return a
// rune index, not a byte offset, when the string contains multi-byte
// codepoints before the match (spec §3.4: String indexing is by
// codepoint, matching subscript/codePointAt).
func TestStringIndexOfIsCodepointIndexed(t *testing.T) {
	out := run(t, `print("é".length()); print("éb".indexOf("b")); print("ébéb".lastIndexOf("b"))`)
	require.Equal(t, "1\n1\n3\n", out)
}

// TestRecordLiteralPrototypeField exercises spec §3.4/§4.4.3: a record
// literal's own "[[Prototype]]" field (if itself a Record) becomes the
// chain link, so a method declared only on the base record resolves
// through a derived record's own-field lookup falling through to it.
func TestRecordLiteralPrototypeField(t *testing.T) {
	out := run(t, `
let base = { greet: () => "hi " + this.name }
let child = { ["[[Prototype]]"]: base, name: "ada" }
print(child.greet())
`)
	require.Equal(t, "hi ada\n", out)
}

// TestRecordPrototypeFieldReappliesOnWrite checks a `[]=` write to the
// "[[Prototype]]" key takes effect immediately, since Prototype() derives
// from the own field on every lookup rather than a value fixed at
// construction.
func TestRecordPrototypeFieldReappliesOnWrite(t *testing.T) {
	out := run(t, `
let a = { tag: () => "a" }
let b = { tag: () => "b" }
let r = { x: 1 }
r["[[Prototype]]"] = a
print(r.tag())
r["[[Prototype]]"] = b
print(r.tag())
`)
	require.Equal(t, "a\nb\n", out)
}

// TestRecordOverridesEquality exercises spec §4.4.6: "overriding ==
// overrides both" — a Record's own "==" method is consulted by the `==`
// and `!=` operators instead of a hardcoded structural comparison.
func TestRecordOverridesEquality(t *testing.T) {
	out := run(t, `
let alwaysEqual = { ["=="]: (other) => true }
print(alwaysEqual == { x: 1 })
print(alwaysEqual != { x: 1 })
`)
	require.Equal(t, "true\nfalse\n", out)
}

// TestRecordOverridesComparison exercises spec §4.4.1: each comparison
// operator dispatches to the method named by its own textual form, so a
// Record can override `<` independently of `==`.
func TestRecordOverridesComparison(t *testing.T) {
	out := run(t, `
let r = { ["<"]: (other) => true }
print(r < 1)
`)
	require.Equal(t, "true\n", out)
}

// TestNullRespondsToObjectPrototype exercises spec §4.4.3: "For null, the
// object prototype" — calling an Object-prototype method on null resolves
// instead of failing with a missing-property error.
func TestNullRespondsToObjectPrototype(t *testing.T) {
	out := run(t, `print(null.toString())`)
	require.Equal(t, "null\n", out)
}
