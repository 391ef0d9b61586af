package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snek-lang/snek/internal/ast"
	"github.com/snek-lang/snek/internal/parser"
)

func parseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	mod, err := parser.Parse([]byte(src), "<test>")
	require.NoError(t, err)
	require.Len(t, mod.Statements, 1)
	stmt, ok := mod.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok, "expected an expression statement, got %T", mod.Statements[0])
	return stmt.Expression
}

// TestBinaryPrecedence exercises spec §4.2's precedence ladder: `*` binds
// tighter than `+`, so `1 + 2 * 3` must parse as `1 + (2 * 3)`.
func TestBinaryPrecedence(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3")
	add, ok := expr.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, "+", add.Operator)

	_, ok = add.Left.(*ast.Int)
	require.True(t, ok)

	mul, ok := add.Right.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, "*", mul.Operator)
}

// TestLogicalBelowBitwise exercises the ladder's middle: `&&` is looser
// than `|`, so `a | b && c` parses as `(a | b) && c`.
func TestLogicalBelowBitwise(t *testing.T) {
	expr := parseExpr(t, "a | b && c")
	and, ok := expr.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, "&&", and.Operator)

	or, ok := and.Left.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, "|", or.Operator)
}

// TestAssignmentIsRightAssociative exercises spec §4.2 rule 1: `a = b = c`
// parses as `a = (b = c)`.
func TestAssignmentIsRightAssociative(t *testing.T) {
	expr := parseExpr(t, "a = b = c")
	outer, ok := expr.(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, "", outer.CompoundOperator)

	_, ok = outer.Target.(*ast.Id)
	require.True(t, ok)

	inner, ok := outer.Value.(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, "", inner.CompoundOperator)
}

// TestCompoundAssignOperator checks a compound form (`+=`) is captured
// distinctly from plain `=`.
func TestCompoundAssignOperator(t *testing.T) {
	expr := parseExpr(t, "a += 1")
	assign, ok := expr.(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, "+=", assign.CompoundOperator)
}

// TestTernaryRightAssociative: `a ? b : c ? d : e` parses as
// `a ? b : (c ? d : e)`.
func TestTernaryRightAssociative(t *testing.T) {
	expr := parseExpr(t, "a ? b : c ? d : e")
	outer, ok := expr.(*ast.Ternary)
	require.True(t, ok)
	_, ok = outer.Alternate.(*ast.Ternary)
	require.True(t, ok)
}

// TestPostfixChain checks `.`, `(...)` and `[...]` chain left-to-right:
// `a.b(c)[d]` is Subscript(Call(Property(a, b), c), d).
func TestPostfixChain(t *testing.T) {
	expr := parseExpr(t, "a.b(c)[d]")
	sub, ok := expr.(*ast.Subscript)
	require.True(t, ok)

	call, ok := sub.Receiver.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Arguments, 1)

	prop, ok := call.Callee.(*ast.Property)
	require.True(t, ok)
	require.Equal(t, "b", prop.Name)
}

// TestConditionalChainSetsConditionalFlag covers `?.`/`?.()`/`?.[]`
// producing Conditional=true on the respective node.
func TestConditionalChainSetsConditionalFlag(t *testing.T) {
	prop := parseExpr(t, "a?.b").(*ast.Property)
	require.True(t, prop.Conditional)

	call := parseExpr(t, "a?.(1)").(*ast.Call)
	require.True(t, call.Conditional)

	sub := parseExpr(t, "a?.[0]").(*ast.Subscript)
	require.True(t, sub.Conditional)
}

// TestSpreadInCall checks `...` before a call argument marks it as a
// spread; TestDoubleDotIsSyntaxError checks `..` alone is an error.
func TestSpreadInCall(t *testing.T) {
	call := parseExpr(t, "f(...xs)").(*ast.Call)
	require.Len(t, call.Arguments, 1)
	require.True(t, call.ArgumentSpreads[0])
	_, ok := call.Arguments[0].(*ast.Id)
	require.True(t, ok)
}

func TestDoubleDotIsSyntaxError(t *testing.T) {
	_, err := parser.Parse([]byte("a..b"), "<test>")
	require.Error(t, err)
}

// TestFunctionLiteralDetectionZeroArg exercises spec §4.2's lookahead:
// `()` followed by `=>`/`->`/`:` is a function literal, not an empty
// parenthesized expression (which Snek has no syntax for otherwise).
func TestFunctionLiteralDetectionZeroArg(t *testing.T) {
	expr := parseExpr(t, "() => 1")
	fn, ok := expr.(*ast.Function)
	require.True(t, ok)
	require.Len(t, fn.Parameters, 0)
}

// TestFunctionLiteralDetectionOneArgRetro exercises the retroactive
// reinterpretation: `(x)` followed by `=>` becomes a one-parameter
// function literal rather than a parenthesized identifier.
func TestFunctionLiteralDetectionOneArgRetro(t *testing.T) {
	expr := parseExpr(t, "(x) => x + 1")
	fn, ok := expr.(*ast.Function)
	require.True(t, ok)
	require.Len(t, fn.Parameters, 1)
	require.Equal(t, "x", fn.Parameters[0].Name)
}

// TestFunctionLiteralWithTypedParamsAndBlockBody exercises the `(id:`
// lookahead, block-form body, and a declared return type.
func TestFunctionLiteralWithTypedParamsAndBlockBody(t *testing.T) {
	expr := parseExpr(t, "(n: Int): Int:\n    return n")
	fn, ok := expr.(*ast.Function)
	require.True(t, ok)
	require.Len(t, fn.Parameters, 1)
	require.Equal(t, "n", fn.Parameters[0].Name)
	require.NotNil(t, fn.Parameters[0].Type)
	require.NotNil(t, fn.Return)
}

// TestFunctionLiteralColonReturnTypeWithArrowBody is spec §8 scenario 3's
// own syntax: `(n: Int): Int => ...`. The `:` right after the parameter
// list is the return-type annotation, not a block-body introducer, since
// it is itself followed by a type and then `=>` (spec §4.2).
func TestFunctionLiteralColonReturnTypeWithArrowBody(t *testing.T) {
	expr := parseExpr(t, "(n: Int): Int => n")
	fn, ok := expr.(*ast.Function)
	require.True(t, ok)
	require.NotNil(t, fn.Return)
	jump, ok := fn.Body.(*ast.Jump)
	require.True(t, ok)
	require.Equal(t, ast.JumpReturn, jump.Kind)
}

// TestFunctionLiteralColonBodyWithoutReturnType checks the no-return-type
// case still works: a lone `:` with no type between it and the body
// introduces the block directly.
func TestFunctionLiteralColonBodyWithoutReturnType(t *testing.T) {
	expr := parseExpr(t, "(n: Int):\n    return n")
	fn, ok := expr.(*ast.Function)
	require.True(t, ok)
	require.Nil(t, fn.Return)
}

// TestRestParameterIsLast checks a `...name` rest parameter parses
// fine when last and its Rest flag is set.
func TestRestParameterIsLast(t *testing.T) {
	expr := parseExpr(t, "(a, ...rest) => a")
	fn := expr.(*ast.Function)
	require.Len(t, fn.Parameters, 2)
	require.False(t, fn.Parameters[0].Rest)
	require.True(t, fn.Parameters[1].Rest)
}

// TestParenthesizedExpressionIsNotAFunction confirms a plain `(expr)` with
// no trailing `=>`/`->`/`:` parses through as the inner expression, not a
// function literal.
func TestParenthesizedExpressionIsNotAFunction(t *testing.T) {
	expr := parseExpr(t, "(1 + 2) * 3")
	mul, ok := expr.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, "*", mul.Operator)
	_, ok = mul.Left.(*ast.Binary)
	require.True(t, ok)
}

// TestListDestructuringAssignTarget checks spec §4.2's pattern
// assignability for lists: a list literal of assignable elements is itself
// an assignment target. Record patterns are not covered here.
func TestListDestructuringAssignTarget(t *testing.T) {
	mod, err := parser.Parse([]byte("[a, b] = pair"), "<test>")
	require.NoError(t, err)
	require.Len(t, mod.Statements, 1)
	stmt := mod.Statements[0].(*ast.ExpressionStatement)
	assign := stmt.Expression.(*ast.Assign)
	list, ok := assign.Target.(*ast.List)
	require.True(t, ok)
	require.Len(t, list.Elements, 2)
}

func TestNonAssignableTargetIsSyntaxError(t *testing.T) {
	_, err := parser.Parse([]byte("1 + 2 = 3"), "<test>")
	require.Error(t, err)
}

// TestIncrementRequiresAssignableOperand checks `5++` is rejected (spec
// §4.2: only assignable expressions may be `++`/`--` operands).
func TestIncrementRequiresAssignableOperand(t *testing.T) {
	_, err := parser.Parse([]byte("5++"), "<test>")
	require.Error(t, err)
}

func TestPrePostIncrementFlag(t *testing.T) {
	pre := parseExpr(t, "++a").(*ast.Increment)
	require.True(t, pre.Pre)

	post := parseExpr(t, "a++").(*ast.Increment)
	require.False(t, post.Pre)
}

// TestImportStarWithAlias and TestImportNamedWithAlias exercise spec
// §4.2's import-specifier grammar.
func TestImportNamedWithAlias(t *testing.T) {
	mod, err := parser.Parse([]byte(`import foo as bar from "lib"`), "<test>")
	require.NoError(t, err)
	imp := mod.Statements[0].(*ast.Import)
	require.Equal(t, "lib", imp.Path)
	require.Len(t, imp.Specifiers, 1)
	named := imp.Specifiers[0]
	require.Equal(t, ast.ImportNamed, named.Kind)
	require.Equal(t, "foo", named.Name)
	require.Equal(t, "bar", named.Alias)
}

func TestImportStarWithAlias(t *testing.T) {
	mod, err := parser.Parse([]byte(`import * as m from "lib"`), "<test>")
	require.NoError(t, err)
	imp := mod.Statements[0].(*ast.Import)
	star := imp.Specifiers[0]
	require.Equal(t, ast.ImportStar, star.Kind)
	require.Equal(t, "m", star.Alias)
}

// TestSemicolonGroupsStatementsOnOneLine exercises spec §4.2:
// "Semicolon-separated simple statements on a single line are grouped
// into a Block."
func TestSemicolonGroupsStatementsOnOneLine(t *testing.T) {
	mod, err := parser.Parse([]byte("let a = 1; let b = 2"), "<test>")
	require.NoError(t, err)
	require.Len(t, mod.Statements, 1)
	block, ok := mod.Statements[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)
}

// TestIfElseIfChain exercises the `if cond: block else if cond: block
// else: block` grammar.
func TestIfElseIfChain(t *testing.T) {
	src := "if a:\n    1\nelse if b:\n    2\nelse:\n    3"
	mod, err := parser.Parse([]byte(src), "<test>")
	require.NoError(t, err)
	ifstmt, ok := mod.Statements[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, ifstmt.Branches, 2)
	require.NotNil(t, ifstmt.Else)
}
