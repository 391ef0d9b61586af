package interp

import (
	"github.com/snek-lang/snek/internal/ast"
	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/value"
)

// jumpSignal is the non-local-exit control value break/continue/return
// statements raise (spec §4.4.3). It is distinct from *snekerr.Error: a
// jumpSignal escaping to the top of a function or loop body is expected
// control flow, not a fault, and callers type-assert for it explicitly
// instead of letting it print as an error.
type jumpSignal struct {
	kind  ast.JumpKind
	value value.Value
}

func (*jumpSignal) Error() string { return "uncaught jump signal" }

func asJump(err error) (*jumpSignal, bool) {
	j, ok := err.(*jumpSignal)
	return j, ok
}

// tailCallSignal carries a pending invocation out of Return's value
// evaluation instead of performing it directly (spec §4.4.4: "the final
// call in a return expression" is tail-call eligible). CallFunction's
// Scripted-function loop catches this and rebinds its own frame in place
// rather than recursing into CallFunction again, so self- and mutual-tail
// recursion run in constant Go stack depth.
type tailCallSignal struct {
	fn   *value.Function
	this value.Value
	args []value.Value
	pos  snekerr.Position
}

func (*tailCallSignal) Error() string { return "uncaught tail call signal" }

func asTailCall(err error) (*tailCallSignal, bool) {
	t, ok := err.(*tailCallSignal)
	return t, ok
}
