// Package interp implements Snek's tree-walking evaluator (spec §4.4): it
// walks the AST produced by internal/parser directly, dispatching
// arithmetic and comparison through prototype methods rather than
// hard-coded per-type switches, and replacing the top call frame in place
// for a self tail call so constant-depth recursion runs in constant stack
// space.
package interp

import (
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/snek-lang/snek/internal/scope"
	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/value"
)

// Interp holds everything one evaluation session shares: the global
// scope, the nine builtin prototypes, the small-integer cache range, and
// the live call stack used to build error traces.
type Interp struct {
	Global     *scope.Scope
	Prototypes *Prototypes
	CallStack  []snekerr.Frame
	Importer   Importer
	Stdout     io.Writer

	IntCacheMin int64
	IntCacheMax int64
	intCache    []*value.Int
}

// Runtime wraps an Interp with a UUID identity. The CLI shows it in the
// REPL banner; the module importer and the REPL history file do not use it.
type Runtime struct {
	ID     uuid.UUID
	Interp *Interp
}

// NewRuntime builds a fresh Interp with its nine builtin prototypes
// installed and a fresh identity.
func NewRuntime() *Runtime {
	it := &Interp{
		Global:      scope.New(),
		Stdout:      os.Stdout,
		IntCacheMin: -5,
		IntCacheMax: 256,
	}
	it.Prototypes = newPrototypes(it)
	it.installGlobals()
	return &Runtime{ID: uuid.New(), Interp: it}
}

// Call implements value.CallContext so native methods (List.map's
// callback, for instance) can invoke back into Snek functions without
// internal/value importing internal/interp.
func (it *Interp) Call(fn value.Value, this value.Value, args []value.Value) (value.Value, error) {
	f, ok := fn.(*value.Function)
	if !ok {
		return nil, snekerr.Runtimef(snekerr.EvalPosition, "Value is not callable.")
	}
	return it.CallFunction(f, this, args, snekerr.EvalPosition)
}

func (it *Interp) pushFrame(name string, pos snekerr.Position) {
	it.CallStack = append(it.CallStack, snekerr.Frame{Position: pos, FunctionName: name})
}

// replaceFrame overwrites the top call-stack frame in place for a tail
// call, rather than pushing a new one, so the frame count stays bounded
// across arbitrarily deep tail recursion (spec §4.4.4).
func (it *Interp) replaceFrame(name string, pos snekerr.Position) {
	if len(it.CallStack) == 0 {
		it.pushFrame(name, pos)
		return
	}
	top := &it.CallStack[len(it.CallStack)-1]
	top.Position = pos
	top.FunctionName = name
}

func (it *Interp) popFrame() {
	if len(it.CallStack) > 0 {
		it.CallStack = it.CallStack[:len(it.CallStack)-1]
	}
}

func (it *Interp) snapshotStack() []snekerr.Frame {
	out := make([]snekerr.Frame, len(it.CallStack))
	copy(out, it.CallStack)
	return out
}

func (it *Interp) withStack(err error) error {
	if se, ok := err.(*snekerr.Error); ok && len(se.Stack) == 0 {
		se.WithStack(it.snapshotStack())
	}
	return err
}

// Int returns a shared Int value for v when it falls in the small-integer
// cache range, matching how CPython/Lua-style runtimes avoid reallocating
// the handful of integers every loop counter touches.
func (it *Interp) Int(v int64) *value.Int {
	if v < it.IntCacheMin || v > it.IntCacheMax {
		n := value.NewInt(v)
		return &n
	}
	if it.intCache == nil {
		it.intCache = make([]*value.Int, it.IntCacheMax-it.IntCacheMin+1)
	}
	idx := v - it.IntCacheMin
	if it.intCache[idx] == nil {
		n := value.NewInt(v)
		it.intCache[idx] = &n
	}
	return it.intCache[idx]
}
