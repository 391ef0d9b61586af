package value

import (
	"github.com/snek-lang/snek/internal/ast"
	"github.com/snek-lang/snek/internal/scope"
	"github.com/snek-lang/snek/internal/types"
)

// FunctionKind distinguishes the three function realizations (spec §3.4).
type FunctionKind int

const (
	FunctionNative FunctionKind = iota
	FunctionScripted
	FunctionBound
)

// CallContext is the minimal callback surface a native function needs to
// invoke another Snek function (e.g. List.map's callback argument).
// internal/interp.Interp implements this; internal/value never imports
// internal/interp, breaking what would otherwise be a cycle.
type CallContext interface {
	Call(fn Value, this Value, args []Value) (Value, error)
}

// NativeFunc is the Go implementation behind a builtin prototype method.
type NativeFunc func(ctx CallContext, this Value, args []Value) (Value, error)

// Function is a first-class function value, in one of three forms: a
// Native builtin, a Scripted closure over a parsed body, or a Bound
// function that fixes `this` for a wrapped target function -- produced by
// property lookup when the looked-up field is itself a Function (spec
// §3.4, §4.4.5).
type Function struct {
	base
	FnKind FunctionKind
	Name   string

	// Scripted
	Parameters []*ast.Parameter
	Body       ast.Statement
	Closure    *scope.Scope

	// Native
	Native NativeFunc

	// Bound
	Target    *Function
	BoundThis Value

	Static *types.Function
}

// NewScriptedFunction builds a Scripted function closing over closure.
func NewScriptedFunction(name string, params []*ast.Parameter, body ast.Statement, closure *scope.Scope, static *types.Function) *Function {
	return &Function{
		FnKind:     FunctionScripted,
		Name:       name,
		Parameters: params,
		Body:       body,
		Closure:    closure,
		Static:     static,
	}
}

// NewNativeFunction builds a builtin prototype method.
func NewNativeFunction(name string, fn NativeFunc, static *types.Function) *Function {
	return &Function{FnKind: FunctionNative, Name: name, Native: fn, Static: static}
}

// Bind produces a Bound function that fixes this for a later call into f,
// per spec §4.4.5's method-lookup-produces-a-Bound-function rule.
func (f *Function) Bind(this Value) *Function {
	return &Function{
		FnKind:    FunctionBound,
		Name:      f.Name,
		Target:    f,
		BoundThis: this,
		Static:    f.Static,
	}
}

func (f *Function) Kind() types.ValueKind { return KindFunction }
func (f *Function) Inspect() string {
	if f.Name != "" {
		return "<function " + f.Name + ">"
	}
	return "<function>"
}
func (f *Function) FunctionType() *types.Function { return f.Static }

// Arity returns the declared parameter count for a Scripted function, or
// -1 when it cannot be determined statically (Native, Bound).
func (f *Function) Arity() int {
	if f.FnKind == FunctionScripted {
		return len(f.Parameters)
	}
	return -1
}
