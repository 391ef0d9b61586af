package interp

import (
	"github.com/snek-lang/snek/internal/ast"
	"github.com/snek-lang/snek/internal/scope"
	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/types"
	"github.com/snek-lang/snek/internal/value"
)

// CallFunction invokes fn with the given this/args (spec §4.4.4). Bound
// functions unwrap in a loop rather than recursing, so a chain of bound
// lookups costs no extra Go stack depth.
func (it *Interp) CallFunction(fn *value.Function, this value.Value, args []value.Value, pos snekerr.Position) (value.Value, error) {
	for fn.FnKind == value.FunctionBound {
		this = fn.BoundThis
		fn = fn.Target
	}
	switch fn.FnKind {
	case value.FunctionNative:
		it.pushFrame(fn.Name, pos)
		v, err := fn.Native(it, this, args)
		it.popFrame()
		if err != nil {
			return nil, it.withStack(err)
		}
		return v, nil
	case value.FunctionScripted:
		// Trampoline: a tail call reaching this loop from fn's own body
		// (spec §4.4.4) replaces this frame's binding and position in
		// place instead of recursing into CallFunction, so a chain of
		// tail calls runs in constant Go stack depth. pushed tracks
		// whether this loop has already pushed its one call-stack frame.
		pushed := false
		for {
			callScope := fn.Closure.Child()
			if err := it.bindParameters(callScope, fn.Parameters, args, pos); err != nil {
				if pushed {
					it.popFrame()
				}
				return nil, err
			}
			if this != nil {
				callScope.DeclareVariable("this", this, nil, false, true, false)
			}
			if pushed {
				it.replaceFrame(fn.Name, pos)
			} else {
				it.pushFrame(fn.Name, pos)
				pushed = true
			}
			err := it.ExecuteStatement(callScope, fn.Body)
			if err == nil {
				it.popFrame()
				return value.TheNull, nil
			}
			if tc, ok := asTailCall(err); ok {
				next := tc.fn
				nextThis := tc.this
				for next.FnKind == value.FunctionBound {
					nextThis = next.BoundThis
					next = next.Target
				}
				if next.FnKind != value.FunctionScripted {
					it.popFrame()
					return it.CallFunction(tc.fn, tc.this, tc.args, tc.pos)
				}
				fn, this, args, pos = next, nextThis, tc.args, tc.pos
				continue
			}
			if j, ok := asJump(err); ok {
				it.popFrame()
				switch j.kind {
				case ast.JumpReturn:
					if j.value == nil {
						return value.TheNull, nil
					}
					return j.value, nil
				default:
					return nil, snekerr.Runtimef(pos, "`break'/`continue' used outside of a loop.")
				}
			}
			it.popFrame()
			return nil, it.withStack(err)
		}
	default:
		return nil, snekerr.Runtimef(pos, "Value is not callable.")
	}
}

// bindParameters declares each parameter in callScope, expanding a
// trailing rest parameter into a List of the remaining arguments and
// rejecting an omitted argument that has no default (spec §3.4.2).
func (it *Interp) bindParameters(callScope *scope.Scope, params []*ast.Parameter, args []value.Value, pos snekerr.Position) error {
	for i, p := range params {
		if p.Rest {
			rest := []value.Value{}
			if i < len(args) {
				rest = append(rest, args[i:]...)
			}
			callScope.DeclareVariable(p.Name, value.NewList(rest), nil, false, false, false)
			return nil
		}
		var v value.Value
		switch {
		case i < len(args):
			v = args[i]
		case p.Default != nil:
			dv, err := it.EvaluateExpression(callScope, p.Default)
			if err != nil {
				return err
			}
			v = dv
		default:
			return snekerr.Runtimef(pos, "Missing argument for parameter `%s'.", p.Name)
		}
		if p.Type != nil {
			if typ, err := types.ResolveType(callScope, p.Type); err == nil && typ != nil && !typ.Accepts(v) {
				return snekerr.New(snekerr.TypeMismatch, pos, "Argument for `"+p.Name+"' does not match its declared type.")
			}
		}
		callScope.DeclareVariable(p.Name, v, nil, false, false, false)
	}
	return nil
}

// GetPrototypeOf returns v's [[Prototype]] link, dispatching to the
// correct builtin root prototype for non-Record kinds (spec §4.4.5).
func (it *Interp) GetPrototypeOf(v value.Value) value.Value {
	switch v.Kind() {
	case value.KindBoolean:
		return it.Prototypes.Boolean
	case value.KindInt:
		return it.Prototypes.Int
	case value.KindFloat:
		return it.Prototypes.Float
	case value.KindString:
		return it.Prototypes.String
	case value.KindList:
		return it.Prototypes.List
	case value.KindFunction:
		return it.Prototypes.Function
	case value.KindRecord:
		return value.GetPrototypeOf(v)
	case value.KindNull:
		return it.Prototypes.Object
	default:
		return nil
	}
}

// GetProperty looks up name on v, walking the [[Prototype]] chain, and
// returns a Bound function when the found field is itself a Function
// (spec §4.4.5).
func (it *Interp) GetProperty(v value.Value, name string, pos snekerr.Position) (value.Value, error) {
	if rv, ok := v.(value.RecordValue); ok {
		if fv, ok := rv.GetOwn(name); ok {
			return bindIfFunction(fv, v), nil
		}
	}
	for proto := it.GetPrototypeOf(v); proto != nil; proto = it.GetPrototypeOf(proto) {
		rv, ok := proto.(value.RecordValue)
		if !ok {
			break
		}
		if fv, ok := rv.GetOwn(name); ok {
			return bindIfFunction(fv, v), nil
		}
	}
	return nil, snekerr.New(snekerr.MissingProperty, pos, "Value has no property named `"+name+"'.")
}

func bindIfFunction(v value.Value, this value.Value) value.Value {
	if fn, ok := v.(*value.Function); ok {
		return fn.Bind(this)
	}
	return v
}

// callMethod is GetProperty followed by an immediate call, used for
// operator dispatch (spec §4.4.1, §4.4.6).
func (it *Interp) callMethod(receiver value.Value, name string, args []value.Value, pos snekerr.Position) (value.Value, error) {
	method, err := it.GetProperty(receiver, name, pos)
	if err != nil {
		return nil, err
	}
	fn, ok := method.(*value.Function)
	if !ok {
		return nil, snekerr.Runtimef(pos, "Property `%s' is not callable.", name)
	}
	return it.CallFunction(fn, receiver, args, pos)
}
