package interp

import (
	"math"

	"github.com/snek-lang/snek/internal/ast"
	"github.com/snek-lang/snek/internal/scope"
	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/types"
	"github.com/snek-lang/snek/internal/value"
)

// EvaluateExpression evaluates expr in sc, per spec §4.4.
func (it *Interp) EvaluateExpression(sc *scope.Scope, expr ast.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Boolean:
		return value.NewBoolean(e.Value), nil
	case *ast.Int:
		return it.Int(e.Value), nil
	case *ast.Float:
		return value.NewFloat(e.Value), nil
	case *ast.String:
		return value.NewString(e.Value), nil
	case *ast.Null:
		return value.TheNull, nil
	case *ast.Id:
		v, _, _, ok := sc.Lookup(e.Name)
		if !ok {
			return nil, snekerr.Runtimef(e.Pos, "Unknown identifier `%s'.", e.Name)
		}
		return v.(value.Value), nil
	case *ast.List:
		return it.evalList(sc, e)
	case *ast.Record:
		return it.evalRecord(sc, e)
	case *ast.Function:
		return it.evalFunctionLiteral(sc, e)
	case *ast.Unary:
		return it.evalUnary(sc, e)
	case *ast.Binary:
		return it.evalBinary(sc, e)
	case *ast.Ternary:
		return it.evalTernary(sc, e)
	case *ast.Assign:
		return it.evalAssign(sc, e)
	case *ast.Call:
		return it.evalCall(sc, e)
	case *ast.Property:
		return it.evalProperty(sc, e)
	case *ast.Subscript:
		return it.evalSubscript(sc, e)
	case *ast.Increment:
		return it.evalIncDec(sc, e.Operand, e.Pos, 1, e.Pre)
	case *ast.Decrement:
		return it.evalIncDec(sc, e.Operand, e.Pos, -1, e.Pre)
	case *ast.Spread:
		return it.EvaluateExpression(sc, e.Expression)
	default:
		return nil, snekerr.Runtimef(expr.Position(), "Cannot evaluate expression.")
	}
}

func (it *Interp) evalList(sc *scope.Scope, e *ast.List) (value.Value, error) {
	var elems []value.Value
	for _, el := range e.Elements {
		v, err := it.EvaluateExpression(sc, el.Expression)
		if err != nil {
			return nil, err
		}
		if el.Kind == ast.ElementSpread {
			lv, ok := v.(value.ListValue)
			if !ok {
				return nil, snekerr.Runtimef(el.Expression.Position(), "Cannot spread a non-list value.")
			}
			elems = append(elems, lv.Items()...)
		} else {
			elems = append(elems, v)
		}
	}
	return value.NewList(elems), nil
}

func (it *Interp) evalRecord(sc *scope.Scope, e *ast.Record) (value.Value, error) {
	order := make([]string, 0, len(e.Fields))
	data := make(map[string]value.Value, len(e.Fields))
	put := func(name string, v value.Value) {
		if _, exists := data[name]; !exists {
			order = append(order, name)
		}
		data[name] = v
	}
	for _, f := range e.Fields {
		switch f.Kind {
		case ast.FieldShorthand:
			v, _, _, ok := sc.Lookup(f.Name)
			if !ok {
				return nil, snekerr.Runtimef(f.Pos, "Unknown identifier `%s'.", f.Name)
			}
			put(f.Name, v.(value.Value))
		case ast.FieldNamed:
			v, err := it.EvaluateExpression(sc, f.Value)
			if err != nil {
				return nil, err
			}
			put(f.Name, v)
		case ast.FieldComputed:
			key, err := it.EvaluateExpression(sc, f.Key)
			if err != nil {
				return nil, err
			}
			sv, ok := key.(value.StringValue)
			if !ok {
				return nil, snekerr.Runtimef(f.Pos, "Computed field name must be a String.")
			}
			v, err := it.EvaluateExpression(sc, f.Value)
			if err != nil {
				return nil, err
			}
			put(sv.StringValue(), v)
		case ast.FieldFunction:
			fn, err := it.evalFunctionLiteral(sc, &ast.Function{Pos: f.Pos, Parameters: f.Params, Return: f.Return, Body: f.Body})
			if err != nil {
				return nil, err
			}
			fn.(*value.Function).Name = f.Name
			put(f.Name, fn)
		case ast.FieldSpread:
			v, err := it.EvaluateExpression(sc, f.Value)
			if err != nil {
				return nil, err
			}
			rv, ok := v.(value.RecordValue)
			if !ok {
				return nil, snekerr.Runtimef(f.Pos, "Cannot spread a non-record value.")
			}
			for _, k := range rv.Keys() {
				fv, _ := rv.GetOwn(k)
				put(k, fv)
			}
		}
	}
	return value.NewRecord(order, data, it.Prototypes.Record), nil
}

func (it *Interp) evalFunctionLiteral(sc *scope.Scope, e *ast.Function) (value.Value, error) {
	static, _ := types.ResolveExpression(sc, e)
	fnType, _ := static.(types.Function)
	fn := value.NewScriptedFunction("", e.Parameters, e.Body, sc, &fnType)
	return fn, nil
}

func (it *Interp) evalUnary(sc *scope.Scope, e *ast.Unary) (value.Value, error) {
	operand, err := it.EvaluateExpression(sc, e.Operand)
	if err != nil {
		return nil, err
	}
	if e.Operator == "!" {
		return value.NewBoolean(!truthy(operand)), nil
	}
	methodName := map[string]string{"+": "+@", "-": "-@", "~": "~@"}[e.Operator]
	return it.callMethod(operand, methodName, nil, e.Pos)
}

func truthy(v value.Value) bool {
	switch v.Kind() {
	case value.KindNull:
		return false
	case value.KindBoolean:
		return v.BoolValue()
	default:
		return true
	}
}

func (it *Interp) evalBinary(sc *scope.Scope, e *ast.Binary) (value.Value, error) {
	switch e.Operator {
	case "&&":
		left, err := it.EvaluateExpression(sc, e.Left)
		if err != nil {
			return nil, err
		}
		if !truthy(left) {
			return left, nil
		}
		return it.EvaluateExpression(sc, e.Right)
	case "||":
		left, err := it.EvaluateExpression(sc, e.Left)
		if err != nil {
			return nil, err
		}
		if truthy(left) {
			return left, nil
		}
		return it.EvaluateExpression(sc, e.Right)
	case "??":
		left, err := it.EvaluateExpression(sc, e.Left)
		if err != nil {
			return nil, err
		}
		if left.Kind() != value.KindNull {
			return left, nil
		}
		return it.EvaluateExpression(sc, e.Right)
	}
	left, err := it.EvaluateExpression(sc, e.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.EvaluateExpression(sc, e.Right)
	if err != nil {
		return nil, err
	}
	// Every non-short-circuit binary operator, including `==`/`!=` and the
	// four comparisons, dispatches to a method named by its own textual
	// form (spec §4.4.1, §4.4.6); Object's prototype supplies the default
	// `==`/`!=` (value.Equals) so a Record overrides them like any other
	// operator method.
	return it.callMethod(left, e.Operator, []value.Value{right}, e.Pos)
}

func (it *Interp) evalTernary(sc *scope.Scope, e *ast.Ternary) (value.Value, error) {
	cond, err := it.EvaluateExpression(sc, e.Condition)
	if err != nil {
		return nil, err
	}
	if truthy(cond) {
		return it.EvaluateExpression(sc, e.Consequent)
	}
	return it.EvaluateExpression(sc, e.Alternate)
}

func (it *Interp) evalCall(sc *scope.Scope, e *ast.Call) (value.Value, error) {
	fn, this, args, err := it.evalCallParts(sc, e)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return value.TheNull, nil
	}
	return it.CallFunction(fn, this, args, e.Pos)
}

// evalCallTail evaluates e's callee and arguments exactly like evalCall,
// but instead of invoking the resolved function it reports the pending
// invocation as a *tailCallSignal (spec §4.4.4), letting CallFunction's
// Scripted-function loop replace its own frame instead of recursing.
func (it *Interp) evalCallTail(sc *scope.Scope, e *ast.Call) (value.Value, error) {
	fn, this, args, err := it.evalCallParts(sc, e)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, &jumpSignal{kind: ast.JumpReturn, value: value.TheNull}
	}
	return nil, &tailCallSignal{fn: fn, this: this, args: args, pos: e.Pos}
}

func (it *Interp) evalCallParts(sc *scope.Scope, e *ast.Call) (*value.Function, value.Value, []value.Value, error) {
	var this value.Value
	calleeVal, err := it.evalCallee(sc, e.Callee, &this)
	if err != nil {
		return nil, nil, nil, err
	}
	if e.Conditional && calleeVal.Kind() == value.KindNull {
		return nil, nil, nil, nil
	}
	fn, ok := calleeVal.(*value.Function)
	if !ok {
		return nil, nil, nil, snekerr.Runtimef(e.Pos, "Value is not callable.")
	}
	args, err := it.evalArguments(sc, e.Arguments, e.ArgumentSpreads)
	if err != nil {
		return nil, nil, nil, err
	}
	return fn, this, args, nil
}

// evalTailExpression evaluates expr as the value of a `return` statement
// (spec §4.4.4's tail positions: a bare call, and the consequent/
// alternate of a ternary reached from one). A *tailCallSignal return
// means the caller should hand the pending invocation to CallFunction's
// trampoline instead of treating it as a final value.
func (it *Interp) evalTailExpression(sc *scope.Scope, expr ast.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Ternary:
		cond, err := it.EvaluateExpression(sc, e.Condition)
		if err != nil {
			return nil, err
		}
		if truthy(cond) {
			return it.evalTailExpression(sc, e.Consequent)
		}
		return it.evalTailExpression(sc, e.Alternate)
	case *ast.Call:
		if !e.Conditional {
			return it.evalCallTail(sc, e)
		}
	}
	return it.EvaluateExpression(sc, expr)
}

// evalCallee evaluates a call's callee expression, capturing the method
// receiver into *this when the callee is a Property access (spec §4.4.5:
// plain function values are bound with this=null).
func (it *Interp) evalCallee(sc *scope.Scope, callee ast.Expression, this *value.Value) (value.Value, error) {
	if prop, ok := callee.(*ast.Property); ok {
		recv, err := it.EvaluateExpression(sc, prop.Receiver)
		if err != nil {
			return nil, err
		}
		if prop.Conditional && recv.Kind() == value.KindNull {
			return value.TheNull, nil
		}
		*this = recv
		return it.GetProperty(recv, prop.Name, prop.Pos)
	}
	return it.EvaluateExpression(sc, callee)
}

func (it *Interp) evalArguments(sc *scope.Scope, exprs []ast.Expression, spreads []bool) ([]value.Value, error) {
	var args []value.Value
	for i, a := range exprs {
		v, err := it.EvaluateExpression(sc, a)
		if err != nil {
			return nil, err
		}
		if i < len(spreads) && spreads[i] {
			lv, ok := v.(value.ListValue)
			if !ok {
				return nil, snekerr.Runtimef(a.Position(), "Cannot spread a non-list value as arguments.")
			}
			args = append(args, lv.Items()...)
		} else {
			args = append(args, v)
		}
	}
	return args, nil
}

func (it *Interp) evalProperty(sc *scope.Scope, e *ast.Property) (value.Value, error) {
	recv, err := it.EvaluateExpression(sc, e.Receiver)
	if err != nil {
		return nil, err
	}
	if e.Conditional && recv.Kind() == value.KindNull {
		return value.TheNull, nil
	}
	return it.GetProperty(recv, e.Name, e.Pos)
}

func (it *Interp) evalSubscript(sc *scope.Scope, e *ast.Subscript) (value.Value, error) {
	recv, err := it.EvaluateExpression(sc, e.Receiver)
	if err != nil {
		return nil, err
	}
	if e.Conditional && recv.Kind() == value.KindNull {
		return value.TheNull, nil
	}
	idx, err := it.EvaluateExpression(sc, e.Index)
	if err != nil {
		return nil, err
	}
	return it.callMethod(recv, "[]", []value.Value{idx}, e.Pos)
}

func (it *Interp) evalIncDec(sc *scope.Scope, operand ast.Expression, pos snekerr.Position, delta int64, pre bool) (value.Value, error) {
	old, err := it.EvaluateExpression(sc, operand)
	if err != nil {
		return nil, err
	}
	var updated value.Value
	switch old.Kind() {
	case value.KindInt:
		updated = value.NewInt(old.IntValue() + delta)
	case value.KindFloat:
		updated = value.NewFloat(old.FloatValue() + float64(delta))
	default:
		return nil, snekerr.Runtimef(pos, "Cannot increment/decrement a non-numeric value.")
	}
	if err := it.assignTo(sc, operand, updated, pos); err != nil {
		return nil, err
	}
	if pre {
		return updated, nil
	}
	return old, nil
}

func (it *Interp) evalAssign(sc *scope.Scope, e *ast.Assign) (value.Value, error) {
	if e.CompoundOperator == "&&" || e.CompoundOperator == "||" || e.CompoundOperator == "??" {
		old, err := it.EvaluateExpression(sc, e.Target)
		if err != nil {
			return nil, err
		}
		skip := false
		switch e.CompoundOperator {
		case "&&":
			skip = !truthy(old)
		case "||":
			skip = truthy(old)
		case "??":
			skip = old.Kind() != value.KindNull
		}
		if skip {
			return old, nil
		}
		newVal, err := it.EvaluateExpression(sc, e.Value)
		if err != nil {
			return nil, err
		}
		if err := it.assignTo(sc, e.Target, newVal, e.Pos); err != nil {
			return nil, err
		}
		return newVal, nil
	}

	if e.CompoundOperator != "" {
		old, err := it.EvaluateExpression(sc, e.Target)
		if err != nil {
			return nil, err
		}
		rhs, err := it.EvaluateExpression(sc, e.Value)
		if err != nil {
			return nil, err
		}
		result, err := it.callMethod(old, e.CompoundOperator, []value.Value{rhs}, e.Pos)
		if err != nil {
			return nil, err
		}
		if err := it.assignTo(sc, e.Target, result, e.Pos); err != nil {
			return nil, err
		}
		return result, nil
	}

	val, err := it.EvaluateExpression(sc, e.Value)
	if err != nil {
		return nil, err
	}
	if err := it.AssignTo(sc, e.Target, val, e.Pos); err != nil {
		return nil, err
	}
	return val, nil
}

// assignTo is the internal entry point shared by compound assignment and
// increment/decrement, both of which always target a single lvalue.
func (it *Interp) assignTo(sc *scope.Scope, target ast.Expression, val value.Value, pos snekerr.Position) error {
	return it.AssignTo(sc, target, val, pos)
}

// AssignTo implements assignment-pattern destructuring (spec §4.4.2):
// Id targets rebind a variable; List/Record patterns recursively bind
// their elements/fields; Property/Subscript targets call back through the
// receiver's setter protocol.
func (it *Interp) AssignTo(sc *scope.Scope, target ast.Expression, val value.Value, pos snekerr.Position) error {
	switch t := target.(type) {
	case *ast.Id:
		readOnly, ok := sc.Set(t.Name, val)
		if !ok {
			return snekerr.New(snekerr.Runtime, t.Pos, "Unknown identifier `"+t.Name+"'.")
		}
		if readOnly {
			return snekerr.New(snekerr.ReadOnlyViolation, t.Pos, "Cannot assign to read-only variable `"+t.Name+"'.")
		}
		return nil
	case *ast.Property:
		recv, err := it.EvaluateExpression(sc, t.Receiver)
		if err != nil {
			return err
		}
		_, err = it.callMethod(recv, "[]=", []value.Value{value.NewString(t.Name), val}, pos)
		return err
	case *ast.Subscript:
		recv, err := it.EvaluateExpression(sc, t.Receiver)
		if err != nil {
			return err
		}
		idx, err := it.EvaluateExpression(sc, t.Index)
		if err != nil {
			return err
		}
		_, err = it.callMethod(recv, "[]=", []value.Value{idx, val}, pos)
		return err
	case *ast.List:
		lv, ok := val.(value.ListValue)
		if !ok {
			return snekerr.Runtimef(pos, "Cannot destructure a non-list value.")
		}
		items := lv.Items()
		for i, el := range t.Elements {
			if el.Kind == ast.ElementSpread {
				rest := value.NewList(append([]value.Value{}, items[i:]...))
				return it.AssignTo(sc, el.Expression, rest, pos)
			}
			if i >= len(items) {
				return snekerr.Runtimef(pos, "Not enough elements to destructure.")
			}
			if err := it.AssignTo(sc, el.Expression, items[i], pos); err != nil {
				return err
			}
		}
		return nil
	case *ast.Record:
		rv, ok := val.(value.RecordValue)
		if !ok {
			return snekerr.Runtimef(pos, "Cannot destructure a non-record value.")
		}
		consumed := make(map[string]bool, len(t.Fields))
		for _, f := range t.Fields {
			if f.Kind == ast.FieldSpread {
				rest := it.remainderRecord(rv, consumed)
				return it.AssignTo(sc, f.Value, rest, pos)
			}
			fv, ok := recordLookup(rv, f.Name)
			if !ok {
				return snekerr.Runtimef(pos, "Missing field `%s' for destructuring.", f.Name)
			}
			consumed[f.Name] = true
			if f.Kind == ast.FieldNamed {
				if err := it.AssignTo(sc, f.Value, fv, pos); err != nil {
					return err
				}
			} else {
				if err := it.AssignTo(sc, &ast.Id{Pos: f.Pos, Name: f.Name}, fv, pos); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return snekerr.Runtimef(pos, "Invalid assignment target.")
	}
}

// recordLookup resolves name on rv, walking the prototype chain (spec
// §4.4.2: Named/Shorthand record-pattern fields "look up `name` (including
// up the prototype chain)").
func recordLookup(rv value.RecordValue, name string) (value.Value, bool) {
	for cur := value.Value(rv); cur != nil; {
		crv, ok := cur.(value.RecordValue)
		if !ok {
			return nil, false
		}
		if v, ok := crv.GetOwn(name); ok {
			return v, true
		}
		cur = crv.Prototype()
	}
	return nil, false
}

// remainderRecord builds a fresh Record from rv's own properties that are
// not in consumed, in rv's own insertion order, for a trailing Spread
// field in a record destructuring pattern.
func (it *Interp) remainderRecord(rv value.RecordValue, consumed map[string]bool) value.Value {
	var order []string
	data := make(map[string]value.Value)
	for _, k := range rv.Keys() {
		if consumed[k] {
			continue
		}
		fv, ok := rv.GetOwn(k)
		if !ok {
			continue
		}
		order = append(order, k)
		data[k] = fv
	}
	return value.NewRecord(order, data, it.Prototypes.Record)
}

// DeclareVariable implements `let`/`const` pattern destructuring at
// declaration time (spec §4.4.2): same shapes as AssignTo, but declares
// fresh bindings instead of mutating existing ones.
func (it *Interp) DeclareVariable(sc *scope.Scope, pattern ast.Expression, val value.Value, readOnly, exported bool) error {
	switch t := pattern.(type) {
	case *ast.Id:
		if !sc.DeclareVariable(t.Name, val, nil, exported, readOnly, false) {
			return snekerr.New(snekerr.NameClash, t.Pos, "`"+t.Name+"' is already declared in this scope.")
		}
		return nil
	case *ast.List:
		lv, ok := val.(value.ListValue)
		if !ok {
			return snekerr.Runtimef(t.Pos, "Cannot destructure a non-list value.")
		}
		items := lv.Items()
		for i, el := range t.Elements {
			if el.Kind == ast.ElementSpread {
				rest := value.NewList(append([]value.Value{}, items[i:]...))
				return it.DeclareVariable(sc, el.Expression, rest, readOnly, exported)
			}
			if i >= len(items) {
				return snekerr.Runtimef(t.Pos, "Not enough elements to destructure.")
			}
			if err := it.DeclareVariable(sc, el.Expression, items[i], readOnly, exported); err != nil {
				return err
			}
		}
		return nil
	case *ast.Record:
		rv, ok := val.(value.RecordValue)
		if !ok {
			return snekerr.Runtimef(t.Pos, "Cannot destructure a non-record value.")
		}
		consumed := make(map[string]bool, len(t.Fields))
		for _, f := range t.Fields {
			if f.Kind == ast.FieldSpread {
				rest := it.remainderRecord(rv, consumed)
				return it.DeclareVariable(sc, f.Value, rest, readOnly, exported)
			}
			fv, ok := recordLookup(rv, f.Name)
			if !ok {
				return snekerr.Runtimef(t.Pos, "Missing field `%s' for destructuring.", f.Name)
			}
			consumed[f.Name] = true
			target := ast.Expression(&ast.Id{Pos: f.Pos, Name: f.Name})
			if f.Kind == ast.FieldNamed {
				target = f.Value
			}
			if err := it.DeclareVariable(sc, target, fv, readOnly, exported); err != nil {
				return err
			}
		}
		return nil
	default:
		return snekerr.Runtimef(pattern.Position(), "Invalid declaration pattern.")
	}
}

// floatMod preserves Python's sign convention for `%` on Floats (result
// takes the divisor's sign), per the float-modulo semantics this
// implementation deliberately keeps rather than Go's truncated-remainder
// default.
func floatMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}
