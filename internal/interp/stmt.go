package interp

import (
	"github.com/snek-lang/snek/internal/ast"
	"github.com/snek-lang/snek/internal/scope"
	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/types"
	"github.com/snek-lang/snek/internal/value"
)

// ExecuteStatement runs stmt in sc (spec §4.4.3). A break/continue/return
// in progress is surfaced as a *jumpSignal error so enclosing While/
// function-call frames can catch it without it being mistaken for a
// runtime fault.
func (it *Interp) ExecuteStatement(sc *scope.Scope, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Block:
		inner := sc.Child()
		for _, child := range s.Statements {
			if err := it.ExecuteStatement(inner, child); err != nil {
				return err
			}
		}
		return nil
	case *ast.DeclareType:
		typ, err := types.ResolveType(sc, s.Type)
		if err != nil {
			return err
		}
		if !sc.DeclareType(s.Name, typ, s.IsExport) {
			return snekerr.New(snekerr.NameClash, s.Pos, "`"+s.Name+"' is already declared in this scope.")
		}
		return nil
	case *ast.DeclareVar:
		var val value.Value = value.TheNull
		if s.Initializer != nil {
			v, err := it.EvaluateExpression(sc, s.Initializer)
			if err != nil {
				return err
			}
			val = v
		}
		return it.DeclareVariable(sc, s.Variable, val, s.IsReadOnly, s.IsExport)
	case *ast.ExpressionStatement:
		_, err := it.EvaluateExpression(sc, s.Expression)
		return err
	case *ast.If:
		for _, branch := range s.Branches {
			cond, err := it.EvaluateExpression(sc, branch.Condition)
			if err != nil {
				return err
			}
			if truthy(cond) {
				return it.ExecuteStatement(sc, branch.Body)
			}
		}
		if s.Else != nil {
			return it.ExecuteStatement(sc, s.Else)
		}
		return nil
	case *ast.While:
		for {
			cond, err := it.EvaluateExpression(sc, s.Condition)
			if err != nil {
				return err
			}
			if !truthy(cond) {
				return nil
			}
			err = it.ExecuteStatement(sc, s.Body)
			if err == nil {
				continue
			}
			if j, ok := asJump(err); ok {
				if j.kind == ast.JumpBreak {
					return nil
				}
				if j.kind == ast.JumpContinue {
					continue
				}
			}
			return err
		}
	case *ast.Jump:
		if s.Kind == ast.JumpReturn && s.Value != nil {
			v, err := it.evalTailExpression(sc, s.Value)
			if err != nil {
				// A *tailCallSignal propagates as-is; CallFunction's
				// trampoline catches it before it reaches a jumpSignal
				// consumer.
				return err
			}
			return &jumpSignal{kind: s.Kind, value: v}
		}
		var v value.Value
		if s.Value != nil {
			val, err := it.EvaluateExpression(sc, s.Value)
			if err != nil {
				return err
			}
			v = val
		}
		return &jumpSignal{kind: s.Kind, value: v}
	case *ast.Import:
		return it.executeImport(sc, s)
	default:
		return snekerr.Runtimef(stmt.Position(), "Cannot execute statement.")
	}
}
