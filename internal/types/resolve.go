package types

import (
	"github.com/snek-lang/snek/internal/ast"
	"github.com/snek-lang/snek/internal/snekerr"
)

// Env is the minimal scope lookup the resolver needs: access to
// user-declared `type` aliases. Internal/scope.Scope implements this
// structurally, without types importing scope (which itself imports types
// for its type-entry values), avoiding an import cycle.
type Env interface {
	LookupType(name string) (Type, bool)
}

var builtinTypeNames = map[string]Type{
	"Any":      Any{},
	"Boolean":  Builtin(TBoolean),
	"Float":    Builtin(TFloat),
	"Function": Builtin(TFunction),
	"Int":      Builtin(TInt),
	"List":     Builtin(TList),
	"Null":     Null{},
	"Number":   Builtin(TNumber),
	"Record":   Builtin(TRecord),
	"String":   Builtin(TString),
	"Void":     Builtin(TVoid),
}

// ResolveType turns a syntactic type node into a semantic Type (spec §4.3).
func ResolveType(env Env, node ast.Type) (Type, error) {
	switch n := node.(type) {
	case *ast.BooleanType:
		return BooleanLiteral{Value: n.Value}, nil
	case *ast.NullType:
		return Null{}, nil
	case *ast.StringLiteralType:
		return StringLiteral{Value: n.Value}, nil
	case *ast.NamedType:
		if t, ok := builtinTypeNames[n.Name]; ok {
			return t, nil
		}
		if t, ok := env.LookupType(n.Name); ok {
			return t, nil
		}
		return nil, snekerr.Runtimef(n.Pos, "Unknown type `%s'.", n.Name)
	case *ast.ListType:
		elem, err := ResolveType(env, n.Element)
		if err != nil {
			return nil, err
		}
		return List{Element: elem}, nil
	case *ast.RecordType:
		fields := make(map[string]Type, len(n.Fields))
		for _, f := range n.Fields {
			ft, err := ResolveType(env, f.Type)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = ft
		}
		return Record{Fields: fields}, nil
	case *ast.FunctionType:
		params := make([]Parameter, len(n.Parameters))
		for i, p := range n.Parameters {
			pt, err := ResolveType(env, p)
			if err != nil {
				return nil, err
			}
			params[i] = Parameter{Type: pt}
		}
		var ret Type
		if n.Return != nil {
			var err error
			ret, err = ResolveType(env, n.Return)
			if err != nil {
				return nil, err
			}
		}
		return Function{Parameters: params, Return: ret}, nil
	case *ast.MultipleType:
		members := make([]Type, len(n.Types))
		for i, t := range n.Types {
			mt, err := ResolveType(env, t)
			if err != nil {
				return nil, err
			}
			members[i] = mt
		}
		switch n.Tag {
		case ast.TagIntersection:
			return Intersection{Members: members}, nil
		case ast.TagTuple:
			return Tuple{Elements: members}, nil
		default:
			return Union{Members: members}, nil
		}
	default:
		return nil, snekerr.Runtimef(node.Position(), "Cannot resolve type.")
	}
}

// ResolveExpression produces the best static approximation of an
// expression's value type, or nil for "unknown" (spec §4.3). A resolution
// error (e.g. an unknown named type inside a function literal's
// annotations) is reported rather than silently demoted, but expressions
// whose shape simply cannot be statically approximated return (nil, nil).
func ResolveExpression(env Env, expr ast.Expression) (Type, error) {
	switch e := expr.(type) {
	case *ast.Boolean:
		return BooleanLiteral{Value: e.Value}, nil
	case *ast.Int:
		return Builtin(TInt), nil
	case *ast.Float:
		return Builtin(TFloat), nil
	case *ast.String:
		return StringLiteral{Value: e.Value}, nil
	case *ast.Null:
		return Null{}, nil
	case *ast.List:
		elems := make([]Type, 0, len(e.Elements))
		for _, el := range e.Elements {
			if el.Kind == ast.ElementSpread {
				return Builtin(TList), nil
			}
			t, err := ResolveExpression(env, el.Expression)
			if err != nil {
				return nil, err
			}
			if t == nil {
				return Builtin(TList), nil
			}
			elems = append(elems, t)
		}
		return Tuple{Elements: elems}, nil
	case *ast.Record:
		fields := make(map[string]Type, len(e.Fields))
		for _, f := range e.Fields {
			switch f.Kind {
			case ast.FieldNamed:
				t, err := ResolveExpression(env, f.Value)
				if err != nil {
					return nil, err
				}
				if t == nil {
					return Builtin(TRecord), nil
				}
				fields[f.Name] = t
			case ast.FieldFunction:
				t, err := resolveFunctionLiteral(env, f.Params, f.Return, f.Body)
				if err != nil {
					return nil, err
				}
				fields[f.Name] = t
			default:
				return Builtin(TRecord), nil
			}
		}
		return Record{Fields: fields}, nil
	case *ast.Function:
		return resolveFunctionLiteral(env, e.Parameters, e.Return, e.Body)
	case *ast.Call:
		calleeType, err := ResolveExpression(env, e.Callee)
		if err != nil {
			return nil, err
		}
		fn, ok := calleeType.(Function)
		if !ok {
			return nil, nil
		}
		ret := fn.Return
		if ret == nil {
			ret = Any{}
		}
		if e.Conditional {
			return Union{Members: []Type{ret, Builtin(TVoid)}}, nil
		}
		return ret, nil
	case *ast.Property:
		recvType, err := ResolveExpression(env, e.Receiver)
		if err != nil {
			return nil, err
		}
		rec, ok := recvType.(Record)
		if !ok {
			return nil, nil
		}
		ft, ok := rec.Fields[e.Name]
		if !ok {
			return nil, nil
		}
		if e.Conditional {
			return Union{Members: []Type{ft, Builtin(TVoid)}}, nil
		}
		return ft, nil
	case *ast.Ternary:
		a, err := ResolveExpression(env, e.Consequent)
		if err != nil {
			return nil, err
		}
		b, err := ResolveExpression(env, e.Alternate)
		if err != nil {
			return nil, err
		}
		if a == nil || b == nil {
			return nil, nil
		}
		return Reify([]Type{a, b}), nil
	case *ast.Binary:
		if e.Operator == "&&" || e.Operator == "||" {
			a, err := ResolveExpression(env, e.Left)
			if err != nil {
				return nil, err
			}
			b, err := ResolveExpression(env, e.Right)
			if err != nil {
				return nil, err
			}
			if a == nil || b == nil {
				return Union{Members: []Type{Builtin(TBoolean), Builtin(TVoid)}}, nil
			}
			return Union{Members: []Type{a, b, Builtin(TBoolean), Builtin(TVoid)}}, nil
		}
		return nil, nil
	case *ast.Unary:
		if e.Operator == "!" {
			return Builtin(TBoolean), nil
		}
		return nil, nil
	default:
		return nil, nil
	}
}

func resolveFunctionLiteral(env Env, params []*ast.Parameter, retType ast.Type, body ast.Statement) (Type, error) {
	tparams := make([]Parameter, len(params))
	for i, p := range params {
		var pt Type
		if p.Type != nil {
			var err error
			pt, err = ResolveType(env, p.Type)
			if err != nil {
				return nil, err
			}
		}
		tparams[i] = Parameter{Name: p.Name, Type: pt, Rest: p.Rest, HasDefault: p.Default != nil}
	}
	var ret Type
	if retType != nil {
		var err error
		ret, err = ResolveType(env, retType)
		if err != nil {
			return nil, err
		}
	} else {
		ret = InferReturnType(env, body)
	}
	return Function{Parameters: tparams, Return: ret}, nil
}

// InferReturnType walks a function body collecting every `return` value
// expression -- descending into Block, If and While bodies, never into
// nested Function bodies -- and reduces the candidates via Reify (spec
// §4.3).
func InferReturnType(env Env, body ast.Statement) Type {
	var candidates []Type
	var walk func(stmt ast.Statement)
	walk = func(stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.Block:
			for _, child := range s.Statements {
				walk(child)
			}
		case *ast.If:
			for _, br := range s.Branches {
				walk(br.Body)
			}
			if s.Else != nil {
				walk(s.Else)
			}
		case *ast.While:
			walk(s.Body)
		case *ast.Jump:
			if s.Kind == ast.JumpReturn {
				if s.Value == nil {
					candidates = append(candidates, Null{})
					return
				}
				if t, err := ResolveExpression(env, s.Value); err == nil && t != nil {
					candidates = append(candidates, t)
				} else {
					candidates = append(candidates, Any{})
				}
			}
		}
	}
	walk(body)
	return Reify(candidates)
}
