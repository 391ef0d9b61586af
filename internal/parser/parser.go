// Package parser implements Snek's recursive-descent, operator-precedence
// parser (spec §4.2). It consumes internal/lexer's pull-based token stream
// and produces an internal/ast.Module. There is no error recovery: the
// first syntax error aborts parsing, per spec §4.2 and §7.
package parser

import (
	"github.com/snek-lang/snek/internal/ast"
	"github.com/snek-lang/snek/internal/lexer"
	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/token"
)

// Parser holds the one piece of state parsing needs beyond the lexer
// itself: none, currently, but it is a struct (rather than free functions
// over *lexer.Lexer) so the API has room to grow.
type Parser struct {
	lex *lexer.Lexer
}

// New wraps an already-constructed Lexer.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

// Parse lexes and parses a complete source file into a Module.
func Parse(source []byte, filename string) (*ast.Module, error) {
	lex, err := lexer.New(source, filename, 1, 1)
	if err != nil {
		return nil, err
	}
	return New(lex).ParseModule()
}

// ParseModule parses a sequence of top-level statement lines until Eof.
func (p *Parser) ParseModule() (*ast.Module, error) {
	first, err := p.lex.PeekToken()
	if err != nil {
		return nil, err
	}
	mod := &ast.Module{Pos: first.Position}
	stmts, err := p.parseStatementsUntil(token.Eof)
	if err != nil {
		return nil, err
	}
	mod.Statements = stmts
	return mod, nil
}

// parseStatementsUntil parses blank-line-separated, semicolon-grouped
// statement lines until the next token is stop (token.Eof at module level,
// token.Dedent inside an indented block).
func (p *Parser) parseStatementsUntil(stop token.Kind) ([]ast.Statement, error) {
	var out []ast.Statement
	for {
		for {
			is, err := p.lex.PeekTokenIs(token.NewLine)
			if err != nil {
				return nil, err
			}
			if !is {
				break
			}
			if _, err := p.lex.ReadToken(); err != nil {
				return nil, err
			}
		}
		is, err := p.lex.PeekTokenIs(stop)
		if err != nil {
			return nil, err
		}
		if is {
			return out, nil
		}
		line, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		out = append(out, line...)
	}
}

// parseLine parses one or more ';'-separated statements up to the
// terminating NewLine (spec §4.2: "semicolon-grouped statements into
// Block" at the call site that wraps a multi-statement line).
func (p *Parser) parseLine() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		hasSemi, err := p.lex.PeekReadTokenIs(token.Semicolon)
		if err != nil {
			return nil, err
		}
		if !hasSemi {
			break
		}
		isEnd, err := p.atLineEnd()
		if err != nil {
			return nil, err
		}
		if isEnd {
			break
		}
	}
	if _, err := p.lex.PeekReadTokenIs(token.NewLine); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) atLineEnd() (bool, error) {
	for _, k := range []token.Kind{token.NewLine, token.Eof, token.Dedent} {
		is, err := p.lex.PeekTokenIs(k)
		if err != nil {
			return false, err
		}
		if is {
			return true, nil
		}
	}
	return false, nil
}

// parseBody parses a `:`-introduced statement body: either an indented
// block, or a single `;`-grouped line (spec §4.2).
func (p *Parser) parseBody() (ast.Statement, error) {
	colon, err := p.lex.ReadToken()
	if err != nil {
		return nil, err
	}
	if colon.Kind != token.Colon {
		return nil, snekerr.Syntaxf(colon.Position, "Unexpected %s; Missing `:'.", colon.String())
	}
	isNewLine, err := p.lex.PeekTokenIs(token.NewLine)
	if err != nil {
		return nil, err
	}
	if isNewLine {
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		indent, err := p.lex.ReadTyped(token.Indent)
		if err != nil {
			return nil, err
		}
		stmts, err := p.parseStatementsUntil(token.Dedent)
		if err != nil {
			return nil, err
		}
		if _, err := p.lex.ReadTyped(token.Dedent); err != nil {
			return nil, err
		}
		return &ast.Block{Pos: indent.Position, Statements: stmts}, nil
	}
	stmts, err := p.parseLine()
	if err != nil {
		return nil, err
	}
	if len(stmts) == 1 {
		return stmts[0], nil
	}
	return &ast.Block{Pos: colon.Position, Statements: stmts}, nil
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	return p.lex.ReadTyped(kind)
}

func (p *Parser) expectID() (token.Token, error) {
	t, err := p.lex.ReadToken()
	if err != nil {
		return t, err
	}
	if t.Kind != token.Id {
		return t, snekerr.Syntaxf(t.Position, "Unexpected %s; Missing identifier.", t.String())
	}
	return t, nil
}

// ---- Expressions (spec §4.2 precedence ladder) ----

func (p *Parser) ParseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

var compoundAssignKinds = []token.Kind{
	token.Assign, token.AssignAdd, token.AssignSub, token.AssignMul, token.AssignDiv,
	token.AssignMod, token.AssignBitwiseAnd, token.AssignBitwiseOr, token.AssignBitwiseXor,
	token.AssignLeftShift, token.AssignRightShift, token.AssignLogicalAnd, token.AssignLogicalOr,
	token.AssignNullCoalesce,
}

func assignOperatorText(kind token.Kind) string {
	if op, ok := token.CompoundAssignOperator[kind]; ok {
		return op
	}
	switch kind {
	case token.AssignLogicalAnd:
		return "&&"
	case token.AssignLogicalOr:
		return "||"
	case token.AssignNullCoalesce:
		return "??"
	default:
		return ""
	}
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	next, err := p.lex.PeekToken()
	if err != nil {
		return nil, err
	}
	for _, k := range compoundAssignKinds {
		if next.Kind != k {
			continue
		}
		if !isAssignable(left) {
			return nil, snekerr.Syntaxf(next.Position, "Invalid assignment target.")
		}
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{
			Pos:              next.Position,
			Target:           left,
			CompoundOperator: assignOperatorText(k),
			Value:            value,
		}, nil
	}
	return left, nil
}

// isAssignable mirrors the original's IsAssignable check (spec §4.2,
// §9): an Id, Property or Subscript is always assignable; a List literal
// is assignable iff every element is; a Record literal is assignable iff
// every field is Named/Shorthand/Spread and, for Spread, its target is
// itself assignable.
func isAssignable(e ast.Expression) bool {
	switch t := e.(type) {
	case *ast.Id, *ast.Property, *ast.Subscript:
		return true
	case *ast.List:
		for _, el := range t.Elements {
			if !isAssignable(el.Expression) {
				return false
			}
		}
		return true
	case *ast.Record:
		for _, f := range t.Fields {
			switch f.Kind {
			case ast.FieldShorthand:
				continue
			case ast.FieldNamed:
				if !isAssignable(f.Value) {
					return false
				}
			case ast.FieldSpread:
				if !isAssignable(f.Value) {
					return false
				}
			default:
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (p *Parser) parseTernary() (ast.Expression, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	isTernary, err := p.lex.PeekTokenIs(token.Ternary)
	if err != nil {
		return nil, err
	}
	if !isTernary {
		return cond, nil
	}
	if _, err := p.lex.ReadToken(); err != nil {
		return nil, err
	}
	consequent, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	alternate, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.Ternary{Pos: cond.Position(), Condition: cond, Consequent: consequent, Alternate: alternate}, nil
}

func binOpText(kind token.Kind) string {
	switch kind {
	case token.LogicalOr:
		return "||"
	case token.LogicalAnd:
		return "&&"
	case token.NullCoalesce:
		return "??"
	}
	if op, ok := token.BinaryOperatorMethod[kind]; ok {
		return op
	}
	return ""
}

func (p *Parser) parseLeftAssoc(next func() (ast.Expression, error), kinds ...token.Kind) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.lex.PeekToken()
		if err != nil {
			return nil, err
		}
		matched := false
		for _, k := range kinds {
			if tok.Kind == k {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Pos: left.Position(), Operator: binOpText(tok.Kind), Left: left, Right: right}
	}
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	return p.parseLeftAssoc(p.parseLogicalAnd, token.LogicalOr, token.NullCoalesce)
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	return p.parseLeftAssoc(p.parseBitwiseOr, token.LogicalAnd)
}

func (p *Parser) parseBitwiseOr() (ast.Expression, error) {
	return p.parseLeftAssoc(p.parseBitwiseXor, token.BitwiseOr)
}

func (p *Parser) parseBitwiseXor() (ast.Expression, error) {
	return p.parseLeftAssoc(p.parseBitwiseAnd, token.BitwiseXor)
}

func (p *Parser) parseBitwiseAnd() (ast.Expression, error) {
	return p.parseLeftAssoc(p.parseEquality, token.BitwiseAnd)
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.parseLeftAssoc(p.parseRelational, token.Equal, token.NotEqual)
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	return p.parseLeftAssoc(p.parseShift, token.LessThan, token.GreaterThan, token.LessThanEqual, token.GreaterThanEqual)
}

func (p *Parser) parseShift() (ast.Expression, error) {
	return p.parseLeftAssoc(p.parseAdditive, token.LeftShift, token.RightShift)
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.parseLeftAssoc(p.parseMultiplicative, token.Add, token.Sub)
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.parseLeftAssoc(p.parseUnary, token.Mul, token.Div, token.Mod)
}

var unaryOperatorText = map[token.Kind]string{
	token.Not:        "!",
	token.Add:        "+",
	token.Sub:        "-",
	token.BitwiseNot: "~",
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	tok, err := p.lex.PeekToken()
	if err != nil {
		return nil, err
	}
	if op, ok := unaryOperatorText[tok.Kind]; ok {
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Pos: tok.Position, Operator: op, Operand: operand}, nil
	}
	if tok.Kind == token.Increment || tok.Kind == token.Decrement {
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if !isAssignable(operand) {
			return nil, snekerr.Syntaxf(tok.Position, "Invalid assignment target.")
		}
		if tok.Kind == token.Increment {
			return &ast.Increment{Pos: tok.Position, Operand: operand, Pre: true}, nil
		}
		return &ast.Decrement{Pos: tok.Position, Operand: operand, Pre: true}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.lex.PeekToken()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case token.Dot, token.ConditionalDot:
			if _, err := p.lex.ReadToken(); err != nil {
				return nil, err
			}
			isBracket, err := p.lex.PeekTokenIs(token.LeftBracket)
			if err != nil {
				return nil, err
			}
			if tok.Kind == token.ConditionalDot && isBracket {
				if _, err := p.lex.ReadToken(); err != nil {
					return nil, err
				}
				idx, err := p.ParseExpression()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(token.RightBracket); err != nil {
					return nil, err
				}
				expr = &ast.Subscript{Pos: tok.Position, Receiver: expr, Index: idx, Conditional: true}
				continue
			}
			name, err := p.expectID()
			if err != nil {
				return nil, err
			}
			expr = &ast.Property{Pos: tok.Position, Receiver: expr, Name: name.Text, Conditional: tok.Kind == token.ConditionalDot}
		case token.LeftBracket:
			if _, err := p.lex.ReadToken(); err != nil {
				return nil, err
			}
			idx, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RightBracket); err != nil {
				return nil, err
			}
			expr = &ast.Subscript{Pos: tok.Position, Receiver: expr, Index: idx}
		case token.LeftParen:
			call, err := p.parseCallArguments(expr, false)
			if err != nil {
				return nil, err
			}
			expr = call
		case token.Increment:
			if !isAssignable(expr) {
				return nil, snekerr.Syntaxf(tok.Position, "Invalid assignment target.")
			}
			if _, err := p.lex.ReadToken(); err != nil {
				return nil, err
			}
			expr = &ast.Increment{Pos: tok.Position, Operand: expr, Pre: false}
		case token.Decrement:
			if !isAssignable(expr) {
				return nil, snekerr.Syntaxf(tok.Position, "Invalid assignment target.")
			}
			if _, err := p.lex.ReadToken(); err != nil {
				return nil, err
			}
			expr = &ast.Decrement{Pos: tok.Position, Operand: expr, Pre: false}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseCallArguments(callee ast.Expression, conditional bool) (ast.Expression, error) {
	pos, err := p.expect(token.LeftParen)
	if err != nil {
		return nil, err
	}
	var args []ast.Expression
	var spreads []bool
	for {
		isClose, err := p.lex.PeekTokenIs(token.RightParen)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		isSpread, err := p.lex.PeekReadTokenIs(token.Spread)
		if err != nil {
			return nil, err
		}
		arg, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		spreads = append(spreads, isSpread)
		hasComma, err := p.lex.PeekReadTokenIs(token.Comma)
		if err != nil {
			return nil, err
		}
		if !hasComma {
			break
		}
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return nil, err
	}
	return &ast.Call{Pos: pos.Position, Callee: callee, Arguments: args, ArgumentSpreads: spreads, Conditional: conditional}, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok, err := p.lex.ReadToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.KeywordTrue:
		return &ast.Boolean{Pos: tok.Position, Value: true}, nil
	case token.KeywordFalse:
		return &ast.Boolean{Pos: tok.Position, Value: false}, nil
	case token.KeywordNull:
		return &ast.Null{Pos: tok.Position}, nil
	case token.Int:
		v, err := parseIntText(tok.Text)
		if err != nil {
			return nil, snekerr.Syntaxf(tok.Position, "Invalid integer literal `%s'.", tok.Text)
		}
		return &ast.Int{Pos: tok.Position, Value: v}, nil
	case token.Float:
		v, err := parseFloatText(tok.Text)
		if err != nil {
			return nil, snekerr.Syntaxf(tok.Position, "Invalid float literal `%s'.", tok.Text)
		}
		return &ast.Float{Pos: tok.Position, Value: v}, nil
	case token.String:
		return &ast.String{Pos: tok.Position, Value: tok.Text}, nil
	case token.Id:
		return &ast.Id{Pos: tok.Position, Name: tok.Text}, nil
	case token.LeftBracket:
		return p.parseListLiteral(tok)
	case token.LeftBrace:
		return p.parseRecordLiteral(tok)
	case token.LeftParen:
		return p.parseParenOrFunction(tok)
	default:
		return nil, snekerr.Syntaxf(tok.Position, "Unexpected %s; Missing expression.", tok.String())
	}
}

func (p *Parser) parseListLiteral(open token.Token) (ast.Expression, error) {
	var elems []*ast.Element
	for {
		isClose, err := p.lex.PeekTokenIs(token.RightBracket)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		isSpread, err := p.lex.PeekReadTokenIs(token.Spread)
		if err != nil {
			return nil, err
		}
		expr, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		kind := ast.ElementValue
		if isSpread {
			kind = ast.ElementSpread
		}
		elems = append(elems, &ast.Element{Kind: kind, Expression: expr})
		hasComma, err := p.lex.PeekReadTokenIs(token.Comma)
		if err != nil {
			return nil, err
		}
		if !hasComma {
			break
		}
	}
	if _, err := p.expect(token.RightBracket); err != nil {
		return nil, err
	}
	return &ast.List{Pos: open.Position, Elements: elems}, nil
}

func (p *Parser) parseRecordLiteral(open token.Token) (ast.Expression, error) {
	var fields []*ast.Field
	for {
		isClose, err := p.lex.PeekTokenIs(token.RightBrace)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		field, err := p.parseRecordField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
		hasComma, err := p.lex.PeekReadTokenIs(token.Comma)
		if err != nil {
			return nil, err
		}
		if !hasComma {
			break
		}
	}
	if _, err := p.expect(token.RightBrace); err != nil {
		return nil, err
	}
	return &ast.Record{Pos: open.Position, Fields: fields}, nil
}

func (p *Parser) parseRecordField() (*ast.Field, error) {
	tok, err := p.lex.PeekToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.Spread {
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.Field{Pos: tok.Position, Kind: ast.FieldSpread, Value: value}, nil
	}
	if tok.Kind == token.LeftBracket {
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		key, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightBracket); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.Field{Pos: tok.Position, Kind: ast.FieldComputed, Key: key, Value: value}, nil
	}
	name, err := p.expectID()
	if err != nil {
		return nil, err
	}
	isParen, err := p.lex.PeekTokenIs(token.LeftParen)
	if err != nil {
		return nil, err
	}
	if isParen {
		params, ret, body, err := p.parseFunctionTail()
		if err != nil {
			return nil, err
		}
		return &ast.Field{Pos: name.Position, Kind: ast.FieldFunction, Name: name.Text, Params: params, Return: ret, Body: body}, nil
	}
	isColon, err := p.lex.PeekReadTokenIs(token.Colon)
	if err != nil {
		return nil, err
	}
	if isColon {
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.Field{Pos: name.Position, Kind: ast.FieldNamed, Name: name.Text, Value: value}, nil
	}
	return &ast.Field{Pos: name.Position, Kind: ast.FieldShorthand, Name: name.Text}, nil
}

// parseFunctionTail parses `(params) [-> Return] body` assuming the
// parameter list's opening `(` has not yet been consumed.
func (p *Parser) parseFunctionTail() ([]*ast.Parameter, ast.Type, ast.Statement, error) {
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, nil, nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, nil, nil, err
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return nil, nil, nil, err
	}
	ret, err := p.parseOptionalReturnType()
	if err != nil {
		return nil, nil, nil, err
	}
	body, err := p.parseFunctionBody()
	if err != nil {
		return nil, nil, nil, err
	}
	return params, ret, body, nil
}

// parseOptionalReturnType consumes a function literal's return-type
// annotation if present (spec §3.3's Function AST node: "parameters +
// optional return-type annotation"). `->` unambiguously introduces one. A
// bare `:` is ambiguous with the `:`-block body form (spec §4.2's function
// body forms), since a return type is itself allowed to be a bare type
// name: `(n: Int): Int => ...` has the first `:` belong to the parameter,
// and the second to the return type, with the body following via `=>`,
// while `(n: Int): \n  body` has its lone `:` belong to the block body,
// with no return type at all. Resolved by speculatively parsing a type
// after the `:` and checking it is itself followed by a body introducer
// (`=>` or `:`); if not, the Lexer is rolled back and the `:` is left for
// parseFunctionBody to consume as the block-body introducer.
func (p *Parser) parseOptionalReturnType() (ast.Type, error) {
	hasArrow, err := p.lex.PeekReadTokenIs(token.Arrow)
	if err != nil {
		return nil, err
	}
	if hasArrow {
		return p.parseType()
	}
	isColon, err := p.lex.PeekTokenIs(token.Colon)
	if err != nil || !isColon {
		return nil, err
	}
	checkpoint := p.lex.Save()
	if _, err := p.lex.ReadToken(); err != nil {
		return nil, err
	}
	typ, typErr := p.parseType()
	if typErr == nil {
		hasFatArrow, err := p.lex.PeekTokenIs(token.FatArrow)
		if err == nil {
			hasColon := false
			if !hasFatArrow {
				hasColon, err = p.lex.PeekTokenIs(token.Colon)
			}
			if err == nil && (hasFatArrow || hasColon) {
				return typ, nil
			}
		}
	}
	p.lex.Restore(checkpoint)
	return nil, nil
}

// parseFunctionBody parses the two function-body forms: `=> expr` or a
// `:`-introduced block/line (spec §4.2).
func (p *Parser) parseFunctionBody() (ast.Statement, error) {
	hasFatArrow, err := p.lex.PeekReadTokenIs(token.FatArrow)
	if err != nil {
		return nil, err
	}
	if hasFatArrow {
		expr, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.Jump{Pos: expr.Position(), Kind: ast.JumpReturn, Value: expr}, nil
	}
	return p.parseBody()
}

func (p *Parser) parseParameterList() ([]*ast.Parameter, error) {
	var params []*ast.Parameter
	for {
		isClose, err := p.lex.PeekTokenIs(token.RightParen)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		hasComma, err := p.lex.PeekReadTokenIs(token.Comma)
		if err != nil {
			return nil, err
		}
		if !hasComma {
			break
		}
	}
	return params, nil
}

func (p *Parser) parseParameter() (*ast.Parameter, error) {
	isSpread, err := p.lex.PeekReadTokenIs(token.Spread)
	if err != nil {
		return nil, err
	}
	name, err := p.expectID()
	if err != nil {
		return nil, err
	}
	param := &ast.Parameter{Pos: name.Position, Name: name.Text, Rest: isSpread}
	hasColon, err := p.lex.PeekReadTokenIs(token.Colon)
	if err != nil {
		return nil, err
	}
	if hasColon {
		param.Type, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	hasDefault, err := p.lex.PeekReadTokenIs(token.Assign)
	if err != nil {
		return nil, err
	}
	if hasDefault {
		param.Default, err = p.parseAssignment()
		if err != nil {
			return nil, err
		}
	}
	return param, nil
}

// parseParenOrFunction implements the parenthesized-expression vs.
// function-literal disambiguation (spec §4.2): `()` followed by `:`/`->`/
// `=>`, a leading `...`, `(id :`, and `(id ,` commit to a function literal
// up front; everything else parses as an expression, with a single bare
// identifier retroactively reinterpreted as a one-parameter function if a
// function-body marker follows the closing `)`.
func (p *Parser) parseParenOrFunction(open token.Token) (ast.Expression, error) {
	isCloseNow, err := p.lex.PeekTokenIs(token.RightParen)
	if err != nil {
		return nil, err
	}
	if isCloseNow {
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		return p.finishFunctionLiteral(open, nil)
	}

	isSpread, err := p.lex.PeekTokenIs(token.Spread)
	if err != nil {
		return nil, err
	}
	if isSpread {
		return p.finishParameterListFunction(open)
	}

	isID, err := p.lex.PeekTokenIs(token.Id)
	if err != nil {
		return nil, err
	}
	if isID {
		isColonNext, err := p.lex.PeekNextButOneTokenIs(token.Colon)
		if err != nil {
			return nil, err
		}
		isCommaNext, err := p.lex.PeekNextButOneTokenIs(token.Comma)
		if err != nil {
			return nil, err
		}
		if isColonNext || isCommaNext {
			return p.finishParameterListFunction(open)
		}
	}

	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return nil, err
	}
	if id, ok := expr.(*ast.Id); ok {
		next, err := p.lex.PeekToken()
		if err != nil {
			return nil, err
		}
		if next.Kind == token.Colon || next.Kind == token.Arrow || next.Kind == token.FatArrow {
			return p.finishFunctionLiteral(open, []*ast.Parameter{{Pos: id.Pos, Name: id.Name}})
		}
	}
	return expr, nil
}

func (p *Parser) finishParameterListFunction(open token.Token) (ast.Expression, error) {
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return nil, err
	}
	return p.finishFunctionLiteral(open, params)
}

func (p *Parser) finishFunctionLiteral(open token.Token, params []*ast.Parameter) (ast.Expression, error) {
	ret, err := p.parseOptionalReturnType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseFunctionBody()
	if err != nil {
		return nil, err
	}
	return &ast.Function{Pos: open.Position, Parameters: params, Return: ret, Body: body}, nil
}

func parseIntText(text string) (int64, error) {
	var v int64
	for _, c := range text {
		if c < '0' || c > '9' {
			return 0, snekerr.New(snekerr.Syntax, snekerr.Position{}, "not a digit")
		}
		v = v*10 + int64(c-'0')
	}
	return v, nil
}

func parseFloatText(text string) (float64, error) {
	var whole, frac, fracDiv float64 = 0, 0, 1
	var exp int
	expSign := 1
	i := 0
	n := len(text)
	for i < n && text[i] >= '0' && text[i] <= '9' {
		whole = whole*10 + float64(text[i]-'0')
		i++
	}
	if i < n && text[i] == '.' {
		i++
		for i < n && text[i] >= '0' && text[i] <= '9' {
			frac = frac*10 + float64(text[i]-'0')
			fracDiv *= 10
			i++
		}
	}
	if i < n && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < n && (text[i] == '+' || text[i] == '-') {
			if text[i] == '-' {
				expSign = -1
			}
			i++
		}
		for i < n && text[i] >= '0' && text[i] <= '9' {
			exp = exp*10 + int(text[i]-'0')
			i++
		}
	}
	v := whole + frac/fracDiv
	for e := 0; e < exp; e++ {
		if expSign > 0 {
			v *= 10
		} else {
			v /= 10
		}
	}
	return v, nil
}
