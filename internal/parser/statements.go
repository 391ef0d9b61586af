package parser

import (
	"github.com/snek-lang/snek/internal/ast"
	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/token"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok, err := p.lex.PeekToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.KeywordImport:
		return p.parseImport()
	case token.KeywordExport:
		return p.parseExport()
	case token.KeywordLet, token.KeywordConst:
		return p.parseDeclareVar()
	case token.KeywordType:
		return p.parseDeclareType()
	case token.KeywordIf:
		return p.parseIf()
	case token.KeywordWhile:
		return p.parseWhile()
	case token.KeywordPass:
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		return &ast.Block{Pos: tok.Position}, nil
	case token.KeywordBreak:
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		return &ast.Jump{Pos: tok.Position, Kind: ast.JumpBreak}, nil
	case token.KeywordContinue:
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		return &ast.Jump{Pos: tok.Position, Kind: ast.JumpContinue}, nil
	case token.KeywordReturn:
		return p.parseReturn()
	default:
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Pos: expr.Position(), Expression: expr}, nil
	}
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok, err := p.lex.ReadToken()
	if err != nil {
		return nil, err
	}
	isEnd, err := p.atLineEnd()
	if err != nil {
		return nil, err
	}
	isSemi, err := p.lex.PeekTokenIs(token.Semicolon)
	if err != nil {
		return nil, err
	}
	if isEnd || isSemi {
		return &ast.Jump{Pos: tok.Position, Kind: ast.JumpReturn}, nil
	}
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Jump{Pos: tok.Position, Kind: ast.JumpReturn, Value: value}, nil
}

func (p *Parser) parseExport() (ast.Statement, error) {
	if _, err := p.lex.ReadToken(); err != nil {
		return nil, err
	}
	tok, err := p.lex.PeekToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.KeywordLet, token.KeywordConst:
		stmt, err := p.parseDeclareVar()
		if err != nil {
			return nil, err
		}
		stmt.(*ast.DeclareVar).IsExport = true
		return stmt, nil
	case token.KeywordType:
		stmt, err := p.parseDeclareType()
		if err != nil {
			return nil, err
		}
		stmt.(*ast.DeclareType).IsExport = true
		return stmt, nil
	default:
		return nil, snekerr.Syntaxf(tok.Position, "Unexpected %s; Missing `let', `const' or `type'.", tok.String())
	}
}

func (p *Parser) parseDeclareVar() (ast.Statement, error) {
	tok, err := p.lex.ReadToken()
	if err != nil {
		return nil, err
	}
	variable, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	var typ ast.Type
	hasColon, err := p.lex.PeekReadTokenIs(token.Colon)
	if err != nil {
		return nil, err
	}
	if hasColon {
		typ, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	var init ast.Expression
	hasAssign, err := p.lex.PeekReadTokenIs(token.Assign)
	if err != nil {
		return nil, err
	}
	if hasAssign {
		init, err = p.parseAssignment()
		if err != nil {
			return nil, err
		}
	}
	return &ast.DeclareVar{
		Pos:         tok.Position,
		Variable:    variable,
		Type:        typ,
		Initializer: init,
		IsReadOnly:  tok.Kind == token.KeywordConst,
	}, nil
}

// parsePattern parses a `let`/`const` binding target: a bare identifier,
// or a List/Record literal reused as a destructuring pattern (spec §3.3's
// Pattern = Expression alias).
func (p *Parser) parsePattern() (ast.Expression, error) {
	tok, err := p.lex.PeekToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.Id:
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		return &ast.Id{Pos: tok.Position, Name: tok.Text}, nil
	case token.LeftBracket:
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		return p.parseListLiteral(tok)
	case token.LeftBrace:
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		return p.parseRecordLiteral(tok)
	default:
		return nil, snekerr.Syntaxf(tok.Position, "Unexpected %s; Missing binding pattern.", tok.String())
	}
}

func (p *Parser) parseDeclareType() (ast.Statement, error) {
	tok, err := p.lex.ReadToken()
	if err != nil {
		return nil, err
	}
	name, err := p.expectID()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.DeclareType{Pos: tok.Position, Name: name.Text, Type: typ}, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	tok, err := p.lex.ReadToken()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Pos: tok.Position}
	for {
		cond, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		stmt.Branches = append(stmt.Branches, &ast.IfBranch{Condition: cond, Body: body})

		hasElse, err := p.lex.PeekTokenIs(token.KeywordElse)
		if err != nil {
			return nil, err
		}
		if !hasElse {
			return stmt, nil
		}
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		hasIf, err := p.lex.PeekReadTokenIs(token.KeywordIf)
		if err != nil {
			return nil, err
		}
		if hasIf {
			continue
		}
		elseBody, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
		return stmt, nil
	}
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	tok, err := p.lex.ReadToken()
	if err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &ast.While{Pos: tok.Position, Condition: cond, Body: body}, nil
}

// parseImport parses `import spec [, spec...] [from "path"]` (spec §4.2).
// Specifiers are comma-separated with an allowed trailing comma; the
// `from "path"` clause is entirely optional, in which case each Named
// specifier's own name doubles as the module path it imports (there being
// no other path to resolve it against).
func (p *Parser) parseImport() (ast.Statement, error) {
	tok, err := p.lex.ReadToken()
	if err != nil {
		return nil, err
	}
	stmt := &ast.Import{Pos: tok.Position}
	for {
		spec, err := p.parseImportSpecifier()
		if err != nil {
			return nil, err
		}
		stmt.Specifiers = append(stmt.Specifiers, spec)
		hasComma, err := p.lex.PeekReadTokenIs(token.Comma)
		if err != nil {
			return nil, err
		}
		if !hasComma {
			break
		}
		isFrom, err := p.lex.PeekTokenIs(token.KeywordFrom)
		if err != nil {
			return nil, err
		}
		isEnd, err := p.atLineEnd()
		if err != nil {
			return nil, err
		}
		if isFrom || isEnd {
			break
		}
	}
	hasFrom, err := p.lex.PeekReadTokenIs(token.KeywordFrom)
	if err != nil {
		return nil, err
	}
	if hasFrom {
		pathTok, err := p.expect(token.String)
		if err != nil {
			return nil, err
		}
		stmt.Path = pathTok.Text
		stmt.HasPathFrom = true
	}
	return stmt, nil
}

func (p *Parser) parseImportSpecifier() (*ast.ImportSpecifier, error) {
	tok, err := p.lex.ReadToken()
	if err != nil {
		return nil, err
	}
	spec := &ast.ImportSpecifier{Pos: tok.Position}
	switch tok.Kind {
	case token.Mul:
		spec.Kind = ast.ImportStar
	case token.Id:
		spec.Kind = ast.ImportNamed
		spec.Name = tok.Text
	default:
		return nil, snekerr.Syntaxf(tok.Position, "Unexpected %s; Missing import specifier.", tok.String())
	}
	hasAs, err := p.lex.PeekReadTokenIs(token.KeywordAs)
	if err != nil {
		return nil, err
	}
	if hasAs {
		alias, err := p.expectID()
		if err != nil {
			return nil, err
		}
		spec.Alias = alias.Text
	}
	return spec, nil
}
