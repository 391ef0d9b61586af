package parser

import (
	"github.com/snek-lang/snek/internal/ast"
	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/token"
)

func (p *Parser) parseType() (ast.Type, error) {
	return p.parseUnionType()
}

func (p *Parser) parseUnionType() (ast.Type, error) {
	left, err := p.parseIntersectionType()
	if err != nil {
		return nil, err
	}
	members := []ast.Type{left}
	for {
		has, err := p.lex.PeekReadTokenIs(token.BitwiseOr)
		if err != nil {
			return nil, err
		}
		if !has {
			break
		}
		next, err := p.parseIntersectionType()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
	}
	if len(members) == 1 {
		return members[0], nil
	}
	return &ast.MultipleType{Pos: left.Position(), Tag: ast.TagUnion, Types: members}, nil
}

func (p *Parser) parseIntersectionType() (ast.Type, error) {
	left, err := p.parsePostfixType()
	if err != nil {
		return nil, err
	}
	members := []ast.Type{left}
	for {
		has, err := p.lex.PeekReadTokenIs(token.BitwiseAnd)
		if err != nil {
			return nil, err
		}
		if !has {
			break
		}
		next, err := p.parsePostfixType()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
	}
	if len(members) == 1 {
		return members[0], nil
	}
	return &ast.MultipleType{Pos: left.Position(), Tag: ast.TagIntersection, Types: members}, nil
}

func (p *Parser) parsePostfixType() (ast.Type, error) {
	base, err := p.parseBaseType()
	if err != nil {
		return nil, err
	}
	for {
		isBracket, err := p.lex.PeekTokenIs(token.LeftBracket)
		if err != nil {
			return nil, err
		}
		if !isBracket {
			return base, nil
		}
		isEmpty, err := p.lex.PeekNextButOneTokenIs(token.RightBracket)
		if err != nil {
			return nil, err
		}
		if !isEmpty {
			return base, nil
		}
		open, err := p.lex.ReadToken()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightBracket); err != nil {
			return nil, err
		}
		base = &ast.ListType{Pos: open.Position, Element: base}
	}
}

func (p *Parser) parseBaseType() (ast.Type, error) {
	tok, err := p.lex.ReadToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.KeywordTrue:
		return &ast.BooleanType{Pos: tok.Position, Value: true}, nil
	case token.KeywordFalse:
		return &ast.BooleanType{Pos: tok.Position, Value: false}, nil
	case token.KeywordNull:
		return &ast.NullType{Pos: tok.Position}, nil
	case token.String:
		return &ast.StringLiteralType{Pos: tok.Position, Value: tok.Text}, nil
	case token.Id:
		return &ast.NamedType{Pos: tok.Position, Name: tok.Text}, nil
	case token.LeftBrace:
		return p.parseRecordType(tok)
	case token.LeftParen:
		return p.parseParenType(tok)
	default:
		return nil, snekerr.Syntaxf(tok.Position, "Unexpected %s; Missing type.", tok.String())
	}
}

func (p *Parser) parseRecordType(open token.Token) (ast.Type, error) {
	var fields []*ast.RecordTypeField
	for {
		isClose, err := p.lex.PeekTokenIs(token.RightBrace)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		name, err := p.expectID()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		fieldType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, &ast.RecordTypeField{Name: name.Text, Type: fieldType})
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
	return &ast.RecordType{Pos: open.Position, Fields: fields}, nil
}

func (p *Parser) parseParenType(open token.Token) (ast.Type, error) {
	isClose, err := p.lex.PeekTokenIs(token.RightParen)
	if err != nil {
		return nil, err
	}
	if isClose {
		if _, err := p.lex.ReadToken(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Arrow); err != nil {
			return nil, err
		}
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionType{Pos: open.Position, Return: ret}, nil
	}

	var members []ast.Type
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		members = append(members, t)
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
	hasArrow, err := p.lex.PeekReadTokenIs(token.Arrow)
	if err != nil {
		return nil, err
	}
	if hasArrow {
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionType{Pos: open.Position, Parameters: members, Return: ret}, nil
	}
	if len(members) == 1 {
		return members[0], nil
	}
	return &ast.MultipleType{Pos: open.Position, Tag: ast.TagTuple, Types: members}, nil
}
