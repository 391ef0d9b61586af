// Package ast defines Snek's expression, statement, type, parameter and
// field nodes, per spec §3.3.
package ast

import (
	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/token"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	Position() snekerr.Position
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a Node executed for effect.
type Statement interface {
	Node
	statementNode()
}

// Type is a syntactic type annotation, resolved later by internal/types.
type Type interface {
	Node
	typeNode()
}

// Module is the root of a parsed source file: a flat list of statements in
// source order (spec §6.1's grammar: `module = { statement }`).
type Module struct {
	Pos        snekerr.Position
	Statements []Statement
}

func (m *Module) Position() snekerr.Position { return m.Pos }

// ---- Parameters, elements and fields (spec §3.3) ----

// Parameter is one formal parameter of a function literal.
type Parameter struct {
	Pos     snekerr.Position
	Name    string
	Type    Type // may be nil
	Default Expression // may be nil
	Rest    bool
}

func (p *Parameter) Position() snekerr.Position { return p.Pos }

// ElementKind distinguishes a plain list element from a spread element.
type ElementKind int

const (
	ElementValue ElementKind = iota
	ElementSpread
)

// Element is one entry of a List literal.
type Element struct {
	Kind       ElementKind
	Expression Expression
}

// FieldKind distinguishes the four forms a Record literal field may take.
type FieldKind int

const (
	FieldComputed FieldKind = iota
	FieldFunction
	FieldNamed
	FieldShorthand
	FieldSpread
)

// Field is one entry of a Record literal.
type Field struct {
	Pos    snekerr.Position
	Kind   FieldKind
	Name   string     // Named, Shorthand, Function
	Key    Expression // Computed
	Value  Expression // Computed, Named, Spread
	Params []*Parameter
	Return Type
	Body   Statement // Function
}

func (f *Field) Position() snekerr.Position { return f.Pos }

// ---- Import specifiers (spec §3.3) ----

// ImportSpecKind distinguishes a named specifier from a star specifier.
type ImportSpecKind int

const (
	ImportNamed ImportSpecKind = iota
	ImportStar
)

// ImportSpecifier is one entry of an import statement's specifier list.
type ImportSpecifier struct {
	Pos   snekerr.Position
	Kind  ImportSpecKind
	Name  string // ImportNamed only
	Alias string // optional for both kinds; empty means no alias
}

func (s *ImportSpecifier) Position() snekerr.Position { return s.Pos }

// TokenKindText returns token text for literals that echo their source form
// (used by diagnostics and the dump subcommand).
func TokenKindText(t token.Token) string { return t.Text }
