package ast

import "github.com/snek-lang/snek/internal/snekerr"

// BooleanType is the syntactic `true` or `false` literal type.
type BooleanType struct {
	Pos   snekerr.Position
	Value bool
}

func (*BooleanType) typeNode()             {}
func (b *BooleanType) Position() snekerr.Position { return b.Pos }

// NullType is the syntactic `Null` type.
type NullType struct {
	Pos snekerr.Position
}

func (*NullType) typeNode()             {}
func (n *NullType) Position() snekerr.Position { return n.Pos }

// StringLiteralType is a syntactic string-literal type, e.g. `"x"`.
type StringLiteralType struct {
	Pos   snekerr.Position
	Value string
}

func (*StringLiteralType) typeNode()             {}
func (s *StringLiteralType) Position() snekerr.Position { return s.Pos }

// NamedType is a reference to a builtin or user-declared type name, e.g.
// `Int`, `String`, `Any`, or a `type` alias.
type NamedType struct {
	Pos  snekerr.Position
	Name string
}

func (*NamedType) typeNode()             {}
func (n *NamedType) Position() snekerr.Position { return n.Pos }

// ListType is `T[]` or `List<T>` syntax for a homogeneous list type.
type ListType struct {
	Pos     snekerr.Position
	Element Type
}

func (*ListType) typeNode()             {}
func (l *ListType) Position() snekerr.Position { return l.Pos }

// RecordTypeField is one field of a syntactic record type.
type RecordTypeField struct {
	Name string
	Type Type
}

// RecordType is `{ name: T, ... }` syntax for a record type.
type RecordType struct {
	Pos    snekerr.Position
	Fields []*RecordTypeField
}

func (*RecordType) typeNode()             {}
func (r *RecordType) Position() snekerr.Position { return r.Pos }

// FunctionType is `(T1, T2) -> R` syntax for a function type.
type FunctionType struct {
	Pos        snekerr.Position
	Parameters []Type
	Return     Type
}

func (*FunctionType) typeNode()             {}
func (f *FunctionType) Position() snekerr.Position { return f.Pos }

// MultipleTag distinguishes the three flavors of MultipleType.
type MultipleTag int

const (
	TagIntersection MultipleTag = iota
	TagTuple
	TagUnion
)

// MultipleType is `A & B`, `A | B`, or `(A, B)` syntax, per the Tag.
type MultipleType struct {
	Pos   snekerr.Position
	Tag   MultipleTag
	Types []Type
}

func (*MultipleType) typeNode()             {}
func (m *MultipleType) Position() snekerr.Position { return m.Pos }
