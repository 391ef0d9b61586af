package ast

import "github.com/snek-lang/snek/internal/snekerr"

// Boolean is a `true`/`false` literal.
type Boolean struct {
	Pos   snekerr.Position
	Value bool
}

func (*Boolean) expressionNode()          {}
func (b *Boolean) Position() snekerr.Position { return b.Pos }

// Int is an integer literal, already parsed to an int64.
type Int struct {
	Pos   snekerr.Position
	Value int64
}

func (*Int) expressionNode()             {}
func (i *Int) Position() snekerr.Position { return i.Pos }

// Float is a floating point literal.
type Float struct {
	Pos   snekerr.Position
	Value float64
}

func (*Float) expressionNode()             {}
func (f *Float) Position() snekerr.Position { return f.Pos }

// String is a string literal, already unescaped.
type String struct {
	Pos   snekerr.Position
	Value string
}

func (*String) expressionNode()             {}
func (s *String) Position() snekerr.Position { return s.Pos }

// Null is the `null` literal.
type Null struct {
	Pos snekerr.Position
}

func (*Null) expressionNode()             {}
func (n *Null) Position() snekerr.Position { return n.Pos }

// Id is an identifier reference.
type Id struct {
	Pos  snekerr.Position
	Name string
}

func (*Id) expressionNode()             {}
func (i *Id) Position() snekerr.Position { return i.Pos }

// List is a list literal `[e1, e2, ...]`.
type List struct {
	Pos      snekerr.Position
	Elements []*Element
}

func (*List) expressionNode()             {}
func (l *List) Position() snekerr.Position { return l.Pos }

// Record is a record literal `{ field, ... }`.
type Record struct {
	Pos    snekerr.Position
	Fields []*Field
}

func (*Record) expressionNode()             {}
func (r *Record) Position() snekerr.Position { return r.Pos }

// Function is a function literal.
type Function struct {
	Pos        snekerr.Position
	Parameters []*Parameter
	Return     Type // may be nil
	Body       Statement
}

func (*Function) expressionNode()             {}
func (f *Function) Position() snekerr.Position { return f.Pos }

// Unary is a prefix unary expression: `!`, `+`, `-`, `~`.
type Unary struct {
	Pos      snekerr.Position
	Operator string
	Operand  Expression
}

func (*Unary) expressionNode()             {}
func (u *Unary) Position() snekerr.Position { return u.Pos }

// Binary is an infix binary expression, including `&&`, `||` and `??` which
// the evaluator short-circuits rather than dispatching through a method.
type Binary struct {
	Pos      snekerr.Position
	Operator string
	Left     Expression
	Right    Expression
}

func (*Binary) expressionNode()             {}
func (b *Binary) Position() snekerr.Position { return b.Pos }

// Ternary is `cond ? consequent : alternate`.
type Ternary struct {
	Pos         snekerr.Position
	Condition   Expression
	Consequent  Expression
	Alternate   Expression
}

func (*Ternary) expressionNode()             {}
func (t *Ternary) Position() snekerr.Position { return t.Pos }

// Assign is `target = value` or a compound/short-circuit variant.
// CompoundOperator is "" for plain `=`.
type Assign struct {
	Pos              snekerr.Position
	Target           Expression
	CompoundOperator string
	Value            Expression
}

func (*Assign) expressionNode()             {}
func (a *Assign) Position() snekerr.Position { return a.Pos }

// Call is a function/method invocation, optionally conditional (`?.()`).
type Call struct {
	Pos         snekerr.Position
	Callee      Expression
	Arguments   []Expression
	// ArgumentSpreads[i] is true when Arguments[i] was written `...expr`.
	ArgumentSpreads []bool
	Conditional bool
}

func (*Call) expressionNode()             {}
func (c *Call) Position() snekerr.Position { return c.Pos }

// Property is `receiver.name`, optionally conditional (`?.name`).
type Property struct {
	Pos         snekerr.Position
	Receiver    Expression
	Name        string
	Conditional bool
}

func (*Property) expressionNode()             {}
func (p *Property) Position() snekerr.Position { return p.Pos }

// Subscript is `receiver[index]`, optionally conditional (`?.[index]`).
type Subscript struct {
	Pos         snekerr.Position
	Receiver    Expression
	Index       Expression
	Conditional bool
}

func (*Subscript) expressionNode()             {}
func (s *Subscript) Position() snekerr.Position { return s.Pos }

// Increment is `++operand` or `operand++`, per the Pre flag.
type Increment struct {
	Pos     snekerr.Position
	Operand Expression
	Pre     bool
}

func (*Increment) expressionNode()             {}
func (i *Increment) Position() snekerr.Position { return i.Pos }

// Decrement is `--operand` or `operand--`, per the Pre flag.
type Decrement struct {
	Pos     snekerr.Position
	Operand Expression
	Pre     bool
}

func (*Decrement) expressionNode()             {}
func (d *Decrement) Position() snekerr.Position { return d.Pos }

// Spread is `...expr`, valid only inside list/record/call argument
// position; it is never evaluated on its own.
type Spread struct {
	Pos        snekerr.Position
	Expression Expression
}

func (*Spread) expressionNode()             {}
func (s *Spread) Position() snekerr.Position { return s.Pos }
