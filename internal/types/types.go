// Package types implements Snek's structural type model (spec §3.5) and the
// Accepts subtyping relation (spec §4.3). It has no dependency on
// internal/value: runtime values are consulted through the small Valued
// interface below, which internal/value implements structurally, avoiding
// an import cycle between the value model and the type model it is typed
// against (spec §3.4's Function carries a types.Type return annotation).
package types

import "sort"

// ValueKind is the tag of a runtime value, mirrored here so Accepts can
// switch on it without importing internal/value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBoolean
	KindInt
	KindFloat
	KindString
	KindList
	KindRecord
	KindFunction
)

// Valued is satisfied by internal/value.Value. It exposes just enough
// structure for Accepts to check literal, list, tuple, record and function
// compatibility without a dependency on the value package.
type Valued interface {
	Kind() ValueKind
	BoolValue() bool
	IntValue() int64
	FloatValue() float64
	StringValue() string
	ListLen() int
	ListAt(i int) Valued
	RecordKeys() []string
	RecordGet(key string) (Valued, bool)
	FunctionType() *Function
}

// Type is the interface every type variant satisfies.
type Type interface {
	String() string
	// Accepts reports whether v is a member of this type (spec §4.3).
	Accepts(v Valued) bool
	// AcceptsType reports whether other is a subtype of this type.
	AcceptsType(other Type) bool
}

// Builtin enumerates Snek's primitive/builtin types.
type Builtin int

const (
	TBoolean Builtin = iota
	TFloat
	TFunction
	TInt
	TList
	TNumber
	TRecord
	TString
	TVoid
)

func (b Builtin) String() string {
	switch b {
	case TBoolean:
		return "Boolean"
	case TFloat:
		return "Float"
	case TFunction:
		return "Function"
	case TInt:
		return "Int"
	case TList:
		return "List"
	case TNumber:
		return "Number"
	case TRecord:
		return "Record"
	case TString:
		return "String"
	case TVoid:
		return "Void"
	default:
		return "?"
	}
}

func (b Builtin) Accepts(v Valued) bool {
	switch b {
	case TBoolean:
		return v.Kind() == KindBoolean
	case TFloat:
		return v.Kind() == KindFloat
	case TFunction:
		return v.Kind() == KindFunction
	case TInt:
		return v.Kind() == KindInt
	case TList:
		return v.Kind() == KindList
	case TNumber:
		return v.Kind() == KindInt || v.Kind() == KindFloat
	case TRecord:
		return v.Kind() == KindRecord
	case TString:
		return v.Kind() == KindString
	case TVoid:
		return v.Kind() == KindNull
	default:
		return false
	}
}

func (b Builtin) AcceptsType(other Type) bool {
	switch o := other.(type) {
	case Builtin:
		if b == o {
			return true
		}
		if b == TNumber {
			return o == TInt || o == TFloat
		}
		if b == TList {
			return o == TList
		}
		return false
	case Tuple:
		return b == TList
	case BooleanLiteral:
		return b == TBoolean
	case StringLiteral:
		return b == TString
	case List:
		return b == TList
	default:
		return false
	}
}

// Any accepts every value and every other type.
type Any struct{}

func (Any) String() string            { return "Any" }
func (Any) Accepts(Valued) bool       { return true }
func (Any) AcceptsType(Type) bool     { return true }

// Null is the type of the `null` literal.
type Null struct{}

func (Null) String() string        { return "Null" }
func (Null) Accepts(v Valued) bool { return v.Kind() == KindNull }
func (Null) AcceptsType(other Type) bool {
	_, ok := other.(Null)
	return ok
}

// BooleanLiteral is the singleton type of `true` or `false`.
type BooleanLiteral struct{ Value bool }

func (b BooleanLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (b BooleanLiteral) Accepts(v Valued) bool {
	return v.Kind() == KindBoolean && v.BoolValue() == b.Value
}
func (b BooleanLiteral) AcceptsType(other Type) bool {
	if o, ok := other.(BooleanLiteral); ok {
		return o.Value == b.Value
	}
	return false
}

// StringLiteral is the singleton type of one specific string value.
type StringLiteral struct{ Value string }

func (s StringLiteral) String() string { return "\"" + s.Value + "\"" }
func (s StringLiteral) Accepts(v Valued) bool {
	return v.Kind() == KindString && v.StringValue() == s.Value
}
func (s StringLiteral) AcceptsType(other Type) bool {
	if o, ok := other.(StringLiteral); ok {
		return o.Value == s.Value
	}
	return false
}

// List is the type of a homogeneous list with element type Element.
type List struct{ Element Type }

func (l List) String() string { return l.Element.String() + "[]" }
func (l List) Accepts(v Valued) bool {
	if v.Kind() != KindList {
		return false
	}
	for i := 0; i < v.ListLen(); i++ {
		if !l.Element.Accepts(v.ListAt(i)) {
			return false
		}
	}
	return true
}
func (l List) AcceptsType(other Type) bool {
	switch o := other.(type) {
	case List:
		return l.Element.AcceptsType(o.Element)
	case Tuple:
		for _, t := range o.Elements {
			if !l.Element.AcceptsType(t) {
				return false
			}
		}
		return true
	case Builtin:
		return false
	default:
		return false
	}
}

// Tuple is the type of a fixed-length, heterogeneous list.
type Tuple struct{ Elements []Type }

func (t Tuple) String() string {
	var sb []byte
	sb = append(sb, '(')
	for i, e := range t.Elements {
		if i > 0 {
			sb = append(sb, ", "...)
		}
		sb = append(sb, e.String()...)
	}
	sb = append(sb, ')')
	return string(sb)
}
func (t Tuple) Accepts(v Valued) bool {
	if v.Kind() != KindList || v.ListLen() != len(t.Elements) {
		return false
	}
	for i, e := range t.Elements {
		if !e.Accepts(v.ListAt(i)) {
			return false
		}
	}
	return true
}
func (t Tuple) AcceptsType(other Type) bool {
	o, ok := other.(Tuple)
	if !ok || len(o.Elements) != len(t.Elements) {
		return false
	}
	for i, e := range t.Elements {
		if !e.AcceptsType(o.Elements[i]) {
			return false
		}
	}
	return true
}

// Record is the type of a record that has at least the given required
// fields; extra fields are accepted (spec §4.3: "Record accepts another
// Record iff every required field is present and type-compatible").
type Record struct{ Fields map[string]Type }

func (r Record) String() string {
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb []byte
	sb = append(sb, '{')
	for i, k := range keys {
		if i > 0 {
			sb = append(sb, ", "...)
		}
		sb = append(sb, k...)
		sb = append(sb, ": "...)
		sb = append(sb, r.Fields[k].String()...)
	}
	sb = append(sb, '}')
	return string(sb)
}
func (r Record) Accepts(v Valued) bool {
	if v.Kind() != KindRecord {
		return false
	}
	for name, fieldType := range r.Fields {
		fv, ok := v.RecordGet(name)
		if !ok || !fieldType.Accepts(fv) {
			return false
		}
	}
	return true
}
func (r Record) AcceptsType(other Type) bool {
	o, ok := other.(Record)
	if !ok {
		return false
	}
	for name, fieldType := range r.Fields {
		ot, present := o.Fields[name]
		if !present || !fieldType.AcceptsType(ot) {
			return false
		}
	}
	return true
}

// Parameter describes one formal parameter's declared type in a Function
// type (spec §3.5).
type Parameter struct {
	Name    string
	Type    Type // nil means unannotated (Any)
	Rest    bool
	HasDefault bool
}

// Function is the type of a function value.
type Function struct {
	Parameters []Parameter
	Return     Type // nil means unannotated (Any)
}

func (f Function) String() string {
	var sb []byte
	sb = append(sb, '(')
	for i, p := range f.Parameters {
		if i > 0 {
			sb = append(sb, ", "...)
		}
		if p.Type != nil {
			sb = append(sb, p.Type.String()...)
		} else {
			sb = append(sb, "Any"...)
		}
	}
	sb = append(sb, ") -> "...)
	if f.Return != nil {
		sb = append(sb, f.Return.String()...)
	} else {
		sb = append(sb, "Any"...)
	}
	return string(sb)
}
func (f Function) Accepts(v Valued) bool { return v.Kind() == KindFunction }
func (f Function) AcceptsType(other Type) bool {
	o, ok := other.(Function)
	if !ok {
		return false
	}
	if len(o.Parameters) != len(f.Parameters) {
		return false
	}
	if f.Return != nil && (o.Return == nil || !f.Return.AcceptsType(o.Return)) {
		return false
	}
	return true
}

// Intersection requires every member type to accept.
type Intersection struct{ Members []Type }

func (i Intersection) String() string { return joinTypes(i.Members, " & ") }
func (i Intersection) Accepts(v Valued) bool {
	for _, m := range i.Members {
		if !m.Accepts(v) {
			return false
		}
	}
	return true
}
func (i Intersection) AcceptsType(other Type) bool {
	for _, m := range i.Members {
		if !m.AcceptsType(other) {
			return false
		}
	}
	return true
}

// Union requires at least one member type to accept.
type Union struct{ Members []Type }

func (u Union) String() string { return joinTypes(u.Members, " | ") }
func (u Union) Accepts(v Valued) bool {
	for _, m := range u.Members {
		if m.Accepts(v) {
			return true
		}
	}
	return false
}
func (u Union) AcceptsType(other Type) bool {
	for _, m := range u.Members {
		if m.AcceptsType(other) {
			return true
		}
	}
	return false
}

func joinTypes(types []Type, sep string) string {
	var sb []byte
	for i, t := range types {
		if i > 0 {
			sb = append(sb, sep...)
		}
		sb = append(sb, t.String()...)
	}
	return string(sb)
}

// Reify normalizes a list of candidate types into a single type: zero
// candidates become Void, one becomes itself, more become a deduplicated
// Union (spec §4.3, function return-type inference).
func Reify(candidates []Type) Type {
	if len(candidates) == 0 {
		return Builtin(TVoid)
	}
	deduped := make([]Type, 0, len(candidates))
	for _, c := range candidates {
		dup := false
		for _, d := range deduped {
			if d.String() == c.String() {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, c)
		}
	}
	if len(deduped) == 1 {
		return deduped[0]
	}
	return Union{Members: deduped}
}
