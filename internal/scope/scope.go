// Package scope implements Snek's lexical scope chain (spec §3.6): two
// ordered name->entry mappings per scope (variables and types), each
// optionally exported, variables additionally read-only, with a parent
// link walked on lookup miss.
package scope

import "github.com/snek-lang/snek/internal/types"

// variableEntry is one binding in a Scope's variable table.
type variableEntry struct {
	value      interface{} // *value.Value, boxed to avoid an import cycle (scope<-interp->value)
	valueType  types.Type
	exported   bool
	readOnly   bool
	imported   bool // declared by an `import` statement; recorded only, no method of Scope reads it
}

// typeEntry is one binding in a Scope's type table.
type typeEntry struct {
	typ      types.Type
	exported bool
}

// Scope is one lexical level: a module body, a function body, a block.
// Declaring the same name twice at the same level is an error (spec §3.6:
// "no shadowing within one level"); declaring a name already bound in an
// ancestor is allowed and shadows it.
type Scope struct {
	parent    *Scope
	variables map[string]*variableEntry
	typeNames map[string]*typeEntry
	// order preserves declaration order for star-import enumeration.
	order     []string
	typeOrder []string
}

// New creates a root scope with no parent.
func New() *Scope {
	return &Scope{
		variables: make(map[string]*variableEntry),
		typeNames: make(map[string]*typeEntry),
	}
}

// Child creates a new nested scope whose parent is s.
func (s *Scope) Child() *Scope {
	child := New()
	child.parent = s
	return child
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// DeclareVariable binds name at this scope level. It reports false if name
// is already declared at this exact level (spec §3.6 no-shadowing-within-
// one-level invariant); shadowing an ancestor binding is always allowed.
func (s *Scope) DeclareVariable(name string, val interface{}, typ types.Type, exported, readOnly, imported bool) bool {
	if _, exists := s.variables[name]; exists {
		return false
	}
	s.variables[name] = &variableEntry{
		value:     val,
		valueType: typ,
		exported:  exported,
		readOnly:  readOnly,
		imported:  imported,
	}
	s.order = append(s.order, name)
	return true
}

// DeclareType binds a `type` alias at this scope level. Same no-shadowing
// rule as DeclareVariable.
func (s *Scope) DeclareType(name string, typ types.Type, exported bool) bool {
	if _, exists := s.typeNames[name]; exists {
		return false
	}
	s.typeNames[name] = &typeEntry{typ: typ, exported: exported}
	s.typeOrder = append(s.typeOrder, name)
	return true
}

// Lookup searches this scope and its ancestors for name, returning the
// bound value, its static type, whether it is read-only, and whether it
// was found at all.
func (s *Scope) Lookup(name string) (val interface{}, typ types.Type, readOnly bool, ok bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if e, found := cur.variables[name]; found {
			return e.value, e.valueType, e.readOnly, true
		}
	}
	return nil, nil, false, false
}

// LookupLocal searches only this exact scope level, without walking to
// ancestors.
func (s *Scope) LookupLocal(name string) (ok bool) {
	_, ok = s.variables[name]
	return ok
}

// LookupType searches this scope and its ancestors for a `type` alias
// named name. Scope implements types.Env via this method.
func (s *Scope) LookupType(name string) (types.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if e, found := cur.typeNames[name]; found {
			return e.typ, true
		}
	}
	return nil, false
}

// Set reassigns an already-declared variable, walking to the ancestor that
// owns it. Reports ok=false if the name is unbound anywhere in the chain,
// and readOnly=true (without mutating) if the owning binding is read-only.
func (s *Scope) Set(name string, val interface{}) (readOnly bool, ok bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if e, found := cur.variables[name]; found {
			if e.readOnly {
				return true, true
			}
			e.value = val
			return false, true
		}
	}
	return false, false
}

// ExportedNames returns the names exported at exactly this scope level, in
// declaration order -- consumed by a star import (spec §4.5) to populate
// the importing scope.
func (s *Scope) ExportedNames() []string {
	names := make([]string, 0, len(s.order))
	for _, name := range s.order {
		if e := s.variables[name]; e.exported {
			names = append(names, name)
		}
	}
	return names
}

// ExportedTypeNames mirrors ExportedNames for `type` aliases.
func (s *Scope) ExportedTypeNames() []string {
	names := make([]string, 0, len(s.typeOrder))
	for _, name := range s.typeOrder {
		if e := s.typeNames[name]; e.exported {
			names = append(names, name)
		}
	}
	return names
}

// VariableType returns the static type recorded for a locally-declared
// variable, without walking ancestors.
func (s *Scope) VariableType(name string) (types.Type, bool) {
	e, ok := s.variables[name]
	if !ok {
		return nil, false
	}
	return e.valueType, true
}
