package interp

import (
	"github.com/snek-lang/snek/internal/ast"
	"github.com/snek-lang/snek/internal/scope"
	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/value"
)

// Importer resolves and evaluates a module, returning its top-level scope.
// internal/module.Importer implements this; interp depends only on this
// small interface so module can depend on interp (to actually evaluate a
// parsed module body) without an import cycle back the other way.
type Importer interface {
	Import(path string, fromPos snekerr.Position) (*scope.Scope, error)
}

// executeImport implements the `import` statement (spec §4.5): resolve
// the target module's scope once (the Importer is responsible for
// caching), then copy the requested bindings into sc.
func (it *Interp) executeImport(sc *scope.Scope, s *ast.Import) error {
	if it.Importer == nil {
		return snekerr.Runtimef(s.Pos, "No module importer is configured.")
	}
	for _, spec := range s.Specifiers {
		path := s.Path
		if !s.HasPathFrom {
			if spec.Kind == ast.ImportStar {
				return snekerr.Runtimef(s.Pos, "A star import requires a `from \"path\"' clause.")
			}
			path = spec.Name
		}
		if path == "" {
			return snekerr.Runtimef(s.Pos, "Import path must not be blank.")
		}
		modScope, err := it.Importer.Import(path, s.Pos)
		if err != nil {
			return err
		}
		if spec.Kind == ast.ImportStar {
			if spec.Alias != "" {
				// Star import with alias packs every exported variable
				// into a synthetic Record bound to the alias (spec
				// §4.4.5 Import), rather than flattening names into sc.
				names := modScope.ExportedNames()
				order := make([]string, 0, len(names))
				data := make(map[string]value.Value, len(names))
				for _, name := range names {
					v, _, _, _ := modScope.Lookup(name)
					order = append(order, name)
					data[name] = v.(value.Value)
				}
				mod := value.NewRecord(order, data, it.Prototypes.Record)
				if !sc.DeclareVariable(spec.Alias, mod, nil, false, true, false) {
					return snekerr.New(snekerr.NameClash, s.Pos, "`"+spec.Alias+"' is already declared in this scope.")
				}
				continue
			}
			for _, name := range modScope.ExportedNames() {
				v, typ, _, _ := modScope.Lookup(name)
				if !sc.DeclareVariable(name, v, typ, false, true, true) {
					return snekerr.New(snekerr.NameClash, s.Pos, "`"+name+"' is already declared in this scope.")
				}
			}
			for _, name := range modScope.ExportedTypeNames() {
				t, _ := modScope.LookupType(name)
				sc.DeclareType(name, t, false)
			}
			continue
		}
		localName := spec.Name
		if spec.Alias != "" {
			localName = spec.Alias
		}
		v, typ, _, ok := modScope.Lookup(spec.Name)
		if !ok {
			if t, ok := modScope.LookupType(spec.Name); ok {
				sc.DeclareType(localName, t, false)
				continue
			}
			return snekerr.New(snekerr.MissingProperty, s.Pos, "Module has no export named `"+spec.Name+"'.")
		}
		if !sc.DeclareVariable(localName, v, typ, false, true, true) {
			return snekerr.New(snekerr.NameClash, s.Pos, "`"+localName+"' is already declared in this scope.")
		}
	}
	return nil
}
