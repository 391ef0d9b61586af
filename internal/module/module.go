// Package module resolves and evaluates `import` targets (spec §4.5). It
// implements interp.Importer so internal/interp never has to import this
// package back: a module's body is itself just another parse-and-evaluate
// pass over internal/parser and internal/interp, run once per resolved
// path and cached by absolute path for the lifetime of a Runtime.
package module

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/snek-lang/snek/internal/interp"
	"github.com/snek-lang/snek/internal/parser"
	"github.com/snek-lang/snek/internal/scope"
	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/value"
)

// Importer resolves `import ... from "path"` targets against a search
// path, evaluates each module body at most once, and caches the result
// by resolved absolute path.
type Importer struct {
	Runtime    *interp.Interp
	SearchPath []string
	Disk       *DiskCache // optional; nil disables disk-backed metadata caching

	cache map[string]*scope.Scope
}

// New builds an Importer wired to it, searching searchPath (in order)
// before falling back to the importing file's own directory, per
// internal/config.Config.ImportPath's documented resolution order.
func New(it *interp.Interp, searchPath []string) *Importer {
	return &Importer{Runtime: it, SearchPath: searchPath, cache: map[string]*scope.Scope{}}
}

// Import implements interp.Importer.
func (m *Importer) Import(path string, fromPos snekerr.Position) (*scope.Scope, error) {
	abs, err := m.resolve(path, fromPos)
	if err != nil {
		return nil, snekerr.Runtimef(fromPos, "%s", err.Error())
	}
	if cached, ok := m.cache[abs]; ok {
		return cached, nil
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, snekerr.Runtimef(fromPos, "Cannot read module %q: %s", path, err)
	}
	if m.Disk != nil {
		_ = m.Disk.Record(abs, info)
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, snekerr.Runtimef(fromPos, "Cannot read module %q: %s", path, err)
	}
	mod, err := parser.Parse(src, abs)
	if err != nil {
		return nil, err
	}

	modScope := m.Runtime.Global.Child()
	modScope.DeclareVariable("__name__", value.NewString(path), nil, false, true, false)

	// Guard against import cycles re-entering the same module while its
	// body is still executing: cache the (empty-so-far) scope before
	// running statements so a cyclic import observes partial exports
	// instead of recursing forever.
	m.cache[abs] = modScope
	for _, stmt := range mod.Statements {
		if err := m.Runtime.ExecuteStatement(modScope, stmt); err != nil {
			delete(m.cache, abs)
			return nil, err
		}
	}
	return modScope, nil
}

func (m *Importer) resolve(path string, fromPos snekerr.Position) (string, error) {
	rel := path + ".snek"
	for _, dir := range m.SearchPath {
		candidate := filepath.Join(dir, rel)
		if fileExists(candidate) {
			return filepath.Abs(candidate)
		}
	}
	if fromPos.File != "" && fromPos.File != "<eval>" {
		candidate := filepath.Join(filepath.Dir(fromPos.File), rel)
		if fileExists(candidate) {
			return filepath.Abs(candidate)
		}
	}
	if fileExists(path) {
		return filepath.Abs(path)
	}
	return "", fmt.Errorf("module %q not found", path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
