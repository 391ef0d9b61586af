package module_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snek-lang/snek/internal/interp"
	"github.com/snek-lang/snek/internal/module"
	"github.com/snek-lang/snek/internal/parser"
)

// TestStarImportWithAliasPacksRecord exercises spec §8 scenario 6: a star
// import with an alias packs every exported variable of the target module
// into a synthetic Record bound to that alias, rather than flattening
// names into the importing scope.
func TestStarImportWithAliasPacksRecord(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.snek"), []byte(
		`export const greet = (who: String): String => "hello, " + who`+"\n",
	), 0o644))

	rt := interp.NewRuntime()
	rt.Interp.Importer = module.New(rt.Interp, []string{dir})

	var out bytes.Buffer
	rt.Interp.Stdout = &out

	mod, err := parser.Parse([]byte(`
import * as m from "lib"
print(m.greet("world"))
`), filepath.Join(dir, "main.snek"))
	require.NoError(t, err)

	for _, stmt := range mod.Statements {
		require.NoError(t, rt.Interp.ExecuteStatement(rt.Interp.Global, stmt))
	}
	require.Equal(t, "hello, world\n", out.String())
}

// TestNamedImportWithAlias checks a plain named import with `as` aliasing
// (spec §3.3's import specifier). It does not check `__name__`.
func TestNamedImportWithAlias(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.snek"), []byte(
		"export const answer = 42\n",
	), 0o644))

	rt := interp.NewRuntime()
	rt.Interp.Importer = module.New(rt.Interp, []string{dir})

	var out bytes.Buffer
	rt.Interp.Stdout = &out

	mod, err := parser.Parse([]byte(`
import answer as a from "lib"
print(a)
`), filepath.Join(dir, "main.snek"))
	require.NoError(t, err)

	for _, stmt := range mod.Statements {
		require.NoError(t, rt.Interp.ExecuteStatement(rt.Interp.Global, stmt))
	}
	require.Equal(t, "42\n", out.String())
}
