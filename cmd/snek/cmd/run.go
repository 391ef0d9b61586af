package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/snek-lang/snek/internal/config"
	"github.com/snek-lang/snek/internal/interp"
	"github.com/snek-lang/snek/internal/module"
	"github.com/snek-lang/snek/internal/parser"
	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/value"
)

var evalExpr string

// runScript implements `snek [-e expr] [file]` (spec §6): a file argument
// or -e expression runs to completion and exits; with neither, stdin is
// read if it is piped, or an interactive REPL starts if stdin is a
// terminal (mirrors how the teacher's `run` command treats the same three
// input sources interchangeably).
func runScript(_ *cobra.Command, args []string) error {
	var source []byte
	var filename string

	switch {
	case evalExpr != "" && len(args) > 0:
		return fmt.Errorf("usage: snek [-e prog] [file]; -e and a file argument are mutually exclusive")
	case evalExpr != "":
		source = []byte(evalExpr)
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("reading %s: %w", filename, err)
		}
		source = data
	case isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()):
		return runRepl()
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		source = data
		filename = "<stdin>"
	}

	runtime, imp, err := newRuntime(filename)
	if err != nil {
		return err
	}
	defer imp.close()

	mod, err := parser.Parse(source, filename)
	if err != nil {
		return err
	}
	for _, stmt := range mod.Statements {
		if err := runtime.Interp.ExecuteStatement(runtime.Interp.Global, stmt); err != nil {
			if se, ok := err.(*snekerr.Error); ok {
				fmt.Fprintln(os.Stderr, se.FormatWithTrace())
				return se
			}
			return err
		}
	}
	return nil
}

type importerHandle struct {
	disk *module.DiskCache
}

func (h *importerHandle) close() {
	if h != nil && h.disk != nil {
		h.disk.Close()
	}
}

// newRuntime builds a fresh interp.Runtime wired to a module.Importer
// configured from the nearest `.snek.yaml` (spec §5), searched from the
// directory containing filename (or the working directory for `<eval>`/
// `<stdin>`).
func newRuntime(filename string) (*interp.Runtime, *importerHandle, error) {
	dir := "."
	if filename != "" && filename != "<eval>" && filename != "<stdin>" {
		dir = filepath.Dir(filename)
	}
	cfg, err := config.LoadFromDir(dir)
	if err != nil {
		return nil, nil, err
	}

	rt := interp.NewRuntime()
	rt.Interp.IntCacheMin = cfg.IntCache.Min
	rt.Interp.IntCacheMax = cfg.IntCache.Max
	// Every module scope carries a read-only __name__ (spec §6.3); the
	// entry script's (run or REPL) is always "__main__".
	rt.Interp.Global.DeclareVariable("__name__", value.NewString("__main__"), nil, false, true, false)

	importer := module.New(rt.Interp, cfg.ImportPath)
	handle := &importerHandle{}
	if cfg.DiskCache.Enabled {
		disk, err := module.OpenDiskCache(cfg.DiskCache.Path)
		if err == nil {
			importer.Disk = disk
			handle.disk = disk
		} else if verbose {
			fmt.Fprintln(os.Stderr, "warning: module disk cache disabled:", err)
		}
	}
	rt.Interp.Importer = importer
	return rt, handle, nil
}
