package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/snek-lang/snek/internal/ast"
	"github.com/snek-lang/snek/internal/parser"
	"github.com/snek-lang/snek/internal/snekerr"
	"github.com/snek-lang/snek/internal/value"
)

// runRepl implements the interactive prompt started when `snek` is invoked
// with no file, no -e expression, and stdin attached to a terminal (spec
// §6.2): each line is parsed and executed in the same persistent global
// scope, with the value of a trailing expression statement echoed back
// unless it is null.
func runRepl() error {
	rt, handle, err := newRuntime("<eval>")
	if err != nil {
		return err
	}
	defer handle.close()

	history, _ := os.OpenFile(replHistoryPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if history != nil {
		defer history.Close()
	}

	fmt.Printf("snek %s (session %s)\n", Version, rt.ID.String())
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(">>> ")
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if history != nil {
			fmt.Fprintln(history, line)
		}

		mod, err := parser.Parse([]byte(line), "<eval>")
		if err != nil {
			printReplError(err)
			continue
		}

		var last value.Value
		var execErr error
		for _, stmt := range mod.Statements {
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				last, execErr = rt.Interp.EvaluateExpression(rt.Interp.Global, es.Expression)
			} else {
				last = nil
				execErr = rt.Interp.ExecuteStatement(rt.Interp.Global, stmt)
			}
			if execErr != nil {
				break
			}
		}
		if execErr != nil {
			printReplError(execErr)
			continue
		}
		if last != nil && last.Kind() != value.KindNull {
			fmt.Println(last.Inspect())
		}
	}
}

func printReplError(err error) {
	if se, ok := err.(*snekerr.Error); ok {
		fmt.Fprintln(os.Stderr, se.FormatWithTrace())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".snek_history"
	}
	return filepath.Join(home, ".snek_history")
}
