package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/snek-lang/snek/internal/lexer"
	"github.com/snek-lang/snek/internal/parser"
	"github.com/snek-lang/snek/internal/token"
)

var dumpFormat string

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Dump the token stream or AST of a Snek file for debugging",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

var dumpTokens bool

func init() {
	dumpCmd.Flags().BoolVar(&dumpTokens, "tokens", false, "dump the token stream instead of the AST")
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "text", "output format: text or yaml")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	if dumpTokens {
		return dumpTokenStream(source, filename)
	}

	mod, err := parser.Parse(source, filename)
	if err != nil {
		return err
	}
	if dumpFormat == "yaml" {
		out, err := yaml.Marshal(mod)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}
	fmt.Printf("%+v\n", mod)
	return nil
}

func dumpTokenStream(source []byte, filename string) error {
	lex, err := lexer.New(source, filename, 1, 1)
	if err != nil {
		return err
	}
	var rows []map[string]any
	for {
		tok, err := lex.ReadToken()
		if err != nil {
			return err
		}
		if dumpFormat == "yaml" {
			rows = append(rows, map[string]any{
				"kind":     tok.Kind.String(),
				"text":     tok.Text,
				"position": tok.Position.String(),
			})
		} else {
			fmt.Printf("%-16s %-20q @%s\n", tok.Kind.String(), tok.Text, tok.Position.String())
		}
		if tok.Kind == token.Eof {
			break
		}
	}
	if dumpFormat == "yaml" {
		out, err := yaml.Marshal(rows)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	}
	return nil
}
