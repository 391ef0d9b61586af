package main

import (
	"fmt"
	"os"

	"github.com/snek-lang/snek/cmd/snek/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cmd.ExitCodeFor(err))
	}
}
