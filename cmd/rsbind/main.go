package main

import (
	"fmt"
	"os"

	"github.com/teranos/rsbind/cmd/rsbind/commands"
	"github.com/teranos/rsbind/errors"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(commands.ExitCode(err))
	}
}
