package main

import (
	"fmt"
	"os"

	"roster/internal/cli"
)

// main only executes the command tree; wiring lives in internal/cli.
func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "roster:", err)
		os.Exit(1)
	}
}
