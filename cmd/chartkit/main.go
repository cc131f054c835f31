// Package main is the chartkit command line entry point.
package main

import (
	"fmt"
	"os"

	"github.com/Sumatoshi-tech/chartkit/cmd/chartkit/commands"
)

func main() {
	err := commands.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
