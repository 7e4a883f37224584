// Package main is the entry point for the llm-extract CLI.
package main

import (
	"os"

	"github.com/aihes/llm-content-extractor/cmd/llm-extract/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
