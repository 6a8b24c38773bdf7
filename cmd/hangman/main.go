// Package main is the entry point for the hangman CLI.
package main

import (
	"os"

	"github.com/f3rmion/hangman/cmd/hangman/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
