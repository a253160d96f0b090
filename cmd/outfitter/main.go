// Package main is the entry point for the outfitter CLI.
package main

import (
	"os"

	"github.com/outfitterhq/outfitter/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
