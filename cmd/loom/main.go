// Package main provides the Loom CLI.
package main

import (
	"os"

	"github.com/loom-ml/loom/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
