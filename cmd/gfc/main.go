// Package main implements the go-flowchart CLI (gfc).
// It provides commands for generating flowcharts from Python source,
// measuring cyclomatic complexity, and rendering diagrams.
package main

import (
	"os"

	"github.com/l3aro/go-flowchart/cmd/gfc/commands"
)

var version = "dev"

func main() {
	commands.RootCmd.Version = version
	commands.RootCmd.SetVersionTemplate(`gfc version {{.Version}}
`)

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
