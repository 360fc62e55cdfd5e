// Package main is the entry point for the datavisual CLI.
package main

import (
	"os"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
