// Package main is the entry point for the app-cost CLI.
package main

import (
	"os"

	"app-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
