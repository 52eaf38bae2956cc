// Package main is the entry point for the mcpdoc MCP llms.txt server.
package main

import (
	"os"

	"github.com/danlester/mcpdoc/cmd/mcpdoc/app"
)

func main() {
	rootCmd := app.NewRootCmd()

	// No arguments at all prints usage, matching the historical CLI.
	if len(os.Args) < 2 {
		_ = rootCmd.Help()
		return
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
