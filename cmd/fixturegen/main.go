// Package main provides the fixturegen CLI tool for generating compressed
// test fixtures for a codec's decoder test suite.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
