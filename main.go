// Package main is the entry point for the epiphany CLI tool, which ingests
// card game tournament exports and reports identity and player results.
package main

import "github.com/pable/go-epiphany/cmd"

func main() {
	cmd.Execute()
}
