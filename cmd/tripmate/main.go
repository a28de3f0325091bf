// Package main is the entry point for the tripmate server and CLI.
package main

import "github.com/randytsao24/tripmate/internal/cli"

func main() {
	cli.Execute()
}
