// Package main is the entry point for the sqlpad CLI binary.
package main

import (
	"os"

	cli "sqlpad/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
