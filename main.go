// Package main is the entry point for the standup-cli application.
package main

import (
	"fmt"
	"os"

	"github.com/dmironov/standup-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
