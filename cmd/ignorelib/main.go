// Package main provides the entry point for the ignorelib CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/ignorelib/cmd/ignorelib/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
