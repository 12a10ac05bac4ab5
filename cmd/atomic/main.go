// Package main provides the atomic CLI: resolve component classes from spec
// catalogs, generate safelists from Go sources and extract marker comments
// from build output.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
