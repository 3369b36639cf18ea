// Package main is the entry point for pgedge-bench.
package main

import (
	"fmt"
	"os"

	"github.com/pgEdge/pgedge-bench/internal/cli"

	// Register experiment suites
	_ "github.com/pgEdge/pgedge-bench/internal/apps/ecommerce"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
