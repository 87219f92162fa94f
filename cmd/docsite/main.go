// docsite builds static documentation sites from markdown sources, driven by
// an mkdocs-style YAML configuration.
package main

import (
	"fmt"
	"os"
)

// Set via -ldflags at build time:
//
//	go build -ldflags "-X main.version=0.2.0 -X main.commit=$(git rev-parse --short HEAD) -X main.buildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)" -o docsite ./cmd/docsite
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "docsite:", err)
		os.Exit(1)
	}
}
