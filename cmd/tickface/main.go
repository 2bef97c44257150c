// Tickface is a terminal rendition of a wearable clock face.
//
// Usage:
//
//	tickface [--config tickface.toml] [--verbose] [--quiet] [--demo]
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
