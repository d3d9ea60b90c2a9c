// Command sheetmap decodes spreadsheet pages into JSON records using the
// schemas of a configuration document.
package main

import (
	"os"
)

// Build information injected via ldflags at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
