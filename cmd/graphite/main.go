// Command graphite generates ISO-style orthographic engineering
// drawings from CSG recipe files.
package main

import (
	"os"

	"github.com/chazu/graphite/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
