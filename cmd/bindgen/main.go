// Command bindgen runs Starlark driver scripts against a native binding
// code generation pipeline.
package main

import (
	"os"

	"github.com/leapstack-labs/bindgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
