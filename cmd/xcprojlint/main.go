// xcprojlint validates Xcode project files.
// It parses project.pbxproj into a typed model and reports problems in the
// format Xcode shows inline, so it can run as a build phase.
package main

import (
	"fmt"
	"os"

	"github.com/corey/xcprojlint/cmd/xcprojlint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "error: %s\n", msg)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
