package smithy

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// Verbose gates Debug output. The CLI's --verbose flag sets this before
// running the pipeline.
var Verbose bool

// Debug prints developer-facing diagnostics straight to stdout when Verbose
// is set, independent of the structured zap logging pipeline.Orchestrator
// uses for operational logs -- this is for dumping a raw *Model or *AST
// while tracking down a model-ingestion bug, not for production output.
func Debug(args ...interface{}) {
	if Verbose {
		max := len(args) - 1
		for i := 0; i < max; i++ {
			fmt.Print(str(args[i]))
		}
		fmt.Println(str(args[max]))
	}
}

// str renders a Debug argument. Structured values (anything but a string)
// go through spew so a logged *Shape or *data.Object shows its full nested
// contents instead of a pointer address or a Go-default %v dump.
func str(arg interface{}) string {
	if s, ok := arg.(string); ok {
		return s
	}
	return spew.Sdump(arg)
}
