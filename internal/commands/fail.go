package commands

import (
	"fmt"
	"io"

	"taskctl/internal/exitcode"
)

// fail prints err as a user-facing message and returns its exit code.
func fail(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %s\n", err)
	return exitcode.FromError(err)
}

// usageError prints a message for bad arguments and returns UserError.
func usageError(errOut io.Writer, format string, args ...any) int {
	fmt.Fprintf(errOut, "error: "+format+"\n", args...)
	return exitcode.UserError
}

// ok prints the acknowledgement unless quiet.
func ok(out io.Writer, quiet bool) {
	if !quiet {
		fmt.Fprintln(out, "ok")
	}
}
