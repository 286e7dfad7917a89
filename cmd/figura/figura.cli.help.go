package main

import (
	"fmt"
	"io"
)

func runHelp(args []string, stdout io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(stdout, "unknown command: %s\n\n", args[0])
		fmt.Fprint(stdout, HelpText)
		return ExitCodeUsageError
	}
	fmt.Fprint(stdout, HelpText)
	return ExitCodeSuccess
}
