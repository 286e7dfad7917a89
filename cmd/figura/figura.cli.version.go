package main

import (
	"fmt"
	"io"
	"runtime"
)

func runVersion(args []string, stdout, stderr io.Writer) int {
	fmt.Fprintf(stdout, "%s %s (%s)\n", VersionProject, Version, runtime.Version())
	return ExitCodeSuccess
}
