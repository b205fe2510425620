// Package buildinfo exposes version metadata injected at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/juridik/internal/buildinfo.Version=v1.2.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version   = "N/A"
	BuildDate = "N/A"
	Commit    = "N/A"
)

// PrintBuildData writes the build metadata block shown at start-up.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
