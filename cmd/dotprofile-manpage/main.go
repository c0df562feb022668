package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotprofile/cmd/dotprofile"
	"github.com/arthur-debert/dotprofile/internal/version"
)

// main writes the top-level man page to stdout; `dotprofile man` writes
// the full tree to a directory.
func main() {
	header := &doc.GenManHeader{
		Title:   "DOTPROFILE",
		Section: "1",
		Source:  "dotprofile " + version.Version,
		Manual:  "dotprofile manual",
	}

	if err := doc.GenMan(dotprofile.NewRootCmd(), header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
