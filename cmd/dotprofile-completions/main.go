package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotprofile/cmd/dotprofile"
)

// main prints the completion script for one shell, for packagers that
// install completions at build time.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bash|zsh|fish|powershell>\n", os.Args[0])
		os.Exit(1)
	}

	rootCmd := dotprofile.NewRootCmd()
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetArgs([]string{"completion", os.Args[1]})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s completion: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}
