package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotprofile/cmd/dotprofile"
	"github.com/charmbracelet/lipgloss"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}).Bold(true)

func main() {
	rootCmd := dotprofile.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
