package dotprofile

import (
	"embed"
	"io/fs"
	"os"

	"github.com/arthur-debert/dotprofile/pkg/cobrax/topics"
	"github.com/arthur-debert/dotprofile/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// installHelpTopics adds `help <topic>` for the embedded guides. Markdown is
// styled only when stdout is a color terminal.
func installHelpTopics(root *cobra.Command) {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}

	var renderer topics.Renderer = topics.PlainRenderer{}
	if ui.DetectFormat(os.Stdout) == ui.FormatTerminal {
		renderer = topics.GlamourRenderer{Width: 80}
	}

	m, err := topics.Load(sub, topics.Options{Extensions: []string{".md"}, Renderer: renderer})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	topics.Install(root, m)
}
