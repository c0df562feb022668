package dotprofile

import (
	"github.com/arthur-debert/dotprofile/internal/version"
	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/arthur-debert/dotprofile/pkg/paths"
	"github.com/arthur-debert/dotprofile/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dotprofile",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logFile := ""
			if p, err := paths.New(opts.root); err == nil {
				logFile = p.LogFilePath()
			}
			logging.SetupLogger(opts.verbosity, logFile)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			_, err := ui.ParseFormat(opts.format)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.root, "root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, f := range ui.Formats {
			names = append(names, f.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "profiles", Title: "PROFILES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newApplyCmd(opts))
	rootCmd.AddCommand(newRenderCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newHotkeysCmd(opts))
	rootCmd.AddCommand(newNormalizeCmd(opts))
	rootCmd.AddCommand(newCaptureCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())
	installHelpTopics(rootCmd)

	return rootCmd
}

// profileCompletion completes profile IDs from the profiles root.
func profileCompletion(opts *globalOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		a, err := newApp(opts, cmd.OutOrStdout())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		disc, err := a.source.List()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		var ids []string
		for _, d := range disc.Profiles {
			ids = append(ids, d.ID+"\t"+d.DisplayName)
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}
