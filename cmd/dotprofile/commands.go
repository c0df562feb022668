package dotprofile

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/dotprofile/internal/version"
	"github.com/arthur-debert/dotprofile/pkg/apply"
	"github.com/arthur-debert/dotprofile/pkg/config"
	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/hotkey"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/arthur-debert/dotprofile/pkg/profiles"
	"github.com/arthur-debert/dotprofile/pkg/ui"
	"github.com/arthur-debert/dotprofile/pkg/ui/display"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// signalContext is cancelled on SIGINT or SIGTERM so an in-flight apply
// stops at its next checkpoint.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "profiles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			disc, err := a.source.List()
			if err != nil {
				return err
			}
			a.orch.Publisher().SetProfiles(disc.Profiles)
			return a.renderer.RenderResult(display.NewProfileList(a.paths.ProfilesRoot(), disc, a.activeProfile()))
		},
	}
}

func newShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "show <profile>",
		Short:             MsgShowShort,
		GroupID:           "profiles",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: profileCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			d, plan, err := a.orch.Plan(args[0])
			if err != nil {
				return err
			}
			readme, _ := a.fs.ReadFile(filepath.Join(d.Dir, "README.md"))
			detail := display.NewProfileDetail(d, plan, string(readme))
			detail.Active = d.ID == a.activeProfile()
			return a.renderer.RenderResult(detail)
		},
	}
}

func newApplyCmd(opts *globalOptions) *cobra.Command {
	var force, dryRun bool

	cmd := &cobra.Command{
		Use:               "apply <profile>",
		Short:             MsgApplyShort,
		Long:              MsgApplyLong,
		Example:           MsgApplyExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: profileCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			logger := logging.GetLogger("cmd.apply")
			logger.Info().Str("profile", args[0]).Bool("force", force).Bool("dry_run", dryRun).Msg("Starting apply")

			if dryRun {
				d, plan, err := a.orch.Plan(args[0])
				if err != nil {
					return err
				}
				return a.renderer.RenderResult(display.NewPlanResult(d, plan))
			}

			ctx, stop := signalContext(cmd)
			defer stop()

			rep, err := a.orch.Apply(ctx, args[0], apply.Options{Force: force, Trigger: apply.TriggerManual})
			if rerr := a.renderer.RenderResult(display.NewApplyResult(rep)); rerr != nil {
				return rerr
			}
			if err != nil {
				return err
			}
			if rep.Outcome == apply.OutcomeCancelled {
				return errors.Newf(errors.ErrCancelled, MsgErrApplyFailed, args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}

func newRenderCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "render <profile>",
		Short:             MsgRenderShort,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: profileCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd)
			defer stop()

			res, err := a.orch.Render(ctx, args[0])
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(display.NewRenderResult(args[0], res))
		},
	}
}

func newHotkeysCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "hotkeys",
		Short:   MsgHotkeysShort,
		GroupID: "profiles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			disc, err := a.source.List()
			if err != nil {
				return err
			}
			reg := hotkey.NewRegistry()
			conflicts, errs := reg.BindAll(disc.Profiles)
			a.orch.Publisher().SetHotkeys(reg.Bindings())
			return a.renderer.RenderResult(display.NewHotkeyTable(reg.Bindings(), conflicts, errs))
		},
	}
}

func newNormalizeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "normalize <shortcut>",
		Short:   MsgNormalizeShort,
		GroupID: "misc",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(opts, cmd)
			if err != nil {
				return err
			}
			canonical, err := hotkey.Canonical(args[0])
			if err != nil {
				return err
			}
			return renderer.RenderResult(&display.Shortcut{Input: args[0], Canonical: canonical})
		},
	}
}

func newCaptureCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "capture <name> <path>...",
		Short:   MsgCaptureShort,
		Long:    MsgCaptureLong,
		Example: MsgCaptureExample,
		GroupID: "profiles",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd)
			defer stop()

			var res *profiles.CaptureResult
			err = a.orch.Exclusive(ctx, func(context.Context) error {
				var cerr error
				res, cerr = profiles.Capture(a.fs, profiles.CaptureOptions{
					Root:  a.paths.ProfilesRoot(),
					Name:  args[0],
					Home:  a.paths.HomeDir(),
					Paths: args[1:],
					Force: force,
				})
				return cerr
			})
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(display.NewCaptureResult(res))
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagCapForce)
	return cmd
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var effective bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !effective {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.GenerateConfigContent())
				return err
			}
			a, err := newApp(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			content, err := config.GenerateEffectiveContent(a.cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}

	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	return cmd
}

func newVersionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if format, _ := ui.ParseFormat(opts.format); format == ui.FormatJSON {
				r, err := ui.NewRenderer(ui.FormatJSON, out)
				if err != nil {
					return err
				}
				return r.RenderResult(map[string]string{
					"version": version.Version,
					"commit":  version.Commit,
					"date":    version.Date,
				})
			}
			_, err := fmt.Fprintf(out, "dotprofile version %s\n  commit: %s\n  built:  %s\n",
				version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletion,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrap(err, errors.ErrIOFailure, "creating man page directory").WithDetail("dir", dir)
			}
			header := &doc.GenManHeader{
				Title:   "DOTPROFILE",
				Section: "1",
				Source:  "dotprofile " + version.Version,
				Manual:  "dotprofile manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return errors.Wrap(err, errors.ErrIOFailure, "generating man pages")
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten+"\n", dir)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", MsgFlagManDir)
	return cmd
}

// newRenderer builds only the output renderer, for commands that need no
// profiles or configuration.
func newRenderer(opts *globalOptions, cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}
