package dotsync

import (
	"fmt"

	"github.com/arthur-debert/dotsync/internal/version"
	"github.com/arthur-debert/dotsync/pkg/commands/list"
	synccmd "github.com/arthur-debert/dotsync/pkg/commands/sync"
	"github.com/arthur-debert/dotsync/pkg/commands/track"
	"github.com/arthur-debert/dotsync/pkg/commands/untrack"
	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/editor"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/output"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags and the configuration, which is
// loaded once per invocation by the first command that needs it
type globalOptions struct {
	verbosity int
	dryRun    bool
	noColor   bool
	configDir string

	cfg *config.Config
}

func (g *globalOptions) config() (*config.Config, error) {
	if g.cfg != nil {
		return g.cfg, nil
	}
	cfg, err := config.Load(config.LoadOptions{ConfigDir: g.configDir})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	g.cfg = cfg
	return cfg, nil
}

func (g *globalOptions) renderer(cmd *cobra.Command) (*output.Renderer, error) {
	return output.NewRenderer(cmd.OutOrStdout(), g.noColor)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dotsync",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logOpts := logging.Options{Verbosity: g.verbosity, NoColor: g.noColor}
			if p, err := paths.New(paths.Options{ConfigDir: g.configDir}); err == nil {
				logOpts.LogFile = p.LogFilePath()
			}
			logging.Setup(logOpts)
			output.SetupColor(cmd.OutOrStdout(), g.noColor)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.PersistentFlags().StringVar(&g.configDir, "config-dir", "", MsgFlagConfigDir)

	rootCmd.AddGroup(&cobra.Group{ID: "track", Title: "TRACKING:"})
	rootCmd.AddGroup(&cobra.Group{ID: "sync", Title: "SYNCING:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetHelpCommandGroupID("misc")

	rootCmd.AddCommand(newListCmd(g))
	rootCmd.AddCommand(newAddCmd(g))
	rootCmd.AddCommand(newRmCmd(g))
	rootCmd.AddCommand(newEditCmd(g))
	rootCmd.AddCommand(newLinkCmd(g))
	rootCmd.AddCommand(newCopyCmd(g))
	rootCmd.AddCommand(newSyncCmd(g))
	rootCmd.AddCommand(newSyncDirsCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newListCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "track",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}

			entries, err := list.ListTracked(list.ListTrackedOptions{Config: cfg})
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				// stderr keeps `dotsync ls | xargs` safe
				fmt.Fprintln(cmd.ErrOrStderr(), MsgEmptyList)
				return nil
			}

			renderer, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderList(entries)
		},
	}
}

func newAddCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "add PATH...",
		Short:   MsgAddShort,
		Example: MsgAddExample,
		GroupID: "track",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}

			result, err := track.TrackFiles(cmd.Context(), track.TrackFilesOptions{
				Config: cfg,
				Paths:  args,
			})
			if err != nil {
				return err
			}

			renderer, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			if len(result.Added) == 0 && len(result.AlreadyTracked) == 0 && len(result.Skipped) == 0 {
				return renderer.RenderMessage("Muted", MsgNothingToTrack)
			}
			return renderer.RenderTrack(result)
		},
	}
}

func newRmCmd(g *globalOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "rm [PATH...]",
		Aliases: []string{"remove"},
		Short:   MsgRmShort,
		Long:    MsgRmLong,
		GroupID: "track",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}

			result, err := untrack.UntrackFiles(cmd.Context(), untrack.UntrackFilesOptions{
				Config: cfg,
				Paths:  args,
				All:    all,
			})
			if err != nil {
				return err
			}

			renderer, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			if err := renderer.RenderUntrack(result); err != nil {
				return err
			}
			if result.AllCleared {
				log.Info().Msg("Tracked list cleared")
				return nil
			}
			log.Debug().
				Int("removed", len(result.Removed)).
				Int("not_found", len(result.NotFound)).
				Msg("Remove finished")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagAll)
	return cmd
}

func newEditCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "edit",
		Short:   MsgEditShort,
		Long:    MsgEditLong,
		GroupID: "track",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			return editor.Open(cmd.Context(), editor.Options{
				Config: cfg,
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			})
		},
	}
}

func newLinkCmd(g *globalOptions) *cobra.Command {
	var symbolic bool

	cmd := &cobra.Command{
		Use:     "link [DIR]",
		Aliases: []string{"ln"},
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		GroupID: "sync",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, g, synccmd.SyncFilesOptions{
				Direction: synccmd.ToDir,
				Dir:       firstArg(args),
				Mode:      types.ModeFromFlags(false, symbolic, types.ModeHardlink),
			})
		},
	}

	cmd.Flags().BoolVarP(&symbolic, "symbolic", "s", false, MsgFlagSymbolic)
	return cmd
}

func newCopyCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "copy [DIR]",
		Aliases: []string{"cp"},
		Short:   MsgCopyShort,
		Long:    MsgCopyLong,
		GroupID: "sync",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, g, synccmd.SyncFilesOptions{
				Direction: synccmd.ToDir,
				Dir:       firstArg(args),
				Mode:      types.ModeCopy,
			})
		},
	}
}

func newSyncCmd(g *globalOptions) *cobra.Command {
	var copyFlag, symbolic bool

	cmd := &cobra.Command{
		Use:     "sync [DIR]",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		GroupID: "sync",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, g, synccmd.SyncFilesOptions{
				Direction: synccmd.FromDir,
				Dir:       firstArg(args),
				Mode:      modeFlag(copyFlag, symbolic),
			})
		},
	}

	addModeFlags(cmd, &copyFlag, &symbolic)
	return cmd
}

func newSyncDirsCmd(g *globalOptions) *cobra.Command {
	var copyFlag, symbolic bool

	cmd := &cobra.Command{
		Use:     "sync-dirs SRC DEST",
		Short:   MsgSyncDirsShort,
		Long:    MsgSyncDirsLong,
		GroupID: "sync",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, g, synccmd.SyncFilesOptions{
				Direction: synccmd.Between,
				Source:    args[0],
				Target:    args[1],
				Mode:      modeFlag(copyFlag, symbolic),
			})
		},
	}

	addModeFlags(cmd, &copyFlag, &symbolic)
	return cmd
}

func addModeFlags(cmd *cobra.Command, copyFlag, symbolic *bool) {
	cmd.Flags().BoolVarP(copyFlag, "copy", "c", false, MsgFlagCopy)
	cmd.Flags().BoolVarP(symbolic, "symbolic", "s", false, MsgFlagSymbolic)
	cmd.MarkFlagsMutuallyExclusive("copy", "symbolic")
}

// modeFlag returns "" when neither flag is set so the configured
// sync.mode applies
func modeFlag(copyFlag, symbolic bool) types.SyncMode {
	if !copyFlag && !symbolic {
		return ""
	}
	return types.ModeFromFlags(copyFlag, symbolic, "")
}

func runSync(cmd *cobra.Command, g *globalOptions, opts synccmd.SyncFilesOptions) error {
	cfg, err := g.config()
	if err != nil {
		return err
	}
	opts.Config = cfg
	opts.DryRun = g.dryRun

	report, syncErr := synccmd.SyncFiles(cmd.Context(), opts)
	if report != nil {
		renderer, err := g.renderer(cmd)
		if err != nil {
			return err
		}
		if err := renderer.RenderReport(report); err != nil {
			return err
		}
	}
	if syncErr != nil {
		return syncErr
	}

	if failed := report.Failed(); failed > 0 {
		return errors.Wrapf(report.Err(), errors.ErrInternal, MsgErrEntriesFailed, failed, len(report.Entries))
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
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
