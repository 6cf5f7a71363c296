package xgappup

import (
	"context"
	"io/fs"

	"github.com/arthur-debert/xgappup/internal/version"
	"github.com/arthur-debert/xgappup/pkg/cobrax/topics"
	"github.com/arthur-debert/xgappup/pkg/commands"
	"github.com/arthur-debert/xgappup/pkg/config"
	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/logging"
	"github.com/arthur-debert/xgappup/pkg/paths"
	"github.com/arthur-debert/xgappup/pkg/ui"
	"github.com/arthur-debert/xgappup/pkg/ui/selector"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags of the root command
type globalOptions struct {
	verbosity  int
	configFile string
	offline    bool
	format     string
}

// loadConfig builds the configuration for a command run, with --offline
// applied on top of every other layer
func (g *globalOptions) loadConfig() (*config.Config, error) {
	opts := config.LoadOptions{ConfigFile: g.configFile}
	if g.offline {
		opts.Overrides = map[string]interface{}{"repository.offline": true}
	}
	return config.Load(opts)
}

// sessionOptions loads the configuration shared by all commands
func (g *globalOptions) sessionOptions() (commands.SessionOptions, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return commands.SessionOptions{}, err
	}
	return commands.SessionOptions{Config: cfg, Paths: paths.New()}, nil
}

// renderer picks the output renderer for --format
func (g *globalOptions) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(g.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// render writes a view in the selected format
func (g *globalOptions) render(cmd *cobra.Command, view interface{}) error {
	r, err := g.renderer(cmd)
	if err != nil {
		return err
	}
	return r.RenderResult(view)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "xgappup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOutput(g.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidArgument, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.SetVersionTemplate(MsgVersionTemplate)

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&g.offline, "offline", false, MsgFlagOffline)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", "auto", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames, cobra.ShellCompDirectiveNoFileComp
	})

	// replaced by the topics help command below
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newPlanCmd(g))
	rootCmd.AddCommand(newUpgradeCmd(g))
	rootCmd.AddCommand(newVersionsCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	topicsFS, err := fs.Sub(embeddedTopics, "topics")
	if err == nil {
		tm, err := topics.InitializeWithOptions(rootCmd, topicsFS, topics.Options{
			Renderer: topics.NewGlamourRenderer(),
		})
		if err == nil {
			rootCmd.AddCommand(newTopicsCmd(tm))
		}
	}

	return rootCmd
}

func newPlanCmd(g *globalOptions) *cobra.Command {
	var overridesFile string

	cmd := &cobra.Command{
		Use:     "plan FILE",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		Example: MsgPlanExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := g.sessionOptions()
			if err != nil {
				return err
			}

			view, err := commands.Plan(commandContext(cmd), commands.PlanOptions{
				SessionOptions: session,
				File:           args[0],
				OverridesFile:  overridesFile,
			})
			if err != nil {
				return err
			}
			return g.render(cmd, view)
		},
	}

	cmd.Flags().StringVar(&overridesFile, "overrides", "", MsgFlagOverrides)
	return cmd
}

func newUpgradeCmd(g *globalOptions) *cobra.Command {
	var (
		overridesFile string
		dryRun        bool
		interactive   bool
		force         bool
	)

	cmd := &cobra.Command{
		Use:     "upgrade FILE",
		Short:   MsgUpgradeShort,
		Long:    MsgUpgradeLong,
		Example: MsgUpgradeExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := g.sessionOptions()
			if err != nil {
				return err
			}

			opts := commands.UpgradeOptions{
				SessionOptions: session,
				File:           args[0],
				OverridesFile:  overridesFile,
				DryRun:         dryRun,
				Force:          force,
			}
			if interactive {
				opts.Editor = selector.Editor{Options: selector.Options{
					DefaultGroup: session.Config.Upgrade.DefaultGroup,
				}}
			}

			log.Info().
				Str("file", args[0]).
				Bool("dry_run", dryRun).
				Bool("interactive", interactive).
				Msg("Upgrading application")

			view, err := commands.Upgrade(commandContext(cmd), opts)
			if err != nil {
				return err
			}
			return g.render(cmd, view)
		},
	}

	cmd.Flags().StringVar(&overridesFile, "overrides", "", MsgFlagOverrides)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, MsgFlagInteractive)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newVersionsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "versions GROUP ARTIFACT",
		Short:   MsgVersionsShort,
		Long:    MsgVersionsLong,
		Example: MsgVersionsExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := g.sessionOptions()
			if err != nil {
				return err
			}

			view, err := commands.Versions(commandContext(cmd), commands.VersionsOptions{
				SessionOptions: session,
				Group:          args[0],
				Artifact:       args[1],
			})
			if err != nil {
				return err
			}
			return g.render(cmd, view)
		},
	}
}

func newGenConfigCmd(g *globalOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := commands.GenConfig(commands.GenConfigOptions{
				Write: write,
				Paths: paths.New(),
			})
			if err != nil {
				return err
			}
			return g.render(cmd, view)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newTopicsCmd(tm *topics.TopicManager) *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tm.WriteTopicList(cmd.OutOrStdout(), cmd.Root().Name())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf(MsgVersionFormat, version.Version, version.Commit, version.Date)
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

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
