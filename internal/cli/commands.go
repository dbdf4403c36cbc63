package cli

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mbernath/releasedir/internal/version"
	"github.com/mbernath/releasedir/pkg/cobrax/topics"
	"github.com/mbernath/releasedir/pkg/config"
	"github.com/mbernath/releasedir/pkg/errors"
	"github.com/mbernath/releasedir/pkg/logging"
	"github.com/mbernath/releasedir/pkg/releases"
	"github.com/mbernath/releasedir/pkg/timestamp"
)

// NewRootCmd creates and returns the root command. topicsFS serves the
// embedded help topics; nil leaves the help system command-only.
func NewRootCmd(topicsFS fs.FS) *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "releasedir",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand given. Show help but return an error to
			// signal incorrect usage.
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolP("dry-run", "n", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().String("format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().Bool("no-color", false, MsgFlagNoColor)
	rootCmd.PersistentFlags().String("config", "", MsgFlagConfigFile)
	rootCmd.PersistentFlags().String("theme", "", MsgFlagTheme)
	rootCmd.PersistentFlags().StringP("path", "p", "", MsgFlagPath)
	rootCmd.PersistentFlags().String("prefix", "", MsgFlagPrefix)
	rootCmd.PersistentFlags().String("subfolder", "", MsgFlagSubfolder)
	rootCmd.PersistentFlags().StringSlice("symlinks", nil, MsgFlagSymlinks)

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate + "\n")

	// Add all commands
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newTimestampCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help system from the embedded topic files
	if topicsFS != nil {
		opts := topics.Options{
			Extensions: []string{".md", ".txt"},
			// Always use Glamour renderer for markdown files
			Renderer: topics.NewGlamourRenderer(),
		}
		if err := topics.InitializeWithOptions(rootCmd, topicsFS, opts); err != nil {
			log.Debug().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("path", rt.cfg.Path).
				Bool("dry_run", rt.dryRun).
				Msg("Reporting release tree state")

			result, err := releases.Query(releases.QueryOptions{
				BasePath:    rt.cfg.Path,
				Prefix:      rt.cfg.Prefix,
				Subfolder:   rt.cfg.Subfolder,
				SymlinkDirs: watchedNames(rt.cfg),
				DryRun:      rt.dryRun,
			})
			if err != nil {
				return rt.fail(err)
			}

			return rt.renderer.RenderResult("status", result, rt.dryRun)
		},
	}
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create [timestamp]",
		Short:   MsgCreateShort,
		Long:    MsgCreateLong,
		Example: MsgCreateExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			stamp := ""
			if len(args) > 0 {
				stamp = args[0]
			} else {
				stamp, err = timestamp.Generate(timestamp.Options{
					Format:   rt.cfg.Timestamp.Format,
					Timezone: rt.cfg.Timestamp.Timezone,
				})
				if err != nil {
					return rt.fail(err)
				}
			}

			log.Info().
				Str("path", rt.cfg.Path).
				Str("timestamp", stamp).
				Str("symlink", rt.cfg.Symlink).
				Bool("dry_run", rt.dryRun).
				Msg("Creating release")

			result, err := releases.Create(releases.CreateOptions{
				BasePath:    rt.cfg.Path,
				Prefix:      rt.cfg.Prefix,
				Subfolder:   rt.cfg.Subfolder,
				Timestamp:   stamp,
				Symlink:     rt.cfg.Symlink,
				SymlinkDirs: rt.cfg.SymlinkDirs,
				DryRun:      rt.dryRun,
			})
			if err != nil {
				return rt.fail(err)
			}

			return rt.renderer.RenderResult("create", result, rt.dryRun)
		},
	}

	cmd.Flags().StringP("symlink", "s", "", MsgFlagSymlink)

	return cmd
}

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clean",
		Short:   MsgCleanShort,
		Long:    MsgCleanLong,
		Example: MsgCleanExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("path", rt.cfg.Path).
				Int("keep", rt.cfg.Keep).
				Bool("keep_symlinked", rt.cfg.KeepSymlinked).
				Bool("dry_run", rt.dryRun).
				Msg("Cleaning releases")

			result, err := releases.Clean(releases.CleanOptions{
				BasePath:      rt.cfg.Path,
				Prefix:        rt.cfg.Prefix,
				Subfolder:     rt.cfg.Subfolder,
				Keep:          rt.cfg.Keep,
				KeepSymlinked: rt.cfg.KeepSymlinked,
				SymlinkDirs:   watchedNames(rt.cfg),
				DryRun:        rt.dryRun,
			})
			if err != nil {
				return rt.fail(err)
			}

			return rt.renderer.RenderResult("clean", result, rt.dryRun)
		},
	}

	cmd.Flags().IntP("keep", "k", releases.DefaultKeep, MsgFlagKeep)
	cmd.Flags().Bool("keep-symlinked", true, MsgFlagKeepSymlinked)

	return cmd
}

func newTimestampCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "timestamp",
		Short:   MsgTimestampShort,
		Long:    MsgTimestampLong,
		Example: MsgTimestampExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			stamp, err := timestamp.Generate(timestamp.Options{
				Format:   rt.cfg.Timestamp.Format,
				Timezone: rt.cfg.Timestamp.Timezone,
			})
			if err != nil {
				return rt.fail(err)
			}

			return rt.renderer.RenderTimestamp(stamp)
		},
	}

	cmd.Flags().String("layout", timestamp.DefaultFormat, MsgFlagLayout)
	cmd.Flags().String("timezone", timestamp.DefaultTimezone, MsgFlagTimezone)

	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			return rt.renderer.RenderConfig(rt.cfg)
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			content := config.DefaultConfigContent()

			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			target := config.DefaultFileName
			if _, err := os.Stat(target); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), MsgConfigExistsFormat, target)
				return nil
			}
			if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot write config file %s", target)
			}

			log.Info().Str("path", target).Msg("Written config file")
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWrittenFormat, target)
			return nil
		},
	}

	cmd.Flags().Bool("write", false, MsgFlagWrite)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "releasedir version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}
