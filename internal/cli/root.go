package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/ffprefs/pkg/log"
	"github.com/macropower/ffprefs/pkg/prefs"
)

const (
	cmdName = "ffprefs"
	cmdDesc = `Add and remove preferences in the prefs.js of every Firefox profile.`

	cmdExamples = `  # Apply ./rules.txt to every profile:
  ffprefs

  # Apply a specific rule file:
  ffprefs ./hardening.txt

  # Show what would change without writing:
  ffprefs ./hardening.txt --dry-run

  # Only patch release profiles, and keep going if one fails:
  ffprefs --filter 'name.endsWith(".default-release")' --on-error continue

  # Use a different application data directory:
  FFPREFS_APP_DATA=/mnt/backup/AppData/Roaming ffprefs`
)

type RootArgs struct {
	LogLevel  string
	LogFormat string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

type RunArgs struct {
	*RootArgs

	RulesPath   string
	ConfigPath  string
	AppDataDir  string
	Filter      string
	OnError     string
	DryRun      bool
	WriteConfig bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.ConfigPath, "config", "", "Path to the ffprefs configuration file")
	cmd.Flags().StringVar(&ra.AppDataDir, "app-data", "", "Application data directory containing the Firefox profile registry")
	cmd.Flags().StringVar(&ra.Filter, "filter", "", "CEL expression selecting the profiles to patch")
	cmd.Flags().StringVar(&ra.OnError, "on-error", "",
		fmt.Sprintf("What to do when a profile fails, one of: %s", prefs.AllFailurePolicies))
	cmd.Flags().BoolVar(&ra.DryRun, "dry-run", false, "Print a diff of each change instead of writing files")
	cmd.Flags().BoolVar(&ra.WriteConfig, "write-config", false, "Write the default configuration file and exit")

	var err error

	err = cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}

	err = cmd.MarkFlagDirname("app-data")
	if err != nil {
		panic(fmt.Errorf("mark app-data flag: %w", err))
	}

	err = cmd.RegisterFlagCompletionFunc("on-error",
		cobra.FixedCompletions(prefs.AllFailurePolicies, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()
	runArgs := NewRunArgs(args)

	cmd := &cobra.Command{
		Use:               cmdName + " [rules-file]",
		Short:             cmdDesc,
		Example:           cmdExamples,
		PersistentPreRunE: setupLogging(args),
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("accepts at most 1 arg, received %d", len(args))
			}

			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return nil, cobra.ShellCompDirectiveDefault
			}

			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				runArgs.RulesPath = args[0]
			}

			return run(cmd, runArgs)
		},
		SilenceUsage: true,
	}

	args.AddFlags(cmd)
	runArgs.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(rc *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.CreateHandlerWithStrings(cmd.ErrOrStderr(), rc.LogLevel, rc.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))

		return nil
	}
}
