package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexsab-ru/sitekit/internal/cmd/output"
	"github.com/alexsab-ru/sitekit/internal/config"
)

// Execute runs the sitekit CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "sitekit",
		Short:   "Dealer site data maintenance",
		Version: a.version,
		Long: `Sitekit maintains the JSON and YAML data files of a family of dealer
websites: banners, settings, model catalogs and aliases, per-model sections,
menus, price listings and analytics scripts.

Every command works on a root folder holding one folder per site and prints
a report of created, changed, unchanged, skipped and failed files. Use
--dry-run to see the report without writing anything.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "data",
		Title: "Data Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "remote",
		Title: "Remote Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.sitekit.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, wide, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error")
	flags.String("root", "", "folder holding one folder per site (default \"src\")")
	flags.Bool("dry-run", false, "report changes without writing files")
	flags.Bool("strict", false, "exit with an error when any file failed")

	rootCmd.SetVersionTemplate("sitekit {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if path := mustGetString(cmd, "config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		*a.config = *loaded
	}

	format, err := output.ParseFormat(mustGetString(cmd, "format"))
	if err != nil {
		return err
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		string(format),
		mustGetString(cmd, "log-level"),
		mustGetString(cmd, "root"),
		mustGetBool(cmd, "dry-run"),
		mustGetBool(cmd, "strict"),
	)

	logger := NewLogger(a.config, mustGetString(cmd, "log-level"))
	a.logger = &logger

	a.logger.Debug().
		Str("root", a.config.Root).
		Bool("dry_run", a.config.DryRun).
		Str("config", a.config.ConfigFile).
		Msg("Configuration loaded")

	return nil
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
