package app

import (
	"github.com/spf13/cobra"

	"github.com/alexsab-ru/sitekit/cmd/sitekit/cmd/aliases"
	"github.com/alexsab-ru/sitekit/cmd/sitekit/cmd/banners"
	"github.com/alexsab-ru/sitekit/cmd/sitekit/cmd/combine"
	"github.com/alexsab-ru/sitekit/cmd/sitekit/cmd/dealer"
	"github.com/alexsab-ru/sitekit/cmd/sitekit/cmd/gtm"
	"github.com/alexsab-ru/sitekit/cmd/sitekit/cmd/menu"
	"github.com/alexsab-ru/sitekit/cmd/sitekit/cmd/placeholders"
	"github.com/alexsab-ru/sitekit/cmd/sitekit/cmd/scrape"
	"github.com/alexsab-ru/sitekit/cmd/sitekit/cmd/sections"
	"github.com/alexsab-ru/sitekit/cmd/sitekit/cmd/settings"
	"github.com/alexsab-ru/sitekit/cmd/sitekit/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Data commands
	rootCmd.AddCommand(banners.NewCommand(a))
	rootCmd.AddCommand(settings.NewCommand(a))
	rootCmd.AddCommand(aliases.NewCommand(a))
	rootCmd.AddCommand(dealer.NewCommand(a))
	rootCmd.AddCommand(placeholders.NewCommand(a))
	rootCmd.AddCommand(sections.NewCommand(a))
	rootCmd.AddCommand(combine.NewCommand(a))
	rootCmd.AddCommand(gtm.NewCommand(a))

	// Remote commands
	rootCmd.AddCommand(menu.NewCommand(a))
	rootCmd.AddCommand(scrape.NewCommand(a))

	rootCmd.AddCommand(version.NewCommand(a))
}
