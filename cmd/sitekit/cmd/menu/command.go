// Package menu provides the menu command.
package menu

import (
	"github.com/spf13/cobra"

	"github.com/alexsab-ru/sitekit/internal/cmd/application"
	"github.com/alexsab-ru/sitekit/internal/cmd/cmdutil"
	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/fetch"
	"github.com/alexsab-ru/sitekit/pkg/menu"
)

// DefaultExclude names the folder of the agency site, which has no menu.
const DefaultExclude = "alexsab"

// NewCommand creates the menu command.
func NewCommand(app application.Application) *cobra.Command {
	var exclude string
	var timeout = constants.MenuFetchTimeout

	cmd := &cobra.Command{
		Use:     "menu",
		GroupID: "remote",
		Short:   "Refresh menu.json from the live sites",
		Long: `Menu downloads the home page of every site folder and writes its navigation
to <site>/data/menu.json. Sites that cannot be fetched are logged to the
error log and left unchanged.`,
		Example: `  sitekit menu
  sitekit menu --exclude test --timeout 30s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			updater := menu.Updater{
				Client:  app.HTTPClient(fetch.WithTimeout(timeout)),
				Log:     app.ErrorLog(),
				Exclude: exclude,
			}
			report, err := updater.Update(cmdutil.Context(cmd, app), app.Config().Root, app.BatchOptions()...)
			if err != nil {
				return err
			}
			return cmdutil.Finish(cmd, app, report)
		},
	}

	cmd.Flags().StringVar(&exclude, "exclude", DefaultExclude, "skip folders whose name contains this text")
	cmd.Flags().DurationVar(&timeout, "timeout", timeout, "timeout per site")

	return cmd
}
