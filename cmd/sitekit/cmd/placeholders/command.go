// Package placeholders provides the placeholders command.
package placeholders

import (
	"github.com/spf13/cobra"

	"github.com/alexsab-ru/sitekit/internal/cmd/application"
	"github.com/alexsab-ru/sitekit/internal/cmd/cmdutil"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/placeholders"
)

// NewCommand creates the placeholders command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "placeholders",
		GroupID: "data",
		Short:   "Create missing data files",
		Long: `Placeholders creates data files that the site build expects but that a site
does not have yet. Existing files are never touched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newFilesCommand(app))
	cmd.AddCommand(newDisclaimersCommand(app))

	return cmd
}

func newFilesCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "files [name...]",
		Short: "Create empty JSON lists in every data folder",
		Example: `  sitekit placeholders files
  sitekit placeholders files menu.json cars.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = placeholders.DefaultFiles
			}
			report, err := placeholders.EnsureFiles(cmdutil.Context(cmd, app), app.Config().Root, names, app.BatchOptions()...)
			if err != nil {
				return err
			}
			return finish(cmd, app, report)
		},
	}
}

func newDisclaimersCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "disclaimers",
		Short: "Create federal-disclaimer.json from the price files",
		Long: `Disclaimers writes a federal-disclaimer.json with an empty price and benefit
entry for every model id of the site's price file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := placeholders.EnsureDisclaimers(cmdutil.Context(cmd, app), app.Config().Root, app.BatchOptions()...)
			if err != nil {
				return err
			}
			return finish(cmd, app, report)
		},
	}
}

func finish(cmd *cobra.Command, app application.Application, report *batch.Report) error {
	app.Logger().Info().Int("folders", placeholders.TouchedFolders(report)).Msg("Placeholders created")
	return cmdutil.Finish(cmd, app, report)
}
