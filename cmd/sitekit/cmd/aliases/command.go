// Package aliases provides the aliases command.
package aliases

import (
	"github.com/spf13/cobra"

	"github.com/alexsab-ru/sitekit/internal/cmd/application"
	"github.com/alexsab-ru/sitekit/internal/cmd/cmdutil"
	"github.com/alexsab-ru/sitekit/internal/cmd/output"
	"github.com/alexsab-ru/sitekit/pkg/aliases"
)

// NewCommand creates the aliases command.
func NewCommand(app application.Application) *cobra.Command {
	var modelsPath, mappingPath string
	var showSkipped bool

	cmd := &cobra.Command{
		Use:     "aliases",
		GroupID: "data",
		Short:   "Merge feed aliases and color names into models.json",
		Long: `Aliases reads the model mapping exported from the accounting system and adds
its feed names, Cyrillic names and color aliases to the matching models.
The models file is backed up before it is rewritten. Mapping entries without
a matching model are reported as skipped, with the closest known model id.
With --show-skipped they are also listed on stderr, one row per entry.`,
		Example: `  sitekit aliases
  sitekit aliases --models src/models.json --mapping model_mapping.json --dry-run
  sitekit aliases --show-skipped -o table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.Config()
			if modelsPath == "" {
				modelsPath = cfg.ModelsPath
			}
			if mappingPath == "" {
				mappingPath = cfg.MappingPath
			}

			report, result, err := aliases.Migrate(cmdutil.Context(cmd, app), modelsPath, mappingPath, app.BatchOptions()...)
			if err != nil {
				return err
			}
			app.Logger().Info().
				Int("matched", result.Matched).
				Int("feed_names", result.FeedNamesAdded).
				Int("cyrillic", result.CyrillicSet).
				Int("colors", result.ColorNamesAdded).
				Msg("Aliases reconciled")
			if showSkipped && len(result.Skipped) > 0 {
				format := output.DetectFormat(app.OutputFormat())
				if err := output.NewFormatter(format).Format(cmd.ErrOrStderr(), result.Skipped); err != nil {
					return err
				}
			}
			return cmdutil.Finish(cmd, app, report)
		},
	}

	cmd.Flags().StringVar(&modelsPath, "models", "", "models file (default from config)")
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "mapping file (default from config)")
	cmd.Flags().BoolVar(&showSkipped, "show-skipped", false, "list skipped mapping entries on stderr")

	return cmd
}
