// Package dealer provides the dealer-models command.
package dealer

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexsab-ru/sitekit/internal/cmd/application"
	"github.com/alexsab-ru/sitekit/internal/cmd/cmdutil"
	"github.com/alexsab-ru/sitekit/pkg/dealer"
	"github.com/alexsab-ru/sitekit/pkg/placeholders"
)

// NewCommand creates the dealer-models command.
func NewCommand(app application.Application) *cobra.Command {
	var modelsPath string

	cmd := &cobra.Command{
		Use:     "dealer-models [site-dir...]",
		GroupID: "data",
		Short:   "Write the models of each dealer site",
		Long: `Dealer-models filters the shared models catalog down to the brands or model
ids listed in each site's settings.json and writes the result to
<site>/data/models.json. Without arguments every site under the root is
processed.`,
		Example: `  sitekit dealer-models
  sitekit dealer-models src/haval-samara.ru`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config()
			if modelsPath == "" {
				modelsPath = cfg.ModelsPath
			}

			dirs := args
			if len(dirs) == 0 {
				dataDirs, err := placeholders.DataDirs(cfg.Root)
				if err != nil {
					return err
				}
				for _, d := range dataDirs {
					dirs = append(dirs, filepath.Dir(d))
				}
			}

			report, err := dealer.Generate(cmdutil.Context(cmd, app), modelsPath, dirs, app.BatchOptions()...)
			if err != nil {
				return err
			}
			return cmdutil.Finish(cmd, app, report)
		},
	}

	cmd.Flags().StringVar(&modelsPath, "models", "", "models catalog (default from config)")

	return cmd
}
