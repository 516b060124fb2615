// Package combine provides the combine command.
package combine

import (
	"github.com/spf13/cobra"

	"github.com/alexsab-ru/sitekit/internal/cmd/application"
	"github.com/alexsab-ru/sitekit/internal/cmd/cmdutil"
	"github.com/alexsab-ru/sitekit/internal/config"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/listings"
)

// NewCommand creates the combine command.
func NewCommand(app application.Application) *cobra.Command {
	var outputs string

	cmd := &cobra.Command{
		Use:     "combine [input...]",
		GroupID: "data",
		Short:   "Concatenate listing files into the output paths",
		Long: `Combine loads every input file, concatenates the lists and writes the result
to each output path, the same way scrape writes its results. Inputs default
to INPUT_PATHS and outputs to OUTPUT_PATHS.`,
		Example: `  sitekit combine haval.json wey.json --output src/a/data/cars.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config()
			inputs := args
			if len(inputs) == 0 {
				inputs = cfg.InputPaths
			}
			outputPaths := cfg.Scrape.OutputPaths
			if outputs != "" {
				outputPaths = config.SplitList(outputs)
			}
			if len(inputs) == 0 || len(outputPaths) == 0 {
				return errors.NewConfigError("combine", "input and output paths are required", nil)
			}

			data, err := listings.Combine(inputs)
			if err != nil {
				return err
			}
			report := listings.Save(cmdutil.Context(cmd, app), data, outputPaths, app.ErrorLog(), app.BatchOptions()...)
			return cmdutil.Finish(cmd, app, report)
		},
	}

	cmd.Flags().StringVar(&outputs, "output", "", "comma separated output paths")

	return cmd
}
