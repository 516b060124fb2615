// Package sections provides the sections command.
package sections

import (
	"github.com/spf13/cobra"

	"github.com/alexsab-ru/sitekit/internal/cmd/application"
	"github.com/alexsab-ru/sitekit/internal/cmd/cmdutil"
	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/sections"
)

// NewCommand creates the sections command.
func NewCommand(app application.Application) *cobra.Command {
	var modelsPath, dir string

	cmd := &cobra.Command{
		Use:     "sections",
		GroupID: "data",
		Short:   "Maintain per-model section files",
		Long: `Sections keeps one YAML file per model in the sections folder:
<dir>/<mark_id>/<model_id>.yml.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&modelsPath, "models", "", "models catalog (default from config)")
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "sections folder (default from config)")

	paths := func() (string, string) {
		cfg := app.Config()
		m, d := modelsPath, dir
		if m == "" {
			m = cfg.ModelsPath
		}
		if d == "" {
			d = cfg.SectionsDir
		}
		return m, d
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create an empty section file for every model",
		Long: `Create adds a missing section file for every model of the catalog and
removes files whose names differ from another only in case or spaces.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, d := paths()
			models, err := loadModels(m)
			if err != nil {
				return err
			}
			report, err := sections.Create(cmdutil.Context(cmd, app), models, d, app.BatchOptions()...)
			if err != nil {
				return err
			}
			return cmdutil.Finish(cmd, app, report)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "fill",
		Short: "Fill empty section files from legacy site files",
		Long: `Fill copies sections from every <root>/<site>/.../models-sections.yml into
section files that are still empty. The first site providing a model wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, d := paths()
			models, err := loadModels(m)
			if err != nil {
				return err
			}
			report, err := sections.Fill(cmdutil.Context(cmd, app), app.Config().Root, d, models, app.BatchOptions()...)
			if err != nil {
				return err
			}
			return cmdutil.Finish(cmd, app, report)
		},
	})

	return cmd
}

func loadModels(path string) ([]any, error) {
	raw, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	models, ok := document.Array(raw)
	if !ok {
		return nil, errors.NewValidationError(path, nil, "expected an array")
	}
	return models, nil
}
