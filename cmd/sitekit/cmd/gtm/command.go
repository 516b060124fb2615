// Package gtm provides the gtm command.
package gtm

import (
	"github.com/spf13/cobra"

	"github.com/alexsab-ru/sitekit/internal/cmd/application"
	"github.com/alexsab-ru/sitekit/internal/cmd/cmdutil"
	"github.com/alexsab-ru/sitekit/pkg/gtm"
)

// NewCommand creates the gtm command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "gtm <export.json>",
		GroupID: "data",
		Short:   "Generate scripts.json from a Google Tag Manager export",
		Long: `Gtm reads a container export and writes the analytics counters of every
site found in it to <root>/<site>/data/scripts.json. Sites without a local
folder are skipped.`,
		Example: `  sitekit gtm GTM-XXXX_workspace.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			export, err := gtm.Load(args[0])
			if err != nil {
				return err
			}
			report := gtm.Generate(cmdutil.Context(cmd, app), app.Config().Root, export, app.BatchOptions()...)
			return cmdutil.Finish(cmd, app, report)
		},
	}
}
