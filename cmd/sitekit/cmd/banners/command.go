// Package banners provides the banners command.
package banners

import (
	"github.com/spf13/cobra"

	"github.com/alexsab-ru/sitekit/internal/cmd/application"
	"github.com/alexsab-ru/sitekit/internal/cmd/cmdutil"
	"github.com/alexsab-ru/sitekit/pkg/banners"
)

// NewCommand creates the banners command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "banners [root]",
		GroupID: "data",
		Short:   "Migrate banner files to the current schema",
		Long: `Banners rewrites every file matching ` + banners.Pattern + ` below root. Each banner
gets its id, show, type and view keys first, followed by structured video,
image and position objects keyed by breakpoint. The legacy flat keys
(imageUrl, mobileImageUrl, videoUrl, imagePosition and the like) are folded
into those objects and dropped. Files already in this shape are left untouched.`,
		Example: `  sitekit banners                  # Migrate all sites under ./src
  sitekit banners ../sites --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := app.Config().Root
			if len(args) == 1 {
				root = args[0]
			}
			report, err := banners.Migrate(cmdutil.Context(cmd, app), root, app.BatchOptions()...)
			if err != nil {
				return err
			}
			return cmdutil.Finish(cmd, app, report)
		},
	}
}
