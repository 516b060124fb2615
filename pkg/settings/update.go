package settings

import (
	"context"
	"path/filepath"

	"github.com/alexsab-ru/sitekit/internal/fsutil"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// Update regenerates <root>/<site>/data/settings.json for every site of src
// whose folder exists below root.
func Update(ctx context.Context, root string, src Source, opts ...batch.Option) (*batch.Report, error) {
	options := batch.Apply(opts...)
	logger := logging.FromContext(ctx)

	report := batch.NewReport("settings")
	report.DryRun = options.DryRun()

	sites, err := src.Sites(ctx, report)
	if err != nil {
		return nil, err
	}

	for _, site := range sites {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		siteDir := filepath.Join(root, site.Name)
		if !fsutil.IsDir(siteDir) {
			logger.Debug().Str("site", site.Name).Msg("Skip: no local folder")
			report.Skipped(siteDir, "no local folder")
			continue
		}

		path := filepath.Join(siteDir, constants.DataDir, constants.SettingsFile)
		if err := updateSite(logging.WithSite(ctx, site.Name), site, path, options, report); err != nil {
			logger.Error().Err(err).Str("site", site.Name).Msg("Cannot update settings")
			report.Failed(path, err)
		}
	}

	report.Finalize()
	return report, nil
}

func updateSite(ctx context.Context, site Site, path string, options *batch.Options, report *batch.Report) error {
	consts, app, err := site.Content(ctx)
	if err != nil {
		return err
	}
	if consts == "" && app == "" {
		logging.FromContext(ctx).Warn().Str("origin", site.Origin).Msg("No source files, keeping persisted settings")
	}

	fresh := FromSources(ExtractConsts(consts), ExtractApp(app))

	persisted, err := Load(path)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("path", path).Msg("Ignoring unreadable settings")
		persisted = Settings{}
	}
	merged := Merge(fresh, persisted)

	existed, written, err := document.Sync(path, merged, constants.IndentData, options.DryRun())
	if err != nil {
		return err
	}
	report.Synced(path, existed, written)
	logging.FromContext(ctx).Info().Str("path", path).Bool("written", written).Msg("Settings processed")
	return nil
}
