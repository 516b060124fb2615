package gtm

import (
	"context"
	"path/filepath"

	"github.com/alexsab-ru/sitekit/internal/fsutil"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// Generate writes <root>/<site>/data/scripts.json for every site of the
// export. Sites without a data folder are skipped.
func Generate(ctx context.Context, root string, export *Export, opts ...batch.Option) *batch.Report {
	options := batch.Apply(opts...)
	logger := logging.FromContext(ctx)

	report := batch.NewReport("gtm")
	report.DryRun = options.DryRun()

	for _, site := range export.Sites() {
		dataDir := filepath.Join(root, site.Name, constants.DataDir)
		if site.Name == "" || !fsutil.IsDir(dataDir) {
			report.Skipped(site.Name, "no site folder")
			continue
		}

		path := filepath.Join(dataDir, constants.ScriptsFile)
		existed, changed, err := document.Sync(path, Scripts(site), constants.IndentData, options.DryRun())
		if err != nil {
			report.Failed(path, err)
			continue
		}
		if changed {
			logger.Debug().Str("path", path).Bool("existed", existed).Msg("Scripts written")
		}
		report.Synced(path, existed, changed)
	}

	report.Finalize()
	return report
}
