package menu

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexsab-ru/sitekit/internal/fsutil"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// Fetcher downloads a page.
type Fetcher interface {
	Text(ctx context.Context, url string) (string, error)
}

// SiteURL is the home page of a site folder.
func SiteURL(folder string) string {
	return "http://" + folder + "/"
}

// Updater refreshes menu.json for every site folder below a root.
type Updater struct {
	Client Fetcher
	Log    *logging.ErrorLog

	// URL maps a site folder to its home page. Defaults to SiteURL.
	URL func(folder string) string

	// Exclude skips folders whose name contains it.
	Exclude string
}

// Update fetches and parses the home page of every site folder below root
// and writes the result to <site>/data/menu.json. Fetch and parse failures
// are recorded in the error log and do not stop the run.
func (u Updater) Update(ctx context.Context, root string, opts ...batch.Option) (*batch.Report, error) {
	options := batch.Apply(opts...)
	logger := logging.FromContext(ctx)

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("directory", root)
		}
		return nil, errors.WrapIO("read", root, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	urlFor := u.URL
	if urlFor == nil {
		urlFor = SiteURL
	}

	report := batch.NewReport("menu")
	report.DryRun = options.DryRun()

	for _, entry := range entries {
		folder := entry.Name()
		if !entry.IsDir() {
			continue
		}
		if u.Exclude != "" && strings.Contains(folder, u.Exclude) {
			report.Skipped(folder, "excluded")
			continue
		}
		dataDir := filepath.Join(root, folder, constants.DataDir)
		if !fsutil.IsDir(dataDir) {
			report.Skipped(folder, "no data folder")
			continue
		}

		url := urlFor(folder)
		html, err := u.Client.Text(ctx, url)
		if err != nil {
			u.Log.Record(err)
			report.Failed(folder, err)
			continue
		}
		items, err := Parse(strings.NewReader(html))
		if err != nil {
			err = errors.WrapParse("html", url, err)
			u.Log.Record(err)
			report.Failed(folder, err)
			continue
		}

		path := filepath.Join(dataDir, constants.MenuFile)
		existed, changed, err := document.Sync(path, items, constants.IndentMenu, options.DryRun())
		if err != nil {
			report.Failed(folder, err)
			continue
		}
		if changed {
			logger.Info().Str("path", path).Int("items", len(items)).Msg("Menu saved")
		}
		report.Synced(path, existed, changed)
	}

	report.Finalize()
	return report, nil
}
