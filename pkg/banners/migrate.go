package banners

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// Pattern matches every banners file below the site root.
const Pattern = "**/" + constants.BannersFile

// Find returns the banners files below root in lexical order.
func Find(root string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), Pattern)
	if err != nil {
		return nil, errors.WrapIO("glob", root, err)
	}
	sort.Strings(matches)

	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(root, filepath.FromSlash(m))
	}
	return paths, nil
}

// Migrate normalizes every banners file below root. Files that cannot be
// parsed are skipped; files whose normalized text equals the current text are
// left untouched.
func Migrate(ctx context.Context, root string, opts ...batch.Option) (*batch.Report, error) {
	options := batch.Apply(opts...)
	logger := logging.FromContext(ctx)

	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError("directory", root)
		}
		return nil, errors.WrapIO("stat", root, err)
	}

	paths, err := Find(root)
	if err != nil {
		return nil, err
	}

	report := batch.NewReport("banners")
	report.DryRun = options.DryRun()

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		data, err := document.Load(path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Skip: cannot parse JSON")
			report.Skipped(path, "cannot parse JSON")
			continue
		}

		normalized := Normalize(data)
		if options.DryRun() {
			changed, err := document.Differs(path, normalized, constants.IndentData)
			if err != nil {
				report.Failed(path, err)
				continue
			}
			if changed {
				report.Changed(path)
			} else {
				report.Unchanged(path)
			}
			continue
		}

		written, err := document.WriteIfChanged(path, normalized, constants.IndentData)
		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("Cannot write banners")
			report.Failed(path, err)
			continue
		}
		if written {
			logger.Debug().Str("path", path).Msg("Migrated")
			report.Changed(path)
		} else {
			report.Unchanged(path)
		}
	}

	report.Finalize()
	return report, nil
}
