// Package placeholders creates the data files a site build expects to find,
// so that a newly added site folder renders before its content is filled in.
// Existing files are never overwritten.
package placeholders

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alexsab-ru/sitekit/internal/fsutil"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// DefaultFiles are created as empty lists by EnsureFiles.
var DefaultFiles = []string{constants.MenuFile}

// PriceSources are tried in order when building a disclaimer file.
var PriceSources = []string{constants.FederalPricesFile, constants.AllPricesFile}

// DataDirs returns every directory named "data" below root, sorted.
func DataDirs(root string) ([]string, error) {
	if !fsutil.IsDir(root) {
		return nil, errors.NewNotFoundError("directory", root)
	}
	matches, err := doublestar.Glob(os.DirFS(root), "**/"+constants.DataDir)
	if err != nil {
		return nil, errors.WrapIO("glob", root, err)
	}

	var dirs []string
	for _, m := range matches {
		dir := filepath.Join(root, filepath.FromSlash(m))
		if fsutil.IsDir(dir) {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// EnsureFiles creates every missing file of names as "[]" in each data dir.
func EnsureFiles(ctx context.Context, root string, names []string, opts ...batch.Option) (*batch.Report, error) {
	return ensure(ctx, "placeholders", root, names, func(string) (any, error) {
		return []any{}, nil
	}, opts...)
}

// EnsureDisclaimers creates a missing federal-disclaimer.json in each data
// dir, with an empty {price, benefit} entry per model id of the first price
// file found.
func EnsureDisclaimers(ctx context.Context, root string, opts ...batch.Option) (*batch.Report, error) {
	return ensure(ctx, "disclaimers", root, []string{constants.DisclaimerFile}, func(dataDir string) (any, error) {
		return Disclaimer(dataDir)
	}, opts...)
}

// Disclaimer builds the disclaimer document for a data dir. Without a price
// file the document is empty; an unreadable price file is returned as error
// together with the empty document.
func Disclaimer(dataDir string) (*document.Map, error) {
	out := document.NewMap()
	for _, name := range PriceSources {
		path := filepath.Join(dataDir, name)
		if !fsutil.Exists(path) {
			continue
		}
		raw, err := document.Load(path)
		if err != nil {
			return out, err
		}
		items, _ := document.Array(raw)
		for _, item := range items {
			obj, ok := document.Object(item)
			if !ok {
				continue
			}
			id, ok := obj.Get("id")
			if !ok {
				continue
			}
			entry := document.NewMap()
			entry.Set("price", "")
			entry.Set("benefit", "")
			out.Set(idKey(id), entry)
		}
		break
	}
	return out, nil
}

func idKey(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case interface{ String() string }:
		return t.String()
	case nil:
		return "null"
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

func ensure(ctx context.Context, operation, root string, names []string, content func(dataDir string) (any, error), opts ...batch.Option) (*batch.Report, error) {
	options := batch.Apply(opts...)
	logger := logging.FromContext(ctx)

	dirs, err := DataDirs(root)
	if err != nil {
		return nil, err
	}

	report := batch.NewReport(operation)
	report.DryRun = options.DryRun()

	for _, dir := range dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				report.Unchanged(path)
				continue
			} else if !errors.Is(err, fs.ErrNotExist) {
				report.Failed(path, errors.WrapIO("stat", path, err))
				continue
			}

			v, err := content(dir)
			if err != nil {
				logger.Warn().Err(err).Str("dir", dir).Msg("Cannot read source, creating empty file")
			}
			if !options.DryRun() {
				if err := document.Write(path, v, constants.IndentPlaceholder); err != nil {
					report.Failed(path, err)
					continue
				}
			}
			logger.Info().Str("path", path).Msg("Created")
			report.Created(path)
		}
	}

	report.Finalize()
	return report, nil
}

// TouchedFolders counts the distinct directories in which files were created.
func TouchedFolders(report *batch.Report) int {
	dirs := make(map[string]bool)
	for _, path := range report.Units(batch.StatusCreated) {
		dirs[filepath.Dir(path)] = true
	}
	return len(dirs)
}
