// Package sections manages the per-model YAML section files stored under
// model-sections/<brand>/<model>.yml: one empty file per canonical model,
// filled later from the legacy per-site models-sections.yml files.
package sections

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alexsab-ru/sitekit/internal/fsutil"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// EmptyContent is the body of a section file without sections.
const EmptyContent = "[]\n"

// NormalizeID lowercases s and replaces spaces with dashes.
func NormalizeID(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

// FilePath returns the section file of a model below dir.
func FilePath(dir, markID, modelID string) string {
	return filepath.Join(dir, NormalizeID(markID), NormalizeID(modelID)+".yml")
}

// IsEmpty reports whether a section file holds no sections.
func IsEmpty(content []byte) bool {
	s := strings.TrimSpace(string(content))
	return s == "" || s == "[]"
}

// Create makes one section file per distinct (mark_id, id) of models.
// Missing files are created, blank files are reset to "[]" and files with
// content are kept. Afterwards case-duplicate files are removed.
func Create(ctx context.Context, models []any, dir string, opts ...batch.Option) (*batch.Report, error) {
	options := batch.Apply(opts...)
	logger := logging.FromContext(ctx)

	report := batch.NewReport("sections")
	report.DryRun = options.DryRun()

	seen := make(map[string]bool)
	for _, item := range models {
		model, ok := document.Object(item)
		if !ok {
			continue
		}
		markID, modelID := document.Text(model, "mark_id"), document.Text(model, "id")
		if markID == "" || modelID == "" {
			name := document.Text(model, "name")
			if name == "" {
				name = "unknown"
			}
			report.Skipped(name, "no mark_id or id")
			continue
		}

		path := FilePath(dir, markID, modelID)
		if seen[path] {
			report.Skipped(markID+"/"+modelID, "duplicate of "+path)
			continue
		}
		seen[path] = true

		current, err := os.ReadFile(path)
		switch {
		case err == nil && !IsEmpty(current):
			report.Unchanged(path)
			continue
		case err == nil && string(current) == EmptyContent:
			report.Unchanged(path)
			continue
		case err != nil && !os.IsNotExist(err):
			report.Failed(path, errors.WrapIO("read", path, err))
			continue
		}

		if !options.DryRun() {
			if werr := fsutil.WriteFile(path, []byte(EmptyContent)); werr != nil {
				report.Failed(path, werr)
				continue
			}
		}
		if err == nil {
			report.Changed(path)
		} else {
			logger.Debug().Str("path", path).Msg("Created section file")
			report.Created(path)
		}
	}

	removed, err := RemoveDuplicates(dir, options.DryRun())
	if err != nil {
		return report, err
	}
	for _, path := range removed {
		logger.Info().Str("path", path).Msg("Removed duplicate section file")
		report.Skipped(path, "case duplicate removed")
	}

	report.Finalize()
	return report, nil
}

// RemoveDuplicates deletes section files whose names differ only in case
// or spaces from another file in the same folder, keeping the normalized
// one. It returns the removed paths.
func RemoveDuplicates(dir string, dryRun bool) ([]string, error) {
	if !fsutil.IsDir(dir) {
		return nil, nil
	}
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.yml")
	if err != nil {
		return nil, errors.WrapIO("glob", dir, err)
	}
	sort.Strings(matches)

	type group struct {
		normalized string
		files      []string
	}
	groups := make(map[string]*group)
	var order []string
	for _, m := range matches {
		path := filepath.Join(dir, filepath.FromSlash(m))
		stem := strings.TrimSuffix(filepath.Base(path), ".yml")
		key := filepath.Join(filepath.Dir(path), NormalizeID(stem))
		g, ok := groups[key]
		if !ok {
			g = &group{normalized: NormalizeID(stem)}
			groups[key] = g
			order = append(order, key)
		}
		g.files = append(g.files, path)
	}

	var removed []string
	for _, key := range order {
		g := groups[key]
		if len(g.files) < 2 {
			continue
		}
		sort.SliceStable(g.files, func(i, j int) bool {
			a := strings.TrimSuffix(filepath.Base(g.files[i]), ".yml") != g.normalized
			b := strings.TrimSuffix(filepath.Base(g.files[j]), ".yml") != g.normalized
			if a != b {
				return !a
			}
			return filepath.Base(g.files[i]) < filepath.Base(g.files[j])
		})
		for _, path := range g.files[1:] {
			if !dryRun {
				if err := os.Remove(path); err != nil {
					return removed, errors.WrapIO("delete", path, err)
				}
			}
			removed = append(removed, path)
		}
	}
	return removed, nil
}
