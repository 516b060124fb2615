// Package dealer selects, for one dealer site, the canonical models it sells
// and writes them to the site's data/models.json together with the test
// drive and service model lists.
package dealer

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// Fields kept for the test drive and service lists.
var (
	TestDriveFields = []string{"mark_id", "id", "show", "name", "thumb", "globalChars"}
	ServiceFields   = []string{"mark_id", "id", "name"}
)

// ModelRef points at a canonical model by brand and id.
type ModelRef struct {
	MarkID string
	ID     string
}

// Selection is what a dealer's settings.json asks for. An empty ID list
// falls back to every model of Brands.
type Selection struct {
	Brands       []string
	ModelIDs     []ModelRef
	TestDriveIDs []ModelRef
	ServiceIDs   []ModelRef
}

// SelectionFromSettings reads the brand list and the explicit model lists
// of a settings document.
func SelectionFromSettings(settings *document.Map) Selection {
	brand, _ := document.String(settings, "brand")
	return Selection{
		Brands:       ParseList(brand),
		ModelIDs:     refs(settings, "modelIDs"),
		TestDriveIDs: refs(settings, "testDriveIDs"),
		ServiceIDs:   refs(settings, "serviceIDs"),
	}
}

// ParseList splits a comma separated list into trimmed, lowercased, non-empty items.
func ParseList(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if item := strings.ToLower(strings.TrimSpace(part)); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func refs(settings *document.Map, key string) []ModelRef {
	raw, _ := settings.Get(key)
	list, ok := document.Array(raw)
	if !ok {
		return nil
	}
	out := make([]ModelRef, 0, len(list))
	for _, item := range list {
		obj, ok := document.Object(item)
		if !ok {
			out = append(out, ModelRef{})
			continue
		}
		out = append(out, ModelRef{MarkID: document.Text(obj, "mark_id"), ID: document.Text(obj, "id")})
	}
	return out
}

// Filter builds the {models, testDrive, services} document for sel.
func Filter(models []any, sel Selection) *document.Map {
	out := Empty()
	out.Set("models", pick(models, sel.ModelIDs, sel.Brands, nil))
	out.Set("testDrive", pick(models, sel.TestDriveIDs, sel.Brands, TestDriveFields))
	out.Set("services", pick(models, sel.ServiceIDs, sel.Brands, ServiceFields))
	return out
}

// Empty returns the document written when nothing can be selected.
func Empty() *document.Map {
	out := document.NewMap()
	out.Set("models", []any{})
	out.Set("testDrive", []any{})
	out.Set("services", []any{})
	return out
}

// pick resolves explicit refs in their order, or every model of brands when
// refs is empty. Unresolved refs are dropped. A nil fields keeps whole records.
func pick(models []any, ids []ModelRef, brands []string, fields []string) []any {
	var selected []*document.Map
	if len(ids) > 0 {
		for _, ref := range ids {
			if m := find(models, ref); m != nil {
				selected = append(selected, m)
			}
		}
	} else {
		for _, item := range models {
			m, ok := document.Object(item)
			if !ok {
				continue
			}
			if mark := strings.ToLower(document.Text(m, "mark_id")); mark != "" && contains(brands, mark) {
				selected = append(selected, m)
			}
		}
	}

	out := make([]any, 0, len(selected))
	for _, m := range selected {
		if fields == nil {
			out = append(out, m)
			continue
		}
		out = append(out, pickFields(m, fields))
	}
	return out
}

func find(models []any, ref ModelRef) *document.Map {
	for _, item := range models {
		m, ok := document.Object(item)
		if !ok {
			continue
		}
		mark, id := document.Text(m, "mark_id"), document.Text(m, "id")
		if mark != "" && id != "" && strings.EqualFold(mark, ref.MarkID) && strings.EqualFold(id, ref.ID) {
			return m
		}
	}
	return nil
}

func pickFields(m *document.Map, fields []string) *document.Map {
	out := document.NewMap()
	for _, f := range fields {
		if v, ok := m.Get(f); ok {
			out.Set(f, v)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Generate writes <dir>/data/models.json for every dealer dir from the
// canonical models at modelsPath. When the inputs cannot be used the empty
// structure is written and the dealer is reported as failed.
func Generate(ctx context.Context, modelsPath string, dirs []string, opts ...batch.Option) (*batch.Report, error) {
	options := batch.Apply(opts...)
	logger := logging.FromContext(ctx)

	report := batch.NewReport("dealer-models")
	report.DryRun = options.DryRun()

	var models []any
	var modelsErr error
	if raw, err := document.Load(modelsPath); err != nil {
		modelsErr = err
	} else if list, ok := document.Array(raw); ok {
		models = list
	} else {
		modelsErr = errors.NewValidationError(modelsPath, nil, "expected an array of models")
	}

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		dataDir := filepath.Join(dir, constants.DataDir)
		output := filepath.Join(dataDir, constants.ModelsFile)

		out, err := build(models, modelsErr, filepath.Join(dataDir, constants.SettingsFile))
		if err != nil {
			logger.Error().Err(err).Str("dealer", dir).Msg("Cannot select models, writing empty structure")
			out = Empty()
		} else if count := countModels(out); count == 0 {
			logger.Warn().Str("dealer", dir).Msg("No matching models")
		}

		var written bool
		var werr error
		if options.DryRun() {
			written, werr = document.Differs(output, out, constants.IndentListing)
		} else {
			written, werr = document.WriteIfChanged(output, out, constants.IndentListing)
		}
		if werr != nil {
			report.Failed(output, werr)
			continue
		}

		switch {
		case err != nil:
			report.Failed(output, err)
		case written:
			report.Changed(output)
		default:
			report.Unchanged(output)
		}
	}

	report.Finalize()
	return report, nil
}

func build(models []any, modelsErr error, settingsPath string) (*document.Map, error) {
	if modelsErr != nil {
		return nil, modelsErr
	}
	raw, err := document.Load(settingsPath)
	if err != nil {
		return nil, err
	}
	settings, ok := document.Object(raw)
	if !ok {
		return nil, errors.NewValidationError(settingsPath, nil, "expected an object")
	}
	return Filter(models, SelectionFromSettings(settings)), nil
}

func countModels(out *document.Map) int {
	raw, _ := out.Get("models")
	list, _ := document.Array(raw)
	return len(list)
}
