package sections

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"

	"github.com/alexsab-ru/sitekit/internal/fsutil"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// projectBrand maps a fragment of a site folder name to its brand. The
// first fragment contained in the folder name wins, so longer fragments
// precede the shorter ones they contain.
var projectBrand = []struct {
	fragment string
	brand    string
}{
	{"baic", "Baic"},
	{"belgee", "Belgee"},
	{"changan", "Changan"},
	{"chery", "Chery"},
	{"evolute", "Evolute"},
	{"forthing", "Forthing"},
	{"venucia", "Venucia"},
	{"gac", "Gac"},
	{"geely", "Geely"},
	{"haval", "Haval"},
	{"great-wall", "Great Wall"},
	{"greatwall", "Great Wall"},
	{"infiniti", "Infiniti"},
	{"jac", "JAC"},
	{"jaecoo", "JAECOO"},
	{"jetour", "Jetour"},
	{"kaiyi", "Kaiyi"},
	{"knewstar", "KNEWSTAR"},
	{"livan", "Livan"},
	{"omoda", "OMODA"},
	{"kia", "Kia"},
	{"solaris", "Solaris"},
	{"soueast", "Soueast"},
	{"tank", "Tank"},
	{"toyota", "Toyota"},
	{"vgv", "VGV"},
	{"wey", "WEY"},
	{"mazda", "Mazda"},
	{"dongfeng", "Dongfeng"},
	{"hyundai", "Hyundai"},
	{"datsun", "Datsun"},
	{"lada", "Lada (ВАЗ)"},
	{"ваз", "Lada (ВАЗ)"},
	{"opel", "Opel"},
	{"nissan", "Nissan"},
	{"renault", "Renault"},
	{"daewoo", "Daewoo"},
	{"chevrolet", "Chevrolet"},
	{"lexus", "Lexus"},
	{"subaru", "Subaru"},
	{"jaguar", "Jaguar"},
	{"bmw", "BMW"},
	{"mercedes-benz", "Mercedes-Benz"},
	{"mercedes", "Mercedes-Benz"},
	{"suzuki", "Suzuki"},
	{"land-rover", "Land Rover"},
	{"landrover", "Land Rover"},
	{"audi", "Audi"},
	{"volkswagen", "Volkswagen"},
	{"vw", "Volkswagen"},
	{"газ", "ГАЗ"},
	{"skoda", "Skoda"},
	{"ford", "Ford"},
}

// ProjectBrand guesses the brand of a site from its folder name.
func ProjectBrand(project string) string {
	lower := strings.ToLower(project)
	for _, pb := range projectBrand {
		if strings.Contains(lower, pb.fragment) {
			return pb.brand
		}
	}
	return ""
}

// Resolver finds the brand of a model id using the canonical model list.
type Resolver struct {
	pairs map[[2]string]bool
	marks map[string][]string
}

// NewResolver indexes models by normalized (mark_id, id) and by id.
func NewResolver(models []any) *Resolver {
	r := &Resolver{pairs: make(map[[2]string]bool), marks: make(map[string][]string)}
	for _, item := range models {
		model, ok := document.Object(item)
		if !ok {
			continue
		}
		mark, id := document.Text(model, "mark_id"), document.Text(model, "id")
		r.pairs[[2]string{NormalizeID(mark), NormalizeID(id)}] = true
		r.marks[NormalizeID(id)] = append(r.marks[NormalizeID(id)], mark)
	}
	return r
}

// Brand returns the brand of modelID as seen from the given site folder.
// The folder's brand is used when it has such a model; otherwise the model
// id must be unique across all brands.
func (r *Resolver) Brand(modelID, project string) string {
	id := NormalizeID(modelID)
	if brand := ProjectBrand(project); brand != "" && r.pairs[[2]string{NormalizeID(brand), id}] {
		return brand
	}
	if marks := r.marks[id]; len(marks) == 1 {
		return marks[0]
	}
	return ""
}

// Entry holds the sections found for one model.
type Entry struct {
	Brand    string
	Model    string
	Sections []any
}

// Extract reads a models-sections.yml document, a list of {id, sections}
// items, and returns the entries whose brand can be resolved. The first
// entry of a model wins.
func Extract(data []byte, project string, r *Resolver) ([]Entry, error) {
	var items []any
	if err := yaml.UnmarshalWithOptions(data, &items, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []Entry
	for _, item := range items {
		m, ok := item.(yaml.MapSlice)
		if !ok {
			continue
		}
		id := yamlText(lookup(m, "id"))
		sections, _ := lookup(m, "sections").([]any)
		if id == "" || len(sections) == 0 {
			continue
		}
		brand := r.Brand(id, project)
		if brand == "" {
			continue
		}
		key := NormalizeID(brand) + "/" + NormalizeID(id)
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, Entry{Brand: NormalizeID(brand), Model: NormalizeID(id), Sections: sections})
	}
	return entries, nil
}

// Fill copies sections from every models-sections.yml below root into the
// matching empty section file in dir. Files that do not exist or already
// have content are left alone.
func Fill(ctx context.Context, root, dir string, models []any, opts ...batch.Option) (*batch.Report, error) {
	options := batch.Apply(opts...)
	logger := logging.FromContext(ctx)

	matches, err := doublestar.Glob(os.DirFS(root), "**/"+constants.ModelSectionsSource)
	if err != nil {
		return nil, errors.WrapIO("glob", root, err)
	}
	sort.Strings(matches)

	report := batch.NewReport("sections-fill")
	report.DryRun = options.DryRun()
	resolver := NewResolver(models)

	var order []string
	collected := make(map[string]Entry)
	for _, m := range matches {
		path := filepath.Join(root, filepath.FromSlash(m))
		project := strings.SplitN(m, "/", 2)[0]

		data, err := os.ReadFile(path)
		if err != nil {
			report.Failed(path, errors.WrapIO("read", path, err))
			continue
		}
		entries, err := Extract(data, project, resolver)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Cannot parse sections")
			report.Skipped(path, "cannot parse YAML")
			continue
		}
		for _, e := range entries {
			key := e.Brand + "/" + e.Model
			if _, ok := collected[key]; !ok {
				order = append(order, key)
				collected[key] = e
			}
		}
	}
	logger.Info().Int("models", len(order)).Int("sources", len(matches)).Msg("Sections collected")

	for _, key := range order {
		e := collected[key]
		target := filepath.Join(dir, e.Brand, e.Model+".yml")

		current, err := os.ReadFile(target)
		if err != nil {
			report.Skipped(target, "no section file")
			continue
		}
		if !IsEmpty(current) {
			report.Unchanged(target)
			continue
		}

		out, err := Marshal(e.Sections)
		if err != nil {
			report.Failed(target, errors.WrapParse("yaml", target, err))
			continue
		}
		if !options.DryRun() {
			if err := fsutil.WriteFile(target, out); err != nil {
				report.Failed(target, err)
				continue
			}
		}
		logger.Debug().Str("path", target).Int("sections", len(e.Sections)).Msg("Filled")
		report.Changed(target)
	}

	report.Finalize()
	return report, nil
}

// Marshal renders sections as block YAML with the original key order.
func Marshal(sections []any) ([]byte, error) {
	return yaml.MarshalWithOptions(sections, yaml.Indent(2), yaml.IndentSequence(false))
}

func lookup(m yaml.MapSlice, key string) any {
	for _, item := range m {
		if k, ok := item.Key.(string); ok && k == key {
			return item.Value
		}
	}
	return nil
}

func yamlText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, err := yaml.Marshal(t)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(b))
	}
}
