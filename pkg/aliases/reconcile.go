// Package aliases merges the alternative model and color names exported by
// the accounting system (model_mapping.json) into the canonical model list
// (models.json).
//
// Matching is exact on the normalized (brand, folder) key. Entries that do
// not match are reported and never create models.
package aliases

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/alexsab-ru/sitekit/pkg/document"
)

// Field names of the model and color records.
const (
	FieldMarkID    = "mark_id"
	FieldID        = "id"
	FieldName      = "name"
	FieldCyrillic  = "cyrillic"
	FieldFeedNames = "feed_names"
	FieldColors    = "colors"
	FieldNames     = "names"
	FieldCarImage  = "carImage"
)

// hintThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const hintThreshold = 0.85

// Key identifies a canonical model.
type Key struct {
	Brand string
	ID    string
}

// Normalize lowercases and trims a key component.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Skip describes a mapping entry that could not be applied.
type Skip struct {
	Brand   string `json:"brand" yaml:"brand"`
	Variant string `json:"variant" yaml:"variant"`
	Folder  string `json:"folder" yaml:"folder"`
	Reason  string `json:"reason" yaml:"reason"`
	Hint    string `json:"closest_model" yaml:"closest_model"`
}

// Result summarizes a reconciliation.
type Result struct {
	Models []any

	Matched         int
	FeedNamesAdded  int
	CyrillicSet     int
	ColorNamesAdded int
	Changed         []string
	Skipped         []Skip
}

// Index maps normalized (mark_id, id) keys to model records. Models with an
// empty brand or id are left out; a later duplicate replaces an earlier one.
func Index(models []any) map[Key]*document.Map {
	index := make(map[Key]*document.Map, len(models))
	for _, item := range models {
		model, ok := document.Object(item)
		if !ok {
			continue
		}
		key := Key{Brand: Normalize(document.Text(model, FieldMarkID)), ID: Normalize(document.Text(model, FieldID))}
		if key.Brand == "" || key.ID == "" {
			continue
		}
		index[key] = model
	}
	return index
}

// Reconcile applies mapping to a deep copy of models and returns the copy
// with the statistics of the run. The inputs are not modified.
func Reconcile(models []any, mapping *document.Map) *Result {
	out, _ := document.Clone(models).([]any)
	result := &Result{Models: out}
	index := Index(out)

	for _, brand := range mapping.Keys() {
		raw, _ := mapping.Get(brand)
		variants, ok := document.Object(raw)
		if !ok {
			continue
		}

		for _, variant := range variants.Keys() {
			raw, _ := variants.Get(variant)
			details, ok := document.Object(raw)
			if !ok {
				continue
			}

			folder := strings.TrimSpace(document.Text(details, "folder"))
			if folder == "" {
				result.Skipped = append(result.Skipped, Skip{Brand: brand, Variant: variant, Reason: "no folder"})
				continue
			}

			model, ok := index[Key{Brand: Normalize(brand), ID: Normalize(folder)}]
			if !ok {
				result.Skipped = append(result.Skipped, Skip{
					Brand:   brand,
					Variant: variant,
					Folder:  folder,
					Reason:  "no model in models.json",
					Hint:    suggest(index, brand, folder),
				})
				continue
			}

			result.Matched++
			changed := false
			if addFeedName(model, variant) {
				result.FeedNamesAdded++
				changed = true
			}
			if cyrillic, ok := document.String(details, "cyrillic"); ok && setCyrillic(model, cyrillic) {
				result.CyrillicSet++
				changed = true
			}
			colorMap, _ := details.Get("color")
			if colors, ok := document.Object(colorMap); ok {
				if n := addColorNames(model, GroupColors(colors)); n > 0 {
					result.ColorNamesAdded += n
					changed = true
				}
			}
			if changed {
				result.Changed = append(result.Changed, brand+"/"+variant)
			}
		}
	}

	for _, item := range out {
		if model, ok := document.Object(item); ok {
			reorder(model)
		}
	}
	return result
}

func addFeedName(model *document.Map, variant string) bool {
	current, _ := model.Get(FieldFeedNames)
	names, added := document.AppendUnique(document.EnsureList(current), variant)
	model.Set(FieldFeedNames, names)
	return added
}

// setCyrillic writes value unless the model already has a non-blank cyrillic name.
func setCyrillic(model *document.Map, value string) bool {
	if value == "" {
		return false
	}
	if _, ok := document.NonBlank(model, FieldCyrillic); ok {
		return false
	}
	model.Set(FieldCyrillic, value)
	return true
}

// ColorGroup is the set of display names sharing one image basename.
type ColorGroup struct {
	Base  string
	Names []string
}

// GroupColors groups the display names of a {displayName: fileName} map by
// the file's basename without extension, in order of first appearance.
// Entries whose file name is not a non-empty string are ignored.
func GroupColors(colors *document.Map) []ColorGroup {
	var groups []ColorGroup
	pos := make(map[string]int)
	for _, name := range colors.Keys() {
		file, ok := document.String(colors, name)
		if !ok || file == "" {
			continue
		}
		base := stem(file)
		i, seen := pos[base]
		if !seen {
			i = len(groups)
			pos[base] = i
			groups = append(groups, ColorGroup{Base: base})
		}
		groups[i].Names = append(groups[i].Names, name)
	}
	return groups
}

// addColorNames appends each group's names to the model color whose carImage
// has the same basename. Groups without a matching color are ignored. When
// two colors share a basename the later one receives the names.
func addColorNames(model *document.Map, groups []ColorGroup) int {
	raw, _ := model.Get(FieldColors)
	colors, ok := document.Array(raw)
	if !ok || len(colors) == 0 {
		return 0
	}

	byBase := make(map[string]*document.Map, len(colors))
	for _, item := range colors {
		color, ok := document.Object(item)
		if !ok {
			continue
		}
		image, _ := document.String(color, FieldCarImage)
		if base := stem(image); base != "" {
			byBase[base] = color
		}
	}

	added := 0
	for _, group := range groups {
		color, ok := byBase[group.Base]
		if !ok {
			continue
		}
		current, _ := color.Get(FieldNames)
		names := document.EnsureList(current)
		for _, name := range group.Names {
			var ok bool
			if names, ok = document.AppendUnique(names, name); ok {
				added++
			}
		}
		color.Set(FieldNames, names)
	}
	return added
}

// reorder places cyrillic right after name on the model and names right
// after name on each color.
func reorder(model *document.Map) {
	document.MoveAfter(model, FieldCyrillic, FieldName)

	raw, _ := model.Get(FieldColors)
	colors, ok := document.Array(raw)
	if !ok {
		return
	}
	for _, item := range colors {
		if color, ok := document.Object(item); ok {
			document.MoveAfter(color, FieldNames, FieldName)
		}
	}
}

// suggest returns the most similar model id of the same brand, if any is
// similar enough to be worth mentioning.
func suggest(index map[Key]*document.Map, brand, folder string) string {
	brand, folder = Normalize(brand), Normalize(folder)
	best, bestScore := "", 0.0
	for key := range index {
		if key.Brand != brand {
			continue
		}
		score := matchr.JaroWinkler(folder, key.ID, false)
		if score > bestScore || (score == bestScore && key.ID < best) {
			best, bestScore = key.ID, score
		}
	}
	if bestScore < hintThreshold {
		return ""
	}
	return best
}

// stem returns the last path segment of a path or URL without its extension.
func stem(pathOrURL string) string {
	name := pathOrURL[strings.LastIndex(pathOrURL, "/")+1:]
	i := strings.LastIndex(name, ".")
	if i <= 0 || strings.Trim(name[:i], ".") == "" {
		return name
	}
	return name[:i]
}
