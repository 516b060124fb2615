package sections

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

const catalog = `[
	{"mark_id":"Geely","id":"Monjaro","name":"Monjaro"},
	{"mark_id":"Geely","id":"coolray","name":"Coolray"},
	{"mark_id":"Belgee","id":"x50","name":"X50"},
	{"mark_id":"Belgee","id":"X50","name":"X50 duplicate"},
	{"mark_id":"Haval","id":"jolion","name":"Jolion"},
	{"id":"orphan","name":"Orphan"},
	{"mark_id":"Haval"}
]`

func loadModels(t *testing.T) []any {
	t.Helper()
	v, err := document.Parse([]byte(catalog))
	require.NoError(t, err)
	models, ok := document.Array(v)
	require.True(t, ok)
	return models
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Monjaro", "monjaro"},
		{"Great Wall", "great-wall"},
		{"x50", "x50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeID(tt.in))
	}
	assert.Equal(t, filepath.Join("d", "great-wall", "wingle-7.yml"), FilePath("d", "Great Wall", "Wingle 7"))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty([]byte(" \n")))
	assert.True(t, IsEmpty([]byte("[]\n")))
	assert.False(t, IsEmpty([]byte("- title: Design\n")))
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	filled := filepath.Join(dir, "haval", "jolion.yml")
	blank := filepath.Join(dir, "geely", "coolray.yml")
	writeFile(t, filled, "- title: Design\n")
	writeFile(t, blank, "\n")

	report, err := Create(context.Background(), loadModels(t), dir)
	require.NoError(t, err)

	monjaro := filepath.Join(dir, "geely", "monjaro.yml")
	assert.Equal(t, []string{monjaro, filepath.Join(dir, "belgee", "x50.yml")}, report.Units(batch.StatusCreated))
	assert.Equal(t, []string{blank}, report.Units(batch.StatusChanged))
	assert.Equal(t, []string{filled}, report.Units(batch.StatusUnchanged))
	assert.Equal(t, []string{"Belgee/X50", "Orphan", "unknown"}, report.Units(batch.StatusSkipped))

	assert.Equal(t, EmptyContent, readFile(t, monjaro))
	assert.Equal(t, EmptyContent, readFile(t, blank))
	assert.Equal(t, "- title: Design\n", readFile(t, filled))

	again, err := Create(context.Background(), loadModels(t), dir)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Written())
}

func TestCreateDryRun(t *testing.T) {
	dir := t.TempDir()
	report, err := Create(context.Background(), loadModels(t), dir, batch.WithDryRun(true))
	require.NoError(t, err)

	assert.Equal(t, 4, report.Count(batch.StatusCreated))
	assert.NoFileExists(t, filepath.Join(dir, "geely", "monjaro.yml"))
}

func TestRemoveDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "geely", "Monjaro.yml"), "[]\n")
	writeFile(t, filepath.Join(dir, "geely", "monjaro.yml"), "[]\n")
	writeFile(t, filepath.Join(dir, "geely", "Atlas Pro.yml"), "[]\n")
	writeFile(t, filepath.Join(dir, "geely", "Atlas pro.yml"), "[]\n")
	writeFile(t, filepath.Join(dir, "haval", "monjaro.yml"), "[]\n")

	removed, err := RemoveDuplicates(dir, false)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "geely", "Monjaro.yml"),
		filepath.Join(dir, "geely", "Atlas pro.yml"),
	}, removed)
	assert.FileExists(t, filepath.Join(dir, "geely", "monjaro.yml"))
	assert.FileExists(t, filepath.Join(dir, "geely", "Atlas Pro.yml"))
	assert.FileExists(t, filepath.Join(dir, "haval", "monjaro.yml"))

	none, err := RemoveDuplicates(filepath.Join(dir, "missing"), false)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProjectBrand(t *testing.T) {
	tests := []struct {
		project string
		want    string
	}{
		{"geely-samara.ru", "Geely"},
		{"great-wall-motors.ru", "Great Wall"},
		{"mercedes-benz-volga.ru", "Mercedes-Benz"},
		{"lada-center.ru", "Lada (ВАЗ)"},
		{"JAECOO-tlt.ru", "JAECOO"},
		{"unknown.ru", ""},
	}
	for _, tt := range tests {
		t.Run(tt.project, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectBrand(tt.project))
		})
	}
}

func TestResolverBrand(t *testing.T) {
	r := NewResolver(loadModels(t))

	assert.Equal(t, "Geely", r.Brand("monjaro", "geely-samara.ru"))
	assert.Equal(t, "Geely", r.Brand("Monjaro", "haval-samara.ru"), "unique id falls back to its own brand")
	assert.Equal(t, "Haval", r.Brand("jolion", "site.ru"))
	assert.Empty(t, r.Brand("missing", "geely-samara.ru"))
}

func TestFill(t *testing.T) {
	root := t.TempDir()
	dir := t.TempDir()
	writeFile(t, filepath.Join(root, "geely-samara.ru", "src", "data", "models-sections.yml"), `
- id: Monjaro
  sections:
    - title: Design
      text: Nice
- id: ghost
  sections:
    - title: Nothing
- id: coolray
  sections: []
`)
	writeFile(t, filepath.Join(root, "haval-samara.ru", "models-sections.yml"), `
- id: monjaro
  sections:
    - title: Second
- id: jolion
  sections:
    - title: Jolion
`)
	writeFile(t, filepath.Join(root, "broken.ru", "models-sections.yml"), "- id: [\n")

	monjaro := filepath.Join(dir, "geely", "monjaro.yml")
	coolray := filepath.Join(dir, "geely", "coolray.yml")
	jolion := filepath.Join(dir, "haval", "jolion.yml")
	writeFile(t, monjaro, EmptyContent)
	writeFile(t, coolray, EmptyContent)
	writeFile(t, jolion, "- title: Kept\n")

	logger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logger.Logger)

	report, err := Fill(ctx, root, dir, loadModels(t))
	require.NoError(t, err)

	assert.Equal(t, []string{monjaro}, report.Units(batch.StatusChanged))
	assert.Equal(t, []string{jolion}, report.Units(batch.StatusUnchanged))
	assert.Equal(t, []string{filepath.Join(root, "broken.ru", "models-sections.yml")}, report.Units(batch.StatusSkipped))

	out := readFile(t, monjaro)
	assert.Contains(t, out, "title: Design")
	assert.NotContains(t, out, "Second")
	assert.Less(t, strings.Index(out, "title"), strings.Index(out, "text"))
	assert.Equal(t, EmptyContent, readFile(t, coolray))
	assert.Equal(t, "- title: Kept\n", readFile(t, jolion))
	logger.AssertContains(t, "Sections collected")
}

func TestFillDryRun(t *testing.T) {
	root := t.TempDir()
	dir := t.TempDir()
	writeFile(t, filepath.Join(root, "geely.ru", "models-sections.yml"), "- id: coolray\n  sections:\n    - title: A\n")
	target := filepath.Join(dir, "geely", "coolray.yml")
	writeFile(t, target, EmptyContent)

	report, err := Fill(context.Background(), root, dir, loadModels(t), batch.WithDryRun(true))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(batch.StatusChanged))
	assert.Equal(t, EmptyContent, readFile(t, target))
}
