package sections_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sectionscmd "github.com/alexsab-ru/sitekit/cmd/sitekit/cmd/sections"
	"github.com/alexsab-ru/sitekit/internal/cmd/application"
	"github.com/alexsab-ru/sitekit/internal/config"
	"github.com/alexsab-ru/sitekit/pkg/logging"
	"github.com/alexsab-ru/sitekit/pkg/sections"
)

func setup(t *testing.T, models string) (*application.Mock, *config.Config) {
	t.Helper()
	logging.DisableLoggingForTest(t)

	cfg := config.Default()
	cfg.Root = t.TempDir()
	cfg.ModelsPath = filepath.Join(cfg.Root, "models.json")
	cfg.SectionsDir = filepath.Join(cfg.Root, "model-sections")
	require.NoError(t, os.WriteFile(cfg.ModelsPath, []byte(models), 0o644))
	return &application.Mock{ConfigFunc: func() *config.Config { return cfg }}, cfg
}

func run(t *testing.T, mock *application.Mock, args ...string) (string, error) {
	t.Helper()
	cmd := sectionscmd.NewCommand(mock)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateCommand(t *testing.T) {
	mock, cfg := setup(t, `[{"mark_id":"Haval","id":"Jolion"}]`)

	out, err := run(t, mock, "create")
	require.NoError(t, err)
	assert.Contains(t, out, `"created": 1`)

	data, err := os.ReadFile(filepath.Join(cfg.SectionsDir, "haval", "jolion.yml"))
	require.NoError(t, err)
	assert.Equal(t, sections.EmptyContent, string(data))
}

func TestCreateCommandDirFlag(t *testing.T) {
	mock, _ := setup(t, `[{"mark_id":"Haval","id":"Jolion"}]`)
	dir := t.TempDir()

	_, err := run(t, mock, "create", "--dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "haval", "jolion.yml"))
}

func TestCommandRejectsObjectCatalog(t *testing.T) {
	mock, _ := setup(t, `{"mark_id":"Haval"}`)

	_, err := run(t, mock, "create")
	assert.Error(t, err)
}
