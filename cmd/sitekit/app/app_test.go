package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsab-ru/sitekit/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.LogOutput = "discard"
	cfg.ErrorLog = filepath.Join(t.TempDir(), "output.txt")

	app, err := New("1.0.0", "abc123", "2026-01-01", WithConfig(cfg))
	require.NoError(t, err)
	return app
}

func TestNew(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2026-01-01", app.Date())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
	assert.NotNil(t, app.HTTPClient())
	assert.Len(t, app.BatchOptions(), 1)
}

func TestErrorLogFollowsConfig(t *testing.T) {
	app := newTestApp(t)

	first := app.ErrorLog()
	assert.Same(t, first, app.ErrorLog())

	app.Config().ErrorLog = filepath.Join(t.TempDir(), "other.txt")
	second := app.ErrorLog()
	assert.NotSame(t, first, second)
	assert.Equal(t, app.Config().ErrorLog, second.Path())
}

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		explicit string
		want     string
	}{
		{"default", Config{}, "", "info"},
		{"env", Config{LogLevel: "error"}, "", "error"},
		{"invalid", Config{LogLevel: "loud"}, "", "info"},
		{"verbose", Config{Verbose: true}, "", "debug"},
		{"quiet", Config{Quiet: true}, "", "warn"},
		{"verbose wins over env", Config{Verbose: true, LogLevel: "error"}, "", "debug"},
		{"both", Config{Verbose: true, Quiet: true}, "", "warn"},
		{"explicit wins", Config{Verbose: true}, "trace", "trace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config, tt.explicit))
		})
	}
}

func TestExecuteBanners(t *testing.T) {
	app := newTestApp(t)

	root := t.TempDir()
	path := filepath.Join(root, "geely-omsk.ru", "data", "banners.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`[{"imageUrl":"a.jpg","id":1}]`), 0o644))

	cmd := app.createRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"banners", "--root", root, "--format", "json"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, root, app.Config().Root)
	assert.Contains(t, out.String(), `"operation": "banners"`)
	assert.Contains(t, out.String(), `"changed": 1`)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"desktop": "a.jpg"`)
}

func TestExecuteDryRun(t *testing.T) {
	app := newTestApp(t)

	root := t.TempDir()
	path := filepath.Join(root, "geely-omsk.ru", "data", "banners.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`[{"imageUrl":"a.jpg"}]`), 0o644))

	cmd := app.createRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"banners", root, "--dry-run", "--format", "json"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"imageUrl":"a.jpg"}]`, string(data))
}

func TestExecuteVersion(t *testing.T) {
	app := newTestApp(t)

	cmd := app.createRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "sitekit version 1.0.0")
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	app := newTestApp(t)

	cmd := app.createRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"version", "--format", "xml"})
	assert.Error(t, cmd.Execute())
}
