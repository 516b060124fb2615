package menu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/fetch"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

const page = `<html><body>
<div id="site_nav">
  <ul>
    <li><a class="header-link" href="/models/">Модели</a>
      <div><a class="header-child-link" href="/models/x50/">X50</a></div>
    </li>
    <li><a class="header-link" href="javascript:void(0)">Покупателям <span>▾</span></a>
      <div>
        <a class="header-child-link" href="credit/">Кредит</a>
        <a class="header-child-link" href="#trade-in">Trade-in</a>
        <a href="/ignored/">Ignored</a>
      </div>
    </li>
    <li><a class="scroll-link" href="#contacts"> Контакты </a></li>
    <li><a class="header-link" href="https://t.me/dealer">Telegram</a><div></div></li>
    <li><span>no link</span></li>
    <li><a class="header-link" href="service">Сервис</a>
      <ul><li><a class="header-link" href="/nested/">Nested</a></li></ul>
    </li>
  </ul>
</div>
</body></html>`

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://example.com/a", "https://example.com/a"},
		{"javascript:void(0)", "javascript:void(0)"},
		{"#contacts", "/#contacts"},
		{"credit/", "/credit/"},
		{"/models/", "/models/"},
		{"", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeURL(tt.in), tt.in)
	}
}

func TestParse(t *testing.T) {
	items, err := Parse(strings.NewReader(page))
	require.NoError(t, err)

	want := []Item{
		{URL: "/models/", Name: "Модели", Children: ModelsMarker},
		{URL: "javascript:void(0)", Name: "Покупателям▾", Children: []Link{
			{URL: "/credit/", Name: "Кредит"},
			{URL: "/#trade-in", Name: "Trade-in"},
		}},
		{URL: "/#contacts", Name: "Контакты"},
		{URL: "https://t.me/dealer", Name: "Telegram"},
		{URL: "/service", Name: "Сервис"},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWithoutNav(t *testing.T) {
	items, err := Parse(strings.NewReader("<html><body><ul><li>x</li></ul></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/geely.ru/":
			_, _ = w.Write([]byte(page))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	root := t.TempDir()
	for _, dir := range []string{"geely.ru/data", "haval.ru/data", "alexsab.ru/data", "empty.ru"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	logPath := filepath.Join(t.TempDir(), "output.txt")
	logging.DisableLoggingForTest(t)
	u := Updater{
		Client:  fetch.New(),
		Log:     logging.NewErrorLog(logPath),
		URL:     func(folder string) string { return server.URL + "/" + folder + "/" },
		Exclude: "alexsab",
	}

	report, err := u.Update(context.Background(), root)
	require.NoError(t, err)

	menuPath := filepath.Join(root, "geely.ru", "data", "menu.json")
	assert.Equal(t, []string{menuPath}, report.Units(batch.StatusCreated))
	assert.Equal(t, []string{"haval.ru"}, report.Units(batch.StatusFailed))
	assert.Equal(t, []string{"alexsab.ru", "empty.ru"}, report.Units(batch.StatusSkipped))

	data, err := os.ReadFile(menuPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"url\": \"/models/\",\n    \"name\": \"Модели\",\n    \"children\": \"models\"\n  },"))

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "500")

	again, err := u.Update(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{menuPath}, again.Units(batch.StatusUnchanged))
}

func TestUpdateMissingRoot(t *testing.T) {
	_, err := Updater{Client: fetch.New()}.Update(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
