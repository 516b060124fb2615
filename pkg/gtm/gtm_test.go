package gtm

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/document"
)

const export = `{
  "exportFormatVersion": 2,
  "containerVersion": {
    "variable": [
      {"name": "Page URL", "type": "u", "parameter": [{"type": "TEMPLATE", "key": "component", "value": "URL"}]},
      {"name": "Yandex Metrica ID", "type": "smm", "parameter": [
        {"type": "TEMPLATE", "key": "input", "value": "{{Page Hostname}}"},
        {"type": "LIST", "key": "map", "list": [
          {"type": "MAP", "map": [{"type": "TEMPLATE", "key": "key", "value": "haval-samara.ru"}, {"type": "TEMPLATE", "key": "value", "value": "111"}]},
          {"type": "MAP", "map": [{"type": "TEMPLATE", "key": "key", "value": "geely-samara.ru"}, {"type": "TEMPLATE", "key": "value", "value": "222"}]}
        ]}
      ]},
      {"name": "Yandex Metrika ID common", "type": "smm", "parameter": [
        {"type": "LIST", "key": "map", "list": [
          {"type": "MAP", "map": [{"type": "TEMPLATE", "key": "key", "value": "haval-samara.ru"}, {"type": "TEMPLATE", "key": "value", "value": "94754424"}]},
          {"type": "MAP", "map": [{"type": "TEMPLATE", "key": "key", "value": "geely-samara.ru"}, {"type": "TEMPLATE", "key": "value", "value": "333"}]},
          {"type": "MAP", "map": [{"type": "TEMPLATE", "key": "key", "value": "missing.ru"}, {"type": "TEMPLATE", "key": "value", "value": "444"}]}
        ]}
      ]},
      {"name": "GA4 ID", "type": "smm", "parameter": [
        {"type": "LIST", "key": "map", "list": [
          {"type": "MAP", "map": [{"type": "TEMPLATE", "key": "key", "value": "haval-samara.ru"}, {"type": "TEMPLATE", "key": "value", "value": "G-1"}]}
        ]}
      ]},
      {"name": "CallTouch Site ID", "type": "smm", "parameter": [
        {"type": "LIST", "key": "map", "list": [
          {"type": "MAP", "map": [{"type": "TEMPLATE", "key": "key", "value": "haval-samara.ru"}, {"type": "TEMPLATE", "key": "value", "value": "55"}]}
        ]}
      ]}
    ]
  }
}`

func loadExport(t *testing.T) *Export {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workspace.json")
	require.NoError(t, os.WriteFile(path, []byte(export), 0o644))
	e, err := Load(path)
	require.NoError(t, err)
	return e
}

func TestSites(t *testing.T) {
	sites := loadExport(t).Sites()
	require.Len(t, sites, 3)

	assert.Equal(t, "haval-samara.ru", sites[0].Name)
	assert.Equal(t, map[string]string{
		VarMetrika:       "111",
		VarMetrikaCommon: "94754424",
		VarGA4:           "G-1",
		VarCallTouchSite: "55",
	}, sites[0].Vars)
	assert.Equal(t, "geely-samara.ru", sites[1].Name)
	assert.Equal(t, "missing.ru", sites[2].Name)
}

func TestSitesCellOrder(t *testing.T) {
	var e Export
	e.ContainerVersion.Variable = []Variable{{
		Name: VarGA4,
		Type: SiteTableType,
		Parameter: []Parameter{{Type: "LIST", Key: "map", List: []ListItem{
			{Map: []Pair{{Key: "key", Value: "haval-samara.ru"}, {Key: "value", Value: "G-1"}}},
			{Map: []Pair{{Key: "value", Value: "G-2"}, {Key: "key", Value: "geely-samara.ru"}}},
			{Map: []Pair{{Key: "value", Value: "G-3"}}},
		}}},
	}}

	sites := e.Sites()
	require.Len(t, sites, 2)
	assert.Equal(t, Site{Name: "haval-samara.ru", Vars: map[string]string{VarGA4: "G-1"}}, sites[0])
	assert.Equal(t, Site{Name: "geely-samara.ru", Vars: map[string]string{VarGA4: "G-2"}}, sites[1])
}

func encode(t *testing.T, m *document.Map) string {
	t.Helper()
	out, err := document.Encode(m, "")
	require.NoError(t, err)
	return string(out)
}

func TestScripts(t *testing.T) {
	sites := loadExport(t).Sites()

	assert.Equal(t, `{"site":"haval-samara.ru","gtm":"",`+
		`"metrika":[{"id":"111","clickmap":true,"trackLinks":true,"accurateTrackBounce":true,"webvisor":true}],`+
		`"ga4":[{"id":"G-1"}],"re":"","vk-rtrg":[{"id":""}],"top.mail.ru":[{"id":""}],`+
		`"calltouch":{"mod_id":"","site_id":"55"},"konget":"","smartpoint":"",`+
		`"streamwood":{"swKey":"","swDomainKey":""},"widgets":[""]}`+"\n", encode(t, Scripts(sites[0])))

	geely := encode(t, Scripts(sites[1]))
	assert.Contains(t, geely, `"metrika":[{"id":"222","clickmap":true,"trackLinks":true,"accurateTrackBounce":true,"webvisor":true},`+
		`{"id":"333","clickmap":true,"trackLinks":true,"accurateTrackBounce":true}]`)
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	for _, site := range []string{"haval-samara.ru", "geely-samara.ru"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, site, "data"), 0o755))
	}

	report := Generate(context.Background(), root, loadExport(t))
	haval := filepath.Join(root, "haval-samara.ru", "data", "scripts.json")
	geely := filepath.Join(root, "geely-samara.ru", "data", "scripts.json")
	assert.Equal(t, []string{haval, geely}, report.Units(batch.StatusCreated))
	assert.Equal(t, []string{"missing.ru"}, report.Units(batch.StatusSkipped))

	data, err := os.ReadFile(haval)
	require.NoError(t, err)
	assert.Contains(t, string(data), "{\n    \"site\": \"haval-samara.ru\",\n")

	dry := Generate(context.Background(), root, loadExport(t), batch.WithDryRun(true))
	assert.Equal(t, 2, dry.Count(batch.StatusUnchanged))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}
