package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsab-ru/sitekit/pkg/constants"
)

const constJS = `
export const BRAND = 'Geely';
export const SITE_NAME = "Geely Самара";
export const SITE_DESCR = 'Официальный дилер';
export const PHONE = '+7 (846) 000-00-00';
export const LOGO_WHITE = '/img/logo-white.svg';
export const LEGAL_INN = '';
export const NUMBER = 42;
`

const appJS = `
import { connectForms } from './forms';
connectForms('https://alexsab.ru/lead/', { debug: false });
grecaptcha.execute("6LcKEY", { action: 'submit' });
`

func TestExtractConsts(t *testing.T) {
	got := ExtractConsts(constJS)
	want := map[string]string{
		"BRAND":      "Geely",
		"SITE_NAME":  "Geely Самара",
		"SITE_DESCR": "Официальный дилер",
		"PHONE":      "+7 (846) 000-00-00",
		"LOGO_WHITE": "/img/logo-white.svg",
		"LEGAL_INN":  "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("consts mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractApp(t *testing.T) {
	assert.Equal(t, AppValues{ConnectFormsURL: "https://alexsab.ru/lead/", RecaptchaKey: "6LcKEY"}, ExtractApp(appJS))
	assert.Equal(t, AppValues{}, ExtractApp("console.log('no forms')"))
}

func TestFromSources(t *testing.T) {
	s := FromSources(ExtractConsts(constJS), ExtractApp(appJS))
	assert.Equal(t, "Geely", s.Brand)
	assert.Equal(t, "Geely Самара", s.SiteName)
	assert.Equal(t, "/img/logo-white.svg", s.LogoWhite)
	assert.Equal(t, "https://alexsab.ru/lead/", s.ConnectFormsLink)
	assert.Equal(t, "6LcKEY", s.GrecaptchaOpen)
	assert.Equal(t, constants.DefaultManagerPhoto, s.ManagerPhoto)
	assert.Equal(t, constants.DefaultMapBackground, s.MapBackground)
	assert.Equal(t, constants.DefaultModelBackground, s.ModelBackground)
	assert.Empty(t, s.LegalCity)
}

func TestMerge(t *testing.T) {
	t.Run("empty extraction falls back to persisted", func(t *testing.T) {
		fresh := FromSources(map[string]string{"BRAND": ""}, AppValues{})
		merged := Merge(fresh, Settings{Brand: "Geely"})
		assert.Equal(t, "Geely", merged.Brand)
	})

	t.Run("fresh value wins", func(t *testing.T) {
		merged := Merge(Settings{Brand: "Haval"}, Settings{Brand: "Geely", LegalCity: "Самара"})
		assert.Equal(t, "Haval", merged.Brand)
		assert.Equal(t, "Самара", merged.LegalCity)
	})

	t.Run("both empty stays empty", func(t *testing.T) {
		assert.Equal(t, Settings{}, Merge(Settings{}, Settings{}))
	})
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "settings.json")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"brand":"Geely","custom":"dropped"}`), 0o644))
	s, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, Settings{Brand: "Geely"}, s)

	require.NoError(t, Save(path, Settings{Brand: "Geely", SiteName: "Джили & Ко"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "{\n    \"brand\": \"Geely\",\n    \"site_name\": \"Джили & Ко\",\n")
	assert.NotContains(t, string(data), "custom")

	require.NoError(t, os.WriteFile(path, []byte(`{"brand":`), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
