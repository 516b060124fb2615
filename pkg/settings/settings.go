// Package settings regenerates the per-site settings.json from the constants
// declared in each site's source repository.
//
// Extraction is per field and best effort: a constant that cannot be found
// yields an empty value, and Merge then keeps whatever the persisted file
// already had for that field.
package settings

import (
	"encoding/json"
	"os"

	"dario.cat/mergo"

	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/errors"
)

// Settings is the fixed set of fields stored in settings.json. Fields not
// listed here are not carried over from a persisted file.
type Settings struct {
	Brand                   string `json:"brand"`
	SiteName                string `json:"site_name"`
	SiteDescription         string `json:"site_description"`
	LegalEntity             string `json:"legal_entity"`
	LegalINN                string `json:"legal_inn"`
	LegalCity               string `json:"legal_city"`
	LegalCityWhere          string `json:"legal_city_where"`
	PhoneCommon             string `json:"phone_common"`
	YandexWidgetOrgnization string `json:"yandex_widget_orgnization"`
	HeaderTopLine           string `json:"header_top_line"`
	Favicon                 string `json:"favicon"`
	Logo                    string `json:"logo"`
	LogoWhite               string `json:"logo_white"`
	LogoDark                string `json:"logo_dark"`
	LogoMobile              string `json:"logo_mobile"`
	ConnectFormsLink        string `json:"connectforms_link"`
	GrecaptchaOpen          string `json:"grecaptcha_open"`
	ManagerPhoto            string `json:"manager_photo"`
	MapBackground           string `json:"map_background"`
	ModelBackground         string `json:"model_background"`
}

// constFields maps const.js export names to the setter of their field.
var constFields = map[string]func(*Settings, string){
	"BRAND":                   func(s *Settings, v string) { s.Brand = v },
	"SITE_NAME":               func(s *Settings, v string) { s.SiteName = v },
	"SITE_DESCR":              func(s *Settings, v string) { s.SiteDescription = v },
	"LEGAL_ENTITY":            func(s *Settings, v string) { s.LegalEntity = v },
	"LEGAL_INN":               func(s *Settings, v string) { s.LegalINN = v },
	"LEGAL_CITY":              func(s *Settings, v string) { s.LegalCity = v },
	"LEGAL_CITY_WHERE":        func(s *Settings, v string) { s.LegalCityWhere = v },
	"PHONE":                   func(s *Settings, v string) { s.PhoneCommon = v },
	"LINK_WIDGET_ORGNIZATION": func(s *Settings, v string) { s.YandexWidgetOrgnization = v },
	"HEADER_TOP_LINE":         func(s *Settings, v string) { s.HeaderTopLine = v },
	"FAVICON":                 func(s *Settings, v string) { s.Favicon = v },
	"LOGO":                    func(s *Settings, v string) { s.Logo = v },
	"LOGO_WHITE":              func(s *Settings, v string) { s.LogoWhite = v },
	"LOGO_DARK":               func(s *Settings, v string) { s.LogoDark = v },
	"LOGO_MOBILE":             func(s *Settings, v string) { s.LogoMobile = v },
}

// FromSources builds freshly extracted settings from the const.js exports and
// the app.js connect-forms URL and captcha key. The default CDN assets are
// always filled in.
func FromSources(consts map[string]string, app AppValues) Settings {
	s := Settings{
		ConnectFormsLink: app.ConnectFormsURL,
		GrecaptchaOpen:   app.RecaptchaKey,
		ManagerPhoto:     constants.DefaultManagerPhoto,
		MapBackground:    constants.DefaultMapBackground,
		ModelBackground:  constants.DefaultModelBackground,
	}
	for name, set := range constFields {
		if v, ok := consts[name]; ok {
			set(&s, v)
		}
	}
	return s
}

// Merge returns fresh with every empty field taken from persisted.
func Merge(fresh, persisted Settings) Settings {
	out := fresh
	if err := mergo.Merge(&out, persisted); err != nil {
		return fresh
	}
	return out
}

// Load reads a persisted settings file. A missing file yields empty settings.
func Load(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, errors.WrapIO("read", path, err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, errors.WrapParse("json", path, err)
	}
	return s, nil
}

// Save writes s to path with four-space indentation.
func Save(path string, s Settings) error {
	return document.Write(path, s, constants.IndentData)
}
