package settings

import "regexp"

var (
	constPattern        = regexp.MustCompile(`export const (\w+)\s*=\s*['"](.*?)['"];`)
	connectFormsPattern = regexp.MustCompile(`connectForms\(['"](.*?)['"],`)
	recaptchaPattern    = regexp.MustCompile(`grecaptcha\.execute\(['"](.*?)['"]`)
	astroSitePattern    = regexp.MustCompile(`site:\s*['"]([^'"]+)['"]`)
)

// AppValues are the values read from src/js/app.js.
type AppValues struct {
	ConnectFormsURL string
	RecaptchaKey    string
}

// ExtractConsts returns every `export const NAME = '...';` string constant.
// A later declaration of the same name wins.
func ExtractConsts(content string) map[string]string {
	consts := make(map[string]string)
	for _, m := range constPattern.FindAllStringSubmatch(content, -1) {
		consts[m[1]] = m[2]
	}
	return consts
}

// ExtractApp returns the first connectForms URL and grecaptcha key in content.
func ExtractApp(content string) AppValues {
	var v AppValues
	if m := connectFormsPattern.FindStringSubmatch(content); m != nil {
		v.ConnectFormsURL = m[1]
	}
	if m := recaptchaPattern.FindStringSubmatch(content); m != nil {
		v.RecaptchaKey = m[1]
	}
	return v
}
