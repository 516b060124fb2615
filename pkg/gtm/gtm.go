// Package gtm turns the per-site analytics ids kept in a Google Tag Manager
// workspace export into the scripts.json file of each site.
package gtm

import (
	"os"

	"github.com/titanous/json5"

	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/errors"
)

// SiteTableType is the GTM variable type of a site lookup table.
const SiteTableType = "smm"

// Lookup table variables read into scripts.json.
const (
	VarMetrika       = "Yandex Metrica ID"
	VarMetrikaCommon = "Yandex Metrika ID common"
	VarGA4           = "GA4 ID"
	VarVKRetarget    = "VK-RTRG ID"
	VarTopMail       = "VK Pixel Top.Mail.Ru ID"
	VarCallTouchMod  = "CallTouch Client ID"
	VarCallTouchSite = "CallTouch Site ID"
)

// SharedMetrika is the group-wide counter already loaded by every site.
const SharedMetrika = "94754424"

// Export is the part of a GTM workspace export that holds variables.
type Export struct {
	ContainerVersion struct {
		Variable []Variable `json:"variable"`
	} `json:"containerVersion"`
}

// Variable is a GTM variable.
type Variable struct {
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Parameter []Parameter `json:"parameter"`
}

// Parameter is a variable parameter; lookup tables are of type LIST.
type Parameter struct {
	Type string     `json:"type"`
	Key  string     `json:"key"`
	List []ListItem `json:"list"`
}

// ListItem is one row of a lookup table.
type ListItem struct {
	Map []Pair `json:"map"`
}

// Pair is a cell of a lookup table row.
type Pair struct {
	Type  string `json:"type"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Site holds the lookup values of one site domain.
type Site struct {
	Name string
	Vars map[string]string
}

// Load reads a workspace export.
func Load(path string) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("file", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	var e Export
	if err := json5.Unmarshal(data, &e); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return &e, nil
}

// Sites collects the site lookup tables of the export, in the order the
// sites first appear. In each row the "key" cell names the site and the
// "value" cell is stored under the variable name, whatever their order.
// Rows without a key are ignored.
func (e *Export) Sites() []Site {
	var (
		sites []Site
		index = make(map[string]int)
	)
	for _, v := range e.ContainerVersion.Variable {
		if v.Type != SiteTableType {
			continue
		}
		for _, p := range v.Parameter {
			if p.Type != "LIST" {
				continue
			}
			for _, row := range p.List {
				site, value, hasValue := row.cells()
				if site == "" {
					continue
				}
				i, ok := index[site]
				if !ok {
					i = len(sites)
					index[site] = i
					sites = append(sites, Site{Name: site, Vars: make(map[string]string)})
				}
				if hasValue {
					sites[i].Vars[v.Name] = value
				}
			}
		}
	}
	return sites
}

func (r ListItem) cells() (site, value string, hasValue bool) {
	for _, cell := range r.Map {
		switch cell.Key {
		case "key":
			site = cell.Value
		case "value":
			value, hasValue = cell.Value, true
		}
	}
	return site, value, hasValue
}

// Scripts builds the scripts.json document of a site. A site specific
// common counter, other than SharedMetrika, is added as a second metrika
// entry without webvisor.
func Scripts(site Site) *document.Map {
	out := document.NewMap()
	out.Set("site", site.Name)
	out.Set("gtm", "")

	metrika := []any{counter(site.Vars[VarMetrika], true)}
	if common := site.Vars[VarMetrikaCommon]; common != "" && common != SharedMetrika {
		metrika = append(metrika, counter(common, false))
	}
	out.Set("metrika", metrika)
	out.Set("ga4", []any{idOnly(site.Vars[VarGA4])})
	out.Set("re", "")
	out.Set("vk-rtrg", []any{idOnly(site.Vars[VarVKRetarget])})
	out.Set("top.mail.ru", []any{idOnly(site.Vars[VarTopMail])})

	calltouch := document.NewMap()
	calltouch.Set("mod_id", site.Vars[VarCallTouchMod])
	calltouch.Set("site_id", site.Vars[VarCallTouchSite])
	out.Set("calltouch", calltouch)

	out.Set("konget", "")
	out.Set("smartpoint", "")
	streamwood := document.NewMap()
	streamwood.Set("swKey", "")
	streamwood.Set("swDomainKey", "")
	out.Set("streamwood", streamwood)
	out.Set("widgets", []any{""})
	return out
}

func counter(id string, webvisor bool) *document.Map {
	m := document.NewMap()
	m.Set("id", id)
	m.Set("clickmap", true)
	m.Set("trackLinks", true)
	m.Set("accurateTrackBounce", true)
	if webvisor {
		m.Set("webvisor", true)
	}
	return m
}

func idOnly(id string) *document.Map {
	m := document.NewMap()
	m.Set("id", id)
	return m
}
