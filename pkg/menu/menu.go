// Package menu rebuilds data/menu.json of every site from the navigation
// bar of its live home page.
package menu

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ModelsMarker replaces the children of the models link; the site renders
// that submenu from models.json.
const ModelsMarker = "models"

// Link is one navigation entry.
type Link struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Item is a top-level navigation entry. Children is either ModelsMarker or
// a []Link, and is omitted when the entry has no submenu.
type Item struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	Children any    `json:"children,omitempty"`
}

var modelURLs = map[string]bool{
	"/models/": true,
	"models/":  true,
	"/models":  true,
}

// NormalizeURL makes a menu href site-absolute. Absolute and javascript
// URLs are returned as is.
func NormalizeURL(href string) string {
	switch {
	case strings.HasPrefix(href, "http"), strings.HasPrefix(href, "javascript"):
		return href
	case strings.HasPrefix(href, "#"):
		return "/" + href
	case !strings.HasPrefix(href, "/"):
		return "/" + href
	default:
		return href
	}
}

// Parse extracts the menu from a page. Top-level entries are the direct
// li children of the first list inside div#site_nav; a page without that
// block yields an empty menu.
func Parse(r io.Reader) ([]Item, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	items := []Item{}
	ul := doc.Find("div#site_nav").First().Find("ul").First()
	ul.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a.header-link").First()
		if a.Length() == 0 {
			a = li.Find("a.scroll-link").First()
		}
		if a.Length() == 0 {
			return
		}

		item := Item{URL: NormalizeURL(a.AttrOr("href", "")), Name: strippedText(a)}
		if modelURLs[item.URL] {
			item.Children = ModelsMarker
		} else if children := childLinks(li.Find("div").First()); len(children) > 0 {
			item.Children = children
		}
		items = append(items, item)
	})
	return items, nil
}

func childLinks(submenu *goquery.Selection) []Link {
	var links []Link
	submenu.Find("a.header-child-link").Each(func(_ int, a *goquery.Selection) {
		links = append(links, Link{URL: NormalizeURL(a.AttrOr("href", "")), Name: strippedText(a)})
	})
	return links
}

// strippedText joins the trimmed text nodes of s without separators.
func strippedText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(strings.TrimSpace(c.Text()))
			return
		}
		b.WriteString(strippedText(c))
	})
	return b.String()
}
