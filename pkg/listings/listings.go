// Package listings holds the model/price records scraped from brand sites
// and the helpers that turn raw page values into them.
package listings

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// QueryIDBrand keeps its model id in the query string of the model link.
const QueryIDBrand = "wey"

// Listing is one model with its current price.
type Listing struct {
	ID      string `json:"id"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Price   int64  `json:"price"`
	Benefit string `json:"benefit"`
	Link    string `json:"link"`
}

var nonDigits = regexp.MustCompile(`\D`)

// StripBrand removes every occurrence of brand, optionally followed by a
// dash, from s, ignoring case.
func StripBrand(s, brand string) string {
	if brand == "" {
		return strings.TrimSpace(s)
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(brand) + `-?`)
	return strings.TrimSpace(re.ReplaceAllString(s, ""))
}

// Digits keeps the digits of s and parses them. Text without digits is 0.
func Digits(s string) int64 {
	d := nonDigits.ReplaceAllString(s, "")
	if d == "" {
		return 0
	}
	n, err := strconv.ParseInt(d, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// CleanLink drops the query string unless the brand needs it for its ids.
func CleanLink(link, brand string) string {
	if brand == QueryIDBrand {
		return link
	}
	link, _, _ = strings.Cut(link, "?")
	return link
}

// lastSegment returns the last path segment of a link, ignoring one trailing slash.
func lastSegment(link string) string {
	link = strings.TrimSuffix(link, "/")
	return link[strings.LastIndex(link, "/")+1:]
}

// ID derives a listing id from the model link: "<brand>-<last segment>"
// with the brand removed from the segment. For QueryIDBrand the id is the
// value after the last "=".
func ID(brand, link string) (string, error) {
	segment := lastSegment(link)
	if brand == QueryIDBrand {
		id := segment[strings.LastIndex(segment, "=")+1:]
		if id == "" {
			return "", fmt.Errorf("empty id parameter in link %q", link)
		}
		return id, nil
	}
	if segment == "" {
		return "", fmt.Errorf("empty path in link %q", link)
	}
	return brand + "-" + StripBrand(segment, brand), nil
}

// ModelFromLink derives the model name from the last path segment of link.
func ModelFromLink(link, brand string) (string, error) {
	model := lastSegment(CleanLink(link, brand))
	if model == "" {
		return "", fmt.Errorf("empty model in link %q", link)
	}
	return StripBrand(model, brand), nil
}

// Sort orders listings by id.
func Sort(items []Listing) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
