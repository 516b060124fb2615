// Package scrape reads model listings from a brand site with CSS
// selectors. Pages are fetched without a browser, so scenario steps that
// click or wait are reported and skipped.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/listings"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// ModelFromLink as the model selector takes the model name from the link.
const ModelFromLink = "img"

// Defaults for a scrape. A single attempt unless more are asked for.
const (
	DefaultRetries = 1
	DefaultDelay   = 2 * time.Second
)

// Selectors locate the listing parts. Model, Price and Link are evaluated
// inside each Item.
type Selectors struct {
	Item  string
	Model string
	Price string
	Link  string
}

// Fetcher downloads a page.
type Fetcher interface {
	Text(ctx context.Context, url string) (string, error)
}

// Scraper extracts listings of one brand from one page.
type Scraper struct {
	Client    Fetcher
	Brand     string
	URL       string
	Selectors Selectors
	Steps     []Step
	Retries   int
	Delay     time.Duration
}

// Run scrapes the page, retrying up to Retries times, and returns the
// listings sorted by id.
func (s *Scraper) Run(ctx context.Context) ([]listings.Listing, error) {
	logger := logging.FromContext(ctx)

	sel, ignored := Apply(s.Selectors, s.Steps)
	if len(ignored) > 0 {
		logger.Warn().Strs("steps", ignored).Msg("Browser steps are not executed")
	}
	if sel.Item == "" || sel.Model == "" || sel.Price == "" {
		return nil, errors.NewConfigError("scrape", "item, model and price selectors are required", nil)
	}

	retries := s.Retries
	if retries <= 0 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		logger.Info().Str("brand", s.Brand).Str("url", s.URL).Int("attempt", attempt).Int("of", retries).Msg("Scraping")
		items, err := s.once(ctx, sel)
		if err == nil {
			listings.Sort(items)
			return items, nil
		}
		lastErr = err
		logger.Warn().Err(err).Int("attempt", attempt).Msg("Attempt failed")

		if attempt < retries && s.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.Delay):
			}
		}
	}
	return nil, fmt.Errorf("%s: %w", strings.ToUpper(s.Brand), lastErr)
}

func (s *Scraper) once(ctx context.Context, sel Selectors) ([]listings.Listing, error) {
	html, err := s.Client.Text(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(s.URL)
	if err != nil {
		return nil, errors.NewConfigError("scrape", "invalid url "+s.URL, err)
	}
	return Extract(html, base, s.Brand, sel)
}

// Extract reads the listings of a page. base resolves relative links.
func Extract(html string, base *url.URL, brand string, sel Selectors) ([]listings.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.WrapParse("html", base.String(), err)
	}

	elements := doc.Find(sel.Item)
	if elements.Length() == 0 {
		return nil, errors.NewNotFoundError("elements", sel.Item)
	}

	var (
		out      []listings.Listing
		firstErr error
	)
	elements.EachWithBreak(func(_ int, el *goquery.Selection) bool {
		item, err := extractItem(el, base, brand, sel)
		if err != nil {
			firstErr = err
			return false
		}
		out = append(out, item)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func extractItem(el *goquery.Selection, base *url.URL, brand string, sel Selectors) (listings.Listing, error) {
	item := listings.Listing{Brand: brand}

	priceEl := el.Find(sel.Price).First()
	if priceEl.Length() == 0 {
		return item, fmt.Errorf("no price for selector %s", sel.Price)
	}
	item.Price = listings.Digits(ownText(priceEl))

	if sel.Link != "" {
		link, err := linkOf(el, base, sel.Link)
		if err != nil {
			return item, err
		}
		item.Link = listings.CleanLink(link, brand)
	}

	if sel.Model == ModelFromLink {
		model, err := listings.ModelFromLink(item.Link, brand)
		if err != nil {
			return item, err
		}
		item.Model = model
	} else {
		modelEl := el.Find(sel.Model).First()
		if modelEl.Length() == 0 {
			return item, fmt.Errorf("no model for selector %s", sel.Model)
		}
		text := modelEl.Text()
		if text == "" {
			return item, fmt.Errorf("empty model text for selector %s", sel.Model)
		}
		item.Model = listings.StripBrand(text, brand)
	}

	id, err := listings.ID(brand, item.Link)
	if err != nil {
		return item, err
	}
	item.ID = id
	return item, nil
}

// linkOf returns the absolute href of the item itself when it is a link,
// otherwise of its first descendant matching selector.
func linkOf(el *goquery.Selection, base *url.URL, selector string) (string, error) {
	href, ok := el.Attr("href")
	if !ok || href == "" {
		a := el.Find(selector).First()
		if a.Length() == 0 {
			return "", fmt.Errorf("no link for selector %s", selector)
		}
		href = a.AttrOr("href", "")
		if href == "" {
			return "", fmt.Errorf("empty href for selector %s", selector)
		}
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// ownText joins the trimmed direct text children of s, leaving out text of
// nested elements such as currency badges.
func ownText(s *goquery.Selection) string {
	var parts []string
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			parts = append(parts, strings.TrimSpace(c.Text()))
		}
	})
	return strings.TrimSpace(strings.Join(parts, " "))
}
