// Package scrape provides the scrape command.
package scrape

import (
	"dario.cat/mergo"
	"github.com/spf13/cobra"

	"github.com/alexsab-ru/sitekit/internal/cmd/application"
	"github.com/alexsab-ru/sitekit/internal/cmd/cmdutil"
	"github.com/alexsab-ru/sitekit/internal/config"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/listings"
	"github.com/alexsab-ru/sitekit/pkg/scrape"
)

// Flags override the scrape settings from the environment.
type Flags struct {
	config.Scrape
	Retries int
}

// NewCommand creates the scrape command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{Retries: scrape.DefaultRetries}
	var outputs string

	cmd := &cobra.Command{
		Use:     "scrape",
		GroupID: "remote",
		Short:   "Scrape car listings from a dealer page",
		Long: `Scrape downloads a listing page and extracts one record per item: id, brand,
model, price and link. The records are written to every output path; next
to a cars.json a federal-models_price.json copy is written as well.

Settings default to the URL, BRAND, ITEM_CSS, MODEL_CSS, PRICE_CSS,
LINK_CSS, SCRAPE_JSON and OUTPUT_PATHS environment variables. Set MODEL_CSS
to "img" to take the model from the link. Browser steps in SCRAPE_JSON are
reported and ignored except for selector overrides.`,
		Example: `  BRAND=haval URL=https://example.ru/cars ITEM_CSS=.car ... sitekit scrape
  sitekit scrape --brand wey --url https://example.ru/wey --output src/a/data/cars.json,src/b/data/cars.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.Config()
			s, err := merge(cfg.Scrape, flags.Scrape)
			if err != nil {
				return err
			}
			if outputs != "" {
				s.OutputPaths = config.SplitList(outputs)
			}
			if len(s.OutputPaths) == 0 {
				return errors.NewConfigError("scrape", "no output paths", nil)
			}

			var steps []scrape.Step
			if s.ScrapeJSON != "" {
				if steps, err = scrape.LoadSteps(s.ScrapeJSON); err != nil {
					return err
				}
			}

			ctx := cmdutil.Context(cmd, app)
			scraper := &scrape.Scraper{
				Client: app.HTTPClient(),
				Brand:  s.Brand,
				URL:    s.URL,
				Selectors: scrape.Selectors{
					Item:  s.ItemCSS,
					Model: s.ModelCSS,
					Price: s.PriceCSS,
					Link:  s.LinkCSS,
				},
				Steps:   steps,
				Retries: flags.Retries,
				Delay:   scrape.DefaultDelay,
			}
			items, err := scraper.Run(ctx)
			if err != nil {
				app.ErrorLog().Record(err)
				app.Logger().Error().Err(err).Str("brand", s.Brand).Msg("Scrape failed")
				if cfg.Strict {
					return err
				}
				return nil
			}

			report := listings.Save(ctx, items, s.OutputPaths, app.ErrorLog(), app.BatchOptions()...)
			return cmdutil.Finish(cmd, app, report)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.URL, "url", "", "listing page")
	f.StringVar(&flags.Brand, "brand", "", "brand of the listed cars")
	f.StringVar(&flags.ItemCSS, "item", "", "selector of one listing")
	f.StringVar(&flags.ModelCSS, "model", "", `selector of the model name, or "img" to take it from the link`)
	f.StringVar(&flags.PriceCSS, "price", "", "selector of the price")
	f.StringVar(&flags.LinkCSS, "link", "", "selector of the link")
	f.StringVar(&flags.ScrapeJSON, "steps", "", "steps file or inline JSON")
	f.StringVar(&outputs, "output", "", "comma separated output paths")
	f.IntVar(&flags.Retries, "retries", flags.Retries, "attempts before giving up")

	return cmd
}

// merge returns override with its empty fields taken from base.
func merge(base, override config.Scrape) (config.Scrape, error) {
	if err := mergo.Merge(&override, base); err != nil {
		return base, errors.NewConfigError("scrape", "cannot merge flags", err)
	}
	return override, nil
}
