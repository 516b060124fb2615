package listings

import (
	"context"
	"os"
	"path/filepath"

	"github.com/alexsab-ru/sitekit/internal/fsutil"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// Combine loads every input and concatenates them into one list. Inputs
// holding a single value contribute that value.
func Combine(inputs []string) ([]any, error) {
	out := []any{}
	for _, path := range inputs {
		v, err := document.Load(path)
		if err != nil {
			return nil, err
		}
		if arr, ok := document.Array(v); ok {
			out = append(out, arr...)
		} else {
			out = append(out, v)
		}
	}
	return out, nil
}

// Save writes data to every output. Next to each cars.json a copy named
// federal-models_price.json is written and a stale models-price.json is
// removed. A failing output is recorded in errlog and does not stop the
// remaining ones.
func Save(ctx context.Context, data any, outputs []string, errlog *logging.ErrorLog, opts ...batch.Option) *batch.Report {
	options := batch.Apply(opts...)
	logger := logging.FromContext(ctx)

	report := batch.NewReport("listings")
	report.DryRun = options.DryRun()

	for _, path := range outputs {
		if err := write(report, path, data, options.DryRun()); err != nil {
			errlog.Record(err)
			report.Failed(path, err)
			continue
		}
		if filepath.Base(path) != constants.CarsFile {
			continue
		}

		dir := filepath.Dir(path)
		stale := filepath.Join(dir, constants.StalePricesFile)
		if fsutil.Exists(stale) {
			if !options.DryRun() {
				if err := os.Remove(stale); err != nil {
					errlog.Record(errors.WrapIO("delete", stale, err))
				}
			}
			logger.Info().Str("path", stale).Msg("Removed stale price file")
		}

		federal := filepath.Join(dir, constants.FederalPricesFile)
		if err := write(report, federal, data, options.DryRun()); err != nil {
			errlog.Record(err)
			report.Failed(federal, err)
		}
	}

	report.Finalize()
	return report
}

func write(report *batch.Report, path string, data any, dryRun bool) error {
	existed, changed, err := document.Sync(path, data, constants.IndentListing, dryRun)
	if err != nil {
		return err
	}
	report.Synced(path, existed, changed)
	return nil
}
