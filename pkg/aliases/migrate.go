package aliases

import (
	"context"
	"fmt"

	"github.com/alexsab-ru/sitekit/internal/fsutil"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/document"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// Migrate reconciles the mapping file into the models file. The models file
// is backed up next to itself before it is replaced, and left untouched when
// the reconciliation changes nothing.
func Migrate(ctx context.Context, modelsPath, mappingPath string, opts ...batch.Option) (*batch.Report, *Result, error) {
	options := batch.Apply(opts...)
	logger := logging.FromContext(ctx)

	for _, path := range []string{modelsPath, mappingPath} {
		if !fsutil.Exists(path) {
			return nil, nil, errors.NewNotFoundError("file", path)
		}
	}

	rawModels, err := document.Load(modelsPath)
	if err != nil {
		return nil, nil, err
	}
	models, ok := document.Array(rawModels)
	if !ok {
		return nil, nil, errors.NewValidationError(modelsPath, nil, "expected an array")
	}

	rawMapping, err := document.Load(mappingPath)
	if err != nil {
		return nil, nil, err
	}
	mapping, ok := document.Object(rawMapping)
	if !ok {
		return nil, nil, errors.NewValidationError(mappingPath, nil, "expected an object")
	}

	result := Reconcile(models, mapping)

	report := batch.NewReport("aliases")
	report.DryRun = options.DryRun()
	for _, unit := range result.Changed {
		report.Changed(unit)
	}
	for _, skip := range result.Skipped {
		unit := skip.Brand + "/" + skip.Variant
		reason := skip.Reason
		if skip.Hint != "" {
			reason = fmt.Sprintf("%s (closest: %s)", reason, skip.Hint)
		}
		logger.Warn().Str("brand", skip.Brand).Str("variant", skip.Variant).Str("folder", skip.Folder).Str("hint", skip.Hint).Msg("Skipped mapping entry: " + skip.Reason)
		report.Skipped(unit, reason)
	}

	changed, err := document.Differs(modelsPath, result.Models, constants.IndentData)
	if err != nil {
		return nil, nil, err
	}
	if !changed {
		report.Unchanged(modelsPath)
		report.Finalize()
		return report, result, nil
	}
	if options.DryRun() {
		report.Changed(modelsPath)
		report.Finalize()
		return report, result, nil
	}

	backup, err := fsutil.Backup(modelsPath, options.Now())
	if err != nil {
		return nil, nil, err
	}
	if err := document.Write(modelsPath, result.Models, constants.IndentData); err != nil {
		return nil, nil, err
	}
	logger.Info().Str("backup", backup).Str("path", modelsPath).Msg("Models updated")
	report.Changed(modelsPath)
	report.Finalize()
	return report, result, nil
}
