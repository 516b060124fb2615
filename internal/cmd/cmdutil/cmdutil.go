// Package cmdutil holds the helpers shared by sitekit commands.
package cmdutil

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexsab-ru/sitekit/internal/cmd/application"
	"github.com/alexsab-ru/sitekit/internal/cmd/output"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// Context returns the command context carrying the application logger.
func Context(cmd *cobra.Command, app application.Application) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithCommand(logging.WithLogger(ctx, app.Logger()), cmd.CommandPath())
}

// Finish prints report in the configured format. Failed units only fail the
// command in strict mode.
func Finish(cmd *cobra.Command, app application.Application, report *batch.Report) error {
	if report == nil {
		return nil
	}
	if report.EndTime.IsZero() {
		report.Finalize()
	}

	format := output.DetectFormat(app.OutputFormat())
	if err := output.WriteReport(cmd.OutOrStdout(), format, report); err != nil {
		return err
	}

	app.Logger().Info().
		Str("operation", report.Operation).
		Int("written", report.Written()).
		Int("failed", report.Count(batch.StatusFailed)).
		Dur("duration", report.Duration()).
		Msg("Done")

	if app.Config().Strict {
		return report.Err()
	}
	return nil
}
