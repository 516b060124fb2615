// Package application provides the application interface for sitekit commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            report, err := banners.Migrate(cmd.Context(), app.Config().Root, app.BatchOptions()...)
//	            if err != nil {
//	                return err
//	            }
//	            return cmdutil.Finish(cmd, app, report)
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/alexsab-ru/sitekit/internal/config"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/fetch"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// Application provides what commands need from the application.
// The App struct from cmd/sitekit/app implements this interface.
type Application interface {
	// Config returns the resolved configuration.
	Config() *config.Config

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// ErrorLog returns the append-only log of external failures.
	ErrorLog() *logging.ErrorLog

	// HTTPClient returns a client with the configured timeout and user
	// agent, further customized by opts.
	HTTPClient(opts ...fetch.Option) *fetch.Client

	// BatchOptions returns the options shared by every batch operation.
	BatchOptions() []batch.Option

	// Version returns the application version string.
	Version() string
}
