// Package app provides the application context and dependency management
// for the sitekit CLI. It centralizes configuration, logging and the shared
// collaborators handed to every command.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/alexsab-ru/sitekit/internal/cmd/application"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/fetch"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// App represents the sitekit application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	config *Config
	logger *zerolog.Logger

	// Error log (lazy-initialized)
	mu     sync.Mutex
	errlog *logging.ErrorLog
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "cannot load configuration", err)
	}
	app.config = config

	logger := NewLogger(config, "")
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// ErrorLog returns the append-only log of external failures, creating it
// on first use.
func (a *App) ErrorLog() *logging.ErrorLog {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.errlog == nil || a.errlog.Path() != a.config.ErrorLog {
		a.errlog = logging.NewErrorLog(a.config.ErrorLog)
	}
	return a.errlog
}

// HTTPClient returns a client with the configured timeout and user agent.
// opts are applied last.
func (a *App) HTTPClient(opts ...fetch.Option) *fetch.Client {
	base := []fetch.Option{
		fetch.WithTimeout(a.config.HTTPTimeout),
		fetch.WithUserAgent(a.config.UserAgent),
	}
	return fetch.New(append(base, opts...)...)
}

// BatchOptions returns the options shared by every batch operation.
func (a *App) BatchOptions() []batch.Option {
	return []batch.Option{batch.WithDryRun(a.config.DryRun)}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
