package application

import (
	"github.com/rs/zerolog"

	"github.com/alexsab-ru/sitekit/internal/config"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/fetch"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
//
// Example Usage:
//
//	cfg := config.Default()
//	cfg.Root = t.TempDir()
//	mock := &application.Mock{
//	    ConfigFunc: func() *config.Config { return cfg },
//	}
//	cmd := banners.NewCommand(mock)
type Mock struct {
	ConfigFunc       func() *config.Config
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	ErrorLogFunc     func() *logging.ErrorLog
	HTTPClientFunc   func(opts ...fetch.Option) *fetch.Client
	VersionFunc      func() string

	cfg *config.Config
}

// Config returns the config using the mock function or config.Default().
// The default is created once so that changes made by a test stick.
func (m *Mock) Config() *config.Config {
	if m.ConfigFunc != nil {
		return m.ConfigFunc()
	}
	if m.cfg == nil {
		m.cfg = config.Default()
	}
	return m.cfg
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// ErrorLog returns the error log using the mock function or one writing
// to the configured path.
func (m *Mock) ErrorLog() *logging.ErrorLog {
	if m.ErrorLogFunc != nil {
		return m.ErrorLogFunc()
	}
	return logging.NewErrorLog(m.Config().ErrorLog)
}

// HTTPClient returns a client using the mock function or a default client.
func (m *Mock) HTTPClient(opts ...fetch.Option) *fetch.Client {
	if m.HTTPClientFunc != nil {
		return m.HTTPClientFunc(opts...)
	}
	return fetch.New(opts...)
}

// BatchOptions derives the batch options from Config.
func (m *Mock) BatchOptions() []batch.Option {
	return []batch.Option{batch.WithDryRun(m.Config().DryRun)}
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
