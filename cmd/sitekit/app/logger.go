package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag (explicit)
//  2. -q/--quiet flag (warn), which also wins over -v
//  3. -v/--verbose flag (debug)
//  4. LOG_LEVEL environment variable
//  5. Default (info)
func NewLogger(config *Config, explicit string) zerolog.Logger {
	level := determineLogLevel(config, explicit)

	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
}

func determineLogLevel(config *Config, explicit string) string {
	if explicit != "" {
		return validateLogLevel(explicit)
	}

	if config.Verbose && config.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if config.Verbose {
		return "debug"
	}
	if config.Quiet {
		return "warn"
	}
	if config.LogLevel != "" {
		return validateLogLevel(config.LogLevel)
	}
	return "info"
}

// validateLogLevel returns level, or "info" when level is unknown.
func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	}
	fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", level, "info")
	return "info"
}
