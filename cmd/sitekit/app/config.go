package app

import (
	"github.com/alexsab-ru/sitekit/internal/config"
)

// Config is the sitekit configuration shared with the commands.
type Config = config.Config

// LoadConfig loads configuration from flags, the environment, .env files,
// the config file and defaults, in that order of precedence.
func LoadConfig() (*Config, error) {
	return config.Load()
}
