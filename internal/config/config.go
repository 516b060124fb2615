// Package config loads sitekit configuration from flags, environment
// variables, .env files and an optional YAML config file.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/errors"
)

// DefaultGitHubOrg owns the site repositories.
const DefaultGitHubOrg = "alexsab-ru"

// Config holds every sitekit option.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string
	DryRun  bool
	Strict  bool

	// Config file
	ConfigFile string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// Site data layout
	Root        string
	ModelsPath  string
	MappingPath string
	SectionsDir string
	ErrorLog    string

	// GitHub settings source
	GitHubOrg   string
	GitHubAPI   string
	GitHubToken string

	// HTTP
	HTTPTimeout time.Duration
	UserAgent   string

	Scrape Scrape

	// InputPaths are the files merged by the combine command.
	InputPaths []string
}

// Scrape configures a listing scrape. Field names follow the environment
// variables used by the CI jobs (URL, BRAND, ITEM_CSS, ...).
type Scrape struct {
	URL         string
	Brand       string
	ItemCSS     string
	ModelCSS    string
	PriceCSS    string
	LinkCSS     string
	ScrapeJSON  string
	OutputPaths []string
}

// Load reads configuration in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.sitekit.yaml or ./.sitekit.yaml)
// 5. Defaults
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path falls back
// to the CONFIG environment variable and the standard locations.
func LoadFile(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+path, err)
		}
		return FromViper(v), nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName(".sitekit")

	// A missing config file is fine.
	_ = v.ReadInConfig()

	return FromViper(v), nil
}

// FromViper builds a Config from the values known to v.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no-color"),
		Format:     v.GetString("format"),
		DryRun:     v.GetBool("dry-run"),
		Strict:     v.GetBool("strict"),
		ConfigFile: v.ConfigFileUsed(),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),

		Root:        v.GetString("root"),
		ModelsPath:  v.GetString("models_path"),
		MappingPath: v.GetString("mapping_path"),
		SectionsDir: v.GetString("sections_dir"),
		ErrorLog:    v.GetString("error_log"),

		GitHubOrg:   v.GetString("github_org"),
		GitHubAPI:   v.GetString("github_api"),
		GitHubToken: v.GetString("github_token"),

		HTTPTimeout: v.GetDuration("http_timeout"),
		UserAgent:   v.GetString("user_agent"),

		Scrape: Scrape{
			URL:         v.GetString("url"),
			Brand:       v.GetString("brand"),
			ItemCSS:     v.GetString("item_css"),
			ModelCSS:    v.GetString("model_css"),
			PriceCSS:    v.GetString("price_css"),
			LinkCSS:     v.GetString("link_css"),
			ScrapeJSON:  v.GetString("scrape_json"),
			OutputPaths: SplitList(v.GetString("output_paths")),
		},
		InputPaths: SplitList(v.GetString("input_paths")),
	}
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	return FromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
	v.SetDefault("root", constants.DefaultRoot)
	v.SetDefault("models_path", filepath.Join(constants.DefaultRoot, constants.ModelsFile))
	v.SetDefault("mapping_path", filepath.Join(constants.DefaultRoot, constants.ModelMappingFile))
	v.SetDefault("sections_dir", filepath.Join(constants.DefaultRoot, constants.ModelSectionsDir))
	v.SetDefault("error_log", constants.DefaultErrorLog)
	v.SetDefault("github_org", DefaultGitHubOrg)
	v.SetDefault("github_api", constants.GitHubAPIURL)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("user_agent", constants.DefaultUserAgent)
}

// UpdateFromFlags applies parsed global flags. Flag values take precedence
// over the config file and the environment.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, root string, dryRun, strict bool) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	c.DryRun = c.DryRun || dryRun
	c.Strict = c.Strict || strict
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if root != "" {
		c.Root = root
	}
}

// SplitList splits a comma separated value, dropping blank items.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
