// Package constants provides shared constants used throughout sitekit:
// file names of the site data layout, permissions, timeouts and default
// asset URLs. Values that must agree between commands live here.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout is the timeout for a single fetch of a dealer page or API call
	DefaultHTTPTimeout = 30 * time.Second

	// MenuFetchTimeout is the timeout used when downloading a site to parse its menu
	MenuFetchTimeout = 10 * time.Second

	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Indentation used when serializing JSON documents.
const (
	// IndentData is used for migrated site data (banners, settings, models)
	IndentData = "    "

	// IndentListing is used for scraped listings and dealer model files
	IndentListing = "  "

	// IndentPlaceholder is used for generated placeholder files
	IndentPlaceholder = "  "

	// IndentMenu is used for parsed site menus
	IndentMenu = "  "
)

// Site data layout
const (
	// DefaultRoot is the directory holding one folder per site
	DefaultRoot = "src"

	// DataDir is the per-site data directory name
	DataDir = "data"

	// BannersFile is the banner list migrated by the banners command
	BannersFile = "banners.json"

	// SettingsFile is the per-site settings file
	SettingsFile = "settings.json"

	// ModelsFile is the canonical model list and the per-dealer model selection
	ModelsFile = "models.json"

	// ModelMappingFile is the alias source exported from the accounting system
	ModelMappingFile = "model_mapping.json"

	// ModelSectionsDir holds one YAML file per model
	ModelSectionsDir = "model-sections"

	// ModelSectionsSource is the legacy per-site sections file
	ModelSectionsSource = "models-sections.yml"

	// ScriptsFile receives analytics counters generated from GTM
	ScriptsFile = "scripts.json"

	// MenuFile receives the parsed site navigation
	MenuFile = "menu.json"

	// DisclaimerFile is the per-site federal disclaimer placeholder
	DisclaimerFile = "federal-disclaimer.json"

	// CarsFile is the scraped listing file
	CarsFile = "cars.json"

	// FederalPricesFile mirrors cars.json for federal price disclaimers
	FederalPricesFile = "federal-models_price.json"

	// AllPricesFile is an alternative price source for disclaimers
	AllPricesFile = "all-prices.json"

	// StalePricesFile is removed whenever cars.json is rewritten
	StalePricesFile = "models-price.json"

	// DefaultErrorLog is the append-only log of external failures
	DefaultErrorLog = "output.txt"
)

// Format constants
const (
	// TimeFormatBackup is the timestamp embedded in backup file names
	TimeFormatBackup = "20060102-150405"
)

// GitHub constants
const (
	// GitHubAPIURL is the default GitHub REST endpoint
	GitHubAPIURL = "https://api.github.com"

	// GitHubPageSize is the page size used when listing organization repositories
	GitHubPageSize = 100
)

// Default assets written into every settings.json.
const (
	// DefaultManagerPhoto is shown when a dealer has no manager photo
	DefaultManagerPhoto = "https://cdn.alexsab.ru/defaults/manager.webp"

	// DefaultMapBackground is the placeholder behind the contacts map
	DefaultMapBackground = "https://cdn.alexsab.ru/defaults/map-background.webp"

	// DefaultModelBackground is the fallback model card background
	DefaultModelBackground = "https://cdn.alexsab.ru/defaults/model-background.webp"
)

// DefaultUserAgent is sent with every outgoing request; some dealer sites reject bare clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
