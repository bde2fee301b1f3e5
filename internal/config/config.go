package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"creator-store-check/internal/match"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "storecheck.yaml"

// Config holds all storecheck settings.
type Config struct {
	// StoreDir is the directory holding the storefront files.
	StoreDir string `yaml:"store_dir"`
	// CatalogPath defaults to <parent of StoreDir>/CreatorMarketLiberation/market-directory/jimmy-catalog.json.
	CatalogPath string `yaml:"catalog_path"`
	// OutDir receives reports and history. Defaults to StoreDir.
	OutDir string `yaml:"out_dir"`
	// Domain must be mentioned by the domain config file.
	Domain string `yaml:"domain"`

	Files      FilesConfig      `yaml:"files"`
	Payment    PaymentConfig    `yaml:"payment"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Revenue    RevenueConfig    `yaml:"revenue"`
	Compliance ComplianceConfig `yaml:"compliance"`
	Summary    SummaryConfig    `yaml:"summary"`
	History    HistoryConfig    `yaml:"history"`
	Watch      WatchConfig      `yaml:"watch"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`

	// NextSteps is printed after every summary.
	NextSteps []string `yaml:"next_steps"`
}

// FilesConfig names the storefront files. Required lists them in the order
// they are reported.
type FilesConfig struct {
	StoreHTML     string   `yaml:"store_html"`
	PaymentSystem string   `yaml:"payment_system"`
	DomainConfig  string   `yaml:"domain_config"`
	DeployGuide   string   `yaml:"deploy_guide"`
	Required      []string `yaml:"required"`
}

type PaymentConfig struct {
	Rules []match.Rule `yaml:"rules"`
}

// CatalogSection locates one list of books inside the catalog object.
// BooksField is set when the section is an object wrapping the list.
type CatalogSection struct {
	Key        string `yaml:"key"`
	BooksField string `yaml:"books_field,omitempty"`
}

type CatalogConfig struct {
	Sections []CatalogSection `yaml:"sections"`
	MinBooks int              `yaml:"min_books"`
	// MinValue is exclusive: the total must be strictly greater.
	MinValue float64 `yaml:"min_value"`
}

type Scenario struct {
	Name          string `yaml:"name"`
	SalesPerMonth int    `yaml:"sales_per_month"`
}

type RevenueConfig struct {
	PercentFee    float64    `yaml:"percent_fee"`
	FixedFee      float64    `yaml:"fixed_fee"`
	MonthsPerYear int        `yaml:"months_per_year"`
	Scenarios     []Scenario `yaml:"scenarios"`
}

type ComplianceConfig struct {
	Rules      []match.Rule `yaml:"rules"`
	MinPassing int          `yaml:"min_passing"`
}

// SummaryConfig holds the success-rate thresholds, in percent.
type SummaryConfig struct {
	ReadyRate  float64 `yaml:"ready_rate"`
	MostlyRate float64 `yaml:"mostly_rate"`
}

type HistoryConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Dir        string `yaml:"dir"`
	MaxEntries int    `yaml:"max_entries"`
}

type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		StoreDir: ".",
		Domain:   "thefortthatholds.xyz",

		Files: FilesConfig{
			StoreHTML:     "index.html",
			PaymentSystem: "payment-system.js",
			DomainConfig:  "domain-config.js",
			DeployGuide:   "deploy-to-domain.md",
			Required: []string{
				"index.html",
				"payment-system.js",
				"domain-config.js",
				"deploy-to-domain.md",
			},
		},

		Payment: PaymentConfig{
			Rules: []match.Rule{
				{Name: "stripe_integration", Any: []match.Term{match.Folded("stripe")}},
				{Name: "revenue_calculation", Any: []match.Term{match.Exact("jimmyRevenue"), match.Folded("creator")}},
				{Name: "secure_downloads", Any: []match.Term{match.Exact("downloadToken")}},
				{Name: "email_delivery", Any: []match.Term{match.Folded("email")}},
				{Name: "book_catalog", Any: []match.Term{match.Exact("bookCatalog")}},
			},
		},

		Catalog: CatalogConfig{
			Sections: []CatalogSection{
				{Key: "resonance_collective_trilogy", BooksField: "books"},
				{Key: "fiction"},
				{Key: "trauma_workbooks"},
			},
			MinBooks: 14,
			MinValue: 200,
		},

		Revenue: RevenueConfig{
			PercentFee:    0.029,
			FixedFee:      0.30,
			MonthsPerYear: 12,
			Scenarios: []Scenario{
				{Name: "conservative", SalesPerMonth: 10},
				{Name: "moderate", SalesPerMonth: 50},
				{Name: "breakthrough", SalesPerMonth: 200},
			},
		},

		Compliance: ComplianceConfig{
			Rules: []match.Rule{
				{Name: "no_isbn_required", Any: []match.Term{match.Exact("ISBN-Free"), match.Exact("No ISBN")}},
				{Name: "no_gatekeepers", Any: []match.Term{match.Folded("gatekeepers"), match.Folded("corporate")}},
				{Name: "creator_sovereignty", All: []match.Term{match.Folded("sovereignty")}},
				{
					Name: "100_percent_revenue",
					All:  []match.Term{match.Exact("100%")},
					Any:  []match.Term{match.Folded("creator"), match.Folded("revenue")},
				},
				{
					Name: "anti_platform",
					All:  []match.Term{match.Folded("platform")},
					Any:  []match.Term{match.Folded("anti"), match.Folded("no")},
				},
			},
			MinPassing: 3,
		},

		Summary: SummaryConfig{
			ReadyRate:  85,
			MostlyRate: 70,
		},

		History: HistoryConfig{
			Enabled:    true,
			Dir:        "history",
			MaxEntries: 200,
		},

		Watch: WatchConfig{
			Debounce: "500ms",
		},

		Server: ServerConfig{
			Addr: ":8085",
		},

		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},

		NextSteps: []string{
			"Deploy store to thefortthatholds.xyz",
			"Set up Stripe payment processing",
			"Upload EPUB files for download",
			"Launch marketing campaign",
			"START MAKING MONEY!",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults when the file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("STORECHECK_STORE_DIR")); v != "" {
		c.StoreDir = v
	}
	if v := strings.TrimSpace(os.Getenv("STORECHECK_CATALOG")); v != "" {
		c.CatalogPath = v
	}
	if v := strings.TrimSpace(os.Getenv("STORECHECK_OUT_DIR")); v != "" {
		c.OutDir = v
	}
	if v := strings.TrimSpace(os.Getenv("STORECHECK_ADDR")); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("STORECHECK_LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
}

// Validate rejects settings the checks cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.StoreDir) == "" {
		errs = append(errs, errors.New("store_dir must not be empty"))
	}
	if c.Catalog.MinBooks < 0 {
		errs = append(errs, fmt.Errorf("catalog.min_books must be >= 0, got %d", c.Catalog.MinBooks))
	}
	if c.Catalog.MinValue < 0 {
		errs = append(errs, fmt.Errorf("catalog.min_value must be >= 0, got %v", c.Catalog.MinValue))
	}
	for i, s := range c.Catalog.Sections {
		if strings.TrimSpace(s.Key) == "" {
			errs = append(errs, fmt.Errorf("catalog.sections[%d]: key must not be empty", i))
		}
	}
	if c.Revenue.PercentFee < 0 || c.Revenue.FixedFee < 0 {
		errs = append(errs, errors.New("revenue fees must be >= 0"))
	}
	if c.Revenue.MonthsPerYear <= 0 {
		errs = append(errs, fmt.Errorf("revenue.months_per_year must be > 0, got %d", c.Revenue.MonthsPerYear))
	}
	for i, s := range c.Revenue.Scenarios {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Errorf("revenue.scenarios[%d]: name must not be empty", i))
		}
		if s.SalesPerMonth < 0 {
			errs = append(errs, fmt.Errorf("revenue.scenarios[%d]: sales_per_month must be >= 0", i))
		}
	}
	if c.Compliance.MinPassing < 0 || c.Compliance.MinPassing > len(c.Compliance.Rules) {
		errs = append(errs, fmt.Errorf("compliance.min_passing must be between 0 and %d, got %d",
			len(c.Compliance.Rules), c.Compliance.MinPassing))
	}
	if c.Summary.MostlyRate > c.Summary.ReadyRate {
		errs = append(errs, errors.New("summary.mostly_rate must not exceed summary.ready_rate"))
	}
	if _, err := c.DebounceDuration(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ResolvedCatalogPath returns CatalogPath, or the sibling-directory default
// derived from StoreDir.
func (c *Config) ResolvedCatalogPath() string {
	if strings.TrimSpace(c.CatalogPath) != "" {
		return c.CatalogPath
	}
	store := c.StoreDir
	if abs, err := filepath.Abs(store); err == nil {
		store = abs
	}
	return filepath.Join(filepath.Dir(store), "CreatorMarketLiberation", "market-directory", "jimmy-catalog.json")
}

// ResolvedOutDir returns OutDir, falling back to StoreDir.
func (c *Config) ResolvedOutDir() string {
	if strings.TrimSpace(c.OutDir) != "" {
		return c.OutDir
	}
	return c.StoreDir
}

// HistoryDir returns History.Dir, relative to the output directory unless absolute.
func (c *Config) HistoryDir() string {
	if filepath.IsAbs(c.History.Dir) {
		return c.History.Dir
	}
	return filepath.Join(c.ResolvedOutDir(), c.History.Dir)
}

// StorePath joins a file name onto StoreDir.
func (c *Config) StorePath(name string) string {
	return filepath.Join(c.StoreDir, name)
}

func (c *Config) DebounceDuration() (time.Duration, error) {
	if strings.TrimSpace(c.Watch.Debounce) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("watch.debounce: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("watch.debounce must be >= 0, got %s", d)
	}
	return d, nil
}
