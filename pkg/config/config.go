package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // timezone lookups must not depend on the host

	"gopkg.in/yaml.v3"

	"github.com/umputun/eventscope/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:eventscope.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Scheduler SchedulerConfig `yaml:"scheduler" json:"scheduler" jsonschema:"description=Scrape scheduler configuration"`
	Ingest    IngestConfig    `yaml:"ingest" json:"ingest" jsonschema:"description=Ingestion pipeline configuration"`
	Fetcher   FetcherConfig   `yaml:"fetcher" json:"fetcher" jsonschema:"description=Source fetcher configuration"`
	LLM       LLMConfig       `yaml:"llm" json:"llm" jsonschema:"description=Optional LLM fallback categorization"`
}

// SchedulerConfig holds timing of the periodic scan and the monthly grant
type SchedulerConfig struct {
	CheckInterval    time.Duration `yaml:"check_interval" json:"check_interval" jsonschema:"default=1h,description=How often due sources and the monthly grant are checked"`
	RescrapeInterval time.Duration `yaml:"rescrape_interval" json:"rescrape_interval" jsonschema:"default=24h,description=Minimal age of the last scrape for a source to be due"`
	PolitenessDelay  time.Duration `yaml:"politeness_delay" json:"politeness_delay" jsonschema:"default=2s,description=Pause between two scraped sources"`
	StartupDelay     time.Duration `yaml:"startup_delay" json:"startup_delay" jsonschema:"default=10s,description=Pause before the first pass"`
	MonthlyCredits   int           `yaml:"monthly_credits" json:"monthly_credits" jsonschema:"default=1,minimum=0,description=Credits granted to every partner once per month"`
}

// IngestConfig holds scrape cycle settings
type IngestConfig struct {
	ErrorThreshold  int           `yaml:"error_threshold" json:"error_threshold" jsonschema:"default=5,minimum=1,description=Consecutive failures before a source is disabled"`
	LeaseTTL        time.Duration `yaml:"lease_ttl" json:"lease_ttl" jsonschema:"default=15m,description=Lifetime of a per-source scrape lease"`
	DefaultCategory string        `yaml:"default_category" json:"default_category" jsonschema:"default=SONSTIGES,description=Category used when no rule matches"`
}

// FetcherConfig holds HTTP fetch settings
type FetcherConfig struct {
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout per source"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Eventscope/1.0,description=User agent for HTTP requests"`
	MaxBodySize int64         `yaml:"max_body_size" json:"max_body_size" jsonschema:"default=10485760,description=Maximum response body size in bytes"`
	Timezone    string        `yaml:"timezone" json:"timezone" jsonschema:"default=Europe/Berlin,description=Timezone for event dates without offset"`
}

// LLMConfig holds LLM configuration for fallback categorization
type LLMConfig struct {
	Enabled      bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Ask the LLM when rules yield the default category"`
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.1,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=20,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.SetDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// SetDefaults fills zero values, also used when running without a config file
func (c *Config) SetDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:eventscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Scheduler.CheckInterval == 0 {
		c.Scheduler.CheckInterval = time.Hour
	}
	if c.Scheduler.RescrapeInterval == 0 {
		c.Scheduler.RescrapeInterval = 24 * time.Hour
	}
	if c.Scheduler.PolitenessDelay == 0 {
		c.Scheduler.PolitenessDelay = 2 * time.Second
	}
	if c.Scheduler.StartupDelay == 0 {
		c.Scheduler.StartupDelay = 10 * time.Second
	}
	if c.Scheduler.MonthlyCredits == 0 {
		c.Scheduler.MonthlyCredits = 1
	}

	if c.Ingest.ErrorThreshold == 0 {
		c.Ingest.ErrorThreshold = 5
	}
	if c.Ingest.LeaseTTL == 0 {
		c.Ingest.LeaseTTL = 15 * time.Minute
	}
	if c.Ingest.DefaultCategory == "" {
		c.Ingest.DefaultCategory = string(domain.CategoryOther)
	}

	if c.Fetcher.Timeout == 0 {
		c.Fetcher.Timeout = 30 * time.Second
	}
	if c.Fetcher.UserAgent == "" {
		c.Fetcher.UserAgent = "Eventscope/1.0"
	}
	if c.Fetcher.MaxBodySize == 0 {
		c.Fetcher.MaxBodySize = 10 * 1024 * 1024
	}
	if c.Fetcher.Timezone == "" {
		c.Fetcher.Timezone = "Europe/Berlin"
	}

	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.1
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 20
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 15 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Scheduler.CheckInterval < time.Second {
		return fmt.Errorf("scheduler.check_interval must be at least 1 second")
	}
	if cfg.Scheduler.RescrapeInterval < time.Minute {
		return fmt.Errorf("scheduler.rescrape_interval must be at least 1 minute")
	}
	if cfg.Scheduler.PolitenessDelay < 0 || cfg.Scheduler.StartupDelay < 0 {
		return fmt.Errorf("scheduler delays must be non-negative")
	}
	if cfg.Scheduler.MonthlyCredits < 0 {
		return fmt.Errorf("scheduler.monthly_credits must be non-negative")
	}

	if cfg.Ingest.ErrorThreshold < 1 {
		return fmt.Errorf("ingest.error_threshold must be at least 1")
	}
	if !domain.Category(cfg.Ingest.DefaultCategory).Valid() {
		return fmt.Errorf("ingest.default_category %q is not a known category", cfg.Ingest.DefaultCategory)
	}

	if cfg.Fetcher.MaxBodySize < 1024 {
		return fmt.Errorf("fetcher.max_body_size must be at least 1024 bytes")
	}
	if _, err := time.LoadLocation(cfg.Fetcher.Timezone); err != nil {
		return fmt.Errorf("fetcher.timezone: %w", err)
	}

	// llm settings matter only when enabled
	if cfg.LLM.Enabled {
		if cfg.LLM.Endpoint == "" {
			return fmt.Errorf("llm.endpoint is required")
		}
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required")
		}
		if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
			return fmt.Errorf("llm.temperature must be between 0 and 2")
		}
	}

	return nil
}

// Location returns the configured fetcher timezone, falls back to local time
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Fetcher.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
