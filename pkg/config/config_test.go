package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
scheduler:
  check_interval: 30m
  rescrape_interval: 12h
  politeness_delay: 5s
  monthly_credits: 3
ingest:
  error_threshold: 3
  default_category: VORTRAG
fetcher:
  user_agent: TestBot/2.0
  timezone: UTC
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 30*time.Minute, cfg.Scheduler.CheckInterval)
		assert.Equal(t, 12*time.Hour, cfg.Scheduler.RescrapeInterval)
		assert.Equal(t, 5*time.Second, cfg.Scheduler.PolitenessDelay)
		assert.Equal(t, 10*time.Second, cfg.Scheduler.StartupDelay)
		assert.Equal(t, 3, cfg.Scheduler.MonthlyCredits)
		assert.Equal(t, 3, cfg.Ingest.ErrorThreshold)
		assert.Equal(t, "VORTRAG", cfg.Ingest.DefaultCategory)
		assert.Equal(t, "TestBot/2.0", cfg.Fetcher.UserAgent)
		assert.Equal(t, time.UTC, cfg.Location())
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8080\"\n"))
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "file:eventscope.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
		assert.Equal(t, time.Hour, cfg.Scheduler.CheckInterval)
		assert.Equal(t, 24*time.Hour, cfg.Scheduler.RescrapeInterval)
		assert.Equal(t, 2*time.Second, cfg.Scheduler.PolitenessDelay)
		assert.Equal(t, 1, cfg.Scheduler.MonthlyCredits)
		assert.Equal(t, 5, cfg.Ingest.ErrorThreshold)
		assert.Equal(t, 15*time.Minute, cfg.Ingest.LeaseTTL)
		assert.Equal(t, "SONSTIGES", cfg.Ingest.DefaultCategory)
		assert.Equal(t, int64(10*1024*1024), cfg.Fetcher.MaxBodySize)
		assert.Equal(t, "Europe/Berlin", cfg.Location().String())
		assert.False(t, cfg.LLM.Enabled)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("EVENTSCOPE_TEST_KEY", "secret-key")
		cfg, err := Load(writeConfig(t, `
llm:
  enabled: true
  endpoint: https://api.openai.com/v1
  model: gpt-4o-mini
  api_key: ${EVENTSCOPE_TEST_KEY}
`))
		require.NoError(t, err)
		assert.Equal(t, "secret-key", cfg.LLM.APIKey)
		assert.InDelta(t, 0.1, cfg.LLM.Temperature, 0.0001)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "invalid yaml content\n  with bad indentation\n    and no structure\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", modify: func(*Config) {}},
		{name: "short server timeout", modify: func(c *Config) { c.Server.Timeout = time.Millisecond }, wantErr: "server timeout"},
		{name: "short rescrape interval", modify: func(c *Config) { c.Scheduler.RescrapeInterval = time.Second }, wantErr: "rescrape_interval"},
		{name: "negative delay", modify: func(c *Config) { c.Scheduler.PolitenessDelay = -time.Second }, wantErr: "delays"},
		{name: "negative credits", modify: func(c *Config) { c.Scheduler.MonthlyCredits = -1 }, wantErr: "monthly_credits"},
		{name: "negative threshold", modify: func(c *Config) { c.Ingest.ErrorThreshold = -1 }, wantErr: "error_threshold"},
		{name: "unknown category", modify: func(c *Config) { c.Ingest.DefaultCategory = "POLKA" }, wantErr: "not a known category"},
		{name: "tiny body limit", modify: func(c *Config) { c.Fetcher.MaxBodySize = 10 }, wantErr: "max_body_size"},
		{name: "bad timezone", modify: func(c *Config) { c.Fetcher.Timezone = "Mars/Olympus" }, wantErr: "fetcher.timezone"},
		{name: "llm disabled ignores endpoint", modify: func(c *Config) { c.LLM.Endpoint = "" }},
		{name: "llm without endpoint", modify: func(c *Config) { c.LLM.Enabled, c.LLM.Model = true, "m" }, wantErr: "llm.endpoint"},
		{name: "llm without model", modify: func(c *Config) { c.LLM.Enabled, c.LLM.Endpoint = true, "http://x" }, wantErr: "llm.model"},
		{name: "llm temperature", modify: func(c *Config) {
			c.LLM.Enabled, c.LLM.Endpoint, c.LLM.Model, c.LLM.Temperature = true, "http://x", "m", 3
		}, wantErr: "llm.temperature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.SetDefaults()
			tt.modify(cfg)
			err := validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
