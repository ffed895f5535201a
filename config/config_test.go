package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "USD", cfg.Account.Currency)
	assert.InDelta(t, 1_000_000.0, cfg.Account.Deposit, 1e-9)
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	content := `
account:
  currency: EUR
  deposit: 50000
  validate: true
pricing:
  spread_bips: 5
fees:
  model: commission
  bips: 2
  min: 1
model:
  type: margin
  margin: 0.5
journal:
  type: sqlite
  db_path: /tmp/run.db
feed:
  csv_path: prices.csv
  currency: EUR
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Account.Currency)
	assert.InDelta(t, 50_000.0, cfg.Account.Deposit, 1e-9)
	assert.True(t, cfg.Account.Validate)
	assert.InDelta(t, 5.0, cfg.Pricing.SpreadBips, 1e-9)
	assert.Equal(t, "commission", cfg.Fees.Model)
	assert.Equal(t, "margin", cfg.Model.Type)
	assert.InDelta(t, 0.5, cfg.Model.Margin, 1e-9)
	assert.Equal(t, "/tmp/run.db", cfg.Journal.DBPath)
	assert.Equal(t, "prices.csv", cfg.Feed.CSVPath)
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg.json")
	content := `{"account":{"currency":"USD","deposit":1000},"model":{"type":"cash"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Account.Currency)
	assert.InDelta(t, 1000.0, cfg.Account.Deposit, 1e-9)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{"yaml", "json"} {
		ext := ext
		t.Run(ext, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "cfg."+ext)

			orig := Default()
			orig.Account.Deposit = 42_000
			require.NoError(t, orig.SaveToFile(path))

			got, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, orig, got)
		})
	}
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing currency", func(c *Config) { c.Account.Currency = "" }},
		{"zero deposit", func(c *Config) { c.Account.Deposit = 0 }},
		{"negative spread", func(c *Config) { c.Pricing.SpreadBips = -1 }},
		{"unknown fee model", func(c *Config) { c.Fees.Model = "tiered" }},
		{"commission max below min", func(c *Config) {
			c.Fees.Model = "commission"
			c.Fees.Min = 10
			c.Fees.Max = 5
		}},
		{"unknown account model", func(c *Config) { c.Model.Type = "portfolio" }},
		{"margin out of range", func(c *Config) {
			c.Model.Type = "margin"
			c.Model.Margin = 1.5
		}},
		{"regt without initial", func(c *Config) { c.Model.Type = "regt" }},
		{"csv journal missing paths", func(c *Config) { c.Journal.Type = "csv" }},
		{"sqlite journal missing path", func(c *Config) { c.Journal.Type = "sqlite" }},
		{"unknown journal", func(c *Config) { c.Journal.Type = "kafka" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
