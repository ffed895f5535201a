// Package config loads and validates simulation run configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration of a simulated brokerage run.
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Pricing PricingConfig `json:"pricing" yaml:"pricing"`
	Fees    FeesConfig    `json:"fees" yaml:"fees"`
	Model   ModelConfig   `json:"model" yaml:"model"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Feed    FeedConfig    `json:"feed" yaml:"feed"`
}

// AccountConfig sets up the initial account.
type AccountConfig struct {
	Currency string  `json:"currency" yaml:"currency"`
	Deposit  float64 `json:"deposit" yaml:"deposit"`
	Validate bool    `json:"validate" yaml:"validate"` // reject orders exceeding buying power
}

// PricingConfig selects the slippage model.
type PricingConfig struct {
	SpreadBips float64 `json:"spread_bips" yaml:"spread_bips"`
}

// FeesConfig selects the fee model: "none", "flat" or "commission".
type FeesConfig struct {
	Model string  `json:"model" yaml:"model"`
	Bips  float64 `json:"bips,omitempty" yaml:"bips,omitempty"`
	Min   float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max   float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// ModelConfig selects the buying-power model: "cash", "margin" or "regt".
type ModelConfig struct {
	Type             string  `json:"type" yaml:"type"`
	Margin           float64 `json:"margin,omitempty" yaml:"margin,omitempty"`
	InitialMargin    float64 `json:"initial_margin,omitempty" yaml:"initial_margin,omitempty"`
	MaintenanceLong  float64 `json:"maintenance_long,omitempty" yaml:"maintenance_long,omitempty"`
	MaintenanceShort float64 `json:"maintenance_short,omitempty" yaml:"maintenance_short,omitempty"`
	Minimum          float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
}

// JournalConfig selects where trades and equity go: "none", "csv" or
// "sqlite".
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// FeedConfig points at the replay data.
type FeedConfig struct {
	CSVPath    string  `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
	Currency   string  `json:"currency,omitempty" yaml:"currency,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
	Exchange   string  `json:"exchange,omitempty" yaml:"exchange,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML or JSON based on the file
// extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration before anything is built from it.
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Deposit <= 0 {
		return fmt.Errorf("account.deposit must be positive")
	}
	if c.Pricing.SpreadBips < 0 {
		return fmt.Errorf("pricing.spread_bips must not be negative")
	}

	switch c.Fees.Model {
	case "", "none":
	case "flat":
		if c.Fees.Bips < 0 {
			return fmt.Errorf("fees.bips must not be negative")
		}
	case "commission":
		if c.Fees.Bips < 0 || c.Fees.Min < 0 {
			return fmt.Errorf("fees.bips and fees.min must not be negative")
		}
		if c.Fees.Max > 0 && c.Fees.Max < c.Fees.Min {
			return fmt.Errorf("fees.max must be at least fees.min")
		}
	default:
		return fmt.Errorf("fees.model must be 'none', 'flat' or 'commission'")
	}

	switch c.Model.Type {
	case "", "cash":
	case "margin":
		if c.Model.Margin <= 0 || c.Model.Margin > 1 {
			return fmt.Errorf("model.margin must be in (0,1]")
		}
	case "regt":
		if c.Model.InitialMargin <= 0 || c.Model.InitialMargin > 1 {
			return fmt.Errorf("model.initial_margin must be in (0,1]")
		}
	default:
		return fmt.Errorf("model.type must be 'cash', 'margin' or 'regt'")
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency: "USD",
			Deposit:  1_000_000,
		},
		Pricing: PricingConfig{
			SpreadBips: 10,
		},
		Fees: FeesConfig{
			Model: "none",
		},
		Model: ModelConfig{
			Type: "cash",
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Feed: FeedConfig{
			Currency:   "USD",
			Multiplier: 1.0,
		},
	}
}
