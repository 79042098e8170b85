package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	applog "github.com/gigurra/expense-tracker/internal/log"
)

// Config holds user settings. Values come from the YAML file, then
// EXPENSE_TRACKER_* environment variables override them.
type Config struct {
	// Data is the data location, optionally prefixed with a backend name
	// (e.g. "sqlite:/home/me/expenses.db").
	Data string `yaml:"data,omitempty" env:"EXPENSE_TRACKER_DATA"`

	// Currency is an ISO 4217 code. Detected from the system locale when empty.
	Currency string `yaml:"currency,omitempty" env:"EXPENSE_TRACKER_CURRENCY"`

	// CycleDays is how long after payment a recurring expense comes back.
	CycleDays int `yaml:"cycle_days,omitempty" env:"EXPENSE_TRACKER_CYCLE_DAYS"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty" env:"EXPENSE_TRACKER_LOG_LEVEL"`
}

// DefaultConfigDir returns ~/.expense-tracker
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".expense-tracker"
	}
	return filepath.Join(home, ".expense-tracker")
}

// DefaultConfigPath returns the default config file path (~/.expense-tracker/config.yaml)
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultDataPath returns the default data file (~/.expense-tracker/despesas.json)
func DefaultDataPath() string {
	return filepath.Join(DefaultConfigDir(), "despesas.json")
}

// NewDefaultConfig returns a config with every field at its default.
func NewDefaultConfig() *Config {
	return &Config{
		Data:      DefaultDataPath(),
		Currency:  "",
		CycleDays: DefaultCycleDays,
		LogLevel:  "warn",
	}
}

// LoadDotEnv loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// LoadConfig reads the YAML file at path, applies environment overrides and
// fills in defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := NewDefaultConfig()
	if strings.TrimSpace(c.Data) == "" {
		c.Data = def.Data
	}
	if c.CycleDays == 0 {
		c.CycleDays = def.CycleDays
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Data) == "" {
		errs = append(errs, errors.New("data location is required"))
	} else if _, path := ParseDataArg(c.Data); strings.TrimSpace(path) == "" {
		errs = append(errs, fmt.Errorf("data location %q has no path", c.Data))
	}
	if c.CycleDays < 1 {
		errs = append(errs, fmt.Errorf("cycle_days must be at least 1, got %d", c.CycleDays))
	}
	if c.Currency != "" && len(strings.TrimSpace(c.Currency)) != 3 {
		errs = append(errs, fmt.Errorf("currency must be a 3 letter ISO code, got %q", c.Currency))
	}
	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ResolveCurrency returns the configured currency, else the one implied by
// the system locale, else DefaultCurrency.
func (c *Config) ResolveCurrency() Currency {
	code := strings.TrimSpace(c.Currency)
	if code == "" {
		code = DetectSystemCurrency()
	}
	return GetCurrency(code)
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := c.YAML()
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// YAML renders the config as it would be saved.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
