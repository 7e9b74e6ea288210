package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all storefront configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Messaging MessagingConfig `yaml:"messaging"`
	Storage   StorageConfig   `yaml:"storage"`
	Currency  CurrencyConfig  `yaml:"currency"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// APIConfig configures the remote catalog/login/order API.
type APIConfig struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// Timeout is empty by default: requests rely on the transport's own limits.
	Timeout string `yaml:"timeout"`
}

// MessagingConfig configures the order hand-off deep link.
type MessagingConfig struct {
	BaseURL   string `yaml:"base_url"`
	Recipient string `yaml:"recipient"`
	// OpenBrowser opens the link with the system handler instead of printing it.
	OpenBrowser bool `yaml:"open_browser"`
}

// StorageConfig selects where the logged-in user is kept between runs.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite, postgres
	Path   string `yaml:"path"`   // sqlite file
	DSN    string `yaml:"dsn"`    // postgres connection string
}

type CurrencyConfig struct {
	Code   string `yaml:"code"`
	Symbol string `yaml:"symbol"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
	// File receives logs while the terminal UI owns the screen. Empty discards them.
	File string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://userannyrosa.onrender.com",
		},
		Messaging: MessagingConfig{
			BaseURL:     "https://wa.me",
			OpenBrowser: true,
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(DefaultDir(), "session.db"),
		},
		Currency: CurrencyConfig{
			Code:   "BRL",
			Symbol: "R$",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultDir is ~/.storefront, or .storefront when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(home, ".storefront")
}

func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load reads configuration from a YAML file. A missing file yields defaults.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"STOREFRONT_API_URL", &c.API.BaseURL},
		{"STOREFRONT_API_USER", &c.API.Username},
		{"STOREFRONT_API_PASSWORD", &c.API.Password},
		{"STOREFRONT_WHATSAPP", &c.Messaging.Recipient},
		{"STOREFRONT_STORAGE_DRIVER", &c.Storage.Driver},
		{"STOREFRONT_STORAGE_DSN", &c.Storage.DSN},
		{"LOG_LEVEL", &c.Logging.Level},
	}

	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.target = v
		}
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}

	if _, err := c.GetAPITimeout(); err != nil {
		return err
	}

	if _, err := c.GetCurrency(); err != nil {
		return err
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	return nil
}

// GetAPITimeout returns zero when no timeout is configured.
func (c *Config) GetAPITimeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("api.timeout %q is not valid: %w", c.API.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("api.timeout %q is negative", c.API.Timeout)
	}

	return d, nil
}

func (c *Config) GetCurrency() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency.Code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", c.Currency.Code, err)
	}
	return unit, nil
}
