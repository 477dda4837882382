// Package config reads and writes the scold configuration document.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/scold/internal/alert"
	"github.com/theirongolddev/scold/internal/model"
)

// Config holds all scold configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Alerts     AlertsConfig     `toml:"alerts"`
	Notify     NotifyConfig     `toml:"notify"`
	Appearance AppearanceConfig `toml:"appearance"`
	Receipt    ReceiptConfig    `toml:"receipt"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency   string   `toml:"currency"`
	Database   string   `toml:"database,omitempty"`
	Categories []string `toml:"categories"`
}

// AlertsConfig controls how overspending is classified and worded.
type AlertsConfig struct {
	SevereThreshold string `toml:"severe_threshold"`
	WarnApproaching bool   `toml:"warn_approaching"`
	Proximity       string `toml:"proximity"`
	Selection       string `toml:"selection"`
}

// NotifyConfig picks the delivery channels.
type NotifyConfig struct {
	Channels   []string `toml:"channels"`
	TimeoutSec int      `toml:"timeout_sec"`
	FeedAddr   string   `toml:"feed_addr,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ReceiptConfig locates the OCR engine.
type ReceiptConfig struct {
	Tesseract string `toml:"tesseract"`
	Language  string `toml:"language,omitempty"`
}

// Currencies are the symbols offered during setup.
var Currencies = []string{"$", "€", "£", "₹", "¥"}

// Channel names accepted in [notify] channels.
var Channels = []string{"console", "notification", "popup", "feed"}

// Environment overrides.
const (
	EnvDatabase = "SCOLD_DB"
	EnvCurrency = "SCOLD_CURRENCY"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency:   "$",
			Categories: slices.Clone(model.DefaultCategories),
		},
		Alerts: AlertsConfig{
			SevereThreshold: alert.DefaultSevereThreshold.String(),
			Proximity:       alert.DefaultProximity.String(),
			Selection:       alert.SelectionRandom,
		},
		Notify: NotifyConfig{
			Channels:   []string{"console", "notification", "popup"},
			TimeoutSec: 5,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Receipt: ReceiptConfig{
			Tesseract: "tesseract",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scold")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "scold")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "scold")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "scold")
}

// DatabasePath returns where the expense database lives.
func (c Config) DatabasePath() string {
	if c.General.Database != "" {
		return c.General.Database
	}
	return filepath.Join(DataDir(), "expenses.db")
}

// Load reads the config file, returning defaults if it doesn't exist. A .env
// file in the working directory and SCOLD_* variables override file values.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), fmt.Errorf("reading .env: %w", err)
	}

	cfg, err := loadFile()
	if err != nil {
		return cfg, err
	}

	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.General.Database = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.General.Currency = v
	}
	return cfg, nil
}

// loadFile reads the config file over the defaults, without overrides.
func loadFile() (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(Path())
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Validate reports every problem with the document at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.General.Currency) == "" {
		errs = append(errs, errors.New("general.currency is empty"))
	}
	for i, name := range c.General.Categories {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("general.categories[%d] is empty", i))
		}
	}
	if _, err := c.AlertPolicy(); err != nil {
		errs = append(errs, err)
	}
	for _, ch := range c.Notify.Channels {
		if !slices.Contains(Channels, ch) {
			errs = append(errs, fmt.Errorf("notify.channels: unknown channel %q", ch))
		}
	}
	if c.Notify.TimeoutSec < 0 {
		errs = append(errs, errors.New("notify.timeout_sec must not be negative"))
	}
	return errors.Join(errs...)
}

// AlertPolicy builds the alert policy described by [alerts].
func (c Config) AlertPolicy() (*alert.Policy, error) {
	p := alert.DefaultPolicy()

	if s := c.Alerts.SevereThreshold; s != "" {
		m, err := model.ParseMoney(s)
		if err != nil || !m.IsPositive() {
			return nil, fmt.Errorf("alerts.severe_threshold %q must be a positive amount", s)
		}
		p.SevereThreshold = m
	}
	if s := c.Alerts.Proximity; s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil || !d.IsPositive() || d.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("alerts.proximity %q must be in (0, 1]", s)
		}
		p.Proximity = d
	}
	sel, err := alert.ParseSelection(c.Alerts.Selection)
	if err != nil {
		return nil, fmt.Errorf("alerts.selection: %w", err)
	}
	p.Selector = sel
	return p, nil
}

// NotifyTimeout returns the per-channel delivery timeout.
func (c Config) NotifyTimeout() time.Duration {
	return time.Duration(c.Notify.TimeoutSec) * time.Second
}
