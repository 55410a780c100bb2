package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// StoreConfig locates the local persistent store.
type StoreConfig struct {
	// Path is the SQLite database file holding the data snapshot.
	Path string `mapstructure:"path" yaml:"path"`
}

// RemoteConfig controls the optional cloud mirror.
type RemoteConfig struct {
	// Enabled makes the application connect on startup when credentials
	// are stored in the keyring.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// BaseURL overrides the Firestore REST endpoint (used for emulators).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds a single HTTP call to the mirror.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// DashboardConfig holds dashboard preferences.
type DashboardConfig struct {
	UpcomingLimit int `mapstructure:"upcoming_limit" yaml:"upcoming_limit"`
}

// BackupConfig holds scheduled-backup settings. An empty Schedule
// disables scheduled backups.
type BackupConfig struct {
	Dir      string `mapstructure:"dir" yaml:"dir"`
	Schedule string `mapstructure:"schedule" yaml:"schedule"`
	Format   string `mapstructure:"format" yaml:"format"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Store     StoreConfig     `mapstructure:"store" yaml:"store"`
	Remote    RemoteConfig    `mapstructure:"remote" yaml:"remote"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
	Backup    BackupConfig    `mapstructure:"backup" yaml:"backup"`
	Display   DisplayConfig   `mapstructure:"display" yaml:"display"`
}

// configDir returns ~/.config/photodesk, or the working directory when the
// home directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "photodesk")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/photodesk/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Store: StoreConfig{
			Path: filepath.Join(configDir(), "photodesk.db"),
		},
		Remote: RemoteConfig{
			Enabled:    true,
			TimeoutSec: 30,
		},
		Dashboard: DashboardConfig{
			UpcomingLimit: 5,
		},
		Backup: BackupConfig{
			Dir:    filepath.Join(configDir(), "backups"),
			Format: "json",
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// PHOTODESK_* environment variables override file values
// (e.g. PHOTODESK_STORE_PATH). A missing file yields the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PHOTODESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values and env
	// overrides are visible to Unmarshal.
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("remote.enabled", def.Remote.Enabled)
	v.SetDefault("remote.base_url", def.Remote.BaseURL)
	v.SetDefault("remote.timeout_sec", def.Remote.TimeoutSec)
	v.SetDefault("dashboard.upcoming_limit", def.Dashboard.UpcomingLimit)
	v.SetDefault("backup.dir", def.Backup.Dir)
	v.SetDefault("backup.schedule", def.Backup.Schedule)
	v.SetDefault("backup.format", def.Backup.Format)
	v.SetDefault("display.theme", def.Display.Theme)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Dashboard.UpcomingLimit <= 0 {
		cfg.Dashboard.UpcomingLimit = def.Dashboard.UpcomingLimit
	}
	if cfg.Remote.TimeoutSec <= 0 {
		cfg.Remote.TimeoutSec = def.Remote.TimeoutSec
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("store", cfg.Store)
	v.Set("remote", cfg.Remote)
	v.Set("dashboard", cfg.Dashboard)
	v.Set("backup", cfg.Backup)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
