package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DBPath is the location of the SQLite database file.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// TickIntervalSec is the reminder evaluation period in seconds.
	TickIntervalSec int `mapstructure:"tick_interval_sec" yaml:"tick_interval_sec"`

	// RemindBeforeMin is the default lead time for new tasks, in minutes.
	RemindBeforeMin int `mapstructure:"remind_before_min" yaml:"remind_before_min"`

	// QuickSnoozeMin is the snooze duration applied by the quick-snooze
	// notification action, in minutes.
	QuickSnoozeMin int `mapstructure:"quick_snooze_min" yaml:"quick_snooze_min"`

	// LogLevel sets the logrus level ("debug", "info", "warn", "error").
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/taskpanel/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "taskpanel", "config.yaml")
}

// DefaultDBPath returns the default location of the task database,
// located at ~/.local/share/taskpanel/taskpanel.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "taskpanel.db")
	}
	return filepath.Join(home, ".local", "share", "taskpanel", "taskpanel.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DBPath:          DefaultDBPath(),
		TickIntervalSec: 30,
		RemindBeforeMin: DefaultRemindBeforeMin,
		QuickSnoozeMin:  10,
		LogLevel:        "info",
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("db_path", DefaultDBPath())
	v.SetDefault("tick_interval_sec", 30)
	v.SetDefault("remind_before_min", DefaultRemindBeforeMin)
	v.SetDefault("quick_snooze_min", 10)
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.TickIntervalSec <= 0 {
		cfg.TickIntervalSec = 30
	}
	if cfg.QuickSnoozeMin <= 0 {
		cfg.QuickSnoozeMin = 10
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

	v.Set("db_path", cfg.DBPath)
	v.Set("tick_interval_sec", cfg.TickIntervalSec)
	v.Set("remind_before_min", cfg.RemindBeforeMin)
	v.Set("quick_snooze_min", cfg.QuickSnoozeMin)
	v.Set("log_level", cfg.LogLevel)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
