package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default storage keys for the current payload and the flat legacy list.
const (
	DefaultStorageKey = "todo-boards-v1"
	DefaultLegacyKey  = "todos"
)

// StorageConfig controls where the persisted root lives.
type StorageConfig struct {
	// Path is the SQLite database file. ":memory:" keeps state for one run.
	Path string `mapstructure:"path" yaml:"path"`

	// Key is the storage key holding the current payload.
	Key string `mapstructure:"key" yaml:"key"`

	// LegacyKey holds the flat task list written by the single-list build.
	LegacyKey string `mapstructure:"legacy_key" yaml:"legacy_key"`
}

// LogConfig controls the logrus logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`

	// File receives log output. Empty means stderr.
	File string `mapstructure:"file" yaml:"file"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// ConfigDir returns ~/.config/glassboard, or the working directory when the
// home directory cannot be resolved.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "glassboard")
}

// DefaultConfigPath returns the default path for the configuration file.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		Storage: StorageConfig{
			Path:      filepath.Join(dir, "glassboard.db"),
			Key:       DefaultStorageKey,
			LegacyKey: DefaultLegacyKey,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "glassboard.log"),
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// RegisterFlags adds the command-line overrides understood by LoadConfig.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", DefaultConfigPath(), "path to config.yaml")
	fs.String("db", "", "sqlite database path (overrides storage.path)")
	fs.String("log-level", "", "log level (overrides log.level)")
	fs.Bool("reset", false, "discard saved boards before starting (the legacy list is kept)")
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, defaults are used. Flags set on fs take
// precedence over the file; fs may be nil.
func LoadConfig(path string, fs *pflag.FlagSet) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("storage.key", def.Storage.Key)
	v.SetDefault("storage.legacy_key", def.Storage.LegacyKey)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("display.theme", def.Display.Theme)

	if fs != nil {
		if f := fs.Lookup("db"); f != nil && f.Changed {
			if err := v.BindPFlag("storage.path", f); err != nil {
				return nil, fmt.Errorf("binding --db: %w", err)
			}
		}
		if f := fs.Lookup("log-level"); f != nil && f.Changed {
			if err := v.BindPFlag("log.level", f); err != nil {
				return nil, fmt.Errorf("binding --log-level: %w", err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		_, pathErr := err.(*os.PathError)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !pathErr && !notFound {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// An explicitly blank key would make every load miss.
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = DefaultStorageKey
	}
	if cfg.Storage.LegacyKey == "" {
		cfg.Storage.LegacyKey = DefaultLegacyKey
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

	v.Set("storage", cfg.Storage)
	v.Set("log", cfg.Log)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
