// Package config loads the YAML configuration file
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment overrides
const (
	EnvDBPath    = "TODO_DB_PATH"
	EnvThemeFile = "TODO_THEME_FILE"
)

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig `yaml:"database"`
	Outbox      OutboxConfig   `yaml:"outbox"`
	Log         LogConfig      `yaml:"log"`
	ColorScheme ColorScheme    `yaml:"theme"`
}

// DatabaseConfig locates the task database
type DatabaseConfig struct {
	// Path to the SQLite file; defaults to ~/.todo/tasks.db
	Path string `yaml:"path"`
}

// OutboxConfig tunes the durable write queue
type OutboxConfig struct {
	QueueSize   int           `yaml:"queue_size"`
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
}

// LogConfig controls the log file
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// Dir holds todo.log; defaults to the directory of the database
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

func defaultWithEnv() *Config {
	config := &Config{}
	applyEnv(config)
	config.applyDefaults()
	return config
}

// loadThemeFile loads and merges theme from TODO_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// applyEnv applies environment overrides on top of file values
func applyEnv(config *Config) {
	if path := os.Getenv(EnvDBPath); path != "" {
		config.Database.Path = path
	}
	loadThemeFile(config)
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		// Return default config if we can't determine config path
		return defaultWithEnv(), nil
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return defaultWithEnv(), nil
	}
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	applyEnv(&config)

	// Fill in any missing values with defaults
	config.applyDefaults()

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "todo", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "todo", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Database.Path = filepath.Join(home, ".todo", "tasks.db")
		}
	}
	if c.Outbox.QueueSize <= 0 {
		c.Outbox.QueueSize = 256
	}
	if c.Outbox.MaxAttempts <= 0 {
		c.Outbox.MaxAttempts = 3
	}
	if c.Outbox.BaseDelay <= 0 {
		c.Outbox.BaseDelay = 50 * time.Millisecond
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Dir == "" && c.Database.Path != "" {
		c.Log.Dir = defaultLogDir(c.Database.Path)
	}
	c.ColorScheme.ApplyDefaults()
}

// SetDatabasePath points the config at another database. A log directory
// derived from the previous database path follows the new one.
func (c *Config) SetDatabasePath(path string) {
	if c.Log.Dir == "" || c.Log.Dir == defaultLogDir(c.Database.Path) {
		c.Log.Dir = defaultLogDir(path)
	}
	c.Database.Path = path
}

func defaultLogDir(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "logs")
}
