package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// View names accepted by ui.default_view
const (
	ViewVideos    = "videos"
	ViewDownloads = "downloads"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	UI      UIConfig      `mapstructure:"ui"`
	Status  StatusConfig  `mapstructure:"status"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds TISSUE+ server configuration
type ServerConfig struct {
	URL      string `mapstructure:"url"`      // Server URL
	Token    string `mapstructure:"token"`    // Bearer token from login
	Username string `mapstructure:"username"` // Display only
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultView  string `mapstructure:"default_view"`  // "videos" or "downloads"
	StatusBadges bool   `mapstructure:"status_badges"` // Show download status next to videos
}

// StatusConfig holds download status lookup configuration
type StatusConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds local list cache configuration
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File      string `mapstructure:"file"`
	Level     string `mapstructure:"level"`
	MaxSizeMB int    `mapstructure:"max_size_mb"` // Truncate at startup past this size, 0 never
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			DefaultView:  ViewVideos,
			StatusBadges: true,
		},
		Status: StatusConfig{
			Timeout: 15 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCachePath(),
		},
		Logging: LoggingConfig{
			File:      defaultLogPath(),
			Level:     "INFO",
			MaxSizeMB: 10,
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tissue", "tissue.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "tissue", "tissue.log")
	}
}

// defaultConfigPath returns the config directory, honouring TISSUE_CONFIG_DIR
func defaultConfigPath() string {
	if dir := os.Getenv("TISSUE_CONFIG_DIR"); dir != "" {
		return dir
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tissue")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tissue")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "tissue", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "tissue", "cache")
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")

	// Environment variable overrides, e.g. TISSUE_SERVER_URL
	v.SetEnvPrefix("TISSUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper knows about
	for _, key := range []string{
		"server.url", "server.token", "server.username",
		"ui.default_view", "ui.status_badges",
		"status.timeout",
		"cache.enabled", "cache.dir",
		"logging.file", "logging.level", "logging.max_size_mb",
	} {
		v.BindEnv(key)
	}
	return v
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	v := newViper()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later in confusing ways
func (c *Config) Validate() error {
	switch c.UI.DefaultView {
	case "", ViewVideos, ViewDownloads:
	default:
		return fmt.Errorf("invalid ui.default_view %q: want %q or %q", c.UI.DefaultView, ViewVideos, ViewDownloads)
	}
	if c.Status.Timeout < 0 {
		return fmt.Errorf("invalid status.timeout %s: must not be negative", c.Status.Timeout)
	}
	if c.Logging.MaxSizeMB < 0 {
		return fmt.Errorf("invalid logging.max_size_mb %d: must not be negative", c.Logging.MaxSizeMB)
	}
	return nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	v := newViper()
	// Keep keys from an existing file that this version does not know about
	_ = v.ReadInConfig()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.token", cfg.Server.Token)
	v.Set("server.username", cfg.Server.Username)

	v.Set("ui.default_view", cfg.UI.DefaultView)
	v.Set("ui.status_badges", cfg.UI.StatusBadges)

	v.Set("status.timeout", cfg.Status.Timeout.String())

	v.Set("cache.enabled", cfg.Cache.Enabled)
	v.Set("cache.dir", cfg.Cache.Dir)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.max_size_mb", cfg.Logging.MaxSizeMB)

	return writeConfig(v)
}

// SaveToken updates just the token in the configuration
func SaveToken(token string) error {
	v := newViper()
	_ = v.ReadInConfig()
	v.Set("server.token", token)
	return writeConfig(v)
}

// ClearServerConfig removes the server URL and credentials
// while preserving other settings (UI, cache, logging)
func ClearServerConfig() error {
	v := newViper()
	_ = v.ReadInConfig()

	v.Set("server.url", "")
	v.Set("server.token", "")
	v.Set("server.username", "")

	return writeConfig(v)
}

func writeConfig(v *viper.Viper) error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the server URL and token are set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.Token != ""
}

// CachePath returns the cache directory, or "" when caching is disabled
func (c *Config) CachePath() string {
	if !c.Cache.Enabled {
		return ""
	}
	if c.Cache.Dir == "" {
		return defaultCachePath()
	}
	return c.Cache.Dir
}

// ClearCache removes all cached data
func ClearCache(dir string) error {
	if dir == "" {
		dir = defaultCachePath()
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
