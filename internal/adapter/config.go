package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mmcdole/flightdeck/internal/domain"
)

const (
	appName   = "flightdeck"
	envPrefix = "FLIGHTDECK"

	// EnvConfigDir overrides the directory holding config.yaml
	EnvConfigDir = "FLIGHTDECK_CONFIG_DIR"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Table   TableConfig   `mapstructure:"table"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the REST API connection settings
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// CacheConfig holds local cache settings
type CacheConfig struct {
	Dir     string `mapstructure:"dir"`
	Persist bool   `mapstructure:"persist"` // false keeps the cache in memory only
}

// TableConfig holds table rendering settings
type TableConfig struct {
	PageSize int `mapstructure:"page_size" validate:"gte=0"` // 0 disables paging
}

// UIConfig holds UI configuration
type UIConfig struct {
	ToastSeconds int  `mapstructure:"toast_seconds" validate:"gte=0"`
	FuzzyFilter  bool `mapstructure:"fuzzy_filter"` // Typo-tolerant table search
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File   string `mapstructure:"file"`   // "-" logs to stderr
	Level  string `mapstructure:"level"`  // DEBUG, INFO, WARN, ERROR
	Format string `mapstructure:"format"` // json or text
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "",
			Token:   "",
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Dir:     defaultCachePath(),
			Persist: true,
		},
		Table: TableConfig{
			PageSize: 20,
		},
		UI: UIConfig{
			ToastSeconds: 4,
		},
		Logging: LoggingConfig{
			File:   defaultLogPath(),
			Level:  "INFO",
			Format: "json",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName, appName+".log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, appName+".log")
	}
}

// ConfigDir returns the directory holding config.yaml for the current OS
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName, "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, "cache")
	}
}

// newViper creates a viper instance with every key defaulted, so that
// environment overrides (FLIGHTDECK_API_TOKEN, ...) apply to all of them
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setAll(cfg, v.SetDefault)
	return v
}

// setAll writes every config field through set, using snake_case keys
func setAll(cfg *Config, set func(key string, value any)) {
	set("api.base_url", cfg.API.BaseURL)
	set("api.token", cfg.API.Token)
	set("api.timeout", cfg.API.Timeout.String())

	set("cache.dir", cfg.Cache.Dir)
	set("cache.persist", cfg.Cache.Persist)

	set("table.page_size", cfg.Table.PageSize)

	set("ui.toast_seconds", cfg.UI.ToastSeconds)
	set("ui.fuzzy_filter", cfg.UI.FuzzyFilter)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
	set("logging.format", cfg.Logging.Format)
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	v := newViper(DefaultConfig())

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := domain.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to file
func SaveConfig(cfg *Config) error {
	configPath := ConfigDir()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setAll(cfg, v.Set)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveToken updates just the API token (and base URL when given) in the
// configuration file
func SaveToken(baseURL, token string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	cfg.API.Token = token
	return SaveConfig(cfg)
}

// ClearToken removes the stored API token while preserving other settings
func ClearToken() error {
	return SaveToken("", "")
}

// IsConfigured returns true if the API base URL and token are set
func (c *Config) IsConfigured() bool {
	return c.API.BaseURL != "" && c.API.Token != ""
}

// CacheDir returns the directory for the persistent cache, or "" when the
// cache is memory-only
func (c *Config) CacheDir() string {
	if !c.Cache.Persist {
		return ""
	}
	return c.Cache.Dir
}

// ClearCache removes all cached data
func ClearCache(cfg *Config) error {
	if cfg.Cache.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(cfg.Cache.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
