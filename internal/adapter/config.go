package adapter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ARTIC_API_URL
const EnvPrefix = "ARTIC"

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the museum API configuration
type APIConfig struct {
	URL         string        `mapstructure:"url"`          // REST base, e.g. https://api.artic.edu/api/v1
	IIIFURL     string        `mapstructure:"iiif_url"`     // Image server base
	PageSize    int           `mapstructure:"page_size"`    // Artworks per page
	EventsLimit int           `mapstructure:"events_limit"` // Events shown in the carousel
	Timeout     time.Duration `mapstructure:"timeout"`      // Per request
}

// UIConfig holds UI configuration
type UIConfig struct {
	InsetTop    int     `mapstructure:"inset_top"`    // Rows kept free above the feed
	InsetBottom int     `mapstructure:"inset_bottom"` // Rows kept free below the feed
	Stiffness   float64 `mapstructure:"stiffness"`    // Header spring stiffness
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`  // JSON lines; "~/" is the home directory
	Level string `mapstructure:"level"` // DEBUG, INFO, WARN or ERROR
}

// SlogLevel is the configured level, INFO when unset or unknown
func (c LoggingConfig) SlogLevel() slog.Level {
	var level slog.Level
	name := strings.TrimSpace(c.Level)
	if strings.EqualFold(name, "warning") {
		name = "warn"
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Open creates the log file and a JSON logger writing to it.
// Closing the returned closer releases the file.
func (c LoggingConfig) Open() (*slog.Logger, io.Closer, error) {
	path, err := expandHome(c.File)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: c.SlogLevel()})), f, nil
}

// DiscardLogger is used when the log file cannot be opened
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func expandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	return filepath.Join(home, rest), nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			URL:         "https://api.artic.edu/api/v1",
			IIIFURL:     "https://www.artic.edu/iiif/2",
			PageSize:    20,
			EventsLimit: 10,
			Timeout:     30 * time.Second,
		},
		UI: UIConfig{
			Stiffness: 50,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "artic", "artic.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "artic", "artic.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "artic")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "artic")
	}
}

// LoadConfig loads configuration from file and environment.
// An empty path searches the default config directory and the working
// directory for config.yaml; a missing file there is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
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

// setDefaults registers every key so environment overrides apply even when
// no config file sets them
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.url", cfg.API.URL)
	v.SetDefault("api.iiif_url", cfg.API.IIIFURL)
	v.SetDefault("api.page_size", cfg.API.PageSize)
	v.SetDefault("api.events_limit", cfg.API.EventsLimit)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("ui.inset_top", cfg.UI.InsetTop)
	v.SetDefault("ui.inset_bottom", cfg.UI.InsetBottom)
	v.SetDefault("ui.stiffness", cfg.UI.Stiffness)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate rejects settings the app cannot run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.URL) == "" {
		return errors.New("api.url must be set")
	}
	if c.API.PageSize <= 0 || c.API.PageSize > 100 {
		return fmt.Errorf("api.page_size must be between 1 and 100, got %d", c.API.PageSize)
	}
	if c.API.EventsLimit < 0 {
		return fmt.Errorf("api.events_limit must not be negative, got %d", c.API.EventsLimit)
	}
	if c.UI.InsetTop < 0 || c.UI.InsetBottom < 0 {
		return errors.New("ui insets must not be negative")
	}
	return nil
}
