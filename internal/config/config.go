// Package config provides configuration loading and validation for the techstack CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidTopLanguages = errors.New("top languages must be positive")
	ErrInvalidTopRepos     = errors.New("top repositories must be positive")
	ErrInvalidConcurrency  = errors.New("search concurrency must be positive")
	ErrInvalidTimeout      = errors.New("api timeout must not be negative")
	ErrInvalidFormat       = errors.New("unknown output format")
	ErrInvalidColor        = errors.New("invalid hex color")
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Default configuration values.
const (
	defaultBaseURL         = "https://api.github.com/"
	defaultUserAgent       = "github-techstack"
	defaultTimeout         = 10 * time.Second
	defaultTopLanguages    = 10
	defaultTopRepositories = 12
	defaultConcurrency     = 4
	envPrefix              = "TECHSTACK"
	configName             = "techstack"
)

// Config holds all configuration for the techstack CLI.
type Config struct {
	API         APIConfig         `mapstructure:"api"`
	Aggregation AggregationConfig `mapstructure:"aggregation"`
	Ranking     RankingConfig     `mapstructure:"ranking"`
	Search      SearchConfig      `mapstructure:"search"`
	Output      OutputConfig      `mapstructure:"output"`
	Colors      ColorsConfig      `mapstructure:"colors"`
}

// APIConfig holds GitHub API access settings.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// AggregationConfig holds tech stack settings.
type AggregationConfig struct {
	TopLanguages int `mapstructure:"top_languages"`
}

// RankingConfig holds repository ranking settings.
type RankingConfig struct {
	TopRepositories int `mapstructure:"top_repositories"`
}

// SearchConfig holds settings for batch searches.
type SearchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// OutputConfig holds presentation settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// ColorsConfig customizes the language color table.
// Override keys are matched against language names case-insensitively.
type ColorsConfig struct {
	Default   string            `mapstructure:"default"`
	Overrides map[string]string `mapstructure:"overrides"`
}

// LoadConfig loads configuration from a .env file, a config file and environment variables.
// Environment variables use the TECHSTACK_ prefix, e.g. TECHSTACK_API_TIMEOUT=5s.
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	viperCfg := viper.New()

	// Set defaults.
	setDefaults(viperCfg)

	// Read config file.
	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			viperCfg.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	// Read environment variables.
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("api.base_url", defaultBaseURL)
	viperCfg.SetDefault("api.user_agent", defaultUserAgent)
	viperCfg.SetDefault("api.timeout", defaultTimeout.String())

	viperCfg.SetDefault("aggregation.top_languages", defaultTopLanguages)
	viperCfg.SetDefault("ranking.top_repositories", defaultTopRepositories)
	viperCfg.SetDefault("search.concurrency", defaultConcurrency)

	viperCfg.SetDefault("output.format", FormatText)
	viperCfg.SetDefault("output.color", true)

	viperCfg.SetDefault("colors.default", "")
	viperCfg.SetDefault("colors.overrides", map[string]string{})
}

// Validate checks the configuration. Flags applied after loading should be re-validated.
func (c *Config) Validate() error {
	if c.Aggregation.TopLanguages <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopLanguages, c.Aggregation.TopLanguages)
	}

	if c.Ranking.TopRepositories <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopRepos, c.Ranking.TopRepositories)
	}

	if c.Search.Concurrency <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidConcurrency, c.Search.Concurrency)
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.API.Timeout)
	}

	if c.Output.Format != FormatText && c.Output.Format != FormatJSON {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	if c.Colors.Default != "" && !isHexColor(c.Colors.Default) {
		return fmt.Errorf("%w: default %q", ErrInvalidColor, c.Colors.Default)
	}

	for language, color := range c.Colors.Overrides {
		if !isHexColor(color) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidColor, language, color)
		}
	}

	return nil
}

// isHexColor accepts #rgb and #rrggbb.
func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
