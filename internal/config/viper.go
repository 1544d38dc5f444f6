// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Output struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"output" yaml:"output"`

	Dart struct {
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize the API key
		BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		Years          int    `mapstructure:"years" yaml:"years"`
	} `mapstructure:"dart" yaml:"dart"`

	KRX struct {
		BaseURL      string `mapstructure:"base_url" yaml:"base_url"`
		LookbackDays int    `mapstructure:"lookback_days" yaml:"lookback_days"`
	} `mapstructure:"krx" yaml:"krx"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	AI struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Model   string `mapstructure:"model" yaml:"model"`
		APIKey  string `mapstructure:"api_key" yaml:"-"`
	} `mapstructure:"ai" yaml:"ai"`
}

// setDefaults registers the default value for every configuration key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("output.directory", "output")

	v.SetDefault("dart.base_url", "https://opendart.fss.or.kr")
	v.SetDefault("dart.timeout_seconds", 10)
	v.SetDefault("dart.years", 6)

	v.SetDefault("krx.base_url", "http://data.krx.co.kr")
	v.SetDefault("krx.lookback_days", 3*365)

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-1.5-flash")
}

// InitializeConfig loads configuration from file, environment variables and
// defaults, in that order of precedence (env over file over defaults).
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("krx-report")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.config/krx-report")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything has a default.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("KRX_REPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials come from their conventional variable names, not the
	// prefixed form.
	_ = v.BindEnv("dart.api_key", "DART_API_KEY")
	_ = v.BindEnv("ai.api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for values the rest of the application
// cannot work with.
func (c *Config) Validate() error {
	if c.Dart.TimeoutSeconds <= 0 {
		return fmt.Errorf("dart.timeout_seconds must be positive, got %d", c.Dart.TimeoutSeconds)
	}
	if c.Dart.Years <= 0 {
		return fmt.Errorf("dart.years must be positive, got %d", c.Dart.Years)
	}
	if c.KRX.LookbackDays <= 0 {
		return fmt.Errorf("krx.lookback_days must be positive, got %d", c.KRX.LookbackDays)
	}
	if len(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv.delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	return nil
}
