// Package config loads CLI configuration from file, environment, and
// defaults using Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/w-gao/gtex-go/pkg/gtex"
)

// Config holds all settings for the gtex CLI.
type Config struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RateLimit      int           `mapstructure:"rate_limit"`
	GencodeVersion string        `mapstructure:"gencode_version"`
	GenomeBuild    string        `mapstructure:"genome_build"`
	Logging        LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig controls log verbosity and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from gtex.yaml (working directory or
// ~/.config/gtex), GTEX_-prefixed environment variables, and built-in
// defaults, in that order of precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("gtex")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/gtex")

	v.SetEnvPrefix("GTEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; defaults and env vars cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "https://gtexportal.org/rest/v1/")
	v.SetDefault("timeout", "30s")
	v.SetDefault("rate_limit", 5)
	v.SetDefault("gencode_version", gtex.GencodeV26)
	v.SetDefault("genome_build", gtex.GenomeBuildGRCh38)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

func validate(config *Config) error {
	if config.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if config.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive, got %d", config.RateLimit)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}
	return nil
}

// ClientConfig converts the loaded configuration into a gtex client
// configuration.
func (c *Config) ClientConfig() gtex.Config {
	return gtex.Config{
		BaseURL:        c.BaseURL,
		Timeout:        c.Timeout,
		RateLimit:      c.RateLimit,
		GencodeVersion: c.GencodeVersion,
		GenomeBuild:    c.GenomeBuild,
	}
}
