package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the application configuration. Every field has a default, so
// running without a config file works out of the box.
type Config struct {
	Exchange ExchangeConfig `mapstructure:"exchange"`
	CLI      CLIConfig      `mapstructure:"cli"`
	Journal  JournalConfig  `mapstructure:"journal"`
	Log      LogConfig      `mapstructure:"log"`
}

// ExchangeConfig holds the exchange connection settings.
type ExchangeConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// CLIConfig holds defaults for the buy command.
type CLIConfig struct {
	DefaultBuffer float64  `mapstructure:"default_buffer"`
	KnownSymbols  []string `mapstructure:"known_symbols"`
}

// JournalConfig holds the order journal settings. An empty path disables the
// journal.
type JournalConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Load reads the config file at path, or searches the working directory for
// config.yaml when path is empty. A missing file yields the defaults; an
// unreadable or unparseable one is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("exchange.base_url", "https://api.kraken.com")
	v.SetDefault("cli.default_buffer", 0.002)
	v.SetDefault("cli.known_symbols", []string{"XXBTZEUR", "SOLEUR", "XETHZEUR", "XLTCZEUR"})
	v.SetDefault("journal.path", "")
	v.SetDefault("log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}
