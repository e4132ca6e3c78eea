package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the shared configuration for the CLI and the API server.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Ranges   RangesConfig   `mapstructure:"ranges"`
	Server   ServerConfig   `mapstructure:"server"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
}

type DatabaseConfig struct {
	// DSN is the SQLite path for assessment history. Empty disables
	// persistence.
	DSN   string `mapstructure:"dsn"`
	Debug bool   `mapstructure:"debug"`
}

type RangesConfig struct {
	// OverridesFile is an optional YAML file whose definitions replace
	// same-keyed entries of the built-in range table.
	OverridesFile string `mapstructure:"overrides_file"`
}

type ServerConfig struct {
	Addr              string  `mapstructure:"addr"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		App:      AppConfig{Name: "cardiorisk", LogLevel: "info"},
		Database: DatabaseConfig{DSN: "cardiorisk.db"},
		Server:   ServerConfig{Addr: ":8080", RequestsPerSecond: 10, Burst: 20},
	}
}

// Load reads a YAML configuration file.
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	cfg := Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.RequestsPerSecond < 0 {
		return fmt.Errorf("server.requests_per_second must not be negative")
	}
	return nil
}
