package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config represents the application configuration
type Config struct {
	API         APIConfig         `mapstructure:"api" yaml:"api"`
	Store       StoreConfig       `mapstructure:"store" yaml:"store"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Catalog     CatalogConfig     `mapstructure:"catalog" yaml:"catalog"`
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// APIConfig contains remote text/catalog service settings
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" yaml:"max_retries"`
}

// StoreConfig contains local persistence settings
type StoreConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
	InMemory  bool   `mapstructure:"in_memory" yaml:"in_memory"`
}

// ConcurrencyConfig contains bulk-operation settings
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// CatalogConfig contains catalog source settings
type CatalogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and clamps out-of-range values
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid api.base_url: %w", err)
	}
	if c.API.Timeout < time.Second {
		c.API.Timeout = DefaultTimeout
	}
	if c.API.MaxRetries < 0 {
		c.API.MaxRetries = 0
	}
	if c.Concurrency.Workers < 1 {
		c.Concurrency.Workers = DefaultWorkers
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	return nil
}
