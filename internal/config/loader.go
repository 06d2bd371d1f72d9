package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file, environment, and defaults. Uses the
// global viper instance so CLI flag bindings are honored.
func Load() (*Config, error) {
	v := viper.GetViper()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Environment variables (BIBLIAGO_*)
	v.SetEnvPrefix("BIBLIAGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers defaults on the viper instance
func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("api.base_url", def.API.BaseURL)
	v.SetDefault("api.timeout", def.API.Timeout)
	v.SetDefault("api.max_retries", def.API.MaxRetries)
	v.SetDefault("store.directory", def.Store.Directory)
	v.SetDefault("store.in_memory", def.Store.InMemory)
	v.SetDefault("concurrency.workers", def.Concurrency.Workers)
	v.SetDefault("catalog.file", "")
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
}
