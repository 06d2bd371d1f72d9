package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	DefaultBaseURL = "https://bible-daniel.ddns.net"

	DefaultWorkers = 4
	DefaultTimeout = 30 * time.Second

	DefaultServerAddr = "127.0.0.1:8712"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bibliago"
	}
	return filepath.Join(home, ".bibliago")
}

// DataDir returns the local store directory path
func DataDir() string {
	return filepath.Join(ConfigDir(), "data")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    DefaultBaseURL,
			Timeout:    DefaultTimeout,
			MaxRetries: 0,
		},
		Store: StoreConfig{
			Directory: DataDir(),
		},
		Concurrency: ConcurrencyConfig{
			Workers: DefaultWorkers,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
