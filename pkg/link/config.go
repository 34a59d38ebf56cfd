package link

import (
	"flag"
	"fmt"
	"time"
)

// Config defines the link behavior.
type Config struct {
	ReconnectInterval time.Duration `yaml:"reconnect_interval"`
}

var defaultConfig = Config{
	ReconnectInterval: 3 * time.Second,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.DurationVar(&defaultConfig.ReconnectInterval, "reconnect-interval", defaultConfig.ReconnectInterval, "Interval between reconnect attempts.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Validate checks the config.
func (c *Config) Validate() error {
	if c.ReconnectInterval <= 0 {
		return fmt.Errorf("reconnect interval must be positive, got %v", c.ReconnectInterval)
	}
	return nil
}
