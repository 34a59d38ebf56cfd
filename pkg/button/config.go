package button

import (
	"flag"
	"fmt"
	"time"
)

// Config defines the button wiring and press thresholds.
type Config struct {
	Pin        string        `yaml:"pin"`
	ActiveLow  bool          `yaml:"active_low"`
	ShortPress time.Duration `yaml:"short_press"`
	LongPress  time.Duration `yaml:"long_press"`
}

var defaultConfig = Config{
	Pin:        "GPIO17",
	ActiveLow:  true,
	ShortPress: 500 * time.Millisecond,
	LongPress:  3000 * time.Millisecond,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Pin, "button-pin", defaultConfig.Pin, "GPIO of the button.")
	flag.BoolVar(&defaultConfig.ActiveLow, "button-active-low", defaultConfig.ActiveLow, "Button pulls the pin low when pressed.")
	flag.DurationVar(&defaultConfig.ShortPress, "short-press", defaultConfig.ShortPress, "Presses shorter than this toggle streaming.")
	flag.DurationVar(&defaultConfig.LongPress, "long-press", defaultConfig.LongPress, "Presses at least this long click; in between calibrates.")
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

// Validate checks the thresholds.
func (c *Config) Validate() error {
	if c.ShortPress <= 0 {
		return fmt.Errorf("short press must be positive, got %v", c.ShortPress)
	}
	if c.LongPress <= c.ShortPress {
		return fmt.Errorf("long press (%v) must be longer than short press (%v)", c.LongPress, c.ShortPress)
	}
	return nil
}
