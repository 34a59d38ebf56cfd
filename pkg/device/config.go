package device

import (
	"flag"
	"fmt"
	"time"

	"github.com/robotalks/airmouse/pkg/button"
	fx "github.com/robotalks/airmouse/pkg/framework"
	"github.com/robotalks/airmouse/pkg/link"
	"github.com/robotalks/airmouse/pkg/link/msgs"
	"github.com/robotalks/airmouse/pkg/motion"
)

// Config defines the device level options.
type Config struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	ClickCommand string        `yaml:"click_command"`
}

var defaultConfig = Config{
	TickInterval: fx.DefaultInterval,
	ClickCommand: msgs.CmdLeftClick,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.DurationVar(&defaultConfig.TickInterval, "tick", defaultConfig.TickInterval, "Interval of the control loop.")
	flag.StringVar(&defaultConfig.ClickCommand, "click-command", defaultConfig.ClickCommand, "Command sent on a very long press.")
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
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", c.TickInterval)
	}
	if c.ClickCommand == "" {
		return fmt.Errorf("click command must not be empty")
	}
	return nil
}

// Parts are the collaborators of a Device.
type Parts struct {
	Motion   motion.Source
	Button   button.Source
	Link     *link.Manager
	Reporter Reporter
}

// Configs groups the configs a Device is built from. It is also the
// layout of the config file.
type Configs struct {
	Device *Config        `yaml:"device"`
	Motion *motion.Config `yaml:"motion"`
	Button *button.Config `yaml:"button"`
	Link   *link.Config   `yaml:"link"`
}

// DefaultConfigs returns the flag backed defaults of every package.
func DefaultConfigs() *Configs {
	return &Configs{
		Device: Default(),
		Motion: motion.Default(),
		Button: button.Default(),
		Link:   link.Default(),
	}
}

// Validate checks all configs.
func (c *Configs) Validate() error {
	if err := c.Device.Validate(); err != nil {
		return err
	}
	if err := c.Motion.Validate(); err != nil {
		return err
	}
	if err := c.Button.Validate(); err != nil {
		return err
	}
	return c.Link.Validate()
}

// NewDevice creates a Device.
func (c *Configs) NewDevice(parts Parts) *Device {
	reporter := parts.Reporter
	if reporter == nil {
		reporter = LogReporter{}
	}
	return &Device{
		Motion:       parts.Motion,
		Button:       parts.Button,
		Link:         parts.Link,
		Filter:       motion.NewFilter(c.Motion),
		Calibrator:   motion.NewCalibrator(c.Motion),
		Presses:      button.NewMachine(c.Button),
		Reporter:     reporter,
		ClickCommand: c.Device.ClickCommand,
	}
}
