package joystick

import (
	"flag"
)

// Config defines the joystick mapping.
type Config struct {
	Enabled     bool `yaml:"enabled"`
	DeviceIndex int  `yaml:"device_index"`
	// Button is the index of the joystick button acting as the device button.
	Button int `yaml:"button"`
	// AxisX and AxisY feed gyro x and y.
	AxisX int `yaml:"axis_x"`
	AxisY int `yaml:"axis_y"`
	// FullScale is the raw gyro rate at full stick deflection.
	FullScale int  `yaml:"full_scale"`
	Verbose   bool `yaml:"verbose"`
}

var defaultConfig = Config{
	DeviceIndex: -1,
	AxisX:       0,
	AxisY:       1,
	FullScale:   4000,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.BoolVar(&defaultConfig.Enabled, "joystick", defaultConfig.Enabled, "Drive the simulated gyro and button with a joystick.")
	flag.IntVar(&defaultConfig.DeviceIndex, "joystick-device", defaultConfig.DeviceIndex, "Joystick index, -1 for auto detection.")
	flag.IntVar(&defaultConfig.Button, "joystick-button", defaultConfig.Button, "Joystick button acting as the device button.")
	flag.IntVar(&defaultConfig.FullScale, "joystick-scale", defaultConfig.FullScale, "Raw gyro rate at full deflection.")
	flag.BoolVar(&defaultConfig.Verbose, "joystick-verbose", defaultConfig.Verbose, "Print joystick events.")
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

// NewDriver creates a Driver using the config.
func (c *Config) NewDriver(rate RateSetter, btn ButtonSetter) *Driver {
	d := NewDriver(rate, btn)
	d.DeviceIndex = c.DeviceIndex
	d.Button = c.Button
	d.AxisX, d.AxisY = c.AxisX, c.AxisY
	d.FullScale = c.FullScale
	d.Verbose = c.Verbose
	return d
}
