package motion

import (
	"flag"
	"fmt"
	"math"
	"time"
)

// Config defines the tuning of calibration and filtering.
type Config struct {
	DeadZone    float64 `yaml:"dead_zone"`
	Decay       float64 `yaml:"smoothing"`
	Sensitivity float64 `yaml:"sensitivity"`
	Divisor     float64 `yaml:"divisor"`
	MaxDelta    int     `yaml:"max_delta"`
	Axes        AxisMap `yaml:"axes"`

	CalibrationSamples int           `yaml:"calibration_samples"`
	CalibrationDelay   time.Duration `yaml:"calibration_delay"`
}

var defaultConfig = Config{
	DeadZone:           300,
	Decay:              0.7,
	Sensitivity:        5,
	Divisor:            100,
	MaxDelta:           20,
	Axes:               DefaultAxisMap,
	CalibrationSamples: 150,
	CalibrationDelay:   10 * time.Millisecond,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.Float64Var(&defaultConfig.DeadZone, "dead-zone", defaultConfig.DeadZone, "Angular rate below this is treated as noise.")
	flag.Float64Var(&defaultConfig.Decay, "smoothing", defaultConfig.Decay, "Smoothing decay in [0, 1), higher is smoother.")
	flag.Float64Var(&defaultConfig.Sensitivity, "sensitivity", defaultConfig.Sensitivity, "Pointer sensitivity.")
	flag.Float64Var(&defaultConfig.Divisor, "sensitivity-divisor", defaultConfig.Divisor, "Divisor applied after sensitivity.")
	flag.IntVar(&defaultConfig.MaxDelta, "max-delta", defaultConfig.MaxDelta, "Max pointer delta per tick on each axis.")
	flag.Var(&defaultConfig.Axes, "axes", "Axis map dx,dy from gyro axes, e.g. y,-x.")
	flag.IntVar(&defaultConfig.CalibrationSamples, "calibration-samples", defaultConfig.CalibrationSamples, "Samples averaged during calibration.")
	flag.DurationVar(&defaultConfig.CalibrationDelay, "calibration-delay", defaultConfig.CalibrationDelay, "Delay between calibration samples.")
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

// Validate checks the values are usable.
func (c *Config) Validate() error {
	if !(c.DeadZone >= 0) || math.IsInf(c.DeadZone, 0) {
		return fmt.Errorf("dead zone must be a non-negative number, got %v", c.DeadZone)
	}
	if !(c.Decay >= 0 && c.Decay < 1) {
		return fmt.Errorf("smoothing must be in [0, 1), got %v", c.Decay)
	}
	if !finite(c.Sensitivity) {
		return fmt.Errorf("sensitivity must be a finite number, got %v", c.Sensitivity)
	}
	if !finite(c.Divisor) || c.Divisor == 0 {
		return fmt.Errorf("sensitivity divisor must be a finite non-zero number, got %v", c.Divisor)
	}
	if c.MaxDelta < 1 {
		return fmt.Errorf("max delta must be at least 1, got %d", c.MaxDelta)
	}
	if c.CalibrationSamples < 1 {
		return fmt.Errorf("calibration samples must be at least 1, got %d", c.CalibrationSamples)
	}
	if c.CalibrationDelay < 0 {
		return fmt.Errorf("calibration delay must not be negative, got %v", c.CalibrationDelay)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
