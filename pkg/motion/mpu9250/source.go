// Package mpu9250 reads angular rate from an MPU-9250 over SPI.
package mpu9250

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/devices/v3/mpu9250"
	"periph.io/x/host/v3"

	"github.com/robotalks/airmouse/pkg/motion"
)

// Config defines the sensor wiring.
type Config struct {
	SPIDevice string    `yaml:"spi_device"`
	CSPin     string    `yaml:"cs_pin"`
	GyroRange GyroRange `yaml:"gyro_range"`
	SelfTest  bool      `yaml:"self_test"`
}

var defaultConfig = Config{
	SPIDevice: "/dev/spidev0.0",
	CSPin:     "8",
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.SPIDevice, "imu-spi", defaultConfig.SPIDevice, "SPI device of the MPU-9250.")
	flag.StringVar(&defaultConfig.CSPin, "imu-cs", defaultConfig.CSPin, "Chip select GPIO of the MPU-9250.")
	flag.Var(&defaultConfig.GyroRange, "imu-gyro-range", "Gyro range 0-3 (±250/500/1000/2000 °/s).")
	flag.BoolVar(&defaultConfig.SelfTest, "imu-self-test", defaultConfig.SelfTest, "Run the sensor self-test at startup.")
}

// GyroRange selects the full scale: 0=±250°/s, 1=±500°/s,
// 2=±1000°/s, 3=±2000°/s.
type GyroRange byte

// String implements flag.Value.
func (r *GyroRange) String() string {
	return strconv.Itoa(int(*r))
}

// Set implements flag.Value.
func (r *GyroRange) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 3 {
		return fmt.Errorf("gyro range must be 0-3, got %q", s)
	}
	*r = GyroRange(v)
	return nil
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

// Source implements motion.Source.
type Source struct {
	imu *mpu9250.MPU9250
}

// Open brings up the sensor. Any error here means the device can't
// sense motion at all.
func (c *Config) Open() (*Source, error) {
	if c.GyroRange > 3 {
		return nil, fmt.Errorf("gyro range must be 0-3, got %d", c.GyroRange)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	cs := gpioreg.ByName(c.CSPin)
	if cs == nil {
		return nil, fmt.Errorf("CS pin %q not found", c.CSPin)
	}
	tr, err := mpu9250.NewSpiTransport(c.SPIDevice, cs)
	if err != nil {
		return nil, fmt.Errorf("SPI transport (%s): %w", c.SPIDevice, err)
	}
	imu, err := mpu9250.New(tr)
	if err != nil {
		return nil, fmt.Errorf("device creation: %w", err)
	}
	if err := imu.Init(); err != nil {
		return nil, fmt.Errorf("initialization: %w", err)
	}
	if err := imu.SetGyroRange(byte(c.GyroRange)); err != nil {
		return nil, fmt.Errorf("set gyro range: %w", err)
	}
	glog.Infof("MPU-9250 on %s: gyro range %d (±%d°/s)", c.SPIDevice, c.GyroRange, []int{250, 500, 1000, 2000}[c.GyroRange])
	if c.SelfTest {
		res, err := imu.SelfTest()
		if err != nil {
			return nil, fmt.Errorf("self-test: %w", err)
		}
		glog.Infof("MPU-9250 self-test gyro deviation: X: %.2f%%, Y: %.2f%%, Z: %.2f%%",
			res.GyroDeviation.X, res.GyroDeviation.Y, res.GyroDeviation.Z)
	}
	return &Source{imu: imu}, nil
}

// Read implements motion.Source.
func (s *Source) Read() (motion.RawSample, error) {
	gx, err := s.imu.GetRotationX()
	if err != nil {
		return motion.RawSample{}, fmt.Errorf("gyro X: %w", err)
	}
	gy, err := s.imu.GetRotationY()
	if err != nil {
		return motion.RawSample{}, fmt.Errorf("gyro Y: %w", err)
	}
	gz, err := s.imu.GetRotationZ()
	if err != nil {
		return motion.RawSample{}, fmt.Errorf("gyro Z: %w", err)
	}
	return motion.RawSample{Gx: gx, Gy: gy, Gz: gz}, nil
}
