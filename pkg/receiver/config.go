package receiver

import (
	"flag"
	"fmt"
	"time"

	"github.com/robotalks/airmouse/pkg/link/msgs"
)

// Config defines the receiver options.
type Config struct {
	Addr          string        `yaml:"addr"`
	Acceleration  float64       `yaml:"acceleration"`
	StatsInterval time.Duration `yaml:"stats_interval"`
	ScreenWidth   int           `yaml:"screen_width"`
	ScreenHeight  int           `yaml:"screen_height"`
	Codec         string        `yaml:"codec"`
}

var defaultConfig = Config{
	Addr:          ":8888",
	Acceleration:  1.2,
	StatsInterval: 30 * time.Second,
	ScreenWidth:   1920,
	ScreenHeight:  1080,
	Codec:         msgs.CodecJSON,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Addr, "listen", defaultConfig.Addr, "Listen address.")
	flag.Float64Var(&defaultConfig.Acceleration, "acceleration", defaultConfig.Acceleration, "Multiplier applied to received deltas.")
	flag.DurationVar(&defaultConfig.StatsInterval, "stats-interval", defaultConfig.StatsInterval, "Interval of statistics logging.")
	flag.IntVar(&defaultConfig.ScreenWidth, "screen-width", defaultConfig.ScreenWidth, "Virtual screen width.")
	flag.IntVar(&defaultConfig.ScreenHeight, "screen-height", defaultConfig.ScreenHeight, "Virtual screen height.")
	flag.StringVar(&defaultConfig.Codec, "codec", defaultConfig.Codec, "Message codec: json or proto.")
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

// NewServer creates a Server driving a VirtualPointer.
func (c *Config) NewServer() (*Server, error) {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return nil, fmt.Errorf("invalid screen size %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	codec, err := msgs.CodecByName(c.Codec)
	if err != nil {
		return nil, err
	}
	s := NewServer(NewVirtualPointer(c.ScreenWidth, c.ScreenHeight))
	s.Addr = c.Addr
	s.Acceleration = c.Acceleration
	s.StatsInterval = c.StatsInterval
	s.Codec = codec
	return s, nil
}
