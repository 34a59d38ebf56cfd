// Package env wires a device from its configuration: identity, link
// transport and the config file.
package env

import (
	"flag"
	"fmt"
	"net/url"
	"os"

	"github.com/robotalks/airmouse/pkg/link"
	"github.com/robotalks/airmouse/pkg/link/mqtt"
	"github.com/robotalks/airmouse/pkg/link/msgs"
	"github.com/robotalks/airmouse/pkg/link/serial"
	"github.com/robotalks/airmouse/pkg/link/websocket"
)

// Config provides the options shared by everything talking to a host.
type Config struct {
	// LinkURL selects the transport by scheme, e.g.
	// ws://host:8888/, mqtt://broker:1883/airmouse/, serial:///dev/ttyUSB0.
	// The codec query parameter picks json (default) or proto.
	LinkURL string `yaml:"link_url"`
	// Device is the identifier sent in the status message.
	Device string `yaml:"device"`
}

var defaultConfig = Config{
	LinkURL: "ws://localhost:8888/",
}

func init() {
	if val := os.Getenv("AIRMOUSE_LINK_URL"); val != "" {
		defaultConfig.LinkURL = val
	}
	if val := os.Getenv("AIRMOUSE_DEVICE"); val != "" {
		defaultConfig.Device = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.LinkURL, "link", defaultConfig.LinkURL, "Host link URL (ws, wss, mqtt or serial).")
	flag.StringVar(&defaultConfig.Device, "device", defaultConfig.Device, "Device identifier, derived from machine ID if empty.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// DeviceName returns Device or the machine derived default.
func (c *Config) DeviceName() string {
	if c.Device != "" {
		return c.Device
	}
	return DefaultDeviceName(MachineID())
}

// Link is a ready-to-use transport and its codec.
type Link struct {
	Transport link.Transport
	Codec     msgs.Codec
	Device    string
}

// NewLink creates the transport selected by LinkURL.
func (c *Config) NewLink() (*Link, error) {
	u, err := url.Parse(c.LinkURL)
	if err != nil {
		return nil, fmt.Errorf("invalid link URL: %v", err)
	}
	codec, err := msgs.CodecByName(u.Query().Get("codec"))
	if err != nil {
		return nil, err
	}
	l := &Link{Codec: codec, Device: c.DeviceName()}
	switch u.Scheme {
	case "ws", "wss":
		q := u.Query()
		q.Del("codec")
		u.RawQuery = q.Encode()
		l.Transport = websocket.NewTransport(u.String(), codec.Name() == msgs.CodecProto)
	case "mqtt", "tcp", "ssl", "tls":
		l.Transport = mqtt.NewTransport(u, l.Device)
	case "serial":
		opts, err := serial.OptionsFromURL(u)
		if err != nil {
			return nil, err
		}
		l.Transport = serial.NewTransport(opts)
	default:
		return nil, fmt.Errorf("unknown link URL scheme: %q", u.Scheme)
	}
	return l, nil
}

// NewManager creates a link.Manager on this link.
func (l *Link) NewManager(conf *link.Config) *link.Manager {
	return link.NewManager(conf, l.Transport, l.Codec, l.Device)
}
