package env

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/airmouse/pkg/link"
	"github.com/robotalks/airmouse/pkg/link/mqtt"
	"github.com/robotalks/airmouse/pkg/link/msgs"
)

func TestDefaultDeviceName(t *testing.T) {
	require.Equal(t, "AirMouse", DefaultDeviceName(""))
	require.Equal(t, "AirMouse-abc", DefaultDeviceName("abc"))
	require.Equal(t, "AirMouse-0123abcd", DefaultDeviceName("0123abcdef99"))
}

func TestNewLink(t *testing.T) {
	testCases := []struct {
		url   string
		codec string
		name  string
	}{
		{"ws://localhost:8888/", msgs.CodecJSON, "websocket"},
		{"wss://host/?codec=proto", msgs.CodecProto, "websocket"},
		{"mqtt://localhost:1883/airmouse/", msgs.CodecJSON, "mqtt"},
		{"serial:///dev/ttyUSB0?baud=9600", msgs.CodecJSON, "serial:/dev/ttyUSB0"},
	}
	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			conf := &Config{LinkURL: tc.url, Device: "dev"}
			l, err := conf.NewLink()
			require.NoError(t, err)
			require.Equal(t, tc.codec, l.Codec.Name())
			require.Equal(t, "dev", l.Device)
			require.Equal(t, tc.name, l.Transport.(interface{ Name() string }).Name())
			m := l.NewManager(link.NewConfig())
			require.Equal(t, "dev", m.Device)
			require.Equal(t, 3*time.Second, m.ReconnectInterval)
		})
	}

	l, err := (&Config{LinkURL: "mqtt://broker/p/", Device: "d1"}).NewLink()
	require.NoError(t, err)
	require.Equal(t, "d1", l.Transport.(*mqtt.Transport).Device)

	for _, bad := range []string{"ftp://x/", "ws://x/?codec=xml", "serial://", "://"} {
		_, err := (&Config{LinkURL: bad, Device: "d"}).NewLink()
		require.Error(t, err, bad)
	}
}

type fileConfig struct {
	Env  *Config      `yaml:"env"`
	Link *link.Config `yaml:"link"`
}

func TestLoadFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "airmouse")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "airmouse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env:
  link_url: ws://file-host:8888/
  device: from-file
link:
  reconnect_interval: 5s
`), 0644))

	conf := fileConfig{Env: &Config{LinkURL: "ws://default/"}, Link: link.NewConfig()}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.StringVar(&conf.Env.Device, "device", "", "")
	fs.StringVar(&conf.Env.LinkURL, "link", conf.Env.LinkURL, "")
	require.NoError(t, fs.Parse([]string{"-device", "from-flag"}))

	require.NoError(t, LoadFile(fs, path, &conf))
	require.Equal(t, "from-flag", conf.Env.Device)
	require.Equal(t, "ws://file-host:8888/", conf.Env.LinkURL)
	require.Equal(t, 5*time.Second, conf.Link.ReconnectInterval)

	require.NoError(t, LoadFile(fs, "", &conf))
	require.Error(t, LoadFile(fs, filepath.Join(dir, "missing.yaml"), &conf))
}
