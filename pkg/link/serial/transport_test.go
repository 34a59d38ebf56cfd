package serial

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsFromURL(t *testing.T) {
	u, err := url.Parse("serial:///dev/ttyUSB0?baud=9600")
	require.NoError(t, err)
	opts, err := OptionsFromURL(u)
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyUSB0", opts.PortName)
	require.Equal(t, uint(9600), opts.BaudRate)
	require.Equal(t, uint(8), opts.DataBits)

	u, _ = url.Parse("serial:///dev/ttyACM0")
	opts, err = OptionsFromURL(u)
	require.NoError(t, err)
	require.Equal(t, uint(DefaultBaudRate), opts.BaudRate)

	u, _ = url.Parse("serial:///dev/ttyACM0?baud=fast")
	_, err = OptionsFromURL(u)
	require.Error(t, err)

	u, _ = url.Parse("serial://")
	_, err = OptionsFromURL(u)
	require.Error(t, err)

	tr := NewTransport(opts)
	require.Equal(t, "serial:/dev/ttyACM0", tr.Name())
}
