// Package serial provides a tethered link over a serial port.
package serial

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jacobsa/go-serial/serial"

	"github.com/robotalks/airmouse/pkg/link"
	"github.com/robotalks/airmouse/pkg/link/stream"
)

// DefaultBaudRate is used when the URL doesn't specify baud.
const DefaultBaudRate = 115200

// OptionsFromURL parses serial:///dev/ttyUSB0?baud=115200.
func OptionsFromURL(u *url.URL) (serial.OpenOptions, error) {
	opts := serial.OpenOptions{
		PortName:        u.Path,
		BaudRate:        DefaultBaudRate,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	}
	if opts.PortName == "" {
		return opts, fmt.Errorf("serial port not specified in %q", u.String())
	}
	if baud := u.Query().Get("baud"); baud != "" {
		rate, err := strconv.ParseUint(baud, 10, 32)
		if err != nil {
			return opts, fmt.Errorf("invalid baud %q: %v", baud, err)
		}
		opts.BaudRate = uint(rate)
	}
	return opts, nil
}

// NewTransport creates a Transport which opens the port on each
// connect request.
func NewTransport(opts serial.OpenOptions) *link.PacketTransport {
	return link.NewPacketTransport("serial:"+opts.PortName, func(context.Context) (link.PacketConn, error) {
		port, err := serial.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", opts.PortName, err)
		}
		return stream.New(port), nil
	})
}
