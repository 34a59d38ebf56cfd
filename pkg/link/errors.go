package link

import "errors"

var (
	// ErrDisconnected indicates a message was not sent because the
	// link is disconnected.
	ErrDisconnected = errors.New("link disconnected")
	// ErrNotConnected is returned by transports asked to send before
	// a connection exists.
	ErrNotConnected = errors.New("transport not connected")
)
