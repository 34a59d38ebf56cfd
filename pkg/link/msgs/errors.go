package msgs

import "errors"

var (
	// ErrUnknownType indicates the message type is not recognized.
	ErrUnknownType = errors.New("unknown message type")
	// ErrUnknownCodec indicates the codec name is not recognized.
	ErrUnknownCodec = errors.New("unknown codec")
)
