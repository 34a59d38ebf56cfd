package joystick

import (
	"errors"
	"io"
)

// EventType tells what changed.
type EventType uint8

// Event types
const (
	EventButton EventType = 0x01
	EventAxis   EventType = 0x02
	// EventInit is or-ed in for the synthetic events reporting the
	// initial state right after open.
	EventInit EventType = 0x80
)

// Event is one change on the device.
type Event struct {
	Type   EventType
	Number int
	Value  int
}

// IsButton tells whether it's a button event.
func (e Event) IsButton() bool {
	return e.Type&(EventButton|EventAxis) == EventButton
}

// IsAxis tells whether it's an axis event.
func (e Event) IsAxis() bool {
	return e.Type&(EventButton|EventAxis) == EventAxis
}

// Device is an opened joystick.
type Device interface {
	io.Closer
	Index() int
	Name() string
	ReadEvent() (Event, error)
}

// ErrUnsupported is returned where joysticks can't be opened.
var ErrUnsupported = errors.New("joystick not supported on this platform")
