package msgs

import (
	"encoding/json"
	"fmt"
)

// Message is implemented by all link messages.
type Message interface {
	MsgType() string
}

// Message types.
const (
	TypeStatus   = "status"
	TypeMove     = "move"
	TypeCommand  = "command"
	TypeWelcome  = "welcome"
	TypeResponse = "response"
)

// Commands understood by the host.
const (
	CmdLeftClick   = "leftclick"
	CmdRightClick  = "rightclick"
	CmdDoubleClick = "doubleclick"
	CmdScrollUp    = "scroll_up"
	CmdScrollDown  = "scroll_down"
)

// Status announces the device after connecting.
type Status struct {
	Device string `json:"device"`
}

// Move carries one pointer delta.
type Move struct {
	DeltaX int `json:"deltaX"`
	DeltaY int `json:"deltaY"`
}

// Command asks the host to perform a discrete action.
type Command struct {
	Command string `json:"command"`
}

// Reply is a host message carrying text, e.g. welcome or response.
type Reply struct {
	Kind    string `json:"type"`
	Message string `json:"message"`
}

// MsgType implements Message.
func (m *Status) MsgType() string { return TypeStatus }

// MsgType implements Message.
func (m *Move) MsgType() string { return TypeMove }

// MsgType implements Message.
func (m *Command) MsgType() string { return TypeCommand }

// MsgType implements Message.
func (m *Reply) MsgType() string { return m.Kind }

type (
	statusFields  Status
	moveFields    Move
	commandFields Command
)

// MarshalJSON implements json.Marshaler.
func (m *Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		statusFields
	}{TypeStatus, statusFields(*m)})
}

// MarshalJSON implements json.Marshaler.
func (m *Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		moveFields
	}{TypeMove, moveFields(*m)})
}

// MarshalJSON implements json.Marshaler.
func (m *Command) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		commandFields
	}{TypeCommand, commandFields(*m)})
}

// String implements fmt.Stringer.
func (m *Move) String() string {
	return fmt.Sprintf("move(%d,%d)", m.DeltaX, m.DeltaY)
}

// New creates an empty message of the given type.
func New(msgType string) (Message, error) {
	switch msgType {
	case TypeStatus:
		return &Status{}, nil
	case TypeMove:
		return &Move{}, nil
	case TypeCommand:
		return &Command{}, nil
	case TypeWelcome, TypeResponse:
		return &Reply{Kind: msgType}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, msgType)
}
