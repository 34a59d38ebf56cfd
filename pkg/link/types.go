// Package link owns the connection to the host: connection state,
// fixed-interval reconnects and the outbound move/command messages.
package link

import (
	"fmt"

	fx "github.com/robotalks/airmouse/pkg/framework"
)

// State is the connection state.
type State int

// States
const (
	Disconnected State = iota
	Connected
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Transport is the external connection. Run performs connects and
// reads in the background and reports through the loop events below.
type Transport interface {
	fx.Runnable
	// Connect requests a (re)connect. It never blocks; the outcome
	// arrives later as a ConnectedEvent or DisconnectedEvent.
	Connect()
	// Send writes one message payload.
	Send(payload []byte) error
}

// ConnectedEvent is posted by a Transport once connected.
type ConnectedEvent struct{}

// DisconnectedEvent is posted when a connect attempt fails or an
// established connection is lost.
type DisconnectedEvent struct {
	Err error
}

// ReceivedEvent carries one inbound payload.
type ReceivedEvent struct {
	Payload []byte
}

// Stats counts link activity.
type Stats struct {
	MovesSent        int
	MovesDropped     int
	CommandsSent     int
	CommandsFailed   int
	ReconnectAttempt int
	Received         int
}
