package link

import (
	"fmt"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/airmouse/pkg/framework"
	"github.com/robotalks/airmouse/pkg/link/msgs"
)

// Manager owns the connection state. All methods must be called from
// the loop goroutine; transports talk to it through loop events.
type Manager struct {
	Transport         Transport
	Codec             msgs.Codec
	Device            string
	ReconnectInterval time.Duration

	state       State
	lastAttempt time.Time
	stats       Stats
}

// NewManager creates a Manager.
func NewManager(conf *Config, transport Transport, codec msgs.Codec, device string) *Manager {
	if codec == nil {
		codec = msgs.JSONCodec{}
	}
	return &Manager{
		Transport:         transport,
		Codec:             codec,
		Device:            device,
		ReconnectInterval: conf.ReconnectInterval,
	}
}

// AddToLoop implements LoopAdder.
func (m *Manager) AddToLoop(l *fx.Loop) {
	l.AddRunnable(m.Transport)
}

// State returns the connection state.
func (m *Manager) State() State {
	return m.state
}

// Connected tells whether the link is connected.
func (m *Manager) Connected() bool {
	return m.state == Connected
}

// Stats returns the counters.
func (m *Manager) Stats() Stats {
	return m.stats
}

// HandleEvent applies a transport event. It returns false if the
// event is not a link event.
func (m *Manager) HandleEvent(ev fx.Event) bool {
	switch e := ev.(type) {
	case ConnectedEvent:
		if err := m.OnConnect(); err != nil {
			glog.Warningf("send status error: %v", err)
		}
	case DisconnectedEvent:
		m.OnDisconnect(e.Err)
	case ReceivedEvent:
		m.OnReceive(e.Payload)
	default:
		return false
	}
	return true
}

// OnConnect marks the link connected and announces the device.
func (m *Manager) OnConnect() error {
	m.state = Connected
	glog.Infof("connected as %q", m.Device)
	return m.send(&msgs.Status{Device: m.Device})
}

// OnDisconnect marks the link disconnected.
func (m *Manager) OnDisconnect(err error) {
	if m.state == Connected {
		glog.Warningf("disconnected: %v", err)
	} else if err != nil {
		glog.V(1).Infof("connect failed: %v", err)
	}
	m.state = Disconnected
}

// OnReceive logs an inbound payload.
func (m *Manager) OnReceive(payload []byte) {
	m.stats.Received++
	msg, err := m.Codec.Decode(payload)
	if err != nil {
		glog.Infof("RCV %q (%v)", payload, err)
		return
	}
	if reply, ok := msg.(*msgs.Reply); ok {
		glog.Infof("RCV %s: %s", reply.Kind, reply.Message)
		return
	}
	glog.Infof("RCV %s", msg.MsgType())
}

// Tick requests a reconnect when the link has been disconnected for
// longer than ReconnectInterval since the last attempt. The first
// call always attempts. It reports whether a request was issued.
func (m *Manager) Tick(now time.Time) bool {
	if m.state != Disconnected {
		return false
	}
	if !m.lastAttempt.IsZero() && now.Sub(m.lastAttempt) <= m.ReconnectInterval {
		return false
	}
	m.lastAttempt = now
	m.stats.ReconnectAttempt++
	glog.V(1).Info("reconnecting")
	m.Transport.Connect()
	return true
}

// SendMove sends a pointer delta. While disconnected nothing is
// written and ErrDisconnected is returned; the move is dropped.
func (m *Manager) SendMove(dx, dy int) error {
	if m.state != Connected {
		m.stats.MovesDropped++
		return ErrDisconnected
	}
	if err := m.send(&msgs.Move{DeltaX: dx, DeltaY: dy}); err != nil {
		m.stats.MovesDropped++
		return err
	}
	m.stats.MovesSent++
	return nil
}

// SendCommand sends a discrete command. It fails with ErrDisconnected
// while disconnected. Commands are never queued.
func (m *Manager) SendCommand(name string) error {
	if m.state != Connected {
		m.stats.CommandsFailed++
		return fmt.Errorf("command %q: %w", name, ErrDisconnected)
	}
	if err := m.send(&msgs.Command{Command: name}); err != nil {
		m.stats.CommandsFailed++
		return fmt.Errorf("command %q: %w", name, err)
	}
	m.stats.CommandsSent++
	return nil
}

func (m *Manager) send(msg msgs.Message) error {
	payload, err := m.Codec.Encode(msg)
	if err != nil {
		return err
	}
	glog.V(2).Infof("SND %s", payload)
	if err := m.Transport.Send(payload); err != nil {
		m.OnDisconnect(err)
		return fmt.Errorf("send %s: %w", msg.MsgType(), err)
	}
	return nil
}
