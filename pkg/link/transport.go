package link

import (
	"context"
	"sync"

	"github.com/golang/glog"

	fx "github.com/robotalks/airmouse/pkg/framework"
)

// PacketReader reads packets in bytes.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// PacketWriter writes packets in bytes.
type PacketWriter interface {
	WritePacket([]byte) error
}

// PacketConn is an established packet connection.
type PacketConn interface {
	PacketReader
	PacketWriter
	Close() error
}

// DialFunc opens a PacketConn.
type DialFunc func(context.Context) (PacketConn, error)

// PacketTransport implements Transport over any PacketConn. One
// connection is alive at a time; connect requests that arrive while
// connected are served after the connection drops.
type PacketTransport struct {
	Dial DialFunc

	name  string
	reqCh chan struct{}
	lock  sync.Mutex
	conn  PacketConn
}

// NewPacketTransport creates a PacketTransport.
func NewPacketTransport(name string, dial DialFunc) *PacketTransport {
	return &PacketTransport{
		Dial:  dial,
		name:  name,
		reqCh: make(chan struct{}, 1),
	}
}

// Name implements fx.Named.
func (t *PacketTransport) Name() string {
	return t.name
}

// Connect implements Transport.
func (t *PacketTransport) Connect() {
	select {
	case t.reqCh <- struct{}{}:
	default:
	}
}

// Send implements Transport. A failed write closes the connection.
func (t *PacketTransport) Send(payload []byte) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.conn == nil {
		return ErrNotConnected
	}
	err := t.conn.WritePacket(payload)
	if err != nil {
		t.conn.Close()
	}
	return err
}

// Run implements fx.Runnable.
func (t *PacketTransport) Run(ctx context.Context) error {
	poster := fx.LoopCtlFrom(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.reqCh:
		}
		glog.V(1).Infof("%s: dialing", t.name)
		conn, err := t.Dial(ctx)
		if err != nil {
			poster.PostEvent(DisconnectedEvent{Err: err})
			continue
		}
		t.setConn(conn)
		poster.PostEvent(ConnectedEvent{})
		err = t.readLoop(ctx, conn, poster)
		t.setConn(nil)
		conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		poster.PostEvent(DisconnectedEvent{Err: err})
	}
}

func (t *PacketTransport) readLoop(ctx context.Context, conn PacketConn, poster fx.EventPoster) error {
	doneCh := make(chan struct{})
	defer close(doneCh)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-doneCh:
		}
	}()
	for {
		pkt, err := conn.ReadPacket()
		if err != nil {
			return err
		}
		poster.PostEvent(ReceivedEvent{Payload: pkt})
	}
}

func (t *PacketTransport) setConn(conn PacketConn) {
	t.lock.Lock()
	t.conn = conn
	t.lock.Unlock()
}
