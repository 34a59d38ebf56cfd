// Package websocket provides the websocket client link.
package websocket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/robotalks/airmouse/pkg/link"
)

// DefaultWriteTimeout bounds a single frame write.
const DefaultWriteTimeout = time.Second

// Conn implements link.PacketConn on a gorilla websocket connection.
type Conn struct {
	Conn         *websocket.Conn
	MessageType  int
	WriteTimeout time.Duration

	closeOnce sync.Once
}

// ReadPacket implements link.PacketReader.
func (c *Conn) ReadPacket() ([]byte, error) {
	_, data, err := c.Conn.ReadMessage()
	return data, err
}

// WritePacket implements link.PacketWriter.
func (c *Conn) WritePacket(pkt []byte) error {
	timeout := c.WriteTimeout
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	c.Conn.SetWriteDeadline(time.Now().Add(timeout))
	return c.Conn.WriteMessage(c.MessageType, pkt)
}

// Close implements io.Closer.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.Conn.Close()
	})
	return err
}

// NewTransport creates a transport dialing serverURL. Binary frames
// are used when binary is set, otherwise text frames.
func NewTransport(serverURL string, binary bool) *link.PacketTransport {
	msgType := websocket.TextMessage
	if binary {
		msgType = websocket.BinaryMessage
	}
	dialer := &websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	return link.NewPacketTransport("websocket", func(ctx context.Context) (link.PacketConn, error) {
		conn, _, err := dialer.DialContext(ctx, serverURL, nil)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", serverURL, err)
		}
		return &Conn{Conn: conn, MessageType: msgType}, nil
	})
}
