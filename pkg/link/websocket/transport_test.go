package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/airmouse/pkg/framework"
	"github.com/robotalks/airmouse/pkg/link"
)

func echoServer(t *testing.T, received chan<- string) *httptest.Server {
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"welcome","message":"Air Mouse Server Ready"}`))
		// one message per connection, then hang up
		if _, data, err := conn.ReadMessage(); err == nil {
			received <- string(data)
		}
	}))
}

func nextEvent(t *testing.T, events <-chan fx.Event) fx.Event {
	select {
	case ev := <-events:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for event")
	}
	return nil
}

func TestTransport(t *testing.T) {
	received := make(chan string, 4)
	srv := echoServer(t, received)
	defer srv.Close()

	tr := NewTransport("ws"+strings.TrimPrefix(srv.URL, "http"), false)
	require.Equal(t, link.ErrNotConnected, tr.Send([]byte("x")))

	events := make(chan fx.Event, 16)
	loop := fx.NewLoop()
	loop.Interval = time.Millisecond
	loop.AddTicker(fx.TickFunc(func(tc fx.TickContext) error {
		for _, ev := range tc.Events() {
			events <- ev
		}
		return nil
	}))
	loop.AddRunnable(tr)
	ctx, cancel := context.WithCancel(context.Background())
	doneCh := make(chan error, 1)
	go func() { doneCh <- loop.Run(ctx) }()

	tr.Connect()
	require.Equal(t, link.ConnectedEvent{}, nextEvent(t, events))
	ev := nextEvent(t, events)
	require.IsType(t, link.ReceivedEvent{}, ev)
	require.Contains(t, string(ev.(link.ReceivedEvent).Payload), "welcome")

	require.NoError(t, tr.Send([]byte(`{"type":"move","deltaX":1,"deltaY":2}`)))
	select {
	case msg := <-received:
		require.Equal(t, `{"type":"move","deltaX":1,"deltaY":2}`, msg)
	case <-time.After(5 * time.Second):
		t.Fatal("server received nothing")
	}

	require.IsType(t, link.DisconnectedEvent{}, nextEvent(t, events))

	cancel()
	require.Equal(t, context.Canceled, <-doneCh)
}

func TestTransportDialFailure(t *testing.T) {
	tr := NewTransport("ws://127.0.0.1:1/", false)
	events := make(chan fx.Event, 4)
	loop := fx.NewLoop()
	loop.Interval = time.Millisecond
	loop.AddTicker(fx.TickFunc(func(tc fx.TickContext) error {
		for _, ev := range tc.Events() {
			events <- ev
		}
		return nil
	}))
	loop.AddRunnable(tr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	tr.Connect()
	ev := nextEvent(t, events)
	require.IsType(t, link.DisconnectedEvent{}, ev)
	require.Error(t, ev.(link.DisconnectedEvent).Err)
}
