package receiver

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/robotalks/airmouse/pkg/link/msgs"
)

func newTestServer() (*Server, *VirtualPointer) {
	p := NewVirtualPointer(100, 50)
	return NewServer(p), p
}

func TestProcessMove(t *testing.T) {
	testCases := []struct {
		name   string
		msg    string
		expect [2]int
		moves  int
	}{
		{"scaled", `{"type":"move","deltaX":10,"deltaY":-5}`, [2]int{62, 19}, 1},
		{"truncated", `{"type":"move","deltaX":-3,"deltaY":3}`, [2]int{47, 28}, 1},
		{"zero after scaling", `{"type":"move","deltaX":0,"deltaY":0}`, [2]int{50, 25}, 0},
		{"clamped", `{"type":"move","deltaX":1000,"deltaY":-1000}`, [2]int{99, 0}, 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, p := newTestServer()
			require.Nil(t, s.Process([]byte(tc.msg)))
			x, y := p.Position()
			require.Equal(t, tc.expect, [2]int{x, y})
			require.Equal(t, tc.moves, s.Stats().Movements)
			require.Equal(t, 1, s.Stats().Commands)
		})
	}
}

func TestProcessCommands(t *testing.T) {
	s, p := newTestServer()
	reply := s.Process([]byte(`{"type":"command","command":"leftclick"}`))
	require.Equal(t, &msgs.Reply{Kind: msgs.TypeResponse, Message: ClickedMessage}, reply)
	require.Nil(t, s.Process([]byte(`{"type":"command","command":"rightclick"}`)))
	require.Nil(t, s.Process([]byte(`{"type":"command","command":"doubleclick"}`)))
	require.Nil(t, s.Process([]byte(`{"type":"command","command":"scroll_up"}`)))
	require.Nil(t, s.Process([]byte(`{"type":"command","command":"scroll_down"}`)))
	require.Nil(t, s.Process([]byte(`{"type":"command","command":"scroll_up"}`)))
	require.Nil(t, s.Process([]byte(`{"type":"command","command":"jump"}`)))

	require.Equal(t, 3, p.Clicks(ButtonLeft))
	require.Equal(t, 1, p.Clicks(ButtonRight))
	require.Equal(t, 3, p.Scrolled())
	require.Equal(t, Stats{Commands: 7, Clicks: 3}, s.Stats())
}

func TestProcessInvalid(t *testing.T) {
	s, _ := newTestServer()
	require.Nil(t, s.Process([]byte(`{not json`)))
	require.Equal(t, 0, s.Stats().Commands)
	require.Nil(t, s.Process([]byte(`{"type":"ping"}`)))
	require.Nil(t, s.Process([]byte(`{"type":"status","device":"AirMouse-1"}`)))
	require.Equal(t, 2, s.Stats().Commands)
}

func TestServeConn(t *testing.T) {
	s, p := newTestServer()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	ws, err := websocket.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), "", "http://localhost/")
	require.NoError(t, err)
	defer ws.Close()
	ws.SetDeadline(time.Now().Add(5 * time.Second))

	var text string
	require.NoError(t, websocket.Message.Receive(ws, &text))
	require.JSONEq(t, `{"type":"welcome","message":"Air Mouse Server Ready"}`, text)

	require.NoError(t, websocket.Message.Send(ws, `not json`))
	require.NoError(t, websocket.Message.Send(ws, `{"type":"move","deltaX":5,"deltaY":5}`))
	require.NoError(t, websocket.Message.Send(ws, `{"type":"command","command":"leftclick"}`))
	require.NoError(t, websocket.Message.Receive(ws, &text))
	require.JSONEq(t, `{"type":"response","message":"Click executed"}`, text)

	x, y := p.Position()
	require.Equal(t, [2]int{56, 31}, [2]int{x, y})
	require.Equal(t, Stats{Commands: 2, Movements: 1, Clicks: 1}, s.Stats())
}

func TestServeShutdown(t *testing.T) {
	s, _ := newTestServer()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx, ln) }()
	cancel()
	select {
	case err := <-errCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestConfigNewServer(t *testing.T) {
	conf := NewConfig()
	s, err := conf.NewServer()
	require.NoError(t, err)
	require.Equal(t, ":8888", s.Addr)
	require.Equal(t, 1.2, s.Acceleration)
	conf.Codec = "xml"
	_, err = conf.NewServer()
	require.Error(t, err)
	conf = NewConfig()
	conf.ScreenWidth = 0
	_, err = conf.NewServer()
	require.Error(t, err)
}
