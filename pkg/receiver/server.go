// Package receiver is the host side: it accepts device connections
// and turns link messages into pointer actions.
package receiver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/airmouse/pkg/link/msgs"
)

// Messages sent to devices.
const (
	WelcomeMessage = "Air Mouse Server Ready"
	ClickedMessage = "Click executed"
)

// ScrollStep is the scroll amount of a scroll command.
const ScrollStep = 3

// Stats counts processed messages.
type Stats struct {
	Commands  int
	Movements int
	Clicks    int
}

// Server is a websocket server for devices.
type Server struct {
	Addr          string
	Acceleration  float64
	StatsInterval time.Duration
	Codec         msgs.Codec
	Pointer       Pointer

	statsLock sync.Mutex
	stats     Stats
}

// NewServer creates a Server with default settings.
func NewServer(pointer Pointer) *Server {
	return &Server{
		Addr:          defaultConfig.Addr,
		Acceleration:  defaultConfig.Acceleration,
		StatsInterval: defaultConfig.StatsInterval,
		Codec:         msgs.JSONCodec{},
		Pointer:       pointer,
	}
}

// Name implements fx.Named.
func (s *Server) Name() string {
	return "receiver"
}

// Stats returns the counters.
func (s *Server) Stats() Stats {
	s.statsLock.Lock()
	defer s.statsLock.Unlock()
	return s.stats
}

// Handler returns the websocket handler. Connections without an
// Origin header are accepted since devices don't send one.
func (s *Server) Handler() http.Handler {
	return websocket.Server{Handler: s.serveConn}
}

// Run implements fx.Runnable.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on the listener until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	glog.Infof("receiver listening on %s", ln.Addr())
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// RunStats logs the counters periodically while any message has been
// processed, and once more when ctx is done.
func (s *Server) RunStats(ctx context.Context) error {
	interval := s.StatsInterval
	if interval <= 0 {
		interval = defaultConfig.StatsInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			st := s.Stats()
			glog.Infof("final: %d commands, %d movements, %d clicks", st.Commands, st.Movements, st.Clicks)
			return ctx.Err()
		case <-ticker.C:
			if st := s.Stats(); st.Commands > 0 {
				glog.Infof("stats: %d cmds, %d moves, %d clicks", st.Commands, st.Movements, st.Clicks)
			}
		}
	}
}

func (s *Server) serveConn(ws *websocket.Conn) {
	remote := ws.Request().RemoteAddr
	glog.Infof("client connected: %s", remote)
	defer ws.Close()
	if err := s.send(ws, &msgs.Reply{Kind: msgs.TypeWelcome, Message: WelcomeMessage}); err != nil {
		glog.Errorf("client %s: %v", remote, err)
		return
	}
	for {
		var data []byte
		if err := websocket.Message.Receive(ws, &data); err != nil {
			glog.Infof("client disconnected: %s (%v)", remote, err)
			return
		}
		if reply := s.Process(data); reply != nil {
			if err := s.send(ws, reply); err != nil {
				glog.Errorf("client %s: %v", remote, err)
				return
			}
		}
	}
}

func (s *Server) send(ws *websocket.Conn, m msgs.Message) error {
	data, err := s.Codec.Encode(m)
	if err != nil {
		return err
	}
	if s.Codec.Name() == msgs.CodecProto {
		return websocket.Message.Send(ws, data)
	}
	return websocket.Message.Send(ws, string(data))
}

// Process handles one payload and returns the reply, if any.
// Undecodable payloads are logged and skipped.
func (s *Server) Process(data []byte) msgs.Message {
	m, err := s.Codec.Decode(data)
	if errors.Is(err, msgs.ErrUnknownType) {
		s.count(func(st *Stats) { st.Commands++ })
		glog.Warning(err)
		return nil
	}
	if err != nil {
		glog.Warningf("invalid message: %v", err)
		return nil
	}
	s.count(func(st *Stats) { st.Commands++ })

	switch msg := m.(type) {
	case *msgs.Move:
		s.move(msg)
	case *msgs.Command:
		return s.command(msg.Command)
	case *msgs.Status:
		glog.Infof("device connected: %s", msg.Device)
	}
	return nil
}

func (s *Server) move(m *msgs.Move) {
	dx := int(float64(m.DeltaX) * s.Acceleration)
	dy := int(float64(m.DeltaY) * s.Acceleration)
	if dx == 0 && dy == 0 {
		return
	}
	s.Pointer.MoveBy(dx, dy)
	s.count(func(st *Stats) { st.Movements++ })
}

func (s *Server) command(cmd string) msgs.Message {
	switch cmd {
	case msgs.CmdLeftClick:
		s.Pointer.Click(ButtonLeft, 1)
		s.count(func(st *Stats) { st.Clicks++ })
		return &msgs.Reply{Kind: msgs.TypeResponse, Message: ClickedMessage}
	case msgs.CmdRightClick:
		s.Pointer.Click(ButtonRight, 1)
		s.count(func(st *Stats) { st.Clicks++ })
	case msgs.CmdDoubleClick:
		s.Pointer.Click(ButtonLeft, 2)
		s.count(func(st *Stats) { st.Clicks++ })
	case msgs.CmdScrollUp:
		s.Pointer.Scroll(ScrollStep)
	case msgs.CmdScrollDown:
		s.Pointer.Scroll(-ScrollStep)
	default:
		glog.Warningf("unknown command %q", cmd)
	}
	return nil
}

func (s *Server) count(fn func(*Stats)) {
	s.statsLock.Lock()
	fn(&s.stats)
	s.statsLock.Unlock()
}

// LocalIP returns the address used for outbound traffic, which is
// what a device should be pointed at. No packet is sent.
func LocalIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
