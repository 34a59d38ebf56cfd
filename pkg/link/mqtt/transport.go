package mqtt

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/airmouse/pkg/framework"
	"github.com/robotalks/airmouse/pkg/link"
	"github.com/robotalks/airmouse/pkg/link/msgs"
)

// DefaultConnectTimeout bounds a connect attempt.
const DefaultConnectTimeout = 5 * time.Second

// Transport implements link.Transport over MQTT. Outbound payloads
// go to <prefix><device>/msg, inbound come from <prefix><device>/cmd.
// A retained <prefix><device>/meta announces the device and is
// cleared by the will when the device vanishes.
type Transport struct {
	Queue          *Queue
	Device         string
	ConnectTimeout time.Duration

	reqCh chan struct{}
	lock  sync.Mutex
	open  bool
}

// NewTransport creates a Transport from a broker URL.
func NewTransport(u *url.URL, device string) *Transport {
	opts, prefix := ClientOptionsFromURL(u)
	if opts.ClientID == "" {
		opts.SetClientID("airmouse-" + device)
	}
	opts.SetWill(prefix+DeviceTopic(device, TopicMeta), "", 1, true)
	opts.SetConnectTimeout(DefaultConnectTimeout)
	return &Transport{
		Queue:          NewQueue(opts, prefix),
		Device:         device,
		ConnectTimeout: DefaultConnectTimeout,
		reqCh:          make(chan struct{}, 1),
	}
}

// Name implements fx.Named.
func (t *Transport) Name() string {
	return "mqtt"
}

// Connect implements link.Transport.
func (t *Transport) Connect() {
	select {
	case t.reqCh <- struct{}{}:
	default:
	}
}

// Send implements link.Transport.
func (t *Transport) Send(payload []byte) error {
	if !t.isOpen() {
		return link.ErrNotConnected
	}
	token := t.Queue.Pub(DeviceTopic(t.Device, TopicMsg), payload)
	select {
	case <-token.Done():
		return token.Error()
	default:
		return nil
	}
}

// Run implements fx.Runnable.
func (t *Transport) Run(ctx context.Context) error {
	poster := fx.LoopCtlFrom(ctx)
	t.Queue.OnDisconnect = func(q *Queue, err error) {
		t.setOpen(false)
		poster.PostEvent(link.DisconnectedEvent{Err: err})
	}
	t.Queue.Sub(DeviceTopic(t.Device, TopicCmd), func(topic string, payload []byte) {
		poster.PostEvent(link.ReceivedEvent{Payload: payload})
	})
	for {
		select {
		case <-ctx.Done():
			if t.isOpen() {
				t.Queue.PubWith(DeviceTopic(t.Device, TopicMeta), nil, 1, true).WaitTimeout(time.Second)
			}
			t.Queue.Close()
			return ctx.Err()
		case <-t.reqCh:
		}
		if err := t.connect(); err != nil {
			poster.PostEvent(link.DisconnectedEvent{Err: err})
			continue
		}
		poster.PostEvent(link.ConnectedEvent{})
	}
}

func (t *Transport) connect() error {
	// with AutoReconnect off paho refuses Connect on a live session
	if !t.Queue.Client.IsConnectionOpen() {
		token := t.Queue.Connect()
		if !token.WaitTimeout(t.ConnectTimeout) {
			return fmt.Errorf("mqtt connect timeout after %v", t.ConnectTimeout)
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("mqtt connect: %w", err)
		}
	}
	meta, err := msgs.JSONCodec{}.Encode(&msgs.Status{Device: t.Device})
	if err != nil {
		return err
	}
	t.Queue.PubWith(DeviceTopic(t.Device, TopicMeta), meta, 1, true)
	t.setOpen(true)
	glog.V(1).Infof("mqtt: publishing to %q", t.Queue.TopicPrefix+DeviceTopic(t.Device, TopicMsg))
	return nil
}

func (t *Transport) isOpen() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.open
}

func (t *Transport) setOpen(open bool) {
	t.lock.Lock()
	t.open = open
	t.lock.Unlock()
}
