package sim

import (
	"context"
	"time"

	"github.com/robotalks/airmouse/pkg/button"
	"github.com/robotalks/airmouse/pkg/device"
	fx "github.com/robotalks/airmouse/pkg/framework"
	"github.com/robotalks/airmouse/pkg/link"
)

// Bench runs a Device against a simulated gyro and button.
type Bench struct {
	Gyro   *Gyro
	Button *button.Virtual
	Device *device.Device
	Loop   *fx.Loop
}

type call struct {
	fn   func(context.Context, *device.Device)
	done chan struct{}
}

// NewBench creates a Bench.
func NewBench(confs *device.Configs, mgr *link.Manager, reporter device.Reporter) *Bench {
	b := &Bench{
		Gyro:   NewGyro(time.Now().UnixNano()),
		Button: &button.Virtual{},
		Loop:   fx.NewLoop(),
	}
	b.Device = confs.NewDevice(device.Parts{
		Motion:   b.Gyro,
		Button:   b.Button,
		Link:     mgr,
		Reporter: reporter,
	})
	b.Loop.Interval = confs.Device.TickInterval
	b.Loop.Add(b.Device)
	b.Loop.AddTicker(fx.TickFunc(b.runCalls))
	return b
}

// Run implements fx.Runnable.
func (b *Bench) Run(ctx context.Context) error {
	return b.Loop.Run(ctx)
}

// Do runs fn on the loop goroutine and waits for it.
func (b *Bench) Do(ctx context.Context, fn func(context.Context, *device.Device)) error {
	c := call{fn: fn, done: make(chan struct{})}
	b.Loop.PostEvent(c)
	b.Loop.TriggerNext()
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status reads the device status.
func (b *Bench) Status(ctx context.Context) (st device.Status, err error) {
	err = b.Do(ctx, func(_ context.Context, d *device.Device) {
		st = d.Status()
	})
	return
}

// Press holds the button for d.
func (b *Bench) Press(ctx context.Context, d time.Duration) error {
	b.Button.Set(true)
	defer b.Button.Set(false)
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bench) runCalls(tc fx.TickContext) error {
	for _, ev := range tc.Events() {
		if c, ok := ev.(call); ok {
			c.fn(tc.Context(), b.Device)
			close(c.done)
		}
	}
	return nil
}
