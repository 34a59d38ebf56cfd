// Package joystick lets a desk joystick stand in for the hardware:
// stick deflection becomes gyro rate and one button becomes the
// device button.
package joystick

import (
	"context"
	"math"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/airmouse/pkg/motion"
)

// RateSetter accepts simulated gyro readings.
type RateSetter interface {
	Set(motion.RawSample)
}

// ButtonSetter accepts the simulated button level.
type ButtonSetter interface {
	Set(pressed bool)
}

// RetryInterval is the delay before opening the device again.
const RetryInterval = time.Second

// Driver reads joystick events and forwards them.
type Driver struct {
	DeviceIndex int
	Button      int
	AxisX       int
	AxisY       int
	FullScale   int
	Verbose     bool

	Rate    RateSetter
	Pressed ButtonSetter

	// Open is replaceable in tests.
	Open func(index int) (Device, error)

	sample motion.RawSample
}

// NewDriver creates a Driver with default mapping.
func NewDriver(rate RateSetter, btn ButtonSetter) *Driver {
	return &Driver{
		DeviceIndex: defaultConfig.DeviceIndex,
		Button:      defaultConfig.Button,
		AxisX:       defaultConfig.AxisX,
		AxisY:       defaultConfig.AxisY,
		FullScale:   defaultConfig.FullScale,
		Rate:        rate,
		Pressed:     btn,
	}
}

// Name implements fx.Named.
func (d *Driver) Name() string {
	return "joystick"
}

// Run implements fx.Runnable. The device is reopened after it
// disappears.
func (d *Driver) Run(ctx context.Context) error {
	for {
		js, err := d.open()
		if err != nil {
			glog.Warningf("open joystick: %v", err)
		} else if js == nil {
			glog.V(1).Info("no joystick detected")
		} else {
			glog.Infof("joystick %d %q opened", js.Index(), js.Name())
			err = d.poll(ctx, js)
			js.Close()
			glog.Warningf("joystick %d closed: %v", js.Index(), err)
			d.reset()
		}
		if err == ErrUnsupported {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RetryInterval):
		}
	}
}

func (d *Driver) open() (Device, error) {
	if d.Open != nil {
		return d.Open(d.DeviceIndex)
	}
	if d.DeviceIndex >= 0 {
		return Open(d.DeviceIndex)
	}
	return Detect()
}

func (d *Driver) poll(ctx context.Context, js Device) error {
	doneCh := make(chan struct{})
	defer close(doneCh)
	go func() {
		select {
		case <-ctx.Done():
			js.Close()
		case <-doneCh:
		}
	}()
	for {
		ev, err := js.ReadEvent()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		d.HandleEvent(ev)
	}
}

// HandleEvent applies one event.
func (d *Driver) HandleEvent(ev Event) {
	if d.Verbose {
		glog.Infof("joystick event %+v", ev)
	}
	switch {
	case ev.IsButton() && ev.Number == d.Button:
		d.Pressed.Set(ev.Value != 0)
	case ev.IsAxis() && ev.Number == d.AxisX:
		d.sample.Gx = d.scale(ev.Value)
		d.Rate.Set(d.sample)
	case ev.IsAxis() && ev.Number == d.AxisY:
		d.sample.Gy = d.scale(ev.Value)
		d.Rate.Set(d.sample)
	}
}

func (d *Driver) scale(v int) int16 {
	r := math.Round(float64(v) * float64(d.FullScale) / math.MaxInt16)
	if r > math.MaxInt16 {
		return math.MaxInt16
	}
	if r < math.MinInt16 {
		return math.MinInt16
	}
	return int16(r)
}

func (d *Driver) reset() {
	d.sample = motion.RawSample{}
	d.Rate.Set(d.sample)
	d.Pressed.Set(false)
}
