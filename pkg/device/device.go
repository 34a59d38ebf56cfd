// Package device is the pointer firmware: one tick samples the button,
// then the motion sensor, and talks to the host through link.Manager.
package device

import (
	"context"

	"github.com/golang/glog"

	"github.com/robotalks/airmouse/pkg/button"
	fx "github.com/robotalks/airmouse/pkg/framework"
	"github.com/robotalks/airmouse/pkg/link"
	"github.com/robotalks/airmouse/pkg/motion"
)

// Mode is the user controlled part of the device state.
type Mode struct {
	// Armed is toggled by a short press and enables motion streaming.
	Armed bool
	// Calibrated is set once an offset was measured.
	Calibrated bool
}

// Status is a snapshot of the device.
type Status struct {
	Mode       Mode
	Connection link.State
	Offset     motion.Offset
	Link       link.Stats
	LastDelta  motion.Delta
}

// Device owns the device state. Tick is the only entry point that
// mutates it and must run on the loop goroutine.
type Device struct {
	Motion     motion.Source
	Button     button.Source
	Link       *link.Manager
	Filter     *motion.Filter
	Calibrator *motion.Calibrator
	Presses    *button.Machine
	Reporter   Reporter

	ClickCommand string

	mode      Mode
	offset    motion.Offset
	smooth    motion.Smoothed
	lastDelta motion.Delta
}

// AddToLoop implements LoopAdder.
func (d *Device) AddToLoop(l *fx.Loop) {
	l.Add(d.Link)
	l.AddTicker(d)
}

// Mode returns the current mode.
func (d *Device) Mode() Mode {
	return d.mode
}

// Status returns a snapshot.
func (d *Device) Status() Status {
	return Status{
		Mode:       d.mode,
		Connection: d.Link.State(),
		Offset:     d.offset,
		Link:       d.Link.Stats(),
		LastDelta:  d.lastDelta,
	}
}

// Tick implements Ticker.
func (d *Device) Tick(tc fx.TickContext) error {
	now := tc.Time()
	for _, ev := range tc.Events() {
		d.Link.HandleEvent(ev)
	}
	d.Link.Tick(now)

	pressed, err := d.Button.Pressed()
	if err != nil {
		glog.Errorf("button read error: %v", err)
	} else if press, ok := d.Presses.Sample(pressed, now); ok {
		glog.V(1).Infof("button held %v: %s", press.Duration, press.Action)
		d.handle(tc.Context(), press.Action)
	}

	return d.stream()
}

func (d *Device) handle(ctx context.Context, action button.Action) {
	switch action {
	case button.ActionToggle:
		d.Toggle()
	case button.ActionCalibrate:
		d.Calibrate(ctx)
	case button.ActionClick:
		d.Click()
	}
}

// Toggle arms or disarms streaming. It is rejected until calibrated.
func (d *Device) Toggle() {
	if !d.mode.Calibrated {
		d.report(Notice{Kind: NoticeNotCalibrated})
		return
	}
	d.mode.Armed = !d.mode.Armed
	if d.mode.Armed {
		d.report(Notice{Kind: NoticeArmed})
	} else {
		d.report(Notice{Kind: NoticeDisarmed})
	}
}

// Calibrate measures a new offset. On success the offset, the reset
// smoothing state and the calibrated flag change together; on failure
// nothing changes.
func (d *Device) Calibrate(ctx context.Context) error {
	offset, err := d.Calibrator.Calibrate(ctx, d.Motion)
	if err != nil {
		d.report(Notice{Kind: NoticeCalibrationFailed, Err: err})
		return err
	}
	d.offset = offset
	d.smooth = motion.Smoothed{}
	d.mode.Calibrated = true
	d.report(Notice{Kind: NoticeCalibrated, Offset: offset})
	return nil
}

// Click sends the click command regardless of mode.
func (d *Device) Click() error {
	if err := d.Link.SendCommand(d.ClickCommand); err != nil {
		d.report(Notice{Kind: NoticeClickFailed, Err: err})
		return err
	}
	d.report(Notice{Kind: NoticeClicked})
	return nil
}

func (d *Device) stream() error {
	if !d.mode.Armed || !d.mode.Calibrated || !d.Link.Connected() {
		return nil
	}
	raw, err := d.Motion.Read()
	if err != nil {
		return err
	}
	delta, ok := d.Filter.Apply(raw, d.offset, &d.smooth)
	if !ok {
		return nil
	}
	d.lastDelta = delta
	if err := d.Link.SendMove(delta.DX, delta.DY); err != nil {
		glog.V(1).Infof("move dropped: %v", err)
	}
	return nil
}

func (d *Device) report(n Notice) {
	if d.Reporter != nil {
		d.Reporter.Report(n)
	}
}
