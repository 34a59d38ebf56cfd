package sh

import (
	"context"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/airmouse/pkg/device"
	"github.com/robotalks/airmouse/pkg/sim"
)

var (
	// GyroCmd sets the static gyro reading.
	GyroCmd = ishell.Cmd{
		Name:    "gyro",
		Aliases: []string{"g"},
		Help:    "GX GY GZ",
		Func: func(c *ishell.Context) {
			sample, err := SampleArgs(c)
			if err != nil {
				c.Err(err)
				return
			}
			ShellFrom(c).Bench.Gyro.Set(sample)
		},
	}

	// SweepCmd plays a hand rotation on the gyro.
	SweepCmd = ishell.Cmd{
		Name:    "sweep",
		Aliases: []string{"sw"},
		Help:    "DIRECTION_DEG RATE_DPS HOLD_MS",
		Func: func(c *ishell.Context) {
			vals, err := IntArgs(c, 3)
			if err != nil {
				c.Err(err)
				return
			}
			ShellFrom(c).Bench.Gyro.Play(sim.Sweep{
				Direction: sim.AngleFromDegrees(float64(vals[0])),
				Rate:      float64(vals[1]),
				Ramp:      DefaultSweepRamp,
				Hold:      time.Duration(vals[2]) * time.Millisecond,
			})
		},
	}

	// PressCmd presses the button for a while.
	PressCmd = ishell.Cmd{
		Name:    "press",
		Aliases: []string{"p"},
		Help:    "MS",
		Func: func(c *ishell.Context) {
			vals, err := IntArgs(c, 1)
			if err != nil {
				c.Err(err)
				return
			}
			s := ShellFrom(c)
			if err := s.Bench.Press(s.Context, time.Duration(vals[0])*time.Millisecond); err != nil {
				c.Err(err)
			}
		},
	}

	// HoldCmd holds the button down.
	HoldCmd = ishell.Cmd{
		Name: "hold",
		Help: "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Bench.Button.Set(true)
		},
	}

	// ReleaseCmd releases the button.
	ReleaseCmd = ishell.Cmd{
		Name: "release",
		Help: "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Bench.Button.Set(false)
		},
	}

	// ToggleCmd arms or disarms without the button.
	ToggleCmd = ishell.Cmd{
		Name:    "toggle",
		Aliases: []string{"t"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Do(c, func(_ context.Context, d *device.Device) error {
				d.Toggle()
				return nil
			})
		},
	}

	// CalibrateCmd calibrates without the button.
	CalibrateCmd = ishell.Cmd{
		Name:    "calibrate",
		Aliases: []string{"cal"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Do(c, func(ctx context.Context, d *device.Device) error {
				return d.Calibrate(ctx)
			})
		},
	}

	// ClickCmd sends the click command without the button.
	ClickCmd = ishell.Cmd{
		Name: "click",
		Help: "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Do(c, func(_ context.Context, d *device.Device) error {
				return d.Click()
			})
		},
	}

	// StatusCmd prints the device status.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"s"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			st, err := s.Bench.Status(s.Context)
			if err != nil {
				c.Err(err)
				return
			}
			s.printStatus(c, st)
		},
	}
)
