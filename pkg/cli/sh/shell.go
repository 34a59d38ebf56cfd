// Package sh provides the interactive bench shell driving a simulated
// device.
package sh

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/airmouse/pkg/device"
	"github.com/robotalks/airmouse/pkg/motion"
	"github.com/robotalks/airmouse/pkg/sim"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell   *ishell.Shell
	Bench   *sim.Bench
	Context context.Context
}

const (
	shellKey = "$shell"
	prompt   = "airsim > "

	// DefaultSweepRamp is the ramp used by the sweep command.
	DefaultSweepRamp = 100 * time.Millisecond
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&GyroCmd,
		&SweepCmd,
		&PressCmd,
		&HoldCmd,
		&ReleaseCmd,
		&ToggleCmd,
		&CalibrateCmd,
		&ClickCmd,
		&StatusCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell on a running bench.
func New(ctx context.Context, bench *sim.Bench) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:   ishell.New(),
		Bench:   bench,
		Context: ctx,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Report implements device.Reporter by printing notices.
func (s *Shell) Report(n device.Notice) {
	s.Shell.Println("*", n)
}

// Do runs fn on the device loop.
func (s *Shell) Do(c *ishell.Context, fn func(context.Context, *device.Device) error) error {
	var fnErr error
	err := s.Bench.Do(s.Context, func(ctx context.Context, d *device.Device) {
		fnErr = fn(ctx, d)
	})
	if err == nil {
		err = fnErr
	}
	if err != nil {
		c.Err(err)
	}
	return err
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			glog.Exit(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	glog.Exit("command expected")
}

// IntArgs parses exactly n integer arguments.
func IntArgs(c *ishell.Context, n int) ([]int, error) {
	if len(c.Args) != n {
		return nil, fmt.Errorf("expect %d arguments, got %d", n, len(c.Args))
	}
	vals := make([]int, n)
	for i, arg := range c.Args {
		val, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %v", i+1, err)
		}
		vals[i] = val
	}
	return vals, nil
}

// SampleArgs parses GX GY GZ as a raw gyro sample.
func SampleArgs(c *ishell.Context) (motion.RawSample, error) {
	vals, err := IntArgs(c, 3)
	if err != nil {
		return motion.RawSample{}, err
	}
	for i, v := range vals {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return motion.RawSample{}, fmt.Errorf("argument %d: %d out of range [%d, %d]",
				i+1, v, math.MinInt16, math.MaxInt16)
		}
	}
	return motion.RawSample{Gx: int16(vals[0]), Gy: int16(vals[1]), Gz: int16(vals[2])}, nil
}

// FormatStatus prints Status into friendly string for display.
func FormatStatus(st device.Status) string {
	return fmt.Sprintf("armed=%v calibrated=%v link=%s offset=%s last=(%d,%d)\n"+
		"moves sent=%d dropped=%d, commands sent=%d failed=%d, reconnects=%d, received=%d",
		st.Mode.Armed, st.Mode.Calibrated, st.Connection, st.Offset,
		st.LastDelta.DX, st.LastDelta.DY,
		st.Link.MovesSent, st.Link.MovesDropped,
		st.Link.CommandsSent, st.Link.CommandsFailed,
		st.Link.ReconnectAttempt, st.Link.Received)
}

func (s *Shell) printStatus(c *ishell.Context, st device.Status) {
	if !s.OutputJSON {
		c.Println(FormatStatus(st))
		return
	}
	out, err := json.Marshal(st)
	if err != nil {
		c.Err(err)
		return
	}
	c.Println(string(out))
}
