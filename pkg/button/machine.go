// Package button classifies presses of the single device button.
package button

import (
	"fmt"
	"time"
)

// Action is what a completed press asks for.
type Action int

// Actions
const (
	ActionNone Action = iota
	// ActionToggle arms or disarms motion streaming.
	ActionToggle
	// ActionCalibrate re-measures the sensor bias.
	ActionCalibrate
	// ActionClick sends a click command to the host.
	ActionClick
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionToggle:
		return "toggle"
	case ActionCalibrate:
		return "calibrate"
	case ActionClick:
		return "click"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// State of the machine.
type State int

// States
const (
	StateIdle State = iota
	StatePressed
)

// Press is a completed press.
type Press struct {
	Start    time.Time
	Duration time.Duration
	Action   Action
}

// Machine turns sampled button levels into actions. Only edges
// between consecutive samples matter; there is no debounce.
type Machine struct {
	Short time.Duration
	Long  time.Duration

	state State
	since time.Time
}

// NewMachine creates a Machine from config.
func NewMachine(conf *Config) *Machine {
	return &Machine{Short: conf.ShortPress, Long: conf.LongPress}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Sample feeds the level sampled at now. A press is returned on the
// release edge only.
func (m *Machine) Sample(pressed bool, now time.Time) (Press, bool) {
	switch {
	case pressed && m.state == StateIdle:
		m.state, m.since = StatePressed, now
	case !pressed && m.state == StatePressed:
		m.state = StateIdle
		d := now.Sub(m.since)
		return Press{Start: m.since, Duration: d, Action: m.Classify(d)}, true
	}
	return Press{}, false
}

// Reset drops a press in progress.
func (m *Machine) Reset() {
	m.state = StateIdle
	m.since = time.Time{}
}

// Classify maps a hold duration to an action. Thresholds are
// inclusive on their lower side: exactly Short calibrates and
// exactly Long clicks.
func (m *Machine) Classify(d time.Duration) Action {
	switch {
	case d < m.Short:
		return ActionToggle
	case d < m.Long:
		return ActionCalibrate
	default:
		return ActionClick
	}
}
