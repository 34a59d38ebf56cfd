package button

import (
	"fmt"
	"sync/atomic"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Source reports the current button level.
type Source interface {
	Pressed() (bool, error)
}

// GPIO reads the button from a periph GPIO pin.
type GPIO struct {
	Pin       gpio.PinIn
	ActiveLow bool
}

// Open initializes the pin configured as input with a pull resistor
// holding it at its released level.
func (c *Config) Open() (*GPIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	pin := gpioreg.ByName(c.Pin)
	if pin == nil {
		return nil, fmt.Errorf("button pin %q not found", c.Pin)
	}
	pull := gpio.PullDown
	if c.ActiveLow {
		pull = gpio.PullUp
	}
	if err := pin.In(pull, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("button pin %q: %w", c.Pin, err)
	}
	return &GPIO{Pin: pin, ActiveLow: c.ActiveLow}, nil
}

// Pressed implements Source.
func (g *GPIO) Pressed() (bool, error) {
	level := g.Pin.Read()
	if g.ActiveLow {
		return level == gpio.Low, nil
	}
	return level == gpio.High, nil
}

// Virtual is a button driven by software, e.g. from a shell.
type Virtual struct {
	pressed int32
}

// Set changes the level.
func (v *Virtual) Set(pressed bool) {
	var val int32
	if pressed {
		val = 1
	}
	atomic.StoreInt32(&v.pressed, val)
}

// Pressed implements Source.
func (v *Virtual) Pressed() (bool, error) {
	return atomic.LoadInt32(&v.pressed) != 0, nil
}
