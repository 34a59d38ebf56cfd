// Package motion turns raw angular-rate samples into pointer deltas.
package motion

import "fmt"

// RawSample is one gyroscope reading in raw sensor units.
type RawSample struct {
	Gx, Gy, Gz int16
}

// String implements fmt.Stringer.
func (s RawSample) String() string {
	return fmt.Sprintf("gx=%d gy=%d gz=%d", s.Gx, s.Gy, s.Gz)
}

// Offset is the static per-axis bias measured while the device is still.
type Offset struct {
	X, Y, Z float64
}

// String implements fmt.Stringer.
func (o Offset) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", o.X, o.Y, o.Z)
}

// Smoothed is the exponentially decayed filter state.
type Smoothed struct {
	X, Y float64
}

// Delta is a bounded pointer movement.
type Delta struct {
	DX, DY int
}

// Source yields raw samples. Reads are short synchronous bus transactions.
type Source interface {
	Read() (RawSample, error)
}

// SourceFunc is the func form of Source.
type SourceFunc func() (RawSample, error)

// Read implements Source.
func (f SourceFunc) Read() (RawSample, error) {
	return f()
}
