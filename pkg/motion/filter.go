package motion

import "math"

// Filter converts offset-corrected angular rate into pointer deltas.
// It is a dead-zone followed by a one-pole low-pass filter and a
// bounded linear scale. The zero value is not usable, see NewFilter.
type Filter struct {
	// DeadZone zeroes any axis whose magnitude is strictly below it.
	DeadZone float64
	// Decay is the smoothing weight of the previous value, 0 <= Decay < 1.
	// Higher means more lag and less jitter.
	Decay float64
	// Sensitivity and Divisor scale smoothed rate to pointer units.
	Sensitivity float64
	Divisor     float64
	// MaxDelta bounds |dx| and |dy|.
	MaxDelta int
	// Axes maps smoothed (x, y) to (dx, dy).
	Axes AxisMap
}

// NewFilter creates a Filter from config.
func NewFilter(conf *Config) *Filter {
	return &Filter{
		DeadZone:    conf.DeadZone,
		Decay:       conf.Decay,
		Sensitivity: conf.Sensitivity,
		Divisor:     conf.Divisor,
		MaxDelta:    conf.MaxDelta,
		Axes:        conf.Axes,
	}
}

// Apply runs one filter step and updates state in place. ok is false
// when the resulting delta is too small to be worth sending.
func (f *Filter) Apply(raw RawSample, offset Offset, state *Smoothed) (d Delta, ok bool) {
	gx := f.deadZone(float64(raw.Gx) - offset.X)
	gy := f.deadZone(float64(raw.Gy) - offset.Y)

	state.X = Smooth(state.X, gx, f.Decay)
	state.Y = Smooth(state.Y, gy, f.Decay)

	d.DX = f.scale(f.Axes.DX.Apply(*state))
	d.DY = f.scale(f.Axes.DY.Apply(*state))
	// suppression looks at the unclamped delta
	ok = !Idle(d)
	d.DX = Clamp(d.DX, f.MaxDelta)
	d.DY = Clamp(d.DY, f.MaxDelta)
	return d, ok
}

func (f *Filter) deadZone(v float64) float64 {
	if math.Abs(v) < f.DeadZone {
		return 0
	}
	return v
}

func (f *Filter) scale(v float64) int {
	div := f.Divisor
	if div == 0 {
		div = 1
	}
	v = math.Round(v * f.Sensitivity / div)
	// keep the int conversion defined for huge scale factors
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int(v)
}

// Smooth is one exponential smoothing step.
func Smooth(prev, in, decay float64) float64 {
	return decay*prev + (1-decay)*in
}

// Clamp limits v to [-max, max].
func Clamp(v, max int) int {
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}

// Idle reports whether both axes are within one unit of zero.
func Idle(d Delta) bool {
	return d.DX >= -1 && d.DX <= 1 && d.DY >= -1 && d.DY <= 1
}
