package sim

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/robotalks/airmouse/pkg/motion"
)

// LSBPerDPS is the raw gyro scale at the ±250 °/s range.
const LSBPerDPS = 131.0

// Sweep is a hand rotation: the angular rate ramps up linearly to
// Rate, holds, then ramps back down to zero.
type Sweep struct {
	// Direction in the sensor x/y plane, 0 is +x.
	Direction Angle
	// Rate is the peak rate in °/s.
	Rate float64
	Ramp time.Duration
	Hold time.Duration
}

// Duration is the total length of the sweep.
func (s Sweep) Duration() time.Duration {
	return 2*s.Ramp + s.Hold
}

// RateAt returns the angular rate at elapsed since the sweep started.
func (s Sweep) RateAt(elapsed time.Duration) float64 {
	switch {
	case elapsed < 0 || elapsed >= s.Duration():
		return 0
	case elapsed < s.Ramp:
		return s.Rate * float64(elapsed) / float64(s.Ramp)
	case elapsed < s.Ramp+s.Hold:
		return s.Rate
	default:
		return s.Rate * float64(s.Duration()-elapsed) / float64(s.Ramp)
	}
}

// Gyro is a simulated gyroscope. A static reading (bias plus any rate
// set directly) is overlaid with the sweep being played and uniform
// noise. It is safe to drive from another goroutine.
type Gyro struct {
	Noise int
	Clock func() time.Time

	lock   sync.Mutex
	static motion.RawSample
	sweep  *Sweep
	start  time.Time
	rand   *rand.Rand
}

// NewGyro creates a Gyro with a deterministic noise sequence.
func NewGyro(seed int64) *Gyro {
	return &Gyro{Clock: time.Now, rand: rand.New(rand.NewSource(seed))}
}

// Set replaces the static reading.
func (g *Gyro) Set(s motion.RawSample) {
	g.lock.Lock()
	g.static = s
	g.lock.Unlock()
}

// Play starts a sweep now, replacing any sweep in progress.
func (g *Gyro) Play(s Sweep) {
	g.lock.Lock()
	g.sweep, g.start = &s, g.Clock()
	g.lock.Unlock()
}

// Playing tells whether a sweep is in progress.
func (g *Gyro) Playing() bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.sweep != nil && g.Clock().Sub(g.start) < g.sweep.Duration()
}

// Read implements motion.Source.
func (g *Gyro) Read() (motion.RawSample, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	x, y, z := float64(g.static.Gx), float64(g.static.Gy), float64(g.static.Gz)
	if g.sweep != nil {
		elapsed := g.Clock().Sub(g.start)
		if elapsed >= g.sweep.Duration() {
			g.sweep = nil
		} else {
			dx, dy := g.sweep.Direction.Project(g.sweep.RateAt(elapsed) * LSBPerDPS)
			x += dx
			y += dy
		}
	}
	if g.Noise > 0 {
		x += float64(g.rand.Intn(2*g.Noise+1) - g.Noise)
		y += float64(g.rand.Intn(2*g.Noise+1) - g.Noise)
		z += float64(g.rand.Intn(2*g.Noise+1) - g.Noise)
	}
	return motion.RawSample{Gx: saturate(x), Gy: saturate(y), Gz: saturate(z)}, nil
}

func saturate(v float64) int16 {
	v = math.Round(v)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
