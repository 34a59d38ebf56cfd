package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/airmouse/pkg/motion"
)

func TestSweepRateAt(t *testing.T) {
	s := Sweep{Rate: 100, Ramp: time.Second, Hold: 2 * time.Second}
	testCases := []struct {
		name    string
		elapsed time.Duration
		expect  float64
	}{
		{"before start", -time.Second, 0},
		{"start", 0, 0},
		{"ramp up", 500 * time.Millisecond, 50},
		{"hold begins", time.Second, 100},
		{"hold", 2 * time.Second, 100},
		{"ramp down", 3500 * time.Millisecond, 50},
		{"end", 4 * time.Second, 0},
		{"after", 5 * time.Second, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.expect, s.RateAt(tc.elapsed), 1e-9)
		})
	}
	require.Equal(t, 4*time.Second, s.Duration())
}

func TestGyroPlay(t *testing.T) {
	now := time.Unix(0, 0)
	g := NewGyro(1)
	g.Clock = func() time.Time { return now }
	g.Set(motion.RawSample{Gx: 10, Gy: -10, Gz: 3})

	s, err := g.Read()
	require.NoError(t, err)
	require.Equal(t, motion.RawSample{Gx: 10, Gy: -10, Gz: 3}, s)

	g.Play(Sweep{Direction: AngleFromDegrees(90), Rate: 10, Ramp: time.Second, Hold: time.Second})
	require.True(t, g.Playing())
	now = now.Add(1500 * time.Millisecond)
	s, _ = g.Read()
	require.Equal(t, motion.RawSample{Gx: 10, Gy: 1300, Gz: 3}, s)

	now = now.Add(2 * time.Second)
	require.False(t, g.Playing())
	s, _ = g.Read()
	require.Equal(t, motion.RawSample{Gx: 10, Gy: -10, Gz: 3}, s)
}

func TestGyroSaturatesAndNoise(t *testing.T) {
	g := NewGyro(7)
	g.Set(motion.RawSample{Gx: 32760})
	g.Play(Sweep{Rate: 250, Ramp: time.Hour})
	g.Noise = 5
	for n := 0; n < 100; n++ {
		s, _ := g.Read()
		require.True(t, s.Gy >= -5 && s.Gy <= 5)
		require.True(t, s.Gz >= -5 && s.Gz <= 5)
	}
	require.Equal(t, int16(32767), saturate(1e6))
	require.Equal(t, int16(-32768), saturate(-1e6))
}

func TestAngle(t *testing.T) {
	require.InDelta(t, 90, AngleFromDegrees(450).Degrees(), 1e-9)
	require.InDelta(t, -90, AngleFromDegrees(270).Degrees(), 1e-9)
	x, y := AngleFromDegrees(180).Project(2)
	require.InDelta(t, -2, x, 1e-9)
	require.InDelta(t, 0, y, 1e-9)
}
