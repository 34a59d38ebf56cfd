package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testFilter() *Filter {
	return NewFilter(NewConfig())
}

func TestDeadZone(t *testing.T) {
	f := testFilter()
	for _, v := range []float64{0, 1, -1, 150, -150, 299, -299, 299.9, -299.9} {
		require.Equalf(t, 0.0, f.deadZone(v), "value %v", v)
	}
	for _, v := range []float64{300, -300, 301, -301, 32767, -32768} {
		require.Equalf(t, v, f.deadZone(v), "value %v", v)
	}
}

func TestSmoothingConvergesWithoutOvershoot(t *testing.T) {
	for _, c := range []float64{1000, -1000, 450} {
		var prev float64
		for n := 0; n < 20; n++ {
			v := Smooth(prev, c, 0.7)
			if c > 0 {
				require.Truef(t, v > prev && v <= c, "tick %d: %v after %v toward %v", n, v, prev, c)
			} else {
				require.Truef(t, v < prev && v >= c, "tick %d: %v after %v toward %v", n, v, prev, c)
			}
			prev = v
		}
	}
}

func TestFilterApply(t *testing.T) {
	testCases := []struct {
		name   string
		raw    RawSample
		offset Offset
		state  Smoothed
		expect Delta
		ok     bool
		after  Smoothed
	}{
		{
			name:   "still",
			raw:    RawSample{Gx: 10, Gy: -20, Gz: 5},
			expect: Delta{},
		},
		{
			name:   "single tick on x",
			raw:    RawSample{Gx: 400},
			expect: Delta{DX: 0, DY: -6},
			ok:     true,
			after:  Smoothed{X: 120},
		},
		{
			name:   "single tick on y",
			raw:    RawSample{Gy: 1000},
			expect: Delta{DX: 15, DY: 0},
			ok:     true,
			after:  Smoothed{Y: 300},
		},
		{
			name:   "offset removes bias",
			raw:    RawSample{Gx: 520, Gy: -480},
			offset: Offset{X: 500, Y: -500},
			expect: Delta{},
		},
		{
			name:   "clamped",
			raw:    RawSample{Gx: 4000, Gy: -4000},
			expect: Delta{DX: -20, DY: -20},
			ok:     true,
			after:  Smoothed{X: 1200, Y: -1200},
		},
		{
			name:   "decays prior state when input is in dead zone",
			raw:    RawSample{Gx: 100},
			state:  Smoothed{X: 100},
			expect: Delta{DX: 0, DY: -4},
			ok:     true,
			after:  Smoothed{X: 70},
		},
		{
			name:   "suppressed at one unit",
			raw:    RawSample{},
			state:  Smoothed{X: -40, Y: 30},
			expect: Delta{DX: 1, DY: 1},
			after:  Smoothed{X: -28, Y: 21},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			state := tc.state
			d, ok := testFilter().Apply(tc.raw, tc.offset, &state)
			require.Equal(t, tc.expect, d)
			require.Equal(t, tc.ok, ok)
			require.InDelta(t, tc.after.X, state.X, 1e-9)
			require.InDelta(t, tc.after.Y, state.Y, 1e-9)
		})
	}
}

func TestFilterDeltaBounded(t *testing.T) {
	f := testFilter()
	values := []int16{math.MinInt16, -20000, -1000, -301, 0, 299, 5000, math.MaxInt16}
	var state Smoothed
	for _, gx := range values {
		for _, gy := range values {
			d, _ := f.Apply(RawSample{Gx: gx, Gy: gy}, Offset{X: -300, Y: 300}, &state)
			require.Truef(t, d.DX <= f.MaxDelta && d.DX >= -f.MaxDelta, "dx=%d", d.DX)
			require.Truef(t, d.DY <= f.MaxDelta && d.DY >= -f.MaxDelta, "dy=%d", d.DY)
		}
	}
}

func TestFilterSuppressesBeforeClamp(t *testing.T) {
	conf := NewConfig()
	conf.MaxDelta = 1
	f := NewFilter(conf)

	var state Smoothed
	d, ok := f.Apply(RawSample{Gx: 4000}, Offset{}, &state)
	require.True(t, ok)
	require.Equal(t, Delta{DX: 0, DY: -1}, d)

	state = Smoothed{X: 20}
	d, ok = f.Apply(RawSample{}, Offset{}, &state)
	require.False(t, ok)
	require.Equal(t, Delta{DX: 0, DY: -1}, d)
}

func TestFilterDeterministic(t *testing.T) {
	f := testFilter()
	s1, s2 := Smoothed{X: 33, Y: -12}, Smoothed{X: 33, Y: -12}
	raw := RawSample{Gx: 812, Gy: -1290}
	d1, ok1 := f.Apply(raw, Offset{X: 3}, &s1)
	d2, ok2 := f.Apply(raw, Offset{X: 3}, &s2)
	require.Equal(t, d1, d2)
	require.Equal(t, ok1, ok2)
	require.Equal(t, s1, s2)
}

func TestFilterCustomAxes(t *testing.T) {
	f := testFilter()
	f.Axes = AxisMap{DX: Axis{}, DY: Axis{FromY: true, Negate: true}}
	var state Smoothed
	d, ok := f.Apply(RawSample{Gx: 1000, Gy: 1000}, Offset{}, &state)
	require.True(t, ok)
	require.Equal(t, Delta{DX: 15, DY: -15}, d)
}

func TestIdle(t *testing.T) {
	require.True(t, Idle(Delta{}))
	require.True(t, Idle(Delta{DX: -1, DY: 1}))
	require.False(t, Idle(Delta{DX: 2}))
	require.False(t, Idle(Delta{DY: -2}))
}
