package motion

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalibrate(t *testing.T) {
	testCases := []struct {
		name    string
		samples []RawSample
		expect  Offset
	}{
		{
			name:    "all zero",
			samples: repeatSample(RawSample{}, 150),
			expect:  Offset{},
		},
		{
			name:    "constant bias",
			samples: repeatSample(RawSample{Gx: 12, Gy: -7, Gz: 300}, 150),
			expect:  Offset{X: 12, Y: -7, Z: 300},
		},
		{
			name: "mean of mixed samples",
			samples: []RawSample{
				{Gx: 1, Gy: 2, Gz: 3},
				{Gx: 2, Gy: 4, Gz: -3},
				{Gx: 3, Gy: 6, Gz: 0},
				{Gx: -2, Gy: 0, Gz: 4},
			},
			expect: Offset{X: 1, Y: 3, Z: 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Calibrator{Samples: len(tc.samples)}
			src := &ScriptedSource{Samples: tc.samples}
			offset, err := c.Calibrate(context.TODO(), src)
			require.NoError(t, err)
			require.Equal(t, tc.expect, offset)
			require.Equal(t, len(tc.samples), src.Reads())

			again, err := c.Calibrate(context.TODO(), &ScriptedSource{Samples: tc.samples})
			require.NoError(t, err)
			require.Equal(t, offset, again)
		})
	}
}

func TestCalibrateReadError(t *testing.T) {
	c := &Calibrator{Samples: 5}
	_, err := c.Calibrate(context.TODO(), &ScriptedSource{Samples: repeatSample(RawSample{}, 3)})
	require.Error(t, err)
	require.True(t, errors.Is(err, io.EOF))
}

func TestCalibrateNoSamples(t *testing.T) {
	_, err := (&Calibrator{}).Calibrate(context.TODO(), Constant(RawSample{}))
	require.Equal(t, ErrNoSamples, err)
}

func TestCalibrateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.TODO())
	cancel()
	c := &Calibrator{Samples: 3, Delay: 1}
	_, err := c.Calibrate(ctx, Constant(RawSample{}))
	require.Equal(t, context.Canceled, err)
}

func repeatSample(s RawSample, n int) []RawSample {
	out := make([]RawSample, n)
	for i := range out {
		out[i] = s
	}
	return out
}
