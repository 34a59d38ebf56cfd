package motion

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"
)

// Calibrator measures the static bias of a still sensor.
type Calibrator struct {
	Samples int
	Delay   time.Duration
}

// NewCalibrator creates a Calibrator from config.
func NewCalibrator(conf *Config) *Calibrator {
	return &Calibrator{
		Samples: conf.CalibrationSamples,
		Delay:   conf.CalibrationDelay,
	}
}

// Calibrate reads Samples samples with Delay in between and returns
// the per-axis arithmetic mean. It aborts on the first read error.
func (c *Calibrator) Calibrate(ctx context.Context, src Source) (Offset, error) {
	if c.Samples <= 0 {
		return Offset{}, ErrNoSamples
	}
	var sum [3]float64
	for n := 0; n < c.Samples; n++ {
		if err := ctx.Err(); err != nil {
			return Offset{}, err
		}
		if n > 0 && c.Delay > 0 {
			select {
			case <-ctx.Done():
				return Offset{}, ctx.Err()
			case <-time.After(c.Delay):
			}
		}
		s, err := src.Read()
		if err != nil {
			return Offset{}, fmt.Errorf("calibration sample %d: %w", n, err)
		}
		sum[0] += float64(s.Gx)
		sum[1] += float64(s.Gy)
		sum[2] += float64(s.Gz)
	}
	cnt := float64(c.Samples)
	offset := Offset{X: sum[0] / cnt, Y: sum[1] / cnt, Z: sum[2] / cnt}
	glog.V(1).Infof("calibrated over %d samples: x=%.2f y=%.2f z=%.2f",
		c.Samples, offset.X, offset.Y, offset.Z)
	return offset, nil
}
