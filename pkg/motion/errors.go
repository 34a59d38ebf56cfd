package motion

import "errors"

var (
	// ErrNoSamples indicates calibration was asked for zero samples.
	ErrNoSamples = errors.New("no calibration samples")
	// ErrInvalidAxisMap indicates an axis map string can't be parsed.
	ErrInvalidAxisMap = errors.New("invalid axis map")
)
