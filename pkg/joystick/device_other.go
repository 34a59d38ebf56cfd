//go:build !linux

package joystick

// Open is not supported.
func Open(index int) (Device, error) {
	return nil, ErrUnsupported
}

// Detect is not supported.
func Detect() (Device, error) {
	return nil, ErrUnsupported
}
