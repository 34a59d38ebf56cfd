package motion

import (
	"fmt"
	"strings"
)

// Axis selects one smoothed input axis, optionally negated.
type Axis struct {
	FromY  bool
	Negate bool
}

// AxisMap maps smoothed (x, y) to pointer (dx, dy). Each output axis
// reads exactly one input axis, so the axes stay decoupled.
type AxisMap struct {
	DX, DY Axis
}

// DefaultAxisMap matches the usual mounting of the sensor on the
// board: pointer X follows the gyro Y axis and pointer Y follows
// the negated gyro X axis.
var DefaultAxisMap = AxisMap{
	DX: Axis{FromY: true},
	DY: Axis{Negate: true},
}

// Apply selects the value for this axis.
func (a Axis) Apply(s Smoothed) float64 {
	v := s.X
	if a.FromY {
		v = s.Y
	}
	if a.Negate {
		v = -v
	}
	return v
}

// String returns the axis in the form accepted by ParseAxisMap.
func (a Axis) String() string {
	name := "x"
	if a.FromY {
		name = "y"
	}
	if a.Negate {
		return "-" + name
	}
	return name
}

// String implements fmt.Stringer, e.g. "y,-x".
func (m AxisMap) String() string {
	return m.DX.String() + "," + m.DY.String()
}

// ParseAxisMap parses "dx,dy" where each item is one of x, -x, y, -y.
func ParseAxisMap(s string) (AxisMap, error) {
	items := strings.Split(s, ",")
	if len(items) != 2 {
		return AxisMap{}, fmt.Errorf("%w: %q", ErrInvalidAxisMap, s)
	}
	var axes [2]Axis
	for n, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if strings.HasPrefix(item, "-") {
			axes[n].Negate, item = true, item[1:]
		} else {
			item = strings.TrimPrefix(item, "+")
		}
		switch item {
		case "x":
		case "y":
			axes[n].FromY = true
		default:
			return AxisMap{}, fmt.Errorf("%w: %q", ErrInvalidAxisMap, s)
		}
	}
	return AxisMap{DX: axes[0], DY: axes[1]}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (m AxisMap) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *AxisMap) UnmarshalText(text []byte) error {
	parsed, err := ParseAxisMap(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Set implements flag.Value.
func (m *AxisMap) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}
