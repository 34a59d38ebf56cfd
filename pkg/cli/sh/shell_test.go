package sh

import (
	"testing"

	"github.com/abiosoft/ishell"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/airmouse/pkg/device"
	"github.com/robotalks/airmouse/pkg/link"
	"github.com/robotalks/airmouse/pkg/motion"
)

func TestIntArgs(t *testing.T) {
	vals, err := IntArgs(&ishell.Context{Args: []string{"400", "-2", "0"}}, 3)
	require.NoError(t, err)
	require.Equal(t, []int{400, -2, 0}, vals)

	_, err = IntArgs(&ishell.Context{Args: []string{"1"}}, 3)
	require.Error(t, err)
	_, err = IntArgs(&ishell.Context{Args: []string{"x"}}, 1)
	require.Error(t, err)
}

func TestSampleArgs(t *testing.T) {
	sample, err := SampleArgs(&ishell.Context{Args: []string{"32767", "-32768", "5"}})
	require.NoError(t, err)
	require.Equal(t, motion.RawSample{Gx: 32767, Gy: -32768, Gz: 5}, sample)

	_, err = SampleArgs(&ishell.Context{Args: []string{"40000", "0", "0"}})
	require.Error(t, err)
	_, err = SampleArgs(&ishell.Context{Args: []string{"0", "-32769", "0"}})
	require.Error(t, err)
	_, err = SampleArgs(&ishell.Context{Args: []string{"0", "0"}})
	require.Error(t, err)
}

func TestFormatStatus(t *testing.T) {
	out := FormatStatus(device.Status{
		Mode:       device.Mode{Armed: true, Calibrated: true},
		Connection: link.Connected,
		Offset:     motion.Offset{X: 1.5},
		LastDelta:  motion.Delta{DX: 3, DY: -4},
		Link:       link.Stats{MovesSent: 7},
	})
	require.Contains(t, out, "armed=true calibrated=true link=connected offset=(1.50, 0.00, 0.00) last=(3,-4)")
	require.Contains(t, out, "moves sent=7")
}
