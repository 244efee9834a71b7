package hardware

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBench_Actuator tracks direction and speed.
func TestBench_Actuator(t *testing.T) {
	t.Parallel()

	b := NewBench()
	require.Equal(t, DirectionStop, b.Direction())

	require.NoError(t, b.Forward(100))
	require.Equal(t, DirectionForward, b.Direction())
	require.Equal(t, 100, b.Speed())

	require.NoError(t, b.Reverse(60))
	require.Equal(t, DirectionReverse, b.Direction())
	require.Equal(t, 60, b.Speed())

	require.NoError(t, b.Stop())
	require.Equal(t, DirectionStop, b.Direction())
	require.Zero(t, b.Speed())
	require.Equal(t, "stop", b.Direction().String())
}

// TestBench_Signals covers occupancy, alarm and the sticky diagnostic output.
func TestBench_Signals(t *testing.T) {
	t.Parallel()

	b := NewBench()
	require.Equal(t, ReadingPresent, b.Occupancy())

	b.SetOccupancy(ReadingClear)
	require.Equal(t, ReadingClear, b.Occupancy())
	require.Equal(t, "clear", b.Occupancy().String())

	require.NoError(t, b.On())
	require.True(t, b.AlarmActive())
	require.NoError(t, b.Off())
	require.False(t, b.AlarmActive())

	require.False(t, b.DiagnosticRaised())
	require.NoError(t, b.Raise())
	require.True(t, b.DiagnosticRaised())

	d := b.Devices()
	require.NotNil(t, d.Actuator)
	require.NotNil(t, d.Occupancy)
	require.NotNil(t, d.Alarm)
	require.NotNil(t, d.Diagnostic)
}
