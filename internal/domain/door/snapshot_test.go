package door

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSnapshotClone verifies that Clone returns an equal copy and handles nil safely.
func TestSnapshotClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Snapshot)(nil).Clone())

	s := &Snapshot{
		Timestamp:    time.Now().UTC().Truncate(time.Second),
		Phase:        PhaseDoorWaiting,
		Cycle:        CycleWaitingForClear,
		Attempts:     2,
		ElapsedTicks: 0,
	}

	c := s.Clone()
	require.Equal(t, s, c)
	require.NotSame(t, s, c)
}

// TestNames checks the log and API names of the enumerations.
func TestNames(t *testing.T) {
	t.Parallel()

	require.Equal(t, "credential-check", PhaseCredentialCheck.String())
	require.Equal(t, "alarm", PhaseAlarm.String())
	require.Equal(t, "phase(9)", Phase(9).String())
	require.Equal(t, "waiting-for-clear", CycleWaitingForClear.String())
	require.Equal(t, "o.shokin@door-01", (&Actor{Hostname: "door-01", Username: "o.shokin"}).String())
	require.Equal(t, "<unknown>", (*Actor)(nil).String())
}
