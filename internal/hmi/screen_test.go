package hmi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestScreen_ShowClipsAndClears checks positioning and clipping.
func TestScreen_ShowClipsAndClears(t *testing.T) {
	t.Parallel()

	var changes int

	s := NewScreen(func() { changes++ })
	s.Show(0, 12, "abcdef")
	s.Show(1, 0, "*")
	s.Show(5, 0, "ignored")

	require.Equal(t, "            abcd", s.Lines()[0])
	require.Equal(t, "*", s.Line(1))

	s.Clear()
	require.Empty(t, s.Line(0))
	require.Equal(t, 3, changes)
}

// TestKeyQueue_PressAndCancel checks queueing and context cancellation.
func TestKeyQueue_PressAndCancel(t *testing.T) {
	t.Parallel()

	q := NewKeyQueue(1)
	require.True(t, q.Press(KeyPlus))
	require.False(t, q.Press(KeyMinus))

	k, err := q.Key(context.Background())
	require.NoError(t, err)
	require.Equal(t, KeyPlus, k)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = q.Key(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestKey_String checks that digits are never rendered.
func TestKey_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "digit", Key(7).String())
	require.Equal(t, "=", KeySubmit.String())
	require.Equal(t, "key(0x41)", Key('A').String())
}
