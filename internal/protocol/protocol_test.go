package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewCredential checks length and range validation.
func TestNewCredential(t *testing.T) {
	t.Parallel()

	c, err := NewCredential([]byte{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.Equal(t, Credential{1, 2, 3, 4, 5}, c)
	require.True(t, c.Valid())

	_, err = NewCredential([]byte{1, 2, 3, 4})
	require.ErrorIs(t, err, ErrCredentialLength)

	_, err = NewCredential([]byte{1, 2, 3, 4, 5, 6})
	require.ErrorIs(t, err, ErrCredentialLength)

	_, err = NewCredential([]byte{1, 2, 'a', 4, 5})
	require.ErrorIs(t, err, ErrCredentialDigit)
}

// TestParseCredential covers decimal parsing and rejection of other characters.
func TestParseCredential(t *testing.T) {
	t.Parallel()

	c, err := ParseCredential(" 90210 ")
	require.NoError(t, err)
	require.Equal(t, Credential{9, 0, 2, 1, 0}, c)

	_, err = ParseCredential("12a45")
	require.ErrorIs(t, err, ErrCredentialDigit)

	_, err = ParseCredential("123")
	require.ErrorIs(t, err, ErrCredentialLength)

	require.False(t, Credential{1, 2, 3, 4, 10}.Valid())
	require.Equal(t, "*****", c.String())
}

// TestByteClassification verifies the wire vocabulary helpers.
func TestByteClassification(t *testing.T) {
	t.Parallel()

	require.True(t, IsDigit(0))
	require.True(t, IsDigit(9))
	require.False(t, IsDigit(Blank))

	require.True(t, IsOutcome(OutcomeMatch))
	require.True(t, IsOutcome(OutcomeMismatch))
	require.True(t, IsOutcome(OutcomeAlarm))
	require.False(t, IsOutcome(StatusWaiting))

	require.Equal(t, StatusOpening, StatusAlarmCleared)
	require.Equal(t, "opening", Describe(StatusAlarmCleared))
	require.Equal(t, "digit(7)", Describe(7))
	require.Equal(t, "0x7F", Describe(0x7F))
}
