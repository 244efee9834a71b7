package protocol

import (
	"errors"
	"fmt"
	"strings"
)

// CredentialLength is the number of digits in a credential.
const CredentialLength = 5

// Credential is the access code: exactly five digits.
type Credential [CredentialLength]byte

var (
	// ErrCredentialLength is returned when a digit sequence is not exactly five long.
	ErrCredentialLength = errors.New("credential must have exactly 5 digits")
	// ErrCredentialDigit is returned when a value is outside 0-9.
	ErrCredentialDigit = errors.New("credential digit out of range")
)

// NewCredential builds a credential from raw digit values.
func NewCredential(digits []byte) (Credential, error) {
	var c Credential

	if len(digits) != CredentialLength {
		return c, fmt.Errorf("%w: got %d", ErrCredentialLength, len(digits))
	}

	for i, d := range digits {
		if !IsDigit(d) {
			return c, fmt.Errorf("%w: position %d holds %d", ErrCredentialDigit, i, d)
		}

		c[i] = d
	}

	return c, nil
}

// ParseCredential parses a decimal string such as "12345".
func ParseCredential(s string) (Credential, error) {
	s = strings.TrimSpace(s)

	digits := make([]byte, 0, len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			return Credential{}, fmt.Errorf("%w: %q", ErrCredentialDigit, r)
		}

		digits = append(digits, byte(r-'0'))
	}

	return NewCredential(digits)
}

// Valid reports whether every position holds a digit.
func (c Credential) Valid() bool {
	for _, d := range c {
		if !IsDigit(d) {
			return false
		}
	}

	return true
}

// String masks the credential so it can be logged.
func (c Credential) String() string {
	return strings.Repeat("*", CredentialLength)
}

// Equal reports whether both credentials hold the same digits.
func (c Credential) Equal(other Credential) bool {
	return c == other
}

// Bytes returns the digits as a fresh slice.
func (c Credential) Bytes() []byte {
	return append([]byte(nil), c[:]...)
}
