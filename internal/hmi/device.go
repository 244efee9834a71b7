package hmi

import (
	"context"
	"fmt"
)

// Key is one keypad event. Digits are the raw values 0-9.
type Key byte

const (
	// KeySubmit accepts a five digit entry.
	KeySubmit Key = '='
	// KeyPlus selects "open door" in the menu.
	KeyPlus Key = '+'
	// KeyMinus selects "change pass" in the menu.
	KeyMinus Key = '-'
)

// IsDigit reports whether k is a digit key.
func (k Key) IsDigit() bool {
	return k <= 9
}

// String renders the key for logs without revealing digits.
func (k Key) String() string {
	if k.IsDigit() {
		return "digit"
	}

	switch k {
	case KeySubmit, KeyPlus, KeyMinus:
		return string(rune(k))
	default:
		return fmt.Sprintf("key(0x%02X)", byte(k))
	}
}

// Keypad delivers key presses.
type Keypad interface {
	// Key blocks until a key is pressed or ctx is done.
	Key(ctx context.Context) (Key, error)
}

// Display is a character display of DisplayRows by DisplayColumns.
type Display interface {
	// Clear blanks the whole display.
	Clear()
	// Show writes text starting at row and col. Text past the last column is dropped.
	Show(row, col int, text string)
}

// Indicator is the visual lockout signal.
type Indicator interface {
	Toggle()
}

const (
	// DisplayRows is the number of display lines.
	DisplayRows = 2
	// DisplayColumns is the number of characters per line.
	DisplayColumns = 16
)

// Fixed screen texts.
const (
	textEnterPass   = "PLZ enter pass:"
	textReenterPass = "Re_enter pass:  "
	textMenuOpen    = "+ : Open Door   "
	textMenuChange  = "- : Change Pass "
	textUnlocking   = "Door Unlocking  "
	textPleaseWait  = "Please wait..   "
	textWaitPeople  = "Wait For People "
	textToEnter     = "   to enter..   "
	textLocking     = "  Door locking  "
	textBlankLine   = "                "
	textLocked      = "SYSTEM LOCKED   "
	textWaitMinute  = "Wait for 1 min  "
	maskCharacter   = "*"
)
