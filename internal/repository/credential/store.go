package credential

import (
	"errors"
	"fmt"
)

// Store is byte-addressed persistent storage.
type Store interface {
	// ReadCell returns the byte at addr. On a fault it still returns
	// whatever the medium produced together with the error.
	ReadCell(addr uint16) (byte, error)
	// WriteCell stores b at addr.
	WriteCell(addr uint16, b byte) error
}

const (
	// BaseAddress is the first of the contiguous credential addresses.
	BaseAddress uint16 = 0x0001

	// ImageSize is the size of the storage image in bytes.
	ImageSize = 1024

	// erased is the value of a never-written cell.
	erased byte = 0xFF
)

var (
	// ErrAddressOutOfRange is returned for addresses beyond the image.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrReadFault is returned when the medium fails a read.
	ErrReadFault = errors.New("storage read fault")
)

// DigitAddress returns the address of the credential digit at position i.
func DigitAddress(i int) uint16 {
	return BaseAddress + uint16(i) //nolint:gosec // i is bounded by the credential length.
}

func checkAddress(addr uint16) error {
	if int(addr) >= ImageSize {
		return fmt.Errorf("%w: 0x%04X", ErrAddressOutOfRange, addr)
	}

	return nil
}
