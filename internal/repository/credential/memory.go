package credential

import (
	"bytes"
	"sync"
)

// MemoryStore is an in-memory storage image.
type MemoryStore struct {
	image []byte
	// faults marks addresses whose reads fail.
	faults map[uint16]struct{}
	mu     sync.Mutex
}

// NewMemoryStore returns an erased in-memory image.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		image:  bytes.Repeat([]byte{erased}, ImageSize),
		faults: make(map[uint16]struct{}),
	}
}

// InjectReadFault makes every read of addr report ErrReadFault.
func (s *MemoryStore) InjectReadFault(addr uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.faults[addr] = struct{}{}
}

// ReadCell returns the byte at addr.
func (s *MemoryStore) ReadCell(addr uint16) (byte, error) {
	if err := checkAddress(addr); err != nil {
		return erased, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.faults[addr]; ok {
		return s.image[addr], ErrReadFault
	}

	return s.image[addr], nil
}

// WriteCell stores b at addr.
func (s *MemoryStore) WriteCell(addr uint16, b byte) error {
	if err := checkAddress(addr); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.image[addr] = b

	return nil
}
