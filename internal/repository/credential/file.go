package credential

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/door-guard/internal/config"
)

// FileStore persists the storage image to a file on disk.
// Every write goes straight to the file so a restart keeps the credential.
type FileStore struct {
	// path is the filesystem location of the image.
	path string
	// image is the in-memory copy of the file.
	image []byte
	// mu protects image and the file.
	mu sync.Mutex
}

// OpenFileStore loads the image at path, creating an erased one if missing.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: filepath.Clean(path),
	}

	contents, err := os.ReadFile(s.path)

	switch {
	case err == nil:
		s.image = make([]byte, ImageSize)
		copy(s.image, contents)

		// A short file means the tail was never written.
		if len(contents) < ImageSize {
			copy(s.image[len(contents):], bytes.Repeat([]byte{erased}, ImageSize-len(contents)))
		}
	case errors.Is(err, os.ErrNotExist):
		s.image = bytes.Repeat([]byte{erased}, ImageSize)

		if err = s.flush(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("read storage image: %w", err)
	}

	return s, nil
}

// ReadCell returns the byte at addr.
func (s *FileStore) ReadCell(addr uint16) (byte, error) {
	if err := checkAddress(addr); err != nil {
		return erased, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.image[addr], nil
}

// WriteCell stores b at addr and flushes the image.
func (s *FileStore) WriteCell(addr uint16, b byte) error {
	if err := checkAddress(addr); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.image[addr]
	s.image[addr] = b

	if err := s.flush(); err != nil {
		s.image[addr] = previous

		return err
	}

	return nil
}

// flush writes the image to disk. Callers hold mu or own s exclusively.
func (s *FileStore) flush() error {
	if err := os.WriteFile(s.path, s.image, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write storage image: %w", err)
	}

	return nil
}
