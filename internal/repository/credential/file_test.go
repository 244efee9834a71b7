package credential

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileStore_CreatesErasedImage verifies a missing file becomes an erased image.
func TestFileStore_CreatesErasedImage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credential.bin")

	s, err := OpenFileStore(path)
	require.NoError(t, err)

	b, err := s.ReadCell(BaseAddress)
	require.NoError(t, err)
	require.Equal(t, erased, b)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(ImageSize), info.Size())
}

// TestFileStore_PersistsAcrossReopen ensures writes survive reopening the file.
func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credential.bin")

	s, err := OpenFileStore(path)
	require.NoError(t, err)

	for i, d := range []byte{1, 2, 3, 4, 5} {
		require.NoError(t, s.WriteCell(DigitAddress(i), d))
	}

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)

	for i, want := range []byte{1, 2, 3, 4, 5} {
		got, err := reopened.ReadCell(DigitAddress(i))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

// TestFileStore_ShortImage pads a truncated file with erased cells.
func TestFileStore_ShortImage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credential.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 7}, 0o600))

	s, err := OpenFileStore(path)
	require.NoError(t, err)

	b, err := s.ReadCell(BaseAddress)
	require.NoError(t, err)
	require.Equal(t, byte(7), b)

	b, err = s.ReadCell(ImageSize - 1)
	require.NoError(t, err)
	require.Equal(t, erased, b)
}

// TestStores_AddressRange rejects addresses beyond the image.
func TestStores_AddressRange(t *testing.T) {
	t.Parallel()

	fs, err := OpenFileStore(filepath.Join(t.TempDir(), "credential.bin"))
	require.NoError(t, err)

	for _, s := range []Store{fs, NewMemoryStore()} {
		_, err := s.ReadCell(ImageSize)
		require.ErrorIs(t, err, ErrAddressOutOfRange)
		require.ErrorIs(t, s.WriteCell(ImageSize, 1), ErrAddressOutOfRange)
	}
}

// TestMemoryStore_ReadFault returns the stored byte alongside the injected fault.
func TestMemoryStore_ReadFault(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	require.NoError(t, s.WriteCell(DigitAddress(2), 3))
	s.InjectReadFault(DigitAddress(2))

	b, err := s.ReadCell(DigitAddress(2))
	require.ErrorIs(t, err, ErrReadFault)
	require.Equal(t, byte(3), b)
}
