//go:build unix

package fileop

import (
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBytes(b []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	}
}

func TestWriteAtomicHonoursUmask(t *testing.T) {
	for _, umask := range []int{0o022, 0o027, 0o077} {
		old := syscall.Umask(umask)
		dest := filepath.Join(t.TempDir(), "out.bin")
		err := WriteAtomic(dest, writeBytes([]byte("x")))
		syscall.Umask(old)
		require.NoError(t, err)

		info, err := os.Stat(dest)
		require.NoError(t, err)
		assert.Equal(t, FileMode&^os.FileMode(umask), info.Mode().Perm(), "umask %o", umask)
	}
}

func TestWriteAtomicKeepsExistingMode(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o600))
	require.NoError(t, os.Chmod(dest, 0o640))

	require.NoError(t, WriteAtomic(dest, writeBytes([]byte("new"))))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}
