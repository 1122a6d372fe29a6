// Package fileop writes output files without ever exposing a partially
// written destination.
package fileop

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
)

// ErrIO wraps every failure reported by WriteAtomic.
var ErrIO = errors.New("i/o error")

// FileMode is the mode new files are created with, before the umask.
const FileMode os.FileMode = 0o666

const maxTempAttempts = 10000

// createTemp opens a new, exclusive file named after name in dir. Unlike
// os.CreateTemp it honours the umask, so the renamed result gets the same
// mode a plain os.Create would give it.
func createTemp(dir, name string) (*os.File, error) {
	for range maxTempAttempts {
		tmpName := filepath.Join(dir, "."+name+"."+strconv.FormatUint(uint64(rand.Uint32()), 10)+".tmp")
		f, err := os.OpenFile(tmpName, os.O_RDWR|os.O_CREATE|os.O_EXCL, FileMode)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return f, err
	}
	return nil, &fs.PathError{Op: "createtemp", Path: filepath.Join(dir, "."+name+".*.tmp"), Err: fs.ErrExist}
}

// WriteAtomic creates a temporary file next to dest, hands it to write,
// then syncs it and renames it over dest. If dest already exists its
// permissions are kept. If any step fails the temporary file is removed
// and dest keeps its previous content, if it had any.
func WriteAtomic(dest string, write func(io.Writer) error) (err error) {
	dir, name := filepath.Split(dest)
	if dir == "" {
		dir = "."
	}

	tmp, err := createTemp(dir, name)
	if err != nil {
		return fmt.Errorf("%w: could not create temporary file for %q: %w", ErrIO, dest, err)
	}
	tmpName := tmp.Name()
	logger := slog.Default().With("file", dest, "tmp", tmpName)

	closed := false
	defer func() {
		if !closed {
			if closeErr := tmp.Close(); closeErr != nil {
				logger.Error("could not close temporary file", "error", closeErr)
			}
		}
		if err != nil {
			if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				logger.Error("could not remove temporary file", "error", rmErr)
			}
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("%w: could not write %q: %w", ErrIO, dest, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: could not flush %q: %w", ErrIO, dest, err)
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: could not close %q: %w", ErrIO, dest, err)
	}
	if info, statErr := os.Stat(dest); statErr == nil {
		if err = os.Chmod(tmpName, info.Mode().Perm()); err != nil {
			return fmt.Errorf("%w: could not set mode of %q: %w", ErrIO, dest, err)
		}
	}
	if err = os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("%w: could not rename to %q: %w", ErrIO, dest, err)
	}

	logger.Debug("file written")
	return nil
}
