package parsing

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// withTempFile writes data to a new file in dir, calls fn with its path
// and removes the file on every return path. An empty dir means os.TempDir.
func withTempFile(dir, pattern string, data []byte, fn func(path string) error) (err error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	defer func() {
		rmErr := os.Remove(path)
		if rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
			err = fmt.Errorf("removing temp file: %w", rmErr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	return fn(path)
}
