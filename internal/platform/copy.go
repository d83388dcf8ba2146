package platform

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrDestinationExists is returned by CopyFileExclusive when dst already exists.
var ErrDestinationExists = errors.New("destination already exists")

// CopyFileExclusive copies src to dst byte-for-byte. The destination is opened
// with O_EXCL, so an existing file is never truncated or replaced even if it
// appeared after the caller last checked. A partially written dst is removed
// on failure.
func CopyFileExclusive(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", dst, ErrDestinationExists)
		}
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}
