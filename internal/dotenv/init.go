package dotenv

import (
	"errors"
	"fmt"
	"os"

	"github.com/subtitle-improver/subsetup/internal/platform"
)

// InitStatus describes what Init did with the configuration file.
type InitStatus int

const (
	// StatusExisted means the file was already present and left untouched.
	StatusExisted InitStatus = iota
	// StatusCreated means the file was copied from the template.
	StatusCreated
	// StatusTemplateMissing means neither the file nor the template exists.
	StatusTemplateMissing
)

func (s InitStatus) String() string {
	switch s {
	case StatusExisted:
		return "existed"
	case StatusCreated:
		return "created"
	case StatusTemplateMissing:
		return "template-missing"
	default:
		return fmt.Sprintf("InitStatus(%d)", int(s))
	}
}

// Init creates the configuration file at path by copying template, unless
// path already exists. An existing file is never modified. The new file is
// restricted to the owner since it holds credentials. If only that last
// step fails, StatusCreated is returned together with the error.
func Init(path, template string) (InitStatus, error) {
	if _, err := os.Stat(path); err == nil {
		return StatusExisted, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return StatusExisted, fmt.Errorf("checking %s: %w", path, err)
	}

	if _, err := os.Stat(template); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return StatusTemplateMissing, nil
		}
		return StatusTemplateMissing, fmt.Errorf("checking template %s: %w", template, err)
	}

	if err := platform.CopyFileExclusive(template, path, platform.FilePermSecure); err != nil {
		if errors.Is(err, platform.ErrDestinationExists) {
			return StatusExisted, nil
		}
		return StatusTemplateMissing, fmt.Errorf("creating %s from template: %w", path, err)
	}
	// OpenFile perms are filtered by umask; make the result exact.
	if err := platform.Chmod(path, platform.FilePermSecure); err != nil {
		return StatusCreated, fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	return StatusCreated, nil
}
