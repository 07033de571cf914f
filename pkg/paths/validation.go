package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/projman/pkg/errors"
)

// ValidateName ensures a project or template name is usable as a single
// directory name, since copies are created at <target>/<name>.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrInvalidInput, "name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return errors.New(errors.ErrInvalidInput, "name cannot contain path separators")
	}

	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidInput, "name cannot be '.' or '..'")
	}

	for _, r := range name {
		if r < 32 {
			return errors.New(errors.ErrInvalidInput, "name contains control characters")
		}
	}

	return nil
}

// IsStrictDescendant reports whether child lies strictly inside parent.
// Both paths are made absolute first; the relative path from parent to
// child must be non-empty, not ".", must not climb out with "..", and must
// not itself be absolute.
func IsStrictDescendant(parent, child string) (bool, error) {
	absParent, err := filepath.Abs(parent)
	if err != nil {
		return false, err
	}
	absChild, err := filepath.Abs(child)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(absParent, absChild)
	if err != nil {
		// Different volumes on Windows: never a descendant
		return false, nil
	}

	if rel == "" || rel == "." || filepath.IsAbs(rel) {
		return false, nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}
	return true, nil
}
