package paths

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/dotprofile/pkg/errors"
)

// MaxProfileNameLength is the longest accepted profile name, in characters.
const MaxProfileNameLength = 50

// ReservedProfileNames cannot be used as profile names (case-insensitive).
var ReservedProfileNames = []string{
	"default", "system", "temp", "backup", "cache", "current", "active",
}

const invalidNameChars = "/\\:*?\"<>|"

// ValidatePath performs basic validation on a path.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidateProfileName ensures a name is usable both as a profile name and
// as a directory name. Names must:
// - Not be empty or longer than MaxProfileNameLength characters
// - Not contain path separators or : * ? " < > |
// - Not contain control characters
// - Not be . or .. or a reserved word
func ValidateProfileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrInvalidInput, "profile name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxProfileNameLength {
		return errors.Newf(errors.ErrInvalidInput,
			"profile name exceeds %d characters", MaxProfileNameLength).
			WithDetail("name", name)
	}

	if strings.ContainsAny(name, invalidNameChars) {
		return errors.Newf(errors.ErrInvalidInput,
			"profile name contains invalid characters: %s", invalidNameChars).
			WithDetail("name", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return errors.New(errors.ErrInvalidInput,
				"profile name contains control characters").
				WithDetail("name", name)
		}
	}

	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidInput, "profile name cannot be '.' or '..'")
	}

	lower := strings.ToLower(strings.TrimSpace(name))
	for _, reserved := range ReservedProfileNames {
		if lower == reserved {
			return errors.Newf(errors.ErrInvalidInput, "profile name %q is reserved", name).
				WithDetail("name", name)
		}
	}

	return nil
}

// ValidateRelativePath checks that rel stays inside its base directory.
func ValidateRelativePath(rel string) error {
	if err := ValidatePath(rel); err != nil {
		return err
	}
	if filepath.IsAbs(rel) {
		return errors.New(errors.ErrInvalidInput, "path must be relative").
			WithDetail("path", rel)
	}
	cleaned := filepath.Clean(rel)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return errors.New(errors.ErrInvalidInput, "path escapes its base directory").
			WithDetail("path", rel)
	}
	return nil
}

// ContainsPath reports whether child is parent or lies below it. Both
// paths are cleaned before comparison.
func ContainsPath(parent, child string) bool {
	parent = filepath.Clean(parent)
	child = filepath.Clean(child)

	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
