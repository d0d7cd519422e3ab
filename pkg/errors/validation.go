package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// slugRegex matches device-type slugs: lowercase words joined by dashes,
// dots or underscores (e.g. "dell-poweredge-r650", "1u-shelf").
var slugRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9._-]*[a-z0-9])?$`)

// ValidateSlug validates a device-type slug.
//
// The validation rules are intentionally conservative:
//   - No empty slugs
//   - Maximum length of 128 characters
//   - Lowercase letters, digits, '.', '_' and '-' only
//   - Must start and end with a letter or digit
func ValidateSlug(slug string) error {
	if slug == "" {
		return New(ErrCodeInvalidDeviceType, "device type slug cannot be empty")
	}
	if len(slug) > 128 {
		return New(ErrCodeInvalidDeviceType, "device type slug too long (max 128 characters)")
	}
	if !slugRegex.MatchString(slug) {
		return New(ErrCodeInvalidDeviceType, "invalid device type slug: %q", slug)
	}
	return nil
}

// ValidateName validates a user-supplied display name for a rack or device.
// Empty names are allowed and mean "use the default label".
func ValidateName(name string) error {
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}
	return nil
}

// layoutExtensions lists the file extensions accepted for layout documents.
var layoutExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// ValidateLayoutPath validates a layout document path.
// The path must be non-empty, free of control characters and end in one of the
// supported document extensions.
func ValidateLayoutPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "layout path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !layoutExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported layout format %q (use .json, .yaml or .yml)", ext)
	}
	return nil
}
