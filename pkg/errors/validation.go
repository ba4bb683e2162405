package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxNameLength bounds system names and tag values.
const maxNameLength = 256

// ValidateName validates a system name or tag value.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidDataset, "name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidDataset, "name too long (max %d characters): %.32q...", maxNameLength, name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "name contains control characters: %q", name)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidSource, "URL cannot be empty")
	}

	if !IsURL(rawURL) {
		return New(ErrCodeInvalidSource, "URL must use http or https scheme")
	}

	return nil
}

// IsURL reports whether source looks like an http(s) URL rather than a path.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// datasetExtensions lists the file extensions a dataset may use.
var datasetExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// ValidateSource validates a dataset source: an http(s) URL or a local file
// path with a supported extension.
func ValidateSource(source string) error {
	if source == "" {
		return New(ErrCodeInvalidSource, "dataset source cannot be empty (pass a file or set [dataset] source in the config)")
	}

	if IsURL(source) {
		return ValidateURL(source)
	}

	if strings.ContainsRune(source, '\x00') {
		return New(ErrCodeInvalidSource, "path contains invalid characters")
	}

	ext := strings.ToLower(filepath.Ext(source))
	if !datasetExtensions[ext] {
		return New(ErrCodeInvalidSource, "unsupported dataset extension %q (must be .json, .yaml or .yml)", ext)
	}

	return nil
}
