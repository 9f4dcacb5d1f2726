// Package validation guards filesystem writes driven by manifest content.
// Manifest paths come from a remote document and are never trusted to name
// files outside the chosen output directory.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateRelativePath cleans a manifest-relative path and rejects anything
// that could escape the directory it is joined onto. Backslashes are
// normalized to forward slashes before checking, matching how sources
// resolve the same paths.
func ValidateRelativePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	cleaned := filepath.Clean(filepath.FromSlash(strings.ReplaceAll(path, `\`, "/")))

	if cleaned == ".." || strings.Contains(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal not allowed")
	}
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("absolute paths not allowed")
	}
	return cleaned, nil
}

// ValidatePathWithinRoot verifies that a joined path still lives under the
// root directory.
func ValidatePathWithinRoot(rootDir, fullPath string) error {
	cleanRoot := filepath.Clean(rootDir)
	cleanPath := filepath.Clean(fullPath)

	if cleanPath != cleanRoot && !strings.HasPrefix(cleanPath, cleanRoot+string(filepath.Separator)) {
		return fmt.Errorf("path escapes root directory")
	}
	return nil
}
