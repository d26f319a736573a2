// Package filex prepares on-disk locations for the client's local database.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveDataFile expands a leading "~" to the user's home directory, makes
// the path absolute and creates its parent directory (0700, the file holds a
// bearer credential). In-memory sqlite DSNs are returned unchanged.
func ResolveDataFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty data file path")
	}
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path, nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return abs, nil
}
