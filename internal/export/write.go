package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to dir/name atomically: a temp file in dir is
// written, synced and renamed over the target. dir is created if needed.
// It returns the final path.
func WriteFile(dir, name string, data []byte) (string, error) {
	if name == "" {
		return "", errors.New("export file name is empty")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cal-export-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("sync export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("rename export: %w", err)
	}
	return path, nil
}
