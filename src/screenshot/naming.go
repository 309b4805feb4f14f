package screenshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultBaseName = "screenshot"
	DefaultExt      = ".png"
)

// NextAvailableFilename returns folder/<base><n><ext> for the smallest n >= 1
// that does not exist yet.
func NextAvailableFilename(folder, base, ext string) string {
	for i := 1; ; i++ {
		path := filepath.Join(folder, fmt.Sprintf("%s%d%s", base, i, ext))
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path
		}
	}
}

// PicturesScreenshotFolder returns <Pictures>/Screenshots, creating it.
func PicturesScreenshotFolder() (string, error) {
	pictures, err := picturesDir()
	if err != nil {
		return "", fmt.Errorf("locate pictures folder: %w", err)
	}
	return EnsureFolder(filepath.Join(pictures, "Screenshots"))
}

// EnsureFolder creates dir if needed and returns it.
func EnsureFolder(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create save directory %s: %w", dir, err)
	}
	return dir, nil
}
