package cmd

import (
	"path/filepath"
)

func createPath(path string) {
	err := baseFs.MkdirAll(path, 0755)
	if err != nil {
		warnf("could not create %s: %v", path, err)
	}
}

func sanitizePath(path string) (string, error) {
	return filepath.Abs(filepath.Clean(path))
}
