package model

import (
	"path/filepath"
	"strings"
)

const (
	// SidecarExt is the extension of the per-file metadata sidecar
	SidecarExt = ".dvc"

	// IgnoreFile is the per-directory ignore file maintained for the
	// code-versioning tool
	IgnoreFile = ".gitignore"
)

// SidecarPath returns the path of the metadata sidecar created alongside
// a tracked file.
func SidecarPath(path string) string {
	return path + SidecarExt
}

// TrackedPath is the inverse of SidecarPath
func TrackedPath(sidecar string) string {
	return strings.TrimSuffix(sidecar, SidecarExt)
}

// IsSidecar tells whether a path names a metadata sidecar
func IsSidecar(path string) bool {
	return filepath.Ext(path) == SidecarExt
}

// IgnorePath returns the ignore file updated when a file in the same
// directory gets tracked.
func IgnorePath(path string) string {
	return filepath.Join(filepath.Dir(path), IgnoreFile)
}
