package model

import (
	"os"
	"time"
)

// Entry describes a candidate file for versioning, as discovered under
// the data root or named directly by the operator.
type Entry struct {
	Path    string    `json:"path" yaml:"path"`
	Base    string    `json:"base" yaml:"base"`
	Size    int64     `json:"size" yaml:"size"`
	ModTime time.Time `json:"modtime,omitempty" yaml:"modtime,omitempty"`
	_       struct{}
}

// NewEntry builds an Entry from a path and its file info
func NewEntry(path, base string, info os.FileInfo) Entry {
	e := Entry{
		Path: path,
		Base: base,
	}
	if info != nil {
		e.Size = info.Size()
		e.ModTime = info.ModTime()
	}
	return e
}
