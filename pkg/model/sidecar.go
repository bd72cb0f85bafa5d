package model

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// SidecarDescriptor is the small metadata file the data-versioning tool
// writes alongside each tracked file (hash, size, relative path).
type SidecarDescriptor struct {
	Outs []SidecarOut `json:"outs" yaml:"outs"`
	_    struct{}
}

// SidecarOut is one output entry in a sidecar descriptor. A sidecar
// produced by tracking a single file holds exactly one.
type SidecarOut struct {
	MD5  string `json:"md5" yaml:"md5"`
	Size int64  `json:"size" yaml:"size"`
	Path string `json:"path" yaml:"path"`
	_    struct{}
}

// UnmarshalSidecar reads a sidecar descriptor from its yaml serialization
func UnmarshalSidecar(b []byte) (SidecarDescriptor, error) {
	var sd SidecarDescriptor
	if err := yaml.Unmarshal(b, &sd); err != nil {
		return SidecarDescriptor{}, fmt.Errorf("unmarshal sidecar: %w", err)
	}
	return sd, nil
}

// Out returns the single tracked output, or false when the sidecar does
// not describe exactly one file.
func (sd SidecarDescriptor) Out() (SidecarOut, bool) {
	if len(sd.Outs) != 1 {
		return SidecarOut{}, false
	}
	return sd.Outs[0], true
}
