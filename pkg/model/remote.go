package model

import "strings"

// RemoteKind enumerates the supported storage backend kinds for a
// remote endpoint.
type RemoteKind int

const (
	// RemoteLocal is a directory on a local or mounted filesystem
	RemoteLocal RemoteKind = iota

	// RemoteGDrive is a cloud-drive folder addressed by folder ID
	RemoteGDrive

	// RemoteS3 is an object-storage bucket path
	RemoteS3
)

func (k RemoteKind) String() string {
	switch k {
	case RemoteGDrive:
		return "gdrive"
	case RemoteS3:
		return "s3"
	default:
		return "local"
	}
}

// RemoteDescriptor describes a storage endpoint registered with the
// data-versioning tool. At most one endpoint is the default per run.
type RemoteDescriptor struct {
	Name    string `json:"name" yaml:"name"`
	URL     string `json:"url" yaml:"url"`
	Region  string `json:"region,omitempty" yaml:"region,omitempty"`
	Default bool   `json:"default,omitempty" yaml:"default,omitempty"`
	_       struct{}
}

// Kind derives the backend kind from the endpoint URL scheme
func (r RemoteDescriptor) Kind() RemoteKind {
	switch {
	case strings.HasPrefix(r.URL, "s3://"):
		return RemoteS3
	case strings.HasPrefix(r.URL, "gdrive://"):
		return RemoteGDrive
	default:
		return RemoteLocal
	}
}

// Bucket returns the bucket name of an object-storage endpoint, without
// scheme or sub-path. Empty for other kinds.
func (r RemoteDescriptor) Bucket() string {
	if r.Kind() != RemoteS3 {
		return ""
	}
	trimmed := strings.TrimPrefix(r.URL, "s3://")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}
