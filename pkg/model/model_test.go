package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidecarRoundTrip(t *testing.T) {
	doc := `outs:
- md5: d8e8fca2dc0f896fd7cb4cb0031ba249
  size: 1048576
  path: student_performance.csv
`
	sd, err := UnmarshalSidecar([]byte(doc))
	require.NoError(t, err)
	out, ok := sd.Out()
	require.True(t, ok)
	assert.Equal(t, "d8e8fca2dc0f896fd7cb4cb0031ba249", out.MD5)
	assert.Equal(t, int64(1048576), out.Size)
	assert.Equal(t, "student_performance.csv", out.Path)
}

func TestSidecarNoSingleOut(t *testing.T) {
	sd, err := UnmarshalSidecar([]byte("outs: []\n"))
	require.NoError(t, err)
	_, ok := sd.Out()
	assert.False(t, ok)
}

func TestRemoteKind(t *testing.T) {
	assert.Equal(t, RemoteS3, RemoteDescriptor{URL: "s3://bucket/datasets"}.Kind())
	assert.Equal(t, RemoteGDrive, RemoteDescriptor{URL: "gdrive://1A2b3C"}.Kind())
	assert.Equal(t, RemoteLocal, RemoteDescriptor{URL: "/tmp/dvc-storage"}.Kind())
	assert.Equal(t, "s3", RemoteS3.String())
	assert.Equal(t, "local", RemoteLocal.String())
}

func TestRemoteBucket(t *testing.T) {
	assert.Equal(t, "my-bucket", RemoteDescriptor{URL: "s3://my-bucket/sub/path"}.Bucket())
	assert.Equal(t, "my-bucket", RemoteDescriptor{URL: "s3://my-bucket"}.Bucket())
	assert.Equal(t, "", RemoteDescriptor{URL: "/tmp/dvc-storage"}.Bucket())
}

func TestValidateTagName(t *testing.T) {
	for _, valid := range []string{"data-v1.1-cleaned", "v2", "release/2026-08"} {
		assert.NoError(t, ValidateTagName(valid), valid)
	}
	for _, invalid := range []string{"", "-v1", ".hidden", "a..b", "has space", "q?", "v1.lock", "star*"} {
		assert.Error(t, ValidateTagName(invalid), invalid)
	}
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "data/processed/x.csv.dvc", SidecarPath("data/processed/x.csv"))
	assert.Equal(t, "data/processed/x.csv", TrackedPath("data/processed/x.csv.dvc"))
	assert.True(t, IsSidecar("data/processed/x.csv.dvc"))
	assert.False(t, IsSidecar("data/processed/x.csv"))
	assert.Equal(t, "data/processed/.gitignore", IgnorePath("data/processed/x.csv"))
}

func TestMessageTemplates(t *testing.T) {
	assert.Equal(t, "Add x.csv to DVC tracking", DefaultCommitMessage("x.csv"))
	assert.Equal(t, "Data version data-v1.1", DefaultTagMessage("data-v1.1"))
}
