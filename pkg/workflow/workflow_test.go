package workflow

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/perfpredict/dataver/pkg/dvc"
	"github.com/perfpredict/dataver/pkg/gitx"
	"github.com/perfpredict/dataver/pkg/runner"
	"github.com/perfpredict/dataver/pkg/selector"
	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	script *runner.Script
	fs     afero.Fs
	out    bytes.Buffer
}

func newHarness(t *testing.T, initialized bool) *harness {
	h := &harness{
		script: runner.NewScript(),
		fs:     afero.NewMemMapFs(),
	}
	require.NoError(t, afero.WriteFile(h.fs, "data/processed/x.csv", []byte("a,b\n1,2\n"), 0644))
	if initialized {
		require.NoError(t, h.fs.MkdirAll(dvc.MarkerDir, 0755))
	}
	// a commit is pending by default
	h.script.Stub("git status --porcelain", "A  data/processed/x.csv.dvc", nil)
	return h
}

func (h *harness) workflow(input string, opts ...Option) *Workflow {
	data := dvc.New(h.script, dvc.WithFs(h.fs))
	code := gitx.New(h.script)
	sel := selector.New(
		selector.WithFs(h.fs),
		selector.WithInput(strings.NewReader(input)),
		selector.WithOutput(&h.out),
	)
	opts = append([]Option{
		WithSelector(sel),
		WithFs(h.fs),
		WithPrompt(strings.NewReader(input), &h.out),
	}, opts...)
	return New(data, code, opts...)
}

func TestRunWithPresetTag(t *testing.T) {
	h := newHarness(t, true)
	w := h.workflow("", WithTag("data-v1.1-cleaned", ""))

	res, err := w.Run(context.Background(), "data/processed/x.csv")
	require.NoError(t, err)

	assert.Equal(t, StateSynced, res.State)
	assert.Equal(t, StateEnd, w.State())
	assert.True(t, res.Tagged)
	assert.Equal(t, "data-v1.1-cleaned", res.Tag.Name)
	assert.Empty(t, res.Warnings)

	assert.True(t, h.script.Called("dvc add data/processed/x.csv"))
	assert.True(t, h.script.Called("git add --ignore-errors -- data/processed/x.csv.dvc data/processed/.gitignore"))
	assert.True(t, h.script.Called("git commit -m Add x.csv to DVC tracking"))
	assert.True(t, h.script.Called("git tag -a data-v1.1-cleaned -m Data version data-v1.1-cleaned"))
	assert.True(t, h.script.Called("dvc push"))
	assert.True(t, h.script.Called("git push origin data-v1.1-cleaned"))

	assert.Contains(t, h.out.String(), "file: data/processed/x.csv")
	assert.Contains(t, h.out.String(), "tag:  data-v1.1-cleaned")
}

func TestRunWithoutTag(t *testing.T) {
	h := newHarness(t, true)
	w := h.workflow("\n")

	res, err := w.Run(context.Background(), "data/processed/x.csv")
	require.NoError(t, err)

	assert.Equal(t, StateSynced, res.State)
	assert.False(t, res.Tagged)
	assert.False(t, h.script.Called("git tag -a"))
	assert.False(t, h.script.Called("git push origin"))

	// summary lists the file and omits any tag line
	assert.Contains(t, h.out.String(), "file: data/processed/x.csv")
	assert.NotContains(t, h.out.String(), "tag: ")
}

func TestRunMissingFile(t *testing.T) {
	h := newHarness(t, true)
	w := h.workflow("")

	_, err := w.Run(context.Background(), "data/missing.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrFileNotFound)

	// no metadata registered, no commit created
	assert.False(t, h.script.Called("dvc add"))
	assert.False(t, h.script.Called("git commit"))
}

func TestRunPushFailureIsBestEffort(t *testing.T) {
	h := newHarness(t, true)
	h.script.Stub("dvc push", "", errors.New("network unavailable"))
	w := h.workflow("", WithTag("data-v2", ""))

	res, err := w.Run(context.Background(), "data/processed/x.csv")
	require.NoError(t, err)

	assert.Equal(t, StatePartiallySynced, res.State)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "data push failed")
	// remaining pushes still ran
	assert.True(t, h.script.Called("git push"))
	assert.Contains(t, h.out.String(), "warning: data push failed")
}

func TestRunTagCollisionDeclined(t *testing.T) {
	h := newHarness(t, true)
	h.script.Stub("git tag -l data-v1", "data-v1", nil)
	w := h.workflow("n\n", WithTag("data-v1", ""))

	res, err := w.Run(context.Background(), "data/processed/x.csv")
	require.NoError(t, err)

	assert.False(t, res.Tagged)
	assert.False(t, h.script.Called("git tag -d"))
	assert.Contains(t, h.out.String(), "commit left untagged")
}

func TestRunTagCollisionOverwritten(t *testing.T) {
	h := newHarness(t, true)
	h.script.Stub("git tag -l data-v1", "data-v1", nil)
	w := h.workflow("y\n", WithTag("data-v1", ""))

	res, err := w.Run(context.Background(), "data/processed/x.csv")
	require.NoError(t, err)

	assert.True(t, res.Tagged)
	assert.True(t, h.script.Called("git tag -d data-v1"))
	assert.True(t, h.script.Called("git tag -a data-v1"))
}

func TestRunUninitializedFails(t *testing.T) {
	h := newHarness(t, false)
	w := h.workflow("")

	_, err := w.Run(context.Background(), "data/processed/x.csv")
	assert.ErrorIs(t, err, status.ErrPreconditionMissing)
}

func TestRunInitIfNeeded(t *testing.T) {
	h := newHarness(t, false)
	w := h.workflow("\n", WithInitIfNeeded(true))

	_, err := w.Run(context.Background(), "data/processed/x.csv")
	require.NoError(t, err)
	assert.True(t, h.script.Called("dvc init"))
}

func TestRunToolMissing(t *testing.T) {
	h := newHarness(t, true)
	h.script.MarkMissing("dvc", errors.New("not found"))
	w := h.workflow("")

	_, err := w.Run(context.Background(), "data/processed/x.csv")
	assert.ErrorIs(t, err, status.ErrToolMissing)
}

func TestRemoteMenuS3(t *testing.T) {
	h := newHarness(t, true)
	// choice 3, bucket, sub-path, empty region (default applies), then no tag
	input := "3\nmy-bucket\ndatasets\n\n\n"
	w := h.workflow(input, WithRemoteSetup(true))

	_, err := w.Run(context.Background(), "data/processed/x.csv")
	require.NoError(t, err)

	assert.True(t, h.script.Called("dvc remote add --force --default storage s3://my-bucket/datasets"))
	assert.True(t, h.script.Called("dvc remote modify storage region us-east-1"))
}

func TestRemoteMenuLocalCreatesDir(t *testing.T) {
	h := newHarness(t, true)
	input := "1\n/tmp/datasets-remote\n\n"
	w := h.workflow(input, WithRemoteSetup(true))

	_, err := w.Run(context.Background(), "data/processed/x.csv")
	require.NoError(t, err)

	ok, err := afero.DirExists(h.fs, "/tmp/datasets-remote")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, h.script.Called("dvc remote add --force --default storage /tmp/datasets-remote"))
}

func TestRemoteMenuGDriveRequiresFolderID(t *testing.T) {
	h := newHarness(t, true)
	w := h.workflow("2\n\n", WithRemoteSetup(true))

	_, err := w.Run(context.Background(), "data/processed/x.csv")
	assert.ErrorIs(t, err, status.ErrInvalidInput)
}

func TestRemoteMenuSkip(t *testing.T) {
	h := newHarness(t, true)
	w := h.workflow("4\n\n", WithRemoteSetup(true))

	_, err := w.Run(context.Background(), "data/processed/x.csv")
	require.NoError(t, err)
	assert.False(t, h.script.Called("dvc remote"))
}

func TestRemoteMenuInvalidChoice(t *testing.T) {
	h := newHarness(t, true)
	w := h.workflow("7\n", WithRemoteSetup(true))

	_, err := w.Run(context.Background(), "data/processed/x.csv")
	assert.ErrorIs(t, err, status.ErrInvalidInput)
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "START", StateStart.String())
	assert.Equal(t, "FILE_SELECTED", StateFileSelected.String())
	assert.Equal(t, "PARTIALLY_SYNCED", StatePartiallySynced.String())
	assert.Equal(t, "END", StateEnd.String())
}
