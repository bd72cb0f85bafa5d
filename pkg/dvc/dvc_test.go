package dvc

import (
	"context"
	"errors"
	"testing"

	"github.com/perfpredict/dataver/pkg/model"
	"github.com/perfpredict/dataver/pkg/runner"
	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstalled(t *testing.T) {
	d := New(runner.NewScript())
	require.NoError(t, d.Installed())

	missing := runner.NewScript().MarkMissing("dvc", errors.New("not found"))
	err := New(missing).Installed()
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrToolMissing)
	assert.Contains(t, err.Error(), "pip install")
}

func TestInitialized(t *testing.T) {
	fs := afero.NewMemMapFs()
	d := New(runner.NewScript(), WithFs(fs))
	assert.False(t, d.Initialized())

	require.NoError(t, fs.MkdirAll(".dvc", 0755))
	assert.True(t, d.Initialized())
}

func TestAddAndPush(t *testing.T) {
	script := runner.NewScript()
	d := New(script)
	ctx := context.Background()

	require.NoError(t, d.Add(ctx, "data/processed/x.csv"))
	require.NoError(t, d.Push(ctx))
	assert.Equal(t, []string{
		"dvc add data/processed/x.csv",
		"dvc push",
	}, script.Calls())
}

func TestPushFailureIsRemoteOperation(t *testing.T) {
	script := runner.NewScript().Stub("dvc push", "", errors.New("network unavailable"))
	err := New(script).Push(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrRemoteOperation)
}

func TestPull(t *testing.T) {
	script := runner.NewScript()
	require.NoError(t, New(script).Pull(context.Background()))
	assert.True(t, script.Called("dvc pull"))

	failing := runner.NewScript().Stub("dvc pull", "", errors.New("network unavailable"))
	err := New(failing).Pull(context.Background())
	assert.ErrorIs(t, err, status.ErrRemoteOperation)
}

func TestRemoteAdd(t *testing.T) {
	script := runner.NewScript()
	d := New(script)
	ctx := context.Background()

	require.NoError(t, d.RemoteAdd(ctx, "storage", "s3://bucket/datasets", true))
	require.NoError(t, d.RemoteModify(ctx, "storage", "region", "eu-west-1"))
	assert.Equal(t, []string{
		"dvc remote add --force --default storage s3://bucket/datasets",
		"dvc remote modify storage region eu-west-1",
	}, script.Calls())
}

func TestRemotes(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := `[core]
    remote = storage
[remote "storage"]
    url = s3://bucket/datasets
    region = us-east-1
[remote "backup"]
    url = /mnt/dvc-storage
`
	require.NoError(t, afero.WriteFile(fs, ".dvc/config", []byte(cfg), 0644))
	d := New(runner.NewScript(), WithFs(fs))

	remotes, err := d.Remotes()
	require.NoError(t, err)
	require.Len(t, remotes, 2)
	assert.Equal(t, model.RemoteDescriptor{
		Name:    "storage",
		URL:     "s3://bucket/datasets",
		Region:  "us-east-1",
		Default: true,
	}, remotes[0])
	assert.Equal(t, "backup", remotes[1].Name)
	assert.Equal(t, model.RemoteLocal, remotes[1].Kind())
}

func TestRemotesNoConfig(t *testing.T) {
	d := New(runner.NewScript(), WithFs(afero.NewMemMapFs()))
	_, err := d.Remotes()
	assert.ErrorIs(t, err, status.ErrPreconditionMissing)
}
