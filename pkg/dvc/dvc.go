// Package dvc wraps the data-versioning tool CLI. Content hashing and
// remote copies are delegated entirely to the tool: this package builds
// its command lines and interprets exit status.
package dvc

import (
	"context"
	"path/filepath"

	"github.com/perfpredict/dataver/pkg/runner"
	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	binary = "dvc"

	// MarkerDir is the directory marking an initialized tracking root
	MarkerDir = ".dvc"
)

// Option alters the behavior of the tool wrapper
type Option func(*DVC)

// WithLogger sets a logger for the wrapper
func WithLogger(l *zap.Logger) Option {
	return func(d *DVC) {
		d.l = l
	}
}

// WithFs substitutes the filesystem used for marker and config lookups
func WithFs(fs afero.Fs) Option {
	return func(d *DVC) {
		d.fs = fs
	}
}

// New creates a wrapper around the data-versioning tool
func New(r runner.Runner, opts ...Option) *DVC {
	d := &DVC{
		r:  r,
		fs: afero.NewOsFs(),
		l:  zap.NewNop(),
	}
	for _, apply := range opts {
		apply(d)
	}
	return d
}

// DVC drives the data-versioning tool in the current working tree
type DVC struct {
	r  runner.Runner
	fs afero.Fs
	l  *zap.Logger
}

// Installed fails with an install hint when the tool binary is not on PATH
func (d *DVC) Installed() error {
	if err := d.r.LookPath(binary); err != nil {
		return status.ErrToolMissing.WrapMessage("dvc is not on PATH, install it with: pip install 'dvc[s3]'")
	}
	return nil
}

// Initialized tells whether the working tree carries the tool's marker directory
func (d *DVC) Initialized() bool {
	ok, err := afero.DirExists(d.fs, MarkerDir)
	return err == nil && ok
}

// Init initializes tracking in the working tree
func (d *DVC) Init(ctx context.Context) error {
	return d.r.Run(ctx, binary, "init")
}

// Add registers the current content of a file with the tool. Re-adding
// an unchanged file is idempotent: the tool reports it as already
// tracked and the metadata sidecar is left untouched.
func (d *DVC) Add(ctx context.Context, path string) error {
	d.l.Info("registering file content", zap.String("path", path))
	return d.r.Run(ctx, binary, "add", path)
}

// Remove untracks a file, deleting its metadata sidecar
func (d *DVC) Remove(ctx context.Context, sidecar string) error {
	d.l.Info("untracking", zap.String("sidecar", sidecar))
	return d.r.Run(ctx, binary, "remove", sidecar)
}

// Push copies tracked payloads to the default remote. Failures are
// reported as remote-operation errors: retrying later is safe since
// local state is already durable.
func (d *DVC) Push(ctx context.Context) error {
	if err := d.r.Run(ctx, binary, "push"); err != nil {
		return status.ErrRemoteOperation.Wrap(err)
	}
	return nil
}

// Pull fetches tracked payloads from the default remote
func (d *DVC) Pull(ctx context.Context) error {
	if err := d.r.Run(ctx, binary, "pull"); err != nil {
		return status.ErrRemoteOperation.Wrap(err)
	}
	return nil
}

// Status reports the tool's view of the working tree
func (d *DVC) Status(ctx context.Context) (string, error) {
	return d.r.Output(ctx, binary, "status")
}

// RemoteAdd registers a storage endpoint. Registration is forced, so
// repeat runs against the same name are idempotent.
func (d *DVC) RemoteAdd(ctx context.Context, name, url string, asDefault bool) error {
	args := []string{"remote", "add", "--force"}
	if asDefault {
		args = append(args, "--default")
	}
	args = append(args, name, url)
	d.l.Info("registering remote", zap.String("name", name), zap.String("url", url))
	return d.r.Run(ctx, binary, args...)
}

// RemoteModify sets a configuration key on a registered endpoint
func (d *DVC) RemoteModify(ctx context.Context, name, key, value string) error {
	return d.r.Run(ctx, binary, "remote", "modify", name, key, value)
}

func (d *DVC) configPath() string {
	return filepath.Join(MarkerDir, "config")
}
