// Package gitx wraps the code-versioning tool CLI for the small set of
// operations the workflow needs: staging metadata, committing, tagging
// and pushing.
package gitx

import (
	"context"
	"strings"

	"github.com/perfpredict/dataver/pkg/model"
	"github.com/perfpredict/dataver/pkg/runner"
	"github.com/perfpredict/dataver/pkg/status"
	"go.uber.org/zap"
)

const binary = "git"

// Option alters the behavior of the tool wrapper
type Option func(*Git)

// WithLogger sets a logger for the wrapper
func WithLogger(l *zap.Logger) Option {
	return func(g *Git) {
		g.l = l
	}
}

// New creates a wrapper around the code-versioning tool
func New(r runner.Runner, opts ...Option) *Git {
	g := &Git{
		r: r,
		l: zap.NewNop(),
	}
	for _, apply := range opts {
		apply(g)
	}
	return g
}

// Git drives the code-versioning tool in the current working tree
type Git struct {
	r runner.Runner
	l *zap.Logger
}

// Installed fails with an install hint when the tool binary is not on PATH
func (g *Git) Installed() error {
	if err := g.r.LookPath(binary); err != nil {
		return status.ErrToolMissing.WrapMessage("git is not on PATH, install it from https://git-scm.com/downloads")
	}
	return nil
}

// IsRepo tells whether the working tree is inside a repository
func (g *Git) IsRepo(ctx context.Context) bool {
	return g.r.Quiet(ctx, binary, "rev-parse", "--git-dir") == nil
}

// Add stages paths. Paths that do not exist yet (e.g. an ignore file the
// data tool chose not to update) are tolerated.
func (g *Git) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "--ignore-errors", "--"}, paths...)
	return g.r.Run(ctx, binary, args...)
}

// Commit records staged changes with the given message. An empty index
// is not an error: recording an unchanged file is a no-op.
func (g *Git) Commit(ctx context.Context, message string) error {
	if clean, err := g.nothingStaged(ctx); err == nil && clean {
		g.l.Info("nothing staged, skipping commit")
		return nil
	}
	return g.r.Run(ctx, binary, "commit", "-m", message)
}

func (g *Git) nothingStaged(ctx context.Context) (bool, error) {
	out, err := g.r.Output(ctx, binary, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 0 && line[0] != ' ' && line[0] != '?' {
			return false, nil
		}
	}
	return true, nil
}

// RevParse resolves a revision to a commit hash
func (g *Git) RevParse(ctx context.Context, rev string) (string, error) {
	out, err := g.r.Output(ctx, binary, "rev-parse", rev)
	return strings.TrimSpace(out), err
}

// Checkout moves the working tree to the given revision
func (g *Git) Checkout(ctx context.Context, rev string) error {
	g.l.Info("checking out", zap.String("rev", rev))
	return g.r.Run(ctx, binary, "checkout", rev)
}

// TagExists tells whether a tag with this name is already in use
func (g *Git) TagExists(ctx context.Context, name string) bool {
	out, err := g.r.Output(ctx, binary, "tag", "-l", name)
	return err == nil && strings.TrimSpace(out) == name
}

// CreateTag binds an annotated tag to the current commit. On a name
// collision the caller decides between overwrite and skip: this call
// fails with ErrTagExists unless overwrite is requested.
func (g *Git) CreateTag(ctx context.Context, tag model.TagDescriptor, overwrite bool) error {
	if err := model.ValidateTagName(tag.Name); err != nil {
		return status.ErrInvalidInput.Wrap(err)
	}
	if g.TagExists(ctx, tag.Name) {
		if !overwrite {
			return status.ErrTagExists.WrapMessage("tag %q", tag.Name)
		}
		if err := g.DeleteTag(ctx, tag.Name); err != nil {
			return err
		}
	}
	message := tag.Message
	if message == "" {
		message = model.DefaultTagMessage(tag.Name)
	}
	g.l.Info("creating tag", zap.String("name", tag.Name))
	return g.r.Run(ctx, binary, "tag", "-a", tag.Name, "-m", message)
}

// DeleteTag removes a local tag
func (g *Git) DeleteTag(ctx context.Context, name string) error {
	return g.r.Run(ctx, binary, "tag", "-d", name)
}

// ListTags returns all local tags with their target commits
func (g *Git) ListTags(ctx context.Context) ([]model.TagDescriptor, error) {
	out, err := g.r.Output(ctx, binary, "tag", "-l", "--format=%(refname:short) %(objectname:short)")
	if err != nil {
		return nil, err
	}
	var tags []model.TagDescriptor
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		td := model.TagDescriptor{Name: fields[0]}
		if len(fields) > 1 {
			td.Commit = fields[1]
		}
		tags = append(tags, td)
	}
	return tags, nil
}

// Push propagates commits to the code remote
func (g *Git) Push(ctx context.Context) error {
	if err := g.r.Run(ctx, binary, "push"); err != nil {
		return status.ErrRemoteOperation.Wrap(err)
	}
	return nil
}

// PushTag propagates a single tag to the code remote
func (g *Git) PushTag(ctx context.Context, name string) error {
	if err := g.r.Run(ctx, binary, "push", "origin", name); err != nil {
		return status.ErrRemoteOperation.Wrap(err)
	}
	return nil
}

// RemoveCached unstages a tracked path from the index, leaving the
// working tree untouched.
func (g *Git) RemoveCached(ctx context.Context, path string) error {
	return g.r.Run(ctx, binary, "rm", "-r", "--cached", "--ignore-unmatch", "--", path)
}
