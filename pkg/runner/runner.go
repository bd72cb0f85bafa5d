// Package runner executes the external command-line tools the workflow
// drives (the data-versioning and code-versioning tools, the cloud CLI).
//
// All computation on the data itself is delegated to those tools: this
// package only knows how to invoke them and report their outcome.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Runner knows how to invoke trusted pre-installed binaries. Every call
// blocks until the subprocess completes.
type Runner interface {
	// Run executes a command, streaming its output to the configured writers
	Run(ctx context.Context, name string, args ...string) error

	// Output executes a command and captures its standard output
	Output(ctx context.Context, name string, args ...string) (string, error)

	// Quiet executes a command, discarding its output
	Quiet(ctx context.Context, name string, args ...string) error

	// LookPath reports whether the named binary is available on PATH
	LookPath(name string) error
}

// Option alters the behavior of the process runner
type Option func(*osRunner)

// WithDir sets the working directory for spawned processes
func WithDir(dir string) Option {
	return func(r *osRunner) {
		r.dir = dir
	}
}

// WithStdout redirects subprocess standard output
func WithStdout(w io.Writer) Option {
	return func(r *osRunner) {
		r.stdout = w
	}
}

// WithStderr redirects subprocess standard error
func WithStderr(w io.Writer) Option {
	return func(r *osRunner) {
		r.stderr = w
	}
}

// WithLogger traces invocations on a zap logger
func WithLogger(l *zap.Logger) Option {
	return func(r *osRunner) {
		r.l = l
	}
}

// New creates a Runner spawning real processes
func New(opts ...Option) Runner {
	r := &osRunner{
		stdout: os.Stdout,
		stderr: os.Stderr,
		l:      zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

type osRunner struct {
	dir    string
	stdout io.Writer
	stderr io.Writer
	l      *zap.Logger
}

func (r *osRunner) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	r.l.Debug("exec", zap.String("cmd", name), zap.Strings("args", args))
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir
	cmd.Stdin = os.Stdin
	return cmd
}

func (r *osRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := r.command(ctx, name, args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

func (r *osRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := r.command(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = r.stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func (r *osRunner) Quiet(ctx context.Context, name string, args ...string) error {
	cmd := r.command(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

func (r *osRunner) LookPath(name string) error {
	_, err := exec.LookPath(name)
	return err
}
