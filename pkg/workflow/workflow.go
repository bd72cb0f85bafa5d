// Package workflow implements the dataset versioning workflow: file
// selection, remote configuration, version recording and best-effort
// sync, as one linear sequence of guarded external-tool invocations.
package workflow

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/perfpredict/dataver/pkg/dvc"
	"github.com/perfpredict/dataver/pkg/gitx"
	"github.com/perfpredict/dataver/pkg/model"
	"github.com/perfpredict/dataver/pkg/selector"
	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// State tracks the progress of a single workflow invocation. There is no
// persisted state: a failed run is restarted from StateStart by the
// operator.
type State int

const (
	// StateStart is the initial state of every invocation
	StateStart State = iota

	// StateFileSelected is reached once exactly one existing file is resolved
	StateFileSelected

	// StateRemoteReady is reached once a storage endpoint is registered or skipped
	StateRemoteReady

	// StateVersionRecorded is reached once the tools are aware of the file content
	StateVersionRecorded

	// StateSynced is reached when every push succeeded
	StateSynced

	// StatePartiallySynced is reached when at least one push failed
	StatePartiallySynced

	// StateEnd terminates the run
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateFileSelected:
		return "FILE_SELECTED"
	case StateRemoteReady:
		return "REMOTE_READY"
	case StateVersionRecorded:
		return "VERSION_RECORDED"
	case StateSynced:
		return "SYNCED"
	case StatePartiallySynced:
		return "PARTIALLY_SYNCED"
	case StateEnd:
		return "END"
	default:
		return "START"
	}
}

// Result summarizes a completed run
type Result struct {
	State    State
	Entry    model.Entry
	Tag      model.TagDescriptor
	Tagged   bool
	Warnings []string
}

// Option alters the workflow behavior
type Option func(*Workflow)

// WithSelector substitutes the file selector
func WithSelector(s *selector.Selector) Option {
	return func(w *Workflow) {
		w.sel = s
	}
}

// WithFs substitutes the filesystem used for local remote directories
func WithFs(fs afero.Fs) Option {
	return func(w *Workflow) {
		w.fs = fs
	}
}

// WithPrompt substitutes the operator interaction streams
func WithPrompt(in io.Reader, out io.Writer) Option {
	return func(w *Workflow) {
		w.in = bufio.NewReader(in)
		w.out = out
	}
}

// WithLogger sets a logger for the workflow
func WithLogger(l *zap.Logger) Option {
	return func(w *Workflow) {
		w.l = l
	}
}

// WithRemoteSetup enables the interactive remote configuration step
// (first-run setup only).
func WithRemoteSetup(enabled bool) Option {
	return func(w *Workflow) {
		w.configureRemote = enabled
	}
}

// WithInitIfNeeded initializes tracking when the marker directory is
// absent, instead of failing the precondition check.
func WithInitIfNeeded(enabled bool) Option {
	return func(w *Workflow) {
		w.initIfNeeded = enabled
	}
}

// WithTag presets the version tag, bypassing the interactive tag prompt
func WithTag(name, message string) Option {
	return func(w *Workflow) {
		w.tag = model.TagDescriptor{Name: name, Message: message}
	}
}

// WithTagOverwrite moves an existing tag without prompting (non-interactive
// runs only).
func WithTagOverwrite(enabled bool) Option {
	return func(w *Workflow) {
		w.tagOverwrite = enabled
	}
}

// WithoutSync skips the sync phase entirely
func WithoutSync() Option {
	return func(w *Workflow) {
		w.skipSync = true
	}
}

// New assembles a workflow over the two external version-control tools
func New(data *dvc.DVC, code *gitx.Git, opts ...Option) *Workflow {
	w := &Workflow{
		data:  data,
		code:  code,
		fs:    afero.NewOsFs(),
		in:    bufio.NewReader(os.Stdin),
		out:   os.Stdout,
		l:     zap.NewNop(),
		state: StateStart,
	}
	for _, apply := range opts {
		apply(w)
	}
	if w.sel == nil {
		w.sel = selector.New()
	}
	return w
}

// Workflow drives one synchronous, foreground versioning run: one
// operator, one process, one terminal session.
type Workflow struct {
	data *dvc.DVC
	code *gitx.Git
	sel  *selector.Selector
	fs   afero.Fs
	in   *bufio.Reader
	out  io.Writer
	l    *zap.Logger

	configureRemote bool
	initIfNeeded    bool
	skipSync        bool
	tagOverwrite    bool
	tag             model.TagDescriptor

	state State
}

// State returns the current workflow state
func (w *Workflow) State() State {
	return w.state
}

// Run executes the workflow for the given path argument (empty for
// interactive selection). Setup-phase errors are fatal to the run;
// sync-phase failures only degrade the outcome to PARTIALLY_SYNCED.
func (w *Workflow) Run(ctx context.Context, pathArg string) (Result, error) {
	var res Result

	if err := w.preflight(ctx); err != nil {
		return res, err
	}

	entry, err := w.sel.Resolve(pathArg)
	if err != nil {
		return res, err
	}
	w.transition(StateFileSelected)
	res.Entry = entry

	if w.configureRemote {
		if err := w.remoteMenu(ctx); err != nil {
			return res, err
		}
	}
	w.transition(StateRemoteReady)

	tag, tagged, err := w.record(ctx, entry)
	if err != nil {
		return res, err
	}
	w.transition(StateVersionRecorded)
	res.Tag, res.Tagged = tag, tagged

	if w.skipSync {
		w.transition(StateSynced)
	} else {
		res.Warnings = w.sync(ctx, tag, tagged)
		if len(res.Warnings) == 0 {
			w.transition(StateSynced)
		} else {
			w.transition(StatePartiallySynced)
		}
	}
	res.State = w.state

	w.summary(res)
	w.transition(StateEnd)
	return res, nil
}

// preflight checks the external tools and the repository markers before
// any side effect.
func (w *Workflow) preflight(ctx context.Context) error {
	if err := w.data.Installed(); err != nil {
		return err
	}
	if err := w.code.Installed(); err != nil {
		return err
	}
	if !w.code.IsRepo(ctx) {
		return status.ErrPreconditionMissing.WrapMessage("not inside a git repository, run this from the project root")
	}
	if !w.data.Initialized() {
		if !w.initIfNeeded {
			return status.ErrPreconditionMissing.WrapMessage("tracking is not initialized here, run the setup command first")
		}
		if err := w.data.Init(ctx); err != nil {
			return err
		}
		w.l.Info("initialized tracking directory")
	}
	return nil
}

func (w *Workflow) transition(next State) {
	w.l.Debug("workflow transition", zap.Stringer("from", w.state), zap.Stringer("to", next))
	w.state = next
}

func (w *Workflow) summary(res Result) {
	fmt.Fprintln(w.out, "Summary:")
	fmt.Fprintf(w.out, "  file: %s\n", res.Entry.Path)
	if res.Tagged {
		fmt.Fprintf(w.out, "  tag:  %s\n", res.Tag.Name)
	}
	fmt.Fprintf(w.out, "  state: %s\n", res.State)
	for _, warning := range res.Warnings {
		fmt.Fprintf(w.out, "  warning: %s\n", warning)
	}
}

func (w *Workflow) readLine() (string, error) {
	line, err := w.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
