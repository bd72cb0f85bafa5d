// Package selector resolves the target file for a versioning run,
// either from a command-line argument or from an interactive numbered
// menu built from a scan of the data root.
package selector

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/perfpredict/dataver/pkg/model"
	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/afero"
)

// DefaultDataRoot is scanned when no explicit root is configured
const DefaultDataRoot = "data"

// Option alters the selector behavior
type Option func(*Selector)

// WithFs substitutes the filesystem scanned for candidates
func WithFs(fs afero.Fs) Option {
	return func(s *Selector) {
		s.fs = fs
	}
}

// WithDataRoot sets the directory scanned for candidates
func WithDataRoot(root string) Option {
	return func(s *Selector) {
		if root != "" {
			s.root = root
		}
	}
}

// WithExtensions sets the extension filter for the scan
func WithExtensions(exts ...string) Option {
	return func(s *Selector) {
		if len(exts) > 0 {
			s.exts = exts
		}
	}
}

// WithInput substitutes the operator input stream
func WithInput(r io.Reader) Option {
	return func(s *Selector) {
		s.in = bufio.NewReader(r)
	}
}

// WithOutput substitutes the menu output stream
func WithOutput(w io.Writer) Option {
	return func(s *Selector) {
		s.out = w
	}
}

// New creates a file selector with operator interaction on stdin/stdout
func New(opts ...Option) *Selector {
	s := &Selector{
		fs:   afero.NewOsFs(),
		root: DefaultDataRoot,
		exts: []string{".csv"},
		in:   bufio.NewReader(os.Stdin),
		out:  os.Stdout,
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

// Selector produces exactly one validated existing file path per run
type Selector struct {
	fs   afero.Fs
	root string
	exts []string
	in   *bufio.Reader
	out  io.Writer
}

// Resolve validates an explicit path argument, or falls back to the
// interactive menu when the argument is empty.
func (s *Selector) Resolve(arg string) (model.Entry, error) {
	if arg != "" {
		return s.validate(arg)
	}
	return s.prompt()
}

func (s *Selector) validate(path string) (model.Entry, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return model.Entry{}, status.ErrFileNotFound.WrapMessage("%s", path)
	}
	if info.IsDir() {
		return model.Entry{}, status.ErrInvalidInput.WrapMessage("%s is a directory, expected a file", path)
	}
	return model.NewEntry(path, filepath.Base(path), info), nil
}

// Scan enumerates files under the data root matching the extension
// filter, in deterministic order.
func (s *Selector) Scan() ([]model.Entry, error) {
	var entries []model.Entry
	err := afero.Walk(s.fs, s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !s.matches(path) {
			return nil
		}
		entries = append(entries, model.NewEntry(path, filepath.Base(path), info))
		return nil
	})
	if err != nil {
		return nil, status.ErrPreconditionMissing.WrapMessage("cannot scan data root %s", s.root)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (s *Selector) matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range s.exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// prompt displays the 1-indexed menu plus the manual-entry escape option
// and blocks on operator input. A single round: an invalid index is an
// immediate failure, not a retry loop.
func (s *Selector) prompt() (model.Entry, error) {
	entries, err := s.Scan()
	if err != nil {
		return model.Entry{}, err
	}

	fmt.Fprintf(s.out, "Files under %s:\n", s.root)
	for i, e := range entries {
		fmt.Fprintf(s.out, "  %2d. %s (%s)\n", i+1, e.Path, units.HumanSize(float64(e.Size)))
	}
	fmt.Fprintf(s.out, "   0. enter a path manually\n")
	fmt.Fprintf(s.out, "Select a file [0-%d]: ", len(entries))

	choice, err := s.readLine()
	if err != nil {
		return model.Entry{}, status.ErrInvalidInput.Wrap(err)
	}

	idx, err := strconv.Atoi(choice)
	if err != nil {
		return model.Entry{}, status.ErrInvalidInput.WrapMessage("%q is not a menu index", choice)
	}
	if idx == 0 {
		return s.manual()
	}
	if idx < 1 || idx > len(entries) {
		return model.Entry{}, status.ErrInvalidInput.WrapMessage("choice %d out of range [0-%d]", idx, len(entries))
	}
	return entries[idx-1], nil
}

func (s *Selector) manual() (model.Entry, error) {
	fmt.Fprint(s.out, "Path to the file: ")
	path, err := s.readLine()
	if err != nil {
		return model.Entry{}, status.ErrInvalidInput.Wrap(err)
	}
	if path == "" {
		return model.Entry{}, status.ErrInvalidInput.WrapMessage("empty path")
	}
	return s.validate(path)
}

func (s *Selector) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
