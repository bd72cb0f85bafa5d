package runner

import (
	"context"
	"strings"
	"sync"
)

// Script is a scriptable Runner for tests: invocations are recorded and
// matched against stubbed responses by command-line prefix.
type Script struct {
	mu      sync.Mutex
	calls   []string
	stubs   []stub
	missing map[string]bool
}

type stub struct {
	prefix string
	out    string
	err    error
}

// NewScript creates an empty Script: every call succeeds with no output
// until stubs are registered.
func NewScript() *Script {
	return &Script{missing: make(map[string]bool)}
}

// Stub registers a canned response for any invocation whose command line
// starts with prefix. Later registrations win over earlier ones.
func (s *Script) Stub(prefix, out string, err error) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubs = append(s.stubs, stub{prefix: prefix, out: out, err: err})
	return s
}

// MarkMissing makes LookPath fail for the named binary
func (s *Script) MarkMissing(name string, err error) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missing[name] = true
	s.stubs = append(s.stubs, stub{prefix: name, err: err})
	return s
}

// Calls returns the recorded command lines, in invocation order
func (s *Script) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// Called tells whether any recorded command line starts with prefix
func (s *Script) Called(prefix string) bool {
	for _, line := range s.Calls() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func (s *Script) record(name string, args ...string) (string, error) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, line)
	for i := len(s.stubs) - 1; i >= 0; i-- {
		if strings.HasPrefix(line, s.stubs[i].prefix) {
			return s.stubs[i].out, s.stubs[i].err
		}
	}
	return "", nil
}

func (s *Script) Run(_ context.Context, name string, args ...string) error {
	_, err := s.record(name, args...)
	return err
}

func (s *Script) Output(_ context.Context, name string, args ...string) (string, error) {
	return s.record(name, args...)
}

func (s *Script) Quiet(_ context.Context, name string, args ...string) error {
	_, err := s.record(name, args...)
	return err
}

func (s *Script) LookPath(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.missing[name] {
		for i := len(s.stubs) - 1; i >= 0; i-- {
			if s.stubs[i].prefix == name && s.stubs[i].err != nil {
				return s.stubs[i].err
			}
		}
	}
	return nil
}
