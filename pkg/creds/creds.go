// Package creds manages the operator's cloud credentials files. The
// credentials are written in plaintext with restricted file permissions,
// under the operator's home directory, where the external CLIs expect
// them.
package creds

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/go-ini/ini"
	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DefaultProfile is used when the operator names none
const DefaultProfile = "default"

// Profile holds one set of cloud credentials
type Profile struct {
	Name            string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	_               struct{}
}

// Option alters the manager behavior
type Option func(*Manager)

// WithFs substitutes the filesystem the files are written to
func WithFs(fs afero.Fs) Option {
	return func(m *Manager) {
		m.fs = fs
	}
}

// WithHome overrides the home directory holding the credentials files
func WithHome(home string) Option {
	return func(m *Manager) {
		m.home = home
	}
}

// WithLogger sets a logger for the manager
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		m.l = l
	}
}

// New creates a credentials file manager
func New(opts ...Option) *Manager {
	home, _ := os.UserHomeDir()
	m := &Manager{
		fs:   afero.NewOsFs(),
		home: home,
		l:    zap.NewNop(),
	}
	for _, apply := range opts {
		apply(m)
	}
	return m
}

// Manager reads and writes the shared credentials and config files
type Manager struct {
	fs   afero.Fs
	home string
	l    *zap.Logger
}

// CredentialsPath is the shared credentials file location
func (m *Manager) CredentialsPath() string {
	return filepath.Join(m.home, ".aws", "credentials")
}

// ConfigPath is the shared config file location
func (m *Manager) ConfigPath() string {
	return filepath.Join(m.home, ".aws", "config")
}

// Write stores a profile in the shared credentials and config files,
// merging with existing profiles rather than clobbering them.
func (m *Manager) Write(p Profile) error {
	if p.AccessKeyID == "" || p.SecretAccessKey == "" {
		return status.ErrInvalidInput.WrapMessage("access key id and secret access key are both required")
	}
	if p.Name == "" {
		p.Name = DefaultProfile
	}

	if err := m.fs.MkdirAll(filepath.Join(m.home, ".aws"), 0700); err != nil {
		return err
	}

	creds := m.load(m.CredentialsPath())
	sec := creds.Section(p.Name)
	sec.Key("aws_access_key_id").SetValue(p.AccessKeyID)
	sec.Key("aws_secret_access_key").SetValue(p.SecretAccessKey)
	if err := m.save(creds, m.CredentialsPath()); err != nil {
		return err
	}

	if p.Region != "" {
		cfg := m.load(m.ConfigPath())
		cfg.Section(configSection(p.Name)).Key("region").SetValue(p.Region)
		if err := m.save(cfg, m.ConfigPath()); err != nil {
			return err
		}
	}

	m.l.Info("credentials written",
		zap.String("profile", p.Name),
		zap.String("path", m.CredentialsPath()))
	return nil
}

// Profiles lists the profile names present in the credentials file
func (m *Manager) Profiles() []string {
	f := m.load(m.CredentialsPath())
	var names []string
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		names = append(names, sec.Name())
	}
	return names
}

func (m *Manager) load(path string) *ini.File {
	b, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return ini.Empty()
	}
	f, err := ini.Load(b)
	if err != nil {
		return ini.Empty()
	}
	return f
}

func (m *Manager) save(f *ini.File, path string) error {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return err
	}
	// plaintext secrets: keep the file private to the operator
	return afero.WriteFile(m.fs, path, buf.Bytes(), 0600)
}

// the shared config file prefixes non-default profile sections
func configSection(profile string) string {
	if profile == DefaultProfile {
		return DefaultProfile
	}
	return "profile " + profile
}
