package dvc

import (
	"sort"
	"strings"

	"github.com/go-ini/ini"
	"github.com/perfpredict/dataver/pkg/model"
	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/afero"
)

// Remotes parses the tool's configuration file and returns the
// registered storage endpoints, default first then by name.
func (d *DVC) Remotes() ([]model.RemoteDescriptor, error) {
	b, err := afero.ReadFile(d.fs, d.configPath())
	if err != nil {
		return nil, status.ErrPreconditionMissing.WrapMessage("no tracking configuration at %s", d.configPath())
	}
	cfg, err := ini.Load(b)
	if err != nil {
		return nil, err
	}

	defaultName := cfg.Section("core").Key("remote").String()

	var remotes []model.RemoteDescriptor
	for _, sec := range cfg.Sections() {
		name, ok := remoteSectionName(sec.Name())
		if !ok {
			continue
		}
		remotes = append(remotes, model.RemoteDescriptor{
			Name:    name,
			URL:     sec.Key("url").String(),
			Region:  sec.Key("region").String(),
			Default: name == defaultName,
		})
	}
	sort.Slice(remotes, func(i, j int) bool {
		if remotes[i].Default != remotes[j].Default {
			return remotes[i].Default
		}
		return remotes[i].Name < remotes[j].Name
	})
	return remotes, nil
}

// remoteSectionName extracts the endpoint name from a git-style quoted
// section header such as `remote "storage"`.
func remoteSectionName(section string) (string, bool) {
	if !strings.HasPrefix(section, `remote "`) {
		return "", false
	}
	name := strings.TrimPrefix(section, `remote "`)
	name = strings.TrimSuffix(name, `"`)
	if name == "" {
		return "", false
	}
	return name, true
}
