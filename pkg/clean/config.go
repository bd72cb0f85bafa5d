package clean

import (
	"fmt"

	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// DefaultConfigPath is where the training pipeline configuration lives
const DefaultConfigPath = "config/training.yaml"

// PipelineConfig is the subset of the training configuration the
// cleaning step consumes.
type PipelineConfig struct {
	Paths struct {
		RawData       string `yaml:"raw_data"`
		InterimData   string `yaml:"interim_data"`
		ProcessedData string `yaml:"processed_data"`
	} `yaml:"paths"`
	Cleaning Spec `yaml:"cleaning"`
}

// LoadConfig reads the pipeline configuration, falling back to the
// built-in cleaning rules for any section left unspecified.
func LoadConfig(fs afero.Fs, path string) (PipelineConfig, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	var cfg PipelineConfig
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, status.ErrPreconditionMissing.WrapMessage("pipeline configuration not found at %s", path)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Cleaning = mergeSpec(cfg.Cleaning)
	return cfg, nil
}

func mergeSpec(spec Spec) Spec {
	defaults := DefaultSpec()
	if spec.TargetColumn == "" {
		spec.TargetColumn = defaults.TargetColumn
	}
	if spec.NormalizeColumns == nil {
		spec.NormalizeColumns = defaults.NormalizeColumns
	}
	if spec.NullStrings == nil {
		spec.NullStrings = defaults.NullStrings
	}
	if spec.DropColumns == nil {
		spec.DropColumns = defaults.DropColumns
	}
	if spec.RenameColumns == nil {
		spec.RenameColumns = defaults.RenameColumns
	}
	if spec.FillDefaults == nil {
		spec.FillDefaults = defaults.FillDefaults
	}
	return spec
}
