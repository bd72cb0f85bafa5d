package cmd

import (
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// CLIConfig describes the CLI configuration persisted across runs.
type CLIConfig struct {
	// keep field names aligned with their serialized names for viper
	DataRoot  string `json:"dataroot" yaml:"dataroot"`   // Directory scanned for datasets
	Extension string `json:"extension" yaml:"extension"` // Extension filter for the file menu
	Profile   string `json:"profile" yaml:"profile"`     // Cloud credentials profile
	Region    string `json:"region" yaml:"region"`       // Default bucket region
	Loglevel  string `json:"loglevel" yaml:"loglevel"`   // Default logging level

	logger     *zap.Logger
	onceLogger sync.Once
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setWorkflowParams applies config file + env vars as defaults for the
// structure used to parse cli flags.
func (c *CLIConfig) setWorkflowParams(flags *flagsT) {
	if flags.file.DataRoot == "" {
		flags.file.DataRoot = c.DataRoot
	}
	if flags.file.Extension == "" {
		flags.file.Extension = c.Extension
	}
	if flags.creds.Profile == "" {
		flags.creds.Profile = c.Profile
	}
	if flags.remote.Region == "" && c.Region != "" {
		flags.remote.Region = c.Region
	}
	if c.Loglevel != "" && !rootCmd.PersistentFlags().Changed("loglevel") {
		flags.root.logLevel = c.Loglevel
	}
}

// MarshalConfig serializes the configuration for the local config file
func (c *CLIConfig) MarshalConfig() ([]byte, error) {
	return yaml.Marshal(c)
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the local config",
	Long: `Commands to manage the dataver CLI config.

Configuration for dataver is the common set of flags that do not change
across runs, analogous to "git config ...": the data root to scan, the
credentials profile, the default bucket region.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
