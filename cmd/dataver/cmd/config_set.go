package cmd

import (
	"path/filepath"

	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the local config file",
	Long: `Sets a value in the local config file, creating the file when absent.

Known keys: dataroot, extension, profile, region, loglevel.
`,
	Example: `% dataver config set dataroot datasets
% dataver config set region eu-west-1`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]
		switch key {
		case "dataroot":
			config.DataRoot = value
		case "extension":
			config.Extension = value
		case "profile":
			config.Profile = value
		case "region":
			config.Region = value
		case "loglevel":
			config.Loglevel = value
		default:
			wrapFatalln("config set failed",
				status.ErrInvalidInput.WrapMessage("unknown key %q", key))
			return
		}

		b, err := config.MarshalConfig()
		if err != nil {
			wrapFatalln("config set failed", err)
			return
		}
		location := configFileLocation(true)
		createPath(filepath.Dir(location))
		if err := afero.WriteFile(baseFs, location, b, 0644); err != nil {
			wrapFatalln("config set failed", err)
			return
		}
		successf("%s set in %s", key, location)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		b, err := config.MarshalConfig()
		if err != nil {
			wrapFatalln("config show failed", err)
			return
		}
		infoLogger.Print(string(b))
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
}
