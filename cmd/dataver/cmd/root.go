package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dataver",
	Short: "dataver versions datasets and ML artifacts",
	Long: `dataver helps a data-science team version CSV datasets and ML artifacts.

It wraps the dvc and git command line tools: dvc content-hashes the large
files and manages their remote copies, git records the small metadata
sidecars and the human-readable version tags. dataver only orchestrates
them, it never touches the data bytes itself.
`,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
	addLogLevel(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("dataroot", "data")
	viper.SetDefault("extension", ".csv")
	viper.SetDefault("profile", "default")
	if os.Getenv(envConfigLocation) != "" {
		viper.SetConfigFile(os.Getenv(envConfigLocation))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.dataver")
		viper.SetConfigName("dataver")
	}

	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		infoLogger.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	config.setWorkflowParams(&dataverFlags)
}
