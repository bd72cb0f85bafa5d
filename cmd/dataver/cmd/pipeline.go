package cmd

import (
	"github.com/spf13/cobra"
)

// pipelineCmd represents the training pipeline related commands
var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Commands to run training pipeline steps",
	Long: `Commands to run steps of the training data pipeline.

Pipeline steps produce the processed datasets that get versioned with
'dataver add'. Step parameters come from the pipeline configuration
file (config/training.yaml by default).`,
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
	addPipelineConfigFlag(pipelineCmd)
}
