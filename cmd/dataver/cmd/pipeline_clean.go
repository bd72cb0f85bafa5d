package cmd

import (
	"github.com/perfpredict/dataver/pkg/clean"
	"github.com/spf13/cobra"
)

var pipelineCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the raw dataset into its processed form",
	Long: `Cleans the raw dataset into the processed form the versioning workflow
tracks: case normalization, null handling, column drops and renames,
and per-column defaults for missing values.

Input and output default to the paths in the pipeline configuration and
can be overridden with flags.
`,
	Example: `% dataver pipeline clean
% dataver pipeline clean --input data/raw/new_batch.csv --output data/processed/new_batch.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := clean.LoadConfig(baseFs, dataverFlags.pipeline.ConfigPath)
		if err != nil {
			wrapFatalln("pipeline clean failed", err)
			return
		}

		input := dataverFlags.pipeline.Input
		if input == "" {
			input = cfg.Paths.RawData
		}
		output := dataverFlags.pipeline.Output
		if output == "" {
			output = cfg.Paths.ProcessedData
		}

		cleaner := clean.New(cfg.Cleaning, clean.WithFs(baseFs), clean.WithLogger(getLogger()))
		report, err := cleaner.Run(input, output)
		if err != nil {
			wrapFatalln("pipeline clean failed", err)
			return
		}

		infoLogger.Printf("cleaned %s -> %s", input, output)
		infoLogger.Printf("rows: %d in, %d out (%d dropped)", report.RowsIn, report.RowsOut, report.Dropped)
		successf("processed dataset ready, version it with: dataver add %s", output)
	},
}

func init() {
	pipelineCmd.AddCommand(pipelineCleanCmd)
	pipelineCleanCmd.Flags().StringVar(&dataverFlags.pipeline.Input, "input", "", "The raw dataset to clean (defaults to the configured raw data path)")
	pipelineCleanCmd.Flags().StringVar(&dataverFlags.pipeline.Output, "output", "", "Where to write the cleaned dataset (defaults to the configured processed data path)")
}
