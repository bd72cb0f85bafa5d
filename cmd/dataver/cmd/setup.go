package cmd

import (
	"context"

	"github.com/perfpredict/dataver/pkg/workflow"
	"github.com/spf13/cobra"
)

// setupCmd runs the first-time versioning workflow
var setupCmd = &cobra.Command{
	Use:   "setup [path]",
	Short: "First-time dataset versioning setup",
	Long: `Runs the complete first-time versioning workflow.

The tracking directory is initialized if needed, a storage remote is
configured interactively, then the selected file is recorded and pushed.
Pass a file path to skip the selection menu.
`,
	Example: `# interactive file selection and remote configuration
% dataver setup

# version a known file
% dataver setup data/processed/student_performance.csv --tag data-v1.0`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var pathArg string
		if len(args) > 0 {
			pathArg = args[0]
		}

		data, code := tools()
		w := workflow.New(data, code,
			workflow.WithSelector(fileSelector(cmd.InOrStdin(), cmd.OutOrStdout())),
			workflow.WithFs(baseFs),
			workflow.WithPrompt(cmd.InOrStdin(), cmd.OutOrStdout()),
			workflow.WithLogger(getLogger()),
			workflow.WithRemoteSetup(true),
			workflow.WithInitIfNeeded(true),
			workflow.WithTag(dataverFlags.tag.Name, dataverFlags.tag.Message),
		)

		res, err := w.Run(context.Background(), pathArg)
		if err != nil {
			wrapFatalln("setup failed", err)
			return
		}
		if len(res.Warnings) > 0 {
			warnf("some pushes failed, re-run 'dataver push' once the remote is reachable")
		}
		successf("setup complete: %s", res.Entry.Path)
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
	addTagFlag(setupCmd)
	addMessageFlag(setupCmd)
	addDataRootFlag(setupCmd)
	addExtensionFlag(setupCmd)
}
