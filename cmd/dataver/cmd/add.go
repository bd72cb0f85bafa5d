package cmd

import (
	"context"

	"github.com/perfpredict/dataver/pkg/workflow"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <path> [tag] [message]",
	Short: "Record a new version of a dataset file",
	Long: `Records a new version of a tracked file.

The file is handed to the tracking tool, the resulting sidecar and
ignore entry are committed, and an optional annotated tag marks the
version. Tag and message can be given positionally or via flags.

Requires an initialized repository. Run 'dataver setup' first.
`,
	Example: `% dataver add data/processed/student_performance.csv
% dataver add data/processed/student_performance.csv data-v2.0 "second cleanup pass"`,
	Args: cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		tag := dataverFlags.tag.Name
		message := dataverFlags.tag.Message
		if len(args) > 1 {
			tag = args[1]
		}
		if len(args) > 2 {
			message = args[2]
		}

		opts := []workflow.Option{
			workflow.WithSelector(fileSelector(cmd.InOrStdin(), cmd.OutOrStdout())),
			workflow.WithFs(baseFs),
			workflow.WithPrompt(cmd.InOrStdin(), cmd.OutOrStdout()),
			workflow.WithLogger(getLogger()),
			workflow.WithTag(tag, message),
			workflow.WithTagOverwrite(dataverFlags.tag.Overwrite),
		}
		if dataverFlags.sync.NoPush {
			opts = append(opts, workflow.WithoutSync())
		}

		data, code := tools()
		w := workflow.New(data, code, opts...)

		res, err := w.Run(context.Background(), args[0])
		if err != nil {
			wrapFatalln("add failed", err)
			return
		}
		if res.Tagged {
			successf("recorded %s as %s", res.Entry.Path, res.Tag.Name)
			return
		}
		successf("recorded %s", res.Entry.Path)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addTagFlag(addCmd)
	addMessageFlag(addCmd)
	addOverwriteFlag(addCmd)
	addNoPushFlag(addCmd)
}
