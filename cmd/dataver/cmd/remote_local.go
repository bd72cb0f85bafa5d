package cmd

import (
	"context"

	"github.com/perfpredict/dataver/pkg/workflow"
	"github.com/spf13/cobra"
)

var remoteLocalCmd = &cobra.Command{
	Use:   "local [directory]",
	Short: "Register a local directory as the default storage remote",
	Long: `Registers a directory on the local filesystem as the default storage
remote. The directory is created when absent. Registration is forced,
so repeat runs against the same name just update the endpoint.
`,
	Example: `% dataver remote local /mnt/shared/dvc-storage`,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := workflow.DefaultLocalRemoteDir
		if len(args) > 0 {
			dir = args[0]
		}
		dir, err := sanitizePath(dir)
		if err != nil {
			wrapFatalln("remote local failed", err)
			return
		}
		createPath(dir)

		data, _ := tools()
		if err := data.RemoteAdd(context.Background(), dataverFlags.remote.Name, dir, true); err != nil {
			wrapFatalln("remote local failed", err)
			return
		}
		successf("registered local remote %q at %s", dataverFlags.remote.Name, dir)
	},
}

func init() {
	remoteCmd.AddCommand(remoteLocalCmd)
	addRemoteNameFlag(remoteLocalCmd)
}
