package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var remoteGDriveCmd = &cobra.Command{
	Use:   "gdrive <folder-id>",
	Short: "Register a Google Drive folder as the default storage remote",
	Long: `Registers a Google Drive folder as the default storage remote.

The folder is addressed by its ID, the last path segment of its browser
URL. The tracking tool walks you through the OAuth consent on the first
push.
`,
	Example: `% dataver remote gdrive 1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, _ := tools()
		url := "gdrive://" + args[0]
		if err := data.RemoteAdd(context.Background(), dataverFlags.remote.Name, url, true); err != nil {
			wrapFatalln("remote gdrive failed", err)
			return
		}
		successf("registered drive remote %q at %s", dataverFlags.remote.Name, url)
	},
}

func init() {
	remoteCmd.AddCommand(remoteGDriveCmd)
	addRemoteNameFlag(remoteGDriveCmd)
}
