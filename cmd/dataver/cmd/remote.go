package cmd

import (
	"github.com/spf13/cobra"
)

// remoteCmd represents the storage-endpoint related commands
var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Commands to manage storage remotes",
	Long: `Commands to manage the storage remotes of the tracking tool.

A remote holds the content-addressed copies of the tracked files: a
local directory, a Google Drive folder or an S3 bucket. Registering a
remote does not verify reachability, failures surface at push time.`,
}

func init() {
	rootCmd.AddCommand(remoteCmd)
}
