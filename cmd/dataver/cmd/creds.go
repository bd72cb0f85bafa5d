package cmd

import (
	"github.com/spf13/cobra"
)

// credsCmd represents the cloud-credentials related commands
var credsCmd = &cobra.Command{
	Use:   "creds",
	Short: "Commands to manage cloud credentials",
	Long: `Commands to manage the cloud credentials used by the storage remotes.

Credentials are written to the shared files under ~/.aws, where both
the tracking tool and the cloud CLI pick them up. They are stored in
plaintext with permissions restricted to the operator.`,
}

func init() {
	rootCmd.AddCommand(credsCmd)
}
