package cmd

import (
	"github.com/perfpredict/dataver/pkg/creds"
	"github.com/spf13/cobra"
)

var credsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored credential profiles",
	Run: func(cmd *cobra.Command, args []string) {
		manager := creds.New(creds.WithFs(baseFs), creds.WithLogger(getLogger()))
		profiles := manager.Profiles()
		if len(profiles) == 0 {
			infoLogger.Println("no credential profiles stored")
			return
		}
		for _, name := range profiles {
			infoLogger.Println(name)
		}
	},
}

func init() {
	credsCmd.AddCommand(credsListCmd)
}
