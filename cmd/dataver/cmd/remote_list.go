package cmd

import (
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered storage remotes",
	Run: func(cmd *cobra.Command, args []string) {
		data, _ := tools()
		remotes, err := data.Remotes()
		if err != nil {
			wrapFatalln("remote list failed", err)
			return
		}
		if len(remotes) == 0 {
			infoLogger.Println("no storage remotes registered")
			return
		}

		table := uitable.New()
		table.AddRow("NAME", "KIND", "URL", "DEFAULT")
		for _, r := range remotes {
			def := ""
			if r.Default {
				def = "*"
			}
			table.AddRow(r.Name, r.Kind().String(), r.URL, def)
		}
		infoLogger.Println(table.String())
	},
}

func init() {
	remoteCmd.AddCommand(remoteListCmd)
}
