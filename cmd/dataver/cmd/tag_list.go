package cmd

import (
	"context"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dataset version tags",
	Run: func(cmd *cobra.Command, args []string) {
		_, code := tools()
		if err := code.Installed(); err != nil {
			wrapFatalln("tag list failed", err)
			return
		}

		tags, err := code.ListTags(context.Background())
		if err != nil {
			wrapFatalln("tag list failed", err)
			return
		}
		if len(tags) == 0 {
			infoLogger.Println("no version tags")
			return
		}

		table := uitable.New()
		table.AddRow("TAG", "COMMIT")
		for _, td := range tags {
			table.AddRow(td.Name, td.Commit)
		}
		infoLogger.Println(table.String())
	},
}

func init() {
	tagCmd.AddCommand(tagListCmd)
}
