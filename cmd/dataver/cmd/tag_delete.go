package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var tagDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a local version tag",
	Long: `Deletes a local version tag.

Only the local tag is removed: a copy already pushed to the code remote
stays there until deleted remotely.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, code := tools()
		if err := code.Installed(); err != nil {
			wrapFatalln("tag delete failed", err)
			return
		}
		if err := code.DeleteTag(context.Background(), args[0]); err != nil {
			wrapFatalln("tag delete failed", err)
			return
		}
		successf("deleted tag %s", args[0])
	},
}

func init() {
	tagCmd.AddCommand(tagDeleteCmd)
}
