package cmd

import (
	"context"

	"github.com/perfpredict/dataver/pkg/errors"
	"github.com/perfpredict/dataver/pkg/model"
	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/cobra"
)

var tagCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Bind a version tag to the current metadata commit",
	Long: `Binds an annotated version tag to the current metadata commit.

A name collision fails unless --overwrite is given, in which case the
existing tag is deleted and recreated on the current commit.
`,
	Example: `% dataver tag create data-v1.1-cleaned --message "outliers removed"`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, code := tools()
		if err := code.Installed(); err != nil {
			wrapFatalln("tag failed", err)
			return
		}

		td := model.TagDescriptor{Name: args[0], Message: dataverFlags.tag.Message}
		err := code.CreateTag(context.Background(), td, dataverFlags.tag.Overwrite)
		if errors.Is(err, status.ErrTagExists) {
			wrapFatalln("tag failed: re-run with --overwrite to move it", err)
			return
		}
		if err != nil {
			wrapFatalln("tag failed", err)
			return
		}
		successf("tagged current commit as %s", td.Name)
	},
}

func init() {
	tagCmd.AddCommand(tagCreateCmd)
	addMessageFlag(tagCreateCmd)
	addOverwriteFlag(tagCreateCmd)
}
