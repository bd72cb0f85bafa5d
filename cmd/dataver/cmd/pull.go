package cmd

import (
	"context"

	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/cobra"
)

// pullCmd restores a dataset version: check out the tag's metadata
// commit, then fetch the matching payloads from the storage remote.
var pullCmd = &cobra.Command{
	Use:   "pull [tag]",
	Short: "Restore a dataset version from the remotes",
	Long: `Restores a dataset version.

With a tag argument the metadata commit the tag points at is checked
out first, so the sidecars describe that exact version; the data pull
then fetches the matching payloads. Without a tag, payloads for the
current checkout are fetched.
`,
	Example: `% dataver pull data-v1.0`,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		data, code := tools()
		if err := data.Installed(); err != nil {
			wrapFatalln("pull failed", err)
			return
		}
		if err := code.Installed(); err != nil {
			wrapFatalln("pull failed", err)
			return
		}
		if !data.Initialized() {
			wrapFatalln("pull failed", errNotInitialized())
			return
		}

		if len(args) > 0 {
			tag := args[0]
			if !code.TagExists(ctx, tag) {
				wrapFatalln("pull failed",
					status.ErrInvalidInput.WrapMessage("unknown tag %q, list known tags with 'dataver tag list'", tag))
				return
			}
			if err := code.Checkout(ctx, tag); err != nil {
				wrapFatalln("pull failed", err)
				return
			}
			commit, err := code.RevParse(ctx, tag)
			if err != nil {
				wrapFatalln("pull failed", err)
				return
			}
			infoLogger.Printf("checked out %s at %s", tag, commit)
		}

		if err := data.Pull(ctx); err != nil {
			warnf("data pull failed, retry later: %v", err)
			wrapFatalWithCodef(2, "data pull failed, metadata checkout is intact")
			return
		}
		successf("workspace restored")
	},
}

func init() {
	rootCmd.AddCommand(pullCmd)
}
