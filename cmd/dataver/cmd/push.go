package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// pushCmd dispatches local state to the remotes, best effort: a failed
// push leaves local state durable and is safe to retry.
var pushCmd = &cobra.Command{
	Use:   "push [tag]",
	Short: "Push tracked data, commits and tags to the remotes",
	Long: `Pushes local state to the configured remotes.

Data payloads go to the storage remote, metadata commits to the code
remote, and the optional tag argument is pushed by name. Each push is
attempted independently: a failure is reported as a warning and does not
abort the others.
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		data, code := tools()
		if err := data.Installed(); err != nil {
			wrapFatalln("push failed", err)
			return
		}
		if err := code.Installed(); err != nil {
			wrapFatalln("push failed", err)
			return
		}
		if !data.Initialized() {
			wrapFatalln("push failed", errNotInitialized())
			return
		}

		failed := 0
		if err := data.Push(ctx); err != nil {
			warnf("data push failed, retry later: %v", err)
			failed++
		}
		if err := code.Push(ctx); err != nil {
			warnf("metadata push failed, retry later: %v", err)
			failed++
		}
		if len(args) > 0 {
			if err := code.PushTag(ctx, args[0]); err != nil {
				warnf("tag push failed, retry later: %v", err)
				failed++
			}
		}

		if failed > 0 {
			wrapFatalWithCodef(2, "%d push(es) failed, local state is intact", failed)
			return
		}
		successf("everything pushed")
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
}
