package cmd

import (
	"context"

	"github.com/perfpredict/dataver/pkg/creds"
	"github.com/perfpredict/dataver/pkg/model"
	"github.com/perfpredict/dataver/pkg/status"
	"github.com/perfpredict/dataver/pkg/workflow"
	"github.com/spf13/cobra"
)

var remoteVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Probe the default bucket remote with the stored credentials",
	Long: `Probes the default object-storage remote with the stored credentials.

The registered remotes are read from the tracking configuration and the
first bucket-backed one is head-checked. Local and drive remotes have
nothing to verify.
`,
	Run: func(cmd *cobra.Command, args []string) {
		data, _ := tools()
		remotes, err := data.Remotes()
		if err != nil {
			wrapFatalln("remote verify failed", err)
			return
		}

		var target *model.RemoteDescriptor
		for i := range remotes {
			if remotes[i].Kind() == model.RemoteS3 {
				target = &remotes[i]
				break
			}
		}
		if target == nil {
			wrapFatalln("remote verify failed",
				status.ErrPreconditionMissing.WrapMessage("no bucket-backed remote registered"))
			return
		}

		region := target.Region
		if region == "" {
			region = dataverFlags.remote.Region
		}
		if region == "" {
			region = workflow.DefaultRegion
		}

		err = creds.VerifyBucket(context.Background(), dataverFlags.creds.Profile, region, target.Bucket())
		if err != nil {
			wrapFatalln("remote verify failed", err)
			return
		}
		successf("bucket %s is reachable with profile %q", target.Bucket(), dataverFlags.creds.Profile)
	},
}

func init() {
	remoteCmd.AddCommand(remoteVerifyCmd)
	addProfileFlag(remoteVerifyCmd)
	addRegionFlag(remoteVerifyCmd)
}
