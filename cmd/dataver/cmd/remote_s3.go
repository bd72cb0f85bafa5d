package cmd

import (
	"context"
	"strings"

	"github.com/perfpredict/dataver/pkg/workflow"
	"github.com/spf13/cobra"
)

var remoteS3Cmd = &cobra.Command{
	Use:   "s3 <bucket>[/sub/path]",
	Short: "Register an S3 bucket as the default storage remote",
	Long: `Registers an S3 bucket (optionally with a sub-path) as the default
storage remote and records its region.

Credentials are not checked here: run 'dataver creds set' to store them
and 'dataver remote verify' to probe the bucket.
`,
	Example: `% dataver remote s3 ml-datasets/student-performance --region eu-west-1`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		data, _ := tools()

		region := dataverFlags.remote.Region
		if region == "" {
			region = workflow.DefaultRegion
		}
		url := "s3://" + strings.TrimPrefix(args[0], "s3://")

		if err := data.RemoteAdd(ctx, dataverFlags.remote.Name, url, true); err != nil {
			wrapFatalln("remote s3 failed", err)
			return
		}
		if err := data.RemoteModify(ctx, dataverFlags.remote.Name, "region", region); err != nil {
			wrapFatalln("remote s3 failed", err)
			return
		}
		successf("registered bucket remote %q at %s (%s)", dataverFlags.remote.Name, url, region)
	},
}

func init() {
	remoteCmd.AddCommand(remoteS3Cmd)
	addRemoteNameFlag(remoteS3Cmd)
	addRegionFlag(remoteS3Cmd)
}
