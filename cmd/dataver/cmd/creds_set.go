package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/perfpredict/dataver/pkg/creds"
	"github.com/spf13/cobra"
)

var credsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store cloud credentials for the storage remotes",
	Long: `Prompts for an access key pair and stores it under the named profile.

Existing profiles in the shared files are preserved. After writing, the
credentials are checked against the identity endpoint, a failed check
is reported as a warning since the files are already in place.
`,
	Example: `% dataver creds set --profile ml-team --region eu-west-1`,
	Run: func(cmd *cobra.Command, args []string) {
		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		readAnswer := func(prompt string) string {
			fmt.Fprint(out, prompt)
			line, _ := in.ReadString('\n')
			return strings.TrimSpace(line)
		}

		profile := creds.Profile{
			Name:            dataverFlags.creds.Profile,
			AccessKeyID:     readAnswer("AWS access key ID: "),
			SecretAccessKey: readAnswer("AWS secret access key: "),
			Region:          dataverFlags.creds.Region,
		}
		if profile.Region == "" {
			profile.Region = readAnswer("Default region (optional): ")
		}

		manager := creds.New(creds.WithFs(baseFs), creds.WithLogger(getLogger()))
		if err := manager.Write(profile); err != nil {
			wrapFatalln("creds set failed", err)
			return
		}
		successf("credentials stored in %s", manager.CredentialsPath())

		if dataverFlags.creds.NoCheck {
			return
		}
		arn, err := creds.Validate(context.Background(), profile.Name, profile.Region)
		if err != nil {
			warnf("credentials stored but could not be validated: %v", err)
			return
		}
		successf("credentials valid for %s", arn)
	},
}

func init() {
	credsCmd.AddCommand(credsSetCmd)
	addProfileFlag(credsSetCmd)
	credsSetCmd.Flags().StringVar(&dataverFlags.creds.Region, "region", "", "The default region stored with the profile")
	credsSetCmd.Flags().BoolVar(&dataverFlags.creds.NoCheck, "no-check", false, "Skip the identity check after writing")
}
