package cmd

import (
	"github.com/spf13/cobra"
)

// tagCmd represents the version-tag related commands
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Commands to manage dataset version tags",
	Long: `Commands to manage dataset version tags.

A version tag is a human-readable label (e.g. data-v1.1-cleaned) bound
to the metadata commit recording a dataset state. Checking out the tag
and pulling restores that exact dataset.`,
}

func init() {
	rootCmd.AddCommand(tagCmd)
}
