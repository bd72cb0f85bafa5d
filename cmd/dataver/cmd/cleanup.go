package cmd

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/perfpredict/dataver/pkg/model"
	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup <path>",
	Short: "Stop tracking a file and remove its versioning artifacts",
	Long: `Stops tracking a file and removes its versioning artifacts.

The metadata sidecar is deleted, the file is unstaged from the metadata
index and its ignore entry is dropped. The file itself and its history
are left untouched: previously pushed versions stay retrievable through
their tags.
`,
	Example: `% dataver cleanup data/processed/student_performance.csv`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		path := args[0]
		sidecar := model.SidecarPath(path)

		data, code := tools()
		if err := data.Installed(); err != nil {
			wrapFatalln("cleanup failed", err)
			return
		}
		if ok, _ := afero.Exists(baseFs, sidecar); !ok {
			wrapFatalln("cleanup failed",
				status.ErrFileNotFound.WrapMessage("%s is not tracked (no sidecar at %s)", path, sidecar))
			return
		}

		if !dataverFlags.cleanup.Yes && !confirmed(cmd, path) {
			infoLogger.Println("cleanup aborted")
			return
		}

		if err := data.Remove(ctx, sidecar); err != nil {
			wrapFatalln("cleanup failed", err)
			return
		}
		if err := code.RemoveCached(ctx, sidecar); err != nil {
			wrapFatalln("cleanup failed", err)
			return
		}
		if err := stripIgnoreEntry(path); err != nil {
			warnf("could not update %s: %v", model.IgnorePath(path), err)
		}
		if err := code.Add(ctx, model.IgnorePath(path)); err != nil {
			warnf("could not stage %s: %v", model.IgnorePath(path), err)
		}
		if err := code.Commit(ctx, fmt.Sprintf("Stop tracking %s", filepath.Base(path))); err != nil {
			wrapFatalln("cleanup failed", err)
			return
		}
		successf("%s is no longer tracked", path)
	},
}

func confirmed(cmd *cobra.Command, path string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "Stop tracking %s? [y/N]: ", path)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// stripIgnoreEntry drops the tracked file's entry from the ignore file
// next to it. A missing ignore file or entry is not an error.
func stripIgnoreEntry(path string) error {
	ignorePath := model.IgnorePath(path)
	b, err := afero.ReadFile(baseFs, ignorePath)
	if err != nil {
		return nil
	}

	base := filepath.Base(path)
	var kept []string
	changed := false
	for _, line := range strings.Split(string(b), "\n") {
		entry := strings.TrimSpace(line)
		if entry == base || entry == "/"+base {
			changed = true
			continue
		}
		kept = append(kept, line)
	}
	if !changed {
		return nil
	}
	return afero.WriteFile(baseFs, ignorePath, []byte(strings.Join(kept, "\n")), 0644)
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	addYesFlag(cleanupCmd)
}
