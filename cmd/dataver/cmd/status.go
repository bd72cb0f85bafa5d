package cmd

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docker/go-units"
	"github.com/gosuri/uitable"
	"github.com/perfpredict/dataver/pkg/model"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tracked files and their sync state",
	Long: `Shows the files currently under data versioning.

Tracked files are listed from their metadata sidecars, with the content
hash and size recorded at the last 'dataver add'. The sync report from
the tracking tool follows, comparing the local cache with the remote.
`,
	Run: func(cmd *cobra.Command, args []string) {
		data, _ := tools()
		if err := data.Installed(); err != nil {
			wrapFatalln("status failed", err)
			return
		}
		if !data.Initialized() {
			wrapFatalln("status failed", errNotInitialized())
			return
		}

		sidecars := listSidecars(dataverFlags.file.DataRoot)
		if len(sidecars) == 0 {
			infoLogger.Println("no tracked files")
		} else {
			table := uitable.New()
			table.AddRow("FILE", "HASH", "SIZE")
			for _, sc := range sidecars {
				out, ok := sc.descriptor.Out()
				if !ok {
					table.AddRow(model.TrackedPath(sc.path), "?", "?")
					continue
				}
				table.AddRow(model.TrackedPath(sc.path), out.MD5, units.HumanSize(float64(out.Size)))
			}
			infoLogger.Println(table.String())
		}

		out, err := data.Status(context.Background())
		if err != nil {
			warnf("sync report unavailable: %v", err)
			return
		}
		if s := strings.TrimSpace(out); s != "" {
			infoLogger.Println()
			infoLogger.Println(s)
		}
	},
}

type sidecarFile struct {
	path       string
	descriptor model.SidecarDescriptor
}

// listSidecars walks the data root for metadata sidecars. Unparseable
// sidecars are skipped rather than failing the listing.
func listSidecars(root string) []sidecarFile {
	if root == "" {
		root = "data"
	}
	var found []sidecarFile
	_ = afero.Walk(baseFs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !model.IsSidecar(path) {
			return nil
		}
		b, err := afero.ReadFile(baseFs, path)
		if err != nil {
			return nil
		}
		sd, err := model.UnmarshalSidecar(b)
		if err != nil {
			getLogger().Warn("skipping unparseable sidecar")
			return nil
		}
		found = append(found, sidecarFile{path: filepath.ToSlash(path), descriptor: sd})
		return nil
	})
	sort.Slice(found, func(i, j int) bool { return found[i].path < found[j].path })
	return found
}

func init() {
	rootCmd.AddCommand(statusCmd)
	addDataRootFlag(statusCmd)
}
