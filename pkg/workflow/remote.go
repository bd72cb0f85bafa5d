package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/perfpredict/dataver/pkg/status"
	"go.uber.org/zap"
)

const (
	// RemoteName is the endpoint name registered by the configurator
	RemoteName = "storage"

	// DefaultLocalRemoteDir is proposed for the local-directory backend
	DefaultLocalRemoteDir = "/tmp/dvc-storage"

	// DefaultRegion is proposed for the object-storage backend
	DefaultRegion = "us-east-1"
)

// remoteMenu presents the closed menu of backend kinds and registers the
// chosen endpoint as the default remote. Reachability and credentials
// are not verified here: failures surface later, at sync time.
func (w *Workflow) remoteMenu(ctx context.Context) error {
	fmt.Fprintln(w.out, "Configure a storage remote:")
	fmt.Fprintln(w.out, "  1. local directory")
	fmt.Fprintln(w.out, "  2. Google Drive folder")
	fmt.Fprintln(w.out, "  3. S3 bucket")
	fmt.Fprintln(w.out, "  4. skip (configure later)")
	fmt.Fprint(w.out, "Choice [1-4]: ")

	choice, err := w.readLine()
	if err != nil {
		return status.ErrInvalidInput.Wrap(err)
	}

	switch choice {
	case "1":
		return w.configureLocal(ctx)
	case "2":
		return w.configureGDrive(ctx)
	case "3":
		return w.configureS3(ctx)
	case "4":
		fmt.Fprintln(w.out, "Skipping remote configuration, push manually later.")
		return nil
	default:
		return status.ErrInvalidInput.WrapMessage("menu choice %q out of range [1-4]", choice)
	}
}

// configureLocal creates the target directory idempotently and registers
// it as the default remote. Re-registration on repeat runs is idempotent.
func (w *Workflow) configureLocal(ctx context.Context) error {
	fmt.Fprintf(w.out, "Directory [%s]: ", DefaultLocalRemoteDir)
	dir, err := w.readLine()
	if err != nil {
		return status.ErrInvalidInput.Wrap(err)
	}
	if dir == "" {
		dir = DefaultLocalRemoteDir
	}
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create remote directory %s: %w", dir, err)
	}
	w.l.Info("configured local remote", zap.String("dir", dir))
	return w.data.RemoteAdd(ctx, RemoteName, dir, true)
}

func (w *Workflow) configureGDrive(ctx context.Context) error {
	fmt.Fprint(w.out, "Google Drive folder ID: ")
	folderID, err := w.readLine()
	if err != nil {
		return status.ErrInvalidInput.Wrap(err)
	}
	if folderID == "" {
		return status.ErrInvalidInput.WrapMessage("folder ID is required")
	}
	return w.data.RemoteAdd(ctx, RemoteName, "gdrive://"+folderID, true)
}

func (w *Workflow) configureS3(ctx context.Context) error {
	fmt.Fprint(w.out, "Bucket name: ")
	bucket, err := w.readLine()
	if err != nil {
		return status.ErrInvalidInput.Wrap(err)
	}
	if bucket == "" {
		return status.ErrInvalidInput.WrapMessage("bucket name is required")
	}

	fmt.Fprint(w.out, "Sub-path (optional): ")
	subPath, err := w.readLine()
	if err != nil {
		return status.ErrInvalidInput.Wrap(err)
	}

	fmt.Fprintf(w.out, "Region [%s]: ", DefaultRegion)
	region, err := w.readLine()
	if err != nil {
		return status.ErrInvalidInput.Wrap(err)
	}
	if region == "" {
		region = DefaultRegion
	}

	url := "s3://" + bucket
	if subPath != "" {
		url += "/" + strings.TrimPrefix(subPath, "/")
	}
	if err := w.data.RemoteAdd(ctx, RemoteName, url, true); err != nil {
		return err
	}
	return w.data.RemoteModify(ctx, RemoteName, "region", region)
}
