package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/perfpredict/dataver/pkg/dlogger"
	"github.com/perfpredict/dataver/pkg/dvc"
	"github.com/perfpredict/dataver/pkg/gitx"
	"github.com/perfpredict/dataver/pkg/runner"
	"github.com/perfpredict/dataver/pkg/selector"
	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type flagsT struct {
	file struct {
		Path      string
		DataRoot  string
		Extension string
	}
	tag struct {
		Name      string
		Message   string
		Overwrite bool
	}
	remote struct {
		Name     string
		Dir      string
		Bucket   string
		SubPath  string
		Region   string
		FolderID string
	}
	creds struct {
		Profile string
		Region  string
		NoCheck bool
	}
	pipeline struct {
		ConfigPath string
		Input      string
		Output     string
	}
	cleanup struct {
		Yes bool
	}
	sync struct {
		NoPush bool
	}
	root struct {
		logLevel string
	}
}

var dataverFlags = flagsT{}

// baseFs is the filesystem the commands operate on, patchable in tests
var baseFs afero.Fs = afero.NewOsFs()

// newRunner builds the subprocess runner, patchable in tests
var newRunner = func() runner.Runner {
	return runner.New(runner.WithLogger(getLogger()))
}

func addTagFlag(cmd *cobra.Command) string {
	tag := "tag"
	cmd.Flags().StringVar(&dataverFlags.tag.Name, tag, "", "The human-readable version tag to bind (e.g. data-v1.1-cleaned)")
	return tag
}

func addMessageFlag(cmd *cobra.Command) string {
	message := "message"
	cmd.Flags().StringVar(&dataverFlags.tag.Message, message, "", "The message describing the new dataset version")
	return message
}

func addOverwriteFlag(cmd *cobra.Command) string {
	c := "overwrite"
	cmd.Flags().BoolVar(&dataverFlags.tag.Overwrite, c, false, "Overwrite (delete and recreate) the tag on a name collision")
	return c
}

func addDataRootFlag(cmd *cobra.Command) string {
	c := "data-root"
	cmd.Flags().StringVar(&dataverFlags.file.DataRoot, c, "", `The directory scanned for datasets (defaults to "data")`)
	return c
}

func addExtensionFlag(cmd *cobra.Command) string {
	c := "extension"
	cmd.Flags().StringVar(&dataverFlags.file.Extension, c, "", `The extension filter for the file menu (defaults to ".csv")`)
	return c
}

func addRemoteNameFlag(cmd *cobra.Command) string {
	c := "name"
	cmd.Flags().StringVar(&dataverFlags.remote.Name, c, "storage", "The name of the storage endpoint")
	return c
}

func addRegionFlag(cmd *cobra.Command) string {
	c := "region"
	cmd.Flags().StringVar(&dataverFlags.remote.Region, c, "", `The bucket region (defaults to "us-east-1")`)
	return c
}

func addProfileFlag(cmd *cobra.Command) string {
	c := "profile"
	cmd.Flags().StringVar(&dataverFlags.creds.Profile, c, "", `The credentials profile to use (defaults to "default")`)
	return c
}

func addYesFlag(cmd *cobra.Command) string {
	c := "yes"
	cmd.Flags().BoolVarP(&dataverFlags.cleanup.Yes, c, "y", false, "Skip the confirmation prompt")
	return c
}

func addPipelineConfigFlag(cmd *cobra.Command) string {
	c := "pipeline-config"
	cmd.Flags().StringVar(&dataverFlags.pipeline.ConfigPath, c, "", "The training pipeline configuration file (defaults to config/training.yaml)")
	return c
}

func addNoPushFlag(cmd *cobra.Command) string {
	c := "no-push"
	cmd.Flags().BoolVar(&dataverFlags.sync.NoPush, c, false, "Record the version locally without pushing to the remotes")
	return c
}

func addLogLevel(cmd *cobra.Command) string {
	loglevel := "loglevel"
	cmd.PersistentFlags().StringVar(&dataverFlags.root.logLevel, loglevel, dlogger.LogLevelInfo,
		fmt.Sprintf("The logging level. Levels by increasing order of verbosity: %s, %s, %s, %s, %s",
			dlogger.LogLevelNone, dlogger.LogLevelError, dlogger.LogLevelWarn, dlogger.LogLevelInfo, dlogger.LogLevelDebug))
	return loglevel
}

/** combined config and parameters to internal objects */

func getLogger() *zap.Logger {
	if config == nil {
		return dlogger.MustGetLogger(dlogger.LogLevelNone)
	}
	config.onceLogger.Do(func() {
		l, err := dlogger.GetLogger(dataverFlags.root.logLevel)
		if err != nil {
			wrapFatalln("failed to set log level", err)
			return
		}
		config.logger = l
	})
	return config.logger
}

// tools assembles the wrappers around the external version-control binaries
func tools() (*dvc.DVC, *gitx.Git) {
	r := newRunner()
	l := getLogger()
	return dvc.New(r, dvc.WithFs(baseFs), dvc.WithLogger(l)), gitx.New(r, gitx.WithLogger(l))
}

// fileSelector builds the selector over the configured data root
func fileSelector(in io.Reader, out io.Writer) *selector.Selector {
	opts := []selector.Option{
		selector.WithFs(baseFs),
		selector.WithDataRoot(dataverFlags.file.DataRoot),
		selector.WithInput(in),
		selector.WithOutput(out),
	}
	if dataverFlags.file.Extension != "" {
		opts = append(opts, selector.WithExtensions(dataverFlags.file.Extension))
	}
	return selector.New(opts...)
}

func configFileLocation(expand bool) string {
	location := os.Getenv(envConfigLocation)
	if location == "" {
		home := "$HOME"
		if expand {
			h, err := os.UserHomeDir()
			if err == nil {
				home = h
			}
		}
		location = home + "/.dataver/dataver.yaml"
	}
	return location
}

const envConfigLocation = "DATAVER_CONFIG"

func errNotInitialized() error {
	return status.ErrPreconditionMissing.WrapMessage("tracking is not initialized here, run 'dataver setup' first")
}

/** misc util */

// requireFlags sets a flag (local to the command or inherited) as required
func requireFlags(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		err := cmd.MarkFlagRequired(flag)
		if err != nil {
			err = cmd.MarkPersistentFlagRequired(flag)
		}
		if err != nil {
			wrapFatalln(fmt.Sprintf("error attempting to mark the required flag %q", flag), err)
			return
		}
	}
}
