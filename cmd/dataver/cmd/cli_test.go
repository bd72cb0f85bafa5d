package cmd

import (
	"bytes"
	stderrors "errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/perfpredict/dataver/pkg/dlogger"
	"github.com/perfpredict/dataver/pkg/runner"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ExitMocks struct {
	fatalCalls int
	exitCalls  int
}

func (m *ExitMocks) Fatalf(format string, v ...interface{}) {
	m.fatalCalls++
}

func (m *ExitMocks) Fatalln(v ...interface{}) {
	m.fatalCalls++
}

func MakeFatalfMock(m *ExitMocks) func(string, ...interface{}) {
	return func(format string, v ...interface{}) {
		m.Fatalf(format, v...)
	}
}

func MakeFatallnMock(m *ExitMocks) func(...interface{}) {
	return func(v ...interface{}) {
		m.Fatalln(v...)
	}
}

var exitMocks *ExitMocks

type cliHarness struct {
	script *runner.Script
	fs     afero.Fs
	out    bytes.Buffer
}

func setupCLITest(t *testing.T) *cliHarness {
	t.Helper()
	t.Setenv(envConfigLocation, filepath.Join(t.TempDir(), "dataver.yaml"))

	h := &cliHarness{
		script: runner.NewScript(),
		fs:     afero.NewMemMapFs(),
	}
	exitMocks = new(ExitMocks)
	logFatalf = MakeFatalfMock(exitMocks)
	logFatalln = MakeFatallnMock(exitMocks)
	osExit = func(int) {
		exitMocks.exitCalls++
	}
	baseFs = h.fs
	newRunner = func() runner.Runner {
		return h.script
	}
	infoLogger.SetOutput(&h.out)
	rootCmd.SetOut(&h.out)
	rootCmd.SetIn(strings.NewReader(""))

	dataverFlags = flagsT{}
	dataverFlags.remote.Name = "storage"
	dataverFlags.root.logLevel = "info"

	t.Cleanup(func() {
		logFatalf = log.Fatalf
		logFatalln = log.Fatalln
		osExit = os.Exit
		baseFs = afero.NewOsFs()
		infoLogger.SetOutput(&bytes.Buffer{})
	})
	return h
}

func (h *cliHarness) trackedTree(t *testing.T) {
	t.Helper()
	require.NoError(t, h.fs.MkdirAll(".dvc", 0755))
	require.NoError(t, h.fs.MkdirAll("data/processed", 0755))
	require.NoError(t, afero.WriteFile(h.fs, "data/processed/x.csv", []byte("a,b\n1,2\n"), 0644))
	h.script.Stub("git status --porcelain", "A  data/processed/x.csv.dvc\n", nil)
}

func run(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
}

func TestCLIAdd(t *testing.T) {
	h := setupCLITest(t)
	h.trackedTree(t)

	run(t, "add", "data/processed/x.csv", "data-v1.0", "first cleaned cut")
	require.Equal(t, 0, exitMocks.fatalCalls)

	calls := h.script.Calls()
	assert.Contains(t, calls, "dvc add data/processed/x.csv")
	assert.Contains(t, calls, "git add --ignore-errors -- data/processed/x.csv.dvc data/processed/.gitignore")
	assert.Contains(t, calls, "git commit -m Add x.csv to DVC tracking")
	assert.Contains(t, calls, "git tag -a data-v1.0 -m first cleaned cut")
	assert.Contains(t, calls, "dvc push")
	assert.Contains(t, calls, "git push")
	assert.Contains(t, calls, "git push origin data-v1.0")
	assert.Contains(t, h.out.String(), "state: SYNCED")
	assert.Contains(t, h.out.String(), "recorded data/processed/x.csv as data-v1.0")
}

func TestCLIAddNoPush(t *testing.T) {
	h := setupCLITest(t)
	h.trackedTree(t)

	run(t, "add", "data/processed/x.csv", "data-v1.0", "--no-push")
	require.Equal(t, 0, exitMocks.fatalCalls)

	assert.True(t, h.script.Called("dvc add"))
	assert.True(t, h.script.Called("git tag -a data-v1.0"))
	assert.False(t, h.script.Called("dvc push"))
	assert.False(t, h.script.Called("git push"))
}

func TestCLIAddMissingFile(t *testing.T) {
	h := setupCLITest(t)
	h.trackedTree(t)

	run(t, "add", "data/processed/nope.csv")
	require.Equal(t, 1, exitMocks.fatalCalls)
	assert.False(t, h.script.Called("dvc add"))
	assert.False(t, h.script.Called("git commit"))
}

func TestCLIAddUninitialized(t *testing.T) {
	h := setupCLITest(t)
	require.NoError(t, afero.WriteFile(h.fs, "data/processed/x.csv", []byte("a\n"), 0644))

	run(t, "add", "data/processed/x.csv")
	require.Equal(t, 1, exitMocks.fatalCalls)
	assert.False(t, h.script.Called("dvc add"))
}

func TestCLIAddToolMissing(t *testing.T) {
	h := setupCLITest(t)
	h.trackedTree(t)
	h.script.MarkMissing("dvc", stderrors.New("not found"))

	run(t, "add", "data/processed/x.csv")
	require.Equal(t, 1, exitMocks.fatalCalls)
	assert.False(t, h.script.Called("dvc add"))
}

func TestCLISetup(t *testing.T) {
	h := setupCLITest(t)
	require.NoError(t, h.fs.MkdirAll("data/processed", 0755))
	require.NoError(t, afero.WriteFile(h.fs, "data/processed/x.csv", []byte("a,b\n1,2\n"), 0644))
	h.script.Stub("git status --porcelain", "A  data/processed/x.csv.dvc\n", nil)

	// local remote with the proposed default directory
	rootCmd.SetIn(strings.NewReader("1\n\n"))
	run(t, "setup", "data/processed/x.csv", "--tag", "data-v1.0")
	require.Equal(t, 0, exitMocks.fatalCalls)

	calls := h.script.Calls()
	assert.Contains(t, calls, "dvc init")
	assert.Contains(t, calls, "dvc remote add --force --default storage /tmp/dvc-storage")
	assert.Contains(t, calls, "dvc add data/processed/x.csv")
	assert.Contains(t, calls, "git tag -a data-v1.0 -m Data version data-v1.0")

	ok, err := afero.DirExists(h.fs, "/tmp/dvc-storage")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCLIPushPartialFailure(t *testing.T) {
	h := setupCLITest(t)
	require.NoError(t, h.fs.MkdirAll(".dvc", 0755))
	h.script.Stub("dvc push", "", stderrors.New("connection refused"))

	run(t, "push", "data-v1.0")
	require.Equal(t, 0, exitMocks.fatalCalls)
	assert.Equal(t, 1, exitMocks.exitCalls)
	assert.True(t, h.script.Called("git push origin data-v1.0"))
	assert.Contains(t, h.out.String(), "retry later")
}

func TestCLIPushToolMissing(t *testing.T) {
	h := setupCLITest(t)
	require.NoError(t, h.fs.MkdirAll(".dvc", 0755))
	h.script.MarkMissing("dvc", stderrors.New("not found"))

	run(t, "push")
	require.Equal(t, 1, exitMocks.fatalCalls)
	assert.Equal(t, 0, exitMocks.exitCalls)
	assert.False(t, h.script.Called("dvc push"))
	assert.False(t, h.script.Called("git push"))
}

func TestCLIPushUninitialized(t *testing.T) {
	h := setupCLITest(t)

	run(t, "push")
	require.Equal(t, 1, exitMocks.fatalCalls)
	assert.False(t, h.script.Called("dvc push"))
}

func TestCLIPull(t *testing.T) {
	h := setupCLITest(t)
	require.NoError(t, h.fs.MkdirAll(".dvc", 0755))
	h.script.Stub("git tag -l data-v1.0", "data-v1.0\n", nil)
	h.script.Stub("git rev-parse data-v1.0", "abc1234\n", nil)

	run(t, "pull", "data-v1.0")
	require.Equal(t, 0, exitMocks.fatalCalls)

	calls := h.script.Calls()
	assert.Contains(t, calls, "git checkout data-v1.0")
	assert.Contains(t, calls, "dvc pull")
	assert.Contains(t, h.out.String(), "checked out data-v1.0 at abc1234")
}

func TestCLIPullUnknownTag(t *testing.T) {
	h := setupCLITest(t)
	require.NoError(t, h.fs.MkdirAll(".dvc", 0755))

	run(t, "pull", "data-v9.9")
	require.Equal(t, 1, exitMocks.fatalCalls)
	assert.False(t, h.script.Called("git checkout"))
	assert.False(t, h.script.Called("dvc pull"))
}

func TestCLIPullRemoteFailure(t *testing.T) {
	h := setupCLITest(t)
	require.NoError(t, h.fs.MkdirAll(".dvc", 0755))
	h.script.Stub("dvc pull", "", stderrors.New("connection refused"))

	run(t, "pull")
	require.Equal(t, 0, exitMocks.fatalCalls)
	assert.Equal(t, 1, exitMocks.exitCalls)
	assert.Contains(t, h.out.String(), "retry later")
}

func TestCLIStatus(t *testing.T) {
	h := setupCLITest(t)
	require.NoError(t, h.fs.MkdirAll(".dvc", 0755))
	sidecar := "outs:\n- md5: d8e8fca2dc0f896fd7cb4cb0031ba249\n  size: 1000\n  path: x.csv\n"
	require.NoError(t, afero.WriteFile(h.fs, "data/processed/x.csv.dvc", []byte(sidecar), 0644))
	h.script.Stub("dvc status", "Data and pipelines are up to date.\n", nil)

	run(t, "status")
	require.Equal(t, 0, exitMocks.fatalCalls)

	out := h.out.String()
	assert.Contains(t, out, "data/processed/x.csv")
	assert.Contains(t, out, "d8e8fca2dc0f896fd7cb4cb0031ba249")
	assert.Contains(t, out, "up to date")
}

func TestCLITagCreateCollision(t *testing.T) {
	h := setupCLITest(t)
	h.script.Stub("git tag -l data-v1.0", "data-v1.0\n", nil)

	run(t, "tag", "create", "data-v1.0")
	require.Equal(t, 1, exitMocks.fatalCalls)

	run(t, "tag", "create", "data-v1.0", "--overwrite")
	require.Equal(t, 1, exitMocks.fatalCalls)
	calls := h.script.Calls()
	assert.Contains(t, calls, "git tag -d data-v1.0")
	assert.Contains(t, calls, "git tag -a data-v1.0 -m Data version data-v1.0")
}

func TestCLITagList(t *testing.T) {
	h := setupCLITest(t)
	h.script.Stub("git tag -l --format=", "data-v1.0 abc1234\ndata-v1.1 def5678\n", nil)

	run(t, "tag", "list")
	require.Equal(t, 0, exitMocks.fatalCalls)
	out := h.out.String()
	assert.Contains(t, out, "data-v1.0")
	assert.Contains(t, out, "def5678")
}

func TestCLIRemoteS3(t *testing.T) {
	h := setupCLITest(t)

	run(t, "remote", "s3", "ml-datasets/perf", "--region", "eu-west-1")
	require.Equal(t, 0, exitMocks.fatalCalls)
	calls := h.script.Calls()
	assert.Contains(t, calls, "dvc remote add --force --default storage s3://ml-datasets/perf")
	assert.Contains(t, calls, "dvc remote modify storage region eu-west-1")
}

func TestCLIRemoteList(t *testing.T) {
	h := setupCLITest(t)
	cfg := "[core]\nremote = storage\n[remote \"storage\"]\nurl = s3://ml-datasets/perf\nregion = eu-west-1\n"
	require.NoError(t, afero.WriteFile(h.fs, ".dvc/config", []byte(cfg), 0644))

	run(t, "remote", "list")
	require.Equal(t, 0, exitMocks.fatalCalls)
	out := h.out.String()
	assert.Contains(t, out, "storage")
	assert.Contains(t, out, "s3://ml-datasets/perf")
	assert.Contains(t, out, "*")
}

func TestCLICredsSet(t *testing.T) {
	h := setupCLITest(t)

	rootCmd.SetIn(strings.NewReader("AKIAEXAMPLE\nwJalrXUtnFEMI\n"))
	run(t, "creds", "set", "--region", "us-east-1", "--no-check")
	require.Equal(t, 0, exitMocks.fatalCalls)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	b, err := afero.ReadFile(h.fs, filepath.Join(home, ".aws", "credentials"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "aws_access_key_id")
	assert.Contains(t, string(b), "AKIAEXAMPLE")
	assert.Contains(t, h.out.String(), "credentials stored")
}

func TestCLICleanup(t *testing.T) {
	h := setupCLITest(t)
	h.trackedTree(t)
	require.NoError(t, afero.WriteFile(h.fs, "data/processed/x.csv.dvc", []byte("outs:\n- md5: aa\n  size: 2\n  path: x.csv\n"), 0644))
	require.NoError(t, afero.WriteFile(h.fs, "data/processed/.gitignore", []byte("/x.csv\n"), 0644))

	run(t, "cleanup", "data/processed/x.csv", "--yes")
	require.Equal(t, 0, exitMocks.fatalCalls)

	calls := h.script.Calls()
	assert.Contains(t, calls, "dvc remove data/processed/x.csv.dvc")
	assert.Contains(t, calls, "git rm -r --cached --ignore-unmatch -- data/processed/x.csv.dvc")
	assert.Contains(t, calls, "git commit -m Stop tracking x.csv")

	b, err := afero.ReadFile(h.fs, "data/processed/.gitignore")
	require.NoError(t, err)
	assert.NotContains(t, string(b), "/x.csv")
}

func TestCLICleanupAborted(t *testing.T) {
	h := setupCLITest(t)
	h.trackedTree(t)
	require.NoError(t, afero.WriteFile(h.fs, "data/processed/x.csv.dvc", []byte("outs: []\n"), 0644))

	rootCmd.SetIn(strings.NewReader("n\n"))
	run(t, "cleanup", "data/processed/x.csv")
	require.Equal(t, 0, exitMocks.fatalCalls)
	assert.False(t, h.script.Called("dvc remove"))
	assert.Contains(t, h.out.String(), "cleanup aborted")
}

func TestCLIPipelineClean(t *testing.T) {
	h := setupCLITest(t)
	training := `paths:
  raw_data: data/raw/raw.csv
  processed_data: data/processed/clean.csv
`
	require.NoError(t, afero.WriteFile(h.fs, "config/training.yaml", []byte(training), 0644))
	raw := `Performance,Gender,Caste,coaching,time,Class_ten_education,twelve_education,medium,Class_ X_Percentage,Class_XII_Percentage,Father_occupation,Mother_occupation,mixed_type_col
average,male,general,wa,two,seba,ahsec,english,good,good,business,house_wife,1
,male,obc,wa,two,seba,ahsec,english,vg,vg,others,others,x
`
	require.NoError(t, afero.WriteFile(h.fs, "data/raw/raw.csv", []byte(raw), 0644))

	run(t, "pipeline", "clean")
	require.Equal(t, 0, exitMocks.fatalCalls)

	b, err := afero.ReadFile(h.fs, "data/processed/clean.csv")
	require.NoError(t, err)
	cleaned := string(b)
	assert.Contains(t, cleaned, "Class_X_Percentage")
	assert.NotContains(t, cleaned, "mixed_type_col")
	assert.Contains(t, h.out.String(), "rows: 2 in, 1 out (1 dropped)")
}

func TestCLILogLevelFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("loglevel")
	require.NotNil(t, flag)
	assert.Equal(t, dlogger.LogLevelInfo, flag.DefValue)
	for _, level := range []string{
		dlogger.LogLevelNone, dlogger.LogLevelError, dlogger.LogLevelWarn,
		dlogger.LogLevelInfo, dlogger.LogLevelDebug,
	} {
		assert.Contains(t, flag.Usage, level)
	}
}

func TestCLIConfigSet(t *testing.T) {
	h := setupCLITest(t)

	run(t, "config", "set", "dataroot", "datasets")
	require.Equal(t, 0, exitMocks.fatalCalls)

	b, err := afero.ReadFile(h.fs, configFileLocation(true))
	require.NoError(t, err)
	assert.Contains(t, string(b), "dataroot: datasets")

	run(t, "config", "set", "bogus", "x")
	require.Equal(t, 1, exitMocks.fatalCalls)
}
