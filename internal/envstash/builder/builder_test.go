package builder

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envstash/internal/envstash/spec"
	"envstash/pkg/config"
	"envstash/pkg/errors"
	"envstash/pkg/platform/platformfakes"
)

func testSpec() *spec.EnvironmentSpec {
	return &spec.EnvironmentSpec{
		Name:         "env-a",
		Channels:     []string{"conda-forge"},
		Dependencies: []string{"python=3.11", "numpy=1.26"},
	}
}

func testConfig() *config.Config {
	cfg := config.GetDefaults()
	cfg.Installer = config.InstallerConda
	cfg.BuildTimeout = time.Minute
	return cfg
}

// exitError fabricates a real *exec.ExitError with the given code.
func exitError(t *testing.T, code int) error {
	t.Helper()
	err := exec.Command("sh", "-c", fmt.Sprintf("exit %d", code)).Run()
	require.Error(t, err)
	return err
}

func TestBuildSuccessWritesPrefixMarker(t *testing.T) {
	p := &platformfakes.FakePlatform{}
	prefix := filepath.Join(t.TempDir(), "env-a")

	p.RunCommandStub = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		// The install script would create the prefix; emulate that so the
		// marker has somewhere to land.
		require.NoError(t, os.MkdirAll(prefix, 0755))
		return []byte("environment env-a materialized"), nil
	}

	b := New(p, testConfig())
	require.NoError(t, b.Build(context.Background(), testSpec(), prefix))

	marker, err := os.ReadFile(filepath.Join(prefix, ".envstash", "prefix"))
	require.NoError(t, err)
	assert.Equal(t, prefix+"\n", string(marker))

	// Script ran through bash -c
	_, name, args := p.RunCommandArgsForCall(0)
	assert.Equal(t, "bash", name)
	require.Len(t, args, 2)
	assert.Equal(t, "-c", args[0])
	assert.Contains(t, args[1], "micromamba")
	assert.Contains(t, args[1], "'python=3.11'")
}

func TestBuildSolverConflictIsResolutionFailure(t *testing.T) {
	p := &platformfakes.FakePlatform{}
	p.RunCommandReturns([]byte("error libmamba Could not solve for environment specs\n"+
		"nothing provides cuda needed by tensorflow"), exitError(t, 1))

	b := New(p, testConfig())
	err := b.Build(context.Background(), testSpec(), filepath.Join(t.TempDir(), "env-a"))

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDependencyResolutionFailed)
	assert.False(t, errors.IsRetryable(err))

	stage, ok := errors.GetBuildStage(err)
	require.True(t, ok)
	assert.Equal(t, "resolve", stage)
}

func TestBuildBootstrapExitCodeIsDownloadFailure(t *testing.T) {
	p := &platformfakes.FakePlatform{}
	p.RunCommandReturns([]byte("download failed: micromamba bootstrap did not produce a binary"),
		exitError(t, 41))

	b := New(p, testConfig())
	err := b.Build(context.Background(), testSpec(), filepath.Join(t.TempDir(), "env-a"))

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDownloadFailed)
	assert.True(t, errors.IsRetryable(err), "transient network failures are worth a resubmission")
}

func TestBuildCanceledIsNotAnInstallFailure(t *testing.T) {
	p := &platformfakes.FakePlatform{}
	p.RunCommandReturns([]byte(""), fmt.Errorf("signal: terminated"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := New(p, testConfig())
	err := b.Build(ctx, testSpec(), filepath.Join(t.TempDir(), "env-a"))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, errors.ErrInstallFailed,
		"scheduler preemption must not read as a build defect")
	assert.Equal(t, errors.CategoryTimeout, errors.GetCategory(err))
}

func TestBuildGenericFailureIsInstallFailed(t *testing.T) {
	p := &platformfakes.FakePlatform{}
	p.RunCommandReturns([]byte("Segmentation fault"), exitError(t, 1))

	b := New(p, testConfig())
	err := b.Build(context.Background(), testSpec(), filepath.Join(t.TempDir(), "env-a"))

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInstallFailed)
	assert.True(t, errors.IsBuildFailure(err))
	assert.False(t, errors.IsRetryable(err))
}

func TestBuildFailureRemovesPartialPrefix(t *testing.T) {
	p := &platformfakes.FakePlatform{}
	p.RunCommandReturns([]byte("boom"), exitError(t, 1))

	prefix := filepath.Join(t.TempDir(), "env-a")
	b := New(p, testConfig())
	require.Error(t, b.Build(context.Background(), testSpec(), prefix))

	var removedPrefix bool
	for i := 0; i < p.RemoveAllCallCount(); i++ {
		if p.RemoveAllArgsForCall(i) == prefix {
			removedPrefix = true
		}
	}
	assert.True(t, removedPrefix, "a failed build must not leave a partial prefix behind")
}

func TestBuildStalePrefixRemovedBeforeBuild(t *testing.T) {
	p := &platformfakes.FakePlatform{}
	p.DirExistsReturns(true)
	p.RunCommandReturns([]byte("ok"), nil)

	prefix := filepath.Join(t.TempDir(), "env-a")
	require.NoError(t, os.MkdirAll(prefix, 0755))

	b := New(p, testConfig())
	require.NoError(t, b.Build(context.Background(), testSpec(), prefix))

	assert.Equal(t, prefix, p.RemoveAllArgsForCall(0))
}

func TestBuildUnknownInstallerKind(t *testing.T) {
	cfg := testConfig()
	cfg.Installer = "apt"

	b := New(&platformfakes.FakePlatform{}, cfg)
	err := b.Build(context.Background(), testSpec(), filepath.Join(t.TempDir(), "env-a"))

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestBuildPipScript(t *testing.T) {
	p := &platformfakes.FakePlatform{}
	prefix := filepath.Join(t.TempDir(), "env-a")
	p.RunCommandStub = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		require.NoError(t, os.MkdirAll(prefix, 0755))
		return []byte("ok"), nil
	}

	cfg := testConfig()
	cfg.Installer = config.InstallerPip

	s := &spec.EnvironmentSpec{Name: "env-a", Dependencies: []string{"requests==2.31"}}
	b := New(p, cfg)
	require.NoError(t, b.Build(context.Background(), s, prefix))

	_, _, args := p.RunCommandArgsForCall(0)
	assert.Contains(t, args[1], "-m venv")
	assert.Contains(t, args[1], "'requests==2.31'")
}

func TestBuildPipRejectsChannels(t *testing.T) {
	cfg := testConfig()
	cfg.Installer = config.InstallerPip

	b := New(&platformfakes.FakePlatform{}, cfg)
	err := b.Build(context.Background(), testSpec(), filepath.Join(t.TempDir(), "env-a"))

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidSpec)
}
