// Package builder materializes an environment from its spec on a cache
// miss. It renders an install script for the configured package-manager
// family and runs it against an instance-local prefix.
package builder

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"envstash/internal/envstash/archive"
	"envstash/internal/envstash/builder/installers"
	"envstash/internal/envstash/spec"
	"envstash/pkg/config"
	"envstash/pkg/errors"
	"envstash/pkg/logger"
	"envstash/pkg/platform"
)

// downloadFailedExit is the exit code the install scripts use to signal a
// bootstrap or network failure, so the wrapper can classify it as
// retryable without scraping tool-specific output.
const downloadFailedExit = 41

// Builder runs environment builds on a compute node.
type Builder struct {
	platform  platform.Platform
	manager   *installers.Manager
	installer string
	bootstrap string
	timeout   time.Duration
	logger    *logger.Logger
}

// New creates a builder from configuration.
func New(p platform.Platform, cfg *config.Config) *Builder {
	return &Builder{
		platform:  p,
		manager:   installers.NewManager(),
		installer: cfg.Installer,
		bootstrap: cfg.BootstrapURL,
		timeout:   cfg.BuildTimeout,
		logger:    logger.New().WithField("component", "builder"),
	}
}

// Build materializes the environment described by s into prefix. A failed
// build removes the partial prefix; callers never see a half-built
// environment at a path that exists.
func (b *Builder) Build(ctx context.Context, s *spec.EnvironmentSpec, prefix string) error {
	installer, err := b.manager.Get(b.installer)
	if err != nil {
		return errors.WrapConfigError("builder", "installer", fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err))
	}
	if err := installer.Validate(s); err != nil {
		return errors.WrapSpecError(s.Name, fmt.Errorf("%w: %v", errors.ErrInvalidSpec, err))
	}

	// A leftover prefix from an earlier failed run must not leak into
	// this build.
	if b.platform.DirExists(prefix) {
		if err := b.platform.RemoveAll(prefix); err != nil {
			return errors.WrapBuildError(s.Name, "prepare", fmt.Errorf("%w: %v", errors.ErrInstallFailed, err))
		}
	}

	workDir := filepath.Join(filepath.Dir(prefix), ".envstash-work-"+s.Name)
	if err := b.platform.MkdirAll(workDir, 0755); err != nil {
		return errors.WrapBuildError(s.Name, "prepare", fmt.Errorf("%w: %v", errors.ErrInstallFailed, err))
	}
	defer func() {
		if err := b.platform.RemoveAll(workDir); err != nil {
			b.logger.Warn("failed to remove build work dir", "dir", workDir, "error", err)
		}
	}()

	result, err := installer.Install(ctx, &installers.InstallRequest{
		Spec:         s,
		Prefix:       prefix,
		WorkDir:      workDir,
		BootstrapURL: b.bootstrap,
	})
	if err != nil {
		return errors.WrapBuildError(s.Name, "render", fmt.Errorf("%w: %v", errors.ErrInstallFailed, err))
	}

	runCtx := ctx
	if b.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	b.logger.Info("building environment", "spec", s.Name, "installer", installer.GetKind(), "prefix", prefix)
	start := time.Now()

	output, err := b.platform.RunCommand(runCtx, result.Command, result.Args...)
	if err != nil {
		b.cleanup(s.Name, prefix)
		return b.classifyBuildFailure(s.Name, output, runCtx, err)
	}

	// Record the build prefix inside the environment so a restore on a
	// different node knows what to relocate from.
	if err := archive.WritePrefixMarker(prefix); err != nil {
		b.cleanup(s.Name, prefix)
		return errors.WrapBuildError(s.Name, "finalize", fmt.Errorf("%w: %v", errors.ErrInstallFailed, err))
	}

	b.logger.Info("environment built", "spec", s.Name, "elapsed", time.Since(start))
	return nil
}

func (b *Builder) cleanup(specName, prefix string) {
	if err := b.platform.RemoveAll(prefix); err != nil {
		b.logger.Warn("failed to remove partial environment", "spec", specName, "prefix", prefix, "error", err)
	}
}

// classifyBuildFailure maps an install script failure onto the build error
// taxonomy: resolution conflicts are permanent spec problems, bootstrap
// and network failures are worth a resubmission, everything else is a
// plain install failure.
func (b *Builder) classifyBuildFailure(specName string, output []byte, ctx context.Context, err error) error {
	tail := outputTail(output)

	// Scheduler preemption (SIGTERM through the signal-aware context) is
	// not a build defect; keep context.Canceled visible to callers.
	if stderrors.Is(ctx.Err(), context.Canceled) {
		return errors.WrapBuildError(specName, "install",
			fmt.Errorf("build canceled: %w", context.Canceled))
	}
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.WrapBuildError(specName, "install",
			fmt.Errorf("%w: build timed out: %s", errors.ErrInstallFailed, tail))
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) && exitErr.ExitCode() == downloadFailedExit {
		return errors.WrapBuildError(specName, "bootstrap",
			fmt.Errorf("%w: %s", errors.ErrDownloadFailed, tail))
	}

	if isResolutionFailure(output) {
		return errors.WrapBuildError(specName, "resolve",
			fmt.Errorf("%w: %s", errors.ErrDependencyResolutionFailed, tail))
	}
	if isDownloadFailure(output) {
		return errors.WrapBuildError(specName, "bootstrap",
			fmt.Errorf("%w: %s", errors.ErrDownloadFailed, tail))
	}

	return errors.WrapBuildError(specName, "install",
		fmt.Errorf("%w: %v: %s", errors.ErrInstallFailed, err, tail))
}

// resolutionMarkers are the solver-failure phrases of the supported
// package managers.
var resolutionMarkers = []string{
	"Could not solve for environment specs",
	"nothing provides",
	"PackagesNotFoundError",
	"ResolvePackageNotFound",
	"No matching distribution found",
	"ResolutionImpossible",
}

var downloadMarkers = []string{
	"download failed",
	"Connection timed out",
	"Temporary failure in name resolution",
	"CondaHTTPError",
	"ReadTimeoutError",
}

func isResolutionFailure(output []byte) bool {
	return containsAny(output, resolutionMarkers)
}

func isDownloadFailure(output []byte) bool {
	return containsAny(output, downloadMarkers)
}

func containsAny(output []byte, markers []string) bool {
	text := string(output)
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// outputTail keeps the last chunk of build output for the error message;
// solver output runs to megabytes and the useful part is at the end.
func outputTail(output []byte) string {
	const max = 2048
	text := strings.TrimSpace(string(output))
	if len(text) > max {
		text = "..." + text[len(text)-max:]
	}
	return text
}
