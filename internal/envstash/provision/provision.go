// Package provision orchestrates the provisioning pipeline: fingerprint
// the spec, restore from the shared cache on a hit, build and commit on a
// miss.
package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"envstash/internal/envstash/cache"
	"envstash/internal/envstash/spec"
	"envstash/pkg/config"
	"envstash/pkg/errors"
	"envstash/pkg/logger"
	"envstash/pkg/platform"
)

// State is the terminal state of a provisioning run.
type State string

const (
	StateReady  State = "READY"
	StateFailed State = "FAILED"
)

// Source records how a READY environment was obtained.
type Source string

const (
	SourceRestored Source = "restored"
	SourceBuilt    Source = "built"
)

// Result describes the outcome of a provisioning run.
type Result struct {
	State       State
	Source      Source
	SpecName    string
	Fingerprint spec.Fingerprint
	Path        string
	Elapsed     time.Duration

	// CommitWarning is set when the environment is READY but the build
	// could not be committed to the shared cache. Later instances will
	// rebuild; this one proceeds.
	CommitWarning error
}

// EnvironmentBuilder materializes an environment from its spec.
type EnvironmentBuilder interface {
	Build(ctx context.Context, s *spec.EnvironmentSpec, prefix string) error
}

// Archiver serializes a materialized environment to an archive file.
type Archiver interface {
	Pack(prefix, dst string) error
}

// Restorer materializes an environment from an archive file.
type Restorer interface {
	Unpack(src, prefix string) error
}

// Provisioner runs the provisioning pipeline for one instance.
type Provisioner struct {
	platform platform.Platform
	store    cache.Store
	builder  EnvironmentBuilder
	packer   Archiver
	unpacker Restorer
	cfg      *config.Config
	identity string
	logger   *logger.Logger
}

// New creates a provisioner. identity names the scheduler instance for
// cache-record attribution and is informational only.
func New(p platform.Platform, store cache.Store, b EnvironmentBuilder,
	packer Archiver, unpacker Restorer, cfg *config.Config, identity string) *Provisioner {
	return &Provisioner{
		platform: p,
		store:    store,
		builder:  b,
		packer:   packer,
		unpacker: unpacker,
		cfg:      cfg,
		identity: identity,
		logger:   logger.New().WithField("component", "provisioner"),
	}
}

// Provision runs the full pipeline for the spec at specPath and returns
// the terminal result. The returned error is non-nil exactly when
// Result.State is FAILED.
func (pr *Provisioner) Provision(ctx context.Context, specPath string) (*Result, error) {
	start := time.Now()

	s, raw, err := spec.Load(pr.platform, specPath)
	if err != nil {
		return pr.failed("", "", start, err)
	}

	fp := spec.Compute(raw)
	prefix := filepath.Join(pr.cfg.TargetDir, s.Name)
	log := pr.logger.WithFields("spec", s.Name, "fingerprint", fp.Short())

	// Fresh nodes start without the scratch target; both the restore and
	// the build path need it. A failure here is a local scratch problem,
	// not a cache one.
	if err := pr.platform.MkdirAll(pr.cfg.TargetDir, 0755); err != nil {
		return pr.failed(s.Name, fp, start,
			errors.WrapConfigError("provision", "target_dir", err))
	}

	rec, lookupErr := pr.store.Lookup(ctx, s.Name)
	hit := lookupErr == nil && rec != nil && rec.Matches(fp)

	if lookupErr != nil {
		// A record we cannot read is a restore-path failure, not a miss:
		// silently rebuilding would mask cache corruption.
		log.Error("cache lookup failed", "error", lookupErr)
		if !pr.cfg.RebuildOnRestoreFailure {
			return pr.failed(s.Name, fp, start, lookupErr)
		}
		log.Warn("falling back to build after lookup failure")
	}

	if hit {
		log.Info("cache hit, restoring")
		restoreErr := pr.restore(ctx, rec, prefix)
		if restoreErr == nil {
			log.Info("environment restored", "path", prefix, "elapsed", time.Since(start))
			return pr.ready(s.Name, fp, prefix, SourceRestored, start, nil), nil
		}

		log.Error("restore failed", "error", restoreErr)
		if !pr.cfg.RebuildOnRestoreFailure {
			return pr.failed(s.Name, fp, start, restoreErr)
		}
		log.Warn("falling back to build after restore failure")
	} else if lookupErr == nil {
		log.Info("cache miss, building")
	}

	if err := pr.builder.Build(ctx, s, prefix); err != nil {
		return pr.failed(s.Name, fp, start, err)
	}

	// Commit failures never fail the instance: the environment is usable,
	// only reuse by later instances is lost.
	var commitWarning error
	if err := pr.commit(ctx, s.Name, fp, prefix); err != nil {
		commitWarning = errors.WrapCacheError(fp.String(), "commit", false,
			fmt.Errorf("%w: %v", errors.ErrCacheCommitFailed, err))
		log.Warn("cache commit failed, proceeding without reuse", "error", err)
	}

	log.Info("environment built", "path", prefix, "elapsed", time.Since(start))
	return pr.ready(s.Name, fp, prefix, SourceBuilt, start, commitWarning), nil
}

// restore fetches the blob the record points at and unpacks it into
// prefix. A failed restore removes the partial prefix.
func (pr *Provisioner) restore(ctx context.Context, rec *cache.Record, prefix string) error {
	tmp, err := os.CreateTemp(pr.cfg.TargetDir, "envstash-fetch-*.tar.gz")
	if err != nil {
		return errors.NewCacheReadError(rec.Fingerprint, "fetch", false, err)
	}
	tmpName := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpName)

	if err := pr.store.Fetch(ctx, rec, tmpName); err != nil {
		return err
	}

	if err := pr.unpacker.Unpack(tmpName, prefix); err != nil {
		if rmErr := pr.platform.RemoveAll(prefix); rmErr != nil {
			pr.logger.Warn("failed to remove partial restore", "prefix", prefix, "error", rmErr)
		}
		return err
	}

	return nil
}

// commit packs the built environment and publishes it to the shared
// cache: blob first, fingerprint record last.
func (pr *Provisioner) commit(ctx context.Context, specName string, fp spec.Fingerprint, prefix string) error {
	tmp, err := os.CreateTemp(pr.cfg.TargetDir, "envstash-pack-*.tar.gz")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpName)

	if err := pr.packer.Pack(prefix, tmpName); err != nil {
		return err
	}

	blobSHA, size, err := pr.store.Put(ctx, fp, tmpName)
	if err != nil {
		return err
	}

	return pr.store.Publish(ctx, cache.Record{
		SpecName:    specName,
		Fingerprint: fp.String(),
		BlobSHA256:  blobSHA,
		SizeBytes:   size,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   pr.identity,
	})
}

func (pr *Provisioner) ready(specName string, fp spec.Fingerprint, path string,
	source Source, start time.Time, commitWarning error) *Result {
	return &Result{
		State:         StateReady,
		Source:        source,
		SpecName:      specName,
		Fingerprint:   fp,
		Path:          path,
		Elapsed:       time.Since(start),
		CommitWarning: commitWarning,
	}
}

func (pr *Provisioner) failed(specName string, fp spec.Fingerprint, start time.Time, err error) (*Result, error) {
	classified := errors.ClassifyError(err)
	errors.LogError(pr.logger, classified, "provisioning failed")
	return &Result{
		State:       StateFailed,
		SpecName:    specName,
		Fingerprint: fp,
		Elapsed:     time.Since(start),
	}, classified
}
