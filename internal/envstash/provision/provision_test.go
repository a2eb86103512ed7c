package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envstash/internal/envstash/cache"
	"envstash/internal/envstash/spec"
	"envstash/pkg/config"
	"envstash/pkg/errors"
	"envstash/pkg/platform"
	"envstash/pkg/platform/platformfakes"
)

const specYAML = `name: env-a
channels: [conda-forge]
dependencies: [python=3.11, numpy=1.26]
`

// fakeStore is an in-memory Store that records operation order.
type fakeStore struct {
	records map[string]cache.Record
	blobs   map[string]bool

	lookupErr  error
	fetchErr   error
	putErr     error
	publishErr error

	ops []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string]cache.Record),
		blobs:   make(map[string]bool),
	}
}

func (s *fakeStore) Lookup(ctx context.Context, specName string) (*cache.Record, error) {
	s.ops = append(s.ops, "lookup")
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	rec, ok := s.records[specName]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *fakeStore) Fetch(ctx context.Context, rec *cache.Record, dst string) error {
	s.ops = append(s.ops, "fetch")
	if s.fetchErr != nil {
		return s.fetchErr
	}
	return os.WriteFile(dst, []byte("archive"), 0644)
}

func (s *fakeStore) Put(ctx context.Context, fp spec.Fingerprint, src string) (string, int64, error) {
	s.ops = append(s.ops, "put")
	if s.putErr != nil {
		return "", 0, s.putErr
	}
	s.blobs[fp.String()] = true
	return "deadbeef", 7, nil
}

func (s *fakeStore) Publish(ctx context.Context, rec cache.Record) error {
	s.ops = append(s.ops, "publish")
	if s.publishErr != nil {
		return s.publishErr
	}
	s.records[rec.SpecName] = rec
	return nil
}

func (s *fakeStore) List(ctx context.Context) ([]cache.Record, error) { return nil, nil }

func (s *fakeStore) Remove(ctx context.Context, fp spec.Fingerprint) error { return nil }

var _ cache.Store = (*fakeStore)(nil)

type fakeBuilder struct {
	err   error
	calls int
}

func (b *fakeBuilder) Build(ctx context.Context, s *spec.EnvironmentSpec, prefix string) error {
	b.calls++
	if b.err != nil {
		return b.err
	}
	return os.MkdirAll(prefix, 0755)
}

type fakePacker struct {
	err   error
	calls int
}

func (p *fakePacker) Pack(prefix, dst string) error {
	p.calls++
	if p.err != nil {
		return p.err
	}
	return os.WriteFile(dst, []byte("packed"), 0644)
}

type fakeUnpacker struct {
	err   error
	calls int
}

func (u *fakeUnpacker) Unpack(src, prefix string) error {
	u.calls++
	if u.err != nil {
		return u.err
	}
	return os.MkdirAll(prefix, 0755)
}

type fixture struct {
	provisioner *Provisioner
	store       *fakeStore
	builder     *fakeBuilder
	packer      *fakePacker
	unpacker    *fakeUnpacker
	platform    *platformfakes.FakePlatform
	specPath    string
	fingerprint spec.Fingerprint
}

func newFixture(t *testing.T, mutate func(cfg *config.Config)) *fixture {
	t.Helper()

	cfg := config.GetDefaults()
	cfg.TargetDir = t.TempDir()

	if mutate != nil {
		mutate(cfg)
	}

	specPath := filepath.Join(t.TempDir(), "env-a.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(specYAML), 0644))

	p := &platformfakes.FakePlatform{}
	p.ReadFileStub = os.ReadFile
	p.RemoveAllStub = os.RemoveAll
	p.MkdirAllStub = os.MkdirAll

	f := &fixture{
		store:       newFakeStore(),
		builder:     &fakeBuilder{},
		packer:      &fakePacker{},
		unpacker:    &fakeUnpacker{},
		platform:    p,
		specPath:    specPath,
		fingerprint: spec.Compute([]byte(specYAML)),
	}
	f.provisioner = New(p, f.store, f.builder, f.packer, f.unpacker, cfg, "slurm-12345.7")
	return f
}

func (f *fixture) publishRecord(t *testing.T, fp spec.Fingerprint) {
	t.Helper()
	require.NoError(t, f.store.Publish(context.Background(), cache.Record{
		SpecName:    "env-a",
		Fingerprint: fp.String(),
		BlobSHA256:  "deadbeef",
	}))
	f.store.ops = nil
}

func TestMissBuildsPacksAndCommits(t *testing.T) {
	f := newFixture(t, nil)

	res, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.NoError(t, err)

	assert.Equal(t, StateReady, res.State)
	assert.Equal(t, SourceBuilt, res.Source)
	assert.Equal(t, "env-a", res.SpecName)
	assert.Equal(t, f.fingerprint, res.Fingerprint)
	assert.NoError(t, res.CommitWarning)

	assert.Equal(t, 1, f.builder.calls)
	assert.Equal(t, 1, f.packer.calls)
	assert.Zero(t, f.unpacker.calls, "a miss must never restore")

	// Blob lands before the record is published
	assert.Equal(t, []string{"lookup", "put", "publish"}, f.store.ops)

	rec := f.store.records["env-a"]
	assert.Equal(t, f.fingerprint.String(), rec.Fingerprint)
	assert.Equal(t, "slurm-12345.7", rec.CreatedBy)
}

// A populated cache plus a node whose scratch target does not exist yet
// is the common steady state; the restore path must create the target the
// same way a build would.
func TestHitRestoresIntoUncreatedTargetDir(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) {
		cfg.TargetDir = filepath.Join(t.TempDir(), "job-7", "env")
	})
	f.publishRecord(t, f.fingerprint)

	res, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.NoError(t, err)

	assert.Equal(t, StateReady, res.State)
	assert.Equal(t, SourceRestored, res.Source)
	assert.Equal(t, 1, f.unpacker.calls)
	assert.Zero(t, f.builder.calls)
}

func TestTargetDirCreationFailureIsNotACacheError(t *testing.T) {
	f := newFixture(t, nil)
	f.publishRecord(t, f.fingerprint)
	f.platform.MkdirAllStub = nil
	f.platform.MkdirAllReturns(fmt.Errorf("read-only file system"))

	res, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.Error(t, err)

	assert.Equal(t, StateFailed, res.State)
	assert.False(t, errors.IsCacheError(err), "scratch problems must not be reported as cache failures")
	assert.True(t, errors.IsConfigError(err))
}

func TestHitRestoresWithoutBuilding(t *testing.T) {
	f := newFixture(t, nil)
	f.publishRecord(t, f.fingerprint)

	res, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.NoError(t, err)

	assert.Equal(t, StateReady, res.State)
	assert.Equal(t, SourceRestored, res.Source)
	assert.Equal(t, 1, f.unpacker.calls)
	assert.Zero(t, f.builder.calls, "a hit must never build")
	assert.Zero(t, f.packer.calls)
}

func TestEditedSpecIsAMiss(t *testing.T) {
	f := newFixture(t, nil)
	f.publishRecord(t, spec.Compute([]byte("older spec content")))

	res, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.NoError(t, err)

	assert.Equal(t, SourceBuilt, res.Source)
	assert.Equal(t, 1, f.builder.calls)
	assert.Zero(t, f.unpacker.calls)

	// The record now points at the new fingerprint
	assert.Equal(t, f.fingerprint.String(), f.store.records["env-a"].Fingerprint)
}

func TestCommitFailureStillReady(t *testing.T) {
	f := newFixture(t, nil)
	f.store.publishErr = fmt.Errorf("disk quota exceeded")

	res, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.NoError(t, err, "a commit failure must not fail the instance")

	assert.Equal(t, StateReady, res.State)
	assert.Equal(t, SourceBuilt, res.Source)
	require.Error(t, res.CommitWarning)
	assert.ErrorIs(t, res.CommitWarning, errors.ErrCacheCommitFailed)
}

func TestPackFailureStillReady(t *testing.T) {
	f := newFixture(t, nil)
	f.packer.err = fmt.Errorf("no space left on device")

	res, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.NoError(t, err)

	assert.Equal(t, StateReady, res.State)
	require.Error(t, res.CommitWarning)
	assert.ErrorIs(t, res.CommitWarning, errors.ErrCacheCommitFailed)
	assert.False(t, f.store.blobs[f.fingerprint.String()], "nothing may be published after a pack failure")
}

func TestBuildFailureFails(t *testing.T) {
	f := newFixture(t, nil)
	f.builder.err = errors.WrapBuildError("env-a", "resolve",
		fmt.Errorf("%w: nothing provides cuda", errors.ErrDependencyResolutionFailed))

	res, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.Error(t, err)

	assert.Equal(t, StateFailed, res.State)
	assert.ErrorIs(t, err, errors.ErrDependencyResolutionFailed)
	assert.False(t, errors.IsRetryable(err))
	assert.Zero(t, f.packer.calls, "a failed build must not be committed")
	assert.NotContains(t, f.store.ops, "put")
}

func TestRestoreFailureFailsClosedByDefault(t *testing.T) {
	f := newFixture(t, nil)
	f.publishRecord(t, f.fingerprint)
	f.store.fetchErr = errors.NewCacheCorruptError(f.fingerprint.String(),
		fmt.Errorf("blob digest mismatch"))

	res, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.Error(t, err)

	assert.Equal(t, StateFailed, res.State)
	assert.ErrorIs(t, err, errors.ErrCacheCorrupt)
	assert.Zero(t, f.builder.calls, "fail-closed restore must not silently rebuild")
}

func TestRestoreFailureFallsBackWhenConfigured(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) {
		cfg.RebuildOnRestoreFailure = true
	})
	f.publishRecord(t, f.fingerprint)
	f.store.fetchErr = errors.NewCacheReadError(f.fingerprint.String(), "fetch", true,
		fmt.Errorf("stale NFS file handle"))

	res, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.NoError(t, err)

	assert.Equal(t, StateReady, res.State)
	assert.Equal(t, SourceBuilt, res.Source)
	assert.Equal(t, 1, f.builder.calls)
}

func TestUnpackFailureRemovesPartialPrefix(t *testing.T) {
	f := newFixture(t, nil)
	f.publishRecord(t, f.fingerprint)
	f.unpacker.err = errors.WrapArchiveError("/scratch/env-a", "unpack",
		fmt.Errorf("%w: truncated archive", errors.ErrUnpackFailed))

	_, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnpackFailed)
	assert.NotZero(t, f.platform.RemoveAllCallCount())
}

func TestLookupFailureFailsClosedByDefault(t *testing.T) {
	f := newFixture(t, nil)
	f.store.lookupErr = errors.NewCacheReadError("", "lookup", true,
		fmt.Errorf("connection reset"))

	res, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.Error(t, err)

	assert.Equal(t, StateFailed, res.State)
	assert.True(t, errors.IsRetryable(err))
	assert.Zero(t, f.builder.calls)
}

func TestMissingSpecFails(t *testing.T) {
	f := newFixture(t, nil)
	f.platform.ReadFileStub = nil
	f.platform.ReadFileReturns(nil, os.ErrNotExist)

	res, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.Error(t, err)

	assert.Equal(t, StateFailed, res.State)
	assert.ErrorIs(t, err, errors.ErrSpecUnavailable)
	assert.Equal(t, errors.CategorySpec, errors.GetCategory(err))
}

func TestInvalidSpecFails(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, os.WriteFile(f.specPath, []byte("name: [not, a, scalar"), 0644))

	_, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidSpec)
	assert.False(t, errors.IsRetryable(err))
}

// Re-provisioning the same unchanged spec restores from the entry the
// first run committed.
func TestSecondInstanceReusesCommittedBuild(t *testing.T) {
	f := newFixture(t, nil)

	res, err := f.provisioner.Provision(context.Background(), f.specPath)
	require.NoError(t, err)
	require.Equal(t, SourceBuilt, res.Source)

	res, err = f.provisioner.Provision(context.Background(), f.specPath)
	require.NoError(t, err)
	assert.Equal(t, SourceRestored, res.Source)
	assert.Equal(t, 1, f.builder.calls)
}

var _ platform.Platform = (*platformfakes.FakePlatform)(nil)
