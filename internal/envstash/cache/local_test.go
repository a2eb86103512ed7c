package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envstash/internal/envstash/spec"
	"envstash/pkg/errors"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func writeArchive(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "env.tar.gz")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLookupMissingIsNotAnError(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.Lookup(context.Background(), "env-a")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestPutPublishLookupFetch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fp := spec.Compute([]byte("name: env-a\ndependencies: [python]\n"))

	archive := writeArchive(t, "pretend this is a packed environment")

	blobSHA, size, err := s.Put(ctx, fp, archive)
	require.NoError(t, err)
	assert.NotEmpty(t, blobSHA)
	assert.EqualValues(t, 36, size)

	// Blob stored but record not yet published: still a miss
	rec, err := s.Lookup(ctx, "env-a")
	require.NoError(t, err)
	assert.Nil(t, rec, "blob without record must read as a miss")

	require.NoError(t, s.Publish(ctx, Record{
		SpecName:    "env-a",
		Fingerprint: fp.String(),
		BlobSHA256:  blobSHA,
		SizeBytes:   size,
		CreatedAt:   time.Now().UTC(),
	}))

	rec, err = s.Lookup(ctx, "env-a")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Matches(fp))

	dst := filepath.Join(t.TempDir(), "restored.tar.gz")
	require.NoError(t, s.Fetch(ctx, rec, dst))

	restored, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "pretend this is a packed environment", string(restored))
}

func TestRecordDoesNotMatchEditedSpec(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fp1 := spec.Compute([]byte("dependencies: [tensorflow=2.15]"))
	fp2 := spec.Compute([]byte("dependencies: [tensorflow=2.16]"))

	archive := writeArchive(t, "archive built from v2.15 spec")
	blobSHA, size, err := s.Put(ctx, fp1, archive)
	require.NoError(t, err)
	require.NoError(t, s.Publish(ctx, Record{
		SpecName: "env-a", Fingerprint: fp1.String(), BlobSHA256: blobSHA, SizeBytes: size,
	}))

	rec, err := s.Lookup(ctx, "env-a")
	require.NoError(t, err)
	assert.True(t, rec.Matches(fp1))
	assert.False(t, rec.Matches(fp2), "edited spec must read as a miss against the old record")
}

func TestFetchMissingBlobIsCacheReadError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fp := spec.Compute([]byte("spec"))

	// Record published with no blob behind it
	require.NoError(t, s.Publish(ctx, Record{SpecName: "env-a", Fingerprint: fp.String()}))
	rec, err := s.Lookup(ctx, "env-a")
	require.NoError(t, err)

	err = s.Fetch(ctx, rec, filepath.Join(t.TempDir(), "out.tar.gz"))
	require.Error(t, err)
	assert.True(t, errors.IsCacheError(err))
	assert.ErrorIs(t, err, errors.ErrCacheRead)
	assert.False(t, errors.IsCacheMiss(err), "a published record with a missing blob is a read error, not a miss")
}

func TestFetchCorruptBlobFailsVerification(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fp := spec.Compute([]byte("spec"))

	archive := writeArchive(t, "original archive bytes")
	blobSHA, size, err := s.Put(ctx, fp, archive)
	require.NoError(t, err)
	require.NoError(t, s.Publish(ctx, Record{
		SpecName: "env-a", Fingerprint: fp.String(), BlobSHA256: blobSHA, SizeBytes: size,
	}))

	// Corrupt the stored blob after the record was published
	blobPath := filepath.Join(s.root, "blobs", fp.String()+".tar.gz")
	require.NoError(t, os.WriteFile(blobPath, []byte("truncated garbag"), 0644))

	rec, err := s.Lookup(ctx, "env-a")
	require.NoError(t, err)

	err = s.Fetch(ctx, rec, filepath.Join(t.TempDir(), "out.tar.gz"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCacheCorrupt)
	assert.False(t, errors.IsRetryable(err))
}

func TestPutOverwriteLastWriterWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fp := spec.Compute([]byte("spec"))

	first := writeArchive(t, "build from instance 1")
	second := writeArchive(t, "build from instance 2")

	_, _, err := s.Put(ctx, fp, first)
	require.NoError(t, err)
	blobSHA, size, err := s.Put(ctx, fp, second)
	require.NoError(t, err)

	require.NoError(t, s.Publish(ctx, Record{
		SpecName: "env-a", Fingerprint: fp.String(), BlobSHA256: blobSHA, SizeBytes: size,
	}))

	rec, err := s.Lookup(ctx, "env-a")
	require.NoError(t, err)
	dst := filepath.Join(t.TempDir(), "out.tar.gz")
	require.NoError(t, s.Fetch(ctx, rec, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "build from instance 2", string(data))
}

func TestPublishReplacesRecordAtomically(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fp1 := spec.Compute([]byte("v1"))
	fp2 := spec.Compute([]byte("v2"))

	require.NoError(t, s.Publish(ctx, Record{SpecName: "env-a", Fingerprint: fp1.String()}))
	require.NoError(t, s.Publish(ctx, Record{SpecName: "env-a", Fingerprint: fp2.String()}))

	rec, err := s.Lookup(ctx, "env-a")
	require.NoError(t, err)
	assert.Equal(t, fp2.String(), rec.Fingerprint)

	// No temp files left behind in the record directory
	entries, err := os.ReadDir(filepath.Join(s.root, "records"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestListAndRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fpA := spec.Compute([]byte("spec a"))
	fpB := spec.Compute([]byte("spec b"))

	for name, fp := range map[string]spec.Fingerprint{"env-a": fpA, "env-b": fpB} {
		archive := writeArchive(t, "archive for "+name)
		blobSHA, size, err := s.Put(ctx, fp, archive)
		require.NoError(t, err)
		require.NoError(t, s.Publish(ctx, Record{
			SpecName: name, Fingerprint: fp.String(), BlobSHA256: blobSHA, SizeBytes: size,
		}))
	}

	records, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	require.NoError(t, s.Remove(ctx, fpA))

	records, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "env-b", records[0].SpecName)

	// Removing a fingerprint that is already gone is a miss
	err = s.Remove(ctx, fpA)
	assert.True(t, errors.IsCacheMiss(err))
}

func TestCorruptRecordSurfacesAsCacheError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recPath := filepath.Join(s.root, "records", "env-a.fp")
	require.NoError(t, os.WriteFile(recPath, []byte(":\nnot yaml at all\n\t"), 0644))

	_, err := s.Lookup(ctx, "env-a")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCacheCorrupt)
}

func TestCanceledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Lookup(ctx, "env-a")
	assert.ErrorIs(t, err, context.Canceled)
}
