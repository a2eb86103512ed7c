// Package cache implements the shared environment cache: packed archive
// blobs keyed by spec fingerprint, plus one small fingerprint record per
// spec name. The record is always published after the blob it points at,
// so a reader never observes a record for a half-written archive.
package cache

import (
	"context"
	"time"

	"envstash/internal/envstash/spec"
)

// Record is the fingerprint record stored beside a cached archive. It is
// the cheap thing Has-style lookups compare before touching the large blob,
// and it carries the blob digest used to verify integrity on fetch.
type Record struct {
	SpecName    string    `yaml:"spec_name"`
	Fingerprint string    `yaml:"fingerprint"`
	BlobSHA256  string    `yaml:"blob_sha256"`
	SizeBytes   int64     `yaml:"size_bytes"`
	CreatedAt   time.Time `yaml:"created_at"`
	CreatedBy   string    `yaml:"created_by,omitempty"`
}

// Matches reports whether the record proves a cached archive was built
// from the spec content with the given fingerprint.
func (r *Record) Matches(fp spec.Fingerprint) bool {
	return r != nil && r.Fingerprint == fp.String()
}

// Store is durable shared storage for cache entries. Implementations are
// safe for concurrent readers; concurrent writers for the same fingerprint
// are tolerated because their content is interchangeable by construction
// (last writer wins). No internal locking across instances.
type Store interface {
	// Lookup returns the published record for a spec name, or (nil, nil)
	// when no record exists (a plain miss, not an error).
	Lookup(ctx context.Context, specName string) (*Record, error)

	// Fetch downloads the archive blob the record points at into dst and
	// verifies its digest against the record. A missing or corrupt blob is
	// a CacheError, never a silent miss.
	Fetch(ctx context.Context, rec *Record, dst string) error

	// Put uploads the archive blob at src under the fingerprint key and
	// returns the blob digest and size for the record. Put never publishes
	// a record; callers publish separately, afterwards.
	Put(ctx context.Context, fp spec.Fingerprint, src string) (blobSHA256 string, size int64, err error)

	// Publish atomically writes the fingerprint record. Must only be
	// called after Put for the same fingerprint has returned.
	Publish(ctx context.Context, rec Record) error

	// List returns all published records.
	List(ctx context.Context) ([]Record, error)

	// Remove deletes the blob for a fingerprint and any records pointing
	// at it. Operator-facing; the provisioner never evicts.
	Remove(ctx context.Context, fp spec.Fingerprint) error
}

// Blob and record naming shared by backends.
const (
	blobSuffix   = ".tar.gz"
	recordSuffix = ".fp"
	blobPrefix   = "blobs"
	recordPrefix = "records"
)
