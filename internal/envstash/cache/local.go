package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"envstash/internal/envstash/spec"
	"envstash/pkg/errors"
	"envstash/pkg/logger"
)

// LocalStore implements Store on a shared POSIX filesystem (Lustre, GPFS,
// NFS). Layout under root:
//
//	blobs/<fingerprint>.tar.gz
//	records/<spec-name>.fp
type LocalStore struct {
	root   string
	logger *logger.Logger
}

// NewLocalStore creates a local filesystem store rooted at root.
func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		return nil, errors.WrapConfigError("cache", "cache_root", errors.ErrInvalidConfig)
	}

	s := &LocalStore{
		root:   root,
		logger: logger.New().WithField("component", "cache-local"),
	}

	for _, dir := range []string{s.blobDir(), s.recordDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.NewCacheReadError("", "init", isTransientIOError(err), err)
		}
	}

	return s, nil
}

func (s *LocalStore) blobDir() string   { return filepath.Join(s.root, blobPrefix) }
func (s *LocalStore) recordDir() string { return filepath.Join(s.root, recordPrefix) }

func (s *LocalStore) blobPath(fp spec.Fingerprint) string {
	return filepath.Join(s.blobDir(), fp.String()+blobSuffix)
}

func (s *LocalStore) recordPath(specName string) string {
	return filepath.Join(s.recordDir(), specName+recordSuffix)
}

// Lookup reads the fingerprint record for a spec name. A missing record is
// (nil, nil): the normal miss branch.
func (s *LocalStore) Lookup(ctx context.Context, specName string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.recordPath(specName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewCacheReadError("", "lookup", isTransientIOError(err), err)
	}

	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, errors.NewCacheCorruptError("", fmt.Errorf("record %s: %w", specName, err))
	}

	return &rec, nil
}

// Fetch copies the blob the record points at to dst, verifying the blob
// digest as it streams. Digest mismatch and missing blob both surface as
// cache errors; restoring from an unverified archive is never an option.
func (s *LocalStore) Fetch(ctx context.Context, rec *Record, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fp := spec.Fingerprint(rec.Fingerprint)
	src, err := os.Open(s.blobPath(fp))
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewCacheReadError(rec.Fingerprint, "fetch", false,
				fmt.Errorf("record published but blob missing: %w", err))
		}
		return errors.NewCacheReadError(rec.Fingerprint, "fetch", isTransientIOError(err), err)
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.NewCacheReadError(rec.Fingerprint, "fetch", isTransientIOError(err), err)
	}
	defer out.Close()

	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(out, hasher), src)
	if err != nil {
		return errors.NewCacheReadError(rec.Fingerprint, "fetch", isTransientIOError(err), err)
	}

	gotSHA := hex.EncodeToString(hasher.Sum(nil))
	if rec.BlobSHA256 != "" && gotSHA != rec.BlobSHA256 {
		return errors.NewCacheCorruptError(rec.Fingerprint,
			fmt.Errorf("blob digest %s does not match record %s (size %d)", gotSHA, rec.BlobSHA256, size))
	}

	s.logger.Debug("fetched archive", "fingerprint", fp.Short(), "bytes", size)
	return nil
}

// Put copies the archive at src into the blob area. The blob lands under a
// temp name, is fsynced, then renamed to its final fingerprint key so a
// concurrent reader never opens a partial blob. Overwrites are permitted:
// blobs for the same fingerprint are interchangeable.
func (s *LocalStore) Put(ctx context.Context, fp spec.Fingerprint, src string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	in, err := os.Open(src)
	if err != nil {
		return "", 0, errors.NewCacheReadError(fp.String(), "put", false, err)
	}
	defer in.Close()

	final := s.blobPath(fp)
	tmp, err := os.CreateTemp(s.blobDir(), fp.Short()+".tmp-*")
	if err != nil {
		return "", 0, errors.NewCacheReadError(fp.String(), "put", isTransientIOError(err), err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(tmp, hasher), in)
	if err != nil {
		tmp.Close()
		return "", 0, errors.NewCacheReadError(fp.String(), "put", isTransientIOError(err), err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", 0, errors.NewCacheReadError(fp.String(), "put", isTransientIOError(err), err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, errors.NewCacheReadError(fp.String(), "put", isTransientIOError(err), err)
	}

	if err := os.Rename(tmpName, final); err != nil {
		return "", 0, errors.NewCacheReadError(fp.String(), "put", isTransientIOError(err), err)
	}

	blobSHA := hex.EncodeToString(hasher.Sum(nil))
	s.logger.Debug("stored archive", "fingerprint", fp.Short(), "bytes", size)
	return blobSHA, size, nil
}

// Publish atomically installs the fingerprint record via temp file +
// rename. This is the commit point for a cache entry: once the rename
// lands, readers may trust the blob it points at.
func (s *LocalStore) Publish(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(&rec)
	if err != nil {
		return errors.NewCacheReadError(rec.Fingerprint, "publish", false, err)
	}

	tmp, err := os.CreateTemp(s.recordDir(), rec.SpecName+".tmp-*")
	if err != nil {
		return errors.NewCacheReadError(rec.Fingerprint, "publish", isTransientIOError(err), err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewCacheReadError(rec.Fingerprint, "publish", isTransientIOError(err), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.NewCacheReadError(rec.Fingerprint, "publish", isTransientIOError(err), err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewCacheReadError(rec.Fingerprint, "publish", isTransientIOError(err), err)
	}

	if err := os.Rename(tmpName, s.recordPath(rec.SpecName)); err != nil {
		return errors.NewCacheReadError(rec.Fingerprint, "publish", isTransientIOError(err), err)
	}

	s.logger.Info("published cache record", "spec", rec.SpecName, "fingerprint", spec.Fingerprint(rec.Fingerprint).Short())
	return nil
}

// List returns all published records, skipping in-flight temp files.
func (s *LocalStore) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.recordDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewCacheReadError("", "list", isTransientIOError(err), err)
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordSuffix) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), recordSuffix)
		rec, err := s.Lookup(ctx, name)
		if err != nil || rec == nil {
			s.logger.Warn("skipping unreadable record", "record", entry.Name(), "error", err)
			continue
		}
		records = append(records, *rec)
	}

	return records, nil
}

// Remove deletes a blob and every record pointing at it.
func (s *LocalStore) Remove(ctx context.Context, fp spec.Fingerprint) error {
	records, err := s.List(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if rec.Fingerprint != fp.String() {
			continue
		}
		if err := os.Remove(s.recordPath(rec.SpecName)); err != nil && !os.IsNotExist(err) {
			return errors.NewCacheReadError(fp.String(), "remove", isTransientIOError(err), err)
		}
	}

	if err := os.Remove(s.blobPath(fp)); err != nil {
		if os.IsNotExist(err) {
			return errors.NewCacheMissError(fp.String())
		}
		return errors.NewCacheReadError(fp.String(), "remove", isTransientIOError(err), err)
	}

	return nil
}

// isTransientIOError reports whether an I/O failure is plausibly worth a
// scheduler-level resubmission. ESTALE shows up on flaky NFS mounts; EBUSY
// and EAGAIN on overloaded shared filesystems.
func isTransientIOError(err error) bool {
	for _, errno := range []syscall.Errno{
		syscall.EAGAIN,
		syscall.EINTR,
		syscall.EBUSY,
		syscall.ETIMEDOUT,
		syscall.ESTALE,
	} {
		if stderrors.Is(err, errno) {
			return true
		}
	}
	return false
}
