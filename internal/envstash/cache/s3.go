package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/yaml.v3"

	"envstash/internal/envstash/spec"
	"envstash/pkg/config"
	"envstash/pkg/errors"
	"envstash/pkg/logger"
)

// S3Store implements Store against an S3-compatible object store, for
// clusters whose shared cache location is a bucket rather than a parallel
// filesystem. Object keys mirror the local layout:
//
//	blobs/<fingerprint>.tar.gz
//	records/<spec-name>.fp
//
// Object-store PUTs are atomic per key, which gives the record-last
// publish ordering the same guarantee the local rename does.
type S3Store struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewS3Store creates an object-store backed cache from configuration.
func NewS3Store(cfg *config.Config) (*S3Store, error) {
	if cfg.S3Endpoint == "" || cfg.S3Bucket == "" {
		return nil, errors.WrapConfigError("cache", "s3", errors.ErrInvalidConfig)
	}

	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, errors.WrapConfigError("cache", "s3_endpoint", err)
	}

	return &S3Store{
		client: client,
		bucket: cfg.S3Bucket,
		logger: logger.New().WithField("component", "cache-s3"),
	}, nil
}

func blobKey(fp spec.Fingerprint) string {
	return blobPrefix + "/" + fp.String() + blobSuffix
}

func recordKey(specName string) string {
	return recordPrefix + "/" + specName + recordSuffix
}

func (s *S3Store) Lookup(ctx context.Context, specName string) (*Record, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, recordKey(specName), minio.GetObjectOptions{})
	if err != nil {
		if isMissingObject(err) {
			return nil, nil
		}
		return nil, errors.NewCacheReadError("", "lookup", isTransientS3Error(err), err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isMissingObject(err) {
			return nil, nil
		}
		return nil, errors.NewCacheReadError("", "lookup", isTransientS3Error(err), err)
	}

	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, errors.NewCacheCorruptError("", fmt.Errorf("record %s: %w", specName, err))
	}

	return &rec, nil
}

func (s *S3Store) Fetch(ctx context.Context, rec *Record, dst string) error {
	fp := spec.Fingerprint(rec.Fingerprint)

	obj, err := s.client.GetObject(ctx, s.bucket, blobKey(fp), minio.GetObjectOptions{})
	if err != nil {
		if isMissingObject(err) {
			return errors.NewCacheReadError(rec.Fingerprint, "fetch", false,
				fmt.Errorf("record published but blob missing: %w", err))
		}
		return errors.NewCacheReadError(rec.Fingerprint, "fetch", isTransientS3Error(err), err)
	}
	defer obj.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.NewCacheReadError(rec.Fingerprint, "fetch", false, err)
	}
	defer out.Close()

	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(out, hasher), obj)
	if err != nil {
		if isMissingObject(err) {
			return errors.NewCacheReadError(rec.Fingerprint, "fetch", false,
				fmt.Errorf("record published but blob missing: %w", err))
		}
		return errors.NewCacheReadError(rec.Fingerprint, "fetch", isTransientS3Error(err), err)
	}

	gotSHA := hex.EncodeToString(hasher.Sum(nil))
	if rec.BlobSHA256 != "" && gotSHA != rec.BlobSHA256 {
		return errors.NewCacheCorruptError(rec.Fingerprint,
			fmt.Errorf("blob digest %s does not match record %s (size %d)", gotSHA, rec.BlobSHA256, size))
	}

	s.logger.Debug("fetched archive", "fingerprint", fp.Short(), "bytes", size)
	return nil
}

func (s *S3Store) Put(ctx context.Context, fp spec.Fingerprint, src string) (string, int64, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", 0, errors.NewCacheReadError(fp.String(), "put", false, err)
	}
	defer f.Close()

	// Digest pass before upload; the record must carry the blob hash.
	hasher := sha256.New()
	size, err := io.Copy(hasher, f)
	if err != nil {
		return "", 0, errors.NewCacheReadError(fp.String(), "put", false, err)
	}
	blobSHA := hex.EncodeToString(hasher.Sum(nil))

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", 0, errors.NewCacheReadError(fp.String(), "put", false, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, blobKey(fp), f, size,
		minio.PutObjectOptions{ContentType: "application/gzip"})
	if err != nil {
		return "", 0, errors.NewCacheReadError(fp.String(), "put", isTransientS3Error(err), err)
	}

	s.logger.Debug("stored archive", "fingerprint", fp.Short(), "bytes", size)
	return blobSHA, size, nil
}

func (s *S3Store) Publish(ctx context.Context, rec Record) error {
	data, err := yaml.Marshal(&rec)
	if err != nil {
		return errors.NewCacheReadError(rec.Fingerprint, "publish", false, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, recordKey(rec.SpecName),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/yaml"})
	if err != nil {
		return errors.NewCacheReadError(rec.Fingerprint, "publish", isTransientS3Error(err), err)
	}

	s.logger.Info("published cache record", "spec", rec.SpecName,
		"fingerprint", spec.Fingerprint(rec.Fingerprint).Short())
	return nil
}

func (s *S3Store) List(ctx context.Context) ([]Record, error) {
	var records []Record

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: recordPrefix + "/"}) {
		if obj.Err != nil {
			return nil, errors.NewCacheReadError("", "list", isTransientS3Error(obj.Err), obj.Err)
		}
		if !strings.HasSuffix(obj.Key, recordSuffix) {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(obj.Key, recordPrefix+"/"), recordSuffix)
		rec, err := s.Lookup(ctx, name)
		if err != nil || rec == nil {
			s.logger.Warn("skipping unreadable record", "record", obj.Key, "error", err)
			continue
		}
		records = append(records, *rec)
	}

	return records, nil
}

func (s *S3Store) Remove(ctx context.Context, fp spec.Fingerprint) error {
	records, err := s.List(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if rec.Fingerprint != fp.String() {
			continue
		}
		if err := s.client.RemoveObject(ctx, s.bucket, recordKey(rec.SpecName), minio.RemoveObjectOptions{}); err != nil {
			return errors.NewCacheReadError(fp.String(), "remove", isTransientS3Error(err), err)
		}
	}

	if err := s.client.RemoveObject(ctx, s.bucket, blobKey(fp), minio.RemoveObjectOptions{}); err != nil {
		return errors.NewCacheReadError(fp.String(), "remove", isTransientS3Error(err), err)
	}

	return nil
}

// isMissingObject detects the object-store equivalent of ENOENT.
func isMissingObject(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == 404
}

// isTransientS3Error classifies object-store failures worth a
// scheduler-level resubmission.
func isTransientS3Error(err error) bool {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "SlowDown", "RequestTimeout", "InternalError", "ServiceUnavailable":
		return true
	}
	return resp.StatusCode >= 500
}
