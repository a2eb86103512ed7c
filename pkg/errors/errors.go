// Package errors provides standardized error handling for envstash.
// It implements structured error types with proper wrapping and
// classification following Go 1.20+ error handling best practices.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the provisioning pipeline
var (
	// Spec-related errors
	ErrSpecUnavailable = errors.New("environment spec unavailable")
	ErrInvalidSpec     = errors.New("invalid environment spec")

	// Cache-related errors
	ErrCacheMiss         = errors.New("cache miss")
	ErrCacheRead         = errors.New("cache read failed")
	ErrCacheCorrupt      = errors.New("cache entry corrupt")
	ErrCacheCommitFailed = errors.New("cache commit failed")

	// Build-related errors
	ErrDownloadFailed             = errors.New("download failed")
	ErrDependencyResolutionFailed = errors.New("dependency resolution failed")
	ErrInstallFailed              = errors.New("install failed")

	// Restore-related errors
	ErrUnpackFailed     = errors.New("unpack failed")
	ErrRelocationFailed = errors.New("relocation failed")

	// System-related errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrExecFailed    = errors.New("workload exec failed")
)

// SpecError represents an error reading or parsing an environment spec
type SpecError struct {
	Path string
	Err  error
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("spec %s: %v", e.Path, e.Err)
}

func (e *SpecError) Unwrap() error {
	return e.Err
}

// CacheError represents an error from the shared cache store.
// Transient marks failures worth a scheduler-level resubmission
// (network hiccup, busy shared filesystem); the core never retries.
type CacheError struct {
	Fingerprint string
	Operation   string
	Transient   bool
	Err         error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s: operation %s: %v", e.Fingerprint, e.Operation, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

// BuildError represents an error materializing a fresh environment
type BuildError struct {
	SpecName string
	Stage    string
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s: stage %s: %v", e.SpecName, e.Stage, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ArchiveError represents an error packing or restoring an archive
type ArchiveError struct {
	Path      string
	Operation string
	Err       error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive %s: operation %s: %v", e.Path, e.Operation, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// ConfigError represents an error related to configuration
type ConfigError struct {
	Component string
	Field     string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config %s.%s: %v", e.Component, e.Field, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Component, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Error wrapping constructors
func WrapSpecError(path string, err error) error {
	if err == nil {
		return nil
	}
	return &SpecError{Path: path, Err: err}
}

func WrapCacheError(fingerprint, operation string, transient bool, err error) error {
	if err == nil {
		return nil
	}
	return &CacheError{Fingerprint: fingerprint, Operation: operation, Transient: transient, Err: err}
}

func WrapBuildError(specName, stage string, err error) error {
	if err == nil {
		return nil
	}
	return &BuildError{SpecName: specName, Stage: stage, Err: err}
}

func WrapArchiveError(path, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &ArchiveError{Path: path, Operation: operation, Err: err}
}

func WrapConfigError(component, field string, err error) error {
	if err == nil {
		return nil
	}
	return &ConfigError{Component: component, Field: field, Err: err}
}

// Error classification functions
func IsSpecError(err error) bool {
	var se *SpecError
	return errors.As(err, &se)
}

func IsCacheError(err error) bool {
	var ce *CacheError
	return errors.As(err, &ce)
}

func IsBuildError(err error) bool {
	var be *BuildError
	return errors.As(err, &be)
}

func IsArchiveError(err error) bool {
	var ae *ArchiveError
	return errors.As(err, &ae)
}

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsCacheMiss reports whether err is the normal cache-miss branch.
// A miss is not a failure; callers branch to the build path on it.
func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}

func IsBuildFailure(err error) bool {
	return errors.Is(err, ErrDownloadFailed) ||
		errors.Is(err, ErrDependencyResolutionFailed) ||
		errors.Is(err, ErrInstallFailed)
}

func IsRestoreFailure(err error) bool {
	return errors.Is(err, ErrUnpackFailed) ||
		errors.Is(err, ErrRelocationFailed)
}

// Error extraction helpers
func GetFingerprint(err error) (string, bool) {
	var ce *CacheError
	if errors.As(err, &ce) {
		return ce.Fingerprint, true
	}
	return "", false
}

func GetBuildStage(err error) (string, bool) {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Stage, true
	}
	return "", false
}

// Convenience constructors for common error patterns
func NewSpecUnavailableError(path string, err error) error {
	return WrapSpecError(path, fmt.Errorf("%w: %v", ErrSpecUnavailable, err))
}

func NewCacheMissError(fingerprint string) error {
	return WrapCacheError(fingerprint, "fetch", false, ErrCacheMiss)
}

func NewCacheReadError(fingerprint, operation string, transient bool, err error) error {
	return WrapCacheError(fingerprint, operation, transient, fmt.Errorf("%w: %v", ErrCacheRead, err))
}

func NewCacheCorruptError(fingerprint string, err error) error {
	return WrapCacheError(fingerprint, "verify", false, fmt.Errorf("%w: %v", ErrCacheCorrupt, err))
}
