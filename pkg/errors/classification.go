package errors

import (
	"context"
	"errors"
)

// ErrorCategory groups errors by the kind of problem they represent.
type ErrorCategory string

const (
	CategorySpec          ErrorCategory = "spec"
	CategoryCache         ErrorCategory = "cache"
	CategoryBuild         ErrorCategory = "build"
	CategoryRestore       ErrorCategory = "restore"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryTimeout       ErrorCategory = "timeout"
	CategoryUnknown       ErrorCategory = "unknown"
)

// ClassifiedError is a regular error with handling hints attached:
// what kind of error it is and whether a scheduler resubmission of the
// whole job instance could plausibly succeed.
type ClassifiedError struct {
	Err       error
	Category  ErrorCategory
	Retryable bool
	Stage     string // provisioning stage that produced the error
}

func (e *ClassifiedError) Error() string {
	return e.Err.Error()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// ClassifyError classifies an error based on its type and content
func ClassifyError(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	// Check for already classified errors
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	switch {
	case IsSpecError(err):
		return &ClassifiedError{
			Err:       err,
			Category:  CategorySpec,
			Retryable: false,
			Stage:     "fingerprint",
		}

	case IsCacheError(err):
		var ce *CacheError
		errors.As(err, &ce)
		return &ClassifiedError{
			Err:       err,
			Category:  CategoryCache,
			Retryable: ce.Transient,
			Stage:     ce.Operation,
		}

	case errors.Is(err, ErrDownloadFailed):
		return &ClassifiedError{
			Err:       err,
			Category:  CategoryBuild,
			Retryable: true, // network flake; a resubmitted instance may succeed
			Stage:     "build",
		}

	case IsBuildFailure(err):
		return &ClassifiedError{
			Err:       err,
			Category:  CategoryBuild,
			Retryable: false,
			Stage:     "build",
		}

	case IsRestoreFailure(err):
		return &ClassifiedError{
			Err:       err,
			Category:  CategoryRestore,
			Retryable: false,
			Stage:     "restore",
		}

	case IsConfigError(err):
		return &ClassifiedError{
			Err:       err,
			Category:  CategoryConfiguration,
			Retryable: false,
			Stage:     "config",
		}

	case errors.Is(err, context.Canceled):
		return &ClassifiedError{
			Err:       err,
			Category:  CategoryTimeout,
			Retryable: false,
			Stage:     "canceled",
		}

	case errors.Is(err, context.DeadlineExceeded):
		return &ClassifiedError{
			Err:       err,
			Category:  CategoryTimeout,
			Retryable: true,
			Stage:     "deadline",
		}

	default:
		return &ClassifiedError{
			Err:       err,
			Category:  CategoryUnknown,
			Retryable: false,
		}
	}
}

// IsRetryable reports whether a scheduler-level resubmission might help.
// The core itself never retries; this feeds the FAILED diagnostics.
func IsRetryable(err error) bool {
	classified := ClassifyError(err)
	if classified == nil {
		return false
	}
	return classified.Retryable
}

// GetCategory figures out what type of error we're dealing with.
// When in doubt it says "unknown" rather than guessing.
func GetCategory(err error) ErrorCategory {
	classified := ClassifyError(err)
	if classified == nil {
		return CategoryUnknown
	}
	return classified.Category
}

// GetStage returns the provisioning stage that produced the error.
func GetStage(err error) string {
	classified := ClassifyError(err)
	if classified == nil {
		return ""
	}
	return classified.Stage
}

// FormatErrorForLogging formats an error for structured logging
func FormatErrorForLogging(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	classified := ClassifyError(err)
	result := map[string]interface{}{
		"error":     err.Error(),
		"category":  string(classified.Category),
		"retryable": classified.Retryable,
	}

	if classified.Stage != "" {
		result["stage"] = classified.Stage
	}
	if fp, ok := GetFingerprint(err); ok {
		result["fingerprint"] = fp
	}

	return result
}

// LogError logs an error with appropriate context and classification
func LogError(logger interface{ Error(string, ...interface{}) }, err error, msg string) {
	if err == nil {
		return
	}

	logData := FormatErrorForLogging(err)
	args := make([]interface{}, 0, len(logData)*2)
	for k, v := range logData {
		args = append(args, k, v)
	}

	logger.Error(msg, args...)
}
