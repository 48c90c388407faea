// Package errors provides standardized error values for the daily report pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeWeatherQueryFailed        ErrorCode = "WEATHER_QUERY_FAILED"
	ErrCodeImageSynthesisFailed      ErrorCode = "IMAGE_SYNTHESIS_FAILED"
	ErrCodeAssetDownloadFailed       ErrorCode = "ASSET_DOWNLOAD_FAILED"
	ErrCodeGenerationServiceError    ErrorCode = "GENERATION_SERVICE_ERROR"
	ErrCodeInvalidGenerationResponse ErrorCode = "INVALID_GENERATION_RESPONSE"

	ErrCodeNotificationConfigIncomplete ErrorCode = "NOTIFICATION_CONFIG_INCOMPLETE"
	ErrCodeMailTransportFailed          ErrorCode = "MAIL_TRANSPORT_FAILED"

	ErrCodeScheduleInvalid ErrorCode = "SCHEDULE_INVALID"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

func newError(code ErrorCode, message string, cause error) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewWeatherQueryFailedError wraps a failure of the weather query call.
func NewWeatherQueryFailedError(city string, err error) *StandardError {
	e := newError(ErrCodeWeatherQueryFailed, "Weather query failed", err)
	e.Metadata = map[string]interface{}{"city": city}
	return e
}

// NewImageSynthesisFailedError wraps a failure of the image synthesis call.
func NewImageSynthesisFailedError(landmark string, err error) *StandardError {
	e := newError(ErrCodeImageSynthesisFailed, "Image synthesis failed", err)
	e.Metadata = map[string]interface{}{"landmark": landmark}
	return e
}

// NewAssetDownloadFailedError wraps a failure retrieving or persisting an image.
func NewAssetDownloadFailedError(ref string, err error) *StandardError {
	e := newError(ErrCodeAssetDownloadFailed, "Asset download failed", err)
	e.Metadata = map[string]interface{}{"reference": ref}
	return e
}

// NewGenerationServiceError reports a transport or API error from the generation service.
func NewGenerationServiceError(provider string, err error) *StandardError {
	return newError(ErrCodeGenerationServiceError, fmt.Sprintf("Generation service '%s' error", provider), err)
}

// NewInvalidGenerationResponseError reports a payload that does not match the expected envelope.
func NewInvalidGenerationResponseError(details string) *StandardError {
	e := newError(ErrCodeInvalidGenerationResponse, "Generation service returned an unexpected payload", nil)
	e.Details = details
	return e
}

// NewNotificationConfigIncompleteError lists the missing mail settings.
func NewNotificationConfigIncompleteError(missing []string) *StandardError {
	e := newError(ErrCodeNotificationConfigIncomplete, "Mail configuration incomplete", nil)
	e.Details = fmt.Sprintf("missing: %v", missing)
	e.Metadata = map[string]interface{}{"missing": missing}
	return e
}

// NewMailTransportFailedError wraps a connect, login or send error.
func NewMailTransportFailedError(transport string, err error) *StandardError {
	return newError(ErrCodeMailTransportFailed, fmt.Sprintf("Mail transport '%s' failed", transport), err)
}

// NewScheduleInvalidError reports an unparseable fire time.
func NewScheduleInvalidError(value string, err error) *StandardError {
	e := newError(ErrCodeScheduleInvalid, "Invalid schedule time", err)
	e.Metadata = map[string]interface{}{"value": value}
	return e
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", err)
}

// CodeOf returns the code of the first StandardError in err's chain.
func CodeOf(err error) ErrorCode {
	if n := Normalize(err); n != nil {
		return n.Code
	}
	return ""
}

// GetErrorCategory returns the taxonomy bucket of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeWeatherQueryFailed,
		ErrCodeImageSynthesisFailed,
		ErrCodeGenerationServiceError,
		ErrCodeInvalidGenerationResponse:
		return "transport"
	case ErrCodeAssetDownloadFailed:
		return "download"
	case ErrCodeNotificationConfigIncomplete,
		ErrCodeScheduleInvalid:
		return "configuration"
	case ErrCodeMailTransportFailed:
		return "mail"
	default:
		return "internal"
	}
}

// IsFatalToRun reports whether the code aborts the current pipeline run.
func IsFatalToRun(code ErrorCode) bool {
	switch GetErrorCategory(code) {
	case "transport", "download", "internal":
		return true
	}
	return false
}
