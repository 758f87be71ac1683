package errors

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode identifies an error category in API responses
type ErrorCode string

const (
	// General
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeRateLimit  ErrorCode = "RATE_LIMIT_EXCEEDED"

	// Submission pipeline
	ErrCodeNetwork          ErrorCode = "NETWORK_ERROR"
	ErrCodeRelayRejected    ErrorCode = "RELAY_REJECTED"
	ErrCodeIssuanceRejected ErrorCode = "ISSUANCE_REJECTED"

	// Infrastructure
	ErrCodeCacheError ErrorCode = "CACHE_ERROR"
)

// AppError is a typed application error rendered by the error middleware.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Context   map[string]string      `json:"-"`
	Stack     []string               `json:"-"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsValidation reports whether the error came from user input.
func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation || e.Code == ErrCodeBadRequest
}

// IsUpstream reports whether an external service caused the error.
func (e *AppError) IsUpstream() bool {
	return e.Code == ErrCodeNetwork ||
		e.Code == ErrCodeRelayRejected ||
		e.Code == ErrCodeIssuanceRejected
}

// IsInternal reports whether the error is a server-side fault.
func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal || e.Code == ErrCodeCacheError
}

// WithContext adds request context to the error
func (e *AppError) WithContext(key, value string) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithDetail adds a client-visible detail
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Stack:     getStackTrace(),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

func getStackTrace() []string {
	var stack []string
	for i := 2; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		if strings.Contains(fn.Name(), "internal/common/errors") {
			continue
		}
		stack = append(stack, fmt.Sprintf("%s:%d %s", file, line, fn.Name()))
		if len(stack) >= 10 {
			break
		}
	}
	return stack
}

// NewValidationError reports invalid input for a set of fields.
func NewValidationError(fields map[string]string) *AppError {
	e := New(ErrCodeValidation, "Validation failed")
	for field, reason := range fields {
		e.WithDetail(field, reason)
	}
	return e
}

func NewBadRequestError(reason string) *AppError {
	return New(ErrCodeBadRequest, reason)
}

// NewNetworkError is shown to the user as a retry prompt.
func NewNetworkError(stage string, err error) *AppError {
	return Wrap(err, ErrCodeNetwork, "Network error occurred. Please try again.").
		WithDetail("stage", stage)
}

func NewRelayRejectedError(message string) *AppError {
	return New(ErrCodeRelayRejected, message).WithDetail("stage", "relay")
}

func NewIssuanceRejectedError(message string) *AppError {
	return New(ErrCodeIssuanceRejected, message).WithDetail("stage", "issuance")
}

func NewRateLimitError(retryAfter time.Duration) *AppError {
	return New(ErrCodeRateLimit, "Too many submissions, please wait and try again").
		WithDetail("retry_after", retryAfter.String())
}

func NewNotFoundError(resource string) *AppError {
	return New(ErrCodeNotFound, resource+" not found")
}

// NewCacheError reports that the response cache could not be read.
func NewCacheError(err error) *AppError {
	return Wrap(err, ErrCodeCacheError, "Service temporarily unavailable")
}

func NewInternalError(err error) *AppError {
	return Wrap(err, ErrCodeInternal, "Internal server error")
}
