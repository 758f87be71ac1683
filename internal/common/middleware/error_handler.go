package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"lead-voucher-backend/internal/common/errors"
)

const requestIDKey = "request_id"

// ErrorHandler recovers panics and renders them as INTERNAL_ERROR
func ErrorHandler(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		SendError(c, errors.New(errors.ErrCodeInternal, "Internal server error"), logger)
		c.Abort()
	})
}

// NotFound renders unmatched routes as NOT_FOUND.
func NotFound(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		SendError(c, errors.NewNotFoundError("Route"), logger)
	}
}

// RequestID propagates X-Request-ID or generates one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Success   bool             `json:"success"`
	Error     *errors.AppError `json:"error"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
	Path      string           `json:"path,omitempty"`
	Method    string           `json:"method,omitempty"`
}

// SendError renders appErr with the status its code maps to.
func SendError(c *gin.Context, appErr *errors.AppError, logger zerolog.Logger) {
	requestID := GetRequestID(c)

	appErr.WithRequestID(requestID).
		WithContext("path", c.Request.URL.Path).
		WithContext("method", c.Request.Method)

	statusCode := HTTPStatus(appErr)

	response := ErrorResponse{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now(),
		RequestID: requestID,
		Path:      c.Request.URL.Path,
		Method:    c.Request.Method,
	}

	logError(appErr, logger, c)

	c.JSON(statusCode, response)
}

// HTTPStatus maps an error code to its HTTP status
func HTTPStatus(appErr *errors.AppError) int {
	switch appErr.Code {
	case errors.ErrCodeValidation, errors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRateLimit:
		return http.StatusTooManyRequests
	case errors.ErrCodeRelayRejected, errors.ErrCodeIssuanceRejected:
		return http.StatusBadGateway
	case errors.ErrCodeNetwork:
		return http.StatusGatewayTimeout
	case errors.ErrCodeCacheError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func logError(appErr *errors.AppError, logger zerolog.Logger, c *gin.Context) {
	var event *zerolog.Event
	switch {
	case appErr.IsInternal():
		event = logger.Error()
	case appErr.IsUpstream():
		event = logger.Warn()
	case appErr.IsValidation():
		event = logger.Info()
	default:
		event = logger.Warn()
	}

	event = event.
		Str("request_id", GetRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Str("error_message", appErr.Message)

	if len(appErr.Details) > 0 {
		event = event.Interface("details", appErr.Details)
	}
	if len(appErr.Context) > 0 {
		event = event.Interface("context", appErr.Context)
	}
	if appErr.Cause != nil {
		event = event.Err(appErr.Cause)
	}

	event.Msg("Request failed")
}

// GetRequestID returns the id set by RequestID, or "unknown".
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}
