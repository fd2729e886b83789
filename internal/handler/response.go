package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foliogate/internal/domain"
	"foliogate/internal/middleware"
	"foliogate/internal/upstream"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Credential rejection by the portfolio API is checked first so that a
// failed import caused by an expired session still signs the client out.
func MapDomainError(err error) (status int, code, msg string) {
	var rateErr *upstream.RateLimitError
	var apiErr *upstream.Error
	switch {
	case errors.Is(err, domain.ErrUpstreamUnauthorized):
		return http.StatusUnauthorized, "SESSION_EXPIRED", "your session has expired; please sign in again"
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests, "RATE_LIMITED", "portfolio service is rate limiting requests; try again later"
	case errors.Is(err, domain.ErrImportFailed):
		return http.StatusBadGateway, "IMPORT_FAILED", importFailureMessage(err)
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "portfolio service is unavailable; try again later"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrNoFiles):
		return http.StatusBadRequest, "NO_FILES", "at least one file is required"
	case errors.Is(err, domain.ErrTooManyFiles):
		return http.StatusBadRequest, "TOO_MANY_FILES", err.Error()
	case errors.Is(err, domain.ErrFileUnreadable):
		return http.StatusBadRequest, "FILE_UNREADABLE", err.Error()
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png, webp"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "import session not found"
	case errors.Is(err, domain.ErrBatchNotFound):
		return http.StatusNotFound, "BATCH_NOT_FOUND", "batch not found"
	case errors.Is(err, domain.ErrRowNotFound):
		return http.StatusNotFound, "ROW_NOT_FOUND", "row not found"
	case errors.Is(err, domain.ErrFileIndexOutOfRange):
		return http.StatusNotFound, "FILE_NOT_FOUND", "file index out of range"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrFileCleared):
		return http.StatusConflict, "FILE_CLEARED", "file has already been imported or discarded"
	case errors.Is(err, domain.ErrFileNotCompleted):
		return http.StatusConflict, "FILE_NOT_COMPLETED", "file extraction has not completed"
	case errors.Is(err, domain.ErrImportInProgress):
		return http.StatusConflict, "IMPORT_IN_PROGRESS", "an import of this file is already in progress"
	case errors.Is(err, domain.ErrNothingToImport):
		return http.StatusBadRequest, "NOTHING_TO_IMPORT", "no valid rows to import; fix or include at least one row"
	case errors.Is(err, domain.ErrInvalidField):
		return http.StatusBadRequest, "INVALID_FIELD", err.Error()
	case errors.Is(err, domain.ErrInvalidBody):
		return http.StatusBadRequest, "INVALID_REQUEST", err.Error()
	case errors.Is(err, domain.ErrEmptySelection):
		return http.StatusBadRequest, "EMPTY_SELECTION", "no transaction ids provided"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return apiErr.StatusCode, "UPSTREAM_REJECTED", apiErr.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// importFailureMessage prefers the portfolio API's own wording.
func importFailureMessage(err error) string {
	var apiErr *upstream.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "import to portfolio service failed; your rows were kept, try again"
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	var rateErr *upstream.RateLimitError
	if errors.As(err, &rateErr) {
		c.Header("Retry-After", strconv.Itoa(int(rateErr.RetryAfter.Seconds())))
	}
	RespondError(c, status, code, msg)
}

// extractPrincipal returns the authenticated caller. Returns false if the
// auth context is missing (error response already written).
func extractPrincipal(c *gin.Context) (domain.Principal, bool) {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return domain.Principal{}, false
	}
	return p, true
}

// parseUUIDParam parses a path parameter as a UUID. Returns false if invalid
// (error response already written).
func parseUUIDParam(c *gin.Context, name, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, code, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// parseIndexParam parses a non-negative integer path parameter.
func parseIndexParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n < 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_INDEX", "invalid "+name)
		return 0, false
	}
	return n, true
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
