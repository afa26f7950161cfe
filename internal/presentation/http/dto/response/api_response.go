package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/sangkips/pos-api/pkg/pagination"
)

// RequestIDKey is the gin context key the request logger stores the request id under
const RequestIDKey = "request_id"

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Code is the error kind, set on failures only
	Code   apperror.Kind `json:"code,omitempty"`
	Data   any           `json:"data,omitempty"`
	Errors any           `json:"errors,omitempty"`
	Meta   *Meta         `json:"meta,omitempty"`
}

// Meta contains metadata about the response
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func newMeta(c *gin.Context) *Meta {
	requestID := c.GetString(RequestIDKey)
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return &Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

// Success sends a success response
func Success(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    newMeta(c),
	})
}

// SuccessWithPagination sends a success response with pagination
func SuccessWithPagination[T any](c *gin.Context, message string, result *pagination.PaginatedResult[T]) {
	Success(c, http.StatusOK, message, result)
}

// Error sends the response for err. Errors that are not application errors
// are reported as internal errors without their details.
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	if appErr.Kind == apperror.KindInternal {
		_ = c.Error(err)
	}
	c.JSON(appErr.Code, APIResponse{
		Success: false,
		Message: appErr.Message,
		Code:    appErr.Kind,
		Errors:  appErr.Errors,
		Meta:    newMeta(c),
	})
}

// Abort sends the response for err and stops the handler chain
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// Created sends a 201 Created response
func Created(c *gin.Context, message string, data any) {
	Success(c, http.StatusCreated, message, data)
}

// OK sends a 200 OK response
func OK(c *gin.Context, message string, data any) {
	Success(c, http.StatusOK, message, data)
}

// NoContent sends a 204 No Content response
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends an invalid argument error
func BadRequest(c *gin.Context, message string) {
	Error(c, apperror.NewBadRequestError(message))
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	Error(c, apperror.New(apperror.KindUnauthorized, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	Error(c, apperror.New(apperror.KindForbidden, message))
}

// File sends a download
func File(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// InternalServerError sends a 500 response
func InternalServerError(c *gin.Context) {
	Error(c, apperror.ErrInternalServer)
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, APIResponse{
		Success: false,
		Message: "Rate limit exceeded. Please try again later.",
		Code:    "RATE_LIMITED",
		Meta:    newMeta(c),
	})
}
