package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/pos-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetBusinessID extracts the caller's business from the Gin context
func GetBusinessID(c *gin.Context) *uuid.UUID {
	val, exists := c.Get("business_id")
	if !exists {
		return nil
	}
	id, ok := val.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return nil
	}
	return &id
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, _ := c.Get("user_roles")
	out, _ := roles.([]string)
	return out
}

// pathID parses the named path parameter as a uuid. On failure it writes a
// 400 response and returns false.
func pathID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// businessScope resolves the business a request works on: the business of
// the token, or the business_id query parameter for users without one.
func businessScope(c *gin.Context) (uuid.UUID, bool) {
	if id := GetBusinessID(c); id != nil {
		return *id, true
	}
	id, err := uuid.Parse(c.Query("business_id"))
	if err != nil {
		response.BadRequest(c, "business_id is required")
		return uuid.Nil, false
	}
	return id, true
}

// bodyBusiness picks the business for a create request: the token's business
// wins over the one in the body
func bodyBusiness(c *gin.Context, fromBody string) (uuid.UUID, bool) {
	if id := GetBusinessID(c); id != nil {
		return *id, true
	}
	id, err := uuid.Parse(fromBody)
	if err != nil {
		response.BadRequest(c, "Invalid business ID")
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil {
		params.PerPage = perPage
	}
	params.Validate()
	return params
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
