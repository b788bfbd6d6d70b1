package common

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	SheetIDKey  contextKey = "sheet_id"
	TenantIDKey contextKey = "tenant_id"
)

// WithTenant stores the resolved spreadsheet and tenant on ctx. tenantID is
// empty when the default sheet was used.
func WithTenant(ctx context.Context, sheetID, tenantID string) context.Context {
	ctx = context.WithValue(ctx, SheetIDKey, sheetID)
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

func GetSheetIDFromContext(ctx context.Context) (string, bool) {
	sheetID, ok := ctx.Value(SheetIDKey).(string)
	return sheetID, ok && sheetID != ""
}

func GetTenantIDFromContext(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(string)
	return tenantID, ok && tenantID != ""
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response with one entry per field
func SendValidationError(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", message, nil))
}

// SendUnavailableError sends a service unavailable response for a missing dependency
func SendUnavailableError(c echo.Context, message string) error {
	return c.JSON(http.StatusServiceUnavailable, CreateErrorResponse("NOT_CONFIGURED", message, nil))
}

// SendConflictError sends a conflict error response
func SendConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, CreateErrorResponse("CONFLICT", message, nil))
}

// QueryLimit reads a positive "limit" query parameter, clamped to maxValue.
func QueryLimit(c echo.Context, fallback, maxValue int) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		return fallback
	}
	if limit > maxValue {
		return maxValue
	}
	return limit
}
