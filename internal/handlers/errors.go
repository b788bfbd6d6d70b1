package handlers

import (
	"errors"
	"net/http"

	"sheetmart/internal/common"
	"sheetmart/internal/repositories"
	"sheetmart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// respondError maps service errors to the standard error body.
func respondError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		return common.SendValidationError(c, details)
	case errors.Is(err, services.ErrProductNotFound):
		return common.SendNotFoundError(c, "Product")
	case errors.Is(err, services.ErrTenantNotFound):
		return common.SendNotFoundError(c, "Tenant")
	case errors.Is(err, services.ErrProductExists), errors.Is(err, services.ErrUsernameTaken):
		return common.SendConflictError(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return common.SendUnauthorizedError(c, err.Error())
	case errors.Is(err, repositories.ErrDirectoryNotConfigured),
		errors.Is(err, services.ErrStorageNotConfigured),
		errors.Is(err, services.ErrTransportNotConfigured):
		return common.SendUnavailableError(c, err.Error())
	default:
		return common.SendServerError(c, err.Error())
	}
}

// sheetFrom returns the spreadsheet resolved by the tenant middleware. The
// error is an *echo.HTTPError carrying the standard NO_SHEET body.
func sheetFrom(c echo.Context) (string, error) {
	sheetID, ok := common.GetSheetIDFromContext(c.Request().Context())
	if !ok {
		return "", echo.NewHTTPError(http.StatusBadRequest, common.CreateErrorResponse("NO_SHEET", "no sheet configured", nil))
	}
	return sheetID, nil
}
