package adminapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/openpdv/pdvserver/internal/app"
	"github.com/openpdv/pdvserver/internal/pos"
	"github.com/openpdv/pdvserver/internal/webserver"
)

// GetApp returns the application context injected by the webserver middleware.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(webserver.ContextAppKey).(app.AppContext)
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.ContextDBKey).(*gorm.DB)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

type errBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, errBody{Code: code, Message: message, Details: details})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func handleValidationError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fe.Namespace()+" failed on "+fe.Tag())
		}
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload", details)
	}
	return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request payload", nil)
}

// failService maps service-layer error categories onto the HTTP error
// envelope. resource scopes the conflict/not-found codes (e.g. "PRODUCT").
func failService(c echo.Context, err error, resource string) error {
	switch {
	case errors.Is(err, pos.ErrValidation):
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, pos.ErrNotFound):
		return fail(c, http.StatusNotFound, resource+"_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, pos.ErrDuplicate):
		return fail(c, http.StatusConflict, resource+"_EXISTS", err.Error(), nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Storage operation failed", err.Error())
	}
}
