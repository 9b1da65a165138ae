package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openpdv/pdvserver/internal/pos"
	"github.com/openpdv/pdvserver/internal/webserver"
)

type tablePayload struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// registerTableRoutes registers dining table endpoints
func registerTableRoutes() {
	webserver.ApiGET("/tables", listTables)
	webserver.ApiPOST("/tables", createTable)
}

func listTables(c echo.Context) error {
	rows, err := pos.NewCatalog(GetDB(c)).ListTables(c.Request().Context())
	if err != nil {
		return failService(c, err, "TABLE")
	}
	return ok(c, rows)
}

func createTable(c echo.Context) error {
	var payload tablePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse table", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	t, err := pos.NewCatalog(GetDB(c)).CreateTable(c.Request().Context(), payload.Name)
	if err != nil {
		return failService(c, err, "TABLE")
	}
	return ok(c, t)
}
