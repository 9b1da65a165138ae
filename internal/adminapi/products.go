package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openpdv/pdvserver/internal/pos"
	"github.com/openpdv/pdvserver/internal/webserver"
)

type productPayload struct {
	Name  string  `json:"name" validate:"required,min=1,max=200"`
	Price float64 `json:"price" validate:"gte=0"`
}

// registerProductRoutes registers product catalog endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	rows, err := pos.NewCatalog(GetDB(c)).ListProducts(c.Request().Context())
	if err != nil {
		return failService(c, err, "PRODUCT")
	}
	return ok(c, rows)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	p, err := pos.NewCatalog(GetDB(c)).CreateProduct(c.Request().Context(), payload.Name, payload.Price)
	if err != nil {
		return failService(c, err, "PRODUCT")
	}
	return ok(c, p)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	p, err := pos.NewCatalog(GetDB(c)).GetProduct(c.Request().Context(), id)
	if err != nil {
		return failService(c, err, "PRODUCT")
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	p, err := pos.NewCatalog(GetDB(c)).UpdateProduct(c.Request().Context(), id, payload.Name, payload.Price)
	if err != nil {
		return failService(c, err, "PRODUCT")
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	if err := pos.NewCatalog(GetDB(c)).DeleteProduct(c.Request().Context(), id); err != nil {
		return failService(c, err, "PRODUCT")
	}
	return ok(c, map[string]interface{}{"id": id})
}
