package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openpdv/pdvserver/internal/pos"
	"github.com/openpdv/pdvserver/internal/webserver"
)

type orderItemPayload struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

type orderPayload struct {
	TableID int64              `json:"table_id" validate:"required"`
	Items   []orderItemPayload `json:"items" validate:"required,min=1,dive"`
}

// registerOrderRoutes registers order creation and reporting endpoints
func registerOrderRoutes() {
	webserver.ApiPOST("/order", createOrder)
	webserver.ApiGET("/order/:id", getOrder)
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiGET("/orders/export", exportOrders)
}

func createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	items := make([]pos.LineItem, 0, len(payload.Items))
	for _, it := range payload.Items {
		items = append(items, pos.LineItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	ledger := pos.NewLedger(GetDB(c), GetApp(c).Bus())
	order, err := ledger.CreateOrder(c.Request().Context(), payload.TableID, items)
	if err != nil {
		return failService(c, err, "ORDER")
	}
	return ok(c, order)
}

func getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}

	order, err := pos.NewLedger(GetDB(c), nil).GetOrder(c.Request().Context(), id)
	if err != nil {
		return failService(c, err, "ORDER")
	}
	return ok(c, order)
}

// parseDateRange reads from_date/to_date query parameters. Absent parameters
// leave that bound open; malformed ones are a validation failure.
func parseDateRange(c echo.Context) (pos.DateRange, error) {
	var r pos.DateRange
	if s := c.QueryParam("from_date"); s != "" {
		t, err := pos.ParseReportDate(s)
		if err != nil {
			return r, err
		}
		r.From = &t
	}
	if s := c.QueryParam("to_date"); s != "" {
		t, err := pos.ParseReportDate(s)
		if err != nil {
			return r, err
		}
		r.To = &t
	}
	return r, nil
}

func listOrders(c echo.Context) error {
	dateRange, err := parseDateRange(c)
	if err != nil {
		return failService(c, err, "ORDER")
	}

	report := pos.NewReport(GetDB(c))
	orders, err := report.ListOrders(c.Request().Context(), dateRange)
	if err != nil {
		return failService(c, err, "ORDER")
	}

	sum := report.Summarize(orders)
	currency := GetApp(c).GetSettingsStringValue("pos", "currency")
	return ok(c, map[string]interface{}{
		"orders":    orders,
		"total_sum": sum.TotalSum,
		"summary":   sum,
		"currency":  currency,
	})
}

func exportOrders(c echo.Context) error {
	dateRange, err := parseDateRange(c)
	if err != nil {
		return failService(c, err, "ORDER")
	}

	report := pos.NewReport(GetDB(c))
	orders, err := report.ListOrders(c.Request().Context(), dateRange)
	if err != nil {
		return failService(c, err, "ORDER")
	}

	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}
	stamp := time.Now().Format("20060102_150405")

	switch format {
	case "csv":
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=pdv_report_%s.csv", stamp))
		c.Response().Header().Set(echo.HeaderContentType, "text/csv")
		c.Response().WriteHeader(http.StatusOK)
		return report.WriteCSV(c.Response(), orders)
	case "xlsx":
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=pdv_report_%s.xlsx", stamp))
		c.Response().Header().Set(echo.HeaderContentType,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Response().WriteHeader(http.StatusOK)
		return report.WriteXLSX(c.Response(), orders)
	default:
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "format must be csv or xlsx", nil)
	}
}
