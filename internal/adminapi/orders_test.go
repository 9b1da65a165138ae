package adminapi

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpdv/pdvserver/internal/domain"
)

type orderReport struct {
	Orders   []domain.Order `json:"orders"`
	TotalSum float64        `json:"total_sum"`
	Summary  struct {
		Count       int     `json:"count"`
		TotalSum    float64 `json:"total_sum"`
		MeanTotal   float64 `json:"mean_total"`
		MedianTotal float64 `json:"median_total"`
	} `json:"summary"`
}

func TestCreateOrderEndpoint(t *testing.T) {
	e, db := setupAPI(t)

	pizza := createTestProduct(t, e, "Pizza", 35.0)
	mesa := createTestTable(t, e, "Mesa 1")

	t.Run("pizza scenario", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/order", map[string]interface{}{
			"table_id": mesa.ID,
			"items":    []map[string]interface{}{{"product_id": pizza.ID, "quantity": 2}},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var order domain.Order
		decodeBody(t, rec, &order)
		assert.Equal(t, 70.0, order.Total)
		assert.Equal(t, mesa.ID, order.TableID)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 2, order.Items[0].Quantity)
		assert.Equal(t, "Pizza", order.Items[0].ProductName)

		rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/order/%d", order.ID), nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("empty items rejected", func(t *testing.T) {
		var before int64
		db.Model(&domain.Order{}).Count(&before)

		rec := doJSON(t, e, http.MethodPost, "/order", map[string]interface{}{
			"table_id": mesa.ID,
			"items":    []map[string]interface{}{},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var after int64
		db.Model(&domain.Order{}).Count(&after)
		assert.Equal(t, before, after)
	})

	t.Run("unknown table", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/order", map[string]interface{}{
			"table_id": 9999,
			"items":    []map[string]interface{}{{"product_id": pizza.ID, "quantity": 1}},
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "ORDER_NOT_FOUND")
	})

	t.Run("unknown product", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/order", map[string]interface{}{
			"table_id": mesa.ID,
			"items":    []map[string]interface{}{{"product_id": 9999, "quantity": 1}},
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/order", map[string]interface{}{
			"table_id": mesa.ID,
			"items":    []map[string]interface{}{{"product_id": pizza.ID, "quantity": 0}},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrderReportEndpoint(t *testing.T) {
	e, _ := setupAPI(t)

	pizza := createTestProduct(t, e, "Pizza", 35.0)
	mesa := createTestTable(t, e, "Mesa 1")

	rec := doJSON(t, e, http.MethodPost, "/order", map[string]interface{}{
		"table_id": mesa.ID,
		"items":    []map[string]interface{}{{"product_id": pizza.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	t.Run("today includes the order", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, fmt.Sprintf("/orders?from_date=%s&to_date=%s", today, today), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var report orderReport
		decodeBody(t, rec, &report)
		require.Len(t, report.Orders, 1)
		assert.Equal(t, 70.0, report.Orders[0].Total)
		require.Len(t, report.Orders[0].Items, 1)
		assert.Equal(t, 2, report.Orders[0].Items[0].Quantity)
		assert.Equal(t, 70.0, report.TotalSum)
		assert.Equal(t, 1, report.Summary.Count)
	})

	t.Run("future range is empty", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, fmt.Sprintf("/orders?from_date=%s&to_date=%s", tomorrow, tomorrow), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var report orderReport
		decodeBody(t, rec, &report)
		assert.Empty(t, report.Orders)
		assert.Zero(t, report.TotalSum)
	})

	t.Run("inverted range is empty not an error", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, fmt.Sprintf("/orders?from_date=%s&to_date=%s", tomorrow, today), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var report orderReport
		decodeBody(t, rec, &report)
		assert.Empty(t, report.Orders)
	})

	t.Run("malformed date", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/orders?from_date=not-a-date", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("csv export", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/orders/export?format=csv", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, rec.Body.String(), "Pizza")
	})

	t.Run("xlsx export", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/orders/export?format=xlsx", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Body.Bytes())
	})

	t.Run("unknown format", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/orders/export?format=pdf", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
