package adminapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openpdv/pdvserver/config"
	"github.com/openpdv/pdvserver/internal/app"
	"github.com/openpdv/pdvserver/internal/domain"
	"github.com/openpdv/pdvserver/internal/webserver"
)

var apiDBSeq int

// setupAPI boots the webserver with an in-memory database and returns the
// echo engine for httptest traffic.
func setupAPI(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	apiDBSeq++
	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", apiDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().AutoMigrate(domain.Tables...))

	cfg := config.DefaultAppConfig()
	cfg.System.Workdir = t.TempDir()
	application := app.NewApplication(cfg)
	application.OverrideDB(db)

	server := webserver.Init(application)
	InitRouter()

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return server.Echo(), db
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createTestProduct(t *testing.T, e *echo.Echo, name string, price float64) domain.Product {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/products", map[string]interface{}{"name": name, "price": price})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var p domain.Product
	decodeBody(t, rec, &p)
	return p
}

func createTestTable(t *testing.T, e *echo.Echo, name string) domain.DiningTable {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/tables", map[string]interface{}{"name": name})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tbl domain.DiningTable
	decodeBody(t, rec, &tbl)
	return tbl
}

func TestHealthEndpoint(t *testing.T) {
	e, _ := setupAPI(t)

	rec := doJSON(t, e, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ok")
}
