package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openpdv/pdvserver/internal/app"
	"github.com/openpdv/pdvserver/internal/webserver"
	"github.com/openpdv/pdvserver/pkg/metrics"
)

// registerSystemRoutes registers operational endpoints
func registerSystemRoutes() {
	webserver.ApiGET("/health", health)
	webserver.ApiGET("/system/metrics", systemMetrics)
	webserver.ApiPOST("/system/backup", triggerBackup)
	webserver.ApiGET("/system/backup/download", downloadBackup)
}

func health(c echo.Context) error {
	return ok(c, map[string]string{"status": "ok"})
}

func systemMetrics(c echo.Context) error {
	return ok(c, metrics.Snapshot())
}

// triggerBackup writes a dump file to the backup directory immediately.
func triggerBackup(c echo.Context) error {
	path, err := GetApp(c).BackupDatabase()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "BACKUP_ERROR", "Failed to create backup", err.Error())
	}
	return ok(c, map[string]string{"path": path})
}

// downloadBackup streams a fresh SQL dump without touching the backup directory.
func downloadBackup(c echo.Context) error {
	dump, err := app.GenerateSQLDump(GetDB(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "BACKUP_ERROR", "Failed to generate dump", err.Error())
	}

	filename := fmt.Sprintf("pdv_backup_%s.sql", time.Now().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	c.Response().Header().Set(echo.HeaderContentType, "application/sql")
	return c.String(http.StatusOK, dump)
}
