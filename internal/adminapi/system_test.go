package adminapi

import (
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupEndpoints(t *testing.T) {
	e, _ := setupAPI(t)

	createTestProduct(t, e, "Pizza", 35.0)

	t.Run("trigger writes a dump file", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/system/backup", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp map[string]string
		decodeBody(t, rec, &resp)
		require.NotEmpty(t, resp["path"])

		data, err := os.ReadFile(resp["path"])
		require.NoError(t, err)
		assert.Contains(t, string(data), "CREATE TABLE")
		assert.Contains(t, string(data), "Pizza")
	})

	t.Run("download streams the dump", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/system/backup/download", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "pdv_backup_")
		assert.Contains(t, rec.Body.String(), "INSERT INTO")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	e, _ := setupAPI(t)

	rec := doJSON(t, e, http.MethodGet, "/system/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
