package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("")
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "pdv.db", cfg.Database.Name)
	assert.Equal(t, 1816, cfg.Web.Port)
	assert.True(t, cfg.Backup.Enabled)
	assert.Equal(t, 30, cfg.Backup.KeepDays)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "pdvserver.yml")
	content := `
web:
  port: 9090
database:
  type: postgres
  host: db.local
  name: pdv
backup:
  cron_spec: "0 2 * * *"
  keep_days: 7
`
	require.NoError(t, os.WriteFile(cfile, []byte(content), 0o644))

	cfg := LoadConfig(cfile)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, "0 2 * * *", cfg.Backup.CronSpec)
	assert.Equal(t, 7, cfg.Backup.KeepDays)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PDV_WEB_PORT", "8088")
	t.Setenv("PDV_DB_TYPE", "postgres")
	t.Setenv("PDV_BACKUP_ENABLED", "false")

	cfg := LoadConfig("")
	assert.Equal(t, 8088, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.False(t, cfg.Backup.Enabled)
}

func TestBackupDir(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.System.Workdir = "/var/pdvserver"
	cfg.Backup.Dir = "backups"
	assert.Equal(t, filepath.Join("/var/pdvserver", "backups"), cfg.BackupDir())

	cfg.Backup.Dir = "/mnt/backups"
	assert.Equal(t, "/mnt/backups", cfg.BackupDir())
}
