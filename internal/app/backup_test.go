package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openpdv/pdvserver/config"
	"github.com/openpdv/pdvserver/internal/domain"
)

var appDBSeq int

func newBackupTestApp(t *testing.T) *Application {
	t.Helper()
	appDBSeq++
	dsn := fmt.Sprintf("file:apptest%d?mode=memory&cache=shared", appDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().AutoMigrate(domain.Tables...))

	cfg := config.DefaultAppConfig()
	cfg.System.Workdir = t.TempDir()
	a := NewApplication(cfg)
	a.OverrideDB(db)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return a
}

func TestGenerateSQLDump(t *testing.T) {
	a := newBackupTestApp(t)

	require.NoError(t, a.DB().Create(&domain.Product{Name: "Pizza", Price: 35.0}).Error)
	require.NoError(t, a.DB().Create(&domain.DiningTable{Name: "Mesa O'Brien"}).Error)

	dump, err := GenerateSQLDump(a.DB())
	require.NoError(t, err)

	assert.Contains(t, dump, "CREATE TABLE")
	assert.Contains(t, dump, `INSERT INTO "products"`)
	assert.Contains(t, dump, "'Pizza'")
	// Single quotes in values are escaped.
	assert.Contains(t, dump, "'Mesa O''Brien'")
}

func TestBackupDatabaseAndPrune(t *testing.T) {
	a := newBackupTestApp(t)

	require.NoError(t, a.DB().Create(&domain.Product{Name: "Pizza", Price: 35.0}).Error)

	path, err := a.BackupDatabase()
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "pdv_backup_")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Pizza")

	// A fresh dump survives pruning; a stale one does not.
	removed, err := a.PruneBackups(7)
	require.NoError(t, err)
	assert.Zero(t, removed)

	old := time.Now().AddDate(0, 0, -10)
	require.NoError(t, os.Chtimes(path, old, old))

	removed, err = a.PruneBackups(7)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, path)
}

func TestSettingsManager(t *testing.T) {
	a := newBackupTestApp(t)
	m := a.SettingsMgr()

	assert.Equal(t, "", m.GetString("backup", "keep_days"))

	require.NoError(t, m.Set("backup", "keep_days", "14"))
	assert.Equal(t, 14, m.GetInt("backup", "keep_days"))
	assert.Equal(t, int64(14), m.GetInt64("backup", "keep_days"))

	require.NoError(t, m.Set("backup", "keep_days", "21"))
	assert.Equal(t, 21, m.GetInt("backup", "keep_days"))

	require.NoError(t, m.Set("pos", "demo_mode", "true"))
	assert.True(t, m.GetBool("pos", "demo_mode"))
}
