package app

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openpdv/pdvserver/config"
	"github.com/openpdv/pdvserver/pkg/common"
)

// getDatabase opens the configured relational store. SQLite keeps the default
// rollback journal so the on-disk file stays consistent at transaction
// boundaries for the external backup collaborator.
func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	logLevel := gormlogger.Silent
	if cfg.Debug {
		logLevel = gormlogger.Info
	}
	gormConfig := &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			cfg.Host, cfg.User, cfg.Passwd, cfg.Name, cfg.Port)
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	case "sqlite", "":
		path := cfg.Name
		if path == "" {
			path = "pdv.db"
		}
		if !filepath.IsAbs(path) {
			common.MustMakeDirs(workdir)
			path = filepath.Join(workdir, path)
		}
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)
		db, err = gorm.Open(sqlite.Open(dsn), gormConfig)
	default:
		zap.S().Panicf("unsupported database type %q", cfg.Type)
	}
	if err != nil {
		zap.S().Panicf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Panicf("failed to get sql.DB: %v", err)
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}
