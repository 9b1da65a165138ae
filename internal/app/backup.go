package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/openpdv/pdvserver/pkg/common"
)

// BackupDatabase writes a full SQL dump (DDL + data) to the backup directory
// and returns the file path. The dump reads through the live connection, so it
// only ever contains committed orders.
func (a *Application) BackupDatabase() (string, error) {
	dump, err := GenerateSQLDump(a.gormDB)
	if err != nil {
		return "", err
	}

	dir := a.appConfig.BackupDir()
	common.MustMakeDirs(dir)

	filename := fmt.Sprintf("pdv_backup_%s.sql", time.Now().Format("2006-01-02_15-04-05"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(dump), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// PruneBackups removes dump files older than keepDays from the backup
// directory and returns how many were deleted.
func (a *Application) PruneBackups(keepDays int) (int, error) {
	dir := a.appConfig.BackupDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().AddDate(0, 0, -keepDays)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "pdv_backup_") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, e.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

// GenerateSQLDump builds a SQL dump of every table in the database.
func GenerateSQLDump(db *gorm.DB) (string, error) {
	dbType := db.Dialector.Name()

	var sqlDump strings.Builder
	sqlDump.WriteString("-- PDV Database Backup\n")
	sqlDump.WriteString(fmt.Sprintf("-- Generated at: %s\n", time.Now().Format("2006-01-02 15:04:05")))
	sqlDump.WriteString(fmt.Sprintf("-- Database type: %s\n\n", dbType))

	var tableNames []string
	switch dbType {
	case "postgres":
		db.Raw(`
			SELECT table_name
			FROM information_schema.tables
			WHERE table_schema = 'public'
			ORDER BY table_name
		`).Scan(&tableNames)
	case "sqlite":
		db.Raw(`
			SELECT name
			FROM sqlite_master
			WHERE type='table' AND name NOT LIKE 'sqlite_%'
			ORDER BY name
		`).Scan(&tableNames)
	default:
		return "", fmt.Errorf("unsupported database type: %s", dbType)
	}

	for _, tableName := range tableNames {
		sqlDump.WriteString(fmt.Sprintf("-- Table: %s\n", tableName))

		ddl := backupGenerateTableDDL(db, dbType, tableName)
		if ddl != "" {
			sqlDump.WriteString(fmt.Sprintf("DROP TABLE IF EXISTS %s;\n", backupQuoteIdentifier(tableName)))
			sqlDump.WriteString(ddl)
			sqlDump.WriteString("\n\n")
		}

		inserts := backupGenerateTableInserts(db, dbType, tableName)
		if inserts != "" {
			sqlDump.WriteString(inserts)
			sqlDump.WriteString("\n")
		}
	}

	return sqlDump.String(), nil
}

func backupQuoteIdentifier(identifier string) string {
	return fmt.Sprintf("\"%s\"", identifier)
}

// backupGenerateTableDDL generates CREATE TABLE DDL for backup
func backupGenerateTableDDL(db *gorm.DB, dbType, tableName string) string {
	switch dbType {
	case "sqlite":
		var ddl string
		db.Raw(`SELECT sql FROM sqlite_master WHERE type='table' AND name = ?`, tableName).Scan(&ddl)
		if ddl != "" {
			return ddl + ";"
		}
	case "postgres":
		return buildPostgresDDL(db, tableName)
	}
	return ""
}

// buildPostgresDDL builds a CREATE TABLE statement from information_schema
func buildPostgresDDL(db *gorm.DB, tableName string) string {
	type ColumnDef struct {
		ColumnName    string
		DataType      string
		CharMaxLen    *int
		IsNullable    string
		ColumnDefault *string
	}

	var columns []ColumnDef
	db.Raw(`
		SELECT column_name, data_type, character_maximum_length AS char_max_len, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_name = ? AND table_schema = 'public'
		ORDER BY ordinal_position
	`, tableName).Scan(&columns)

	if len(columns) == 0 {
		return ""
	}

	var pkColumns []string
	db.Raw(`
		SELECT a.attname
		FROM pg_index i
		JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey)
		WHERE i.indrelid = ?::regclass AND i.indisprimary
	`, tableName).Scan(&pkColumns)

	var ddl strings.Builder
	ddl.WriteString(fmt.Sprintf("CREATE TABLE \"%s\" (\n", tableName))

	for i, col := range columns {
		ddl.WriteString(fmt.Sprintf("    \"%s\" ", col.ColumnName))

		dataType := strings.ToUpper(col.DataType)
		if col.CharMaxLen != nil && *col.CharMaxLen > 0 {
			ddl.WriteString(fmt.Sprintf("%s(%d)", dataType, *col.CharMaxLen))
		} else {
			ddl.WriteString(dataType)
		}

		if col.IsNullable == "NO" {
			ddl.WriteString(" NOT NULL")
		}
		if col.ColumnDefault != nil && *col.ColumnDefault != "" {
			ddl.WriteString(fmt.Sprintf(" DEFAULT %s", *col.ColumnDefault))
		}

		if i < len(columns)-1 || len(pkColumns) > 0 {
			ddl.WriteString(",")
		}
		ddl.WriteString("\n")
	}

	if len(pkColumns) > 0 {
		ddl.WriteString(fmt.Sprintf("    PRIMARY KEY (\"%s\")\n", strings.Join(pkColumns, "\", \"")))
	}

	ddl.WriteString(");")
	return ddl.String()
}

// backupGenerateTableInserts generates INSERT statements for all rows in a table
func backupGenerateTableInserts(db *gorm.DB, dbType, tableName string) string {
	var columns []string
	switch dbType {
	case "postgres":
		db.Raw(`
			SELECT column_name
			FROM information_schema.columns
			WHERE table_name = ? AND table_schema = 'public'
			ORDER BY ordinal_position
		`, tableName).Scan(&columns)
	case "sqlite":
		type PragmaInfo struct {
			Name string
		}
		var pragmaInfos []PragmaInfo
		db.Raw(fmt.Sprintf("PRAGMA table_info(%s)", tableName)).Scan(&pragmaInfos)
		for _, info := range pragmaInfos {
			columns = append(columns, info.Name)
		}
	}

	if len(columns) == 0 {
		return ""
	}

	var rows []map[string]interface{}
	db.Table(tableName).Find(&rows)

	if len(rows) == 0 {
		return ""
	}

	var inserts strings.Builder
	quotedTable := backupQuoteIdentifier(tableName)

	for _, row := range rows {
		var quotedCols []string
		var values []string

		for _, col := range columns {
			quotedCols = append(quotedCols, backupQuoteIdentifier(col))
			values = append(values, formatSQLValue(row[col]))
		}

		inserts.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);\n",
			quotedTable,
			strings.Join(quotedCols, ", "),
			strings.Join(values, ", "),
		))
	}

	return inserts.String()
}

// formatSQLValue formats a Go value as a SQL literal
func formatSQLValue(val interface{}) string {
	if val == nil {
		return "NULL"
	}

	switch v := val.(type) {
	case string:
		escaped := strings.ReplaceAll(v, "'", "''")
		return fmt.Sprintf("'%s'", escaped)
	case []byte:
		escaped := strings.ReplaceAll(string(v), "'", "''")
		return fmt.Sprintf("'%s'", escaped)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return fmt.Sprintf("%v", v)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case time.Time:
		return fmt.Sprintf("'%s'", v.Format("2006-01-02 15:04:05"))
	default:
		str := fmt.Sprintf("%v", v)
		escaped := strings.ReplaceAll(str, "'", "''")
		return fmt.Sprintf("'%s'", escaped)
	}
}
