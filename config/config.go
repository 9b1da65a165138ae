package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v2"
)

// SysConfig holds process-wide settings
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig holds the admin API listener settings
type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

// DBConfig holds relational store settings. Type is "sqlite" or "postgres";
// sqlite needs only Name (the database file, relative paths resolve under Workdir).
type DBConfig struct {
	Type    string `yaml:"type" json:"type"`
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Name    string `yaml:"name" json:"name"`
	User    string `yaml:"user" json:"user"`
	Passwd  string `yaml:"passwd" json:"passwd"`
	MaxConn int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int   `yaml:"idle_conn" json:"idle_conn"`
	Debug   bool   `yaml:"debug" json:"debug"`
}

// LogConfig holds zap logger settings
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// BackupConfig holds the scheduled database dump settings
type BackupConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	CronSpec string `yaml:"cron_spec" json:"cron_spec"`
	Dir      string `yaml:"dir" json:"dir"`
	KeepDays int    `yaml:"keep_days" json:"keep_days"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Logger   LogConfig    `yaml:"logger" json:"logger"`
	Backup   BackupConfig `yaml:"backup" json:"backup"`
}

// BackupDir returns the backup directory, resolving relative paths under Workdir.
func (c *AppConfig) BackupDir() string {
	dir := c.Backup.Dir
	if dir == "" {
		dir = "backups"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.System.Workdir, dir)
	}
	return dir
}

func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "pdvserver",
			Location: "America/Sao_Paulo",
			Workdir:  "/var/pdvserver",
			Debug:    false,
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 1816,
		},
		Database: DBConfig{
			Type:     "sqlite",
			Name:     "pdv.db",
			MaxConn:  100,
			IdleConn: 10,
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: true,
			Filename:   "/var/pdvserver/pdvserver.log",
		},
		Backup: BackupConfig{
			Enabled:  true,
			CronSpec: "@daily",
			Dir:      "backups",
			KeepDays: 30,
		},
	}
}

func setEnvValue(name string, val *string) {
	if v, ok := os.LookupEnv(name); ok {
		*val = v
	}
}

func setEnvIntValue(name string, val *int) {
	if v, ok := os.LookupEnv(name); ok {
		if i, err := strconv.Atoi(v); err == nil {
			*val = i
		}
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v, ok := os.LookupEnv(name); ok {
		*val = v == "true" || v == "1" || v == "on"
	}
}

// LoadConfig reads the YAML configuration file and applies PDV_* environment
// overrides. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig()
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("PDV_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("PDV_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("PDV_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("PDV_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("PDV_WEB_PORT", &cfg.Web.Port)

	setEnvValue("PDV_DB_TYPE", &cfg.Database.Type)
	setEnvValue("PDV_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("PDV_DB_PORT", &cfg.Database.Port)
	setEnvValue("PDV_DB_NAME", &cfg.Database.Name)
	setEnvValue("PDV_DB_USER", &cfg.Database.User)
	setEnvValue("PDV_DB_PASSWD", &cfg.Database.Passwd)

	setEnvValue("PDV_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("PDV_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("PDV_LOGGER_FILENAME", &cfg.Logger.Filename)

	setEnvBoolValue("PDV_BACKUP_ENABLED", &cfg.Backup.Enabled)
	setEnvValue("PDV_BACKUP_CRON", &cfg.Backup.CronSpec)
	setEnvValue("PDV_BACKUP_DIR", &cfg.Backup.Dir)
	setEnvIntValue("PDV_BACKUP_KEEP_DAYS", &cfg.Backup.KeepDays)

	return cfg
}
