package app

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/openpdv/pdvserver/internal/domain"
)

type settingsSchema struct {
	Category    string
	Name        string
	Default     string
	Description string
}

// checkSettings initializes missing sys_config entries with their defaults.
// Existing values are left untouched so operator changes survive restarts.
func (a *Application) checkSettings() {
	schemas := []settingsSchema{
		{"backup", "keep_days", strconv.Itoa(a.appConfig.Backup.KeepDays), "Days to keep database dump files"},
		{"pos", "currency", "BRL", "Currency code reported alongside totals"},
	}

	for sortid, schema := range schemas {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", schema.Category, schema.Name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   schema.Category,
				Name:   schema.Name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Category+"."+schema.Name),
				zap.String("default", schema.Default))
		}
	}
}
