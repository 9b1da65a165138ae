package app

import (
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/openpdv/pdvserver/internal/domain"
)

// SettingsManager reads and writes runtime-tunable values stored in the
// sys_config table, keyed by (category, name).
type SettingsManager struct {
	db *gorm.DB
}

func NewSettingsManager(db *gorm.DB) *SettingsManager {
	return &SettingsManager{db: db}
}

func (m *SettingsManager) getValue(category, name string) (string, error) {
	var cfg domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	if err != nil {
		return "", err
	}
	return cfg.Value, nil
}

func (m *SettingsManager) GetString(category, name string) string {
	v, err := m.getValue(category, name)
	if err != nil {
		return ""
	}
	return v
}

func (m *SettingsManager) GetInt(category, name string) int {
	return cast.ToInt(m.GetString(category, name))
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.GetString(category, name))
}

func (m *SettingsManager) GetBool(category, name string) bool {
	return cast.ToBool(m.GetString(category, name))
}

// Set upserts a settings value.
func (m *SettingsManager) Set(category, name, value string) error {
	var cfg domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return m.db.Create(&domain.SysConfig{Type: category, Name: name, Value: value}).Error
	case err != nil:
		return err
	}
	return m.db.Model(&domain.SysConfig{}).Where("id = ?", cfg.ID).Update("value", value).Error
}
