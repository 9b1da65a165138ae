package domain

// SysConfig is a runtime-tunable configuration entry managed through the
// settings manager, keyed by (Type, Name).
type SysConfig struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Sort   int    `json:"sort"`
	Type   string `gorm:"index;size:64" json:"type"`
	Name   string `gorm:"index;size:128" json:"name"`
	Value  string `gorm:"size:255" json:"value"`
	Remark string `gorm:"size:255" json:"remark"`
}

// TableName returns table name
func (SysConfig) TableName() string {
	return "sys_config"
}
