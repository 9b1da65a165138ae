package domain

import "time"

// DiningTable is a physical table in the restaurant (e.g., "Mesa 1").
// It is an informational tag on orders; no occupancy state is tracked.
type DiningTable struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:200" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns table name
func (DiningTable) TableName() string {
	return "tables"
}
