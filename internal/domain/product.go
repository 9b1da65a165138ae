package domain

import "time"

// Product is a sellable catalog item. Price is in main currency units
// (e.g., reais). Orders snapshot the price at creation time, so editing a
// product never rewrites historical totals.
type Product struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:200" json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns table name
func (Product) TableName() string {
	return "products"
}
