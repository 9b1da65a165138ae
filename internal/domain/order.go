package domain

import "time"

// Order is one checkout for a table. Total is computed once at creation from
// the line-item snapshots and never recomputed afterwards.
type Order struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNo   string      `gorm:"uniqueIndex;size:32" json:"order_no"`
	TableID   int64       `gorm:"index" json:"table_id"`
	Total     float64     `json:"total"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
}

// TableName returns table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one (product, quantity) line within an order. ProductName,
// UnitPrice and Subtotal are denormalized copies taken when the order was
// written; they must never be refreshed from the current catalog.
type OrderItem struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID     int64   `gorm:"index" json:"-"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `gorm:"size:200" json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// TableName returns table name
func (OrderItem) TableName() string {
	return "order_items"
}
