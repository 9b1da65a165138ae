package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Catalog
	&Product{},
	&DiningTable{},
	// Ledger
	&Order{},
	&OrderItem{},
}
