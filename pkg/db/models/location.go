package models

import "github.com/shopspring/decimal"

// Location is shared reference data pointed at by orders and deliveries.
// Order composition resolves locations by exact name.
type Location struct {
	ID         uint             `gorm:"primaryKey"`
	Name       string           `gorm:"size:255;not null;index"`
	City       string           `gorm:"size:100;not null"`
	State      string           `gorm:"size:50;not null"`
	PostalCode string           `gorm:"column:postal_code;size:20;not null"`
	Country    string           `gorm:"size:100;not null"`
	Latitude   *decimal.Decimal `gorm:"type:decimal(9,6)"`
	Longitude  *decimal.Decimal `gorm:"type:decimal(9,6)"`
}
