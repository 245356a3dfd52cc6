package models

// OrderItem associates an item and quantity with an order. The service layer
// keeps at most one row per (order, item) pair via upsert; the schema does not
// enforce that uniqueness.
type OrderItem struct {
	ID       uint `gorm:"primaryKey"`
	OrderID  uint `gorm:"column:order_id;not null;index"`
	ItemID   uint `gorm:"column:item_id;not null;index"`
	Quantity int  `gorm:"not null"`

	Item *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:RESTRICT"`
}
