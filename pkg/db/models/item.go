package models

// Item is a catalog entry referenced (never owned) by order line items.
// Deleting an item is blocked by the database while order items point at it.
type Item struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:255"`
	Weight      int    `gorm:"not null;default:0"`
	Value       int    `gorm:"not null;default:0"`
	Size        string `gorm:"size:10;not null;default:'small'"`
}
