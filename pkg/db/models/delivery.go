package models

import (
	"time"

	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
)

// Delivery is a driver-assigned transport of one or more orders between two
// locations. Deleting a delivery cascades to its orders (and, through them,
// their order items); deleting a referenced driver or location is blocked.
type Delivery struct {
	ID                 uint                 `gorm:"primaryKey"`
	DriverID           uint                 `gorm:"column:driver_id;not null;index:idx_deliveries_driver_id"`
	OriginID           uint                 `gorm:"column:origin_id;not null"`
	DestinationID      uint                 `gorm:"column:destination_id;not null"`
	TargetDeliveryDate *time.Time           `gorm:"column:target_delivery_date"`
	ActualDeliveryDate *time.Time           `gorm:"column:actual_delivery_date"`
	Status             enums.DeliveryStatus `gorm:"size:12;not null;default:'scheduled'"`
	CreatedAt          time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          *time.Time           `gorm:"column:updated_at;autoUpdateTime:false"`

	Driver      *User     `gorm:"foreignKey:DriverID;constraint:OnDelete:RESTRICT"`
	Origin      *Location `gorm:"foreignKey:OriginID;constraint:OnDelete:RESTRICT"`
	Destination *Location `gorm:"foreignKey:DestinationID;constraint:OnDelete:RESTRICT"`
	Orders      []Order   `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}
