package models

import (
	"time"

	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
)

// Order is a shipment request between two locations. DeliveryID is nullable:
// orders are composed first and attached to a delivery later. Deleting a
// delivery cascades to its orders; deleting a referenced location is blocked.
type Order struct {
	ID            uint              `gorm:"primaryKey"`
	OriginID      uint              `gorm:"column:origin_id;not null"`
	DestinationID uint              `gorm:"column:destination_id;not null"`
	DeliveryID    *uint             `gorm:"column:delivery_id;index"`
	OrderDate     time.Time         `gorm:"column:order_date;not null"`
	Status        enums.OrderStatus `gorm:"size:12;not null;default:'pending'"`

	Origin      *Location   `gorm:"foreignKey:OriginID;constraint:OnDelete:RESTRICT"`
	Destination *Location   `gorm:"foreignKey:DestinationID;constraint:OnDelete:RESTRICT"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}
