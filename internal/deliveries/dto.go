package deliveries

import (
	"time"

	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
)

// CreateDeliveryInput composes a delivery: a driver, two endpoints, and the
// orders it will carry.
type CreateDeliveryInput struct {
	DriverID           uint
	OriginID           uint
	DestinationID      uint
	TargetDeliveryDate *time.Time
	OrderIDs           []uint
}

// UpdateDeliveryInput carries the replacement values for a delivery. Provided
// fields fully replace the stored ones; omitted fields are untouched. A
// non-nil OrderIDs replaces the attached order set.
type UpdateDeliveryInput struct {
	DriverID           *uint
	OriginID           *uint
	DestinationID      *uint
	TargetDeliveryDate *time.Time
	ActualDeliveryDate *time.Time
	Status             *string
	OrderIDs           *[]uint
}

// DeliveryDTO is the transport shape for a delivery and its order IDs.
type DeliveryDTO struct {
	ID                 uint                 `json:"id"`
	DriverID           uint                 `json:"driver_id"`
	OriginID           uint                 `json:"origin_id"`
	DestinationID      uint                 `json:"destination_id"`
	TargetDeliveryDate *time.Time           `json:"target_delivery_date,omitempty"`
	ActualDeliveryDate *time.Time           `json:"actual_delivery_date,omitempty"`
	Status             enums.DeliveryStatus `json:"status"`
	OrderIDs           []uint               `json:"order_ids"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          *time.Time           `json:"updated_at,omitempty"`
}

func FromModel(d *models.Delivery) *DeliveryDTO {
	if d == nil {
		return nil
	}
	orderIDs := make([]uint, 0, len(d.Orders))
	for _, order := range d.Orders {
		orderIDs = append(orderIDs, order.ID)
	}
	return &DeliveryDTO{
		ID:                 d.ID,
		DriverID:           d.DriverID,
		OriginID:           d.OriginID,
		DestinationID:      d.DestinationID,
		TargetDeliveryDate: d.TargetDeliveryDate,
		ActualDeliveryDate: d.ActualDeliveryDate,
		Status:             d.Status,
		OrderIDs:           orderIDs,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func fromModels(rows []models.Delivery) []DeliveryDTO {
	out := make([]DeliveryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
