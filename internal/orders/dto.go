package orders

import (
	"time"

	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
)

// OrderLineInput is one requested line of an order: an item reference plus
// the quantity to ship.
type OrderLineInput struct {
	ItemID   uint
	Quantity int
}

// CreateOrderInput composes an order from location names and line items. A
// nil Status defaults to pending.
type CreateOrderInput struct {
	OriginName      string
	DestinationName string
	Status          *string
	Items           []OrderLineInput
}

// UpdateOrderInput carries the replacement values for an order. Lines are
// upserted per (order, item) pair, so repeating the same payload is a no-op.
type UpdateOrderInput struct {
	OriginName      string
	DestinationName string
	Status          *string
	Items           []OrderLineInput
}

// OrderItemDTO is the transport shape for one order line.
type OrderItemDTO struct {
	ID       uint `json:"id"`
	ItemID   uint `json:"item_id"`
	Quantity int  `json:"quantity"`
}

// OrderDTO is the transport shape for an order with its lines.
type OrderDTO struct {
	ID            uint              `json:"id"`
	OriginID      uint              `json:"origin_id"`
	DestinationID uint              `json:"destination_id"`
	DeliveryID    *uint             `json:"delivery_id,omitempty"`
	OrderDate     time.Time         `json:"order_date"`
	Status        enums.OrderStatus `json:"status"`
	Items         []OrderItemDTO    `json:"items"`
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, line := range o.Items {
		items = append(items, OrderItemDTO{
			ID:       line.ID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}
	return &OrderDTO{
		ID:            o.ID,
		OriginID:      o.OriginID,
		DestinationID: o.DestinationID,
		DeliveryID:    o.DeliveryID,
		OrderDate:     o.OrderDate,
		Status:        o.Status,
		Items:         items,
	}
}

func fromModels(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
