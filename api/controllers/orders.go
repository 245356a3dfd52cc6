package controllers

import (
	"net/http"

	"github.com/mrjordantanner/logistics-app-server/api/responses"
	"github.com/mrjordantanner/logistics-app-server/api/validators"
	ordersvc "github.com/mrjordantanner/logistics-app-server/internal/orders"
	"github.com/mrjordantanner/logistics-app-server/pkg/logger"
)

// Order payload keys keep the legacy client contract (camelCase) rather than
// the snake_case used elsewhere.
type orderLineRequest struct {
	ItemID   uint `json:"itemId" validate:"required"`
	Quantity int  `json:"quantity" validate:"required,min=1"`
}

type createOrderRequest struct {
	Origin      string             `json:"originName" validate:"required"`
	Destination string             `json:"destinationName" validate:"required"`
	Status      *string            `json:"status,omitempty"`
	Items       []orderLineRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

type updateOrderRequest struct {
	Origin      string             `json:"originName" validate:"required"`
	Destination string             `json:"destinationName" validate:"required"`
	Status      *string            `json:"status,omitempty"`
	Items       []orderLineRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

func toOrderLines(rows []orderLineRequest) []ordersvc.OrderLineInput {
	lines := make([]ordersvc.OrderLineInput, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, ordersvc.OrderLineInput{
			ItemID:   row.ItemID,
			Quantity: row.Quantity,
		})
	}
	return lines
}

// CreateOrder composes an order from location names and line items inside one
// transaction.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CreateOrderWithItems(r.Context(), ordersvc.CreateOrderInput{
			OriginName:      payload.Origin,
			DestinationName: payload.Destination,
			Status:          payload.Status,
			Items:           toOrderLines(payload.Items),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.ListOrders(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// UpdateOrder replaces the order header and upserts the provided lines.
func UpdateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateOrder(r.Context(), id, ordersvc.UpdateOrderInput{
			OriginName:      payload.Origin,
			DestinationName: payload.Destination,
			Status:          payload.Status,
			Items:           toOrderLines(payload.Items),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func DeleteOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteOrder(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
