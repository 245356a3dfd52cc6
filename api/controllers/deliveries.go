package controllers

import (
	"net/http"
	"time"

	"github.com/mrjordantanner/logistics-app-server/api/responses"
	"github.com/mrjordantanner/logistics-app-server/api/validators"
	deliverysvc "github.com/mrjordantanner/logistics-app-server/internal/deliveries"
	"github.com/mrjordantanner/logistics-app-server/pkg/logger"
)

type createDeliveryRequest struct {
	DriverID           uint       `json:"driver_id" validate:"required"`
	OriginID           uint       `json:"origin_id" validate:"required"`
	DestinationID      uint       `json:"destination_id" validate:"required"`
	TargetDeliveryDate *time.Time `json:"target_delivery_date,omitempty"`
	OrderIDs           []uint     `json:"order_ids,omitempty"`
}

type updateDeliveryRequest struct {
	DriverID           *uint      `json:"driver_id,omitempty"`
	OriginID           *uint      `json:"origin_id,omitempty"`
	DestinationID      *uint      `json:"destination_id,omitempty"`
	TargetDeliveryDate *time.Time `json:"target_delivery_date,omitempty"`
	ActualDeliveryDate *time.Time `json:"actual_delivery_date,omitempty"`
	Status             *string    `json:"status,omitempty"`
	OrderIDs           *[]uint    `json:"order_ids,omitempty"`
}

// CreateDelivery assigns a driver and endpoints to a batch of orders.
func CreateDelivery(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createDeliveryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		delivery, err := svc.CreateDelivery(r.Context(), deliverysvc.CreateDeliveryInput{
			DriverID:           payload.DriverID,
			OriginID:           payload.OriginID,
			DestinationID:      payload.DestinationID,
			TargetDeliveryDate: payload.TargetDeliveryDate,
			OrderIDs:           payload.OrderIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, delivery)
	}
}

func ListDeliveries(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deliveries, err := svc.ListDeliveries(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deliveries)
	}
}

func GetDelivery(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		delivery, err := svc.GetDelivery(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, delivery)
	}
}

// UpdateDelivery replaces the provided fields. A present order_ids array
// fully replaces the attached order set.
func UpdateDelivery(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateDeliveryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		delivery, err := svc.UpdateDelivery(r.Context(), id, deliverysvc.UpdateDeliveryInput{
			DriverID:           payload.DriverID,
			OriginID:           payload.OriginID,
			DestinationID:      payload.DestinationID,
			TargetDeliveryDate: payload.TargetDeliveryDate,
			ActualDeliveryDate: payload.ActualDeliveryDate,
			Status:             payload.Status,
			OrderIDs:           payload.OrderIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, delivery)
	}
}

// DeleteDelivery removes the delivery together with its orders and their
// lines.
func DeleteDelivery(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteDelivery(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
