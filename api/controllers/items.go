package controllers

import (
	"net/http"
	"strings"

	"github.com/mrjordantanner/logistics-app-server/api/responses"
	"github.com/mrjordantanner/logistics-app-server/api/validators"
	itemsvc "github.com/mrjordantanner/logistics-app-server/internal/items"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
	"github.com/mrjordantanner/logistics-app-server/pkg/logger"
)

type createItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Weight      int    `json:"weight" validate:"gte=0"`
	Value       int    `json:"value" validate:"gte=0"`
	Size        string `json:"size,omitempty"`
}

type createItemsRequest struct {
	Items []createItemRequest `json:"items" validate:"required,min=1,dive"`
}

type updateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Weight      *int    `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Value       *int    `json:"value,omitempty" validate:"omitempty,gte=0"`
	Size        *string `json:"size,omitempty"`
}

// CreateItems accepts a batch of catalog items. The batch is all-or-nothing:
// any invalid row rejects the whole request with per-row details.
func CreateItems(svc itemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		var payload createItemsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inputs := make([]itemsvc.CreateItemInput, 0, len(payload.Items))
		for _, row := range payload.Items {
			inputs = append(inputs, itemsvc.CreateItemInput{
				Name:        row.Name,
				Description: row.Description,
				Weight:      row.Weight,
				Value:       row.Value,
				Size:        row.Size,
			})
		}

		created, err := svc.CreateItems(r.Context(), inputs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ListItems returns every item, or a single item when ?itemName= is present.
func ListItems(svc itemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if name := strings.TrimSpace(r.URL.Query().Get("itemName")); name != "" {
			item, err := svc.GetItemByName(r.Context(), name)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, item)
			return
		}

		items, err := svc.ListItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetItem(svc itemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func UpdateItem(svc itemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateItem(r.Context(), id, itemsvc.UpdateItemInput{
			Name:        payload.Name,
			Description: payload.Description,
			Weight:      payload.Weight,
			Value:       payload.Value,
			Size:        payload.Size,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func DeleteItem(svc itemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
