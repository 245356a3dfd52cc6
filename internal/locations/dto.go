package locations

import (
	"github.com/shopspring/decimal"

	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
)

// LocationDTO is the transport shape for a location.
type LocationDTO struct {
	ID         uint             `json:"id"`
	Name       string           `json:"name"`
	City       string           `json:"city"`
	State      string           `json:"state"`
	PostalCode string           `json:"postal_code"`
	Country    string           `json:"country"`
	Latitude   *decimal.Decimal `json:"latitude,omitempty"`
	Longitude  *decimal.Decimal `json:"longitude,omitempty"`
}

// CreateLocationInput holds the validated payload to create a location.
type CreateLocationInput struct {
	Name       string
	City       string
	State      string
	PostalCode string
	Country    string
	Latitude   *decimal.Decimal
	Longitude  *decimal.Decimal
}

// UpdateLocationInput holds optional mutation values for a location.
type UpdateLocationInput struct {
	Name       *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
	Latitude   *decimal.Decimal
	Longitude  *decimal.Decimal
}

func FromModel(l *models.Location) *LocationDTO {
	if l == nil {
		return nil
	}
	return &LocationDTO{
		ID:         l.ID,
		Name:       l.Name,
		City:       l.City,
		State:      l.State,
		PostalCode: l.PostalCode,
		Country:    l.Country,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
	}
}

func fromModels(rows []models.Location) []LocationDTO {
	out := make([]LocationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
