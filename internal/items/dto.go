package items

import "github.com/mrjordantanner/logistics-app-server/pkg/db/models"

// ItemDTO is the transport shape for a catalog item.
type ItemDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Weight      int    `json:"weight"`
	Value       int    `json:"value"`
	Size        string `json:"size"`
}

// CreateItemInput holds the validated payload for one catalog item.
type CreateItemInput struct {
	Name        string
	Description string
	Weight      int
	Value       int
	Size        string
}

// UpdateItemInput holds optional mutation values for an item.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Weight      *int
	Value       *int
	Size        *string
}

func FromModel(i *models.Item) *ItemDTO {
	if i == nil {
		return nil
	}
	return &ItemDTO{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Weight:      i.Weight,
		Value:       i.Value,
		Size:        i.Size,
	}
}

func fromModels(rows []models.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
