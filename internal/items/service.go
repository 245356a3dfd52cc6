package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/mrjordantanner/logistics-app-server/pkg/db"
	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
)

// DefaultSize is applied when a create payload omits the size.
const DefaultSize = "small"

var validSizes = map[string]struct{}{
	"small":  {},
	"medium": {},
	"large":  {},
}

// Service exposes catalog item management operations.
type Service interface {
	CreateItems(ctx context.Context, inputs []CreateItemInput) ([]ItemDTO, error)
	GetItem(ctx context.Context, id uint) (*ItemDTO, error)
	GetItemByName(ctx context.Context, name string) (*ItemDTO, error)
	ListItems(ctx context.Context) ([]ItemDTO, error)
	UpdateItem(ctx context.Context, id uint, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, id uint) error
}

type service struct {
	repo *Repository
}

// NewService constructs an item service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("items repository required")
	}
	return &service{repo: repo}, nil
}

// CreateItems validates and persists a batch of catalog items. Every invalid
// row is reported, not just the first: row errors are aggregated and surfaced
// as validation details, and nothing is persisted unless all rows pass.
func (s *service) CreateItems(ctx context.Context, inputs []CreateItemInput) ([]ItemDTO, error) {
	if len(inputs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	var rowErrs error
	rows := make([]models.Item, 0, len(inputs))
	for i, input := range inputs {
		item, err := buildItem(input)
		if err != nil {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("item[%d]: %w", i, err))
			continue
		}
		rows = append(rows, *item)
	}
	if rowErrs != nil {
		details := make([]string, 0)
		for _, e := range multierr.Errors(rowErrs) {
			details = append(details, e.Error())
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid items in batch").
			WithDetails(details)
	}

	created, err := s.repo.CreateBatch(ctx, rows)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert items")
	}
	return fromModels(created), nil
}

// GetItem loads a single item by ID.
func (s *service) GetItem(ctx context.Context, id uint) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
	}
	return FromModel(item), nil
}

// GetItemByName loads a single item by exact name.
func (s *service) GetItemByName(ctx context.Context, name string) (*ItemDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "itemName is required")
	}
	item, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item by name")
	}
	return FromModel(item), nil
}

// ListItems returns the whole catalog.
func (s *service) ListItems(ctx context.Context) ([]ItemDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}
	return fromModels(rows), nil
}

// UpdateItem applies the provided fields onto an existing item.
func (s *service) UpdateItem(ctx context.Context, id uint, input UpdateItemInput) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.Weight != nil {
		item.Weight = *input.Weight
	}
	if input.Value != nil {
		item.Value = *input.Value
	}
	if input.Size != nil {
		item.Size = strings.ToLower(strings.TrimSpace(*input.Size))
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}

	updated, err := s.repo.Save(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update item")
	}
	return FromModel(updated), nil
}

// DeleteItem removes an item. Order items referencing it block the delete at
// the database level.
func (s *service) DeleteItem(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "item is referenced by order items")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete item")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return nil
}

func buildItem(input CreateItemInput) (*models.Item, error) {
	item := &models.Item{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Weight:      input.Weight,
		Value:       input.Value,
		Size:        strings.ToLower(strings.TrimSpace(input.Size)),
	}
	if item.Size == "" {
		item.Size = DefaultSize
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func validateItem(item *models.Item) error {
	switch {
	case item.Name == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	case len(item.Name) > 100:
		return pkgerrors.New(pkgerrors.CodeValidation, "name exceeds 100 characters")
	case len(item.Description) > 255:
		return pkgerrors.New(pkgerrors.CodeValidation, "description exceeds 255 characters")
	case item.Weight < 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "weight must be non-negative")
	case item.Value < 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "value must be non-negative")
	}
	if _, ok := validSizes[item.Size]; !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "size must be one of small, medium, large")
	}
	return nil
}
