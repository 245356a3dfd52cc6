package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrjordantanner/logistics-app-server/pkg/db"
	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
)

// Service exposes location management operations.
type Service interface {
	CreateLocation(ctx context.Context, input CreateLocationInput) (*LocationDTO, error)
	GetLocation(ctx context.Context, id uint) (*LocationDTO, error)
	ListLocations(ctx context.Context) ([]LocationDTO, error)
	UpdateLocation(ctx context.Context, id uint, input UpdateLocationInput) (*LocationDTO, error)
	DeleteLocation(ctx context.Context, id uint) error
}

type service struct {
	repo *Repository
}

// NewService constructs a location service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("locations repository required")
	}
	return &service{repo: repo}, nil
}

// CreateLocation validates and persists a new location.
func (s *service) CreateLocation(ctx context.Context, input CreateLocationInput) (*LocationDTO, error) {
	location := &models.Location{
		Name:       strings.TrimSpace(input.Name),
		City:       strings.TrimSpace(input.City),
		State:      strings.TrimSpace(input.State),
		PostalCode: strings.TrimSpace(input.PostalCode),
		Country:    strings.TrimSpace(input.Country),
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
	}
	if err := validateLocation(location); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, location)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert location")
	}
	return FromModel(created), nil
}

// GetLocation loads a single location by ID.
func (s *service) GetLocation(ctx context.Context, id uint) (*LocationDTO, error) {
	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load location")
	}
	return FromModel(location), nil
}

// ListLocations returns every location. An empty catalog yields an empty
// slice, not an error.
func (s *service) ListLocations(ctx context.Context) ([]LocationDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list locations")
	}
	return fromModels(rows), nil
}

// UpdateLocation applies the provided fields onto an existing location.
func (s *service) UpdateLocation(ctx context.Context, id uint, input UpdateLocationInput) (*LocationDTO, error) {
	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load location")
	}

	applyUpdate(location, input)
	if err := validateLocation(location); err != nil {
		return nil, err
	}

	updated, err := s.repo.Save(ctx, location)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update location")
	}
	return FromModel(updated), nil
}

// DeleteLocation removes a location. Orders and deliveries referencing the
// location block the delete at the database level.
func (s *service) DeleteLocation(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "location is referenced by orders or deliveries")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete location")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
	}
	return nil
}

func validateLocation(location *models.Location) error {
	switch {
	case location.Name == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	case len(location.Name) > 255:
		return pkgerrors.New(pkgerrors.CodeValidation, "name exceeds 255 characters")
	case location.City == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	case location.State == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "state is required")
	case location.PostalCode == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "postal_code is required")
	case location.Country == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "country is required")
	}
	return nil
}

func applyUpdate(location *models.Location, input UpdateLocationInput) {
	if input.Name != nil {
		location.Name = strings.TrimSpace(*input.Name)
	}
	if input.City != nil {
		location.City = strings.TrimSpace(*input.City)
	}
	if input.State != nil {
		location.State = strings.TrimSpace(*input.State)
	}
	if input.PostalCode != nil {
		location.PostalCode = strings.TrimSpace(*input.PostalCode)
	}
	if input.Country != nil {
		location.Country = strings.TrimSpace(*input.Country)
	}
	if input.Latitude != nil {
		location.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		location.Longitude = input.Longitude
	}
}
