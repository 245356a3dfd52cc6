package locations

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
)

// Repository exposes location persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a locations repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new location row.
func (r *Repository) Create(ctx context.Context, location *models.Location) (*models.Location, error) {
	if err := r.db.WithContext(ctx).Create(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

// FindByID loads a location by its primary key.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// FindByName loads the first location matching the exact name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id ASC").
		First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// List returns all locations in insertion order.
func (r *Repository) List(ctx context.Context) ([]models.Location, error) {
	var rows []models.Location
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

// Save writes the full location row back.
func (r *Repository) Save(ctx context.Context, location *models.Location) (*models.Location, error) {
	if err := r.db.WithContext(ctx).Save(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

// Delete removes a location by ID. The returned rows-affected count lets the
// caller distinguish a missing row from a successful delete.
func (r *Repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Location{})
	return res.RowsAffected, res.Error
}
