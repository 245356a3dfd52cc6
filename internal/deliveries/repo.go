package deliveries

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
)

// Repository exposes delivery persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a deliveries repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new delivery row.
func (r *Repository) Create(ctx context.Context, delivery *models.Delivery) (*models.Delivery, error) {
	if err := r.db.WithContext(ctx).Omit("Orders").Create(delivery).Error; err != nil {
		return nil, err
	}
	return delivery, nil
}

// FindByID loads a delivery with its attached orders.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Delivery, error) {
	var delivery models.Delivery
	err := r.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&delivery, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &delivery, nil
}

// List returns all deliveries with attached orders, oldest first.
func (r *Repository) List(ctx context.Context) ([]models.Delivery, error) {
	var rows []models.Delivery
	err := r.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// Save writes the delivery row back without touching associations.
func (r *Repository) Save(ctx context.Context, delivery *models.Delivery) (*models.Delivery, error) {
	if err := r.db.WithContext(ctx).Omit("Orders", "Driver", "Origin", "Destination").Save(delivery).Error; err != nil {
		return nil, err
	}
	return delivery, nil
}

// AttachOrders points the given orders at the delivery.
func (r *Repository) AttachOrders(ctx context.Context, deliveryID uint, orderIDs []uint) error {
	if len(orderIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id IN ?", orderIDs).
		Update("delivery_id", deliveryID).
		Error
}

// DetachOrdersExcept clears delivery_id on orders currently attached to the
// delivery but absent from keep.
func (r *Repository) DetachOrdersExcept(ctx context.Context, deliveryID uint, keep []uint) error {
	q := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("delivery_id = ?", deliveryID)
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	return q.Update("delivery_id", nil).Error
}

// ListAttachedOrderIDs returns the IDs of orders attached to the delivery.
func (r *Repository) ListAttachedOrderIDs(ctx context.Context, deliveryID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("delivery_id = ?", deliveryID).
		Order("id ASC").
		Pluck("id", &ids).
		Error
	return ids, err
}

// DeleteOrderLines removes the order items belonging to the delivery's orders.
func (r *Repository) DeleteOrderLines(ctx context.Context, deliveryID uint) error {
	return r.db.WithContext(ctx).
		Where("order_id IN (?)", r.db.Model(&models.Order{}).Select("id").Where("delivery_id = ?", deliveryID)).
		Delete(&models.OrderItem{}).
		Error
}

// DeleteOrders removes the orders attached to the delivery.
func (r *Repository) DeleteOrders(ctx context.Context, deliveryID uint) error {
	return r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID).
		Delete(&models.Order{}).
		Error
}

// Delete removes the delivery row and reports how many rows were affected.
func (r *Repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Delivery{})
	return res.RowsAffected, res.Error
}
