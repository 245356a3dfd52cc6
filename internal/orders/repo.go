package orders

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
)

// Repository exposes order and order item persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new order row.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads an order with its lines in insertion order.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&order, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns all orders with their lines, oldest first.
func (r *Repository) List(ctx context.Context) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// Save writes the order row back without touching its lines.
func (r *Repository) Save(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Omit("Items").Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// UpsertLine writes the quantity for the (order, item) pair, inserting the
// row on first sight and overwriting it afterwards. This is what keeps an
// order at one line per item no matter how often the same payload arrives.
func (r *Repository) UpsertLine(ctx context.Context, orderID, itemID uint, quantity int) (*models.OrderItem, error) {
	tx := r.db.WithContext(ctx)

	var line models.OrderItem
	err := tx.Where("order_id = ? AND item_id = ?", orderID, itemID).First(&line).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		line = models.OrderItem{OrderID: orderID, ItemID: itemID, Quantity: quantity}
		if err := tx.Create(&line).Error; err != nil {
			return nil, err
		}
		return &line, nil
	}

	line.Quantity = quantity
	if err := tx.Save(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// DeleteLines removes every line belonging to the order.
func (r *Repository) DeleteLines(ctx context.Context, orderID uint) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.OrderItem{}).
		Error
}

// Delete removes the order row and reports how many rows were affected.
func (r *Repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	return res.RowsAffected, res.Error
}

// CountLines returns the number of lines stored for the order.
func (r *Repository) CountLines(ctx context.Context, orderID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Count(&count).
		Error
	return count, err
}
