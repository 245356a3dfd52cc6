package deliveries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type driverLoader interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type locationLoader interface {
	FindByID(ctx context.Context, id uint) (*models.Location, error)
}

type orderLoader interface {
	FindByID(ctx context.Context, id uint) (*models.Order, error)
}

// Service exposes delivery management operations.
type Service interface {
	CreateDelivery(ctx context.Context, input CreateDeliveryInput) (*DeliveryDTO, error)
	GetDelivery(ctx context.Context, id uint) (*DeliveryDTO, error)
	ListDeliveries(ctx context.Context) ([]DeliveryDTO, error)
	UpdateDelivery(ctx context.Context, id uint, input UpdateDeliveryInput) (*DeliveryDTO, error)
	DeleteDelivery(ctx context.Context, id uint) error
}

type service struct {
	repo      *Repository
	tx        txRunner
	drivers   driverLoader
	locations locationLoader
	orders    orderLoader
	now       func() time.Time
}

// NewService constructs a delivery service instance.
func NewService(repo *Repository, tx txRunner, drivers driverLoader, locations locationLoader, orders orderLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("deliveries repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if drivers == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if locations == nil {
		return nil, fmt.Errorf("locations repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		drivers:   drivers,
		locations: locations,
		orders:    orders,
		now:       time.Now,
	}, nil
}

// CreateDelivery validates the driver and both endpoints, then creates the
// delivery and attaches the requested orders in one transaction.
func (s *service) CreateDelivery(ctx context.Context, input CreateDeliveryInput) (*DeliveryDTO, error) {
	if err := s.ensureDriver(ctx, input.DriverID); err != nil {
		return nil, err
	}
	if err := s.ensureLocation(ctx, input.OriginID, "origin"); err != nil {
		return nil, err
	}
	if err := s.ensureLocation(ctx, input.DestinationID, "destination"); err != nil {
		return nil, err
	}
	if err := s.ensureOrders(ctx, input.OrderIDs); err != nil {
		return nil, err
	}

	var deliveryID uint
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		delivery := &models.Delivery{
			DriverID:           input.DriverID,
			OriginID:           input.OriginID,
			DestinationID:      input.DestinationID,
			TargetDeliveryDate: input.TargetDeliveryDate,
			Status:             enums.DeliveryStatusScheduled,
		}
		created, err := txRepo.Create(ctx, delivery)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert delivery")
		}
		deliveryID = created.ID

		if err := txRepo.AttachOrders(ctx, created.ID, input.OrderIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: attach orders")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create delivery")
	}

	return s.reload(ctx, deliveryID)
}

// GetDelivery loads a single delivery with its order IDs.
func (s *service) GetDelivery(ctx context.Context, id uint) (*DeliveryDTO, error) {
	return s.reload(ctx, id)
}

// ListDeliveries returns every delivery, oldest first.
func (s *service) ListDeliveries(ctx context.Context) ([]DeliveryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list deliveries")
	}
	return fromModels(rows), nil
}

// UpdateDelivery replaces the provided fields on an existing delivery and
// bumps UpdatedAt. A missing delivery is reported, never skipped. When
// OrderIDs is provided the attached order set is fully replaced.
func (s *service) UpdateDelivery(ctx context.Context, id uint, input UpdateDeliveryInput) (*DeliveryDTO, error) {
	delivery, err := s.loadDelivery(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DriverID != nil {
		if err := s.ensureDriver(ctx, *input.DriverID); err != nil {
			return nil, err
		}
		delivery.DriverID = *input.DriverID
	}
	if input.OriginID != nil {
		if err := s.ensureLocation(ctx, *input.OriginID, "origin"); err != nil {
			return nil, err
		}
		delivery.OriginID = *input.OriginID
	}
	if input.DestinationID != nil {
		if err := s.ensureLocation(ctx, *input.DestinationID, "destination"); err != nil {
			return nil, err
		}
		delivery.DestinationID = *input.DestinationID
	}
	if input.Status != nil {
		parsed, err := enums.ParseDeliveryStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be one of scheduled, in_transit, delivered, delayed, failed")
		}
		delivery.Status = parsed
	}
	if input.TargetDeliveryDate != nil {
		delivery.TargetDeliveryDate = input.TargetDeliveryDate
	}
	if input.ActualDeliveryDate != nil {
		delivery.ActualDeliveryDate = input.ActualDeliveryDate
	}
	if input.OrderIDs != nil {
		if err := s.ensureOrders(ctx, *input.OrderIDs); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	delivery.UpdatedAt = &now
	delivery.Orders = nil

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if _, err := txRepo.Save(ctx, delivery); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update delivery")
		}
		if input.OrderIDs != nil {
			if err := txRepo.DetachOrdersExcept(ctx, delivery.ID, *input.OrderIDs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: detach orders")
			}
			if err := txRepo.AttachOrders(ctx, delivery.ID, *input.OrderIDs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: attach orders")
			}
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery")
	}

	return s.reload(ctx, id)
}

// DeleteDelivery removes the delivery, its orders, and their order items in
// one transaction. The FK cascade remains as backstop.
func (s *service) DeleteDelivery(ctx context.Context, id uint) error {
	if _, err := s.loadDelivery(ctx, id); err != nil {
		return err
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.DeleteOrderLines(ctx, id); err != nil {
			return err
		}
		if err := txRepo.DeleteOrders(ctx, id); err != nil {
			return err
		}
		_, err := txRepo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete delivery")
	}
	return nil
}

func (s *service) ensureDriver(ctx context.Context, id uint) error {
	driver, err := s.drivers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "driver does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load driver")
	}
	if !driver.IsDriver() {
		return pkgerrors.New(pkgerrors.CodeValidation, "user is not a driver")
	}
	return nil
}

func (s *service) ensureLocation(ctx context.Context, id uint, label string) error {
	if _, err := s.locations.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, label+" location does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load location")
	}
	return nil
}

func (s *service) ensureOrders(ctx context.Context, orderIDs []uint) error {
	for _, orderID := range orderIDs {
		if _, err := s.orders.FindByID(ctx, orderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("order %d does not exist", orderID))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
		}
	}
	return nil
}

func (s *service) loadDelivery(ctx context.Context, id uint) (*models.Delivery, error) {
	delivery, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load delivery")
	}
	return delivery, nil
}

func (s *service) reload(ctx context.Context, id uint) (*DeliveryDTO, error) {
	delivery, err := s.loadDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(delivery), nil
}
