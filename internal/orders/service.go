package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type locationResolver interface {
	FindByName(ctx context.Context, name string) (*models.Location, error)
}

type itemLoader interface {
	FindByID(ctx context.Context, id uint) (*models.Item, error)
}

// Service exposes the order composition workflow.
type Service interface {
	CreateOrderWithItems(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, id uint) (*OrderDTO, error)
	ListOrders(ctx context.Context) ([]OrderDTO, error)
	UpdateOrder(ctx context.Context, id uint, input UpdateOrderInput) (*OrderDTO, error)
	DeleteOrder(ctx context.Context, id uint) error
}

type service struct {
	repo      *Repository
	tx        txRunner
	locations locationResolver
	items     itemLoader
	now       func() time.Time
}

// NewService constructs the order composition service.
func NewService(repo *Repository, tx txRunner, locations locationResolver, items itemLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if locations == nil {
		return nil, fmt.Errorf("locations repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("items repository required")
	}
	return &service{repo: repo, tx: tx, locations: locations, items: items, now: time.Now}, nil
}

// CreateOrderWithItems resolves both endpoints by exact location name, then
// creates the pending order and its lines in one transaction. Any invalid
// line aborts the whole create; no partial order is ever visible.
func (s *service) CreateOrderWithItems(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	origin, destination, err := s.resolveEndpoints(ctx, input.OriginName, input.DestinationName)
	if err != nil {
		return nil, err
	}
	if err := validateLines(input.Items); err != nil {
		return nil, err
	}

	status := enums.OrderStatusPending
	if input.Status != nil {
		parsed, err := parseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	var orderID uint
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		order := &models.Order{
			OriginID:      origin.ID,
			DestinationID: destination.ID,
			OrderDate:     s.now().UTC(),
			Status:        status,
		}
		created, err := txRepo.Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}
		orderID = created.ID

		return s.applyLines(ctx, txRepo, created.ID, input.Items)
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	return s.reload(ctx, orderID)
}

// GetOrder loads a single order with its lines.
func (s *service) GetOrder(ctx context.Context, id uint) (*OrderDTO, error) {
	return s.reload(ctx, id)
}

// ListOrders returns every order, oldest first. No orders is an empty list,
// not an error.
func (s *service) ListOrders(ctx context.Context) ([]OrderDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	return fromModels(rows), nil
}

// UpdateOrder re-resolves the endpoints, overwrites the order header, and
// upserts each line keyed on (order, item). Applying the same payload twice
// leaves the order unchanged.
func (s *service) UpdateOrder(ctx context.Context, id uint, input UpdateOrderInput) (*OrderDTO, error) {
	origin, destination, err := s.resolveEndpoints(ctx, input.OriginName, input.DestinationName)
	if err != nil {
		return nil, err
	}
	if err := validateLines(input.Items); err != nil {
		return nil, err
	}

	var status *enums.OrderStatus
	if input.Status != nil {
		parsed, err := parseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		status = &parsed
	}

	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		order.OriginID = origin.ID
		order.DestinationID = destination.ID
		if status != nil {
			order.Status = *status
		}
		if _, err := txRepo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order")
		}

		return s.applyLines(ctx, txRepo, order.ID, input.Items)
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}

	return s.reload(ctx, id)
}

// DeleteOrder removes the order and its lines in one transaction. The lines
// are deleted explicitly; the FK cascade stays as a backstop.
func (s *service) DeleteOrder(ctx context.Context, id uint) error {
	if _, err := s.loadOrder(ctx, id); err != nil {
		return err
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.DeleteLines(ctx, id); err != nil {
			return err
		}
		_, err := txRepo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete order")
	}
	return nil
}

func (s *service) resolveEndpoints(ctx context.Context, originName, destinationName string) (*models.Location, *models.Location, error) {
	origin, err := s.resolveLocation(ctx, originName)
	if err != nil {
		return nil, nil, err
	}
	destination, err := s.resolveLocation(ctx, destinationName)
	if err != nil {
		return nil, nil, err
	}
	return origin, destination, nil
}

func (s *service) resolveLocation(ctx context.Context, name string) (*models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidEndpoints()
	}
	location, err := s.locations.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidEndpoints()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve location")
	}
	return location, nil
}

func (s *service) applyLines(ctx context.Context, txRepo *Repository, orderID uint, lines []OrderLineInput) error {
	for _, line := range lines {
		if _, err := s.items.FindByID(ctx, line.ItemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("item %d does not exist", line.ItemID))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
		}
		if _, err := txRepo.UpsertLine(ctx, orderID, line.ItemID, line.Quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert order line")
		}
	}
	return nil
}

func (s *service) loadOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	return order, nil
}

func (s *service) reload(ctx context.Context, id uint) (*OrderDTO, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func validateLines(lines []OrderLineInput) error {
	for _, line := range lines {
		if line.Quantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
		}
	}
	return nil
}

func parseStatus(raw string) (enums.OrderStatus, error) {
	parsed, err := enums.ParseOrderStatus(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "status must be one of pending, shipped, delivered, cancelled")
	}
	return parsed, nil
}

func invalidEndpoints() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid origin or destination")
}
