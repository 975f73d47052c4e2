package repository

import (
	"context"
	"errors"

	"fanvault/internal/models"

	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data operations. Orders are
// written by the billing webhook, so Create must tolerate redelivery.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order, treating a replayed checkout session as a no-op.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if isUniqueConstraintError(err) {
			existing, lookupErr := r.GetBySessionID(ctx, order.SessionID)
			if lookupErr != nil {
				return lookupErr
			}
			*order = *existing
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *orderRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).First(&order, "session_id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Order", sessionID)
		}
		return nil, models.NewInternalError(err)
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	var orders []*models.Order
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return orders, nil
}
