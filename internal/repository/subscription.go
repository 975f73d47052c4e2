package repository

import (
	"context"
	"errors"

	"fanvault/internal/models"

	"gorm.io/gorm"
)

// SubscriptionRepository defines the interface for subscription data
// operations. The billing provider is the source of truth; Upsert keys on the
// provider's subscription id so webhook redelivery stays idempotent.
type SubscriptionRepository interface {
	Upsert(ctx context.Context, sub *models.Subscription) error
	GetByUser(ctx context.Context, userID string) (*models.Subscription, error)
	GetByProviderID(ctx context.Context, providerID string) (*models.Subscription, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Upsert(ctx context.Context, sub *models.Subscription) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Subscription
		err := tx.First(&existing, "provider_id = ?", sub.ProviderID).Error
		switch {
		case err == nil:
			sub.ID = existing.ID
			sub.CreatedAt = existing.CreatedAt
			return tx.Save(sub).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(sub).Error
		default:
			return err
		}
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *subscriptionRepository) GetByUser(ctx context.Context, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Subscription", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetByProviderID(ctx context.Context, providerID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).First(&sub, "provider_id = ?", providerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Subscription", providerID)
		}
		return nil, models.NewInternalError(err)
	}
	return &sub, nil
}
