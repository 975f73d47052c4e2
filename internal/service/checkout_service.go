package service

import (
	"context"
	"time"

	"fanvault/internal/models"
	"fanvault/internal/observability"
	"fanvault/internal/payments"
	"fanvault/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// merch sizes accepted at checkout
var validSizes = map[string]bool{"S": true, "M": true, "L": true, "XL": true}

type CheckoutService struct {
	provider    payments.Provider
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	subRepo     repository.SubscriptionRepository
	userRepo    repository.UserRepository
	cfg         CheckoutConfig
}

// CheckoutConfig carries the prices and redirect targets for hosted checkout.
type CheckoutConfig struct {
	MonthlyPriceCents int64
	YearlyPriceCents  int64
	SuccessURL        string
	CancelURL         string
}

func NewCheckoutService(
	provider payments.Provider,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	cfg CheckoutConfig,
) *CheckoutService {
	return &CheckoutService{
		provider:    provider,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		subRepo:     subRepo,
		userRepo:    userRepo,
		cfg:         cfg,
	}
}

func (s *CheckoutService) CreateProductCheckout(ctx context.Context, userID string, productID uint, size string) (*payments.Session, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}

	if !validSizes[size] {
		return nil, models.NewValidationError("Size must be one of S, M, L, XL")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.IsArchived {
		return nil, models.NewValidationError("Product is no longer available")
	}

	return s.provider.CreateProductCheckout(ctx, payments.ProductCheckout{
		UserID:      userID,
		ProductID:   product.ID,
		ProductName: product.Name,
		ImageURL:    product.Image,
		UnitAmount:  product.Price,
		Size:        size,
		SuccessURL:  s.cfg.SuccessURL,
		CancelURL:   s.cfg.CancelURL,
	})
}

func (s *CheckoutService) CreateSubscriptionCheckout(ctx context.Context, userID, plan string) (*payments.Session, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}

	var amount int64
	switch plan {
	case models.PlanMonthly:
		amount = s.cfg.MonthlyPriceCents
	case models.PlanYearly:
		amount = s.cfg.YearlyPriceCents
	default:
		return nil, models.NewValidationError("Plan must be monthly or yearly")
	}

	if user.IsSubscribed {
		return nil, models.NewValidationError("You already have an active subscription")
	}

	return s.provider.CreateSubscriptionCheckout(ctx, payments.SubscriptionCheckout{
		UserID:     userID,
		Email:      user.Email,
		Plan:       plan,
		UnitAmount: amount,
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  s.cfg.CancelURL,
	})
}

// HandleWebhook verifies and applies one billing event, returning the event
// it applied (nil for event types the reconciliation path ignores). Unknown
// event types are acknowledged without effect; redelivered events are
// absorbed by the idempotent writes underneath.
func (s *CheckoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*payments.Event, error) {
	span, ctx := observability.NewSpan(ctx, "checkout.HandleWebhook")
	defer span.End()

	event, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		span.SetError(err)
		return nil, models.NewValidationError("Invalid webhook payload")
	}
	if event == nil {
		return nil, nil
	}
	span.AddAttributes(attribute.String("billing.event_type", event.Type))

	switch event.Type {
	case payments.EventOrderCompleted:
		order := &models.Order{
			UserID:    event.UserID,
			ProductID: event.ProductID,
			Size:      event.Size,
			Price:     event.AmountTotal,
			IsPaid:    true,
			SessionID: event.SessionID,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return nil, err
		}
		return event, nil

	case payments.EventSubscriptionActive:
		start, end := event.PeriodStart, event.PeriodEnd
		if start.IsZero() {
			start = time.Now()
			end = subscriptionEnd(start, event.Plan)
		}
		providerID := event.SubscriptionID
		if providerID == "" {
			providerID = event.SessionID
		}
		sub := &models.Subscription{
			UserID:     event.UserID,
			Plan:       event.Plan,
			ProviderID: providerID,
			StartDate:  start,
			EndDate:    end,
		}
		if err := s.subRepo.Upsert(ctx, sub); err != nil {
			return nil, err
		}
		if err := s.userRepo.SetSubscribed(ctx, event.UserID, true); err != nil {
			return nil, err
		}
		return event, nil

	case payments.EventSubscriptionCanceled:
		if err := s.userRepo.SetSubscribed(ctx, event.UserID, false); err != nil {
			return nil, err
		}
		return event, nil
	}

	return nil, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

func subscriptionEnd(start time.Time, plan string) time.Time {
	if plan == models.PlanYearly {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}
