package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/webhook"

	"fanvault/internal/models"
)

// StripeProvider implements Provider against Stripe hosted checkout.
type StripeProvider struct {
	webhookSecret string
}

// NewStripeProvider configures the global Stripe client. secretKey is the
// API key, webhookSecret signs incoming webhook payloads.
func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{webhookSecret: webhookSecret}
}

func (p *StripeProvider) CreateProductCheckout(ctx context.Context, in ProductCheckout) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(in.UnitAmount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:   stripe.String(in.ProductName),
						Images: stripe.StringSlice([]string{in.ImageURL}),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("user_id", in.UserID)
	params.AddMetadata("product_id", fmt.Sprintf("%d", in.ProductID))
	params.AddMetadata("size", in.Size)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create product checkout: %w", err)
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

func (p *StripeProvider) CreateSubscriptionCheckout(ctx context.Context, in SubscriptionCheckout) (*Session, error) {
	interval := "month"
	if in.Plan == models.PlanYearly {
		interval = "year"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:    stripe.String(in.SuccessURL),
		CancelURL:     stripe.String(in.CancelURL),
		CustomerEmail: stripe.String(in.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(in.UnitAmount),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(interval),
					},
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Subscription (%s)", in.Plan)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"user_id": in.UserID,
				"plan":    in.Plan,
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("user_id", in.UserID)
	params.AddMetadata("plan", in.Plan)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create subscription checkout: %w", err)
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

// ParseWebhook verifies the signature and maps the Stripe event onto the
// domain event. Event types the reconciliation path does not care about come
// back as nil with no error so the handler can ack them.
func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (*Event, error) {
	stripeEvent, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}

	switch stripeEvent.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(stripeEvent.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		return eventFromSession(&sess)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(stripeEvent.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		return &Event{
			Type:           EventSubscriptionCanceled,
			UserID:         sub.Metadata["user_id"],
			Plan:           sub.Metadata["plan"],
			SubscriptionID: sub.ID,
		}, nil
	}

	return nil, nil
}

func eventFromSession(sess *stripe.CheckoutSession) (*Event, error) {
	userID := sess.Metadata["user_id"]
	if userID == "" {
		return nil, fmt.Errorf("checkout session %s missing user_id metadata", sess.ID)
	}

	if sess.Mode == stripe.CheckoutSessionModeSubscription {
		ev := &Event{
			Type:      EventSubscriptionActive,
			SessionID: sess.ID,
			UserID:    userID,
			Plan:      sess.Metadata["plan"],
		}
		if sess.Subscription != nil {
			ev.SubscriptionID = sess.Subscription.ID
			if sess.Subscription.CurrentPeriodStart > 0 {
				ev.PeriodStart = time.Unix(sess.Subscription.CurrentPeriodStart, 0)
				ev.PeriodEnd = time.Unix(sess.Subscription.CurrentPeriodEnd, 0)
			}
		}
		return ev, nil
	}

	var productID uint
	if raw := sess.Metadata["product_id"]; raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &productID); err != nil {
			return nil, fmt.Errorf("checkout session %s has bad product_id %q", sess.ID, raw)
		}
	}

	return &Event{
		Type:        EventOrderCompleted,
		SessionID:   sess.ID,
		UserID:      userID,
		ProductID:   productID,
		Size:        sess.Metadata["size"],
		AmountTotal: sess.AmountTotal,
	}, nil
}
