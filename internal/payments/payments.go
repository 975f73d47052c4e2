// Package payments abstracts the hosted-checkout billing provider. The core
// never sees card data; it creates checkout sessions, redirects the buyer to
// the provider, and reconciles state from signed webhook events.
package payments

import (
	"context"
	"time"
)

// Event types the reconciliation path understands. Anything else is
// acknowledged and ignored.
const (
	EventOrderCompleted       = "order.completed"
	EventSubscriptionActive   = "subscription.active"
	EventSubscriptionCanceled = "subscription.canceled"
)

// Session is a hosted checkout session the buyer is redirected to.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ProductCheckout describes a one-time merch purchase.
type ProductCheckout struct {
	UserID      string
	ProductID   uint
	ProductName string
	ImageURL    string
	// UnitAmount is the price in cents.
	UnitAmount int64
	Size       string
	SuccessURL string
	CancelURL  string
}

// SubscriptionCheckout describes a recurring subscription purchase.
type SubscriptionCheckout struct {
	UserID string
	Email  string
	// Plan is models.PlanMonthly or models.PlanYearly.
	Plan string
	// UnitAmount is the recurring price in cents.
	UnitAmount int64
	SuccessURL string
	CancelURL  string
}

// Event is a provider webhook translated into domain terms.
type Event struct {
	Type      string
	SessionID string
	UserID    string

	// order fields
	ProductID   uint
	Size        string
	AmountTotal int64

	// subscription fields
	Plan           string
	SubscriptionID string
	PeriodStart    time.Time
	PeriodEnd      time.Time
}

// Provider is the billing integration point. Implementations must verify
// webhook signatures before returning an Event.
type Provider interface {
	CreateProductCheckout(ctx context.Context, in ProductCheckout) (*Session, error)
	CreateSubscriptionCheckout(ctx context.Context, in SubscriptionCheckout) (*Session, error)
	ParseWebhook(payload []byte, signature string) (*Event, error)
}
