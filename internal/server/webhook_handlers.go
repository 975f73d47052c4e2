package server

import (
	"fanvault/internal/middleware"
	"fanvault/internal/payments"

	"github.com/gofiber/fiber/v2"
)

// BillingWebhook handles POST /api/webhooks/billing
//
// The billing provider signs the payload; signature verification happens in
// the payments layer. A non-2xx response makes the provider redeliver, so
// only verification failures are rejected.
func (s *Server) BillingWebhook(c *fiber.Ctx) error {
	signature := c.Get("Stripe-Signature")

	event, err := s.checkoutService.HandleWebhook(c.Context(), c.Body(), signature)
	if err != nil {
		middleware.WebhookEvents.WithLabelValues("error").Inc()
		return respondServiceError(c, err)
	}
	middleware.WebhookEvents.WithLabelValues("ok").Inc()

	// nudge the buyer's open tabs to re-fetch their entitlements
	if event != nil && (event.Type == payments.EventSubscriptionActive || event.Type == payments.EventSubscriptionCanceled) {
		s.publishUserEvent(event.UserID, EventSubscriptionSync, map[string]interface{}{
			"active": event.Type == payments.EventSubscriptionActive,
		})
	}

	return c.JSON(fiber.Map{"received": true})
}
