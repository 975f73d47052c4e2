package server

import (
	"fanvault/internal/middleware"
	"fanvault/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateProductCheckout handles POST /api/checkout
func (s *Server) CreateProductCheckout(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req struct {
		ProductID uint   `json:"product_id"`
		Size      string `json:"size"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ProductID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("product_id is required"))
	}

	session, err := s.checkoutService.CreateProductCheckout(c.Context(), userID, req.ProductID, req.Size)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.CheckoutSessions.WithLabelValues("product").Inc()
	return c.JSON(fiber.Map{"url": session.URL})
}

// CreateSubscriptionCheckout handles POST /api/subscriptions/checkout
func (s *Server) CreateSubscriptionCheckout(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req struct {
		Plan string `json:"plan"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	session, err := s.checkoutService.CreateSubscriptionCheckout(c.Context(), userID, req.Plan)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.CheckoutSessions.WithLabelValues("subscription").Inc()
	return c.JSON(fiber.Map{"url": session.URL})
}

// GetMyOrders handles GET /api/orders/me
func (s *Server) GetMyOrders(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	orders, err := s.checkoutService.ListOrders(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(orders)
}
