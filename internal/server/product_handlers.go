package server

import (
	"fanvault/internal/models"
	"fanvault/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProducts handles GET /api/products
func (s *Server) GetProducts(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)

	products, err := s.productService.ListProducts(c.Context(), viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(products)
}

// GetProduct handles GET /api/products/:id
func (s *Server) GetProduct(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	product, err := s.productService.GetProduct(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(product)
}

// CreateProduct handles POST /api/products
func (s *Server) CreateProduct(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req struct {
		Name  string `json:"name"`
		Image string `json:"image"`
		Price string `json:"price"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	product, err := s.productService.CreateProduct(c.Context(), service.CreateProductInput{
		UserID: userID,
		Name:   req.Name,
		Image:  req.Image,
		Price:  req.Price,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// ToggleProductArchive handles POST /api/products/:id/archive
func (s *Server) ToggleProductArchive(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	product, err := s.productService.ToggleArchive(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(product)
}
