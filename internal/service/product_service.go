package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	"fanvault/internal/models"
	"fanvault/internal/repository"
)

type ProductService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

type CreateProductInput struct {
	UserID string
	Name   string
	Image  string
	// Price is the dollar amount as entered, e.g. "49.99".
	Price string
}

func NewProductService(productRepo repository.ProductRepository, userRepo repository.UserRepository) *ProductService {
	return &ProductService{productRepo: productRepo, userRepo: userRepo}
}

func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if err := s.requireCreator(ctx, in.UserID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if strings.TrimSpace(in.Image) == "" {
		return nil, models.NewValidationError("Image is required")
	}

	cents, err := parsePriceCents(in.Price)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:  in.Name,
		Image: in.Image,
		Price: cents,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts returns the full catalog for the creator and only live
// products for everyone else.
func (s *ProductService) ListProducts(ctx context.Context, viewerID string) ([]*models.Product, error) {
	if viewerID != "" {
		if viewer, err := s.userRepo.GetByID(ctx, viewerID); err == nil && viewer.IsCreator() {
			return s.productRepo.ListAll(ctx)
		}
	}
	return s.productRepo.ListLive(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *ProductService) ToggleArchive(ctx context.Context, userID string, productID uint) (*models.Product, error) {
	if err := s.requireCreator(ctx, userID); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.IsArchived = !product.IsArchived
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) requireCreator(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.NewUnauthorizedError("Unauthorized")
	}
	if !user.IsCreator() {
		return models.NewUnauthorizedError("Only the creator can manage products")
	}
	return nil
}

// parsePriceCents converts a dollar string to integer cents. Prices are
// stored in cents so no float ever reaches the database or the billing
// provider.
func parsePriceCents(price string) (int64, error) {
	price = strings.TrimSpace(price)
	if price == "" {
		return 0, models.NewValidationError("Price is required")
	}
	f, err := strconv.ParseFloat(price, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, models.NewValidationError("Price must be a number")
	}
	cents := int64(math.Round(f * 100))
	if cents <= 0 {
		return 0, models.NewValidationError("Price must be greater than zero")
	}
	return cents, nil
}
