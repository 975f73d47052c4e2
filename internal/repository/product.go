package repository

import (
	"context"
	"errors"

	"fanvault/internal/cache"
	"fanvault/internal/models"

	"gorm.io/gorm"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	ListAll(ctx context.Context) ([]*models.Product, error)
	ListLive(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProducts(ctx)
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &product, nil
}

func (r *productRepository) ListAll(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return products, nil
}

// ListLive returns only non-archived products, cached since the storefront
// reads it on every visit.
func (r *productRepository) ListLive(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	err := cache.Aside(ctx, cache.ProductsLiveKey(), &products, cache.ProductsTTL, func() error {
		return r.db.WithContext(ctx).
			Where("is_archived = ?", false).
			Order("created_at DESC").
			Find(&products).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProducts(ctx)
	return nil
}
