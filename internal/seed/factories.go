// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"fanvault/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample member. The ID mimics an
// identity provider subject so seeded users look like real sign-ins.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		ID:     fmt.Sprintf("seed|%s", gofakeit.UUID()),
		Email:  gofakeit.Email(),
		Name:   gofakeit.Name(),
		Avatar: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:   models.RoleMember,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a post for the given user with a
// realistic created_at spread over the last 90 days.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:    user.ID,
		Text:      gofakeit.Paragraph(1, 3, 8, "\n"),
		MediaURL:  fmt.Sprintf("https://picsum.photos/seed/%s/1080/1080", gofakeit.UUID()),
		MediaType: models.MediaTypeImage,
		IsPublic:  f.r.Float32() < 0.3,
	}

	if f.r.Float32() < 0.2 {
		post.MediaType = models.MediaTypeVideo
		post.MediaURL = fmt.Sprintf("https://cdn.fanvault.dev/videos/%s.mp4", gofakeit.UUID())
	}

	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment on the given post by the given user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   gofakeit.Sentence(8),
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on post and bumps the post counter
// in the same transaction so the counter stays equal to the row count.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		like := &models.Like{UserID: user.ID, PostID: post.ID}
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
}

// CreateProduct persists a storefront product.
func (f *Factory) CreateProduct(overrides ...func(*models.Product)) (*models.Product, error) {
	product := &models.Product{
		Name:  gofakeit.ProductName(),
		Image: fmt.Sprintf("https://picsum.photos/seed/merch-%s/600/600", gofakeit.UUID()),
		Price: int64(f.r.Intn(9000) + 1000),
	}

	for _, override := range overrides {
		override(product)
	}

	if err := f.db.Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}
