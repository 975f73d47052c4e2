package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a storefront item. Price is stored in integer cents.
// Archived products stay in the catalog for order history but are hidden
// from the public storefront.
type Product struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	Image      string         `gorm:"not null" json:"image"`
	Price      int64          `gorm:"not null" json:"price"`
	IsArchived bool           `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
