package models

import (
	"time"
)

// Order is a purchased product. Rows are created by the billing webhook
// once the payment provider confirms the checkout session, so Price captures
// what was actually charged (cents) even if the product changes later.
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ProductID uint      `gorm:"not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Size      string    `gorm:"not null" json:"size"`
	Price     int64     `gorm:"not null" json:"price"`
	IsPaid    bool      `gorm:"not null;default:false" json:"is_paid"`
	SessionID string    `gorm:"uniqueIndex" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
