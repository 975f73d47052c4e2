package models

import (
	"time"
)

// Subscription plans offered at checkout.
const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// Subscription tracks a viewer's paid access window. The billing webhook
// creates and updates rows and mirrors the active state onto
// User.IsSubscribed, which is the flag the engagement gate reads.
type Subscription struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Plan       string    `gorm:"not null" json:"plan"`
	ProviderID string    `gorm:"uniqueIndex" json:"-"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
