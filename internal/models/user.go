// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role values for User.Role. There is exactly one creator per deployment;
// the role is assigned when the configured admin email first authenticates.
const (
	RoleMember  = "member"
	RoleCreator = "creator"
)

// User represents a viewer or the creator. The ID is issued by the external
// identity provider and stored verbatim; users are never deleted.
type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	Role         string    `gorm:"not null;default:member" json:"role"`
	IsSubscribed bool      `gorm:"not null;default:false" json:"is_subscribed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// IsCreator reports whether the user owns the published content.
func (u *User) IsCreator() bool {
	return u.Role == RoleCreator
}
