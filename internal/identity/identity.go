// Package identity classifies externally issued identities for authorization
// decisions. The service never verifies provider signatures itself; it trusts
// the profile handed over by the identity provider callback.
package identity

import (
	"strings"
)

// Role is the authorization class of a requester.
type Role int

const (
	// Anonymous is a requester with no resolved identity.
	Anonymous Role = iota
	// Authenticated is a known user without creator privileges.
	Authenticated
	// Admin is the creator account.
	Admin
)

func (r Role) String() string {
	switch r {
	case Admin:
		return "admin"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Profile is the identity payload supplied by the external provider.
type Profile struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// DisplayName joins the given and family name the way the original signup
// flow stored it; a missing family name yields just the given name.
func (p Profile) DisplayName() string {
	if p.FamilyName == "" {
		return p.GivenName
	}
	return p.GivenName + " " + p.FamilyName
}

// Classify maps a resolved identity (or none) to its authorization role.
// Classification is recomputed per call; no session state is held here.
func Classify(p *Profile, adminEmail string) Role {
	if p == nil || p.ID == "" {
		return Anonymous
	}
	if adminEmail != "" && strings.EqualFold(p.Email, adminEmail) {
		return Admin
	}
	return Authenticated
}
