package service

import (
	"context"
	"errors"

	"fanvault/internal/identity"
	"fanvault/internal/models"
	"fanvault/internal/repository"
)

type UserService struct {
	userRepo   repository.UserRepository
	adminEmail string
}

func NewUserService(userRepo repository.UserRepository, adminEmail string) *UserService {
	return &UserService{userRepo: userRepo, adminEmail: adminEmail}
}

// EnsureUser upserts the local user row for an identity-provider profile and
// returns it. The creator role is assigned by email match at this single
// point; nothing else in the system compares emails.
func (s *UserService) EnsureUser(ctx context.Context, profile *identity.Profile) (*models.User, error) {
	role := identity.Classify(profile, s.adminEmail)
	if role == identity.Anonymous {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}

	dbRole := models.RoleMember
	if role == identity.Admin {
		dbRole = models.RoleCreator
	}

	user, err := s.userRepo.GetByID(ctx, profile.ID)
	if err != nil {
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
			return nil, err
		}
		user = &models.User{
			ID:     profile.ID,
			Email:  profile.Email,
			Name:   profile.DisplayName(),
			Avatar: profile.Picture,
			Role:   dbRole,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	// refresh mutable profile fields on every login
	changed := false
	if name := profile.DisplayName(); name != "" && name != user.Name {
		user.Name = name
		changed = true
	}
	if profile.Picture != "" && profile.Picture != user.Avatar {
		user.Avatar = profile.Picture
		changed = true
	}
	if user.Role != dbRole && dbRole == models.RoleCreator {
		user.Role = dbRole
		changed = true
	}
	if changed {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
