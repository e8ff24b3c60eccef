package service

import (
	"context"
	"errors"

	"travelex/internal/domain"
	"travelex/internal/repository"
)

// AccessService answers capability questions about callers.
type AccessService struct {
	userRepo repository.UserRepository
}

// NewAccessService creates a new AccessService.
func NewAccessService(userRepo repository.UserRepository) *AccessService {
	return &AccessService{userRepo: userRepo}
}

// Caller resolves the user behind a caller ID. Unknown IDs are unauthenticated.
func (s *AccessService) Caller(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// IsAdmin reports whether the user has the admin role.
func (s *AccessService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.Caller(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// RequireAdmin returns ErrForbidden unless the user is an admin.
func (s *AccessService) RequireAdmin(ctx context.Context, userID string) error {
	isAdmin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrForbidden
	}
	return nil
}

// CanAccess returns nil when the user owns the resource or is an admin.
func (s *AccessService) CanAccess(ctx context.Context, userID, ownerID string) error {
	user, err := s.Caller(ctx, userID)
	if err != nil {
		return err
	}
	if user.ID == ownerID || user.IsAdmin() {
		return nil
	}
	return ErrForbidden
}
