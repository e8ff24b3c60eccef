package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"travelex/internal/domain"
	"travelex/internal/repository"
)

// UserService handles user registration and lookup.
type UserService struct {
	userRepo repository.UserRepository
	access   *AccessService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, access *AccessService) *UserService {
	return &UserService{userRepo: userRepo, access: access}
}

// RegisterRequest contains the parameters for registering a user.
type RegisterRequest struct {
	Name  string
	Email string
}

// Register creates a customer account.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return nil, ErrInvalidEmail
	}

	user := &domain.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: strings.ToLower(addr.Address),
		Role:  domain.UserRoleCustomer,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Get returns a user visible to the caller.
func (s *UserService) Get(ctx context.Context, callerID, userID string) (*domain.User, error) {
	if err := s.access.CanAccess(ctx, callerID, userID); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// List returns all users. Admin only.
func (s *UserService) List(ctx context.Context, callerID string) ([]*domain.User, error) {
	if err := s.access.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	return s.userRepo.GetAll(ctx)
}
