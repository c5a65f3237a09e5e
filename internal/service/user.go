package service

import (
	"context"
	"fmt"
	"time"

	"github.com/habitloop/backend/internal/models"
	"github.com/habitloop/backend/internal/repository"
)

type userService struct {
	userRepo  repository.UserRepository
	defaultTZ string
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, defaultTZ string) UserService {
	return &userService{
		userRepo:  userRepo,
		defaultTZ: defaultTZ,
	}
}

func (s *userService) GetConfiguration(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	if user.Timezone == "" {
		user.Timezone = s.defaultTZ
	}

	return user, nil
}

func (s *userService) UpdateTimezone(ctx context.Context, userID, timezone string) (*models.User, error) {
	// Reject zone names the runtime cannot resolve before persisting
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, timezone)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	return s.userRepo.UpdateTimezone(ctx, userID, timezone)
}
