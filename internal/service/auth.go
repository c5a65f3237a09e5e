package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/habitloop/backend/internal/logger"
	"github.com/habitloop/backend/internal/models"
	"github.com/habitloop/backend/internal/repository"
	"github.com/habitloop/backend/pkg/supabase"
)

type authService struct {
	client   *supabase.Client
	userRepo repository.UserRepository
	log      logger.Logger
}

// NewAuthService creates a new auth service backed by Supabase auth.
func NewAuthService(client *supabase.Client, userRepo repository.UserRepository, log logger.Logger) AuthService {
	return &authService{
		client:   client,
		userRepo: userRepo,
		log:      log,
	}
}

// session mirrors the Supabase auth token response
type session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	body, err := s.client.SignInWithPassword(req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return s.toAuthResponse(ctx, body)
}

func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	body, err := s.client.SignUp(req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}

	resp, err := s.toAuthResponse(ctx, body)
	if err != nil {
		return nil, err
	}

	// Provision the profile row eagerly so day math has a timezone record
	// to attach to. A conflict here just means the row already exists.
	if _, err := s.userRepo.Create(ctx, &models.User{
		ID:    resp.User.ID,
		Email: resp.User.Email,
	}); err != nil {
		s.log.Warn("failed to provision user profile",
			logger.String("user_id", resp.User.ID),
			logger.Err(err),
		)
	}

	return resp, nil
}

func (s *authService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	return user, nil
}

func (s *authService) toAuthResponse(ctx context.Context, body []byte) (*models.AuthResponse, error) {
	var sess session
	if err := json.Unmarshal(body, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", err)
	}

	resp := &models.AuthResponse{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		User: models.User{
			ID:    sess.User.ID,
			Email: sess.User.Email,
		},
	}

	// Prefer the stored profile when one exists, it carries the timezone
	if stored, err := s.userRepo.GetByID(ctx, sess.User.ID); err == nil && stored != nil {
		resp.User = *stored
	}

	return resp, nil
}
