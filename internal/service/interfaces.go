package service

import (
	"context"
	"errors"
	"time"

	"github.com/habitloop/backend/internal/models"
)

// Sentinel errors surfaced by the services. Handlers map these to problem
// details responses.
var (
	ErrHabitNotFound   = errors.New("habit not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidTimezone = errors.New("invalid timezone")
)

// HabitService defines the interface for habit business logic, including the
// per-day log toggle.
type HabitService interface {
	CreateHabit(ctx context.Context, userID string, req *models.CreateHabitRequest) (*models.Habit, error)
	GetHabit(ctx context.Context, userID, habitID string) (*models.Habit, error)
	GetUserHabits(ctx context.Context, userID string) ([]models.Habit, error)
	UpdateHabit(ctx context.Context, userID, habitID string, req *models.UpdateHabitRequest) (*models.Habit, error)
	ReorderHabits(ctx context.Context, userID string, habitIDs []string) error
	DeleteHabit(ctx context.Context, userID, habitID string) error

	// ToggleLog flips the habit's completion state for the calendar day that
	// `at` falls on in the owner's timezone, creating the day's log row on
	// first use.
	ToggleLog(ctx context.Context, userID, habitID string, at time.Time) (*models.HabitLog, error)
	// LoggedOn reports the completed log for `at`'s calendar day, if any.
	LoggedOn(ctx context.Context, userID, habitID string, at time.Time) (*models.HabitLog, error)
}

// StatsService defines the interface for habit log analytics. These back the
// public widget endpoints, so they take habit IDs rather than a session user.
type StatsService interface {
	CompletionCount(ctx context.Context, habitID string) (int64, error)
	CurrentStreak(ctx context.Context, habitID string) (*models.StreakResult, error)
	GoalStats(ctx context.Context, habitID string, frequency int) (*models.GoalStats, error)
	WeeklyHistogram(ctx context.Context, habitIDs []string) (map[string][]int, error)
	WeeklyCount(ctx context.Context, habitID string, weeks int) ([]models.WeekCount, error)
}

// UserService defines the interface for user configuration
type UserService interface {
	GetConfiguration(ctx context.Context, userID string) (*models.User, error)
	UpdateTimezone(ctx context.Context, userID, timezone string) (*models.User, error)
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}
