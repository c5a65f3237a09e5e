package repository

import (
	"context"
	"time"

	"github.com/habitloop/backend/internal/models"
)

// HabitRepository defines the interface for habit data access
type HabitRepository interface {
	Create(ctx context.Context, habit *models.Habit) (*models.Habit, error)
	GetByID(ctx context.Context, id string) (*models.Habit, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Habit, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Habit, error)
	Delete(ctx context.Context, id string) error
}

// HabitLogRepository defines the interface for habit log data access.
// Lookup methods return (nil, nil) when no row matches, so callers can
// dispatch on found-versus-missing without inventing sentinel errors.
type HabitLogRepository interface {
	Create(ctx context.Context, log *models.HabitLog) (*models.HabitLog, error)
	// FindInRange returns the log whose date falls in [start, end), if any.
	FindInRange(ctx context.Context, habitID string, start, end time.Time) (*models.HabitLog, error)
	UpdateCompleted(ctx context.Context, id string, completed bool) (*models.HabitLog, error)
	// CountCompletedByWeekKey returns completed-log counts grouped by week
	// key in a single query. weekKeys narrows the grouping; nil means all
	// weeks the habit has logs for.
	CountCompletedByWeekKey(ctx context.Context, habitID string, weekKeys []string) (map[string]int64, error)
	// ListByHabit returns every log for the habit, newest first, including
	// completed=false rows (the streak walk needs explicitly-missed days).
	ListByHabit(ctx context.Context, habitID string) ([]models.HabitLog, error)
	// ListCompleted returns the completed logs only, newest first.
	ListCompleted(ctx context.Context, habitID string) ([]models.HabitLog, error)
	FindEarliestCompleted(ctx context.Context, habitID string) (*models.HabitLog, error)
	CountCompleted(ctx context.Context, habitID string) (int64, error)
	DeleteByHabit(ctx context.Context, habitID string) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateTimezone(ctx context.Context, id, timezone string) (*models.User, error)
}
