package service

import (
	"context"
	"fmt"
	"time"

	"github.com/habitloop/backend/internal/dates"
	"github.com/habitloop/backend/internal/logger"
	"github.com/habitloop/backend/internal/models"
	"github.com/habitloop/backend/internal/repository"
	"github.com/habitloop/backend/internal/week"
)

type habitService struct {
	habitRepo repository.HabitRepository
	logRepo   repository.HabitLogRepository
	userRepo  repository.UserRepository
	defaultTZ string
}

// NewHabitService creates a new habit service. defaultTZ is the IANA zone
// used for users that have not configured one.
func NewHabitService(habitRepo repository.HabitRepository, logRepo repository.HabitLogRepository, userRepo repository.UserRepository, defaultTZ string) HabitService {
	return &habitService{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		userRepo:  userRepo,
		defaultTZ: defaultTZ,
	}
}

func (s *habitService) CreateHabit(ctx context.Context, userID string, req *models.CreateHabitRequest) (*models.Habit, error) {
	// New habits go to the end of the user's list
	existing, err := s.habitRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get habits: %w", err)
	}

	habit := &models.Habit{
		UserID:       userID,
		Name:         req.Name,
		Emoji:        req.Emoji,
		Frequency:    req.Frequency,
		InversedGoal: req.InversedGoal,
		Order:        len(existing),
	}

	return s.habitRepo.Create(ctx, habit)
}

func (s *habitService) GetHabit(ctx context.Context, userID, habitID string) (*models.Habit, error) {
	return s.ownedHabit(ctx, userID, habitID)
}

func (s *habitService) GetUserHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	return s.habitRepo.GetByUserID(ctx, userID)
}

func (s *habitService) UpdateHabit(ctx context.Context, userID, habitID string, req *models.UpdateHabitRequest) (*models.Habit, error) {
	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Emoji != nil {
		fields["emoji"] = *req.Emoji
	}
	if req.Frequency != nil {
		fields["frequency"] = *req.Frequency
	}
	if req.InversedGoal != nil {
		fields["inversed_goal"] = *req.InversedGoal
	}
	if req.Order != nil {
		fields["order"] = *req.Order
	}
	if req.Archived != nil {
		fields["archived"] = *req.Archived
	}

	if len(fields) == 0 {
		return s.habitRepo.GetByID(ctx, habitID)
	}

	return s.habitRepo.Update(ctx, habitID, fields)
}

func (s *habitService) ReorderHabits(ctx context.Context, userID string, habitIDs []string) error {
	habits, err := s.habitRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}

	owned := make(map[string]bool, len(habits))
	for _, h := range habits {
		owned[h.ID] = true
	}

	for i, id := range habitIDs {
		if !owned[id] {
			return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
		}
		if _, err := s.habitRepo.Update(ctx, id, map[string]interface{}{"order": i}); err != nil {
			return fmt.Errorf("failed to reorder habit %s: %w", id, err)
		}
	}

	return nil
}

func (s *habitService) DeleteHabit(ctx context.Context, userID, habitID string) error {
	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return err
	}

	// Logs go first so a failed habit delete never strands orphaned rows
	if err := s.logRepo.DeleteByHabit(ctx, habitID); err != nil {
		return err
	}

	return s.habitRepo.Delete(ctx, habitID)
}

func (s *habitService) ToggleLog(ctx context.Context, userID, habitID string, at time.Time) (*models.HabitLog, error) {
	log := logger.Ctx(ctx)

	habit, err := s.ownedHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	tz, err := s.ownerTimezone(ctx, habit.UserID)
	if err != nil {
		return nil, err
	}

	start, end, err := dates.DayBounds(at, tz)
	if err != nil {
		return nil, err
	}

	existing, err := s.logRepo.FindInRange(ctx, habitID, start, end)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
		}

		log.Debug("no log for day, creating",
			logger.String("habit_id", habitID),
			logger.String("day_start", start.Format(time.RFC3339)),
		)

		// The week key is derived from the owner's local date, the same
		// calendar day the bounds describe
		return s.logRepo.Create(ctx, &models.HabitLog{
			HabitID:   habitID,
			Date:      at,
			Completed: true,
			WeekKey:   week.Key(at.In(loc)),
		})
	}

	log.Debug("flipping existing log",
		logger.String("habit_id", habitID),
		logger.String("log_id", existing.ID),
		logger.Bool("completed", !existing.Completed),
	)

	return s.logRepo.UpdateCompleted(ctx, existing.ID, !existing.Completed)
}

func (s *habitService) LoggedOn(ctx context.Context, userID, habitID string, at time.Time) (*models.HabitLog, error) {
	habit, err := s.ownedHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	tz, err := s.ownerTimezone(ctx, habit.UserID)
	if err != nil {
		return nil, err
	}

	start, end, err := dates.DayBounds(at, tz)
	if err != nil {
		return nil, err
	}

	found, err := s.logRepo.FindInRange(ctx, habitID, start, end)
	if err != nil {
		return nil, err
	}

	if found == nil || !found.Completed {
		return nil, nil
	}

	return found, nil
}

// ownedHabit loads the habit and verifies ownership. A habit belonging to a
// different user is reported as not found, not forbidden, so habit IDs leak
// nothing across accounts.
func (s *habitService) ownedHabit(ctx context.Context, userID, habitID string) (*models.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}

	if habit == nil || habit.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrHabitNotFound, habitID)
	}

	return habit, nil
}

func (s *habitService) ownerTimezone(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if user == nil || user.Timezone == "" {
		return s.defaultTZ, nil
	}

	return user.Timezone, nil
}
