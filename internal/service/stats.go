package service

import (
	"context"
	"fmt"
	"time"

	"github.com/habitloop/backend/internal/dates"
	"github.com/habitloop/backend/internal/models"
	"github.com/habitloop/backend/internal/repository"
	"github.com/habitloop/backend/internal/week"
)

type statsService struct {
	habitRepo repository.HabitRepository
	logRepo   repository.HabitLogRepository
	userRepo  repository.UserRepository
	defaultTZ string

	// now is swappable in tests
	now func() time.Time
}

// NewStatsService creates a new stats service. defaultTZ is the IANA zone
// used for habit owners that have not configured one.
func NewStatsService(habitRepo repository.HabitRepository, logRepo repository.HabitLogRepository, userRepo repository.UserRepository, defaultTZ string) StatsService {
	return &statsService{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		userRepo:  userRepo,
		defaultTZ: defaultTZ,
		now:       time.Now,
	}
}

func (s *statsService) CompletionCount(ctx context.Context, habitID string) (int64, error) {
	if _, err := s.habit(ctx, habitID); err != nil {
		return 0, err
	}

	return s.logRepo.CountCompleted(ctx, habitID)
}

func (s *statsService) CurrentStreak(ctx context.Context, habitID string) (*models.StreakResult, error) {
	habit, err := s.habit(ctx, habitID)
	if err != nil {
		return nil, err
	}

	loc, err := s.ownerLocation(ctx, habit.UserID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}

	result := computeStreak(logs, s.now(), loc)
	return &result, nil
}

func (s *statsService) GoalStats(ctx context.Context, habitID string, frequency int) (*models.GoalStats, error) {
	habit, err := s.habit(ctx, habitID)
	if err != nil {
		return nil, err
	}

	if frequency <= 0 {
		frequency = habit.Frequency
	}

	loc, err := s.ownerLocation(ctx, habit.UserID)
	if err != nil {
		return nil, err
	}

	// The judged range starts at the first completion, so a habit is not
	// penalized for empty weeks before its owner started logging. Creation
	// date only anchors the range while no completion exists yet. This also
	// judges backfilled logs, whose dates precede the habit row.
	earliest, err := s.logRepo.FindEarliestCompleted(ctx, habitID)
	if err != nil {
		return nil, err
	}

	from := habit.CreatedAt
	if earliest != nil {
		from = earliest.Date
	}

	weekKeys := week.Range(from.In(loc), s.now().In(loc))
	if len(weekKeys) == 0 {
		return &models.GoalStats{}, nil
	}

	counts, err := s.logRepo.CountCompletedByWeekKey(ctx, habitID, weekKeys)
	if err != nil {
		return nil, err
	}

	goalsMet := 0
	for _, key := range weekKeys {
		if weekMeetsGoal(counts[key], int64(frequency), habit.InversedGoal) {
			goalsMet++
		}
	}

	return &models.GoalStats{
		CompletionRate: float64(goalsMet) / float64(len(weekKeys)),
		GoalsMet:       goalsMet,
		TotalWeeks:     len(weekKeys),
	}, nil
}

func (s *statsService) WeeklyHistogram(ctx context.Context, habitIDs []string) (map[string][]int, error) {
	result := make(map[string][]int, len(habitIDs))

	// Owners repeat across a user's habits, so resolve each timezone once
	locs := map[string]*time.Location{}

	for _, habitID := range habitIDs {
		habit, err := s.habit(ctx, habitID)
		if err != nil {
			return nil, err
		}

		loc, ok := locs[habit.UserID]
		if !ok {
			loc, err = s.ownerLocation(ctx, habit.UserID)
			if err != nil {
				return nil, err
			}
			locs[habit.UserID] = loc
		}

		logs, err := s.logRepo.ListCompleted(ctx, habitID)
		if err != nil {
			return nil, err
		}

		// Monday-first weekday buckets
		buckets := make([]int, 7)
		for _, log := range logs {
			buckets[dates.WeekdayIn(log.Date, loc)]++
		}

		result[habitID] = buckets
	}

	return result, nil
}

func (s *statsService) WeeklyCount(ctx context.Context, habitID string, weeks int) ([]models.WeekCount, error) {
	habit, err := s.habit(ctx, habitID)
	if err != nil {
		return nil, err
	}

	if weeks <= 0 {
		weeks = 1
	}

	loc, err := s.ownerLocation(ctx, habit.UserID)
	if err != nil {
		return nil, err
	}

	end := s.now().In(loc)
	start := end.AddDate(0, 0, -7*(weeks-1))
	weekKeys := week.Range(start, end)

	counts, err := s.logRepo.CountCompletedByWeekKey(ctx, habitID, weekKeys)
	if err != nil {
		return nil, err
	}

	result := make([]models.WeekCount, 0, len(weekKeys))
	for _, key := range weekKeys {
		startDate, err := week.StartDate(key)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve week %s: %w", key, err)
		}

		result = append(result, models.WeekCount{
			WeekKey:   key,
			Count:     counts[key],
			StartDate: startDate,
		})
	}

	return result, nil
}

// weekMeetsGoal decides one week. A normal goal needs at least frequency
// completions, so an empty week always fails. An inversed goal allows at
// most frequency, so an empty week always passes.
func weekMeetsGoal(count, frequency int64, inversed bool) bool {
	if inversed {
		return count <= frequency
	}
	return count >= frequency
}

func (s *statsService) habit(ctx context.Context, habitID string) (*models.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}

	if habit == nil {
		return nil, fmt.Errorf("%w: %s", ErrHabitNotFound, habitID)
	}

	return habit, nil
}

func (s *statsService) ownerLocation(ctx context.Context, userID string) (*time.Location, error) {
	tz := s.defaultTZ

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user != nil && user.Timezone != "" {
		tz = user.Timezone
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}

	return loc, nil
}
