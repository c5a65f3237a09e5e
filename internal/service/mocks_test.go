package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/habitloop/backend/internal/models"
)

// mockHabitRepository is a mock implementation of HabitRepository for testing
type mockHabitRepository struct {
	habits      map[string]*models.Habit
	createCalls int
	updateCalls int
}

func newMockHabitRepository() *mockHabitRepository {
	return &mockHabitRepository{
		habits: make(map[string]*models.Habit),
	}
}

func (m *mockHabitRepository) Create(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	m.createCalls++
	if habit.ID == "" {
		habit.ID = generateMockID()
	}
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = time.Now()
	m.habits[habit.ID] = habit
	return habit, nil
}

func (m *mockHabitRepository) GetByID(ctx context.Context, id string) (*models.Habit, error) {
	if habit, ok := m.habits[id]; ok {
		return habit, nil
	}
	return nil, nil
}

func (m *mockHabitRepository) GetByUserID(ctx context.Context, userID string) ([]models.Habit, error) {
	var result []models.Habit
	for _, habit := range m.habits {
		if habit.UserID == userID {
			result = append(result, *habit)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Order < result[j].Order
	})
	return result, nil
}

func (m *mockHabitRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Habit, error) {
	m.updateCalls++
	existing, ok := m.habits[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["name"]; ok {
		existing.Name = v.(string)
	}
	if v, ok := fields["emoji"]; ok {
		existing.Emoji = v.(string)
	}
	if v, ok := fields["frequency"]; ok {
		existing.Frequency = v.(int)
	}
	if v, ok := fields["inversed_goal"]; ok {
		existing.InversedGoal = v.(bool)
	}
	if v, ok := fields["order"]; ok {
		existing.Order = v.(int)
	}
	if v, ok := fields["archived"]; ok {
		existing.Archived = v.(bool)
	}
	existing.UpdatedAt = time.Now()
	return existing, nil
}

func (m *mockHabitRepository) Delete(ctx context.Context, id string) error {
	delete(m.habits, id)
	return nil
}

// mockHabitLogRepository is a mock implementation of HabitLogRepository
type mockHabitLogRepository struct {
	logs        map[string]*models.HabitLog
	createCalls int
	flipCalls   int
}

func newMockHabitLogRepository() *mockHabitLogRepository {
	return &mockHabitLogRepository{
		logs: make(map[string]*models.HabitLog),
	}
}

func (m *mockHabitLogRepository) Create(ctx context.Context, log *models.HabitLog) (*models.HabitLog, error) {
	m.createCalls++
	if log.ID == "" {
		log.ID = generateMockID()
	}
	log.CreatedAt = time.Now()
	log.UpdatedAt = time.Now()
	m.logs[log.ID] = log
	return log, nil
}

func (m *mockHabitLogRepository) FindInRange(ctx context.Context, habitID string, start, end time.Time) (*models.HabitLog, error) {
	for _, log := range m.logs {
		if log.HabitID != habitID {
			continue
		}
		if !log.Date.Before(start) && log.Date.Before(end) {
			return log, nil
		}
	}
	return nil, nil
}

func (m *mockHabitLogRepository) UpdateCompleted(ctx context.Context, id string, completed bool) (*models.HabitLog, error) {
	m.flipCalls++
	existing, ok := m.logs[id]
	if !ok {
		return nil, nil
	}
	existing.Completed = completed
	existing.UpdatedAt = time.Now()
	return existing, nil
}

func (m *mockHabitLogRepository) CountCompletedByWeekKey(ctx context.Context, habitID string, weekKeys []string) (map[string]int64, error) {
	var wanted map[string]bool
	if weekKeys != nil {
		wanted = make(map[string]bool, len(weekKeys))
		for _, key := range weekKeys {
			wanted[key] = true
		}
	}

	counts := make(map[string]int64)
	for _, log := range m.logs {
		if log.HabitID != habitID || !log.Completed {
			continue
		}
		if wanted != nil && !wanted[log.WeekKey] {
			continue
		}
		counts[log.WeekKey]++
	}
	return counts, nil
}

func (m *mockHabitLogRepository) ListByHabit(ctx context.Context, habitID string) ([]models.HabitLog, error) {
	var result []models.HabitLog
	for _, log := range m.logs {
		if log.HabitID == habitID {
			result = append(result, *log)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

func (m *mockHabitLogRepository) ListCompleted(ctx context.Context, habitID string) ([]models.HabitLog, error) {
	all, _ := m.ListByHabit(ctx, habitID)
	result := make([]models.HabitLog, 0, len(all))
	for _, log := range all {
		if log.Completed {
			result = append(result, log)
		}
	}
	return result, nil
}

func (m *mockHabitLogRepository) FindEarliestCompleted(ctx context.Context, habitID string) (*models.HabitLog, error) {
	completed, _ := m.ListCompleted(ctx, habitID)
	if len(completed) == 0 {
		return nil, nil
	}
	earliest := completed[len(completed)-1]
	return &earliest, nil
}

func (m *mockHabitLogRepository) CountCompleted(ctx context.Context, habitID string) (int64, error) {
	completed, _ := m.ListCompleted(ctx, habitID)
	return int64(len(completed)), nil
}

func (m *mockHabitLogRepository) DeleteByHabit(ctx context.Context, habitID string) error {
	for id, log := range m.logs {
		if log.HabitID == habitID {
			delete(m.logs, id)
		}
	}
	return nil
}

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	users map[string]*models.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*models.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = generateMockID()
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, nil
}

func (m *mockUserRepository) UpdateTimezone(ctx context.Context, id, timezone string) (*models.User, error) {
	existing, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	existing.Timezone = timezone
	existing.UpdatedAt = time.Now()
	return existing, nil
}

// Helper to generate mock IDs
var mockIDCounter int

func generateMockID() string {
	mockIDCounter++
	return fmt.Sprintf("mock-id-%d", mockIDCounter)
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
