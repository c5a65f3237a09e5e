package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/habitloop/backend/internal/models"
	"github.com/habitloop/backend/pkg/supabase"
)

type habitLogRepository struct {
	client *supabase.Client
}

// NewHabitLogRepository creates a new habit log repository
func NewHabitLogRepository(client *supabase.Client) HabitLogRepository {
	return &habitLogRepository{client: client}
}

func (r *habitLogRepository) Create(ctx context.Context, log *models.HabitLog) (*models.HabitLog, error) {
	data := map[string]interface{}{
		"habit_id":  log.HabitID,
		"date":      log.Date.Format(time.RFC3339),
		"completed": log.Completed,
		"week_key":  log.WeekKey,
	}

	body, err := r.client.Insert("habit_logs", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit log: %w", err)
	}

	var logs []models.HabitLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(logs) == 0 {
		return nil, fmt.Errorf("no habit log returned")
	}

	return &logs[0], nil
}

func (r *habitLogRepository) FindInRange(ctx context.Context, habitID string, start, end time.Time) (*models.HabitLog, error) {
	query := map[string]interface{}{
		"habit_id": fmt.Sprintf("eq.%s", habitID),
		"and": fmt.Sprintf("(date.gte.%s,date.lt.%s)",
			start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)),
		"select": "*",
		"limit":  "1",
	}

	body, err := r.client.Query("habit_logs", query)
	if err != nil {
		return nil, fmt.Errorf("failed to find habit log: %w", err)
	}

	var logs []models.HabitLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(logs) == 0 {
		return nil, nil
	}

	return &logs[0], nil
}

func (r *habitLogRepository) UpdateCompleted(ctx context.Context, id string, completed bool) (*models.HabitLog, error) {
	body, err := r.client.Update("habit_logs", id, map[string]interface{}{
		"completed": completed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update habit log: %w", err)
	}

	var logs []models.HabitLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(logs) == 0 {
		return nil, fmt.Errorf("no habit log returned")
	}

	return &logs[0], nil
}

func (r *habitLogRepository) CountCompletedByWeekKey(ctx context.Context, habitID string, weekKeys []string) (map[string]int64, error) {
	query := map[string]interface{}{
		"habit_id":  fmt.Sprintf("eq.%s", habitID),
		"completed": "eq.true",
		"select":    "week_key,count()",
	}

	if len(weekKeys) > 0 {
		query["week_key"] = fmt.Sprintf("in.(%s)", strings.Join(weekKeys, ","))
	}

	body, err := r.client.Query("habit_logs", query)
	if err != nil {
		return nil, fmt.Errorf("failed to count habit logs by week: %w", err)
	}

	var rows []struct {
		WeekKey string `json:"week_key"`
		Count   int64  `json:"count"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.WeekKey] = row.Count
	}

	return counts, nil
}

func (r *habitLogRepository) ListByHabit(ctx context.Context, habitID string) ([]models.HabitLog, error) {
	return r.list(habitID, false)
}

func (r *habitLogRepository) ListCompleted(ctx context.Context, habitID string) ([]models.HabitLog, error) {
	return r.list(habitID, true)
}

func (r *habitLogRepository) list(habitID string, completedOnly bool) ([]models.HabitLog, error) {
	query := map[string]interface{}{
		"habit_id": fmt.Sprintf("eq.%s", habitID),
		"select":   "*",
		"order":    "date.desc",
	}

	if completedOnly {
		query["completed"] = "eq.true"
	}

	body, err := r.client.Query("habit_logs", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list habit logs: %w", err)
	}

	var logs []models.HabitLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return logs, nil
}

func (r *habitLogRepository) FindEarliestCompleted(ctx context.Context, habitID string) (*models.HabitLog, error) {
	query := map[string]interface{}{
		"habit_id":  fmt.Sprintf("eq.%s", habitID),
		"completed": "eq.true",
		"select":    "*",
		"order":     "date.asc",
		"limit":     "1",
	}

	body, err := r.client.Query("habit_logs", query)
	if err != nil {
		return nil, fmt.Errorf("failed to find earliest habit log: %w", err)
	}

	var logs []models.HabitLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(logs) == 0 {
		return nil, nil
	}

	return &logs[0], nil
}

func (r *habitLogRepository) CountCompleted(ctx context.Context, habitID string) (int64, error) {
	query := map[string]interface{}{
		"habit_id":  fmt.Sprintf("eq.%s", habitID),
		"completed": "eq.true",
		"select":    "count()",
	}

	body, err := r.client.Query("habit_logs", query)
	if err != nil {
		return 0, fmt.Errorf("failed to count habit logs: %w", err)
	}

	var rows []struct {
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(rows) == 0 {
		return 0, nil
	}

	return rows[0].Count, nil
}

func (r *habitLogRepository) DeleteByHabit(ctx context.Context, habitID string) error {
	query := map[string]interface{}{
		"habit_id": fmt.Sprintf("eq.%s", habitID),
	}

	if err := r.client.DeleteWhere("habit_logs", query); err != nil {
		return fmt.Errorf("failed to delete habit logs: %w", err)
	}

	return nil
}
