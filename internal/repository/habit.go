package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/habitloop/backend/internal/models"
	"github.com/habitloop/backend/pkg/supabase"
)

type habitRepository struct {
	client *supabase.Client
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(client *supabase.Client) HabitRepository {
	return &habitRepository{client: client}
}

func (r *habitRepository) Create(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	data := map[string]interface{}{
		"user_id":       habit.UserID,
		"name":          habit.Name,
		"emoji":         habit.Emoji,
		"frequency":     habit.Frequency,
		"inversed_goal": habit.InversedGoal,
		"order":         habit.Order,
	}

	body, err := r.client.Insert("habits", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	var habits []models.Habit
	if err := json.Unmarshal(body, &habits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(habits) == 0 {
		return nil, fmt.Errorf("no habit returned")
	}

	return &habits[0], nil
}

func (r *habitRepository) GetByID(ctx context.Context, id string) (*models.Habit, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*",
	}

	body, err := r.client.Query("habits", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	var habits []models.Habit
	if err := json.Unmarshal(body, &habits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(habits) == 0 {
		return nil, nil
	}

	return &habits[0], nil
}

func (r *habitRepository) GetByUserID(ctx context.Context, userID string) ([]models.Habit, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
		"order":   "order.asc",
	}

	body, err := r.client.Query("habits", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get habits: %w", err)
	}

	var habits []models.Habit
	if err := json.Unmarshal(body, &habits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return habits, nil
}

func (r *habitRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Habit, error) {
	body, err := r.client.Update("habits", id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}

	var habits []models.Habit
	if err := json.Unmarshal(body, &habits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(habits) == 0 {
		return nil, nil
	}

	return &habits[0], nil
}

func (r *habitRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete("habits", id); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	return nil
}
