package models

import "time"

// User represents a user in the system. Timezone is the IANA zone name used
// for all of the user's day-boundary math.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Habit represents a tracked habit. Frequency is the weekly target (1-7
// occurrences); InversedGoal flips its meaning from "at least frequency per
// week" to "at most frequency per week".
type Habit struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Emoji        string    `json:"emoji"`
	Frequency    int       `json:"frequency"`
	InversedGoal bool      `json:"inversed_goal"`
	Order        int       `json:"order"`
	Archived     bool      `json:"archived"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HabitLog represents one habit's state for one calendar day in the owner's
// timezone. A completed=false row is kept rather than deleted so "explicitly
// marked not done" stays distinguishable from "never logged". WeekKey is
// derived from Date and stored redundantly for grouped aggregation.
type HabitLog struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
	WeekKey   string    `json:"week_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateHabitRequest represents the request to create a habit
type CreateHabitRequest struct {
	Name         string `json:"name" binding:"required"`
	Emoji        string `json:"emoji"`
	Frequency    int    `json:"frequency" binding:"required,min=1,max=7"`
	InversedGoal bool   `json:"inversed_goal"`
}

// UpdateHabitRequest represents a partial habit update
type UpdateHabitRequest struct {
	Name         *string `json:"name"`
	Emoji        *string `json:"emoji"`
	Frequency    *int    `json:"frequency" binding:"omitempty,min=1,max=7"`
	InversedGoal *bool   `json:"inversed_goal"`
	Order        *int    `json:"order"`
	Archived     *bool   `json:"archived"`
}

// ReorderHabitsRequest carries the full ordered list of habit IDs
type ReorderHabitsRequest struct {
	HabitIDs []string `json:"habit_ids" binding:"required,min=1"`
}

// ToggleLogRequest optionally overrides the day being toggled; when Date is
// nil the current instant is used.
type ToggleLogRequest struct {
	Date *time.Time `json:"date"`
}

// UpdateTimezoneRequest sets the user's IANA timezone
type UpdateTimezoneRequest struct {
	Timezone string `json:"timezone" binding:"required"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest represents the signup request
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// StreakResult is the outcome of the current-streak walk. Streak counts
// consecutive completed days ending at or before today; a day not yet logged
// today does not break a streak earned on prior days.
type StreakResult struct {
	Streak   int    `json:"streak"`
	OnStreak bool   `json:"on_streak"`
	Msg      string `json:"msg"`
}

// GoalStats reports how many of the weeks a habit has existed met its weekly
// goal. CompletionRate is GoalsMet / TotalWeeks, zero for a zero-week habit.
type GoalStats struct {
	CompletionRate float64 `json:"completion_rate"`
	GoalsMet       int     `json:"goals_met"`
	TotalWeeks     int     `json:"total_weeks"`
}

// WeekCount is one week's completed-log count along with the Monday that
// starts the week.
type WeekCount struct {
	WeekKey   string    `json:"week_key"`
	Count     int64     `json:"count"`
	StartDate time.Time `json:"start_date"`
}
