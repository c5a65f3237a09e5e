package service

import (
	"time"

	"github.com/habitloop/backend/internal/dates"
	"github.com/habitloop/backend/internal/models"
)

const (
	streakMsgRoll = "You're on a roll!"
	streakMsgPush = "You can do it!"

	// Streaks this long get the celebratory message
	streakRollThreshold = 4
)

// computeStreak walks logs from newest to oldest and counts consecutive
// completed calendar days. logs must be sorted by date descending and may
// contain incomplete rows, which record an explicitly missed day.
//
// A day with no log at all only breaks the streak once it is in the past:
// a habit not yet logged today still counts as on-streak if yesterday was
// completed. An incomplete log today is treated the same as no log.
func computeStreak(logs []models.HabitLog, now time.Time, loc *time.Location) models.StreakResult {
	streak := 0
	prev := now
	first := true

	for _, log := range logs {
		gap := dates.DaysBetween(prev, log.Date, loc)

		if first && gap == 0 && !log.Completed {
			// Today was toggled off, skip it and judge from yesterday
			prev = log.Date
			continue
		}

		if gap > 1 {
			break
		}

		if !log.Completed {
			break
		}

		if gap == 0 && !first {
			// Duplicate log for a day already counted
			continue
		}

		streak++
		prev = log.Date
		first = false
	}

	result := models.StreakResult{
		Streak:   streak,
		OnStreak: streak > 0,
		Msg:      streakMsgPush,
	}
	if streak > streakRollThreshold {
		result.Msg = streakMsgRoll
	}

	return result
}
