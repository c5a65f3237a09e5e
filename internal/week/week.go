// Package week implements the week-key calendar algebra used to group habit
// logs. A week key is the string "{isoYear}-{weekNumber}" for an ISO 8601
// Monday-start week, with no zero padding on the week number ("2024-1", not
// "2024-01"). The persisted form is depended on verbatim by the grouped
// aggregation queries, so the format must never change.
package week

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidKey indicates a week key string that does not parse as
// "{year}-{week}" with a week number in the valid ISO range.
var ErrInvalidKey = fmt.Errorf("invalid week key")

// Key returns the week key for the given instant. The instant is read as-is;
// callers that need a user-local week apply the timezone shift first.
//
// ISO 8601 numbering: weeks start on Monday, and week 1 is the week
// containing the year's first Thursday. The last days of December can belong
// to week 1 of the next ISO year, and the first days of January to the last
// week of the previous one.
func Key(t time.Time) string {
	year, wk := t.ISOWeek()
	return fmt.Sprintf("%d-%d", year, wk)
}

// StartDate is the inverse of Key: it returns the Monday (midnight UTC) that
// starts the keyed week. Malformed keys return ErrInvalidKey, never a
// guessed or clamped date.
func StartDate(key string) (time.Time, error) {
	yearStr, weekStr, ok := strings.Cut(key, "-")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	wk, err := strconv.Atoi(weekStr)
	if err != nil || wk < 1 || wk > 53 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	// Monday of week 1 is three days before the year's first Thursday. When
	// Jan 1 falls on Fri/Sat/Sun the first Thursday is in the following
	// calendar week, which is what pushes those early-January days into the
	// previous ISO year.
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	firstThursday := jan1.AddDate(0, 0, (4-isoWeekday(jan1)+7)%7)
	monday := firstThursday.AddDate(0, 0, -3)

	start := monday.AddDate(0, 0, (wk-1)*7)

	// Week 53 only exists in long ISO years; reject keys that would roll
	// into week 1 of the next year.
	if Key(start) != normalize(year, wk) {
		return time.Time{}, fmt.Errorf("%w: %q has no week %d", ErrInvalidKey, key, wk)
	}

	return start, nil
}

// Range returns every week key from the Monday-aligned start date through
// end inclusive, advancing seven days at a time. Weeks with no logs are
// included, which is what lets goal stats count empty weeks.
func Range(start, end time.Time) []string {
	cur := startOfISOWeek(start)

	var keys []string
	for !cur.After(end) {
		keys = append(keys, Key(cur))
		cur = cur.AddDate(0, 0, 7)
	}

	return keys
}

// normalize formats a (year, week) pair the same way Key does.
func normalize(year, wk int) string {
	return fmt.Sprintf("%d-%d", year, wk)
}

// isoWeekday maps time.Weekday to ISO numbering, Monday=1 through Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// startOfISOWeek truncates t to the Monday midnight that begins its week,
// preserving t's location.
func startOfISOWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -(isoWeekday(midnight) - 1))
}
