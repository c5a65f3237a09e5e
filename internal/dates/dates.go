// Package dates resolves calendar-day boundaries in a user's timezone.
//
// It is the single source of truth for "what day is it for this user":
// the toggle path, the streak walk and the day-of-week histogram all take
// their day boundaries from here instead of re-deriving them, so
// timezone-naive and timezone-aware math can never drift apart.
package dates

import (
	"fmt"
	"time"
)

// DayBounds returns the UTC instants bounding the calendar day that t falls
// on in the given IANA timezone. The interval is half-open: start is local
// midnight and end is the next local midnight, so a log belongs to the day
// when start <= log.Date < end. Unknown zone names surface the load error.
func DayBounds(t time.Time, tz string) (start, end time.Time, err error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}

	local := t.In(loc)
	y, m, d := local.Date()

	start = time.Date(y, m, d, 0, 0, 0, 0, loc).UTC()
	end = time.Date(y, m, d+1, 0, 0, 0, 0, loc).UTC()

	return start, end, nil
}

// Weekday returns the day-of-week bucket for t in the given IANA timezone,
// with 0 = Monday through 6 = Sunday.
func Weekday(t time.Time, tz string) (int, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return 0, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	return WeekdayIn(t, loc), nil
}

// WeekdayIn is Weekday with an already-resolved location.
func WeekdayIn(t time.Time, loc *time.Location) int {
	// time.Weekday counts from Sunday; rotate so Monday is index 0.
	return (int(t.In(loc).Weekday()) + 6) % 7
}

// DaysBetween returns the number of whole calendar days from a to b in loc.
// Positive when a is later than b, matching the newest-first direction of
// the streak walk. The diff is taken on calendar dates, not elapsed hours,
// so DST transitions cannot shift it.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()

	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(au.Sub(bu) / (24 * time.Hour))
}
