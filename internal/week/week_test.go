package week

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestKey_YearBoundaries(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		// 2023: Jan 1 is a Sunday, so it belongs to the previous ISO year
		{date(2023, time.January, 1), "2022-52"},
		{date(2023, time.January, 2), "2023-1"},
		{date(2023, time.January, 8), "2023-1"},
		{date(2023, time.December, 18), "2023-51"},
		{date(2023, time.December, 31), "2023-52"},
		// 2024: Jan 1 is a Monday
		{date(2024, time.January, 1), "2024-1"},
		{date(2024, time.January, 7), "2024-1"},
		{date(2024, time.January, 8), "2024-2"},
		{date(2024, time.December, 30), "2025-1"},
		// 2025
		{date(2025, time.January, 1), "2025-1"},
		{date(2025, time.January, 5), "2025-1"},
		{date(2025, time.January, 6), "2025-2"},
		{date(2025, time.December, 31), "2026-1"},
		// 2026 is a long ISO year with 53 weeks
		{date(2026, time.January, 1), "2026-1"},
		{date(2026, time.January, 5), "2026-2"},
		{date(2027, time.January, 1), "2026-53"},
	}

	for _, tt := range tests {
		if got := Key(tt.date); got != tt.want {
			t.Errorf("Key(%s) = %q, want %q", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestKey_SameWeekSameKey(t *testing.T) {
	// Every day of a Monday-Sunday span yields the same key.
	monday := date(2024, time.February, 12)
	want := Key(monday)

	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		if got := Key(d); got != want {
			t.Errorf("Key(%s) = %q, want %q", d.Format("2006-01-02"), got, want)
		}
	}
	if got := Key(monday.AddDate(0, 0, 7)); got == want {
		t.Errorf("next Monday should start a new week, still got %q", got)
	}
}

func TestStartDate(t *testing.T) {
	tests := []struct {
		key  string
		want time.Time
	}{
		{"2023-51", date(2023, time.December, 18)},
		{"2023-52", date(2023, time.December, 25)},
		{"2024-1", date(2024, time.January, 1)},
		{"2024-7", date(2024, time.February, 12)},
		{"2025-1", date(2024, time.December, 30)},
		{"2026-53", date(2026, time.December, 28)},
	}

	for _, tt := range tests {
		got, err := StartDate(tt.key)
		if err != nil {
			t.Errorf("StartDate(%q) returned error: %v", tt.key, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("StartDate(%q) = %s, want %s", tt.key, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
		if got.Weekday() != time.Monday {
			t.Errorf("StartDate(%q) = %s is not a Monday", tt.key, got.Weekday())
		}
	}
}

func TestStartDate_Invalid(t *testing.T) {
	keys := []string{
		"",
		"2024",
		"2024-",
		"-5",
		"banana",
		"2024-0",
		"2024-54",
		"2024-abc",
		"2024-53", // 2024 has only 52 ISO weeks
	}

	for _, key := range keys {
		if _, err := StartDate(key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("StartDate(%q) = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	// Key(StartDate(k)) == k for every week over several years, including
	// two 53-week ISO years (2020 and 2026).
	d := date(2019, time.December, 30)
	end := date(2027, time.December, 31)

	for !d.After(end) {
		key := Key(d)

		start, err := StartDate(key)
		if err != nil {
			t.Fatalf("StartDate(%q) returned error: %v", key, err)
		}
		if got := Key(start); got != key {
			t.Fatalf("Key(StartDate(%q)) = %q", key, got)
		}

		// start is Monday-aligned to d's own week: d falls within 6 days.
		diff := d.Sub(start)
		if diff < 0 || diff >= 7*24*time.Hour {
			t.Fatalf("StartDate(%q) = %s not within the week of %s", key, start.Format("2006-01-02"), d.Format("2006-01-02"))
		}

		d = d.AddDate(0, 0, 1)
	}
}

func TestRange(t *testing.T) {
	got := Range(date(2023, time.December, 20), date(2024, time.January, 10))
	want := []string{"2023-51", "2023-52", "2024-1", "2024-2"}

	if len(got) != len(want) {
		t.Fatalf("Range returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Range returned %v, want %v", got, want)
		}
	}
}

func TestRange_SingleWeek(t *testing.T) {
	// Start and end inside the same week yield exactly one key, even when
	// the end precedes the start's Monday alignment going in.
	got := Range(date(2024, time.January, 3), date(2024, time.January, 4))
	if len(got) != 1 || got[0] != "2024-1" {
		t.Fatalf("Range = %v, want [2024-1]", got)
	}
}

func TestRange_StartAfterEnd(t *testing.T) {
	// The Monday alignment can move start behind end, but a start whose
	// whole week is past the end produces nothing.
	got := Range(date(2024, time.March, 11), date(2024, time.March, 3))
	if len(got) != 0 {
		t.Fatalf("Range = %v, want empty", got)
	}
}
