// Package dateutil holds the calendar math the engines share: calendar dates
// without timezones, weekday counting for working-days proration, and
// minute-of-day arithmetic with overnight rollover.
package dateutil

import (
	"time"
)

const DateLayout = "2006-01-02"

// MinutesPerDay is added when a shift crosses midnight (end < start).
const MinutesPerDay = 24 * 60

// ParseDate parses a calendar date in YYYY-MM-DD format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsWeekday reports whether d falls Monday through Friday.
func IsWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WeekdaysInMonth counts Mon-Fri days in (year, month).
func WeekdaysInMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return WeekdaysBetween(first, last)
}

// WeekdaysBetween counts Mon-Fri days from start through end inclusive.
// Public holidays are intentionally not excluded.
func WeekdaysBetween(start, end time.Time) int {
	start = DateOf(start)
	end = DateOf(end)
	if end.Before(start) {
		return 0
	}
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWeekday(d) {
			count++
		}
	}
	return count
}

// DaysBetween returns the number of calendar days from start to end,
// rounding partial days up.
func DaysBetween(start, end time.Time) int {
	start = DateOf(start)
	end = DateOf(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}

// MinuteOfDay returns the minute offset of a time-of-day value.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// MinutesBetween returns end-start in minutes of day, rolling forward by one
// day when the span crosses midnight.
func MinutesBetween(start, end int) int {
	diff := end - start
	if diff < 0 {
		diff += MinutesPerDay
	}
	return diff
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into a minute of day.
func ParseClock(s string) (int, bool) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, false
		}
	}
	return MinuteOfDay(t), true
}
