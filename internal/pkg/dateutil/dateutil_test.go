package dateutil

import (
	"testing"
	"time"
)

func TestWeekdaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.March, 21},
		{2025, time.February, 20},
		{2024, time.February, 21}, // leap year
		{2025, time.August, 21},
	}
	for _, c := range cases {
		got := WeekdaysInMonth(c.year, c.month)
		if got != c.want {
			t.Errorf("WeekdaysInMonth(%d, %v) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestWeekdaysBetween(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if got := WeekdaysBetween(start, end); got != 10 {
		t.Errorf("WeekdaysBetween(Mar 1, Mar 14) = %d, want 10", got)
	}
	if got := WeekdaysBetween(end, start); got != 0 {
		t.Errorf("WeekdaysBetween reversed = %d, want 0", got)
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 29, 0, 0, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 28 {
		t.Errorf("DaysBetween = %d, want 28", got)
	}
	if got := DaysBetween(end, start); got != 0 {
		t.Errorf("DaysBetween reversed = %d, want 0", got)
	}
}

func TestMinutesBetween(t *testing.T) {
	cases := []struct {
		start, end, want int
	}{
		{540, 1130, 590},
		{1320, 360, 480}, // overnight
		{600, 600, 0},
	}
	for _, c := range cases {
		if got := MinutesBetween(c.start, c.end); got != c.want {
			t.Errorf("MinutesBetween(%d, %d) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"09:00", 540, true},
		{"18:50:30", 1130, true},
		{"00:00", 0, true},
		{"25:00", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseClock(c.input)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseClock(%q) = (%d, %v), want (%d, %v)", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestSameDate(t *testing.T) {
	a := time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 1, 10, 0, 1, 0, 0, time.UTC)
	c := time.Date(2025, 1, 11, 0, 1, 0, 0, time.UTC)
	if !SameDate(a, b) {
		t.Error("SameDate same day = false, want true")
	}
	if SameDate(a, c) {
		t.Error("SameDate different day = true, want false")
	}
}
