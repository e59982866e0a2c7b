package timegrid

import (
	"testing"
	"time"
)

func TestDateKeyUsesLocalDay(t *testing.T) {
	got := DateKey(time.Date(2024, time.May, 11, 23, 45, 0, 0, time.Local))
	if got != "2024-05-11" {
		t.Fatalf("expected 2024-05-11, got %s", got)
	}
}

func TestParseDateKeyRoundTrip(t *testing.T) {
	day, err := ParseDateKey("2024-05-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if DateKey(day) != "2024-05-11" {
		t.Fatalf("round trip mismatch: %s", DateKey(day))
	}
	if day.Location() != time.Local {
		t.Fatalf("expected local location, got %v", day.Location())
	}
}

func TestParseDateKeyRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "11-05-2024", "2024/05/11", "someday"} {
		if _, err := ParseDateKey(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	cases := []struct {
		hour, minute int
		want         string
	}{
		{0, 0, "00:00"},
		{9, 5, "09:05"},
		{23, 59, "23:59"},
	}
	for _, tc := range cases {
		s := Clock(tc.hour, tc.minute)
		if s != tc.want {
			t.Fatalf("Clock(%d,%d) = %s, want %s", tc.hour, tc.minute, s, tc.want)
		}
		h, m, err := ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(%s): %v", s, err)
		}
		if h != tc.hour || m != tc.minute {
			t.Fatalf("ParseClock(%s) = %d:%d", s, h, m)
		}
	}
}

func TestCellFractionClamps(t *testing.T) {
	cases := []struct {
		y, top, height float64
		want           float64
	}{
		{530, 500, 60, 0.5},
		{490, 500, 60, 0},
		{600, 500, 60, 1},
		{530, 500, 0, 0},
	}
	for _, tc := range cases {
		if got := CellFraction(tc.y, tc.top, tc.height); got != tc.want {
			t.Fatalf("CellFraction(%v,%v,%v) = %v, want %v", tc.y, tc.top, tc.height, got, tc.want)
		}
	}
}

func TestSnapFractionIdempotent(t *testing.T) {
	for _, increment := range []float64{0.25, 1.0 / 12.0} {
		for _, f := range []float64{0, 0.1, 0.23, 0.5, 0.74, 0.99, 1} {
			once := SnapFraction(f, increment)
			twice := SnapFraction(once, increment)
			if once != twice {
				t.Fatalf("snap not idempotent at f=%v inc=%v: %v then %v", f, increment, once, twice)
			}
		}
	}
}

func TestSnapFractionQuarterHour(t *testing.T) {
	if got := SnapFraction(0.3, 0.25); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	if got := SnapFraction(0.4, 0.25); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestMinutesFromFraction(t *testing.T) {
	if got := MinutesFromFraction(0.5); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
	if got := MinutesFromFraction(1.0); got != 59 {
		t.Fatalf("expected cap at 59, got %d", got)
	}
	if got := MinutesFromFraction(-0.2); got != 0 {
		t.Fatalf("expected floor at 0, got %d", got)
	}
}

func TestAddMinutesRollsOverMidnight(t *testing.T) {
	date, minute, err := AddMinutes("2024-05-11", MinuteOfDay(23, 30), 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date != "2024-05-12" {
		t.Fatalf("expected rollover to 2024-05-12, got %s", date)
	}
	if h, m := ClockFromMinute(minute); h != 1 || m != 0 {
		t.Fatalf("expected 01:00, got %02d:%02d", h, m)
	}
}

func TestAddMinutesRollsBackward(t *testing.T) {
	date, minute, err := AddMinutes("2024-05-11", MinuteOfDay(0, 15), -30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date != "2024-05-10" {
		t.Fatalf("expected 2024-05-10, got %s", date)
	}
	if h, m := ClockFromMinute(minute); h != 23 || m != 45 {
		t.Fatalf("expected 23:45, got %02d:%02d", h, m)
	}
}

func TestFormatClock12h(t *testing.T) {
	cases := []struct {
		hour, minute int
		want         string
	}{
		{0, 5, "12:05 AM"},
		{9, 10, "9:10 AM"},
		{12, 0, "12:00 PM"},
		{21, 10, "9:10 PM"},
	}
	for _, tc := range cases {
		if got := FormatClock12h(tc.hour, tc.minute); got != tc.want {
			t.Fatalf("FormatClock12h(%d,%d) = %s, want %s", tc.hour, tc.minute, got, tc.want)
		}
	}
}

func TestFormatHourLabel(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, "12 AM"},
		{3, "3 AM"},
		{12, "12 PM"},
		{15, "3 PM"},
		{23, "11 PM"},
	}
	for _, tc := range cases {
		if got := FormatHourLabel(tc.hour); got != tc.want {
			t.Fatalf("FormatHourLabel(%d) = %s, want %s", tc.hour, got, tc.want)
		}
	}
}

func TestWeekNumber(t *testing.T) {
	// 2024-01-04 is always in ISO week 1.
	if got := WeekNumber(time.Date(2024, time.January, 4, 0, 0, 0, 0, time.Local)); got != 1 {
		t.Fatalf("expected week 1, got %d", got)
	}
	if got := WeekNumber(time.Date(2024, time.May, 11, 0, 0, 0, 0, time.Local)); got != 19 {
		t.Fatalf("expected week 19, got %d", got)
	}
}
