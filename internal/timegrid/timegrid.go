// Package timegrid holds the pure time and geometry arithmetic the calendar
// is built on: local date keys, clock strings, pixel-to-time mapping and
// snapping. Nothing here touches the UI or the store.
package timegrid

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// DateKeyLayout is the local calendar-day key. Keys are always derived
	// from local wall-clock time, never from UTC, so an event created late
	// in the evening lands on the day the user sees.
	DateKeyLayout = "2006-01-02"

	// ClockLayout is the 24-hour wall-clock layout used on the wire.
	ClockLayout = "15:04"

	MinutesPerDay = 24 * 60
)

var (
	ErrBadDateKey = errors.New("timegrid: invalid date key")
	ErrBadClock   = errors.New("timegrid: invalid clock time")
)

// DateKey formats t as a local YYYY-MM-DD key.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key as local midnight.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDateKey, key)
	}
	return t, nil
}

// Clock formats an hour and minute as HH:MM.
func Clock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseClock parses an HH:MM string into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	return t.Hour(), t.Minute(), nil
}

// CellFraction maps a pointer y coordinate into a cell's vertical extent,
// clamped to [0, 1]. A degenerate cell height yields 0.
func CellFraction(pixelY, cellTop, cellHeight float64) float64 {
	if cellHeight <= 0 {
		return 0
	}
	f := (pixelY - cellTop) / cellHeight
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// SnapFraction rounds f to the nearest multiple of increment. Snapping an
// already-snapped value is a no-op.
func SnapFraction(f, increment float64) float64 {
	if increment <= 0 {
		return f
	}
	return math.Round(f/increment) * increment
}

// MinutesFromFraction converts a fraction of an hour to whole minutes,
// capped at 59 so the result stays inside the hour.
func MinutesFromFraction(f float64) int {
	m := int(math.Round(f * 60))
	if m < 0 {
		return 0
	}
	if m > 59 {
		return 59
	}
	return m
}

// MinutesSpanned converts a pixel height into minutes given the height of
// one hour cell.
func MinutesSpanned(heightPx, hourHeight float64) int {
	if hourHeight <= 0 {
		return 0
	}
	return int(math.Round(heightPx / hourHeight * 60))
}

// MinuteOfDay collapses an hour and minute into minutes since midnight.
func MinuteOfDay(hour, minute int) int {
	return hour*60 + minute
}

// ClockFromMinute expands minutes since midnight into an hour and minute.
// The input must already be inside a single day.
func ClockFromMinute(minuteOfDay int) (hour, minute int) {
	if minuteOfDay < 0 {
		minuteOfDay = 0
	}
	if minuteOfDay >= MinutesPerDay {
		minuteOfDay = MinutesPerDay - 1
	}
	return minuteOfDay / 60, minuteOfDay % 60
}

// AddMinutes advances a date key and minute-of-day by delta minutes,
// rolling the date forward or backward across midnight as needed. This is
// what keeps a moved event's duration intact when it crosses a day edge.
func AddMinutes(dateKey string, minuteOfDay, delta int) (string, int, error) {
	day, err := ParseDateKey(dateKey)
	if err != nil {
		return "", 0, err
	}
	total := minuteOfDay + delta
	for total >= MinutesPerDay {
		total -= MinutesPerDay
		day = day.AddDate(0, 0, 1)
	}
	for total < 0 {
		total += MinutesPerDay
		day = day.AddDate(0, 0, -1)
	}
	return DateKey(day), total, nil
}

// FormatClock12h renders an hour and minute as "9:10 PM".
func FormatClock12h(hour, minute int) string {
	suffix := "AM"
	display := hour
	if hour >= 12 {
		suffix = "PM"
	}
	if display > 12 {
		display -= 12
	}
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, suffix)
}

// FormatHourLabel renders a time axis label such as "12 AM" or "3 PM".
func FormatHourLabel(hour int) string {
	suffix := "AM"
	display := hour
	if hour >= 12 {
		suffix = "PM"
	}
	if display > 12 {
		display -= 12
	}
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d %s", display, suffix)
}

// WeekNumber reports the ISO 8601 week number for t.
func WeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}
