// Package ai turns a free-text prompt into an event draft. This is a
// placeholder parser: lowercased keyword matching, no real language
// understanding.
package ai

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gridcal/gridcal/internal/model"
	"github.com/gridcal/gridcal/internal/timegrid"
)

type ErrorCode string

const (
	ErrCodeEmptyPrompt ErrorCode = "empty_prompt"
)

type ParseError struct {
	Code    ErrorCode
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Draft is the parsed intent: full timestamps, resolved against now.
type Draft struct {
	Title string
	Start time.Time
	End   time.Time
}

var (
	timeRe     = regexp.MustCompile(`at (\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	durationRe = regexp.MustCompile(`for (\d+)\s*(?:hour|hours|hr|hrs)`)
	withRe     = regexp.MustCompile(`(meeting|lunch|call) with (\w+)`)
)

// Parse interprets a prompt relative to now. Unrecognized prompts fall
// back to a one-hour event starting now, titled with the prompt text.
func Parse(prompt string, now time.Time) (Draft, error) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return Draft{}, &ParseError{Code: ErrCodeEmptyPrompt, Message: "prompt is empty"}
	}
	lower := strings.ToLower(trimmed)

	day := now
	switch {
	case strings.Contains(lower, "tomorrow"):
		day = now.AddDate(0, 0, 1)
	case strings.Contains(lower, "next week"):
		day = now.AddDate(0, 0, 7)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), 0, 0, time.Local)
	if m := timeRe.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if m[3] == "pm" && hour < 12 {
			hour += 12
		}
		if m[3] == "am" && hour == 12 {
			hour = 0
		}
		if hour < 24 && minute < 60 {
			start = time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)
		}
	}

	duration := time.Hour
	if m := durationRe.FindStringSubmatch(lower); m != nil {
		if hours, err := strconv.Atoi(m[1]); err == nil && hours > 0 {
			duration = time.Duration(hours) * time.Hour
		}
	}

	title := trimmed
	if m := withRe.FindStringSubmatch(lower); m != nil {
		title = capitalize(m[1]) + " with " + capitalize(m[2])
	}

	return Draft{Title: title, Start: start, End: start.Add(duration)}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ToEvent converts a draft into the stored wire shape.
func (d Draft) ToEvent() model.Event {
	return model.Event{
		Title:     d.Title,
		StartDate: timegrid.DateKey(d.Start),
		StartTime: timegrid.Clock(d.Start.Hour(), d.Start.Minute()),
		EndDate:   timegrid.DateKey(d.End),
		EndTime:   timegrid.Clock(d.End.Hour(), d.End.Minute()),
		Color:     model.ColorBlue,
	}
}
