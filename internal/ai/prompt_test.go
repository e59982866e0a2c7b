package ai

import (
	"errors"
	"testing"
	"time"
)

var promptNow = time.Date(2024, time.May, 11, 14, 30, 0, 0, time.Local)

func TestParseEmptyPrompt(t *testing.T) {
	_, err := Parse("   ", promptNow)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Code != ErrCodeEmptyPrompt {
		t.Fatalf("expected empty prompt error, got %v", err)
	}
}

func TestParseDefaultsToOneHourFromNow(t *testing.T) {
	d, err := Parse("dentist", promptNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Start.Equal(promptNow) {
		t.Fatalf("expected start now, got %v", d.Start)
	}
	if d.End.Sub(d.Start) != time.Hour {
		t.Fatalf("expected one hour duration, got %v", d.End.Sub(d.Start))
	}
	if d.Title != "dentist" {
		t.Fatalf("expected prompt as title, got %q", d.Title)
	}
}

func TestParseTomorrowAtTime(t *testing.T) {
	d, err := Parse("standup tomorrow at 9:15am", promptNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, time.May, 12, 9, 15, 0, 0, time.Local)
	if !d.Start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, d.Start)
	}
}

func TestParsePMAndDuration(t *testing.T) {
	d, err := Parse("review at 3pm for 2 hours", promptNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Start.Hour() != 15 {
		t.Fatalf("expected 15:00 start, got %v", d.Start)
	}
	if d.End.Sub(d.Start) != 2*time.Hour {
		t.Fatalf("expected 2 hour duration, got %v", d.End.Sub(d.Start))
	}
}

func TestParseNextWeek(t *testing.T) {
	d, err := Parse("planning next week at 10am", promptNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, time.May, 18, 10, 0, 0, 0, time.Local)
	if !d.Start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, d.Start)
	}
}

func TestParseMeetingWith(t *testing.T) {
	d, err := Parse("meeting with alice tomorrow at 2pm", promptNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "Meeting with Alice" {
		t.Fatalf("unexpected title: %q", d.Title)
	}
}

func TestToEvent(t *testing.T) {
	d := Draft{
		Title: "Call with Bob",
		Start: time.Date(2024, time.May, 11, 23, 30, 0, 0, time.Local),
		End:   time.Date(2024, time.May, 12, 0, 30, 0, 0, time.Local),
	}
	ev := d.ToEvent()
	if ev.StartDate != "2024-05-11" || ev.StartTime != "23:30" {
		t.Fatalf("unexpected start: %s %s", ev.StartDate, ev.StartTime)
	}
	if ev.EndDate != "2024-05-12" || ev.EndTime != "00:30" {
		t.Fatalf("unexpected end: %s %s", ev.EndDate, ev.EndTime)
	}
}
