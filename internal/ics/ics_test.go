package ics

import (
	"path/filepath"
	"testing"

	"github.com/gridcal/gridcal/internal/model"
)

func TestWriteThenReadTimedEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ics")
	in := []model.Event{{
		ID:          "ev-1",
		Title:       "Design review",
		StartDate:   "2024-05-11",
		StartTime:   "09:00",
		EndDate:     "2024-05-11",
		EndTime:     "10:30",
		Location:    "Room 4",
		Description: "bring sketches",
		Color:       model.ColorGreen,
	}}
	if err := WriteFile(path, in); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 event, got %d", len(out))
	}
	got := out[0]
	if got.Title != "Design review" || got.Location != "Room 4" {
		t.Fatalf("fields lost: %+v", got)
	}
	if got.StartDate != "2024-05-11" || got.StartTime != "09:00" {
		t.Fatalf("unexpected start: %s %s", got.StartDate, got.StartTime)
	}
	if got.EndTime != "10:30" {
		t.Fatalf("unexpected end: %s", got.EndTime)
	}
	if got.ID == "" {
		t.Fatalf("import must assign an id")
	}
}

func TestWriteThenReadAllDayEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allday.ics")
	ev := model.Event{ID: "ev-2", Title: "Conference", Color: model.ColorBlue}
	ev.MarkAllDay("2024-05-11")
	if err := WriteFile(path, []model.Event{ev}); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 event, got %d", len(out))
	}
	got := out[0]
	if !got.AllDay {
		t.Fatalf("expected all-day event, got %+v", got)
	}
	if got.StartDate != "2024-05-11" || got.EndDate != "2024-05-11" {
		t.Fatalf("unexpected dates: %s/%s", got.StartDate, got.EndDate)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.ics")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
