package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gridcal/gridcal/internal/model"
)

func sampleEvent(title string) model.Event {
	return model.Event{
		Title:     title,
		StartDate: "2024-05-11",
		StartTime: "09:00",
		EndDate:   "2024-05-11",
		EndTime:   "10:00",
		Color:     model.ColorBlue,
	}
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	fs, err := OpenFile(filepath.Join(dir, "events.json"), nil)
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	ss, err := OpenSQLite(context.Background(), filepath.Join(dir, "events.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { ss.Close() })
	return map[string]Store{"file": fs, "sqlite": ss}
}

func TestAddAssignsIDAndRoundTrips(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			stored, err := s.Add(ctx, sampleEvent("Standup"))
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if stored.ID == "" {
				t.Fatalf("expected assigned id")
			}
			all, err := s.All(ctx)
			if err != nil {
				t.Fatalf("all: %v", err)
			}
			if len(all) != 1 || !reflect.DeepEqual(all[0], stored) {
				t.Fatalf("round trip mismatch: %+v vs %+v", all, stored)
			}
		})
	}
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ev := sampleEvent("Ghost")
			ev.ID = "missing"
			if err := s.Update(context.Background(), ev); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestRemoveReportsExistence(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			stored, err := s.Add(ctx, sampleEvent("Doomed"))
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			ok, err := s.Remove(ctx, stored.ID)
			if err != nil || !ok {
				t.Fatalf("expected removal, got ok=%v err=%v", ok, err)
			}
			ok, err = s.Remove(ctx, stored.ID)
			if err != nil || ok {
				t.Fatalf("expected no-op removal, got ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			titles := []string{"Charlie", "Alpha", "Bravo"}
			for _, title := range titles {
				if _, err := s.Add(ctx, sampleEvent(title)); err != nil {
					t.Fatalf("add %s: %v", title, err)
				}
			}
			all, err := s.All(ctx)
			if err != nil {
				t.Fatalf("all: %v", err)
			}
			for i, title := range titles {
				if all[i].Title != title {
					t.Fatalf("order broken at %d: got %s, want %s", i, all[i].Title, title)
				}
			}
		})
	}
}

func TestFileStoreReloadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	ctx := context.Background()

	first, err := OpenFile(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	stored, err := first.Add(ctx, sampleEvent("Persisted"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	second, err := OpenFile(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	all, err := second.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 || all[0].ID != stored.ID {
		t.Fatalf("expected persisted event, got %+v", all)
	}
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	s, err := OpenFile(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	all, err := s.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty store, got %d events", len(all))
	}
}

func TestSQLiteStoreReloadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.db")
	ctx := context.Background()

	first, err := OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	stored, err := first.Add(ctx, sampleEvent("Persisted"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	all, err := second.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 || all[0].ID != stored.ID {
		t.Fatalf("expected persisted event, got %+v", all)
	}
}

func TestAddRejectsInvalidEvent(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			bad := sampleEvent("")
			if _, err := s.Add(context.Background(), bad); err == nil {
				t.Fatalf("expected validation error")
			}
			all, _ := s.All(context.Background())
			if len(all) != 0 {
				t.Fatalf("failed add must not mutate the store")
			}
		})
	}
}
