package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridcal/gridcal/internal/model"
)

// FileStore keeps the whole event list as one JSON array on disk, written
// atomically via a temp file and rename after every mutation.
type FileStore struct {
	path   string
	log    *zap.Logger
	events []model.Event
}

// OpenFile loads the store at path. A missing or unreadable file starts
// an empty list; the problem is logged, never fatal.
func OpenFile(path string, log *zap.Logger) (*FileStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &FileStore{path: path, log: log}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("event file unreadable, starting empty", zap.String("path", path), zap.Error(err))
		}
		return s, nil
	}
	if err := json.Unmarshal(data, &s.events); err != nil {
		log.Warn("event file corrupt, starting empty", zap.String("path", path), zap.Error(err))
		s.events = nil
	}
	return s, nil
}

func (s *FileStore) Add(ctx context.Context, ev model.Event) (model.Event, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	ev.NormalizeColor()
	if err := ev.Validate(); err != nil {
		return model.Event{}, err
	}
	s.events = append(s.events, ev)
	if err := s.persist(); err != nil {
		s.events = s.events[:len(s.events)-1]
		return model.Event{}, err
	}
	return ev, nil
}

func (s *FileStore) Update(ctx context.Context, ev model.Event) error {
	ev.NormalizeColor()
	if err := ev.Validate(); err != nil {
		return err
	}
	for i := range s.events {
		if s.events[i].ID == ev.ID {
			prev := s.events[i]
			s.events[i] = ev
			if err := s.persist(); err != nil {
				s.events[i] = prev
				return err
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *FileStore) Remove(ctx context.Context, id string) (bool, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			removed := s.events[i]
			s.events = append(s.events[:i], s.events[i+1:]...)
			if err := s.persist(); err != nil {
				s.events = append(s.events[:i], append([]model.Event{removed}, s.events[i:]...)...)
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *FileStore) All(ctx context.Context) ([]model.Event, error) {
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) persist() error {
	data, err := json.MarshalIndent(s.events, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	tmp, err := os.CreateTemp(dir, ".events-*.json")
	if err != nil {
		return &StorageError{Op: "create", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "close", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "rename", Path: s.path, Err: err}
	}
	return nil
}
