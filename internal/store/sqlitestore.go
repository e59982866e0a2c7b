package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/gridcal/gridcal/internal/model"
)

const eventsBlobName = "events"

const blobSchema = `
CREATE TABLE IF NOT EXISTS blobs (
    name    TEXT PRIMARY KEY,
    payload BLOB NOT NULL
);`

// SQLiteStore persists the event list as a single JSON payload in a
// key-value blob table. The list itself stays in memory; SQLite gives the
// durable copy transactional writes for free.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	log    *zap.Logger
	events []model.Event
}

func OpenSQLite(ctx context.Context, path string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Path: path, Err: err}
	}
	if _, err := db.ExecContext(ctx, blobSchema); err != nil {
		db.Close()
		return nil, &StorageError{Op: "migrate", Path: path, Err: err}
	}

	s := &SQLiteStore{db: db, path: path, log: log}
	if err := s.load(ctx); err != nil {
		log.Warn("event payload unreadable, starting empty", zap.String("path", path), zap.Error(err))
		s.events = nil
	}
	return s, nil
}

func (s *SQLiteStore) load(ctx context.Context) error {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM blobs WHERE name = ?`, eventsBlobName).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("query events payload: %w", err)
	}
	if err := json.Unmarshal(payload, &s.events); err != nil {
		return fmt.Errorf("decode events payload: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Add(ctx context.Context, ev model.Event) (model.Event, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	ev.NormalizeColor()
	if err := ev.Validate(); err != nil {
		return model.Event{}, err
	}
	s.events = append(s.events, ev)
	if err := s.persist(ctx); err != nil {
		s.events = s.events[:len(s.events)-1]
		return model.Event{}, err
	}
	return ev, nil
}

func (s *SQLiteStore) Update(ctx context.Context, ev model.Event) error {
	ev.NormalizeColor()
	if err := ev.Validate(); err != nil {
		return err
	}
	for i := range s.events {
		if s.events[i].ID == ev.ID {
			prev := s.events[i]
			s.events[i] = ev
			if err := s.persist(ctx); err != nil {
				s.events[i] = prev
				return err
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *SQLiteStore) Remove(ctx context.Context, id string) (bool, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			removed := s.events[i]
			s.events = append(s.events[:i], s.events[i+1:]...)
			if err := s.persist(ctx); err != nil {
				s.events = append(s.events[:i], append([]model.Event{removed}, s.events[i:]...)...)
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *SQLiteStore) All(ctx context.Context) ([]model.Event, error) {
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) persist(ctx context.Context) error {
	payload, err := json.Marshal(s.events)
	if err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO blobs (name, payload) VALUES (?, ?)
        ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`,
		eventsBlobName, payload)
	if err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}
