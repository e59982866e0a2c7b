package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gridcal/gridcal/internal/timegrid"
)

type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorPurple Color = "purple"
	ColorRed    Color = "red"
)

func (c Color) IsValid() bool {
	switch c {
	case ColorBlue, ColorGreen, ColorPurple, ColorRed:
		return true
	}
	return false
}

var (
	ErrEmptyTitle     = errors.New("model: event title is required")
	ErrInvalidColor   = errors.New("model: invalid event color")
	ErrInvalidDate    = errors.New("model: invalid event date")
	ErrInvalidTime    = errors.New("model: invalid event time")
	ErrEndBeforeStart = errors.New("model: event ends before it starts")
)

// Event is the sole persisted record. Dates are local YYYY-MM-DD keys and
// times are 24-hour HH:MM strings, matching the stored wire format.
type Event struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	StartDate   string `json:"startDate" validate:"required,datekey"`
	StartTime   string `json:"startTime" validate:"required,clocktime"`
	EndDate     string `json:"endDate" validate:"required,datekey"`
	EndTime     string `json:"endTime" validate:"required,clocktime"`
	AllDay      bool   `json:"allDay"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Color       Color  `json:"color" validate:"required,oneof=blue green purple red"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		_, err := timegrid.ParseDateKey(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		_, _, err := timegrid.ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks the record shape and the start/end ordering.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if !e.Color.IsValid() {
		return ErrInvalidColor
	}
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("model: invalid event: %w", err)
	}
	start, err := e.Start()
	if err != nil {
		return err
	}
	end, err := e.End()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}

// Start resolves the start instant in local time.
func (e Event) Start() (time.Time, error) {
	return e.instant(e.StartDate, e.StartTime)
}

// End resolves the end instant in local time.
func (e Event) End() (time.Time, error) {
	return e.instant(e.EndDate, e.EndTime)
}

func (e Event) instant(dateKey, clock string) (time.Time, error) {
	day, err := timegrid.ParseDateKey(dateKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, dateKey)
	}
	hour, minute, err := timegrid.ParseClock(clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local), nil
}

// DurationMinutes reports the whole-minute span between start and end.
// Malformed fields report zero.
func (e Event) DurationMinutes() int {
	start, err := e.Start()
	if err != nil {
		return 0
	}
	end, err := e.End()
	if err != nil {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

// OccursOn reports whether the event touches the given local day key.
func (e Event) OccursOn(dateKey string) bool {
	day, err := timegrid.ParseDateKey(dateKey)
	if err != nil {
		return false
	}
	start, err := timegrid.ParseDateKey(e.StartDate)
	if err != nil {
		return false
	}
	end, err := timegrid.ParseDateKey(e.EndDate)
	if err != nil {
		return false
	}
	return !day.Before(start) && !day.After(end)
}

// MarkAllDay forces the all-day convention onto the record: both clock
// fields pinned to the edges of the day.
func (e *Event) MarkAllDay(dateKey string) {
	e.AllDay = true
	e.StartDate = dateKey
	e.EndDate = dateKey
	e.StartTime = "00:00"
	e.EndTime = "23:59"
}

// NormalizeColor falls back to blue for anything outside the palette.
func (e *Event) NormalizeColor() {
	if !e.Color.IsValid() {
		e.Color = ColorBlue
	}
}
