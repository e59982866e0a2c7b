// Package ics moves events between the store's wire shape and iCalendar
// files.
package ics

import (
	"fmt"
	"os"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/gridcal/gridcal/internal/model"
	"github.com/gridcal/gridcal/internal/timegrid"
)

// ReadFile parses the VEVENTs of an .ics file into event records.
// Components without a resolvable start are skipped.
func ReadFile(path string) ([]model.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ics: open %s: %w", path, err)
	}
	defer f.Close()

	cal, err := ical.ParseCalendar(f)
	if err != nil {
		return nil, fmt.Errorf("ics: parse %s: %w", path, err)
	}

	var events []model.Event
	for _, ve := range cal.Events() {
		ev, ok := fromVEvent(ve)
		if !ok {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func fromVEvent(ve *ical.VEvent) (model.Event, bool) {
	ev := model.Event{
		ID:          uuid.NewString(),
		Title:       propValue(ve, ical.ComponentPropertySummary),
		Location:    propValue(ve, ical.ComponentPropertyLocation),
		Description: propValue(ve, ical.ComponentPropertyDescription),
		Color:       model.ColorBlue,
	}
	if ev.Title == "" {
		ev.Title = "Imported event"
	}

	if isAllDay(ve) {
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			return model.Event{}, false
		}
		// DTEND of an all-day VEVENT is exclusive; pull it back a day.
		last := start
		if end, err := ve.GetAllDayEndAt(); err == nil {
			if end = end.AddDate(0, 0, -1); end.After(start) {
				last = end
			}
		}
		ev.AllDay = true
		ev.StartDate = timegrid.DateKey(start)
		ev.EndDate = timegrid.DateKey(last)
		ev.StartTime = "00:00"
		ev.EndTime = "23:59"
		return ev, true
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return model.Event{}, false
	}
	start = start.Local()

	end, err := ve.GetEndAt()
	if err != nil {
		end = start.Add(time.Hour)
	} else {
		end = end.Local()
	}

	ev.StartDate = timegrid.DateKey(start)
	ev.StartTime = timegrid.Clock(start.Hour(), start.Minute())
	ev.EndDate = timegrid.DateKey(end)
	ev.EndTime = timegrid.Clock(end.Hour(), end.Minute())
	return ev, true
}

func propValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	p := ve.GetProperty(name)
	if p == nil {
		return ""
	}
	return p.Value
}

func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	for _, v := range p.ICalParameters[string(ical.ParameterValue)] {
		if v == "DATE" {
			return true
		}
	}
	return false
}

// WriteFile serializes events to an .ics file.
func WriteFile(path string, events []model.Event) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//gridcal//calendar//EN")

	for _, ev := range events {
		ve := cal.AddEvent(ev.ID)
		ve.SetDtStampTime(time.Now())
		ve.SetSummary(ev.Title)
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}

		if ev.AllDay {
			start, err := timegrid.ParseDateKey(ev.StartDate)
			if err != nil {
				continue
			}
			end, err := timegrid.ParseDateKey(ev.EndDate)
			if err != nil {
				continue
			}
			ve.SetAllDayStartAt(start)
			ve.SetAllDayEndAt(end.AddDate(0, 0, 1))
			continue
		}

		start, err := ev.Start()
		if err != nil {
			continue
		}
		end, err := ev.End()
		if err != nil {
			continue
		}
		ve.SetStartAt(start)
		ve.SetEndAt(end)
	}

	return os.WriteFile(path, []byte(cal.Serialize()), 0o644)
}
