package update

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gridcal/gridcal/internal/model"
	"github.com/gridcal/gridcal/internal/timegrid"
	"github.com/gridcal/gridcal/internal/views"
)

var formColors = []model.Color{model.ColorBlue, model.ColorGreen, model.ColorPurple, model.ColorRed}

func (m *Model) openDraftForm(draft model.Event) {
	draft.NormalizeColor()
	m.Form.Active = true
	m.Form.IsEdit = false
	m.Form.Draft = draft
	m.Form.Err = ""
	m.fillFormInputs(draft)
	m.setFormFocus(FieldTitle)
}

func (m *Model) openEditForm(ev model.Event) {
	ev.NormalizeColor()
	m.Form.Active = true
	m.Form.IsEdit = true
	m.Form.Draft = ev
	m.Form.Err = ""
	m.SelectedID = ev.ID
	m.fillFormInputs(ev)
	m.setFormFocus(FieldTitle)
}

func (m *Model) fillFormInputs(ev model.Event) {
	m.Form.title.SetValue(ev.Title)
	m.Form.startDate.SetValue(ev.StartDate)
	m.Form.startTime.SetValue(ev.StartTime)
	m.Form.endDate.SetValue(ev.EndDate)
	m.Form.endTime.SetValue(ev.EndTime)
	m.Form.location.SetValue(ev.Location)
	m.Form.description.SetValue(ev.Description)
	m.Form.colorIdx = 0
	for i, c := range formColors {
		if c == ev.Color {
			m.Form.colorIdx = i
		}
	}
}

func (m *Model) setFormFocus(f FormField) {
	m.Form.Focus = f
	m.Form.title.Blur()
	m.Form.startDate.Blur()
	m.Form.startTime.Blur()
	m.Form.endDate.Blur()
	m.Form.endTime.Blur()
	m.Form.location.Blur()
	m.Form.description.Blur()
	switch f {
	case FieldTitle:
		m.Form.title.Focus()
	case FieldStartDate:
		m.Form.startDate.Focus()
	case FieldStartTime:
		m.Form.startTime.Focus()
	case FieldEndDate:
		m.Form.endDate.Focus()
	case FieldEndTime:
		m.Form.endTime.Focus()
	case FieldLocation:
		m.Form.location.Focus()
	case FieldDescription:
		m.Form.description.Focus()
	}
}

func (m *Model) cycleFormFocus(backward bool) {
	f := m.Form.Focus
	for {
		if backward {
			f--
			if f < 0 {
				f = fieldCount - 1
			}
		} else {
			f = (f + 1) % fieldCount
		}
		// All-day events have no editable clock fields.
		if m.Form.Draft.AllDay && (f == FieldStartTime || f == FieldEndTime) {
			continue
		}
		break
	}
	m.setFormFocus(f)
}

func (m Model) handleFormKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.closeForm(true)
		return m, nil
	case "tab":
		m.cycleFormFocus(false)
		return m, nil
	case "shift+tab":
		m.cycleFormFocus(true)
		return m, nil
	case "ctrl+s":
		m.saveForm()
		return m, nil
	case "ctrl+a":
		m.toggleAllDay()
		return m, nil
	case "ctrl+d":
		if m.Form.IsEdit {
			m.Form.Active = false
			m.SelectedID = m.Form.Draft.ID
			return m.deleteSelected(), nil
		}
		return m, nil
	case "enter":
		if m.Form.Focus != FieldDescription {
			m.saveForm()
			return m, nil
		}
	case "left", "right":
		if m.Form.Focus == FieldColor {
			if key.String() == "left" {
				m.Form.colorIdx = (m.Form.colorIdx + len(formColors) - 1) % len(formColors)
			} else {
				m.Form.colorIdx = (m.Form.colorIdx + 1) % len(formColors)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.Form.Focus {
	case FieldTitle:
		m.Form.title, cmd = m.Form.title.Update(key)
	case FieldStartDate:
		m.Form.startDate, cmd = m.Form.startDate.Update(key)
	case FieldStartTime:
		m.Form.startTime, cmd = m.Form.startTime.Update(key)
	case FieldEndDate:
		m.Form.endDate, cmd = m.Form.endDate.Update(key)
	case FieldEndTime:
		m.Form.endTime, cmd = m.Form.endTime.Update(key)
	case FieldLocation:
		m.Form.location, cmd = m.Form.location.Update(key)
	case FieldDescription:
		m.Form.description, cmd = m.Form.description.Update(key)
	}
	return m, cmd
}

func (m *Model) toggleAllDay() {
	m.Form.Draft.AllDay = !m.Form.Draft.AllDay
	if m.Form.Draft.AllDay {
		m.Form.startTime.SetValue("00:00")
		m.Form.endTime.SetValue("23:59")
		if m.Form.Focus == FieldStartTime || m.Form.Focus == FieldEndTime {
			m.setFormFocus(FieldTitle)
		}
	}
}

// closeForm dismisses the form. With saveIfTitled, a non-empty title
// saves on the way out; an untitled draft is discarded along with its
// selection.
func (m *Model) closeForm(saveIfTitled bool) {
	if saveIfTitled && strings.TrimSpace(m.Form.title.Value()) != "" {
		m.saveForm()
		return
	}
	m.Form.Active = false
	if !m.Form.IsEdit {
		m.SelectedID = ""
	}
	m.Status = StatusBar{Text: "discarded"}
}

func (m *Model) saveForm() {
	ev := m.Form.Draft
	ev.Title = strings.TrimSpace(m.Form.title.Value())
	ev.StartDate = strings.TrimSpace(m.Form.startDate.Value())
	ev.StartTime = strings.TrimSpace(m.Form.startTime.Value())
	ev.EndDate = strings.TrimSpace(m.Form.endDate.Value())
	ev.EndTime = strings.TrimSpace(m.Form.endTime.Value())
	ev.Location = strings.TrimSpace(m.Form.location.Value())
	ev.Description = m.Form.description.Value()
	ev.Color = formColors[m.Form.colorIdx]

	if ev.Title == "" {
		m.Form.Err = "title is required"
		return
	}
	if ev.AllDay {
		ev.StartTime = "00:00"
		ev.EndTime = "23:59"
	}

	if _, err := timegrid.ParseDateKey(ev.StartDate); err != nil {
		m.Form.Err = "start date must be YYYY-MM-DD"
		return
	}
	if _, err := timegrid.ParseDateKey(ev.EndDate); err != nil {
		m.Form.Err = "end date must be YYYY-MM-DD"
		return
	}
	if _, _, err := timegrid.ParseClock(ev.StartTime); err != nil {
		m.Form.Err = "start time must be HH:MM"
		return
	}
	if _, _, err := timegrid.ParseClock(ev.EndTime); err != nil {
		m.Form.Err = "end time must be HH:MM"
		return
	}

	// A manually inverted range is clamped to the minimum duration past
	// the start rather than rejected.
	if endsBeforeStart(ev) {
		h, min, _ := timegrid.ParseClock(ev.StartTime)
		endDate, endOfDay, aerr := timegrid.AddMinutes(ev.StartDate, timegrid.MinuteOfDay(h, min), m.MinDurationMin)
		if aerr == nil {
			eh, em := timegrid.ClockFromMinute(endOfDay)
			ev.EndDate = endDate
			ev.EndTime = timegrid.Clock(eh, em)
		}
	}

	ctx := context.Background()
	if m.Form.IsEdit {
		if err := m.store.Update(ctx, ev); err != nil {
			m.logger.Error("update event", zap.String("id", ev.ID), zap.Error(err))
			m.Form.Err = err.Error()
			return
		}
		m.SelectedID = ev.ID
		m.Status = StatusBar{Text: "event saved"}
	} else {
		stored, err := m.store.Add(ctx, ev)
		if err != nil {
			m.logger.Error("add event", zap.Error(err))
			m.Form.Err = err.Error()
			return
		}
		m.SelectedID = stored.ID
		m.Status = StatusBar{Text: "event created"}
	}

	m.Form.Active = false
	m.Form.Err = ""
	m.reloadEvents()
	m.refreshGrid()
}

func endsBeforeStart(ev model.Event) bool {
	start, err := ev.Start()
	if err != nil {
		return false
	}
	end, err := ev.End()
	if err != nil {
		return false
	}
	return end.Before(start)
}

// draftAtNow is the keyboard path to a new event: the next full hour.
func (m Model) draftAtNow() model.Event {
	start := m.Now.Truncate(time.Hour).Add(time.Hour)
	end := start.Add(time.Hour)
	return model.Event{
		StartDate: timegrid.DateKey(start),
		StartTime: timegrid.Clock(start.Hour(), start.Minute()),
		EndDate:   timegrid.DateKey(end),
		EndTime:   timegrid.Clock(end.Hour(), end.Minute()),
		Color:     model.ColorBlue,
	}
}

func (m Model) renderForm() string {
	heading := "New event"
	if m.Form.IsEdit {
		heading = "Edit event"
	}
	fields := []views.FormFieldData{
		{Label: "Title", View: m.Form.title.View(), Focused: m.Form.Focus == FieldTitle},
		{Label: "Start date", View: m.Form.startDate.View(), Focused: m.Form.Focus == FieldStartDate},
	}
	if !m.Form.Draft.AllDay {
		fields = append(fields, views.FormFieldData{Label: "Start time", View: m.Form.startTime.View(), Focused: m.Form.Focus == FieldStartTime})
	}
	fields = append(fields, views.FormFieldData{Label: "End date", View: m.Form.endDate.View(), Focused: m.Form.Focus == FieldEndDate})
	if !m.Form.Draft.AllDay {
		fields = append(fields, views.FormFieldData{Label: "End time", View: m.Form.endTime.View(), Focused: m.Form.Focus == FieldEndTime})
	}
	fields = append(fields,
		views.FormFieldData{Label: "Location", View: m.Form.location.View(), Focused: m.Form.Focus == FieldLocation},
		views.FormFieldData{Label: "Description", View: m.Form.description.View(), Focused: m.Form.Focus == FieldDescription},
	)

	return views.RenderForm(views.FormData{
		Heading:      heading,
		Fields:       fields,
		Color:        string(formColors[m.Form.colorIdx]),
		ColorFocused: m.Form.Focus == FieldColor,
		AllDay:       m.Form.Draft.AllDay,
		IsEdit:       m.Form.IsEdit,
		Err:          m.Form.Err,
		Preview:      views.RenderMarkdown(m.Form.description.Value()),
	})
}
