package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gridcal/gridcal/internal/gesture"
	"github.com/gridcal/gridcal/internal/model"
	"github.com/gridcal/gridcal/internal/view"
	"github.com/gridcal/gridcal/internal/views"
)

// pointFor maps a terminal coordinate into the pixel space the grid and
// the gesture engine share. Vertical scroll shifts the visible window.
func (m Model) pointFor(x, y int) gesture.Point {
	return gesture.Point{
		X: float64(x-views.ChromeLeftCols) * views.PxPerCol,
		Y: float64(y-views.ChromeTopRows)*views.PxPerRow + m.scrollPx,
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll(-views.PxPerRow * 2)
		return m
	case tea.MouseButtonWheelDown:
		m.scroll(views.PxPerRow * 2)
		return m
	}

	// Any click dismisses the context menu.
	if m.Menu.Active && msg.Action == tea.MouseActionPress {
		m.Menu = MenuState{}
	}

	if m.Kind == view.KindMonth {
		return m.handleMonthMouse(msg)
	}

	p := m.pointFor(msg.X, msg.Y)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.Form.Active {
			m.closeForm(true)
		}
		return m.applyEffect(m.engine.MouseDown(p))

	case msg.Action == tea.MouseActionMotion:
		m.engine.MouseMove(p)
		return m

	case msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft:
		return m.applyEffect(m.engine.MouseUp(p))

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		if box, ok := m.surface.PlacementAt(p.X, p.Y); ok {
			m.SelectedID = box.ID
			m.Menu = MenuState{Active: true, EventID: box.ID}
		}
		return m
	}
	return m
}

// handleMonthMouse hit-tests the month grid in its own text-block units
// rather than the pixel space. Clicking an event line opens its editor,
// right-clicking opens the context menu, anywhere else clears selection.
func (m Model) handleMonthMouse(msg tea.MouseMsg) Model {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if ev, ok := m.monthEventAt(msg.X, msg.Y); ok {
			if m.Form.Active {
				m.closeForm(true)
			}
			m.openEditForm(ev)
			return m
		}
		m.SelectedID = ""
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		if ev, ok := m.monthEventAt(msg.X, msg.Y); ok {
			m.SelectedID = ev.ID
			m.Menu = MenuState{Active: true, EventID: ev.ID}
		}
	}
	return m
}

// monthEventAt resolves a terminal coordinate to the event rendered on
// that line of a month cell, in the same order RenderMonth lists them.
func (m Model) monthEventAt(x, y int) (model.Event, bool) {
	col := (x - views.ChromeLeftCols) / views.MonthCellCols
	line := y - views.ChromeTopRows
	if x < views.ChromeLeftCols || col > 6 || line < 0 {
		return model.Event{}, false
	}
	week := line / views.MonthCellRows
	slot := line%views.MonthCellRows - 1
	idx := week*7 + col
	if slot < 0 || slot > 1 || idx >= len(m.Grid.Cells) {
		return model.Event{}, false
	}
	date := m.Grid.Cells[idx].Date
	n := 0
	for _, ev := range m.Events {
		if !ev.OccursOn(date) {
			continue
		}
		if n == slot {
			return ev, true
		}
		n++
	}
	return model.Event{}, false
}

func (m *Model) scroll(delta float64) {
	if m.Kind == view.KindMonth {
		return
	}
	m.scrollPx += delta
	if m.scrollPx < 0 {
		m.scrollPx = 0
	}
	max := m.Settings.AllDayHeight + float64(m.Grid.HourEnd-m.Grid.HourStart+1)*m.Settings.HourHeight
	if m.scrollPx > max {
		m.scrollPx = max
	}
}

// applyEffect carries out what the gesture engine asked for. This is the
// single place gestures touch the store and the selection.
func (m Model) applyEffect(eff gesture.Effect) Model {
	switch typed := eff.(type) {
	case gesture.SelectEvent:
		if m.SelectedID != typed.ID {
			m.SelectedID = typed.ID
		}
	case gesture.ClearSelection:
		if m.Form.Active {
			m.closeForm(true)
		}
		m.SelectedID = ""
	case gesture.OpenEditor:
		m.openEditForm(typed.Event)
	case gesture.OpenDraft:
		m.openDraftForm(typed.Draft)
	case gesture.UpdateEvent:
		if err := m.store.Update(context.Background(), typed.Event); err != nil {
			m.logger.Error("update event", zap.String("id", typed.Event.ID), zap.Error(err))
			m.Status = StatusBar{Text: "save failed: " + err.Error(), IsError: true}
		} else {
			m.Status = StatusBar{Text: "event updated"}
			m.reloadEvents()
		}
		m.refreshGrid()
	}
	return m
}
