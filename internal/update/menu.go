package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridcal/gridcal/internal/views"
)

const (
	menuItemEdit = iota
	menuItemDelete
	menuItemCount
)

func (m Model) handleMenuKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.Menu = MenuState{}
		return m, nil
	case "up", "k":
		m.Menu.Cursor = (m.Menu.Cursor + menuItemCount - 1) % menuItemCount
		return m, nil
	case "down", "j":
		m.Menu.Cursor = (m.Menu.Cursor + 1) % menuItemCount
		return m, nil
	case "enter":
		id := m.Menu.EventID
		cursor := m.Menu.Cursor
		m.Menu = MenuState{}
		switch cursor {
		case menuItemEdit:
			if ev, ok := m.eventByID(id); ok {
				m.openEditForm(ev)
			}
		case menuItemDelete:
			m.SelectedID = id
			return m.deleteSelected(), nil
		}
		return m, nil
	}
	return m, nil
}

func (m Model) renderMenu() string {
	title := ""
	if ev, ok := m.eventByID(m.Menu.EventID); ok {
		title = ev.Title
	}
	return views.RenderMenu(views.MenuData{
		Title:  title,
		Items:  []string{"Edit", "Delete"},
		Cursor: m.Menu.Cursor,
	})
}
