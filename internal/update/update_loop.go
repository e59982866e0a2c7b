package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gridcal/gridcal/internal/view"
	"github.com/gridcal/gridcal/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.ticker != nil {
		return waitForTickCmd(m.ticker.C())
	}
	return nil
}

func waitForTickCmd(c <-chan time.Time) tea.Cmd {
	return func() tea.Msg {
		at, ok := <-c
		if !ok {
			return nil
		}
		return ClockTickMsg{At: at}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(typed)

	case tea.MouseMsg:
		return m.handleMouse(typed), nil

	case ClockTickMsg:
		m.Now = typed.At
		m.refreshGrid()
		if m.ticker != nil {
			return m, waitForTickCmd(m.ticker.C())
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	if m.Form.Active {
		return m.handleFormKey(key)
	}
	if m.Prompt.Active {
		return m.handlePromptKey(key)
	}
	if m.Menu.Active {
		return m.handleMenuKey(key)
	}

	switch key.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Day:
		m.switchKind(view.KindDay)
		return m, nil
	case m.Keys.Week:
		m.switchKind(view.KindWeek)
		return m, nil
	case m.Keys.Month:
		m.switchKind(view.KindMonth)
		return m, nil
	case m.Keys.Custom:
		m.switchKind(view.KindCustom)
		return m, nil
	case m.Keys.Today:
		m.Anchor = m.Now
		m.refreshGrid()
		m.autoScrollToNow()
		return m, nil
	case m.Keys.Prev, "h":
		m.Anchor = view.Shift(m.Anchor, m.Kind, m.Settings.CustomDays, -1)
		m.refreshGrid()
		return m, nil
	case m.Keys.Next, "l":
		m.Anchor = view.Shift(m.Anchor, m.Kind, m.Settings.CustomDays, 1)
		m.refreshGrid()
		return m, nil
	case m.Keys.Prompt:
		m.Prompt.Active = true
		m.Prompt.input.SetValue("")
		m.Prompt.input.Focus()
		m.Status = StatusBar{Text: "describe the event and press enter"}
		return m, nil
	case m.Keys.NewDraft:
		m.openDraftForm(m.draftAtNow())
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "enter":
		if ev, ok := m.eventByID(m.SelectedID); ok {
			m.openEditForm(ev)
		}
		return m, nil
	case "delete", "backspace":
		// Only reachable with no form focused; the form swallows its
		// own key events above.
		return m.deleteSelected(), nil
	case "esc":
		m.SelectedID = ""
		m.engine.Reset()
		return m, nil
	}
	return m, nil
}

func (m Model) deleteSelected() Model {
	if m.SelectedID == "" {
		return m
	}
	id := m.SelectedID
	removed, err := m.store.Remove(context.Background(), id)
	if err != nil {
		m.logger.Error("remove event", zap.String("id", id), zap.Error(err))
		m.Status = StatusBar{Text: "delete failed: " + err.Error(), IsError: true}
		return m
	}
	if !removed {
		m.Status = StatusBar{Text: "event already gone"}
	} else {
		m.Status = StatusBar{Text: "event deleted"}
	}
	m.SelectedID = ""
	m.reloadEvents()
	m.refreshGrid()
	return m
}

func (m *Model) switchKind(kind view.Kind) {
	m.Kind = kind
	m.scrollPx = 0
	m.refreshGrid()
	m.autoScrollToNow()
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	var leftPane string
	if m.Kind == view.KindMonth {
		leftPane = views.RenderMonth(views.MonthData{
			Grid:       m.Grid,
			Events:     m.Events,
			SelectedID: m.SelectedID,
		})
	} else {
		leftPane = views.RenderTimed(views.TimedData{
			Grid:        m.Grid,
			Placements:  m.surface.placements,
			Events:      m.surface.events,
			SelectedID:  m.SelectedID,
			Feedback:    m.engine.Feedback(),
			Now:         m.Now,
			ScrollPx:    m.scrollPx,
			VisibleRows: m.gridRows(),
			WeekNumbers: m.Settings.ShowWeekNumbers,
		})
	}

	rightPane := ""
	switch {
	case m.Form.Active:
		rightPane = m.renderForm()
	case m.Prompt.Active:
		rightPane = m.renderPrompt()
	case m.Menu.Active:
		rightPane = m.renderMenu()
	case m.HelpVisible:
		rightPane = m.renderHelp()
	}

	header := fmt.Sprintf("gridcal | %s | %s", m.Grid.HeaderTitle(), m.Kind)
	return views.RenderApp(views.AppData{
		Header:     header,
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Footer: fmt.Sprintf("keys: %s/%s/%s/%s views | %s today | %s/%s nav | %s new | %s ai | %s help | %s quit",
			m.Keys.Day, m.Keys.Week, m.Keys.Month, m.Keys.Custom,
			m.Keys.Today, m.Keys.Prev, m.Keys.Next,
			m.Keys.NewDraft, m.Keys.Prompt, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) gridRows() int {
	rows := m.height - views.ChromeRows
	if rows < 8 {
		rows = 24
	}
	return rows
}

func (m Model) renderHelp() string {
	return views.RenderHelp()
}
