package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridcal/gridcal/internal/ai"
	"github.com/gridcal/gridcal/internal/views"
)

func (m Model) handlePromptKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.Prompt.Active = false
		m.Status = StatusBar{}
		return m, nil
	case "enter":
		draft, err := ai.Parse(m.Prompt.input.Value(), m.Now)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Prompt.Active = false
		m.openDraftForm(draft.ToEvent())
		m.Status = StatusBar{Text: "review the draft and save"}
		return m, nil
	}

	var cmd tea.Cmd
	m.Prompt.input, cmd = m.Prompt.input.Update(key)
	return m, cmd
}

func (m Model) renderPrompt() string {
	return views.RenderPrompt(views.PromptData{Input: m.Prompt.input.View()})
}
