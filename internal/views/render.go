package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Scale between terminal cells and the pixel space the grid geometry
// lives in. One hour cell (60px) is three terminal rows, one day column
// (140px) is twenty columns.
const (
	PxPerRow = 20.0
	PxPerCol = 7.0

	// ChromeTopRows is how many rows sit above the first grid slice: the
	// app header, the panel's top border, and the day-label line. Mouse
	// coordinates are shifted past them.
	ChromeTopRows = 3
	// ChromeLeftCols is the panel border plus its padding to the left of
	// the grid content.
	ChromeLeftCols = 2
	// ChromeRows is the total vertical chrome around the grid.
	ChromeRows = 6
)

type AppData struct {
	Header     string
	LeftPane   string
	RightPane  string
	StatusLine string
	Footer     string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	body := data.LeftPane
	if data.RightPane != "" {
		left := panelStyle.Render(data.LeftPane)
		right := panelStyle.Width(44).Render(data.RightPane)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	} else {
		body = panelStyle.Render(data.LeftPane)
	}

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		body,
		status,
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
