package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gridcal/gridcal/internal/gesture"
	"github.com/gridcal/gridcal/internal/model"
	"github.com/gridcal/gridcal/internal/timegrid"
	"github.com/gridcal/gridcal/internal/view"
)

var (
	axisStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dayHeadStyle    = lipgloss.NewStyle().Bold(true)
	todayHeadStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	gridLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	nowLineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	indicatorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	selectedStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
	draggingStyle   = lipgloss.NewStyle().Faint(true)
	otherMonthStyle = lipgloss.NewStyle().Faint(true)

	colorStyles = map[model.Color]lipgloss.Style{
		model.ColorBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		model.ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		model.ColorPurple: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		model.ColorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

type TimedData struct {
	Grid        view.Grid
	Placements  []view.Placement
	Events      map[string]model.Event
	SelectedID  string
	Feedback    gesture.Feedback
	Now         time.Time
	ScrollPx    float64
	VisibleRows int
	WeekNumbers bool
}

// RenderTimed paints a day, week or custom grid one terminal row at a
// time: every row is a horizontal slice of the shared pixel space.
func RenderTimed(data TimedData) string {
	if len(data.Grid.Days) == 0 {
		return "no visible days"
	}

	axisCols := int(data.Grid.Cells[0].Rect.Left / PxPerCol)
	if axisCols < 6 {
		axisCols = 8
	}
	colCols := int(data.Grid.Cells[0].Rect.Width / PxPerCol)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", axisCols))
	for _, day := range data.Grid.Days {
		label := day.Format("Mon 2")
		if data.WeekNumbers {
			label = fmt.Sprintf("%s W%d", label, timegrid.WeekNumber(day))
		}
		style := dayHeadStyle
		if timegrid.DateKey(day) == timegrid.DateKey(data.Now) {
			style = todayHeadStyle
		}
		b.WriteString(style.Render(pad(label, colCols)))
	}
	b.WriteString("\n")

	allDayH := data.Grid.Cells[0].Rect.Top
	hourH := data.Grid.Cells[0].Rect.Height

	nowKey := timegrid.DateKey(data.Now)
	nowY := -1.0
	if h := data.Now.Hour(); h >= data.Grid.HourStart && h <= data.Grid.HourEnd {
		nowY = allDayH + (float64(h-data.Grid.HourStart)+float64(data.Now.Minute())/60)*hourH
	}

	for row := 0; row < data.VisibleRows; row++ {
		yTop := data.ScrollPx + float64(row)*PxPerRow
		yMid := yTop + PxPerRow/2

		b.WriteString(axisStyle.Render(pad(axisLabel(data.Grid, yTop, allDayH, hourH), axisCols)))
		for i, day := range data.Grid.Days {
			key := timegrid.DateKey(day)
			left := data.Grid.Cells[0].Rect.Left + float64(i)*data.Grid.Cells[0].Rect.Width
			xc := left + 2
			b.WriteString(renderSlice(data, xc, yTop, yMid, colCols, key == nowKey, nowY, allDayH, hourH))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func axisLabel(g view.Grid, yTop, allDayH, hourH float64) string {
	if yTop < allDayH {
		if yTop == 0 {
			return "all-day"
		}
		return ""
	}
	offset := yTop - allDayH
	if int(offset)%int(hourH) != 0 {
		return ""
	}
	hour := g.HourStart + int(offset/hourH)
	if hour > g.HourEnd {
		return ""
	}
	return timegrid.FormatHourLabel(hour)
}

func renderSlice(data TimedData, xc, yTop, yMid float64, width int, isToday bool, nowY, allDayH, hourH float64) string {
	fb := data.Feedback
	if fb.Kind != gesture.FeedbackNone && fb.Indicator.Contains(xc, yMid) {
		text := strings.Repeat("▒", width)
		if !fb.Indicator.Contains(xc, yMid-PxPerRow) && fb.Label != "" {
			text = pad("▒ "+fb.Label, width)
		}
		return indicatorStyle.Render(text)
	}

	if p, ok := placementAtColumn(data.Placements, xc, yMid); ok {
		ev := data.Events[p.ID]
		style, ok := colorStyles[ev.Color]
		if !ok {
			style = colorStyles[model.ColorBlue]
		}
		if p.ID == data.SelectedID {
			style = selectedStyle
		}
		if p.ID == fb.SourceID && fb.Kind != gesture.FeedbackNone {
			style = draggingStyle
		}
		if !p.Rect.Contains(xc, yMid-PxPerRow) {
			label := ev.Title
			if !p.AllDay {
				if h, min, err := timegrid.ParseClock(ev.StartTime); err == nil {
					label = fmt.Sprintf("%s %s", timegrid.FormatClock12h(h, min), ev.Title)
				}
			}
			return style.Render(pad("▎"+label, width))
		}
		return style.Render(pad("▎", width))
	}

	if isToday && nowY >= yTop && nowY < yTop+PxPerRow {
		return nowLineStyle.Render(strings.Repeat("╌", width))
	}

	if yTop >= allDayH && int(yTop-allDayH)%int(hourH) == 0 {
		return gridLineStyle.Render(strings.Repeat("┄", width))
	}
	return strings.Repeat(" ", width)
}

func placementAtColumn(placements []view.Placement, xc, yMid float64) (view.Placement, bool) {
	return view.PlacementAt(placements, xc, yMid)
}

// Month cells are fixed text blocks, not slices of the pixel space:
// MonthCellCols columns wide and MonthCellRows lines tall, a day-number
// line followed by up to two event lines. Mouse hit-testing on the month
// view works in these units.
const (
	MonthCellCols = 14
	MonthCellRows = 4
)

type MonthData struct {
	Grid       view.Grid
	Events     []model.Event
	SelectedID string
}

// RenderMonth paints the classic 7-column month grid with events listed
// inside their day cells.
func RenderMonth(data MonthData) string {
	const cellWidth = MonthCellCols
	weekdays := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

	var b strings.Builder
	for _, wd := range weekdays {
		b.WriteString(dayHeadStyle.Render(pad(wd, cellWidth)))
	}
	b.WriteString("\n")

	for week := 0; week*7 < len(data.Grid.Cells); week++ {
		cells := data.Grid.Cells[week*7 : week*7+7]
		rendered := make([]string, 0, 7)
		for _, cell := range cells {
			rendered = append(rendered, renderMonthCell(cell, data, cellWidth))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderMonthCell(cell view.Cell, data MonthData, width int) string {
	day, _ := timegrid.ParseDateKey(cell.Date)
	numStyle := lipgloss.NewStyle()
	if cell.OtherMonth {
		numStyle = otherMonthStyle
	}
	if cell.Today {
		numStyle = todayHeadStyle
	}
	lines := []string{numStyle.Render(pad(fmt.Sprintf("%d", day.Day()), width))}

	var dayEvents []model.Event
	for _, ev := range data.Events {
		if ev.OccursOn(cell.Date) {
			dayEvents = append(dayEvents, ev)
		}
	}
	for i, ev := range dayEvents {
		if i >= 2 {
			lines = append(lines, axisStyle.Render(pad("…", width)))
			break
		}
		style, ok := colorStyles[ev.Color]
		if !ok {
			style = colorStyles[model.ColorBlue]
		}
		if ev.ID == data.SelectedID {
			style = selectedStyle
		}
		lines = append(lines, style.Render(pad("▪"+truncate(ev.Title, width-2), width)))
	}
	for len(lines) < MonthCellRows {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func pad(s string, width int) string {
	s = truncate(s, width)
	if n := len([]rune(s)); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
