package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	formErrStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	menuCursorStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
)

type FormFieldData struct {
	Label   string
	View    string
	Focused bool
}

type FormData struct {
	Heading      string
	Fields       []FormFieldData
	Color        string
	ColorFocused bool
	AllDay       bool
	IsEdit       bool
	Err          string
	Preview      string
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(data.Heading))
	b.WriteString("\n\n")

	for _, f := range data.Fields {
		style := labelStyle
		if f.Focused {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(f.Label))
		b.WriteString("\n")
		b.WriteString(f.View)
		b.WriteString("\n")
	}

	colorLabel := labelStyle
	if data.ColorFocused {
		colorLabel = focusedLabelStyle
	}
	b.WriteString(colorLabel.Render("Color"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("< %s >\n", data.Color))

	allDay := "[ ] all day (ctrl+a)"
	if data.AllDay {
		allDay = "[x] all day (ctrl+a)"
	}
	b.WriteString(allDay)
	b.WriteString("\n")

	if data.Preview != "" {
		b.WriteString("\n")
		b.WriteString(data.Preview)
		b.WriteString("\n")
	}
	if data.Err != "" {
		b.WriteString("\n")
		b.WriteString(formErrStyle.Render(data.Err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := "enter save | esc close | tab next field"
	if data.IsEdit {
		footer += " | ctrl+d delete"
	}
	b.WriteString(footerStyle.Render(footer))
	return b.String()
}

type MenuData struct {
	Title  string
	Items  []string
	Cursor int
}

func RenderMenu(data MenuData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(data.Title))
	b.WriteString("\n\n")
	for i, item := range data.Items {
		if i == data.Cursor {
			b.WriteString(menuCursorStyle.Render("> " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("enter choose | esc close"))
	return b.String()
}

type PromptData struct {
	Input string
}

func RenderPrompt(data PromptData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Quick add"))
	b.WriteString("\n\n")
	b.WriteString(data.Input)
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("enter parse | esc cancel"))
	return b.String()
}

func RenderHelp() string {
	lines := []string{
		headerStyle.Render("gridcal"),
		"",
		"drag on the grid to create an event",
		"drag an event to move it; drag its edge to resize",
		"click an event to edit, right-click for a menu",
		"",
		"d/w/m/c  day, week, month, custom views",
		"t        jump to today",
		"←/→      previous / next",
		"n        new event",
		"/        quick add from a text prompt",
		"del      delete the selected event",
		"q        quit",
	}
	return strings.Join(lines, "\n")
}
