// Package view builds the cell grids behind every calendar screen. A Grid
// carries both the calendar structure (which days, which hours) and the
// pixel rectangle of every cell, so the gesture engine and the renderer
// hit-test and draw against the same geometry.
package view

import (
	"fmt"
	"time"

	"github.com/gridcal/gridcal/internal/timegrid"
)

type Kind string

const (
	KindDay    Kind = "day"
	KindWeek   Kind = "week"
	KindMonth  Kind = "month"
	KindCustom Kind = "custom"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindDay, KindWeek, KindMonth, KindCustom:
		return true
	}
	return false
}

// Settings is the layout and behavior knobs the generator needs. Pixel
// sizes are in the abstract pixel space shared with the gesture engine.
type Settings struct {
	CustomDays      int
	ShowWeekends    bool
	ShowWeekNumbers bool

	// Hour band for the custom view. Day and week always show the full day.
	CustomHourStart int
	CustomHourEnd   int

	HourHeight     float64
	AllDayHeight   float64
	ColumnWidth    float64
	TimeAxisWidth  float64
	MonthRowHeight float64
}

func DefaultSettings() Settings {
	return Settings{
		CustomDays:      3,
		ShowWeekends:    true,
		ShowWeekNumbers: false,
		CustomHourStart: 16,
		CustomHourEnd:   23,
		HourHeight:      60,
		AllDayHeight:    40,
		ColumnWidth:     140,
		TimeAxisWidth:   60,
		MonthRowHeight:  100,
	}
}

type Rect struct {
	Left, Top, Width, Height float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height
}

func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Cell is one hit-testable region of a grid. Hour is -1 for all-day and
// month cells.
type Cell struct {
	Date       string
	Hour       int
	AllDay     bool
	OtherMonth bool
	Today      bool
	Rect       Rect
}

type Grid struct {
	Kind      Kind
	Anchor    time.Time
	Days      []time.Time
	Cells     []Cell
	HourStart int
	HourEnd   int

	// FellBack is set when an invalid kind was requested and the month
	// grid was produced instead. The caller decides whether to log it.
	FellBack bool
}

// Generate builds the grid for the given anchor date and view kind. An
// unknown kind falls back to the month grid.
func Generate(anchor time.Time, kind Kind, s Settings, now time.Time) Grid {
	fellBack := false
	if !kind.IsValid() {
		kind = KindMonth
		fellBack = true
	}
	var g Grid
	switch kind {
	case KindMonth:
		g = generateMonth(anchor, s, now)
	case KindWeek:
		start := startOfWeek(anchor)
		g = generateTimed(KindWeek, anchor, start, 7, 0, 23, true, s, now)
	case KindDay:
		g = generateTimed(KindDay, anchor, anchor, 1, 0, 23, true, s, now)
	case KindCustom:
		days := s.CustomDays
		if days < 1 {
			days = 1
		}
		g = generateTimed(KindCustom, anchor, anchor, days, s.CustomHourStart, s.CustomHourEnd, s.ShowWeekends, s, now)
	}
	g.FellBack = fellBack
	return g
}

// startOfWeek backs up to the Sunday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

func generateMonth(anchor time.Time, s Settings, now time.Time) Grid {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.Local)
	lead := int(first.Weekday())
	start := first.AddDate(0, 0, -lead)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	total := lead + daysInMonth
	total += (7 - total%7) % 7

	todayKey := timegrid.DateKey(now)
	g := Grid{Kind: KindMonth, Anchor: anchor, HourStart: -1, HourEnd: -1}
	for i := 0; i < total; i++ {
		day := start.AddDate(0, 0, i)
		g.Days = append(g.Days, day)
		key := timegrid.DateKey(day)
		g.Cells = append(g.Cells, Cell{
			Date:       key,
			Hour:       -1,
			OtherMonth: day.Month() != anchor.Month(),
			Today:      key == todayKey,
			Rect: Rect{
				Left:   float64(i%7) * s.ColumnWidth,
				Top:    float64(i/7) * s.MonthRowHeight,
				Width:  s.ColumnWidth,
				Height: s.MonthRowHeight,
			},
		})
	}
	return g
}

func generateTimed(kind Kind, anchor, start time.Time, dayCount, hourStart, hourEnd int, showWeekends bool, s Settings, now time.Time) Grid {
	if hourStart < 0 {
		hourStart = 0
	}
	if hourEnd > 23 {
		hourEnd = 23
	}
	if hourEnd < hourStart {
		hourStart, hourEnd = 0, 23
	}

	todayKey := timegrid.DateKey(now)
	g := Grid{Kind: kind, Anchor: anchor, HourStart: hourStart, HourEnd: hourEnd}

	col := 0
	for i := 0; i < dayCount; i++ {
		day := start.AddDate(0, 0, i)
		if !showWeekends && isWeekend(day) {
			continue
		}
		g.Days = append(g.Days, day)
		key := timegrid.DateKey(day)
		left := s.TimeAxisWidth + float64(col)*s.ColumnWidth
		today := key == todayKey

		for h := hourStart; h <= hourEnd; h++ {
			g.Cells = append(g.Cells, Cell{
				Date:  key,
				Hour:  h,
				Today: today,
				Rect: Rect{
					Left:   left,
					Top:    s.AllDayHeight + float64(h-hourStart)*s.HourHeight,
					Width:  s.ColumnWidth,
					Height: s.HourHeight,
				},
			})
		}
		g.Cells = append(g.Cells, Cell{
			Date:   key,
			Hour:   -1,
			AllDay: true,
			Today:  today,
			Rect:   Rect{Left: left, Top: 0, Width: s.ColumnWidth, Height: s.AllDayHeight},
		})
		col++
	}
	return g
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// CellAt hit-tests a point, preferring hour cells over all-day cells and
// returning the first match when rectangles overlap.
func (g Grid) CellAt(x, y float64) (Cell, bool) {
	for _, c := range g.Cells {
		if c.Hour >= 0 && c.Rect.Contains(x, y) {
			return c, true
		}
	}
	for _, c := range g.Cells {
		if c.Hour < 0 && c.Rect.Contains(x, y) {
			return c, true
		}
	}
	return Cell{}, false
}

// CellFor finds the first hour cell for a date key and hour. First match
// wins when duplicate keys exist.
func (g Grid) CellFor(date string, hour int) (Cell, bool) {
	for _, c := range g.Cells {
		if c.Date == date && c.Hour == hour {
			return c, true
		}
	}
	return Cell{}, false
}

// AllDayCellFor finds the first all-day cell for a date key.
func (g Grid) AllDayCellFor(date string) (Cell, bool) {
	for _, c := range g.Cells {
		if c.Date == date && c.AllDay {
			return c, true
		}
	}
	return Cell{}, false
}

// HeaderTitle renders the navigation header text for the grid.
func (g Grid) HeaderTitle() string {
	switch g.Kind {
	case KindCustom:
		if len(g.Days) == 0 {
			return g.Anchor.Format("January 2006")
		}
		first := g.Days[0]
		last := g.Days[len(g.Days)-1]
		if first.Month() == last.Month() && first.Year() == last.Year() {
			return fmt.Sprintf("%s %d-%d, %d", first.Format("Jan"), first.Day(), last.Day(), first.Year())
		}
		if first.Year() == last.Year() {
			return fmt.Sprintf("%s %d - %s %d, %d", first.Format("Jan"), first.Day(), last.Format("Jan"), last.Day(), first.Year())
		}
		return fmt.Sprintf("%s %d, %d - %s %d, %d", first.Format("Jan"), first.Day(), first.Year(), last.Format("Jan"), last.Day(), last.Year())
	default:
		return g.Anchor.Format("January 2006")
	}
}

// Shift moves the anchor by delta steps of the view's natural unit.
func Shift(anchor time.Time, kind Kind, customDays, delta int) time.Time {
	switch kind {
	case KindDay:
		return anchor.AddDate(0, 0, delta)
	case KindWeek:
		return anchor.AddDate(0, 0, 7*delta)
	case KindCustom:
		if customDays < 1 {
			customDays = 1
		}
		return anchor.AddDate(0, 0, customDays*delta)
	default:
		return anchor.AddDate(0, delta, 0)
	}
}
