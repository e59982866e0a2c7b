package view

import (
	"github.com/gridcal/gridcal/internal/model"
	"github.com/gridcal/gridcal/internal/timegrid"
)

// Placement is the pixel box an event occupies on a timed grid. The
// gesture engine hit-tests these boxes for move and resize.
type Placement struct {
	ID     string
	Rect   Rect
	AllDay bool
}

// LayoutEvents computes the placement of every visible event on a timed
// grid. Month grids render events inline and get no placements. Events
// whose start falls outside the visible hour band are skipped.
func LayoutEvents(g Grid, events []model.Event) []Placement {
	if g.Kind == KindMonth {
		return nil
	}
	placements := make([]Placement, 0, len(events))
	for _, ev := range events {
		if ev.AllDay {
			cell, ok := g.AllDayCellFor(ev.StartDate)
			if !ok {
				continue
			}
			placements = append(placements, Placement{ID: ev.ID, Rect: cell.Rect, AllDay: true})
			continue
		}
		hour, minute, err := timegrid.ParseClock(ev.StartTime)
		if err != nil {
			continue
		}
		cell, ok := g.CellFor(ev.StartDate, hour)
		if !ok {
			continue
		}
		top := cell.Rect.Top + float64(minute)/60*cell.Rect.Height
		height := float64(ev.DurationMinutes()) / 60 * cell.Rect.Height
		if height < cell.Rect.Height/4 {
			height = cell.Rect.Height / 4
		}
		placements = append(placements, Placement{
			ID: ev.ID,
			Rect: Rect{
				Left:   cell.Rect.Left,
				Top:    top,
				Width:  cell.Rect.Width,
				Height: height,
			},
		})
	}
	return placements
}

// PlacementAt returns the topmost placement containing the point.
func PlacementAt(placements []Placement, x, y float64) (Placement, bool) {
	for i := len(placements) - 1; i >= 0; i-- {
		if placements[i].Rect.Contains(x, y) {
			return placements[i], true
		}
	}
	return Placement{}, false
}
