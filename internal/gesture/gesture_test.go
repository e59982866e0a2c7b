package gesture

import (
	"testing"
	"time"

	"github.com/gridcal/gridcal/internal/model"
	"github.com/gridcal/gridcal/internal/view"
)

// testSurface wires a real day grid and real placements into the engine.
type testSurface struct {
	grid       view.Grid
	placements []view.Placement
	events     map[string]model.Event
}

func newTestSurface(t *testing.T, events ...model.Event) *testSurface {
	t.Helper()
	now := time.Date(2024, time.May, 11, 12, 0, 0, 0, time.Local)
	grid := view.Generate(now, view.KindDay, view.DefaultSettings(), now)
	s := &testSurface{grid: grid, events: map[string]model.Event{}}
	for _, ev := range events {
		s.events[ev.ID] = ev
	}
	s.placements = view.LayoutEvents(grid, events)
	return s
}

func (s *testSurface) CellAt(x, y float64) (view.Cell, bool) { return s.grid.CellAt(x, y) }

func (s *testSurface) PlacementAt(x, y float64) (view.Placement, bool) {
	return view.PlacementAt(s.placements, x, y)
}

func (s *testSurface) EventByID(id string) (model.Event, bool) {
	ev, ok := s.events[id]
	return ev, ok
}

func timedEvent(id, start, end string) model.Event {
	return model.Event{
		ID:        id,
		Title:     "Busy",
		StartDate: "2024-05-11",
		StartTime: start,
		EndDate:   "2024-05-11",
		EndTime:   end,
		Color:     model.ColorBlue,
	}
}

// Default layout: all-day row is 40px tall, hour h starts at 40 + h*60,
// day column starts at x=60.

func TestCreateDragProducesDraft(t *testing.T) {
	e := New(DefaultConfig(), newTestSurface(t))

	if eff := e.MouseDown(Point{70, 580}); (eff != None{}) {
		t.Fatalf("mousedown on empty cell should be silent, got %T", eff)
	}
	e.MouseMove(Point{70, 640})
	if !e.Active() {
		t.Fatalf("expected an active create drag")
	}

	eff := e.MouseUp(Point{70, 640})
	draft, ok := eff.(OpenDraft)
	if !ok {
		t.Fatalf("expected OpenDraft, got %T", eff)
	}
	if draft.Draft.StartDate != "2024-05-11" || draft.Draft.StartTime != "09:00" {
		t.Fatalf("unexpected start: %s %s", draft.Draft.StartDate, draft.Draft.StartTime)
	}
	if draft.Draft.EndTime != "10:00" {
		t.Fatalf("expected end 10:00, got %s", draft.Draft.EndTime)
	}
	if e.Active() {
		t.Fatalf("gesture should be reset after mouseup")
	}
}

func TestCreateDragBelowMinimumIsDiscarded(t *testing.T) {
	e := New(DefaultConfig(), newTestSurface(t))

	e.MouseDown(Point{70, 580})
	e.MouseMove(Point{70, 590})

	eff := e.MouseUp(Point{70, 590})
	if _, ok := eff.(OpenDraft); ok {
		t.Fatalf("a sub-minimum drag must not create an event")
	}
	if (eff != ClearSelection{}) {
		t.Fatalf("expected ClearSelection, got %T", eff)
	}
}

func TestCreateDragSnapsToQuarterHour(t *testing.T) {
	e := New(DefaultConfig(), newTestSurface(t))

	// Press at 09:10-ish (10px into the cell): snaps to 09:15.
	e.MouseDown(Point{70, 590})
	e.MouseMove(Point{70, 655})

	eff := e.MouseUp(Point{70, 655})
	draft, ok := eff.(OpenDraft)
	if !ok {
		t.Fatalf("expected OpenDraft, got %T", eff)
	}
	if draft.Draft.StartTime != "09:15" {
		t.Fatalf("expected snapped start 09:15, got %s", draft.Draft.StartTime)
	}
}

func TestPlainClickOnCellClearsSelection(t *testing.T) {
	e := New(DefaultConfig(), newTestSurface(t))
	e.MouseDown(Point{70, 580})
	eff := e.MouseUp(Point{70, 583})
	if (eff != ClearSelection{}) {
		t.Fatalf("expected ClearSelection, got %T", eff)
	}
}

func TestClickOnEventOpensEditor(t *testing.T) {
	ev := timedEvent("ev-1", "09:00", "10:30")
	e := New(DefaultConfig(), newTestSurface(t, ev))

	eff := e.MouseDown(Point{70, 620})
	sel, ok := eff.(SelectEvent)
	if !ok || sel.ID != "ev-1" {
		t.Fatalf("expected SelectEvent ev-1, got %#v", eff)
	}

	eff = e.MouseUp(Point{71, 622})
	open, ok := eff.(OpenEditor)
	if !ok || open.Event.ID != "ev-1" {
		t.Fatalf("expected OpenEditor ev-1, got %#v", eff)
	}
}

func TestMovePreservesDuration(t *testing.T) {
	ev := timedEvent("ev-1", "09:00", "10:30")
	e := New(DefaultConfig(), newTestSurface(t, ev))

	e.MouseDown(Point{70, 620})
	e.MouseMove(Point{70, 920})

	eff := e.MouseUp(Point{70, 920})
	upd, ok := eff.(UpdateEvent)
	if !ok {
		t.Fatalf("expected UpdateEvent, got %T", eff)
	}
	if upd.Event.StartTime != "14:00" {
		t.Fatalf("expected start 14:00, got %s", upd.Event.StartTime)
	}
	if upd.Event.EndTime != "15:30" {
		t.Fatalf("expected end 15:30 (duration preserved), got %s", upd.Event.EndTime)
	}
}

func TestMoveAcrossMidnightRollsDate(t *testing.T) {
	ev := timedEvent("ev-1", "10:00", "11:30")
	e := New(DefaultConfig(), newTestSurface(t, ev))

	// Grab 20px below the event top, drop so the event starts at 23:00.
	e.MouseDown(Point{70, 660})
	e.MouseMove(Point{70, 1440})

	eff := e.MouseUp(Point{70, 1440})
	upd, ok := eff.(UpdateEvent)
	if !ok {
		t.Fatalf("expected UpdateEvent, got %T", eff)
	}
	if upd.Event.StartTime != "23:00" || upd.Event.StartDate != "2024-05-11" {
		t.Fatalf("unexpected start: %s %s", upd.Event.StartDate, upd.Event.StartTime)
	}
	if upd.Event.EndDate != "2024-05-12" || upd.Event.EndTime != "00:30" {
		t.Fatalf("expected end next day 00:30, got %s %s", upd.Event.EndDate, upd.Event.EndTime)
	}
}

func TestMoveToAllDayRowConvertsEvent(t *testing.T) {
	ev := timedEvent("ev-1", "09:00", "10:30")
	e := New(DefaultConfig(), newTestSurface(t, ev))

	e.MouseDown(Point{70, 620})
	e.MouseMove(Point{70, 55})

	eff := e.MouseUp(Point{70, 55})
	upd, ok := eff.(UpdateEvent)
	if !ok {
		t.Fatalf("expected UpdateEvent, got %T", eff)
	}
	if !upd.Event.AllDay {
		t.Fatalf("expected all-day conversion")
	}
	if upd.Event.StartDate != "2024-05-11" || upd.Event.EndDate != "2024-05-11" {
		t.Fatalf("expected both dates on the drop day, got %s/%s", upd.Event.StartDate, upd.Event.EndDate)
	}
	if upd.Event.StartTime != "00:00" || upd.Event.EndTime != "23:59" {
		t.Fatalf("expected pinned all-day times, got %s/%s", upd.Event.StartTime, upd.Event.EndTime)
	}
}

func TestMoveWithoutTargetIsAbandoned(t *testing.T) {
	ev := timedEvent("ev-1", "09:00", "10:30")
	e := New(DefaultConfig(), newTestSurface(t, ev))

	e.MouseDown(Point{70, 620})
	e.MouseMove(Point{-500, -500})

	eff := e.MouseUp(Point{-500, -500})
	if (eff != None{}) {
		t.Fatalf("expected abandoned gesture, got %#v", eff)
	}
}

func TestResizeBottomExtendsEvent(t *testing.T) {
	ev := timedEvent("ev-1", "09:00", "10:00")
	e := New(DefaultConfig(), newTestSurface(t, ev))

	// Bottom edge sits at y=640; grab inside the 6px handle band.
	eff := e.MouseDown(Point{70, 636})
	if _, ok := eff.(SelectEvent); !ok {
		t.Fatalf("expected SelectEvent, got %T", eff)
	}
	e.MouseMove(Point{70, 700})

	eff = e.MouseUp(Point{70, 700})
	upd, ok := eff.(UpdateEvent)
	if !ok {
		t.Fatalf("expected UpdateEvent, got %T", eff)
	}
	if upd.Event.EndTime != "11:00" {
		t.Fatalf("expected end 11:00, got %s", upd.Event.EndTime)
	}
	if upd.Event.StartTime != "09:00" {
		t.Fatalf("start edge must not move, got %s", upd.Event.StartTime)
	}
}

func TestResizeBelowMinimumIsRejected(t *testing.T) {
	ev := timedEvent("ev-1", "09:00", "10:00")
	e := New(DefaultConfig(), newTestSurface(t, ev))

	e.MouseDown(Point{70, 636})
	e.MouseMove(Point{70, 590})

	eff := e.MouseUp(Point{70, 590})
	if (eff != None{}) {
		t.Fatalf("a below-minimum resize must leave the event unchanged, got %#v", eff)
	}
}

func TestResizeTopSnapsToFiveMinutes(t *testing.T) {
	ev := timedEvent("ev-1", "09:00", "10:30")
	e := New(DefaultConfig(), newTestSurface(t, ev))

	// Top edge at y=580; drag it down 33px: 33/60 of an hour snaps to 35 min.
	e.MouseDown(Point{70, 582})
	e.MouseMove(Point{70, 613})

	eff := e.MouseUp(Point{70, 613})
	upd, ok := eff.(UpdateEvent)
	if !ok {
		t.Fatalf("expected UpdateEvent, got %T", eff)
	}
	if upd.Event.StartTime != "09:35" {
		t.Fatalf("expected snapped start 09:35, got %s", upd.Event.StartTime)
	}
	if upd.Event.EndTime != "10:30" {
		t.Fatalf("end edge must not move, got %s", upd.Event.EndTime)
	}
}

func TestAllDayCreateDrag(t *testing.T) {
	e := New(DefaultConfig(), newTestSurface(t))

	e.MouseDown(Point{70, 20})
	e.MouseMove(Point{90, 20})

	eff := e.MouseUp(Point{90, 20})
	draft, ok := eff.(OpenDraft)
	if !ok {
		t.Fatalf("expected OpenDraft, got %T", eff)
	}
	if !draft.Draft.AllDay {
		t.Fatalf("expected an all-day draft")
	}
	if draft.Draft.StartTime != "00:00" || draft.Draft.EndTime != "23:59" {
		t.Fatalf("expected pinned times, got %s/%s", draft.Draft.StartTime, draft.Draft.EndTime)
	}
}

func TestFeedbackDuringCreate(t *testing.T) {
	e := New(DefaultConfig(), newTestSurface(t))

	e.MouseDown(Point{70, 580})
	fb := e.MouseMove(Point{70, 640})
	if fb.Kind != FeedbackCreate {
		t.Fatalf("expected create feedback, got %v", fb.Kind)
	}
	if fb.Indicator.Top != 580 || fb.Indicator.Height != 60 {
		t.Fatalf("unexpected indicator: %+v", fb.Indicator)
	}
	if fb.Label != "9:00 AM - 10:00 AM" {
		t.Fatalf("unexpected label: %s", fb.Label)
	}
}

func TestResizeFeedbackRefusesToShrinkPastMinimum(t *testing.T) {
	ev := timedEvent("ev-1", "09:00", "10:00")
	e := New(DefaultConfig(), newTestSurface(t, ev))

	e.MouseDown(Point{70, 636})
	fb := e.MouseMove(Point{70, 590})
	if fb.Kind != FeedbackResize {
		t.Fatalf("expected resize feedback, got %v", fb.Kind)
	}
	if fb.Indicator.Height < 30 {
		t.Fatalf("indicator shrank below the minimum: %+v", fb.Indicator)
	}
}
