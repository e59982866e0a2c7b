// Package gesture implements the drag-to-create, drag-to-move and
// drag-to-resize interactions as a pure state machine. It consumes pointer
// events in the shared pixel space plus a hit-testing surface, and emits
// typed effects; it never mutates the store or the screen itself.
package gesture

import (
	"math"

	"github.com/gridcal/gridcal/internal/model"
	"github.com/gridcal/gridcal/internal/timegrid"
	"github.com/gridcal/gridcal/internal/view"
)

type Point struct {
	X, Y float64
}

func (p Point) distanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

type Config struct {
	// DragThresholdPx is how far the pointer must travel before a press
	// becomes a drag. Below it, a press is a plain click.
	DragThresholdPx float64
	// CreateSnap and MoveSnap are hour fractions: 0.25 snaps to 15
	// minutes, 1/12 to 5 minutes.
	CreateSnap float64
	MoveSnap   float64
	// MinDurationMin is the shortest timed event a gesture may produce.
	MinDurationMin int
	// HandlePx is the height of the resize grab bands at an event's top
	// and bottom edges.
	HandlePx float64
}

func DefaultConfig() Config {
	return Config{
		DragThresholdPx: 10,
		CreateSnap:      0.25,
		MoveSnap:        1.0 / 12.0,
		MinDurationMin:  30,
		HandlePx:        6,
	}
}

// Surface is the geometry the engine hit-tests against. The coordinator
// rebuilds it whenever the grid or the event layout changes.
type Surface interface {
	CellAt(x, y float64) (view.Cell, bool)
	PlacementAt(x, y float64) (view.Placement, bool)
	EventByID(id string) (model.Event, bool)
}

// Effect is what a pointer event asks the coordinator to do.
type Effect interface{ isEffect() }

type None struct{}
type ClearSelection struct{}
type SelectEvent struct{ ID string }
type OpenEditor struct{ Event model.Event }
type OpenDraft struct{ Draft model.Event }
type UpdateEvent struct{ Event model.Event }

func (None) isEffect()           {}
func (ClearSelection) isEffect() {}
func (SelectEvent) isEffect()    {}
func (OpenEditor) isEffect()     {}
func (OpenDraft) isEffect()      {}
func (UpdateEvent) isEffect()    {}

type FeedbackKind int

const (
	FeedbackNone FeedbackKind = iota
	FeedbackCreate
	FeedbackMove
	FeedbackResize
)

// Feedback describes the live indicator to draw while a drag is active.
type Feedback struct {
	Kind      FeedbackKind
	Indicator view.Rect
	Label     string
	SourceID  string
	AllDay    bool
}

// The machine state is a tagged union: exactly one of these at a time.
type state interface{ isState() }

type idleState struct{}

type pendingCreateState struct {
	anchor view.Cell
	origin Point
}

type creatingState struct {
	anchor        view.Cell
	origin        Point
	startFraction float64
	heightPx      float64
	endCell       view.Cell
	hasEnd        bool
}

type pendingMoveState struct {
	ev         model.Event
	box        view.Placement
	origin     Point
	grabOffset Point
}

type movingState struct {
	ev           model.Event
	box          view.Placement
	grabOffset   Point
	target       view.Cell
	targetMinute int
	hasTarget    bool
}

type resizingState struct {
	ev        model.Event
	box       view.Placement
	edge      Edge
	origin    Point
	started   bool
	targetDay string
	targetMin int
	hasTarget bool
}

func (idleState) isState()          {}
func (pendingCreateState) isState() {}
func (creatingState) isState()      {}
func (pendingMoveState) isState()   {}
func (movingState) isState()        {}
func (resizingState) isState()      {}

type Engine struct {
	cfg      Config
	surface  Surface
	st       state
	feedback Feedback
}

func New(cfg Config, surface Surface) *Engine {
	if cfg.DragThresholdPx <= 0 {
		cfg.DragThresholdPx = DefaultConfig().DragThresholdPx
	}
	if cfg.CreateSnap <= 0 {
		cfg.CreateSnap = DefaultConfig().CreateSnap
	}
	if cfg.MoveSnap <= 0 {
		cfg.MoveSnap = DefaultConfig().MoveSnap
	}
	if cfg.MinDurationMin <= 0 {
		cfg.MinDurationMin = DefaultConfig().MinDurationMin
	}
	if cfg.HandlePx <= 0 {
		cfg.HandlePx = DefaultConfig().HandlePx
	}
	return &Engine{cfg: cfg, surface: surface, st: idleState{}}
}

// Active reports whether a drag indicator is live.
func (e *Engine) Active() bool {
	switch e.st.(type) {
	case creatingState, movingState:
		return true
	case resizingState:
		return e.st.(resizingState).started
	}
	return false
}

func (e *Engine) Feedback() Feedback { return e.feedback }

// Reset abandons any gesture in progress.
func (e *Engine) Reset() {
	e.st = idleState{}
	e.feedback = Feedback{}
}

// MouseDown starts a gesture. Pressing an event selects it immediately;
// pressing a grid cell arms a create drag but commits nothing yet.
func (e *Engine) MouseDown(p Point) Effect {
	e.feedback = Feedback{}

	if box, ok := e.surface.PlacementAt(p.X, p.Y); ok {
		ev, ok := e.surface.EventByID(box.ID)
		if !ok {
			return None{}
		}
		if !box.AllDay {
			if edge, ok := e.edgeAt(box, p); ok {
				e.st = resizingState{ev: ev, box: box, edge: edge, origin: p}
				return SelectEvent{ID: ev.ID}
			}
		}
		e.st = pendingMoveState{
			ev:         ev,
			box:        box,
			origin:     p,
			grabOffset: Point{X: p.X - box.Rect.Left, Y: p.Y - box.Rect.Top},
		}
		return SelectEvent{ID: ev.ID}
	}

	if cell, ok := e.surface.CellAt(p.X, p.Y); ok && (cell.Hour >= 0 || cell.AllDay) {
		e.st = pendingCreateState{anchor: cell, origin: p}
	}
	return None{}
}

func (e *Engine) edgeAt(box view.Placement, p Point) (Edge, bool) {
	if p.Y <= box.Rect.Top+e.cfg.HandlePx {
		return EdgeTop, true
	}
	if p.Y >= box.Rect.Bottom()-e.cfg.HandlePx {
		return EdgeBottom, true
	}
	return "", false
}

// MouseMove advances the active gesture and refreshes the feedback. A
// pointer position with no cell under it is a no-op frame.
func (e *Engine) MouseMove(p Point) Feedback {
	switch st := e.st.(type) {
	case pendingCreateState:
		if st.origin.distanceTo(p) < e.cfg.DragThresholdPx {
			return e.feedback
		}
		start := timegrid.SnapFraction(
			timegrid.CellFraction(st.origin.Y, st.anchor.Rect.Top, st.anchor.Rect.Height),
			e.cfg.CreateSnap)
		e.st = creatingState{anchor: st.anchor, origin: st.origin, startFraction: start}
		return e.MouseMove(p)

	case creatingState:
		e.trackCreate(&st, p)
		e.st = st
		return e.feedback

	case pendingMoveState:
		if st.origin.distanceTo(p) < e.cfg.DragThresholdPx {
			return e.feedback
		}
		e.st = movingState{ev: st.ev, box: st.box, grabOffset: st.grabOffset}
		return e.MouseMove(p)

	case movingState:
		e.trackMove(&st, p)
		e.st = st
		return e.feedback

	case resizingState:
		if !st.started {
			if st.origin.distanceTo(p) < e.cfg.DragThresholdPx {
				return e.feedback
			}
			st.started = true
		}
		e.trackResize(&st, p)
		e.st = st
		return e.feedback
	}
	return e.feedback
}

func (e *Engine) trackCreate(st *creatingState, p Point) {
	if st.anchor.AllDay {
		if cell, ok := e.surface.CellAt(p.X, p.Y); ok && cell.AllDay {
			st.endCell = cell
			st.hasEnd = true
		}
		left := st.anchor.Rect.Left
		right := st.anchor.Rect.Left + st.anchor.Rect.Width
		if st.hasEnd {
			if st.endCell.Rect.Left < left {
				left = st.endCell.Rect.Left
			}
			if r := st.endCell.Rect.Left + st.endCell.Rect.Width; r > right {
				right = r
			}
		}
		e.feedback = Feedback{
			Kind:      FeedbackCreate,
			AllDay:    true,
			Indicator: view.Rect{Left: left, Top: st.anchor.Rect.Top, Width: right - left, Height: st.anchor.Rect.Height},
			Label:     "all day",
		}
		return
	}

	top := st.anchor.Rect.Top + st.startFraction*st.anchor.Rect.Height
	snapPx := e.cfg.CreateSnap * st.anchor.Rect.Height
	raw := p.Y - top
	height := math.Round(raw/snapPx) * snapPx
	if height < 0 {
		height = 0
	}
	st.heightPx = height

	if cell, ok := e.surface.CellAt(p.X, p.Y); ok && cell.Hour >= 0 {
		st.endCell = cell
		st.hasEnd = true
	}

	startMin := timegrid.MinuteOfDay(st.anchor.Hour, timegrid.MinutesFromFraction(st.startFraction))
	endMin := startMin + timegrid.MinutesSpanned(height, st.anchor.Rect.Height)
	e.feedback = Feedback{
		Kind:      FeedbackCreate,
		Indicator: view.Rect{Left: st.anchor.Rect.Left, Top: top, Width: st.anchor.Rect.Width, Height: height},
		Label:     rangeLabel(startMin, endMin),
	}
}

func (e *Engine) trackMove(st *movingState, p Point) {
	corrected := Point{X: p.X - st.grabOffset.X, Y: p.Y - st.grabOffset.Y}
	cell, ok := e.surface.CellAt(corrected.X+1, corrected.Y+1)
	if !ok {
		return
	}
	st.target = cell
	st.hasTarget = true
	if cell.AllDay {
		st.targetMinute = 0
		e.feedback = Feedback{
			Kind:      FeedbackMove,
			AllDay:    true,
			Indicator: cell.Rect,
			SourceID:  st.ev.ID,
			Label:     "all day",
		}
		return
	}
	fraction := timegrid.SnapFraction(
		timegrid.CellFraction(corrected.Y, cell.Rect.Top, cell.Rect.Height),
		e.cfg.MoveSnap)
	st.targetMinute = timegrid.MinutesFromFraction(fraction)

	duration := st.ev.DurationMinutes()
	if duration <= 0 {
		duration += timegrid.MinutesPerDay
	}
	startMin := timegrid.MinuteOfDay(cell.Hour, st.targetMinute)
	e.feedback = Feedback{
		Kind: FeedbackMove,
		Indicator: view.Rect{
			Left:   cell.Rect.Left,
			Top:    cell.Rect.Top + fraction*cell.Rect.Height,
			Width:  cell.Rect.Width,
			Height: float64(duration) / 60 * cell.Rect.Height,
		},
		SourceID: st.ev.ID,
		Label:    rangeLabel(startMin, startMin+duration),
	}
}

func (e *Engine) trackResize(st *resizingState, p Point) {
	cell, ok := e.surface.CellAt(p.X, p.Y)
	if !ok || cell.Hour < 0 {
		return
	}
	fraction := timegrid.SnapFraction(
		timegrid.CellFraction(p.Y, cell.Rect.Top, cell.Rect.Height),
		e.cfg.MoveSnap)
	st.targetDay = cell.Date
	st.targetMin = cell.Hour*60 + int(math.Round(fraction*60))
	st.hasTarget = true

	minPx := float64(e.cfg.MinDurationMin) / 60 * cell.Rect.Height
	edgeY := cell.Rect.Top + fraction*cell.Rect.Height
	ind := st.box.Rect
	if st.edge == EdgeBottom {
		bottom := edgeY
		if bottom < ind.Top+minPx {
			bottom = ind.Top + minPx
		}
		ind.Height = bottom - ind.Top
	} else {
		top := edgeY
		if top > st.box.Rect.Bottom()-minPx {
			top = st.box.Rect.Bottom() - minPx
		}
		ind.Height = st.box.Rect.Bottom() - top
		ind.Top = top
	}
	e.feedback = Feedback{
		Kind:      FeedbackResize,
		Indicator: ind,
		SourceID:  st.ev.ID,
		Label:     edgeLabel(st.targetMin),
	}
}

// MouseUp ends the gesture and produces its effect. Gestures that never
// found a valid target are abandoned without mutation.
func (e *Engine) MouseUp(p Point) Effect {
	defer e.Reset()

	switch st := e.st.(type) {
	case pendingCreateState:
		return ClearSelection{}

	case creatingState:
		return e.commitCreate(st)

	case pendingMoveState:
		return OpenEditor{Event: st.ev}

	case movingState:
		if !st.hasTarget {
			return None{}
		}
		return e.commitMove(st)

	case resizingState:
		if !st.started {
			return OpenEditor{Event: st.ev}
		}
		if !st.hasTarget {
			return None{}
		}
		return e.commitResize(st)
	}
	return None{}
}

func (e *Engine) commitCreate(st creatingState) Effect {
	if st.anchor.AllDay {
		draft := model.Event{Color: model.ColorBlue}
		draft.MarkAllDay(st.anchor.Date)
		if st.hasEnd && st.endCell.Date > st.anchor.Date {
			draft.EndDate = st.endCell.Date
		}
		return OpenDraft{Draft: draft}
	}

	duration := timegrid.MinutesSpanned(st.heightPx, st.anchor.Rect.Height)
	if duration < e.cfg.MinDurationMin {
		return ClearSelection{}
	}

	startMinute := timegrid.MinutesFromFraction(st.startFraction)
	startOfDay := timegrid.MinuteOfDay(st.anchor.Hour, startMinute)
	endDate, endOfDay, err := timegrid.AddMinutes(st.anchor.Date, startOfDay, duration)
	if err != nil {
		return None{}
	}
	endHour, endMinute := timegrid.ClockFromMinute(endOfDay)

	draft := model.Event{
		StartDate: st.anchor.Date,
		StartTime: timegrid.Clock(st.anchor.Hour, startMinute),
		EndDate:   endDate,
		EndTime:   timegrid.Clock(endHour, endMinute),
		Color:     model.ColorBlue,
	}
	return OpenDraft{Draft: draft}
}

func (e *Engine) commitMove(st movingState) Effect {
	ev := st.ev
	if st.target.AllDay {
		ev.MarkAllDay(st.target.Date)
		return UpdateEvent{Event: ev}
	}

	duration := st.ev.DurationMinutes()
	if duration <= 0 {
		duration += timegrid.MinutesPerDay
	}
	startOfDay := timegrid.MinuteOfDay(st.target.Hour, st.targetMinute)
	endDate, endOfDay, err := timegrid.AddMinutes(st.target.Date, startOfDay, duration)
	if err != nil {
		return None{}
	}
	endHour, endMinute := timegrid.ClockFromMinute(endOfDay)

	ev.AllDay = false
	ev.StartDate = st.target.Date
	ev.StartTime = timegrid.Clock(st.target.Hour, st.targetMinute)
	ev.EndDate = endDate
	ev.EndTime = timegrid.Clock(endHour, endMinute)
	return UpdateEvent{Event: ev}
}

func (e *Engine) commitResize(st resizingState) Effect {
	ev := st.ev
	hour, minute := timegrid.ClockFromMinute(st.targetMin)

	if st.edge == EdgeBottom {
		candidate := ev
		candidate.EndDate = st.targetDay
		candidate.EndTime = timegrid.Clock(hour, minute)
		if candidate.DurationMinutes() < e.cfg.MinDurationMin {
			return None{}
		}
		return UpdateEvent{Event: candidate}
	}

	candidate := ev
	candidate.StartDate = st.targetDay
	candidate.StartTime = timegrid.Clock(hour, minute)
	if candidate.DurationMinutes() < e.cfg.MinDurationMin {
		return None{}
	}
	return UpdateEvent{Event: candidate}
}

func rangeLabel(startMin, endMin int) string {
	sh, sm := timegrid.ClockFromMinute(startMin)
	eh, em := timegrid.ClockFromMinute(endMin)
	return timegrid.FormatClock12h(sh, sm) + " - " + timegrid.FormatClock12h(eh, em)
}

func edgeLabel(minuteOfDay int) string {
	h, m := timegrid.ClockFromMinute(minuteOfDay)
	return timegrid.FormatClock12h(h, m)
}
