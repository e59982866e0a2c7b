package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"

	"github.com/gridcal/gridcal/internal/clock"
	"github.com/gridcal/gridcal/internal/config"
	"github.com/gridcal/gridcal/internal/gesture"
	"github.com/gridcal/gridcal/internal/model"
	"github.com/gridcal/gridcal/internal/store"
	"github.com/gridcal/gridcal/internal/view"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Day      string
	Week     string
	Month    string
	Custom   string
	Today    string
	Prev     string
	Next     string
	Prompt   string
	NewDraft string
	Quit     string
	Help     string
}

type FormField int

const (
	FieldTitle FormField = iota
	FieldStartDate
	FieldStartTime
	FieldEndDate
	FieldEndTime
	FieldLocation
	FieldDescription
	FieldColor
	fieldCount
)

type FormState struct {
	Active bool
	IsEdit bool
	Draft  model.Event
	Focus  FormField
	Err    string

	title       textinput.Model
	startDate   textinput.Model
	startTime   textinput.Model
	endDate     textinput.Model
	endTime     textinput.Model
	location    textinput.Model
	description textarea.Model
	colorIdx    int
}

type MenuState struct {
	Active  bool
	EventID string
	Cursor  int
}

type PromptState struct {
	Active bool
	input  textinput.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ClockTickMsg struct {
	At time.Time
}

type Model struct {
	Anchor      time.Time
	Kind        view.Kind
	Settings    view.Settings
	Grid        view.Grid
	Events      []model.Event
	SelectedID  string
	Form        FormState
	Menu        MenuState
	Prompt      PromptState
	Status      StatusBar
	Keys        GlobalKeyMap
	Now         time.Time
	Quitting    bool
	LastError   error
	HelpVisible bool

	MinDurationMin int
	AutoScroll     bool

	store      store.Store
	engine     *gesture.Engine
	surface    *surfaceState
	ticker     *clock.Ticker
	logger     *zap.Logger
	scrollPx   float64
	warnedKind bool
	width      int
	height     int
}

// surfaceState is the hit-testing geometry shared with the gesture
// engine. It is rebuilt on every grid or event change.
type surfaceState struct {
	grid       view.Grid
	placements []view.Placement
	events     map[string]model.Event
}

func (s *surfaceState) CellAt(x, y float64) (view.Cell, bool) {
	return s.grid.CellAt(x, y)
}

func (s *surfaceState) PlacementAt(x, y float64) (view.Placement, bool) {
	return view.PlacementAt(s.placements, x, y)
}

func (s *surfaceState) EventByID(id string) (model.Event, bool) {
	ev, ok := s.events[id]
	return ev, ok
}

func NewModel(cfg config.Config, st store.Store, logger *zap.Logger, ticker *clock.Ticker) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now()

	settings := view.DefaultSettings()
	settings.CustomDays = cfg.View.CustomDays
	settings.ShowWeekends = cfg.View.ShowWeekends
	settings.ShowWeekNumbers = cfg.View.ShowWeekNumbers
	settings.CustomHourStart = cfg.View.CustomHourStart
	settings.CustomHourEnd = cfg.View.CustomHourEnd
	settings.TimeAxisWidth = 56

	surface := &surfaceState{events: map[string]model.Event{}}
	engine := gesture.New(gesture.Config{
		DragThresholdPx: float64(cfg.Gesture.DragThresholdPx),
		CreateSnap:      float64(cfg.Gesture.CreateSnapMinutes) / 60,
		MoveSnap:        float64(cfg.Gesture.MoveSnapMinutes) / 60,
		MinDurationMin:  cfg.Gesture.MinDurationMinutes,
	}, surface)

	m := Model{
		Anchor:         now,
		Kind:           view.Kind(cfg.View.Kind),
		Settings:       settings,
		Now:            now,
		MinDurationMin: cfg.Gesture.MinDurationMinutes,
		AutoScroll:     cfg.View.AutoScrollToNow,
		Keys: GlobalKeyMap{
			Day:      "d",
			Week:     "w",
			Month:    "m",
			Custom:   "c",
			Today:    "t",
			Prev:     "left",
			Next:     "right",
			Prompt:   "/",
			NewDraft: "n",
			Quit:     "q",
			Help:     "?",
		},
		store:   st,
		engine:  engine,
		surface: surface,
		ticker:  ticker,
		logger:  logger,
	}
	m.initFormInputs()
	m.initPromptInput()
	m.reloadEvents()
	m.refreshGrid()
	m.autoScrollToNow()
	return m
}

func (m *Model) initFormInputs() {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120

	mkDate := func() textinput.Model {
		in := textinput.New()
		in.Placeholder = "YYYY-MM-DD"
		in.CharLimit = 10
		return in
	}
	mkTime := func() textinput.Model {
		in := textinput.New()
		in.Placeholder = "HH:MM"
		in.CharLimit = 5
		return in
	}

	location := textinput.New()
	location.Placeholder = "Location"
	location.CharLimit = 120

	description := textarea.New()
	description.Placeholder = "Description (markdown)"
	description.SetHeight(4)

	m.Form.title = title
	m.Form.startDate = mkDate()
	m.Form.startTime = mkTime()
	m.Form.endDate = mkDate()
	m.Form.endTime = mkTime()
	m.Form.location = location
	m.Form.description = description
}

func (m *Model) initPromptInput() {
	in := textinput.New()
	in.Placeholder = "describe an event, e.g. \"lunch with sam tomorrow at 1pm\""
	in.CharLimit = 200
	m.Prompt.input = in
}

// reloadEvents pulls the full list from the store. Read failures keep
// the previous list and surface on the status bar.
func (m *Model) reloadEvents() {
	events, err := m.store.All(context.Background())
	if err != nil {
		m.logger.Error("load events", zap.Error(err))
		m.Status = StatusBar{Text: "could not load events: " + err.Error(), IsError: true}
		return
	}
	m.Events = events
}

// refreshGrid regenerates the grid and the event layout, keeping the
// gesture surface in sync. Selection survives iff the id still exists.
func (m *Model) refreshGrid() {
	grid := view.Generate(m.Anchor, m.Kind, m.Settings, m.Now)
	if grid.FellBack {
		if !m.warnedKind {
			m.logger.Warn("unknown view kind, using month", zap.String("kind", string(m.Kind)))
			m.warnedKind = true
		}
		m.Kind = view.KindMonth
	}
	m.Grid = grid

	byID := make(map[string]model.Event, len(m.Events))
	for _, ev := range m.Events {
		byID[ev.ID] = ev
	}
	if m.SelectedID != "" {
		if _, ok := byID[m.SelectedID]; !ok {
			m.SelectedID = ""
		}
	}

	m.surface.grid = grid
	m.surface.placements = view.LayoutEvents(grid, m.Events)
	m.surface.events = byID
}

func (m *Model) autoScrollToNow() {
	if !m.AutoScroll || m.Kind == view.KindMonth {
		return
	}
	if m.Grid.HourStart < 0 {
		return
	}
	hour := m.Now.Hour()
	if hour < m.Grid.HourStart {
		m.scrollPx = 0
		return
	}
	y := m.Settings.AllDayHeight + float64(hour-m.Grid.HourStart)*m.Settings.HourHeight
	m.scrollPx = y - 2*m.Settings.HourHeight
	if m.scrollPx < 0 {
		m.scrollPx = 0
	}
}

func (m Model) eventByID(id string) (model.Event, bool) {
	for _, ev := range m.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return model.Event{}, false
}
