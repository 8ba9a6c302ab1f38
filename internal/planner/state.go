// Package planner holds the application state and the transitions between
// states. Apply is pure; Session binds a State to a storage backend and
// flushes after mutating transitions.
package planner

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/chris-regnier/famcal/internal/calendar"
	"github.com/chris-regnier/famcal/internal/event"
	"github.com/chris-regnier/famcal/internal/person"
	"github.com/chris-regnier/famcal/internal/storage"
)

var (
	// ErrNoActivePerson indicates an event operation with no person selected.
	ErrNoActivePerson = errors.New("no active person: add or select a person first")

	// ErrPersonNotFound indicates a person ID that is not in the registry.
	ErrPersonNotFound = errors.New("person not found")
)

// Cursor is what the view is currently looking at.
type Cursor struct {
	Page           calendar.Page
	ActivePersonID string
}

// EditorState describes the event editor. An empty EventID means the editor
// is creating a new event for Date.
type EditorState struct {
	Open    bool
	Date    string
	EventID string
}

// State is the complete in-memory application state.
type State struct {
	Persons []person.Person
	Events  map[string][]event.Event
	Cursor  Cursor
	Editor  EditorState
	Theme   string
	Today   string
}

// New builds the initial state from a loaded snapshot. The cursor starts on
// the month containing now with the first person active.
func New(snap storage.Snapshot, theme string, now time.Time) State {
	s := State{
		Persons: append([]person.Person{}, snap.Persons...),
		Events:  map[string][]event.Event{},
		Cursor:  Cursor{Page: calendar.PageOf(now)},
		Theme:   theme,
		Today:   calendar.Today(now),
	}
	for id, events := range snap.Events {
		s.Events[id] = append([]event.Event{}, events...)
	}
	if s.Theme != storage.ThemeDark {
		s.Theme = storage.ThemeLight
	}
	s.normalize()
	return s
}

// Snapshot returns the persisted part of the state. Event lists of unknown
// persons are dropped.
func (s State) Snapshot() storage.Snapshot {
	snap := storage.Snapshot{
		Persons: append([]person.Person{}, s.Persons...),
		Events:  map[string][]event.Event{},
	}
	for _, p := range s.Persons {
		if events, ok := s.Events[p.ID]; ok {
			snap.Events[p.ID] = append([]event.Event{}, events...)
		}
	}
	return snap
}

// ActivePerson returns the person the cursor points at.
func (s State) ActivePerson() (person.Person, bool) {
	return s.person(s.Cursor.ActivePersonID)
}

func (s State) person(id string) (person.Person, bool) {
	if id == "" {
		return person.Person{}, false
	}
	for _, p := range s.Persons {
		if p.ID == id {
			return p, true
		}
	}
	return person.Person{}, false
}

// FindPerson resolves ref as an exact ID, then as a case-insensitive name.
func (s State) FindPerson(ref string) (person.Person, bool) {
	ref = strings.TrimSpace(ref)
	if p, ok := s.person(ref); ok {
		return p, true
	}
	for _, p := range s.Persons {
		if strings.EqualFold(p.Name, ref) {
			return p, true
		}
	}
	return person.Person{}, false
}

// EventsFor returns the stored events of a person in insertion order.
func (s State) EventsFor(personID string) []event.Event {
	return s.Events[personID]
}

// ActiveEvents returns the active person's events in insertion order.
func (s State) ActiveEvents() []event.Event {
	return s.Events[s.Cursor.ActivePersonID]
}

// SortedEvents returns the active person's events ordered by date.
func (s State) SortedEvents() []event.Event {
	events := append([]event.Event{}, s.ActiveEvents()...)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
	return events
}

// EventOn returns the active person's event on date.
func (s State) EventOn(date string) (event.Event, bool) {
	for _, e := range s.ActiveEvents() {
		if e.Date == date {
			return e, true
		}
	}
	return event.Event{}, false
}

// EditingEvent returns the event the open editor is bound to, if any.
func (s State) EditingEvent() (event.Event, bool) {
	if !s.Editor.Open || s.Editor.EventID == "" {
		return event.Event{}, false
	}
	return s.activeEvent(s.Editor.EventID)
}

func (s State) activeEvent(id string) (event.Event, bool) {
	for _, e := range s.ActiveEvents() {
		if e.ID == id {
			return e, true
		}
	}
	return event.Event{}, false
}

// Grid lays out the cursor's month with the active person's events.
func (s State) Grid() []calendar.Cell {
	return s.Cursor.Page.Grid(s.ActiveEvents(), s.Today)
}

func (s State) clone() State {
	c := s
	c.Persons = append([]person.Person{}, s.Persons...)
	c.Events = make(map[string][]event.Event, len(s.Events))
	for id, events := range s.Events {
		c.Events[id] = append([]event.Event{}, events...)
	}
	return c
}

// normalize points the cursor at the first person when the active person is
// missing, or clears it when there are no persons.
func (s *State) normalize() {
	if _, ok := s.ActivePerson(); ok {
		return
	}
	s.Cursor.ActivePersonID = ""
	if len(s.Persons) > 0 {
		s.Cursor.ActivePersonID = s.Persons[0].ID
	}
}

// IsValidation reports whether err was caused by bad input rather than by
// the storage backend.
func IsValidation(err error) bool {
	return errors.Is(err, storage.ErrValidation) || errors.Is(err, storage.ErrNotFound)
}

func validation(err error) error {
	return fmt.Errorf("%w: %w", storage.ErrValidation, err)
}

func notFound(id string) error {
	return fmt.Errorf("%w: %w: %s", storage.ErrNotFound, ErrPersonNotFound, id)
}
