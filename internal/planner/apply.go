package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chris-regnier/famcal/internal/event"
	"github.com/chris-regnier/famcal/internal/person"
	"github.com/chris-regnier/famcal/internal/storage"
)

// Render tells the view what to redraw after a transition.
type Render int

const (
	RenderNone Render = iota
	// RenderMain redraws the calendar, event list and editor.
	RenderMain
	// RenderAll also redraws the person tabs and panel.
	RenderAll
)

func (r Render) String() string {
	switch r {
	case RenderMain:
		return "main"
	case RenderAll:
		return "all"
	default:
		return "none"
	}
}

// Flush tells the session what to persist after a transition.
type Flush int

const (
	FlushNone Flush = iota
	// FlushStore writes the persons and events records.
	FlushStore
	// FlushTheme writes the theme record.
	FlushTheme
)

// Result is the outcome of applying an intent.
type Result struct {
	State  State
	Render Render
	Flush  Flush
}

// Apply computes the state that follows s after in. s is never modified; on
// error the returned Result carries s unchanged.
func Apply(s State, in Intent) (Result, error) {
	next := s.clone()
	var (
		res Result
		err error
	)
	switch in := in.(type) {
	case SelectPerson:
		res, err = selectPerson(next, in)
	case OpenDay:
		res, err = openDay(next, in)
	case SaveEvent:
		res, err = saveEvent(next, in)
	case DeleteEvent:
		res, err = deleteEvent(next)
	case CloseEditor:
		next.Editor = EditorState{}
		res = Result{State: next, Render: RenderMain}
	case AddPerson:
		res, err = addPerson(next, in)
	case EditPerson:
		res, err = editPerson(next, in)
	case RemovePerson:
		res, err = removePerson(next, in)
	case ChangeMonth:
		next.Cursor.Page = next.Cursor.Page.Shift(in.Delta)
		res = Result{State: next, Render: RenderMain}
	case ToggleTheme:
		next.Theme = toggledTheme(next.Theme)
		res = Result{State: next, Render: RenderAll, Flush: FlushTheme}
	default:
		err = fmt.Errorf("unknown intent %T", in)
	}
	if err != nil {
		return Result{State: s}, err
	}
	return res, nil
}

func toggledTheme(theme string) string {
	if theme == storage.ThemeDark {
		return storage.ThemeLight
	}
	return storage.ThemeDark
}

func selectPerson(s State, in SelectPerson) (Result, error) {
	if _, ok := s.person(in.ID); !ok {
		return Result{}, notFound(in.ID)
	}
	s.Cursor.ActivePersonID = in.ID
	s.Editor = EditorState{}
	return Result{State: s, Render: RenderAll}, nil
}

func openDay(s State, in OpenDay) (Result, error) {
	if err := event.ValidateDate(in.Date); err != nil {
		return Result{}, validation(err)
	}
	s.Editor = EditorState{Open: true, Date: in.Date}
	if in.EventID != "" {
		if e, ok := s.activeEvent(in.EventID); ok {
			s.Editor.EventID = e.ID
			s.Editor.Date = e.Date
		}
	} else if e, ok := s.EventOn(in.Date); ok {
		s.Editor.EventID = e.ID
	}
	return Result{State: s, Render: RenderMain}, nil
}

func saveEvent(s State, in SaveEvent) (Result, error) {
	p, ok := s.ActivePerson()
	if !ok {
		return Result{}, validation(ErrNoActivePerson)
	}
	start := event.NormalizeTime(in.Start)
	end := event.NormalizeTime(in.End)
	note := strings.TrimSpace(in.Note)

	events := s.Events[p.ID]
	if s.Editor.Open && s.Editor.EventID != "" {
		for i := range events {
			if events[i].ID == s.Editor.EventID {
				events[i].Start = start
				events[i].End = end
				events[i].Note = note
				s.Editor = EditorState{}
				return Result{State: s, Render: RenderMain, Flush: FlushStore}, nil
			}
		}
	}

	date := in.Date
	if date == "" {
		date = s.Editor.Date
	}
	if err := event.ValidateDate(date); err != nil {
		return Result{}, validation(err)
	}
	id, err := event.NewID()
	if err != nil {
		return Result{}, fmt.Errorf("%w: generating event ID: %v", storage.ErrStorage, err)
	}
	kept := make([]event.Event, 0, len(events)+1)
	for _, e := range events {
		if e.Date != date {
			kept = append(kept, e)
		}
	}
	s.Events[p.ID] = append(kept, event.Event{ID: id, Date: date, Start: start, End: end, Note: note})
	s.Editor = EditorState{}
	return Result{State: s, Render: RenderMain, Flush: FlushStore}, nil
}

func deleteEvent(s State) (Result, error) {
	if !s.Editor.Open || s.Editor.EventID == "" {
		return Result{State: s, Render: RenderNone}, nil
	}
	id := s.Cursor.ActivePersonID
	events := s.Events[id]
	kept := make([]event.Event, 0, len(events))
	for _, e := range events {
		if e.ID != s.Editor.EventID {
			kept = append(kept, e)
		}
	}
	s.Events[id] = kept
	s.Editor = EditorState{}
	return Result{State: s, Render: RenderMain, Flush: FlushStore}, nil
}

func addPerson(s State, in AddPerson) (Result, error) {
	if len(s.Persons) >= person.MaxPersons {
		return Result{}, validation(person.ErrRegistryFull)
	}
	p, err := person.New(in.Name, in.Color)
	if err != nil {
		if errors.Is(err, person.ErrEmptyName) {
			return Result{}, validation(err)
		}
		return Result{}, fmt.Errorf("%w: %v", storage.ErrStorage, err)
	}
	s.Persons = append(s.Persons, p)
	s.normalize()
	return Result{State: s, Render: RenderAll, Flush: FlushStore}, nil
}

func editPerson(s State, in EditPerson) (Result, error) {
	for i := range s.Persons {
		if s.Persons[i].ID == in.ID {
			s.Persons[i].Apply(in.Name, in.Color)
			return Result{State: s, Render: RenderAll, Flush: FlushStore}, nil
		}
	}
	return Result{}, notFound(in.ID)
}

func removePerson(s State, in RemovePerson) (Result, error) {
	idx := -1
	for i, p := range s.Persons {
		if p.ID == in.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Result{State: s, Render: RenderNone}, nil
	}
	s.Persons = append(s.Persons[:idx], s.Persons[idx+1:]...)
	delete(s.Events, in.ID)
	if s.Cursor.ActivePersonID == in.ID {
		s.Editor = EditorState{}
	}
	s.normalize()
	return Result{State: s, Render: RenderAll, Flush: FlushStore}, nil
}
