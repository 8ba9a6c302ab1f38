package planner

import (
	"fmt"
	"time"

	"github.com/chris-regnier/famcal/internal/calendar"
	"github.com/chris-regnier/famcal/internal/event"
	applog "github.com/chris-regnier/famcal/internal/log"
	"github.com/chris-regnier/famcal/internal/person"
	"github.com/chris-regnier/famcal/internal/storage"
)

// Session owns a State and the storage it was loaded from. It is not safe
// for concurrent use.
type Session struct {
	store storage.Storage
	state State
}

// Open loads the snapshot and theme from store. A store without persons is
// seeded with the default person and saved.
func Open(store storage.Storage, now time.Time) (*Session, error) {
	snap, err := storage.LoadSnapshot(store)
	if err != nil {
		return nil, err
	}
	theme, err := storage.LoadTheme(store)
	if err != nil {
		return nil, err
	}

	seeded := false
	if len(snap.Persons) == 0 {
		snap.Persons = []person.Person{person.Seed()}
		if err := storage.SaveSnapshot(store, snap); err != nil {
			return nil, fmt.Errorf("seeding default person: %w", err)
		}
		seeded = true
	}

	s := &Session{store: store, state: New(snap, theme, now)}
	applog.Info("session opened", "persons", len(snap.Persons), "seeded", seeded, "theme", s.state.Theme)
	return s, nil
}

// Dispatch applies in and persists the result. When the flush fails the
// in-memory state has still advanced and the storage error is returned.
func (s *Session) Dispatch(in Intent) (Render, error) {
	res, err := Apply(s.state, in)
	if err != nil {
		applog.Debug("intent rejected", "intent", fmt.Sprintf("%T", in), "err", err)
		return RenderNone, err
	}
	s.state = res.State

	switch res.Flush {
	case FlushStore:
		if err := storage.SaveSnapshot(s.store, s.state.Snapshot()); err != nil {
			applog.Error("flushing snapshot", err)
			return res.Render, err
		}
		applog.Debug("snapshot flushed", "intent", fmt.Sprintf("%T", in))
	case FlushTheme:
		if err := storage.SaveTheme(s.store, s.state.Theme); err != nil {
			applog.Error("flushing theme", err)
			return res.Render, err
		}
	}
	return res.Render, nil
}

// State returns a copy of the current state.
func (s *Session) State() State {
	return s.state.clone()
}

func (s *Session) ActivePerson() (person.Person, bool) {
	return s.state.ActivePerson()
}

func (s *Session) ActiveEvents() []event.Event {
	return append([]event.Event{}, s.state.ActiveEvents()...)
}

// Grid lays out the current month for the active person.
func (s *Session) Grid() []calendar.Cell {
	return s.state.Grid()
}
