package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chris-regnier/famcal/internal/event"
	"github.com/chris-regnier/famcal/internal/person"
)

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Snapshot is the full persisted calendar: the ordered person registry and
// each person's events keyed by person ID.
type Snapshot struct {
	Persons []person.Person
	Events  map[string][]event.Event
}

// LoadSnapshot reads the persons and events records. Missing records load as
// empty; malformed records fail with ErrStorage.
func LoadSnapshot(s Storage) (Snapshot, error) {
	snap := Snapshot{
		Persons: []person.Person{},
		Events:  map[string][]event.Event{},
	}
	if err := loadJSON(s, KeyPersons, &snap.Persons); err != nil {
		return Snapshot{}, err
	}
	if err := loadJSON(s, KeyEvents, &snap.Events); err != nil {
		return Snapshot{}, err
	}
	if snap.Persons == nil {
		snap.Persons = []person.Person{}
	}
	if snap.Events == nil {
		snap.Events = map[string][]event.Event{}
	}
	return snap, nil
}

func loadJSON(s Storage, key string, v any) error {
	raw, err := s.Get(key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: parsing %s record: %v", ErrStorage, key, err)
	}
	return nil
}

// SaveSnapshot writes both records together.
func SaveSnapshot(s Storage, snap Snapshot) error {
	persons := snap.Persons
	if persons == nil {
		persons = []person.Person{}
	}
	events := snap.Events
	if events == nil {
		events = map[string][]event.Event{}
	}

	p, err := json.Marshal(persons)
	if err != nil {
		return fmt.Errorf("%w: encoding persons: %v", ErrStorage, err)
	}
	e, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("%w: encoding events: %v", ErrStorage, err)
	}
	return s.SetMany(map[string]string{
		KeyPersons: string(p),
		KeyEvents:  string(e),
	})
}

// LoadTheme returns the saved theme. Anything other than "dark" reads as light.
func LoadTheme(s Storage) (string, error) {
	raw, err := s.Get(KeyTheme)
	if errors.Is(err, ErrNotFound) {
		return ThemeLight, nil
	}
	if err != nil {
		return "", err
	}
	if raw == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

// SaveTheme persists the theme preference.
func SaveTheme(s Storage, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("%w: unknown theme %q (use light or dark)", ErrValidation, theme)
	}
	return s.Set(KeyTheme, theme)
}
