package mcptools

import (
	"fmt"
	"strings"

	"github.com/chris-regnier/famcal/internal/calendar"
	"github.com/chris-regnier/famcal/internal/event"
	"github.com/chris-regnier/famcal/internal/person"
	"github.com/chris-regnier/famcal/internal/planner"
	"github.com/chris-regnier/famcal/internal/storage"
)

// resolve finds the person ref names, or the active person when ref is
// empty. Callers must hold c.mu.
func (c *Calendar) resolve(ref string) (person.Person, error) {
	st := c.sess.State()
	if strings.TrimSpace(ref) == "" {
		if p, ok := st.ActivePerson(); ok {
			return p, nil
		}
		return person.Person{}, fmt.Errorf("%w: %w", storage.ErrValidation, planner.ErrNoActivePerson)
	}
	if p, ok := st.FindPerson(ref); ok {
		return p, nil
	}
	return person.Person{}, fmt.Errorf("%w: %w: %s", storage.ErrNotFound, planner.ErrPersonNotFound, ref)
}

// selectPerson resolves ref and makes it the session's active person.
func (c *Calendar) selectPerson(ref string) (person.Person, error) {
	p, err := c.resolve(ref)
	if err != nil {
		return person.Person{}, err
	}
	if _, err := c.sess.Dispatch(planner.SelectPerson{ID: p.ID}); err != nil {
		return person.Person{}, err
	}
	return p, nil
}

func parseMonth(s string, fallback calendar.Page) (calendar.Page, error) {
	if s == "" {
		return fallback, nil
	}
	return calendar.ParsePage(s)
}

func toEventResult(e event.Event) EventResult {
	return EventResult{
		ID:    e.ID,
		Date:  e.Date,
		Start: e.Start,
		End:   e.End,
		Note:  e.Note,
		Label: e.Label(),
	}
}

func toEventResults(events []event.Event) []EventResult {
	out := make([]EventResult, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResult(e))
	}
	return out
}
