// Package export writes a person's events as CSV, iCalendar or JSON.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chris-regnier/famcal/internal/event"
	"github.com/chris-regnier/famcal/internal/person"
)

// ErrNothingToExport is returned for a person without events.
var ErrNothingToExport = errors.New("no events to export for this person")

// Formats lists the supported format names, which double as file extensions.
var Formats = []string{"csv", "ics", "json"}

// Sorted returns a copy of events ordered ascending by date.
func Sorted(events []event.Event) []event.Event {
	out := append([]event.Event{}, events...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// FileName returns "<person name>.<ext>", or "export.<ext>" for an empty name.
func FileName(name, ext string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "export"
	}
	name = strings.NewReplacer("/", "-", `\`, "-").Replace(name)
	return name + "." + ext
}

// Write writes events in the named format.
func Write(w io.Writer, format string, p person.Person, events []event.Event, opts ...Option) error {
	switch format {
	case "csv":
		return WriteCSV(w, events)
	case "ics":
		return WriteICS(w, p, events, opts...)
	case "json":
		return WriteJSON(w, p, events)
	default:
		return fmt.Errorf("unknown export format %q (use %s)", format, strings.Join(Formats, ", "))
	}
}

// Document is the JSON export shape.
type Document struct {
	Person person.Person `json:"person"`
	Events []event.Event `json:"events"`
}

// WriteJSON writes {person, events} with events sorted by date.
func WriteJSON(w io.Writer, p person.Person, events []event.Event) error {
	if len(events) == 0 {
		return ErrNothingToExport
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{Person: p, Events: Sorted(events)})
}
