package export

import (
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/chris-regnier/famcal/internal/event"
	"github.com/chris-regnier/famcal/internal/person"
)

const (
	productID = "-//famcal//famcal//EN"
	uidDomain = "famcal"

	// Floating local date-time, no zone.
	icsDateTime = "20060102T150405"
)

type options struct {
	now time.Time
}

// Option configures WriteICS.
type Option func(*options)

// WithNow fixes the DTSTAMP of exported events.
func WithNow(t time.Time) Option {
	return func(o *options) { o.now = t }
}

// WriteICS writes a VCALENDAR with one VEVENT per event. Events with a start
// time become floating timed events; the rest are all-day.
func WriteICS(w io.Writer, p person.Person, events []event.Event, opts ...Option) error {
	if len(events) == 0 {
		return ErrNothingToExport
	}
	o := options{now: time.Now()}
	for _, opt := range opts {
		opt(&o)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(p.Name)

	for _, e := range Sorted(events) {
		day, err := time.Parse(event.DateLayout, e.Date)
		if err != nil {
			// Stored dates are validated on save; skip anything that slipped through.
			continue
		}
		ve := cal.AddEvent(e.ID + "@" + uidDomain)
		ve.SetDtStampTime(o.now.UTC())
		ve.SetSummary(summary(p, e))
		if e.Note != "" {
			ve.SetDescription(e.Note)
		}

		start, ok := clock(day, e.Start)
		if !ok {
			ve.SetAllDayStartAt(day)
			ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}
		ve.SetProperty(ical.ComponentPropertyDtStart, start.Format(icsDateTime))
		if end, ok := clock(day, e.End); ok && end.After(start) {
			ve.SetProperty(ical.ComponentPropertyDtEnd, end.Format(icsDateTime))
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

func summary(p person.Person, e event.Event) string {
	if e.Note != "" {
		first, _, _ := strings.Cut(e.Note, "\n")
		return first
	}
	return p.Name + ": " + e.Label()
}

// clock combines day with an "HH:MM" value.
func clock(day time.Time, hhmm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, false
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), true
}
