package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chris-regnier/famcal/internal/calendar"
	"github.com/chris-regnier/famcal/internal/event"
	"github.com/chris-regnier/famcal/internal/person"
)

// printCellWidth is the width of one day column in plain-text month output.
const printCellWidth = 12

// FormatMonth writes a printable month grid: the label, a weekday row, then
// two lines per week (day numbers, first event label). Today is marked with *.
func FormatMonth(w io.Writer, label string, weekdays [7]string, cells []calendar.Cell) {
	fmt.Fprintln(w, label)
	row := make([]string, 7)
	for i, d := range weekdays {
		row[i] = pad(d, printCellWidth)
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(row, ""), " "))

	for start := 0; start+7 <= len(cells); start += 7 {
		week := cells[start : start+7]
		days := make([]string, 7)
		labels := make([]string, 7)
		for i, c := range week {
			if c.Other {
				days[i] = pad("", printCellWidth)
				labels[i] = pad("", printCellWidth)
				continue
			}
			day := fmt.Sprintf("%2d", c.Day)
			if c.Today {
				day += "*"
			}
			days[i] = pad(day, printCellWidth)
			text := ""
			if len(c.Events) > 0 {
				text = c.Events[0].Label()
			}
			labels[i] = pad(" "+truncate(text, printCellWidth-1), printCellWidth)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(days, ""), " "))
		if line := strings.TrimRight(strings.Join(labels, ""), " "); line != "" {
			fmt.Fprintln(w, line)
		}
	}
}

// FormatEventList writes one line per event: date, time span, note preview.
func FormatEventList(w io.Writer, events []event.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}
	for _, e := range events {
		fmt.Fprintf(w, "%s  %-13s  %s\n", e.Date, timeRange(e), e.Preview(60))
	}
}

// FormatEvent writes a full event display with the note rendered as markdown.
func FormatEvent(w io.Writer, p person.Person, e event.Event, markdownStyle string) {
	fmt.Fprintf(w, "Event: %s\n", e.ID)
	fmt.Fprintf(w, "Person: %s\n", p.Name)
	fmt.Fprintf(w, "Date: %s\n", e.Date)
	if span := timeRange(e); span != "" {
		fmt.Fprintf(w, "Time: %s\n", span)
	}
	if note := RenderNote(e.Note, 80, markdownStyle); note != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, note)
	}
}

// FormatEventSaved confirms a save. replaced is the event that previously
// occupied the date, if any.
func FormatEventSaved(w io.Writer, e event.Event, replaced *event.Event) {
	fmt.Fprintf(w, "Saved event %s on %s", e.ID, e.Date)
	if span := timeRange(e); span != "" {
		fmt.Fprintf(w, " (%s)", span)
	}
	fmt.Fprintln(w)
	if replaced != nil {
		fmt.Fprintf(w, "Replaced event %s previously on %s.\n", replaced.ID, replaced.Date)
	}
}

func FormatEventDeleted(w io.Writer, e event.Event) {
	fmt.Fprintf(w, "Deleted event %s on %s.\n", e.ID, e.Date)
}

// FormatPersonList writes the registry in tab order; the active person is
// marked with *.
func FormatPersonList(w io.Writer, persons []PersonSummary) {
	if len(persons) == 0 {
		fmt.Fprintln(w, "No persons found.")
		return
	}
	for _, p := range persons {
		marker := " "
		if p.Active {
			marker = "*"
		}
		label := "events"
		if p.Events == 1 {
			label = "event"
		}
		fmt.Fprintf(w, "%s %-20s  %s  %-8s  %d %s\n", marker, p.Name, p.ID, p.Color, p.Events, label)
	}
}

func FormatPersonAdded(w io.Writer, p person.Person) {
	fmt.Fprintf(w, "Added person %s (%s)\n", p.Name, p.ID)
}

func FormatPersonUpdated(w io.Writer, p person.Person) {
	fmt.Fprintf(w, "Updated person %s (%s)\n", p.Name, p.ID)
}

// FormatPersonRemoved confirms a removal together with the number of events
// deleted with the person.
func FormatPersonRemoved(w io.Writer, p person.Person, events int) {
	fmt.Fprintf(w, "Removed person %s and %d events.\n", p.Name, events)
}

func FormatTheme(w io.Writer, theme string) {
	fmt.Fprintf(w, "Theme: %s\n", theme)
}

func FormatExported(w io.Writer, r ExportResult) {
	fmt.Fprintf(w, "Exported %d events to %s\n", r.Events, r.Path)
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PersonSummary is a JSON representation for person list output.
type PersonSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Active bool   `json:"active"`
	Events int    `json:"events"`
}

// DayResult is one in-month day of a MonthResult.
type DayResult struct {
	Date   string        `json:"date"`
	Today  bool          `json:"today,omitempty"`
	Events []event.Event `json:"events,omitempty"`
}

// MonthResult is the JSON representation of a month view.
type MonthResult struct {
	Month  string      `json:"month"`
	Label  string      `json:"label"`
	Person string      `json:"person"`
	Days   []DayResult `json:"days"`
}

// ToMonthResult keeps the in-month cells of a grid.
func ToMonthResult(page calendar.Page, label, personName string, cells []calendar.Cell) MonthResult {
	r := MonthResult{Month: page.String(), Label: label, Person: personName, Days: []DayResult{}}
	for _, c := range cells {
		if c.Other {
			continue
		}
		r.Days = append(r.Days, DayResult{Date: c.Date, Today: c.Today, Events: c.Events})
	}
	return r
}

// EventResult is the JSON representation of a saved or shown event.
type EventResult struct {
	Person   string      `json:"person"`
	Event    event.Event `json:"event"`
	Replaced string      `json:"replaced,omitempty"`
}

// DeleteResult is a JSON representation for delete output.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type ThemeResult struct {
	Theme string `json:"theme"`
}

type ExportResult struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Events int    `json:"events"`
}

func timeRange(e event.Event) string {
	switch {
	case e.Start != "" && e.End != "":
		return e.Start + "-" + e.End
	case e.Start != "":
		return e.Start
	case e.End != "":
		return "-" + e.End
	}
	return ""
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// truncate shortens s to width display cells, ending in "…" when cut.
func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return strings.TrimRight(string(r), " ") + "…"
}
