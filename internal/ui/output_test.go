package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/chris-regnier/famcal/internal/calendar"
	"github.com/chris-regnier/famcal/internal/event"
	"github.com/chris-regnier/famcal/internal/person"
)

func testGrid() []calendar.Cell {
	events := []event.Event{
		{ID: "e1", Date: "2024-01-05", Start: "09:00", End: "10:00"},
		{ID: "e2", Date: "2024-01-20", Note: "Birthday party at grandma's"},
	}
	return calendar.BuildMonthGrid(2024, 0, events, "2024-01-15")
}

func TestFormatMonth(t *testing.T) {
	var buf bytes.Buffer
	FormatMonth(&buf, "January 2024", calendar.WeekdayLabels("en_US"), testGrid())
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "January 2024" {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Mon") || !strings.HasSuffix(lines[1], "Sun") {
		t.Errorf("weekday row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], " 1") {
		t.Errorf("January 2024 starts on a Monday, got %q", lines[2])
	}
	for _, want := range []string{"09:00-10:00", "15*", "Birthday p…", "31"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "10:…") {
		t.Errorf("time range label was cut:\n%s", out)
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w > 7*printCellWidth {
			t.Errorf("line %q is %d columns wide", line, w)
		}
	}
}

func TestFormatEventList(t *testing.T) {
	var buf bytes.Buffer
	FormatEventList(&buf, nil)
	if buf.String() != "No events found.\n" {
		t.Errorf("empty list = %q", buf.String())
	}

	buf.Reset()
	FormatEventList(&buf, []event.Event{
		{Date: "2024-01-05", Start: "09:00", End: "10:00", Note: "swim"},
		{Date: "2024-01-06", Note: "line one\nline two"},
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "2024-01-05  09:00-10:00") || !strings.HasSuffix(lines[0], "swim") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "line one line two") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestFormatEvent(t *testing.T) {
	var buf bytes.Buffer
	p := person.Person{ID: "alice", Name: "Alice"}
	FormatEvent(&buf, p, event.Event{ID: "e1", Date: "2024-01-05", Start: "09:00", Note: "Bring **towel**"}, "notty")
	out := stripANSI(buf.String())
	for _, want := range []string{"Event: e1", "Person: Alice", "Date: 2024-01-05", "Time: 09:00", "towel"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatEventSaved(t *testing.T) {
	var buf bytes.Buffer
	e := event.Event{ID: "new1", Date: "2024-01-05", Start: "09:00", End: "10:00"}
	FormatEventSaved(&buf, e, &event.Event{ID: "old1", Date: "2024-01-05"})
	want := "Saved event new1 on 2024-01-05 (09:00-10:00)\nReplaced event old1 previously on 2024-01-05.\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestFormatPersonList(t *testing.T) {
	var buf bytes.Buffer
	FormatPersonList(&buf, []PersonSummary{
		{ID: "a1", Name: "Alice", Color: "#f00", Active: true, Events: 1},
		{ID: "b2", Name: "Bob", Color: "#888", Events: 3},
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if !strings.HasPrefix(lines[0], "* Alice") || !strings.HasSuffix(lines[0], "1 event") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  Bob") || !strings.HasSuffix(lines[1], "3 events") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestToMonthResultJSON(t *testing.T) {
	r := ToMonthResult(calendar.Page{Year: 2024, Month: 0}, "January 2024", "Alice", testGrid())
	if len(r.Days) != 31 {
		t.Fatalf("expected 31 days, got %d", len(r.Days))
	}

	var buf bytes.Buffer
	if err := FormatJSON(&buf, r); err != nil {
		t.Fatal(err)
	}
	var decoded MonthResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Month != "2024-01" || !decoded.Days[14].Today || len(decoded.Days[4].Events) != 1 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdefghijkl", 6); got != "abcde…" {
		t.Errorf("got %q", got)
	}
}
