package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris-regnier/famcal/internal/event"
	"github.com/chris-regnier/famcal/internal/person"
)

var alice = person.Person{ID: "alice", Name: "Alice", Color: "#f00"}

func TestCSVContract(t *testing.T) {
	out, err := CSV([]event.Event{
		{ID: "e1", Date: "2024-01-05", Start: "09:00", End: "10:00", Note: "a;b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dato;Start;Slut;Note\n2024-01-05;09:00;10:00;a,b", out)
}

func TestCSVSortsByDate(t *testing.T) {
	events := []event.Event{
		{ID: "b", Date: "2024-03-02", Note: "second"},
		{ID: "a", Date: "2024-01-10"},
		{ID: "c", Date: "2024-12-24", Start: "18:00", Note: "x;y;z"},
	}
	out, err := CSV(events)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, CSVHeader, lines[0])
	assert.Equal(t, "2024-01-10;;;", lines[1])
	assert.Equal(t, "2024-03-02;;;second", lines[2])
	assert.Equal(t, "2024-12-24;18:00;;x,y,z", lines[3])
	assert.False(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, "b", events[0].ID, "input order must be preserved")
}

func TestEmptyExports(t *testing.T) {
	_, err := CSV(nil)
	assert.ErrorIs(t, err, ErrNothingToExport)

	var buf bytes.Buffer
	for _, format := range Formats {
		err := Write(&buf, format, alice, nil)
		assert.ErrorIs(t, err, ErrNothingToExport, format)
	}
	assert.Zero(t, buf.Len())
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, "xlsx", alice, []event.Event{{Date: "2024-01-01"}})
	assert.ErrorContains(t, err, "unknown export format")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Alice.csv", FileName("Alice", "csv"))
	assert.Equal(t, "export.csv", FileName("  ", "csv"))
	assert.Equal(t, "a-b.ics", FileName("a/b", "ics"))
}

func TestWriteICS(t *testing.T) {
	events := []event.Event{
		{ID: "e1", Date: "2024-01-05", Start: "09:00", End: "10:30", Note: "Swimming\nbring towel"},
		{ID: "e2", Date: "2024-01-06"},
	}
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, alice, events, WithNow(now)))

	out := buf.String()
	assert.Contains(t, out, "DTSTART:20240105T090000")
	assert.Contains(t, out, "DTEND:20240105T103000")
	assert.Contains(t, out, "20240106")

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	vevents := cal.Events()
	require.Len(t, vevents, 2)

	summaries := map[string]string{}
	for _, ve := range vevents {
		uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
		require.NotNil(t, uid)
		sum := ve.GetProperty(ical.ComponentPropertySummary)
		require.NotNil(t, sum)
		summaries[uid.Value] = sum.Value
	}
	assert.Equal(t, "Swimming", summaries["e1@famcal"])
	assert.Equal(t, "Alice: Tid", summaries["e2@famcal"])
}

func TestWriteJSON(t *testing.T) {
	events := []event.Event{
		{ID: "b", Date: "2024-02-01"},
		{ID: "a", Date: "2024-01-01", Note: "first"},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", alice, events))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, alice, doc.Person)
	require.Len(t, doc.Events, 2)
	assert.Equal(t, "a", doc.Events[0].ID)
	assert.Contains(t, buf.String(), `"person"`)
}
