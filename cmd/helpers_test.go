package cmd

import (
	"regexp"
	"testing"
	"time"

	"github.com/chris-regnier/famcal/internal/config"
	"github.com/chris-regnier/famcal/internal/event"
	"github.com/chris-regnier/famcal/internal/person"
	"github.com/chris-regnier/famcal/internal/planner"
	"github.com/chris-regnier/famcal/internal/storage"
	"github.com/chris-regnier/famcal/internal/storage/markdown"
)

var testNow = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.Local)

func setupTestStore(t *testing.T) storage.Storage {
	t.Helper()
	dir := t.TempDir()
	s, err := markdown.New(dir)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// setupTestEnv points the package globals at a fresh store holding snap.
// An empty snapshot gets the seeded default person.
func setupTestEnv(t *testing.T, snap storage.Snapshot) {
	t.Helper()
	store = setupTestStore(t)
	if len(snap.Persons) > 0 {
		if err := storage.SaveSnapshot(store, snap); err != nil {
			t.Fatalf("seeding test storage: %v", err)
		}
	}
	var err error
	sess, err = planner.Open(store, testNow)
	if err != nil {
		t.Fatalf("opening session: %v", err)
	}
	appConfig = &config.Config{Locale: "en_US", MaxWidth: 100, DefaultColor: person.DefaultColor}
	jsonOutput = false
	t.Cleanup(func() { jsonOutput = false })
}

func family() storage.Snapshot {
	return storage.Snapshot{
		Persons: []person.Person{
			{ID: "alice001", Name: "Alice", Color: "#f00"},
			{ID: "bob00001", Name: "Bob", Color: "#00f"},
		},
		Events: map[string][]event.Event{
			"alice001": {
				{ID: "ev000002", Date: "2024-02-03", Note: "Dentist"},
				{ID: "ev000001", Date: "2024-01-20", Start: "08:00", End: "12:00", Note: "Swimming"},
			},
			"bob00001": {
				{ID: "ev000003", Date: "2024-01-15", Note: "Football"},
			},
		},
	}
}

// persisted reloads the snapshot from the test store.
func persisted(t *testing.T) storage.Snapshot {
	t.Helper()
	snap, err := storage.LoadSnapshot(store)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	return snap
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
