package planner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/chris-regnier/famcal/internal/person"
	"github.com/chris-regnier/famcal/internal/storage"
	"github.com/chris-regnier/famcal/internal/storage/markdown"
)

func openTestStore(t *testing.T, dir string) storage.Storage {
	t.Helper()
	s, err := markdown.New(dir)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenSeedsEmptyStore(t *testing.T) {
	store := openTestStore(t, t.TempDir())

	sess, err := Open(store, testNow)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	p, ok := sess.ActivePerson()
	if !ok || p != person.Seed() {
		t.Errorf("active = %+v, %v; want seeded person", p, ok)
	}

	snap, err := storage.LoadSnapshot(store)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Persons) != 1 || snap.Persons[0].ID != "Name" {
		t.Errorf("seed not persisted: %+v", snap.Persons)
	}
}

func TestSessionPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	store := openTestStore(t, dir)

	sess, err := Open(store, testNow)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	steps := []Intent{
		AddPerson{Name: "Alice", Color: "#f00"},
		OpenDay{Date: "2024-01-05"},
		SaveEvent{Date: "2024-01-05", Start: "9", End: "10", Note: "swim"},
		ToggleTheme{},
	}
	for _, in := range steps {
		if _, err := sess.Dispatch(in); err != nil {
			t.Fatalf("Dispatch(%T): %v", in, err)
		}
	}

	reopened, err := Open(openTestStore(t, dir), testNow)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	st := reopened.State()
	if len(st.Persons) != 2 || st.Persons[1].Name != "Alice" {
		t.Fatalf("persons = %+v", st.Persons)
	}
	if st.Theme != storage.ThemeDark {
		t.Errorf("theme = %q, want dark", st.Theme)
	}
	// The seeded person is still first and active; the event belongs to it.
	events := reopened.ActiveEvents()
	if len(events) != 1 || events[0].Start != "09:00" || events[0].Note != "swim" {
		t.Errorf("events = %+v", events)
	}
}

func TestDispatchValidationLeavesStoreUntouched(t *testing.T) {
	store := openTestStore(t, t.TempDir())
	sess, err := Open(store, testNow)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	render, err := sess.Dispatch(AddPerson{Name: ""})
	if !IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if render != RenderNone {
		t.Errorf("render = %v, want none", render)
	}
	if got := len(sess.State().Persons); got != 1 {
		t.Errorf("persons = %d, want 1", got)
	}
}

type failingStore struct {
	storage.Storage
}

func (failingStore) SetMany(map[string]string) error {
	return fmt.Errorf("%w: disk full", storage.ErrStorage)
}

func TestDispatchFlushFailure(t *testing.T) {
	store := openTestStore(t, t.TempDir())
	sess, err := Open(store, testNow)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	sess.store = failingStore{store}

	render, err := sess.Dispatch(AddPerson{Name: "Alice"})
	if !errors.Is(err, storage.ErrStorage) {
		t.Fatalf("err = %v, want storage error", err)
	}
	if IsValidation(err) {
		t.Error("flush failure misclassified as validation")
	}
	if render != RenderAll {
		t.Errorf("render = %v, want all", render)
	}
	if got := len(sess.State().Persons); got != 2 {
		t.Errorf("in-memory state should advance, persons = %d", got)
	}
}
