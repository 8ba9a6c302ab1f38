package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chris-regnier/famcal/internal/planner"
	"github.com/chris-regnier/famcal/internal/storage"
	"github.com/chris-regnier/famcal/internal/storage/markdown"
)

var tuiNow = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T) *planner.Session {
	t.Helper()
	store, err := markdown.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	sess, err := planner.Open(store, tuiNow)
	if err != nil {
		t.Fatalf("opening session: %v", err)
	}
	return sess
}

func newTestTUI(t *testing.T, sess Dispatcher) tuiModel {
	t.Helper()
	m := newTUIModel(sess, TUIConfig{Locale: "en_US", ExportDir: t.TempDir()})
	return send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func send(m tuiModel, msgs ...tea.Msg) tuiModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(tuiModel)
	}
	return m
}

func press(m tuiModel, keys ...string) tuiModel {
	for _, k := range keys {
		m = send(m, key(k))
	}
	return m
}

func typeText(m tuiModel, s string) tuiModel {
	for _, r := range s {
		m = send(m, key(string(r)))
	}
	return m
}

func TestTUIStartsOnToday(t *testing.T) {
	m := newTestTUI(t, newTestSession(t))
	if m.day != 15 || m.cursorDate() != "2024-01-15" {
		t.Errorf("cursor = %s, want 2024-01-15", m.cursorDate())
	}
	out := stripANSI(m.View())
	for _, want := range []string{"January 2024", "1 Name", "Mon", "No events this month."} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTUINotReady(t *testing.T) {
	m := newTUIModel(newTestSession(t), TUIConfig{})
	if m.View() != "Loading..." {
		t.Errorf("expected loading view, got %q", m.View())
	}
}

func TestTUICreateEditDeleteEvent(t *testing.T) {
	sess := newTestSession(t)
	m := newTestTUI(t, sess)

	m = press(m, "enter")
	if !m.state.Editor.Open || m.state.Editor.Date != "2024-01-15" {
		t.Fatalf("editor = %+v", m.state.Editor)
	}
	m = typeText(m, "9")
	m = press(m, "tab")
	if got := m.fields[fieldStart].Value(); got != "09:00" {
		t.Errorf("start normalized on blur = %q, want 09:00", got)
	}
	m = typeText(m, "10")
	m = press(m, "tab")
	m = typeText(m, "swim")
	m = press(m, "enter")

	if m.state.Editor.Open {
		t.Fatal("save should close the editor")
	}
	events := sess.ActiveEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Start != "09:00" || e.End != "10:00" || e.Note != "swim" {
		t.Errorf("event = %+v", e)
	}
	out := stripANSI(m.View())
	if !strings.Contains(out, "09:00-10:00") || !strings.Contains(out, "swim") {
		t.Errorf("view missing saved event:\n%s", out)
	}

	// Reopening the day edits the same event.
	m = press(m, "enter")
	if m.state.Editor.EventID != e.ID || m.fields[fieldNote].Value() != "swim" {
		t.Errorf("editor = %+v note %q", m.state.Editor, m.fields[fieldNote].Value())
	}
	m = press(m, "ctrl+d")
	if m.state.Editor.Open || len(sess.ActiveEvents()) != 0 {
		t.Errorf("delete failed: editor %+v, events %d", m.state.Editor, len(sess.ActiveEvents()))
	}
}

func TestTUIEditorEscCancels(t *testing.T) {
	sess := newTestSession(t)
	m := newTestTUI(t, sess)
	m = press(m, "enter")
	m = typeText(m, "note")
	m = press(m, "esc")
	if m.state.Editor.Open || len(sess.ActiveEvents()) != 0 {
		t.Error("esc should close without saving")
	}
}

func TestTUISaveUntouchedKeepsFields(t *testing.T) {
	sess := newTestSession(t)
	if _, err := sess.Dispatch(planner.SaveEvent{
		Date:  "2024-01-15",
		Start: "morning",
		End:   "after lunch",
		Note:  "line one\nline two",
	}); err != nil {
		t.Fatalf("seeding event: %v", err)
	}
	before := sess.ActiveEvents()[0]

	m := newTestTUI(t, sess)
	m = press(m, "enter")
	if m.fields[fieldStart].Value() != "morning" || m.fields[fieldEnd].Value() != "after lunch" {
		t.Errorf("time fields = %q, %q", m.fields[fieldStart].Value(), m.fields[fieldEnd].Value())
	}
	m = press(m, "enter")

	events := sess.ActiveEvents()
	if len(events) != 1 || events[0] != before {
		t.Errorf("after save = %+v, want %+v", events, before)
	}

	// Editing the note replaces it.
	m = press(m, "enter", "tab", "tab")
	m = typeText(m, "!")
	m = press(m, "enter")
	if got := sess.ActiveEvents()[0].Note; got != "line one line two!" {
		t.Errorf("edited note = %q", got)
	}
}

func TestTUINavigation(t *testing.T) {
	m := newTestTUI(t, newTestSession(t))

	m = press(m, "n")
	if p := m.state.Cursor.Page; p.Year != 2024 || p.Month != 1 {
		t.Errorf("after n: %+v", p)
	}
	m = press(m, "p", "p")
	if p := m.state.Cursor.Page; p.Year != 2023 || p.Month != 11 {
		t.Errorf("after p p: %+v", p)
	}
	m = press(m, "g")
	if m.cursorDate() != "2024-01-15" {
		t.Errorf("g should jump to today, got %s", m.cursorDate())
	}

	m.day = 1
	m = press(m, "left")
	if m.cursorDate() != "2023-12-31" {
		t.Errorf("left from Jan 1 = %s", m.cursorDate())
	}
	m = press(m, "right")
	if m.cursorDate() != "2024-01-01" {
		t.Errorf("right from Dec 31 = %s", m.cursorDate())
	}
	m.day = 29
	m = press(m, "down")
	if m.cursorDate() != "2024-02-05" {
		t.Errorf("down from Jan 29 = %s", m.cursorDate())
	}
	m = press(m, "up")
	if m.cursorDate() != "2024-01-29" {
		t.Errorf("up from Feb 5 = %s", m.cursorDate())
	}
}

func TestTUIToggleTheme(t *testing.T) {
	sess := newTestSession(t)
	m := newTestTUI(t, sess)
	if m.theme.Mode != storage.ThemeLight {
		t.Fatalf("initial theme = %q", m.theme.Mode)
	}
	m = press(m, "t")
	if m.theme.Mode != storage.ThemeDark || sess.State().Theme != storage.ThemeDark {
		t.Errorf("theme = %q / %q, want dark", m.theme.Mode, sess.State().Theme)
	}
}

func TestTUIPersonPanel(t *testing.T) {
	sess := newTestSession(t)
	m := newTestTUI(t, sess)

	m = press(m, "P", "a")
	if m.screen != screenPersons || m.personMode != personAdd {
		t.Fatalf("screen %v mode %v", m.screen, m.personMode)
	}
	m = typeText(m, "Bob")
	m = press(m, "tab")
	m = typeText(m, "#0f0")
	m = press(m, "enter")
	persons := sess.State().Persons
	if len(persons) != 2 || persons[1].Name != "Bob" || persons[1].Color != "#0f0" {
		t.Fatalf("persons = %+v", persons)
	}
	if m.personMode != personBrowse {
		t.Errorf("mode = %v, want browse", m.personMode)
	}

	m = press(m, "down", "e")
	if m.personMode != personEdit || m.form[formName].Value() != "Bob" {
		t.Fatalf("edit form = %v %q", m.personMode, m.form[formName].Value())
	}
	m = typeText(m, "by")
	m = press(m, "enter")
	if got := sess.State().Persons[1].Name; got != "Bobby" {
		t.Errorf("edited name = %q", got)
	}

	m = press(m, "d")
	if m.personMode != personConfirmRemove || !strings.Contains(stripANSI(m.View()), "Remove Bobby") {
		t.Fatalf("expected remove confirmation")
	}
	m = press(m, "n")
	if len(sess.State().Persons) != 2 {
		t.Fatal("declined removal removed the person")
	}
	m = press(m, "d", "y")
	if len(sess.State().Persons) != 1 {
		t.Errorf("persons = %+v", sess.State().Persons)
	}

	m = press(m, "esc")
	if m.screen != screenCalendar {
		t.Error("esc should return to the calendar")
	}
}

func TestTUIPersonAddConfiguredColor(t *testing.T) {
	sess := newTestSession(t)
	m := newTUIModel(sess, TUIConfig{Locale: "en_US", DefaultColor: "#10B981"})
	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m = press(m, "P", "a")
	m = typeText(m, "Bob")
	m = press(m, "enter")
	m = press(m, "a")
	m = typeText(m, "Eve")
	m = press(m, "tab")
	m = typeText(m, "#123456")
	m = press(m, "enter")

	persons := sess.State().Persons
	if len(persons) != 3 {
		t.Fatalf("persons = %+v", persons)
	}
	if persons[1].Color != "#10B981" || persons[2].Color != "#123456" {
		t.Errorf("colors = %q, %q", persons[1].Color, persons[2].Color)
	}
}

func TestTUIValidationNotice(t *testing.T) {
	m := newTestTUI(t, newTestSession(t))
	m = press(m, "P", "a", "enter")
	if m.notice == "" || !m.noticeBad {
		t.Fatal("expected a validation notice for an empty name")
	}
	if !strings.Contains(stripANSI(m.View()), "must not be empty") {
		t.Error("notice not rendered")
	}
	m = press(m, "x")
	if m.notice != "" || m.personMode != personAdd {
		t.Errorf("key should only dismiss the notice: notice %q mode %v", m.notice, m.personMode)
	}
}

func TestTUISelectPerson(t *testing.T) {
	sess := newTestSession(t)
	if _, err := sess.Dispatch(planner.AddPerson{Name: "Bob"}); err != nil {
		t.Fatal(err)
	}
	m := newTestTUI(t, sess)

	m = press(m, "2")
	if p, _ := m.state.ActivePerson(); p.Name != "Bob" {
		t.Errorf("active = %q, want Bob", p.Name)
	}
	m = press(m, "tab")
	if p, _ := m.state.ActivePerson(); p.Name != "Name" {
		t.Errorf("tab should wrap to first person, got %q", p.Name)
	}
}

func TestTUIExportCSV(t *testing.T) {
	m := newTestTUI(t, newTestSession(t))

	m = press(m, "E")
	if !m.noticeBad || !strings.Contains(m.notice, "no events") {
		t.Errorf("notice = %q", m.notice)
	}
	m = press(m, "x", "enter")
	m = typeText(m, "8")
	m = press(m, "enter", "E")
	if m.noticeBad {
		t.Fatalf("export failed: %s", m.notice)
	}

	data, err := os.ReadFile(filepath.Join(m.cfg.ExportDir, "Name.csv"))
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if string(data) != "Dato;Start;Slut;Note\n2024-01-15;08:00;;" {
		t.Errorf("csv = %q", string(data))
	}
}

func TestTUIHelp(t *testing.T) {
	m := newTestTUI(t, newTestSession(t))
	m = press(m, "?")
	if !strings.Contains(stripANSI(m.View()), "toggle light/dark") {
		t.Error("help overlay not shown")
	}
	m = press(m, "n")
	if m.help || m.state.Cursor.Page.Month != 0 {
		t.Error("key should only close help")
	}
}

type brokenSession struct {
	st planner.State
}

func (b brokenSession) Dispatch(planner.Intent) (planner.Render, error) {
	return planner.RenderNone, fmt.Errorf("%w: disk full", storage.ErrStorage)
}

func (b brokenSession) State() planner.State { return b.st }

func TestTUIStorageErrorQuits(t *testing.T) {
	m := newTestTUI(t, brokenSession{st: newTestSession(t).State()})
	next, cmd := m.Update(key("n"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if next.(tuiModel).err == nil {
		t.Error("expected error to be recorded")
	}
}
