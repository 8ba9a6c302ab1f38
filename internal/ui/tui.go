package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chris-regnier/famcal/internal/calendar"
	"github.com/chris-regnier/famcal/internal/config"
	"github.com/chris-regnier/famcal/internal/event"
	"github.com/chris-regnier/famcal/internal/export"
	"github.com/chris-regnier/famcal/internal/person"
	"github.com/chris-regnier/famcal/internal/planner"
)

// Dispatcher is the part of a planner session the TUI drives.
type Dispatcher interface {
	Dispatch(in planner.Intent) (planner.Render, error)
	State() planner.State
}

// TUIConfig holds configuration needed by the TUI.
type TUIConfig struct {
	Locale    string             // month and weekday names
	MaxWidth  int                // maximum content width (0 = no limit)
	Theme     config.ThemeConfig // color overrides on top of the light/dark preset
	ExportDir string             // where E writes <person>.csv

	DefaultColor string // color for persons added without one
}

type tuiScreen int

const (
	screenCalendar tuiScreen = iota
	screenPersons
)

type personMode int

const (
	personBrowse personMode = iota
	personAdd
	personEdit
	personConfirmRemove
)

// Editor fields in focus order.
const (
	fieldStart = iota
	fieldEnd
	fieldNote
	fieldCount
)

// Person form fields.
const (
	formName = iota
	formColor
	formCount
)

// eventListLimit caps the month's event list under the grid.
const eventListLimit = 8

// personItem implements list.Item for the person panel.
type personItem struct {
	p      person.Person
	active bool
	events int
}

func (i personItem) Title() string {
	marker := "○"
	if i.active {
		marker = "●"
	}
	return fmt.Sprintf("%s %s", marker, i.p.Name)
}

func (i personItem) Description() string {
	label := "events"
	if i.events == 1 {
		label = "event"
	}
	return fmt.Sprintf("%s  %d %s", i.p.Color, i.events, label)
}

func (i personItem) FilterValue() string { return i.p.Name }

type tuiModel struct {
	sess   Dispatcher
	cfg    TUIConfig
	state  planner.State
	theme  Theme
	screen tuiScreen
	day    int // cursor day within the displayed month

	fields [fieldCount]textinput.Model
	focus  int

	// The note input is single-line. noteShown is what it displayed on
	// open; saving it untouched keeps noteOrig, newlines included.
	noteOrig  string
	noteShown string

	personList  list.Model
	personMode  personMode
	form        [formCount]textinput.Model
	formFocus   int
	editingID   string
	removeCache person.Person

	notice    string
	noticeBad bool
	help      bool

	width  int
	height int
	ready  bool
	err    error
}

func newTUIModel(sess Dispatcher, cfg TUIConfig) tuiModel {
	m := tuiModel{sess: sess, cfg: cfg, state: sess.State()}
	m.theme = ResolveTheme(m.state.Theme, cfg.Theme)

	placeholders := [fieldCount]string{"HH:MM", "HH:MM", "Note"}
	for i := range m.fields {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		m.fields[i] = ti
	}

	m.form[formName] = textinput.New()
	m.form[formName].Placeholder = "Name"
	m.form[formName].CharLimit = 60
	m.form[formColor] = textinput.New()
	m.form[formColor].Placeholder = m.addColor()
	m.form[formColor].CharLimit = 20

	m.personList = m.theme.NewList(nil, 0, 0)
	m.personList.Title = "Persons"
	m.personList.SetShowHelp(false)
	m.personList.SetFilteringEnabled(false)
	m.personList.SetShowStatusBar(false)
	m.refreshPersons()

	m.day = 1
	if strings.HasPrefix(m.state.Today, m.state.Cursor.Page.String()) {
		m.day, _ = strconv.Atoi(m.state.Today[8:])
	}
	return m
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.personList.SetSize(m.contentWidth(), max(msg.Height-8, 4))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// A notice blocks until the next key press, which it consumes.
		if m.notice != "" {
			m.notice = ""
			return m, nil
		}
		if m.help {
			m.help = false
			return m, nil
		}
		if m.state.Editor.Open {
			return m.updateEditor(msg)
		}
		if m.screen == screenPersons {
			return m.updatePersons(msg)
		}
		return m.updateCalendar(msg)
	}

	if m.state.Editor.Open {
		var cmd tea.Cmd
		m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// dispatch sends in to the session. Validation errors become a notice;
// storage errors end the program.
func (m *tuiModel) dispatch(in planner.Intent) (bool, tea.Cmd) {
	render, err := m.sess.Dispatch(in)
	if err != nil {
		if planner.IsValidation(err) {
			m.showNotice(err.Error(), true)
			return false, nil
		}
		m.err = err
		return false, tea.Quit
	}
	m.state = m.sess.State()
	if render == planner.RenderAll {
		m.theme = ResolveTheme(m.state.Theme, m.cfg.Theme)
		m.personList.SetDelegate(m.theme.ListDelegate())
		m.personList.Styles = m.theme.ListStyles()
		m.refreshPersons()
	}
	m.clampDay()
	return true, nil
}

func (m *tuiModel) showNotice(text string, bad bool) {
	m.notice = text
	m.noticeBad = bad
}

func (m *tuiModel) refreshPersons() {
	items := make([]list.Item, len(m.state.Persons))
	selected := -1
	if m.screen == screenPersons && m.personList.Index() < len(items) {
		selected = m.personList.Index()
	}
	for i, p := range m.state.Persons {
		active := p.ID == m.state.Cursor.ActivePersonID
		if active && selected < 0 {
			selected = i
		}
		items[i] = personItem{p: p, active: active, events: len(m.state.EventsFor(p.ID))}
	}
	m.personList.SetItems(items)
	m.personList.Select(max(selected, 0))
}

func (m *tuiModel) clampDay() {
	page := m.state.Cursor.Page
	m.day = max(1, min(m.day, calendar.DaysInMonth(page.Year, page.Month)))
}

func (m tuiModel) cursorDate() string {
	page := m.state.Cursor.Page
	return calendar.DateString(page.Year, page.Month, m.day)
}

func (m tuiModel) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.help = true
	case "left", "h":
		return m.moveDay(-1)
	case "right", "l":
		return m.moveDay(1)
	case "up", "k":
		return m.moveDay(-7)
	case "down", "j":
		return m.moveDay(7)
	case "n", "]", "pgdown":
		_, cmd := m.dispatch(planner.ChangeMonth{Delta: 1})
		return m, cmd
	case "p", "[", "pgup":
		_, cmd := m.dispatch(planner.ChangeMonth{Delta: -1})
		return m, cmd
	case "g":
		return m.gotoToday()
	case "tab":
		return m.cyclePerson(1)
	case "shift+tab":
		return m.cyclePerson(-1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if idx < len(m.state.Persons) {
			_, cmd := m.dispatch(planner.SelectPerson{ID: m.state.Persons[idx].ID})
			return m, cmd
		}
	case "enter", " ":
		return m.openEditor()
	case "t":
		_, cmd := m.dispatch(planner.ToggleTheme{})
		return m, cmd
	case "P":
		m.screen = screenPersons
		m.personMode = personBrowse
		m.refreshPersons()
	case "E":
		return m.exportCSV()
	}
	return m, nil
}

// moveDay moves the cursor by delta days, changing month at the edges.
func (m tuiModel) moveDay(delta int) (tea.Model, tea.Cmd) {
	page := m.state.Cursor.Page
	target := m.day + delta
	days := calendar.DaysInMonth(page.Year, page.Month)
	switch {
	case target < 1:
		prev := page.Prev()
		if ok, cmd := m.dispatch(planner.ChangeMonth{Delta: -1}); !ok {
			return m, cmd
		}
		m.day = max(1, calendar.DaysInMonth(prev.Year, prev.Month)+target)
	case target > days:
		if ok, cmd := m.dispatch(planner.ChangeMonth{Delta: 1}); !ok {
			return m, cmd
		}
		m.day = target - days
		m.clampDay()
	default:
		m.day = target
	}
	return m, nil
}

func (m tuiModel) gotoToday() (tea.Model, tea.Cmd) {
	today, err := calendar.ParsePage(m.state.Today[:7])
	if err != nil {
		return m, nil
	}
	page := m.state.Cursor.Page
	delta := (today.Year-page.Year)*12 + today.Month - page.Month
	if delta != 0 {
		if ok, cmd := m.dispatch(planner.ChangeMonth{Delta: delta}); !ok {
			return m, cmd
		}
	}
	m.day, _ = strconv.Atoi(m.state.Today[8:])
	return m, nil
}

func (m tuiModel) cyclePerson(step int) (tea.Model, tea.Cmd) {
	n := len(m.state.Persons)
	if n < 2 {
		return m, nil
	}
	idx := 0
	for i, p := range m.state.Persons {
		if p.ID == m.state.Cursor.ActivePersonID {
			idx = i
		}
	}
	next := m.state.Persons[(idx+step+n)%n]
	_, cmd := m.dispatch(planner.SelectPerson{ID: next.ID})
	return m, cmd
}

func (m tuiModel) openEditor() (tea.Model, tea.Cmd) {
	ok, cmd := m.dispatch(planner.OpenDay{Date: m.cursorDate()})
	if !ok {
		return m, cmd
	}
	e, _ := m.state.EditingEvent()
	m.fields[fieldStart].SetValue(e.Start)
	m.fields[fieldEnd].SetValue(e.End)
	m.fields[fieldNote].SetValue(e.Note)
	m.noteOrig = e.Note
	m.noteShown = m.fields[fieldNote].Value()
	for i := range m.fields {
		m.fields[i].CursorEnd()
	}
	cmd = m.focusField(fieldStart)
	return m, cmd
}

// focusField moves focus to field i. Leaving a time field normalizes it.
func (m *tuiModel) focusField(i int) tea.Cmd {
	if m.focus == fieldStart || m.focus == fieldEnd {
		f := &m.fields[m.focus]
		f.SetValue(event.NormalizeTime(f.Value()))
	}
	for j := range m.fields {
		m.fields[j].Blur()
	}
	m.focus = (i + fieldCount) % fieldCount
	return m.fields[m.focus].Focus()
}

func (m tuiModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		_, cmd := m.dispatch(planner.CloseEditor{})
		return m, cmd
	case "tab", "down":
		cmd := m.focusField(m.focus + 1)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.focusField(m.focus - 1)
		return m, cmd
	case "enter":
		note := m.fields[fieldNote].Value()
		if note == m.noteShown {
			note = m.noteOrig
		}
		_, cmd := m.dispatch(planner.SaveEvent{
			Date:  m.state.Editor.Date,
			Start: m.fields[fieldStart].Value(),
			End:   m.fields[fieldEnd].Value(),
			Note:  note,
		})
		return m, cmd
	case "ctrl+d":
		_, cmd := m.dispatch(planner.DeleteEvent{})
		return m, cmd
	}
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m tuiModel) exportCSV() (tea.Model, tea.Cmd) {
	p, ok := m.state.ActivePerson()
	if !ok {
		m.showNotice(planner.ErrNoActivePerson.Error(), true)
		return m, nil
	}
	events := m.state.ActiveEvents()
	csv, err := export.CSV(events)
	if err != nil {
		m.showNotice(err.Error(), true)
		return m, nil
	}
	path := filepath.Join(m.cfg.ExportDir, export.FileName(p.Name, "csv"))
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		m.showNotice(fmt.Sprintf("export failed: %v", err), true)
		return m, nil
	}
	m.showNotice(fmt.Sprintf("Exported %d events to %s", len(events), path), false)
	return m, nil
}

func (m tuiModel) selectedPerson() (person.Person, bool) {
	item, ok := m.personList.SelectedItem().(personItem)
	if !ok {
		return person.Person{}, false
	}
	return item.p, true
}

func (m tuiModel) updatePersons(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.personMode {
	case personAdd, personEdit:
		return m.updatePersonForm(msg)
	case personConfirmRemove:
		m.personMode = personBrowse
		if strings.ToLower(msg.String()) == "y" {
			_, cmd := m.dispatch(planner.RemovePerson{ID: m.removeCache.ID})
			return m, cmd
		}
		return m, nil
	}

	switch msg.String() {
	case "esc", "q", "P":
		m.screen = screenCalendar
		return m, nil
	case "enter":
		if p, ok := m.selectedPerson(); ok {
			if ok, cmd := m.dispatch(planner.SelectPerson{ID: p.ID}); !ok {
				return m, cmd
			}
			m.screen = screenCalendar
		}
		return m, nil
	case "a":
		if len(m.state.Persons) >= person.MaxPersons {
			m.showNotice(person.ErrRegistryFull.Error(), true)
			return m, nil
		}
		return m.startPersonForm(personAdd, person.Person{})
	case "e":
		if p, ok := m.selectedPerson(); ok {
			return m.startPersonForm(personEdit, p)
		}
		return m, nil
	case "d", "x":
		if p, ok := m.selectedPerson(); ok {
			m.removeCache = p
			m.personMode = personConfirmRemove
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.personList, cmd = m.personList.Update(msg)
	return m, cmd
}

func (m tuiModel) startPersonForm(mode personMode, p person.Person) (tea.Model, tea.Cmd) {
	m.personMode = mode
	m.editingID = p.ID
	m.form[formName].SetValue(p.Name)
	m.form[formColor].SetValue(p.Color)
	m.formFocus = formName
	m.form[formName].CursorEnd()
	m.form[formColor].CursorEnd()
	m.form[formColor].Blur()
	cmd := m.form[formName].Focus()
	return m, cmd
}

func (m tuiModel) updatePersonForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.personMode = personBrowse
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.form[m.formFocus].Blur()
		m.formFocus = (m.formFocus + 1) % formCount
		cmd := m.form[m.formFocus].Focus()
		return m, cmd
	case "enter":
		name := m.form[formName].Value()
		color := m.form[formColor].Value()
		var in planner.Intent
		if m.personMode == personEdit {
			in = planner.EditPerson{ID: m.editingID, Name: name, Color: color}
		} else {
			if strings.TrimSpace(color) == "" {
				color = m.addColor()
			}
			in = planner.AddPerson{Name: name, Color: color}
		}
		ok, cmd := m.dispatch(in)
		if ok {
			m.personMode = personBrowse
		}
		return m, cmd
	}
	var cmd tea.Cmd
	m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	return m, cmd
}

func (m tuiModel) addColor() string {
	if m.cfg.DefaultColor != "" {
		return m.cfg.DefaultColor
	}
	return person.DefaultColor
}

func (m tuiModel) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.width > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return m.width
}

func (m tuiModel) View() string {
	if !m.ready {
		// Dimensions are unknown until the first WindowSizeMsg.
		return "Loading..."
	}
	if m.help {
		placed := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.helpOverlay(),
			lipgloss.WithWhitespaceBackground(m.theme.Background))
		return placed
	}

	cw := m.contentWidth()
	var sections []string
	if m.screen == screenPersons {
		sections = append(sections, m.personsView(cw))
	} else {
		sections = append(sections, m.tabsView(cw), m.gridView(cw), m.eventListView(cw))
		if m.state.Editor.Open {
			sections = append(sections, m.editorView(cw))
		}
	}

	if m.notice != "" {
		style := m.theme.AccentStyle()
		if m.noticeBad {
			style = m.theme.DangerStyle()
		}
		sections = append(sections, style.Width(cw).Render(m.notice+"  (press any key)"))
	}
	sections = append(sections, m.theme.HelpStyle().Width(cw).Render(m.footer()))

	return m.theme.PaintScreen(strings.Join(sections, "\n"), m.width, m.height, cw)
}

func (m tuiModel) footer() string {
	switch {
	case m.state.Editor.Open:
		return "tab next field • enter save • ctrl+d delete • esc cancel"
	case m.screen == screenPersons && m.personMode == personConfirmRemove:
		return "y remove • any other key cancels"
	case m.screen == screenPersons && m.personMode != personBrowse:
		return "tab switch field • enter save • esc cancel"
	case m.screen == screenPersons:
		return "enter select • a add • e edit • d remove • esc back"
	}
	return "←↑↓→ move • enter edit • n/p month • tab person • P persons • t theme • E export • ? help • q quit"
}

func (m tuiModel) tabsView(cw int) string {
	var tabs []string
	for i, p := range m.state.Persons {
		label := fmt.Sprintf("%d %s", i+1, p.Name)
		tabs = append(tabs, m.theme.PersonStyle(p.Color, p.ID == m.state.Cursor.ActivePersonID).Render(label))
	}
	if len(tabs) == 0 {
		tabs = append(tabs, m.theme.HelpStyle().Render("no persons: press P then a to add one"))
	}
	title := m.theme.HeaderStyle().Render(m.state.Cursor.Page.Label(m.cfg.Locale))
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	gap := max(cw-lipgloss.Width(row)-lipgloss.Width(title), 1)
	return row + m.theme.HelpStyle().Render(strings.Repeat(" ", gap)) + title
}

func (m tuiModel) gridView(cw int) string {
	cellW := max(cw/7, 6)
	cells := m.state.Grid()
	color := person.DefaultColor
	if p, ok := m.state.ActivePerson(); ok {
		color = p.Color
	}

	var b strings.Builder
	for _, d := range calendar.WeekdayLabels(m.cfg.Locale) {
		b.WriteString(m.theme.HelpStyle().Width(cellW).Render(" " + d))
	}
	for start := 0; start+7 <= len(cells); start += 7 {
		var days, labels strings.Builder
		for _, c := range cells[start : start+7] {
			cursor := !c.Other && c.Day == m.day
			style := m.theme.CellStyle(cellW, c.Other, c.Today, cursor)
			if c.Other {
				days.WriteString(style.Render(""))
				labels.WriteString(style.Render(""))
				continue
			}
			days.WriteString(style.Render(fmt.Sprintf(" %2d", c.Day)))
			text := ""
			if len(c.Events) > 0 {
				text = " " + truncate(c.Events[0].Label(), cellW-2)
			}
			if !cursor && text != "" {
				style = style.Foreground(lipgloss.Color(color))
			}
			labels.WriteString(style.Render(text))
		}
		b.WriteString("\n" + days.String() + "\n" + labels.String())
	}
	return b.String()
}

func (m tuiModel) eventListView(cw int) string {
	prefix := m.state.Cursor.Page.String()
	var lines []string
	for _, e := range m.state.SortedEvents() {
		if !strings.HasPrefix(e.Date, prefix) {
			continue
		}
		line := fmt.Sprintf("%s  %-11s  %s", e.Date[8:], timeRange(e), e.Preview(max(cw-20, 10)))
		lines = append(lines, m.theme.ViewPaneStyle().Width(cw).Render(line))
		if len(lines) == eventListLimit {
			break
		}
	}
	if len(lines) == 0 {
		return m.theme.HelpStyle().Width(cw).Render("No events this month.")
	}
	return m.theme.HeaderStyle().Width(cw).Render("Events") + "\n" + strings.Join(lines, "\n")
}

func (m tuiModel) editorView(cw int) string {
	title := "New event · " + m.state.Editor.Date
	if m.state.Editor.EventID != "" {
		title = "Edit event " + m.state.Editor.EventID + " · " + m.state.Editor.Date
	}
	labels := [fieldCount]string{"Start", "End", "Note"}
	var b strings.Builder
	b.WriteString(m.theme.HeaderStyle().Render(title))
	for i, f := range m.fields {
		label := m.theme.HelpStyle().Width(7).Render(labels[i])
		if i == m.focus {
			label = m.theme.AccentStyle().Width(7).Render(labels[i])
		}
		b.WriteString("\n" + label + f.View())
	}
	return m.theme.BorderStyle().Padding(0, 1).Width(min(cw-2, 60)).Render(b.String())
}

func (m tuiModel) personsView(cw int) string {
	out := m.personList.View()
	switch m.personMode {
	case personAdd, personEdit:
		title := "Add person"
		if m.personMode == personEdit {
			title = "Edit person"
		}
		form := m.theme.HeaderStyle().Render(title) + "\n" +
			m.theme.HelpStyle().Width(7).Render("Name") + m.form[formName].View() + "\n" +
			m.theme.HelpStyle().Width(7).Render("Color") + m.form[formColor].View()
		out += "\n" + m.theme.BorderStyle().Padding(0, 1).Width(min(cw-2, 60)).Render(form)
	case personConfirmRemove:
		n := len(m.state.EventsFor(m.removeCache.ID))
		prompt := fmt.Sprintf("Remove %s and %d events? [y/N]", m.removeCache.Name, n)
		out += "\n" + m.theme.DangerStyle().Width(cw).Render(prompt)
	}
	return out
}

func (m tuiModel) helpOverlay() string {
	lines := []string{
		"Calendar",
		"  ←↑↓→ / hjkl   move day",
		"  n p [ ]       next / previous month",
		"  g             today",
		"  enter         open day",
		"  tab 1-9       switch person",
		"  P             manage persons",
		"  t             toggle light/dark",
		"  E             export CSV",
		"",
		"Editor",
		"  tab           next field",
		"  enter         save",
		"  ctrl+d        delete event",
		"  esc           close",
	}
	return m.theme.BorderStyle().Padding(1, 2).Width(48).Render(strings.Join(lines, "\n"))
}

// RunTUI launches the interactive calendar.
func RunTUI(sess Dispatcher, cfg TUIConfig) error {
	p := tea.NewProgram(newTUIModel(sess, cfg), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := result.(tuiModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
