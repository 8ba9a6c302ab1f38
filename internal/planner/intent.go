package planner

// Intent is a user action. The concrete types below are the only intents.
type Intent interface {
	intent()
}

// SelectPerson makes the person with ID active and closes the editor.
type SelectPerson struct {
	ID string
}

// OpenDay opens the editor on Date. With an EventID that event is edited;
// otherwise the active person's event on Date is edited if present.
type OpenDay struct {
	Date    string
	EventID string
}

// SaveEvent saves the editor contents. Start and End are normalized.
type SaveEvent struct {
	Date  string
	Start string
	End   string
	Note  string
}

// DeleteEvent deletes the event bound to the editor.
type DeleteEvent struct{}

// CloseEditor closes the editor without saving.
type CloseEditor struct{}

type AddPerson struct {
	Name  string
	Color string
}

// EditPerson updates the non-empty fields of a person.
type EditPerson struct {
	ID    string
	Name  string
	Color string
}

// RemovePerson removes a person and all of their events.
type RemovePerson struct {
	ID string
}

// ChangeMonth moves the displayed month by Delta.
type ChangeMonth struct {
	Delta int
}

type ToggleTheme struct{}

func (SelectPerson) intent() {}
func (OpenDay) intent()      {}
func (SaveEvent) intent()    {}
func (DeleteEvent) intent()  {}
func (CloseEditor) intent()  {}
func (AddPerson) intent()    {}
func (EditPerson) intent()   {}
func (RemovePerson) intent() {}
func (ChangeMonth) intent()  {}
func (ToggleTheme) intent()  {}
