package mcptools

// ListPersonsInput is the input schema for the list_persons MCP tool.
type ListPersonsInput struct{}

// ListPersonsOutput is the output schema for the list_persons MCP tool.
type ListPersonsOutput struct {
	Persons []PersonResult `json:"persons"`
}

// PersonResult is the common output format for person-related MCP tools.
type PersonResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Active bool   `json:"active"`
	Events int    `json:"events"`
}

// ListEventsInput is the input schema for the list_events MCP tool.
type ListEventsInput struct {
	Person string `json:"person,omitempty" jsonschema-description:"Person ID or name; defaults to the active person"`
	Month  string `json:"month,omitempty" jsonschema-description:"Restrict to one month (YYYY-MM)"`
}

// ListEventsOutput is the output schema for the list_events MCP tool.
type ListEventsOutput struct {
	Person string        `json:"person"`
	Events []EventResult `json:"events"`
}

// EventResult is the common output format for event-related MCP tools.
type EventResult struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
	Note  string `json:"note"`
	Label string `json:"label"`
}

// MonthGridInput is the input schema for the month_grid MCP tool.
type MonthGridInput struct {
	Person string `json:"person,omitempty" jsonschema-description:"Person ID or name; defaults to the active person"`
	Month  string `json:"month,omitempty" jsonschema-description:"Month to show (YYYY-MM); defaults to the current month"`
}

// MonthGridOutput is the output schema for the month_grid MCP tool.
type MonthGridOutput struct {
	Month  string      `json:"month"`
	Label  string      `json:"label"`
	Person string      `json:"person"`
	Offset int         `json:"offset"`
	Days   []DayResult `json:"days"`
}

// DayResult is one in-month day of the month_grid output.
type DayResult struct {
	Date   string        `json:"date"`
	Today  bool          `json:"today,omitempty"`
	Events []EventResult `json:"events,omitempty"`
}

// SaveEventInput is the input schema for the save_event MCP tool.
type SaveEventInput struct {
	Person string `json:"person,omitempty" jsonschema-description:"Person ID or name; defaults to the active person"`
	Date   string `json:"date" jsonschema-description:"Event date (YYYY-MM-DD)"`
	Start  string `json:"start,omitempty" jsonschema-description:"Start time, e.g. 8 or 08:30"`
	End    string `json:"end,omitempty" jsonschema-description:"End time, e.g. 16 or 16:15"`
	Note   string `json:"note,omitempty" jsonschema-description:"Free text note"`
}

// SaveEventOutput is the output schema for the save_event MCP tool.
type SaveEventOutput struct {
	Person  string      `json:"person"`
	Event   EventResult `json:"event"`
	Updated bool        `json:"updated"`
}

// DeleteEventInput is the input schema for the delete_event MCP tool.
type DeleteEventInput struct {
	Person string `json:"person,omitempty" jsonschema-description:"Person ID or name; defaults to the active person"`
	Date   string `json:"date" jsonschema-description:"Date of the event to delete (YYYY-MM-DD)"`
}

// DeleteEventOutput is the output schema for the delete_event MCP tool.
type DeleteEventOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// AddPersonInput is the input schema for the add_person MCP tool.
type AddPersonInput struct {
	Name  string `json:"name" jsonschema-description:"Display name"`
	Color string `json:"color,omitempty" jsonschema-description:"Display color such as #3B82F6"`
}

// RemovePersonInput is the input schema for the remove_person MCP tool.
type RemovePersonInput struct {
	Person string `json:"person" jsonschema-description:"Person ID or name"`
}

// RemovePersonOutput is the output schema for the remove_person MCP tool.
type RemovePersonOutput struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
	Events  int    `json:"events"`
}
