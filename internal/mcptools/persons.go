package mcptools

import (
	"context"
	"strings"

	applog "github.com/chris-regnier/famcal/internal/log"
	"github.com/chris-regnier/famcal/internal/planner"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListPersonsHandler returns the handler function for the list_persons MCP tool.
func ListPersonsHandler(cal *Calendar) func(ctx context.Context, req *mcp.CallToolRequest, input ListPersonsInput) (*mcp.CallToolResult, ListPersonsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListPersonsInput) (*mcp.CallToolResult, ListPersonsOutput, error) {
		cal.mu.Lock()
		defer cal.mu.Unlock()

		st := cal.sess.State()
		out := ListPersonsOutput{Persons: make([]PersonResult, 0, len(st.Persons))}
		for _, p := range st.Persons {
			out.Persons = append(out.Persons, PersonResult{
				ID:     p.ID,
				Name:   p.Name,
				Color:  p.Color,
				Active: p.ID == st.Cursor.ActivePersonID,
				Events: len(st.EventsFor(p.ID)),
			})
		}
		return nil, out, nil
	}
}

// AddPersonHandler returns the handler function for the add_person MCP tool.
func AddPersonHandler(cal *Calendar) func(ctx context.Context, req *mcp.CallToolRequest, input AddPersonInput) (*mcp.CallToolResult, PersonResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AddPersonInput) (*mcp.CallToolResult, PersonResult, error) {
		cal.mu.Lock()
		defer cal.mu.Unlock()

		color := input.Color
		if strings.TrimSpace(color) == "" {
			color = cal.opts.DefaultColor
		}
		if _, err := cal.sess.Dispatch(planner.AddPerson{Name: input.Name, Color: color}); err != nil {
			return nil, PersonResult{}, err
		}

		st := cal.sess.State()
		p := st.Persons[len(st.Persons)-1]
		applog.Info("mcp person added", "id", p.ID, "name", p.Name)
		return nil, PersonResult{
			ID:     p.ID,
			Name:   p.Name,
			Color:  p.Color,
			Active: p.ID == st.Cursor.ActivePersonID,
		}, nil
	}
}

// RemovePersonHandler returns the handler function for the remove_person MCP tool.
// An unknown person is reported as not removed.
func RemovePersonHandler(cal *Calendar) func(ctx context.Context, req *mcp.CallToolRequest, input RemovePersonInput) (*mcp.CallToolResult, RemovePersonOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RemovePersonInput) (*mcp.CallToolResult, RemovePersonOutput, error) {
		cal.mu.Lock()
		defer cal.mu.Unlock()

		st := cal.sess.State()
		p, ok := st.FindPerson(input.Person)
		if !ok {
			return nil, RemovePersonOutput{}, nil
		}
		events := len(st.EventsFor(p.ID))

		if _, err := cal.sess.Dispatch(planner.RemovePerson{ID: p.ID}); err != nil {
			return nil, RemovePersonOutput{}, err
		}

		applog.Info("mcp person removed", "id", p.ID, "events", events)
		return nil, RemovePersonOutput{ID: p.ID, Removed: true, Events: events}, nil
	}
}
