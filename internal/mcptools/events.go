package mcptools

import (
	"context"
	"strings"

	"github.com/chris-regnier/famcal/internal/calendar"
	"github.com/chris-regnier/famcal/internal/export"
	applog "github.com/chris-regnier/famcal/internal/log"
	"github.com/chris-regnier/famcal/internal/planner"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListEventsHandler returns the handler function for the list_events MCP tool.
func ListEventsHandler(cal *Calendar) func(ctx context.Context, req *mcp.CallToolRequest, input ListEventsInput) (*mcp.CallToolResult, ListEventsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListEventsInput) (*mcp.CallToolResult, ListEventsOutput, error) {
		cal.mu.Lock()
		defer cal.mu.Unlock()

		p, err := cal.resolve(input.Person)
		if err != nil {
			return nil, ListEventsOutput{}, err
		}

		events := export.Sorted(cal.sess.State().EventsFor(p.ID))
		if input.Month != "" {
			page, err := calendar.ParsePage(input.Month)
			if err != nil {
				return nil, ListEventsOutput{}, err
			}
			prefix := page.String() + "-"
			kept := events[:0]
			for _, e := range events {
				if strings.HasPrefix(e.Date, prefix) {
					kept = append(kept, e)
				}
			}
			events = kept
		}

		return nil, ListEventsOutput{Person: p.Name, Events: toEventResults(events)}, nil
	}
}

// MonthGridHandler returns the handler function for the month_grid MCP tool.
func MonthGridHandler(cal *Calendar) func(ctx context.Context, req *mcp.CallToolRequest, input MonthGridInput) (*mcp.CallToolResult, MonthGridOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input MonthGridInput) (*mcp.CallToolResult, MonthGridOutput, error) {
		cal.mu.Lock()
		defer cal.mu.Unlock()

		p, err := cal.resolve(input.Person)
		if err != nil {
			return nil, MonthGridOutput{}, err
		}
		st := cal.sess.State()
		page, err := parseMonth(input.Month, st.Cursor.Page)
		if err != nil {
			return nil, MonthGridOutput{}, err
		}

		out := MonthGridOutput{
			Month:  page.String(),
			Label:  page.Label(cal.opts.Locale),
			Person: p.Name,
			Offset: calendar.Offset(page.Year, page.Month),
			Days:   []DayResult{},
		}
		for _, c := range page.Grid(st.EventsFor(p.ID), st.Today) {
			if c.Other {
				continue
			}
			day := DayResult{Date: c.Date, Today: c.Today}
			if len(c.Events) > 0 {
				day.Events = toEventResults(c.Events)
			}
			out.Days = append(out.Days, day)
		}
		return nil, out, nil
	}
}

// SaveEventHandler returns the handler function for the save_event MCP tool.
// An existing event on the date is updated in place and keeps its ID.
func SaveEventHandler(cal *Calendar) func(ctx context.Context, req *mcp.CallToolRequest, input SaveEventInput) (*mcp.CallToolResult, SaveEventOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SaveEventInput) (*mcp.CallToolResult, SaveEventOutput, error) {
		cal.mu.Lock()
		defer cal.mu.Unlock()

		p, err := cal.selectPerson(input.Person)
		if err != nil {
			return nil, SaveEventOutput{}, err
		}
		_, updated := cal.sess.State().EventOn(input.Date)

		if _, err := cal.sess.Dispatch(planner.OpenDay{Date: input.Date}); err != nil {
			return nil, SaveEventOutput{}, err
		}
		save := planner.SaveEvent{Date: input.Date, Start: input.Start, End: input.End, Note: input.Note}
		if _, err := cal.sess.Dispatch(save); err != nil {
			return nil, SaveEventOutput{}, err
		}

		saved, _ := cal.sess.State().EventOn(input.Date)
		applog.Info("mcp event saved", "person", p.ID, "date", saved.Date, "id", saved.ID, "updated", updated)
		return nil, SaveEventOutput{Person: p.Name, Event: toEventResult(saved), Updated: updated}, nil
	}
}

// DeleteEventHandler returns the handler function for the delete_event MCP tool.
// A date without an event is reported as not deleted.
func DeleteEventHandler(cal *Calendar) func(ctx context.Context, req *mcp.CallToolRequest, input DeleteEventInput) (*mcp.CallToolResult, DeleteEventOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DeleteEventInput) (*mcp.CallToolResult, DeleteEventOutput, error) {
		cal.mu.Lock()
		defer cal.mu.Unlock()

		p, err := cal.selectPerson(input.Person)
		if err != nil {
			return nil, DeleteEventOutput{}, err
		}
		if _, err := cal.sess.Dispatch(planner.OpenDay{Date: input.Date}); err != nil {
			return nil, DeleteEventOutput{}, err
		}

		target, ok := cal.sess.State().EditingEvent()
		if !ok {
			if _, err := cal.sess.Dispatch(planner.CloseEditor{}); err != nil {
				return nil, DeleteEventOutput{}, err
			}
			return nil, DeleteEventOutput{}, nil
		}
		if _, err := cal.sess.Dispatch(planner.DeleteEvent{}); err != nil {
			return nil, DeleteEventOutput{}, err
		}

		applog.Info("mcp event deleted", "person", p.ID, "date", target.Date, "id", target.ID)
		return nil, DeleteEventOutput{ID: target.ID, Deleted: true}, nil
	}
}
