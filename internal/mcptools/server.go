package mcptools

import (
	"context"
	"sync"

	applog "github.com/chris-regnier/famcal/internal/log"
	"github.com/chris-regnier/famcal/internal/planner"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Calendar serialises access to a planner session. Tool calls may arrive
// concurrently; the session itself is single-owner.
type Calendar struct {
	mu   sync.Mutex
	sess *planner.Session
	opts Options
}

// Options configures the calendar tools.
type Options struct {
	Locale       string // month labels in month_grid
	DefaultColor string // add_person color when none is given
}

// NewFamcalMCPServer creates an in-memory MCP server exposing calendar tools.
// Returns the server and a client transport for connecting to it.
func NewFamcalMCPServer(sess *planner.Session, opts Options) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(sess, opts)

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with registered calendar tools.
func CreateMCPServer(sess *planner.Session, opts Options) *mcp.Server {
	cal := &Calendar{sess: sess, opts: opts}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "famcal",
		Version: "1.0.0",
	}, nil)

	// Read tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_persons",
		Description: "List the persons of the family calendar",
	}, ListPersonsHandler(cal))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_events",
		Description: "List a person's events, optionally restricted to one month",
	}, ListEventsHandler(cal))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "month_grid",
		Description: "Show the days of a month with a person's events",
	}, MonthGridHandler(cal))

	// Write tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_event",
		Description: "Create or update the event of a person on a date",
	}, SaveEventHandler(cal))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_event",
		Description: "Delete the event of a person on a date",
	}, DeleteEventHandler(cal))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_person",
		Description: "Add a person to the family calendar",
	}, AddPersonHandler(cal))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_person",
		Description: "Remove a person and all of their events",
	}, RemovePersonHandler(cal))

	applog.Debug("mcp tools registered", "tools", 7)
	return server
}
