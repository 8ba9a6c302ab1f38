package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/famcal/internal/editor"
	"github.com/chris-regnier/famcal/internal/event"
	"github.com/chris-regnier/famcal/internal/planner"
	"github.com/chris-regnier/famcal/internal/storage"
	"github.com/chris-regnier/famcal/internal/ui"
	"github.com/spf13/cobra"
)

var (
	eventStart string
	eventEnd   string
	eventNote  string
	eventNew   bool
	eventEdit  bool
	eventMonth string
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage the active person's events",
	Long:  "Create, show, delete and list events. A person has at most one event per date.",
}

var eventSetCmd = &cobra.Command{
	Use:   "set <YYYY-MM-DD>",
	Short: "Create or update the event on a date",
	Long: `Create or update the active person's event on a date.

An existing event on the date is updated in place; only the fields given as
flags change. With --new a fresh event replaces whatever was on the date.
Times are normalized: "8" becomes 08:00 and out-of-range values are clamped.`,
	Example: `  famcal event set 2024-03-14 --start 8 --end 12 --note "Swimming"
  famcal event set 2024-03-14 --note "Bring towel"
  famcal event set 2024-03-14 --new --note "Dentist"
  famcal event set 2024-03-14 --edit --person Alice`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := eventSetOptions{New: eventNew}
		if cmd.Flags().Changed("start") {
			opts.Start = &eventStart
		}
		if cmd.Flags().Changed("end") {
			opts.End = &eventEnd
		}
		if cmd.Flags().Changed("note") {
			opts.Note = &eventNote
		}
		if eventEdit {
			opts.Editor = editor.ResolveEditor(appConfig.Editor)
		}
		return eventSetRun(os.Stdout, args[0], opts)
	},
}

var eventShowCmd = &cobra.Command{
	Use:   "show <YYYY-MM-DD|id>",
	Short: "Show the event on a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return eventShowRun(os.Stdout, args[0])
	},
}

var eventRmCmd = &cobra.Command{
	Use:     "rm <YYYY-MM-DD|id>",
	Aliases: []string{"delete"},
	Short:   "Delete the event on a date",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return eventRmRun(os.Stdout, args[0])
	},
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active person's events by date",
	Example: `  famcal event list
  famcal event list --month 2024-03
  famcal event list --person Bob --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return eventListRun(os.Stdout, eventMonth)
	},
}

// eventSetOptions carries the fields given on the command line. Nil fields
// keep the existing value.
type eventSetOptions struct {
	Start  *string
	End    *string
	Note   *string
	New    bool
	Editor string // opens the fields in this editor when non-empty
}

func eventSetRun(w io.Writer, date string, opts eventSetOptions) error {
	p, err := activePerson()
	if err != nil {
		return err
	}
	if err := event.ValidateDate(date); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}

	existing, has := sess.State().EventOn(date)
	fields := editor.Fields{}
	if has && !opts.New {
		fields = editor.Fields{Start: existing.Start, End: existing.End, Note: existing.Note}
	}
	if opts.Start != nil {
		fields.Start = *opts.Start
	}
	if opts.End != nil {
		fields.End = *opts.End
	}
	if opts.Note != nil {
		fields.Note = *opts.Note
	}

	if opts.Editor != "" {
		edited, changed, err := editor.EditFields(opts.Editor, fields)
		if err != nil {
			return fmt.Errorf("editor: %w", err)
		}
		if !changed && has && !opts.New {
			fmt.Fprintln(w, "No changes.")
			return nil
		}
		fields = edited
	}

	save := planner.SaveEvent{Date: date, Start: fields.Start, End: fields.End, Note: fields.Note}
	if !opts.New {
		if _, err := sess.Dispatch(planner.OpenDay{Date: date}); err != nil {
			return err
		}
	}
	if _, err := sess.Dispatch(save); err != nil {
		return err
	}

	saved, _ := sess.State().EventOn(date)
	var replaced *event.Event
	if has && opts.New {
		replaced = &existing
	}

	if jsonOutput {
		result := ui.EventResult{Person: p.Name, Event: saved}
		if replaced != nil {
			result.Replaced = replaced.ID
		}
		return ui.FormatJSON(w, result)
	}
	ui.FormatEventSaved(w, saved, replaced)
	return nil
}

// findEvent resolves ref as a date, then as an event ID of the active person.
func findEvent(ref string) (event.Event, error) {
	p, err := activePerson()
	if err != nil {
		return event.Event{}, err
	}
	st := sess.State()
	if e, ok := st.EventOn(ref); ok {
		return e, nil
	}
	for _, e := range st.ActiveEvents() {
		if e.ID == ref {
			return e, nil
		}
	}
	return event.Event{}, fmt.Errorf("%w: no event %s for %s", storage.ErrNotFound, ref, p.Name)
}

func eventShowRun(w io.Writer, ref string) error {
	e, err := findEvent(ref)
	if err != nil {
		return err
	}
	p, _ := sess.ActivePerson()

	if jsonOutput {
		return ui.FormatJSON(w, ui.EventResult{Person: p.Name, Event: e})
	}

	theme := currentTheme()
	var buf bytes.Buffer
	ui.FormatEvent(&buf, p, e, theme.MarkdownStyle)
	return pager(e.Date).Output(w, buf.String(), false)
}

func eventRmRun(w io.Writer, ref string) error {
	e, err := findEvent(ref)
	if err != nil {
		return err
	}
	if _, err := sess.Dispatch(planner.OpenDay{Date: e.Date, EventID: e.ID}); err != nil {
		return err
	}
	if _, err := sess.Dispatch(planner.DeleteEvent{}); err != nil {
		return err
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.DeleteResult{ID: e.ID, Deleted: true})
	}
	ui.FormatEventDeleted(w, e)
	return nil
}

func eventListRun(w io.Writer, month string) error {
	events := sess.State().SortedEvents()
	if month != "" {
		page, err := resolvePage(month)
		if err != nil {
			return err
		}
		events = eventsInMonth(events, page)
	}

	if jsonOutput {
		if events == nil {
			events = []event.Event{}
		}
		return ui.FormatJSON(w, events)
	}

	p, _ := sess.ActivePerson()
	var buf bytes.Buffer
	ui.FormatEventList(&buf, events)
	return pager(p.Name).Output(w, buf.String(), false)
}

func init() {
	eventSetCmd.Flags().StringVar(&eventStart, "start", "", "start time (HH:MM, or just the hour)")
	eventSetCmd.Flags().StringVar(&eventEnd, "end", "", "end time (HH:MM, or just the hour)")
	eventSetCmd.Flags().StringVar(&eventNote, "note", "", "free text note")
	eventSetCmd.Flags().BoolVar(&eventNew, "new", false, "replace any event on the date with a new one")
	eventSetCmd.Flags().BoolVar(&eventEdit, "edit", false, "edit the event in $EDITOR")
	eventListCmd.Flags().StringVar(&eventMonth, "month", "", "only list events in this month (YYYY-MM)")

	eventCmd.AddCommand(eventSetCmd, eventShowCmd, eventRmCmd, eventListCmd)
	rootCmd.AddCommand(eventCmd)
}
