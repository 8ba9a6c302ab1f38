package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/famcal/internal/person"
	"github.com/chris-regnier/famcal/internal/planner"
	"github.com/chris-regnier/famcal/internal/storage"
	"github.com/chris-regnier/famcal/internal/ui"
	"github.com/spf13/cobra"
)

var (
	personColor   string
	personNewName string
	forceRemove   bool
)

var personCmd = &cobra.Command{
	Use:   "person",
	Short: "Manage the persons of the calendar",
	Long:  fmt.Sprintf("Add, edit, remove and list persons. The calendar holds at most %d persons.", person.MaxPersons),
}

var personAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a person",
	Example: `  famcal person add Alice
  famcal person add Bob --color "#3B82F6"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return personAddRun(os.Stdout, args[0], personColor)
	},
}

var personEditCmd = &cobra.Command{
	Use:   "edit <id|name>",
	Short: "Rename or recolor a person",
	Example: `  famcal person edit Alice --name Alicia
  famcal person edit a3kf9x2m --color "#10B981"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return personEditRun(os.Stdout, args[0], personNewName, personColor)
	},
}

var personRmCmd = &cobra.Command{
	Use:     "rm <id|name>",
	Aliases: []string{"remove"},
	Short:   "Remove a person and all of their events",
	Long:    "Permanently remove a person together with their events. Requires confirmation unless --force is used.",
	Example: `  famcal person rm Bob
  famcal person rm Bob --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := sess.State()
		p, ok := st.FindPerson(args[0])
		if !ok {
			return fmt.Errorf("%w: %w: %s", storage.ErrNotFound, planner.ErrPersonNotFound, args[0])
		}

		// Confirmation
		if !forceRemove {
			detail := fmt.Sprintf("%s (%s) has %d events.", p.Name, p.ID, len(st.EventsFor(p.ID)))
			confirmed, err := ui.Confirm("Remove this person and all of their events? This cannot be undone.", detail, currentTheme())
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(os.Stdout, "Cancelled.")
				return nil
			}
		}
		return personRmRun(os.Stdout, p.ID)
	},
}

var personListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persons in tab order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return personListRun(os.Stdout)
	},
}

func personAddRun(w io.Writer, name, color string) error {
	if color == "" {
		color = appConfig.DefaultColor
	}
	if _, err := sess.Dispatch(planner.AddPerson{Name: name, Color: color}); err != nil {
		return err
	}
	st := sess.State()
	p := st.Persons[len(st.Persons)-1]

	if jsonOutput {
		return ui.FormatJSON(w, summarize(st, p))
	}
	ui.FormatPersonAdded(w, p)
	return nil
}

func personEditRun(w io.Writer, ref, name, color string) error {
	p, ok := sess.State().FindPerson(ref)
	if !ok {
		return fmt.Errorf("%w: %w: %s", storage.ErrNotFound, planner.ErrPersonNotFound, ref)
	}
	if _, err := sess.Dispatch(planner.EditPerson{ID: p.ID, Name: name, Color: color}); err != nil {
		return err
	}
	st := sess.State()
	p, _ = st.FindPerson(p.ID)

	if jsonOutput {
		return ui.FormatJSON(w, summarize(st, p))
	}
	ui.FormatPersonUpdated(w, p)
	return nil
}

// personRmRun removes a person together with their events.
func personRmRun(w io.Writer, id string) error {
	st := sess.State()
	p, ok := st.FindPerson(id)
	if !ok {
		return fmt.Errorf("%w: %w: %s", storage.ErrNotFound, planner.ErrPersonNotFound, id)
	}
	events := len(st.EventsFor(p.ID))
	if _, err := sess.Dispatch(planner.RemovePerson{ID: p.ID}); err != nil {
		return err
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.DeleteResult{ID: p.ID, Deleted: true})
	}
	ui.FormatPersonRemoved(w, p, events)
	return nil
}

func personListRun(w io.Writer) error {
	st := sess.State()
	summaries := make([]ui.PersonSummary, 0, len(st.Persons))
	for _, p := range st.Persons {
		summaries = append(summaries, summarize(st, p))
	}

	if jsonOutput {
		return ui.FormatJSON(w, summaries)
	}
	ui.FormatPersonList(w, summaries)
	return nil
}

func summarize(st planner.State, p person.Person) ui.PersonSummary {
	return ui.PersonSummary{
		ID:     p.ID,
		Name:   p.Name,
		Color:  p.Color,
		Active: p.ID == st.Cursor.ActivePersonID,
		Events: len(st.EventsFor(p.ID)),
	}
}

func init() {
	personAddCmd.Flags().StringVar(&personColor, "color", "", "display color, e.g. #3B82F6")
	personEditCmd.Flags().StringVar(&personColor, "color", "", "new display color")
	personEditCmd.Flags().StringVar(&personNewName, "name", "", "new name")
	personRmCmd.Flags().BoolVar(&forceRemove, "force", false, "skip confirmation prompt")

	personCmd.AddCommand(personAddCmd, personEditCmd, personRmCmd, personListCmd)
	rootCmd.AddCommand(personCmd)
}
