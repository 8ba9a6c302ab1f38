package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chris-regnier/famcal/internal/calendar"
	"github.com/chris-regnier/famcal/internal/event"
	"github.com/chris-regnier/famcal/internal/storage"
	"github.com/chris-regnier/famcal/internal/ui"
	"github.com/spf13/cobra"
)

var monthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Show a month of the active person's calendar",
	Long:  "Show a month grid with the active person's events. Defaults to the current month.",
	Example: `  famcal month
  famcal month 2024-03
  famcal month --person Alice --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		month := ""
		if len(args) == 1 {
			month = args[0]
		}
		return monthRun(os.Stdout, month)
	},
}

var printCmd = &cobra.Command{
	Use:   "print [YYYY-MM]",
	Short: "Write a printable month view",
	Long:  "Write the month grid followed by the month's event list, without colors or paging.",
	Example: `  famcal print
  famcal print 2024-03 | lpr`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		month := ""
		if len(args) == 1 {
			month = args[0]
		}
		return printRun(cmd.OutOrStdout(), month)
	},
}

// resolvePage parses s as YYYY-MM, or returns the session's current page
// when s is empty.
func resolvePage(s string) (calendar.Page, error) {
	if s == "" {
		return sess.State().Cursor.Page, nil
	}
	page, err := calendar.ParsePage(s)
	if err != nil {
		return calendar.Page{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	return page, nil
}

func monthRun(w io.Writer, month string) error {
	page, err := resolvePage(month)
	if err != nil {
		return err
	}
	st := sess.State()
	p, _ := st.ActivePerson()
	cells := page.Grid(st.ActiveEvents(), st.Today)
	label := page.Label(appConfig.Locale)

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToMonthResult(page, label, p.Name, cells))
	}

	var buf bytes.Buffer
	if p.Name != "" {
		fmt.Fprintf(&buf, "%s\n\n", p.Name)
	}
	ui.FormatMonth(&buf, label, calendar.WeekdayLabels(appConfig.Locale), cells)
	return pager(label).Output(w, buf.String(), false)
}

func printRun(w io.Writer, month string) error {
	page, err := resolvePage(month)
	if err != nil {
		return err
	}
	st := sess.State()
	p, _ := st.ActivePerson()
	label := page.Label(appConfig.Locale)

	if p.Name != "" {
		fmt.Fprintf(w, "%s\n\n", p.Name)
	}
	ui.FormatMonth(w, label, calendar.WeekdayLabels(appConfig.Locale), page.Grid(st.ActiveEvents(), st.Today))
	fmt.Fprintln(w)
	ui.FormatEventList(w, eventsInMonth(st.SortedEvents(), page))
	return nil
}

func eventsInMonth(events []event.Event, page calendar.Page) []event.Event {
	prefix := page.String() + "-"
	var out []event.Event
	for _, e := range events {
		if strings.HasPrefix(e.Date, prefix) {
			out = append(out, e)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(printCmd)
}
