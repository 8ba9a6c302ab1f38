package export

import (
	"io"
	"strings"

	"github.com/chris-regnier/famcal/internal/event"
)

// CSVHeader is the first row of a CSV export.
const CSVHeader = "Dato;Start;Slut;Note"

// CSV renders events sorted by date as semicolon-separated rows under
// CSVHeader. Semicolons in notes become commas. Rows are joined by "\n"
// with no trailing newline.
func CSV(events []event.Event) (string, error) {
	if len(events) == 0 {
		return "", ErrNothingToExport
	}
	rows := make([]string, 0, len(events)+1)
	rows = append(rows, CSVHeader)
	for _, e := range Sorted(events) {
		note := strings.ReplaceAll(e.Note, ";", ",")
		rows = append(rows, strings.Join([]string{e.Date, e.Start, e.End, note}, ";"))
	}
	return strings.Join(rows, "\n"), nil
}

func WriteCSV(w io.Writer, events []event.Event) error {
	out, err := CSV(events)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
