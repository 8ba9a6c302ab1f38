package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chris-regnier/famcal/internal/export"
	"github.com/chris-regnier/famcal/internal/storage"
	"github.com/chris-regnier/famcal/internal/ui"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <" + strings.Join(export.Formats, "|") + ">",
	Short: "Export the active person's events",
	Long: `Export the active person's events sorted by date.

csv writes "Dato;Start;Slut;Note" rows, ics writes an iCalendar file and json
writes the person together with their events. The file is named after the
person unless --output is given; use --output - to write to stdout.`,
	Example: `  famcal export csv
  famcal export ics --person Alice --output alice.ics
  famcal export json --output -`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: export.Formats,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportRun(os.Stdout, args[0], exportOutput)
	},
}

func exportRun(w io.Writer, format, output string) error {
	p, err := activePerson()
	if err != nil {
		return err
	}
	events := sess.ActiveEvents()

	var buf bytes.Buffer
	if err := export.Write(&buf, format, p, events); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}

	if output == "-" {
		_, err := buf.WriteTo(w)
		return err
	}
	if output == "" {
		output = export.FileName(p.Name, format)
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", storage.ErrStorage, output, err)
	}

	result := ui.ExportResult{Path: output, Format: format, Events: len(events)}
	if jsonOutput {
		return ui.FormatJSON(w, result)
	}
	ui.FormatExported(w, result)
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (- for stdout)")
	rootCmd.AddCommand(exportCmd)
}
