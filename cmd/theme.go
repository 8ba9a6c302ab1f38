package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/famcal/internal/planner"
	"github.com/chris-regnier/famcal/internal/storage"
	"github.com/chris-regnier/famcal/internal/ui"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle]",
	Short: "Show or change the color theme",
	Example: `  famcal theme
  famcal theme dark
  famcal theme toggle`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{storage.ThemeLight, storage.ThemeDark, "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		want := ""
		if len(args) == 1 {
			want = args[0]
		}
		return themeRun(os.Stdout, want)
	},
}

// themeRun switches the theme to want ("light", "dark" or "toggle"), or only
// reports it when want is empty.
func themeRun(w io.Writer, want string) error {
	current := sess.State().Theme
	switch want {
	case "":
	case "toggle":
		if _, err := sess.Dispatch(planner.ToggleTheme{}); err != nil {
			return err
		}
	case storage.ThemeLight, storage.ThemeDark:
		if want != current {
			if _, err := sess.Dispatch(planner.ToggleTheme{}); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unknown theme %q (use light, dark or toggle)", storage.ErrValidation, want)
	}

	theme := sess.State().Theme
	if jsonOutput {
		return ui.FormatJSON(w, ui.ThemeResult{Theme: theme})
	}
	ui.FormatTheme(w, theme)
	return nil
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
