package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chris-regnier/famcal/internal/config"
	applog "github.com/chris-regnier/famcal/internal/log"
	"github.com/chris-regnier/famcal/internal/person"
	"github.com/chris-regnier/famcal/internal/planner"
	"github.com/chris-regnier/famcal/internal/storage"
	"github.com/chris-regnier/famcal/internal/storage/markdown"
	"github.com/chris-regnier/famcal/internal/storage/sqlite"
	"github.com/chris-regnier/famcal/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	personRef      string
	appConfig      *config.Config
	store          storage.Storage
	sess           *planner.Session
)

var rootCmd = &cobra.Command{
	Use:   "famcal",
	Short: "A family calendar for the terminal",
	Long: `famcal keeps a small set of persons, each with a private calendar of
single-day events, in a local data directory.

Run without a subcommand to open the interactive calendar.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		// Override storage backend from flag
		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}

		level, err := applog.ParseLevel(appConfig.LogLevel)
		if err != nil {
			return err
		}
		applog.SetLevel(level)

		// Initialize storage backend
		switch appConfig.Storage {
		case "markdown":
			store, err = markdown.New(appConfig.DataDir)
			if err != nil {
				return fmt.Errorf("initializing markdown storage: %w", err)
			}
		case "sqlite":
			store, err = sqlite.New(appConfig.DataDir)
			if err != nil {
				return fmt.Errorf("initializing sqlite storage: %w", err)
			}
		default:
			return fmt.Errorf("unknown storage backend: %s", appConfig.Storage)
		}
		applog.Debug("storage ready", "backend", appConfig.Storage, "data_dir", appConfig.DataDir)

		sess, err = planner.Open(store, time.Now())
		if err != nil {
			return err
		}

		if personRef != "" {
			if _, err := usePerson(personRef); err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		return store.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			// Non-TTY: fall back to the month view
			return monthRun(os.Stdout, "")
		}
		exportDir, err := os.Getwd()
		if err != nil {
			exportDir = appConfig.DataDir
		}
		return ui.RunTUI(sess, ui.TUIConfig{
			Locale:       appConfig.Locale,
			MaxWidth:     appConfig.MaxWidth,
			Theme:        appConfig.Theme,
			ExportDir:    exportDir,
			DefaultColor: appConfig.DefaultColor,
		})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps a command error to the process exit status: 2 for storage
// failures, 1 for everything else.
func ExitCode(err error) int {
	if errors.Is(err, storage.ErrStorage) {
		return 2
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (markdown|sqlite)")
	rootCmd.PersistentFlags().StringVarP(&personRef, "person", "p", "", "person to act on (ID or name)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// usePerson makes the person named by ref (ID or case-insensitive name) the
// active person of the session.
func usePerson(ref string) (person.Person, error) {
	p, ok := sess.State().FindPerson(ref)
	if !ok {
		return person.Person{}, fmt.Errorf("%w: %w: %s", storage.ErrNotFound, planner.ErrPersonNotFound, ref)
	}
	if _, err := sess.Dispatch(planner.SelectPerson{ID: p.ID}); err != nil {
		return person.Person{}, err
	}
	return p, nil
}

// activePerson returns the active person or ErrNoActivePerson.
func activePerson() (person.Person, error) {
	p, ok := sess.ActivePerson()
	if !ok {
		return person.Person{}, fmt.Errorf("%w: %w", storage.ErrValidation, planner.ErrNoActivePerson)
	}
	return p, nil
}

func currentTheme() ui.Theme {
	return ui.ResolveTheme(sess.State().Theme, appConfig.Theme)
}

func pager(title string) ui.Pager {
	return ui.Pager{Title: title, MaxWidth: appConfig.MaxWidth, Theme: currentTheme()}
}
