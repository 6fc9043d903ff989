// Package cli wires the lakewatch commands and the terminal dashboard.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lakewatch/lakewatch/internal/chart"
	"github.com/lakewatch/lakewatch/internal/chat"
	"github.com/lakewatch/lakewatch/internal/compare"
	"github.com/lakewatch/lakewatch/internal/db"
	"github.com/lakewatch/lakewatch/internal/insight"
	"github.com/lakewatch/lakewatch/internal/llm"
	"github.com/lakewatch/lakewatch/internal/store"
)

// App holds references to the stores and services used by CLI commands
// and the dashboard. It is populated by the wire callback once the
// persistent flags have been parsed.
type App struct {
	Uploads store.UploadStore
	Sensors store.SensorStore
	UoW     db.UnitOfWork

	Client llm.LLMClient
	Mode   chart.Mode

	// PreviewRows bounds the row preview embedded in chat prompts;
	// zero means the default.
	PreviewRows int

	Summary  *insight.SummaryService
	Suggest  *insight.SuggestService
	Narrator *compare.Narrator

	// IsInteractive reports whether stdin is attached to a terminal.
	IsInteractive func() bool

	// StartFilename preselects an upload when the dashboard opens.
	StartFilename string

	// Close releases the database; set by the wire callback.
	Close func()
}

// Options are the persistent flag values handed to the wire callback.
type Options struct {
	DBPath string
	Mode   string
}

// NewChat builds a fresh conversation orchestrator for the dashboard.
func (a *App) NewChat() *chat.Orchestrator {
	rows := a.PreviewRows
	if rows <= 0 {
		rows = chat.DefaultPreviewRows
	}
	return chat.NewOrchestrator(a.Client, a.Mode, rows)
}

// NewRootCmd creates the top-level "lakewatch" command and registers
// all subcommands. The wire callback opens the database and fills in
// the App; it runs once before any command. Running with no subcommand
// opens the dashboard, importing the optional file argument first.
func NewRootCmd(app *App, wire func(app *App, opts Options) error) *cobra.Command {
	var opts Options

	root := &cobra.Command{
		Use:   "lakewatch [file]",
		Short: "Water-quality dashboard for field samples and sensor stations",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return wire(app, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Close != nil {
				app.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				u, err := importFile(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}
				app.StartFilename = u.Filename
			}
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("no interactive terminal; use a subcommand (see --help)")
			}
			p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	registerOptions(root.PersistentFlags(), &opts)

	root.AddCommand(
		newImportCmd(app),
		newUploadsCmd(app),
		newStationsCmd(app),
		newSeedCmd(app),
	)

	return root
}

func registerOptions(fs *pflag.FlagSet, opts *Options) {
	fs.StringVar(&opts.DBPath, "db", "",
		"path to the SQLite database (default $LAKEWATCH_DB or ~/.lakewatch/lakewatch.db)")
	fs.StringVar(&opts.Mode, "mode", "",
		"model chart format, json or snippet (default $LAKEWATCH_CHART_MODE or json)")
}
