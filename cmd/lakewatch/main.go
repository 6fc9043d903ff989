package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/lakewatch/lakewatch/internal/chart"
	"github.com/lakewatch/lakewatch/internal/cli"
	"github.com/lakewatch/lakewatch/internal/compare"
	"github.com/lakewatch/lakewatch/internal/db"
	"github.com/lakewatch/lakewatch/internal/insight"
	"github.com/lakewatch/lakewatch/internal/llm"
	"github.com/lakewatch/lakewatch/internal/store"
)

func main() {
	app := &cli.App{}
	rootCmd := cli.NewRootCmd(app, wire)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// wire opens the database and fills in the App once flags are parsed.
// Flags win over environment variables; both fall back to defaults.
func wire(app *cli.App, opts cli.Options) error {
	// Determine DB path: flag, env var, or default ~/.lakewatch/lakewatch.db
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = os.Getenv("LAKEWATCH_DB")
	}
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".lakewatch", "lakewatch.db")
	}

	// Determine how model replies carry charts: JSON descriptors or
	// plotting snippets.
	modeStr := opts.Mode
	if modeStr == "" {
		modeStr = os.Getenv("LAKEWATCH_CHART_MODE")
	}
	mode, err := chart.ParseMode(modeStr)
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	app.Close = func() { database.Close() }

	// Wire stores and the unit of work for transactional seeding
	app.Uploads = store.NewSQLiteUploadStore(database)
	app.Sensors = store.NewSQLiteSensorStore(database)
	app.UoW = db.NewSQLiteUnitOfWork(database)

	// Wire the model client and the services on top of it
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		app.Client = llm.NewOllamaClient(llmCfg, observer)
	} else {
		app.Client = llm.DisabledClient{}
	}

	app.Mode = mode
	if v := os.Getenv("LAKEWATCH_PREVIEW_ROWS"); v != "" {
		rows, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LAKEWATCH_PREVIEW_ROWS: %w", err)
		}
		app.PreviewRows = rows
	}
	app.Summary = insight.NewSummaryService(app.Client)
	app.Suggest = insight.NewSuggestService(app.Client)
	app.Narrator = compare.NewNarrator(app.Client)

	// Detect interactive terminal for the dashboard entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return nil
}
