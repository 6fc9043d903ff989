package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/lakewatch/lakewatch/internal/ingest"
	"github.com/lakewatch/lakewatch/internal/store"
)

// importFile reads a CSV or XLSX file, normalizes its column names and
// stores it as an upload under its base filename.
func importFile(ctx context.Context, app *App, path string) (*store.Upload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	name := filepath.Base(path)
	t, err := ingest.ReadFile(name, f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	t = dataset.Normalize(t)

	u, err := app.Uploads.Insert(ctx, name, t)
	if err != nil {
		return nil, fmt.Errorf("storing upload: %w", err)
	}
	return u, nil
}

// newImportCmd creates the "import" command.
func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a field-sample file (CSV or XLSX)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := importFile(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s: %d rows, %d columns\n",
				u.Filename, u.RowCount, len(u.Columns))
			return nil
		},
	}
}
