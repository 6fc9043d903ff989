package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lakewatch/lakewatch/internal/cli/formatter"
)

// newUploadsCmd creates the "uploads" command which lists stored
// uploads without their row payloads.
func newUploadsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "uploads",
		Short: "List imported datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uploads, err := app.Uploads.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(uploads) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no uploads yet; import one with \"lakewatch import <file>\"")
				return nil
			}

			rows := make([][]string, 0, len(uploads))
			for _, u := range uploads {
				rows = append(rows, []string{
					u.Filename,
					fmt.Sprintf("%d", u.RowCount),
					strings.Join(u.Columns, ", "),
					u.UploadedAt.Format(time.DateOnly),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				formatter.RenderTable([]string{"File", "Rows", "Columns", "Uploaded"}, rows))
			return nil
		},
	}
}
