package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lakewatch/lakewatch/internal/cli/formatter"
)

// newStationsCmd creates the "stations" command which lists known
// sensor stations.
func newStationsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stations",
		Short: "List sensor stations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stations, err := app.Sensors.ListStations(cmd.Context())
			if err != nil {
				return err
			}
			if len(stations) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no stations yet; add demo data with \"lakewatch seed\"")
				return nil
			}

			rows := make([][]string, 0, len(stations))
			for _, st := range stations {
				rows = append(rows, []string{
					st.Name,
					st.Lake,
					st.CreatedAt.Format(time.DateOnly),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				formatter.RenderTable([]string{"Station", "Lake", "Created"}, rows))
			return nil
		},
	}
}
