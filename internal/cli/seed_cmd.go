package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/lakewatch/lakewatch/internal/db"
	"github.com/lakewatch/lakewatch/internal/ingest"
	"github.com/lakewatch/lakewatch/internal/store"
)

// newSeedCmd creates the "seed" command: load sensor readings for a
// station from a file, or install two weeks of synthetic demo
// readings when no file is given. Station and readings are written in
// one transaction.
func newSeedCmd(app *App) *cobra.Command {
	var lake string

	cmd := &cobra.Command{
		Use:   "seed <station> [file]",
		Short: "Load sensor readings for a station (synthetic demo data without a file)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			readings, err := seedReadings(args)
			if err != nil {
				return err
			}

			var inserted int
			err = app.UoW.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				sensors := store.NewSQLiteSensorStore(tx)

				st, err := sensors.FindStationByName(ctx, name)
				if errors.Is(err, store.ErrNotFound) {
					st = &store.Station{Name: name, Lake: lake}
					err = sensors.CreateStation(ctx, st)
				}
				if err != nil {
					return err
				}

				inserted, err = sensors.InsertReadings(ctx, st.ID, readings)
				return err
			})
			if err != nil {
				return fmt.Errorf("seeding station %s: %w", name, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded station %s with %d readings\n", name, inserted)
			return nil
		},
	}

	cmd.Flags().StringVar(&lake, "lake", "", "lake name recorded when the station is created")
	return cmd
}

func seedReadings(args []string) (*dataset.Table, error) {
	if len(args) < 2 {
		return demoReadings()
	}
	path := args[1]
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := ingest.ReadFile(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return dataset.Normalize(t), nil
}

// demoReadings builds 14 daily rows of plausible lake chemistry with a
// mild seasonal wobble.
func demoReadings() (*dataset.Table, error) {
	const days = 14
	start := time.Now().UTC().AddDate(0, 0, -days).Truncate(24 * time.Hour)

	dates := make([]dataset.Value, days)
	ph := make([]dataset.Value, days)
	do := make([]dataset.Value, days)
	temp := make([]dataset.Value, days)
	turbidity := make([]dataset.Value, days)

	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		wobble := math.Sin(float64(i) / 3)

		dates[i] = dataset.Time(day)
		ph[i] = dataset.Float(7.8 + 0.2*wobble)
		do[i] = dataset.Float(9.5 + 0.8*wobble)
		temp[i] = dataset.Float(14.0 + 1.5*wobble)
		turbidity[i] = dataset.Float(2.1 - 0.4*wobble)
	}

	return dataset.New([]dataset.Column{
		{Name: "date", Values: dates},
		{Name: "ph", Values: ph},
		{Name: "dissolved_oxygen", Values: do},
		{Name: "water_temp", Values: temp},
		{Name: "turbidity", Values: turbidity},
	})
}
