package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/lakewatch/lakewatch/internal/db"
)

// SQLiteSensorStore implements SensorStore using a SQLite database.
// Readings are stored long-format (one row per timestamp and
// parameter) and pivoted back to a wide table on retrieval.
type SQLiteSensorStore struct {
	db db.DBTX
}

// NewSQLiteSensorStore creates a new SQLiteSensorStore.
func NewSQLiteSensorStore(db db.DBTX) *SQLiteSensorStore {
	return &SQLiteSensorStore{db: db}
}

func (s *SQLiteSensorStore) CreateStation(ctx context.Context, st *Station) error {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO stations (id, name, lake, created_at) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query,
		st.ID, st.Name, st.Lake, st.CreatedAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("inserting station: %w", err)
	}
	return nil
}

func (s *SQLiteSensorStore) FindStationByName(ctx context.Context, name string) (*Station, error) {
	query := `SELECT id, name, lake, created_at FROM stations WHERE name = ?`
	row := s.db.QueryRowContext(ctx, query, name)
	return s.scanStation(row)
}

func (s *SQLiteSensorStore) ListStations(ctx context.Context) ([]*Station, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, lake, created_at FROM stations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing stations: %w", err)
	}
	defer rows.Close()

	var stations []*Station
	for rows.Next() {
		var st Station
		var createdAtStr string
		if err := rows.Scan(&st.ID, &st.Name, &st.Lake, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning station row: %w", err)
		}
		st.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		stations = append(stations, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stations: %w", err)
	}
	return stations, nil
}

// InsertReadings explodes a wide table into per-parameter rows. The
// date column is inferred; rows whose timestamp cannot be parsed and
// cells that are not numeric are skipped. Returns the number of
// readings written.
func (s *SQLiteSensorStore) InsertReadings(ctx context.Context, stationID string, t *dataset.Table) (int, error) {
	dateCol, ok := dataset.InferDateColumn(t)
	if !ok {
		return 0, fmt.Errorf("no date column in readings table (columns: %v)", t.ColumnNames())
	}
	times, parsedOK, _ := dataset.ParseTimeColumn(t, dateCol)

	query := `INSERT INTO sensor_readings (id, station_id, recorded_at, parameter, value)
		VALUES (?, ?, ?, ?, ?)`

	inserted := 0
	for _, col := range t.Columns() {
		if col.Name == dateCol {
			continue
		}
		for i, v := range col.Values {
			if !parsedOK[i] {
				continue
			}
			f, isNum := v.Float()
			if !isNum {
				continue
			}
			if _, err := s.db.ExecContext(ctx, query,
				uuid.NewString(), stationID, times[i].UTC().Format(time.RFC3339), col.Name, f,
			); err != nil {
				return inserted, fmt.Errorf("inserting reading: %w", err)
			}
			inserted++
		}
	}
	return inserted, nil
}

// FindByStation pivots the stored readings into a wide table: a "date"
// column plus one numeric column per parameter, ordered by timestamp.
// Parameters are ordered alphabetically; gaps are missing cells.
func (s *SQLiteSensorStore) FindByStation(ctx context.Context, stationID string) (*dataset.Table, error) {
	query := `SELECT recorded_at, parameter, value FROM sensor_readings
		WHERE station_id = ? ORDER BY recorded_at, parameter`
	rows, err := s.db.QueryContext(ctx, query, stationID)
	if err != nil {
		return nil, fmt.Errorf("querying readings: %w", err)
	}
	defer rows.Close()

	type cell struct {
		param string
		value float64
	}
	var order []time.Time
	byTime := map[time.Time][]cell{}
	params := map[string]bool{}

	for rows.Next() {
		var recordedAtStr, param string
		var value float64
		if err := rows.Scan(&recordedAtStr, &param, &value); err != nil {
			return nil, fmt.Errorf("scanning reading row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, recordedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing recorded_at: %w", err)
		}
		if _, seen := byTime[ts]; !seen {
			order = append(order, ts)
		}
		byTime[ts] = append(byTime[ts], cell{param: param, value: value})
		params[param] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating readings: %w", err)
	}

	paramNames := sortedKeys(params)
	cols := make([]dataset.Column, 0, len(paramNames)+1)
	dates := make([]dataset.Value, len(order))
	for i, ts := range order {
		dates[i] = dataset.Time(ts)
	}
	cols = append(cols, dataset.Column{Name: "date", Values: dates})

	for _, param := range paramNames {
		values := make([]dataset.Value, len(order))
		for i, ts := range order {
			values[i] = dataset.Missing()
			for _, c := range byTime[ts] {
				if c.param == param {
					values[i] = dataset.Float(c.value)
					break
				}
			}
		}
		cols = append(cols, dataset.Column{Name: param, Values: values})
	}

	return dataset.New(cols)
}

func (s *SQLiteSensorStore) scanStation(row *sql.Row) (*Station, error) {
	var st Station
	var createdAtStr string
	err := row.Scan(&st.ID, &st.Name, &st.Lake, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("station: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning station: %w", err)
	}
	st.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &st, nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
