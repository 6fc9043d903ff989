// Package store persists uploaded datasets and station sensor readings
// in SQLite.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/lakewatch/lakewatch/internal/dataset"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Upload is a persisted dataset keyed by its original filename.
// Table is populated only by lookups that load the row payload.
type Upload struct {
	ID         string
	Filename   string
	Columns    []string
	RowCount   int
	UploadedAt time.Time
	Table      *dataset.Table
}

// Station is a monitoring buoy or probe whose readings are stored
// locally.
type Station struct {
	ID        string
	Name      string
	Lake      string
	CreatedAt time.Time
}

type UploadStore interface {
	// Insert persists the table under the given filename. When the
	// filename is already present the stored upload wins and is
	// returned unchanged; the new table is discarded.
	Insert(ctx context.Context, filename string, t *dataset.Table) (*Upload, error)
	FindByFilename(ctx context.Context, filename string) (*Upload, error)
	ListFilenames(ctx context.Context) ([]string, error)
	List(ctx context.Context) ([]*Upload, error)
	Delete(ctx context.Context, filename string) error
}

type SensorStore interface {
	CreateStation(ctx context.Context, s *Station) error
	FindStationByName(ctx context.Context, name string) (*Station, error)
	ListStations(ctx context.Context) ([]*Station, error)
	InsertReadings(ctx context.Context, stationID string, t *dataset.Table) (int, error)
	FindByStation(ctx context.Context, stationID string) (*dataset.Table, error)
}
