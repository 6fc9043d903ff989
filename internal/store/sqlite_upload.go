package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/lakewatch/lakewatch/internal/db"
	"github.com/lakewatch/lakewatch/internal/ingest"
)

// SQLiteUploadStore implements UploadStore using a SQLite database.
type SQLiteUploadStore struct {
	db db.DBTX
}

// NewSQLiteUploadStore creates a new SQLiteUploadStore.
func NewSQLiteUploadStore(db db.DBTX) *SQLiteUploadStore {
	return &SQLiteUploadStore{db: db}
}

func (s *SQLiteUploadStore) Insert(ctx context.Context, filename string, t *dataset.Table) (*Upload, error) {
	// First write wins: a re-upload of a known filename returns the
	// stored dataset untouched.
	existing, err := s.FindByFilename(ctx, filename)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	columnsJSON, err := json.Marshal(t.ColumnNames())
	if err != nil {
		return nil, fmt.Errorf("encoding column names: %w", err)
	}
	recordsJSON, err := json.Marshal(ingest.ToRecords(t))
	if err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}

	u := &Upload{
		ID:         uuid.NewString(),
		Filename:   filename,
		Columns:    t.ColumnNames(),
		RowCount:   t.NumRows(),
		UploadedAt: time.Now().UTC(),
		Table:      t,
	}

	query := `INSERT INTO uploads (id, filename, columns, row_count, records, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query,
		u.ID, u.Filename, string(columnsJSON), u.RowCount, string(recordsJSON),
		u.UploadedAt.Format(time.RFC3339),
	); err != nil {
		return nil, fmt.Errorf("inserting upload: %w", err)
	}
	return u, nil
}

func (s *SQLiteUploadStore) FindByFilename(ctx context.Context, filename string) (*Upload, error) {
	query := `SELECT id, filename, columns, row_count, records, uploaded_at
		FROM uploads WHERE filename = ?`
	row := s.db.QueryRowContext(ctx, query, filename)
	return s.scanUpload(row, true)
}

func (s *SQLiteUploadStore) ListFilenames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT filename FROM uploads ORDER BY uploaded_at, filename`)
	if err != nil {
		return nil, fmt.Errorf("listing upload filenames: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning filename: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating filenames: %w", err)
	}
	return names, nil
}

// List returns upload metadata without the row payload; Table is nil
// on every returned upload.
func (s *SQLiteUploadStore) List(ctx context.Context) ([]*Upload, error) {
	query := `SELECT id, filename, columns, row_count, uploaded_at
		FROM uploads ORDER BY uploaded_at, filename`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing uploads: %w", err)
	}
	defer rows.Close()

	var uploads []*Upload
	for rows.Next() {
		var u Upload
		var columnsJSON, uploadedAtStr string
		if err := rows.Scan(&u.ID, &u.Filename, &columnsJSON, &u.RowCount, &uploadedAtStr); err != nil {
			return nil, fmt.Errorf("scanning upload row: %w", err)
		}
		if err := json.Unmarshal([]byte(columnsJSON), &u.Columns); err != nil {
			return nil, fmt.Errorf("decoding column names: %w", err)
		}
		u.UploadedAt, err = time.Parse(time.RFC3339, uploadedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing uploaded_at: %w", err)
		}
		uploads = append(uploads, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating uploads: %w", err)
	}
	return uploads, nil
}

func (s *SQLiteUploadStore) Delete(ctx context.Context, filename string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM uploads WHERE filename = ?`, filename); err != nil {
		return fmt.Errorf("deleting upload: %w", err)
	}
	return nil
}

// scanUpload scans a single upload from a *sql.Row, reconstructing the
// table payload when withTable is set.
func (s *SQLiteUploadStore) scanUpload(row *sql.Row, withTable bool) (*Upload, error) {
	var u Upload
	var columnsJSON, recordsJSON, uploadedAtStr string

	err := row.Scan(&u.ID, &u.Filename, &columnsJSON, &u.RowCount, &recordsJSON, &uploadedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("upload: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning upload: %w", err)
	}

	if err := json.Unmarshal([]byte(columnsJSON), &u.Columns); err != nil {
		return nil, fmt.Errorf("decoding column names: %w", err)
	}
	u.UploadedAt, err = time.Parse(time.RFC3339, uploadedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing uploaded_at: %w", err)
	}

	if withTable {
		var records []map[string]any
		if err := json.Unmarshal([]byte(recordsJSON), &records); err != nil {
			return nil, fmt.Errorf("decoding records: %w", err)
		}
		t, err := ingest.FromRecords(records)
		if err != nil {
			return nil, fmt.Errorf("rebuilding table: %w", err)
		}
		u.Table, err = reorderColumns(t, u.Columns)
		if err != nil {
			return nil, fmt.Errorf("restoring column order: %w", err)
		}
	}
	return &u, nil
}

// reorderColumns rebuilds the table with its columns in the stored
// order; FromRecords sorts fields alphabetically, losing the original
// layout.
func reorderColumns(t *dataset.Table, order []string) (*dataset.Table, error) {
	cols := make([]dataset.Column, 0, len(order))
	for _, name := range order {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("stored column %q missing from records", name)
		}
		cols = append(cols, *c)
	}
	return dataset.New(cols)
}
