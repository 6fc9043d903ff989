package testutil

import (
	"testing"

	"github.com/lakewatch/lakewatch/internal/dataset"
)

// WaterQualityTable returns a small field-sample table with a date
// column, two numeric parameters and one gap.
func WaterQualityTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New([]dataset.Column{
		{Name: "date", Values: []dataset.Value{
			dataset.String("2024-01-01"),
			dataset.String("2024-01-02"),
			dataset.String("2024-01-03"),
		}},
		{Name: "ph", Values: []dataset.Value{
			dataset.Float(7.2), dataset.Float(7.4), dataset.Float(7.1),
		}},
		{Name: "dissolved_oxygen", Values: []dataset.Value{
			dataset.Float(9.8), dataset.Missing(), dataset.Float(10.1),
		}},
	})
	if err != nil {
		t.Fatalf("building fixture table: %v", err)
	}
	return tbl
}
